package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bid is an append-only record of one amount offered by one bidder
// on one item at one time.  Rows in the `bids` table are never
// updated or deleted; the sequence of bids for an item, ordered by
// placement time, carries strictly increasing amounts.
//
// Fields:
//  ID       – primary key identifier.
//  ItemID   – item the bid was placed on.
//  BidderID – user who placed the bid.
//  Amount   – offered amount; strictly greater than the item's
//             current price at the moment of placement.
//  PlacedAt – commit timestamp, stored in UTC.
type Bid struct {
	ID       uint64          // bids.id
	ItemID   uint64          // bids.item_id
	BidderID uint64          // bids.bidder_id
	Amount   decimal.Decimal // bids.amount
	PlacedAt time.Time       // bids.placed_at
}
