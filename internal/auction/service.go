package auction

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/iliyamo/auction-house/internal/model"
)

// Store is the narrow persistence contract the bid service depends on.
// AppendBid must insert the bid row and move the item's current price
// to the bid amount as a single atomic unit, and only when the stored
// current price still equals expectedPrice.  It reports false, without
// error, when another bid committed first.  This compare-and-set is
// the per-item serialization point: bids on different items never
// contend with each other.
type Store interface {
	// GetItem loads an item by id.  It returns ErrItemNotFound when no
	// such listing exists.
	GetItem(ctx context.Context, id uint64) (*model.Item, error)
	// AppendBid atomically records bid and raises the item's current
	// price from expectedPrice to bid.Amount.  ok is false when the
	// stored price no longer equals expectedPrice.
	AppendBid(ctx context.Context, bid *model.Bid, expectedPrice decimal.Decimal) (ok bool, err error)
	// ListBids returns all bids for an item ordered by placement time,
	// oldest first.
	ListBids(ctx context.Context, itemID uint64) ([]model.Bid, error)
}

// maxCommitAttempts bounds how often PlaceBid re-reads and retries the
// compare-and-set after losing a race before giving up with ErrConflict.
const maxCommitAttempts = 3

// Service orchestrates bid placement: it is the only writer of an
// item's current price and the only component that inserts bid rows.
type Service struct {
	store Store
	clock Clock
}

// NewService returns a Service using the real UTC clock.
func NewService(store Store) *Service {
	return NewServiceWithClock(store, UTCClock{})
}

// NewServiceWithClock returns a Service with an explicit clock.
// Tests use this to pin time.
func NewServiceWithClock(store Store, clock Clock) *Service {
	if store == nil {
		panic("nil store passed to auction.NewServiceWithClock")
	}
	if clock == nil {
		panic("nil clock passed to auction.NewServiceWithClock")
	}
	return &Service{store: store, clock: clock}
}

// PlaceBid validates and commits a bid by bidderID on itemID.
//
// The amount must be a positive decimal (ErrInvalidAmount).  The item
// must exist (ErrItemNotFound), its window must be open at the clock's
// current time (ErrAuctionEnded), and the amount must strictly exceed
// the current price (ErrBidTooLow).  On success the bid row and the
// price update commit together and the stored bid is returned.
//
// When a concurrent bid wins the compare-and-set, the item is
// re-read and the checks rerun against the fresh price, up to
// maxCommitAttempts times.  A higher competing bid then surfaces as
// ErrBidTooLow rather than a spurious conflict; only repeated lost
// races return ErrConflict.  Rejections never mutate anything.
func (s *Service) PlaceBid(ctx context.Context, itemID, bidderID uint64, amount decimal.Decimal) (*model.Bid, error) {
	if amount.Sign() <= 0 {
		return nil, ErrInvalidAmount
	}
	for attempt := 0; attempt < maxCommitAttempts; attempt++ {
		item, err := s.store.GetItem(ctx, itemID)
		if err != nil {
			return nil, err
		}
		now := s.clock.Now()
		if err := ValidateBid(item, amount, now); err != nil {
			return nil, err
		}
		bid := &model.Bid{
			ItemID:   itemID,
			BidderID: bidderID,
			Amount:   amount,
			PlacedAt: now,
		}
		ok, err := s.store.AppendBid(ctx, bid, item.CurrentPrice)
		if err != nil {
			return nil, err
		}
		if ok {
			return bid, nil
		}
		// Lost the race: loop re-reads the item and revalidates.
	}
	return nil, ErrConflict
}

// EvaluateStatus reports the lifecycle status of an item at the
// service clock's current time.  It never mutates state.
func (s *Service) EvaluateStatus(item *model.Item) Status {
	return StatusOf(item.EndTime, s.clock.Now())
}

// History returns the bid history of an item, oldest first.  Amounts
// are strictly increasing in that order.
func (s *Service) History(ctx context.Context, itemID uint64) ([]model.Bid, error) {
	return s.store.ListBids(ctx, itemID)
}
