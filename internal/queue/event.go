// Package queue defines message payloads exchanged over the message broker.
package queue

// BidPlacedEvent is published after a bid has been committed.  It carries
// enough information for downstream consumers to log, notify watchers or
// feed analytics without querying the primary database.  Monetary values
// travel as decimal strings so consumers in any language can parse them
// without float rounding.
type BidPlacedEvent struct {
	EventID       string `json:"event_id"`
	BidID         uint64 `json:"bid_id"`
	ItemID        uint64 `json:"item_id"`
	ItemTitle     string `json:"item_title,omitempty"`
	BidderID      uint64 `json:"bidder_id"`
	Amount        string `json:"amount"`
	PreviousPrice string `json:"previous_price"`
	PlacedAt      string `json:"placed_at"`
}
