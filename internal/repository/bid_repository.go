package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iliyamo/auction-house/internal/model"
)

// BidRepo provides data access to the bids table.  Bid rows are
// append-only: there is no update or delete path, by design.  All
// timestamps are stored in UTC.
type BidRepo struct {
	db *sql.DB
}

// NewBidRepo returns a new BidRepo bound to the provided database.
func NewBidRepo(db *sql.DB) *BidRepo { return &BidRepo{db: db} }

// InsertTx appends a bid row within the provided transaction and
// populates the generated ID.  The caller must commit or roll back;
// the bid service pairs this insert with the conditional price update
// so the two land atomically.
func (r *BidRepo) InsertTx(ctx context.Context, tx *sql.Tx, b *model.Bid) error {
	res, err := tx.ExecContext(ctx,
		`INSERT INTO bids (item_id, bidder_id, amount, placed_at) VALUES (?, ?, ?, ?)`,
		b.ItemID, b.BidderID, b.Amount, b.PlacedAt.UTC(),
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	b.ID = uint64(id)
	return nil
}

// ListByItem returns all bids on an item ordered by placement time,
// oldest first.  Ties on the timestamp fall back to insertion order.
func (r *BidRepo) ListByItem(ctx context.Context, itemID uint64) ([]model.Bid, error) {
	const q = `SELECT id, item_id, bidder_id, amount, placed_at
			   FROM bids WHERE item_id = ?
			   ORDER BY placed_at ASC, id ASC`
	rows, err := r.db.QueryContext(ctx, q, itemID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	bids := make([]model.Bid, 0)
	for rows.Next() {
		var b model.Bid
		if err := rows.Scan(&b.ID, &b.ItemID, &b.BidderID, &b.Amount, &b.PlacedAt); err != nil {
			return nil, err
		}
		bids = append(bids, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return bids, nil
}

// BidDetail decorates a bid with the item it was placed on for the
// "my bids" listing.
type BidDetail struct {
	ID           uint64          `json:"id"`
	ItemID       uint64          `json:"item_id"`
	ItemTitle    string          `json:"item_title"`
	Amount       decimal.Decimal `json:"amount"`
	CurrentPrice decimal.Decimal `json:"current_price"`
	EndTime      time.Time       `json:"end_time"`
	PlacedAt     time.Time       `json:"placed_at"`
}

// ListByBidder returns all bids placed by one user, newest first,
// joined with the item title and its present price so the client can
// show whether the bid is still winning.
func (r *BidRepo) ListByBidder(ctx context.Context, bidderID uint64) ([]BidDetail, error) {
	const q = `SELECT b.id, b.item_id, i.title, b.amount, i.current_price, i.end_time, b.placed_at
			   FROM bids b
			   JOIN items i ON i.id = b.item_id
			   WHERE b.bidder_id = ?
			   ORDER BY b.placed_at DESC, b.id DESC`
	rows, err := r.db.QueryContext(ctx, q, bidderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]BidDetail, 0)
	for rows.Next() {
		var d BidDetail
		if err := rows.Scan(&d.ID, &d.ItemID, &d.ItemTitle, &d.Amount, &d.CurrentPrice, &d.EndTime, &d.PlacedAt); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
