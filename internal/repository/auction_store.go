package repository

import (
	"context"
	"database/sql"

	"github.com/shopspring/decimal"

	"github.com/iliyamo/auction-house/internal/auction"
	"github.com/iliyamo/auction-house/internal/model"
)

// AuctionStore adapts the item and bid repositories to the
// auction.Store contract.  It owns the one critical write path of the
// system: committing a bid together with the item's price update.
type AuctionStore struct {
	db    *sql.DB
	items *ItemRepo
	bids  *BidRepo
}

// NewAuctionStore builds the store over shared repositories.
func NewAuctionStore(db *sql.DB, items *ItemRepo, bids *BidRepo) *AuctionStore {
	if db == nil || items == nil || bids == nil {
		panic("nil dependency passed to NewAuctionStore")
	}
	return &AuctionStore{db: db, items: items, bids: bids}
}

// GetItem implements auction.Store.  Repository-level not-found is
// mapped to the auction package's sentinel so the service layer never
// imports database errors.
func (s *AuctionStore) GetItem(ctx context.Context, id uint64) (*model.Item, error) {
	it, err := s.items.GetByID(ctx, id)
	if err == ErrItemNotFound {
		return nil, auction.ErrItemNotFound
	}
	return it, err
}

// AppendBid implements auction.Store.  The price update is a
// compare-and-set: it only fires while the stored current_price still
// equals expectedPrice, which serializes concurrent bids per item.
// The bid insert shares the same transaction, so either both land or
// neither does.  ok=false with a nil error means the caller observed
// a stale price and should re-read and retry.
func (s *AuctionStore) AppendBid(ctx context.Context, bid *model.Bid, expectedPrice decimal.Decimal) (bool, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx,
		`UPDATE items SET current_price = ? WHERE id = ? AND current_price = ?`,
		bid.Amount, bid.ItemID, expectedPrice,
	)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	if n == 0 {
		// Another bid moved the price (or the item vanished) between
		// the caller's read and this update.
		return false, nil
	}
	if err := s.bids.InsertTx(ctx, tx, bid); err != nil {
		return false, err
	}
	if err := tx.Commit(); err != nil {
		return false, err
	}
	committed = true
	return true, nil
}

// ListBids implements auction.Store.
func (s *AuctionStore) ListBids(ctx context.Context, itemID uint64) ([]model.Bid, error) {
	return s.bids.ListByItem(ctx, itemID)
}
