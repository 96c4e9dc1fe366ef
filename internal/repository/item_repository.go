package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iliyamo/auction-house/internal/model"
)

// ItemRepo encapsulates database operations for auction items.  The
// items table has no status column; callers derive active/ended from
// end_time, so listing queries filter on end_time against a caller
// supplied instant.
type ItemRepo struct {
	db *sql.DB
}

// NewItemRepo constructs an ItemRepo given a DB handle.
func NewItemRepo(db *sql.DB) *ItemRepo { return &ItemRepo{db: db} }

// DB exposes the underlying handle so that handlers can open
// transactions spanning multiple repositories.
func (r *ItemRepo) DB() *sql.DB { return r.db }

const itemColumns = `id, title, description, starting_price, current_price, seller_id,
	   category, item_condition, duration_hours, start_time, end_time, created_at, updated_at`

func scanItem(row interface{ Scan(...any) error }) (*model.Item, error) {
	var it model.Item
	err := row.Scan(
		&it.ID, &it.Title, &it.Description, &it.StartingPrice, &it.CurrentPrice, &it.SellerID,
		&it.Category, &it.Condition, &it.DurationHours, &it.StartTime, &it.EndTime,
		&it.CreatedAt, &it.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// Create inserts a new item and populates its generated ID.  The
// caller is responsible for having derived end_time from start_time
// and duration_hours and for setting current_price to starting_price.
func (r *ItemRepo) Create(ctx context.Context, it *model.Item) error {
	const q = `INSERT INTO items
		(title, description, starting_price, current_price, seller_id, category, item_condition, duration_hours, start_time, end_time)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q,
		it.Title, it.Description, it.StartingPrice, it.CurrentPrice, it.SellerID,
		it.Category, it.Condition, it.DurationHours, it.StartTime.UTC(), it.EndTime.UTC(),
	)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	it.ID = uint64(id)
	// Query back the row so timestamps and DB defaults are populated.
	fresh, err := r.GetByID(ctx, it.ID)
	if err != nil {
		return err
	}
	*it = *fresh
	return nil
}

// GetByID loads one item.  ErrItemNotFound is returned when the id
// does not exist.
func (r *ItemRepo) GetByID(ctx context.Context, id uint64) (*model.Item, error) {
	it, err := scanItem(r.db.QueryRowContext(ctx, `SELECT `+itemColumns+` FROM items WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, ErrItemNotFound
	}
	return it, err
}

// SellerUsername resolves the username of the account that listed the
// item.  Used by detail endpoints to decorate responses.
func (r *ItemRepo) SellerUsername(ctx context.Context, itemID uint64) (string, error) {
	var name string
	err := r.db.QueryRowContext(ctx,
		`SELECT u.username FROM items i JOIN users u ON u.id = i.seller_id WHERE i.id = ?`,
		itemID).Scan(&name)
	if err == sql.ErrNoRows {
		return "", ErrItemNotFound
	}
	return name, err
}

// ItemRow is the browse/search projection of an item: the stored
// columns plus the seller's username.  Status is filled in by the
// handler from the lifecycle evaluator, not by SQL.
type ItemRow struct {
	ID            uint64          `json:"id"`
	Title         string          `json:"title"`
	Description   string          `json:"description"`
	StartingPrice decimal.Decimal `json:"starting_price"`
	CurrentPrice  decimal.Decimal `json:"current_price"`
	SellerID      uint64          `json:"seller_id"`
	Seller        string          `json:"seller"`
	Category      string          `json:"category"`
	Condition     string          `json:"condition"`
	StartTime     time.Time       `json:"start_time"`
	EndTime       time.Time       `json:"end_time"`
	Status        string          `json:"status"`
}

const itemRowColumns = `i.id, i.title, i.description, i.starting_price, i.current_price,
	   i.seller_id, u.username, i.category, i.item_condition, i.start_time, i.end_time`

func scanItemRows(rows *sql.Rows) ([]ItemRow, error) {
	out := make([]ItemRow, 0)
	for rows.Next() {
		var d ItemRow
		if err := rows.Scan(
			&d.ID, &d.Title, &d.Description, &d.StartingPrice, &d.CurrentPrice,
			&d.SellerID, &d.Seller, &d.Category, &d.Condition, &d.StartTime, &d.EndTime,
		); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ListActive returns items whose auction window is still open at the
// given instant, soonest-ending first.
func (r *ItemRepo) ListActive(ctx context.Context, now time.Time) ([]ItemRow, error) {
	const q = `SELECT ` + itemRowColumns + `
			   FROM items i
			   JOIN users u ON u.id = i.seller_id
			   WHERE i.end_time > ?
			   ORDER BY i.end_time ASC`
	rows, err := r.db.QueryContext(ctx, q, now.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanItemRows(rows)
}

// ListBySeller returns all items listed by one seller, latest-ending
// first, regardless of lifecycle status.
func (r *ItemRepo) ListBySeller(ctx context.Context, sellerID uint64) ([]ItemRow, error) {
	const q = `SELECT ` + itemRowColumns + `
			   FROM items i
			   JOIN users u ON u.id = i.seller_id
			   WHERE i.seller_id = ?
			   ORDER BY i.end_time DESC`
	rows, err := r.db.QueryContext(ctx, q, sellerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanItemRows(rows)
}

// ItemSearchQuery defines filters & pagination for searching active items.
type ItemSearchQuery struct {
	Query    string
	Category string
	MinPrice *decimal.Decimal
	MaxPrice *decimal.Decimal
	Now      time.Time
	Page     int
	PageSize int
}

// Search returns active items matching the query along with the total
// match count for pagination.  The text filter applies to title and
// description, the price bounds to the current price.
func (r *ItemRepo) Search(ctx context.Context, q ItemSearchQuery) ([]ItemRow, int64, error) {
	where := []string{"i.end_time > ?"}
	args := []any{q.Now.UTC()}

	if q.Query != "" {
		where = append(where, "(LOWER(i.title) LIKE ? OR LOWER(i.description) LIKE ?)")
		pat := "%" + strings.ToLower(q.Query) + "%"
		args = append(args, pat, pat)
	}
	if q.Category != "" {
		where = append(where, "i.category = ?")
		args = append(args, q.Category)
	}
	if q.MinPrice != nil {
		where = append(where, "i.current_price >= ?")
		args = append(args, *q.MinPrice)
	}
	if q.MaxPrice != nil {
		where = append(where, "i.current_price <= ?")
		args = append(args, *q.MaxPrice)
	}

	cond := strings.Join(where, " AND ")

	var total int64
	countSQL := `SELECT COUNT(*) FROM items i WHERE ` + cond
	if err := r.db.QueryRowContext(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := q.PageSize
	offset := (q.Page - 1) * q.PageSize

	dataSQL := `SELECT ` + itemRowColumns + `
				FROM items i
				JOIN users u ON u.id = i.seller_id
				WHERE ` + cond + `
				ORDER BY i.end_time ASC
				LIMIT ? OFFSET ?`
	argsData := append(append([]any{}, args...), limit, offset)

	rows, err := r.db.QueryContext(ctx, dataSQL, argsData...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	out, err := scanItemRows(rows)
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

// Delete removes an item when the caller is allowed to.  Admins may
// delete any item, sellers only their own (ErrForbidden otherwise).
// Items that already carry bids are never deleted (ErrConflict): the
// bid history is append-only and must not be orphaned.  ErrItemNotFound
// is returned when the id does not exist.
func (r *ItemRepo) Delete(ctx context.Context, id, callerID uint64, isAdmin bool) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var sellerID uint64
	err = tx.QueryRowContext(ctx, `SELECT seller_id FROM items WHERE id = ? FOR UPDATE`, id).Scan(&sellerID)
	if err == sql.ErrNoRows {
		return ErrItemNotFound
	}
	if err != nil {
		return err
	}
	if !isAdmin && sellerID != callerID {
		return ErrForbidden
	}
	var bidCount int64
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM bids WHERE item_id = ?`, id).Scan(&bidCount); err != nil {
		return err
	}
	if bidCount > 0 {
		return ErrConflict
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM items WHERE id = ?`, id); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}
