package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/auction-house/internal/auction"
	"github.com/iliyamo/auction-house/internal/repository"
)

// PublicHandler exposes unauthenticated browse endpoints: active item
// listings, item detail and bid history.  Lifecycle status in every
// response is derived from the item's end time and the injected clock
// at request time; it is never read from storage.
type PublicHandler struct {
	Items *repository.ItemRepo
	Bids  *repository.BidRepo
	Clock auction.Clock
}

// NewPublicHandler constructs a PublicHandler.  A nil clock defaults
// to the real UTC clock.
func NewPublicHandler(items *repository.ItemRepo, bids *repository.BidRepo, clock auction.Clock) *PublicHandler {
	if items == nil || bids == nil {
		panic("nil repository passed to NewPublicHandler")
	}
	if clock == nil {
		clock = auction.UTCClock{}
	}
	return &PublicHandler{Items: items, Bids: bids, Clock: clock}
}

// ListItems handles GET /v1/items.  It returns all items whose auction
// window is still open, soonest-ending first.
func (h *PublicHandler) ListItems(c echo.Context) error {
	now := h.Clock.Now()
	rows, err := h.Items.ListActive(c.Request().Context(), now)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	for i := range rows {
		rows[i].Status = string(auction.StatusOf(rows[i].EndTime, now))
	}
	return c.JSON(http.StatusOK, rows)
}

// GetItem handles GET /v1/items/:id.  Ended items remain viewable;
// their derived status tells the client the auction is over.
func (h *PublicHandler) GetItem(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid item id"})
	}
	ctx := c.Request().Context()
	it, err := h.Items.GetByID(ctx, id)
	if err != nil {
		if err == repository.ErrItemNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "item not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	seller, err := h.Items.SellerUsername(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, repository.ItemRow{
		ID:            it.ID,
		Title:         it.Title,
		Description:   it.Description,
		StartingPrice: it.StartingPrice,
		CurrentPrice:  it.CurrentPrice,
		SellerID:      it.SellerID,
		Seller:        seller,
		Category:      it.Category,
		Condition:     it.Condition,
		StartTime:     it.StartTime,
		EndTime:       it.EndTime,
		Status:        string(auction.StatusOf(it.EndTime, h.Clock.Now())),
	})
}

// ListItemBids handles GET /v1/items/:id/bids.  The history is
// returned oldest first; amounts are strictly increasing in that order.
func (h *PublicHandler) ListItemBids(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid item id"})
	}
	ctx := c.Request().Context()
	if _, err := h.Items.GetByID(ctx, id); err != nil {
		if err == repository.ErrItemNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "item not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	bids, err := h.Bids.ListByItem(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	type bidPart struct {
		ID       uint64 `json:"id"`
		BidderID uint64 `json:"bidder_id"`
		Amount   string `json:"amount"`
		PlacedAt string `json:"placed_at"`
	}
	out := make([]bidPart, 0, len(bids))
	for _, b := range bids {
		out = append(out, bidPart{
			ID:       b.ID,
			BidderID: b.BidderID,
			Amount:   b.Amount.String(),
			PlacedAt: b.PlacedAt.UTC().Format(time.RFC3339),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"item_id": id, "bids": out})
}
