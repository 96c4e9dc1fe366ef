package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/iliyamo/auction-house/internal/auction"
	"github.com/iliyamo/auction-house/internal/metrics"
	"github.com/iliyamo/auction-house/internal/queue"
	"github.com/iliyamo/auction-house/internal/repository"
	queue_publisher "github.com/iliyamo/auction-house/internal/service"
)

// BidHandler exposes the bid placement endpoint.  All validation and
// the atomic commit live in the auction service; this handler only
// binds the request, translates the error taxonomy to HTTP and emits
// the bid.placed event after a successful commit.
type BidHandler struct {
	Svc   *auction.Service
	Items *repository.ItemRepo
}

// NewBidHandler constructs a BidHandler.
func NewBidHandler(svc *auction.Service, items *repository.ItemRepo) *BidHandler {
	if svc == nil || items == nil {
		panic("nil dependency passed to NewBidHandler")
	}
	return &BidHandler{Svc: svc, Items: items}
}

// PlaceBid handles POST /v1/items/:id/bids.  The body carries a
// single field: {"amount": 125.50} (a JSON string is also accepted).
// Responses follow the rejection taxonomy: 404 unknown item, 409
// ended auction or lost race, 400 amount not above the current price,
// 422 amount not a positive number.
func (h *BidHandler) PlaceBid(c echo.Context) error {
	bidderID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	itemID, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid item id"})
	}
	var body struct {
		Amount decimal.Decimal `json:"amount"`
	}
	if err := c.Bind(&body); err != nil {
		// The only field is the amount, so a bind failure means the
		// amount was not numeric.
		metrics.BidsRejected.WithLabelValues("invalid_amount").Inc()
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "invalid bid amount"})
	}

	// Remember the price the bid has to beat, and the title, for the
	// event payload.
	var previous decimal.Decimal
	var title string
	if it, err := h.Items.GetByID(c.Request().Context(), itemID); err == nil {
		previous = it.CurrentPrice
		title = it.Title
	}

	bid, err := h.Svc.PlaceBid(c.Request().Context(), itemID, bidderID, body.Amount)
	if err != nil {
		switch {
		case errors.Is(err, auction.ErrItemNotFound):
			metrics.BidsRejected.WithLabelValues("not_found").Inc()
			return c.JSON(http.StatusNotFound, echo.Map{"error": "item not found"})
		case errors.Is(err, auction.ErrAuctionEnded):
			metrics.BidsRejected.WithLabelValues("ended").Inc()
			return c.JSON(http.StatusConflict, echo.Map{"error": "auction has ended"})
		case errors.Is(err, auction.ErrBidTooLow):
			metrics.BidsRejected.WithLabelValues("too_low").Inc()
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "bid must be higher than current price"})
		case errors.Is(err, auction.ErrInvalidAmount):
			metrics.BidsRejected.WithLabelValues("invalid_amount").Inc()
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "invalid bid amount"})
		case errors.Is(err, auction.ErrConflict):
			metrics.BidsRejected.WithLabelValues("conflict").Inc()
			return c.JSON(http.StatusConflict, echo.Map{"error": "item is receiving bids, try again"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not place bid"})
		}
	}
	metrics.BidsPlaced.Inc()

	// Publish the event off the request path; a broker outage must not
	// fail a committed bid.
	event := queue.BidPlacedEvent{
		EventID:       uuid.New().String(),
		BidID:         bid.ID,
		ItemID:        itemID,
		ItemTitle:     title,
		BidderID:      bidderID,
		Amount:        bid.Amount.String(),
		PreviousPrice: previous.String(),
		PlacedAt:      bid.PlacedAt.UTC().Format(time.RFC3339),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = queue_publisher.PublishBidPlaced(ctx, event)
	}()

	return c.JSON(http.StatusCreated, echo.Map{
		"id":        bid.ID,
		"item_id":   bid.ItemID,
		"bidder_id": bid.BidderID,
		"amount":    bid.Amount,
		"placed_at": bid.PlacedAt,
	})
}
