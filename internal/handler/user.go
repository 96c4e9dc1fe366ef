package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/auction-house/internal/auction"
	"github.com/iliyamo/auction-house/internal/repository"
)

// UserHandler exposes account-scoped read endpoints: the caller's own
// bids and the caller's own listings.
type UserHandler struct {
	Items *repository.ItemRepo
	Bids  *repository.BidRepo
	Clock auction.Clock
}

// NewUserHandler constructs a UserHandler.  A nil clock defaults to the
// real UTC clock.
func NewUserHandler(items *repository.ItemRepo, bids *repository.BidRepo, clock auction.Clock) *UserHandler {
	if items == nil || bids == nil {
		panic("nil repository passed to NewUserHandler")
	}
	if clock == nil {
		clock = auction.UTCClock{}
	}
	return &UserHandler{Items: items, Bids: bids, Clock: clock}
}

// MyBids handles GET /v1/my-bids.  Bids are returned newest first with
// the item's title and current price attached so the caller can see at
// a glance whether they are still leading.
func (h *UserHandler) MyBids(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	rows, err := h.Bids.ListByBidder(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"bids": rows, "count": len(rows)})
}

// MyItems handles GET /v1/my-items.  Unlike the public listing this
// includes the caller's ended auctions.
func (h *UserHandler) MyItems(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	now := h.Clock.Now()
	rows, err := h.Items.ListBySeller(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	for i := range rows {
		rows[i].Status = string(auction.StatusOf(rows[i].EndTime, now))
	}
	return c.JSON(http.StatusOK, echo.Map{"items": rows, "count": len(rows)})
}
