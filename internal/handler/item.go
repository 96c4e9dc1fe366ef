package handler // handler package contains item management handlers

import (
	"net/http" // http defines status codes
	"strings"  // strings helps with trimming whitespace
	"time"     // time is used to derive the auction window

	"github.com/labstack/echo/v4"   // echo provides the web context and JSON helpers
	"github.com/shopspring/decimal" // decimal carries exact prices

	"github.com/iliyamo/auction-house/internal/auction"
	"github.com/iliyamo/auction-house/internal/metrics"
	"github.com/iliyamo/auction-house/internal/model"
	"github.com/iliyamo/auction-house/internal/repository"
)

// maxDurationHours caps the auction window at one week.
const maxDurationHours = 168

// ItemHandler implements listing creation and deletion.  Creation is
// restricted to admins by route middleware; deletion is open to any
// authenticated user and ownership is enforced here and in the
// repository.
type ItemHandler struct {
	Items *repository.ItemRepo
	Clock auction.Clock
}

// NewItemHandler constructs an ItemHandler.  A nil clock defaults to
// the real UTC clock.
func NewItemHandler(items *repository.ItemRepo, clock auction.Clock) *ItemHandler {
	if items == nil {
		panic("nil repository passed to NewItemHandler")
	}
	if clock == nil {
		clock = auction.UTCClock{}
	}
	return &ItemHandler{Items: items, Clock: clock}
}

// CreateItem handles POST /v1/items.  The auction window opens
// immediately: start_time is now and end_time is now plus
// duration_hours.  current_price starts at starting_price.
func (h *ItemHandler) CreateItem(c echo.Context) error {
	sellerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var body struct {
		Title         string          `json:"title"`
		Description   string          `json:"description"`
		StartingPrice decimal.Decimal `json:"starting_price"`
		DurationHours uint32          `json:"duration_hours"`
		Category      string          `json:"category"`
		Condition     string          `json:"condition"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	title := strings.TrimSpace(body.Title)
	description := strings.TrimSpace(body.Description)
	category := strings.TrimSpace(body.Category)
	condition := strings.TrimSpace(body.Condition)
	if condition == "" {
		condition = "New"
	}
	if title == "" || description == "" || category == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title, description and category are required"})
	}
	if !model.ValidCategory(category) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown category"})
	}
	if !model.ValidCondition(condition) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown condition"})
	}
	if body.StartingPrice.Sign() <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "starting price must be a positive number"})
	}
	if body.DurationHours < 1 || body.DurationHours > maxDurationHours {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "duration must be between 1 and 168 hours"})
	}

	now := h.Clock.Now()
	item := &model.Item{
		Title:         title,
		Description:   description,
		StartingPrice: body.StartingPrice,
		CurrentPrice:  body.StartingPrice,
		SellerID:      sellerID,
		Category:      category,
		Condition:     condition,
		DurationHours: body.DurationHours,
		StartTime:     now,
		EndTime:       now.Add(time.Duration(body.DurationHours) * time.Hour),
	}
	if err := h.Items.Create(c.Request().Context(), item); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create item"})
	}
	metrics.ItemsCreated.Inc()
	return c.JSON(http.StatusCreated, echo.Map{
		"id":             item.ID,
		"title":          item.Title,
		"description":    item.Description,
		"starting_price": item.StartingPrice,
		"current_price":  item.CurrentPrice,
		"seller_id":      item.SellerID,
		"category":       item.Category,
		"condition":      item.Condition,
		"duration_hours": item.DurationHours,
		"start_time":     item.StartTime,
		"end_time":       item.EndTime,
		"status":         auction.StatusOf(item.EndTime, now),
	})
}

// DeleteItem handles DELETE /v1/items/:id.  Admins may delete any
// item, sellers only their own.  An item that already carries bids is
// never deleted; the request is refused with 409 Conflict.
func (h *ItemHandler) DeleteItem(c echo.Context) error {
	callerID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, err := pathID(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid item id"})
	}
	err = h.Items.Delete(c.Request().Context(), id, callerID, isAdmin(c))
	if err != nil {
		switch err {
		case repository.ErrItemNotFound:
			return c.JSON(http.StatusNotFound, echo.Map{"error": "item not found"})
		case repository.ErrForbidden:
			return c.JSON(http.StatusForbidden, echo.Map{"error": "not authorized to delete this item"})
		case repository.ErrConflict:
			return c.JSON(http.StatusConflict, echo.Map{"error": "item has bids and cannot be deleted"})
		default:
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
		}
	}
	return c.NoContent(http.StatusNoContent)
}
