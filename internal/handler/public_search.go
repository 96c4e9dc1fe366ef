package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/iliyamo/auction-house/internal/auction"
	"github.com/iliyamo/auction-house/internal/repository"
)

// SearchItems handles GET /v1/search/items.  Supported query
// parameters: query (title/description substring), category,
// min_price, max_price, page, page_size.  Only items whose auction is
// still open are searched.
func (h *PublicHandler) SearchItems(c echo.Context) error {
	q := repository.ItemSearchQuery{
		Query:    strings.TrimSpace(c.QueryParam("query")),
		Category: strings.TrimSpace(c.QueryParam("category")),
		Now:      h.Clock.Now(),
	}

	if v := strings.TrimSpace(c.QueryParam("min_price")); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid min_price"})
		}
		q.MinPrice = &d
	}
	if v := strings.TrimSpace(c.QueryParam("max_price")); v != "" {
		d, err := decimal.NewFromString(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid max_price"})
		}
		q.MaxPrice = &d
	}

	q.Page, _ = strconv.Atoi(c.QueryParam("page"))
	if q.Page < 1 {
		q.Page = 1
	}
	q.PageSize, _ = strconv.Atoi(c.QueryParam("page_size"))
	if q.PageSize < 1 {
		q.PageSize = 20
	}
	if q.PageSize > 100 {
		q.PageSize = 100
	}

	rows, total, err := h.Items.Search(c.Request().Context(), q)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "database error"})
	}
	for i := range rows {
		rows[i].Status = string(auction.StatusOf(rows[i].EndTime, q.Now))
	}
	return c.JSON(http.StatusOK, echo.Map{
		"data":      rows,
		"total":     total,
		"page":      q.Page,
		"page_size": q.PageSize,
	})
}
