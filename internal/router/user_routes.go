package router

import (
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/auction-house/internal/config"
	"github.com/iliyamo/auction-house/internal/handler"
	"github.com/iliyamo/auction-house/internal/middleware"
)

// RegisterUser registers endpoints available to any authenticated
// account under /v1.  Bidding is additionally rate limited per user via
// the Redis token bucket (fail-open when Redis is not configured).
func RegisterUser(e *echo.Echo, b *handler.BidHandler, u *handler.UserHandler, items *handler.ItemHandler, jwtSecret string, rdb *redis.Client, rlCfg config.RateLimitConfig) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole("USER", "ADMIN"),
	)

	g.POST("/items/:id/bids", b.PlaceBid, middleware.NewTokenBucket(rlCfg, rdb))

	g.GET("/my-bids", u.MyBids)
	g.GET("/my-items", u.MyItems)

	// Sellers may delete their own listings; admins may delete any.
	// Ownership and the no-bids rule are enforced in the repository.
	g.DELETE("/items/:id", items.DeleteItem)
}
