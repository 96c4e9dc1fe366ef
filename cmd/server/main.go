package main

import (
	"log"
	"log/slog"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/auction-house/internal/auction"
	"github.com/iliyamo/auction-house/internal/config"
	"github.com/iliyamo/auction-house/internal/database"
	"github.com/iliyamo/auction-house/internal/handler"
	"github.com/iliyamo/auction-house/internal/queue"
	"github.com/iliyamo/auction-house/internal/repository"
	"github.com/iliyamo/auction-house/internal/router"
	"github.com/iliyamo/auction-house/pkg/logging"
)

func main() {
	// .env is optional; real deployments set environment variables directly.
	_ = godotenv.Load()
	logging.Setup()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Repositories share the single pooled *sql.DB.
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	items := repository.NewItemRepo(db)
	bids := repository.NewBidRepo(db)

	clock := auction.UTCClock{}
	store := repository.NewAuctionStore(db, items, bids)
	svc := auction.NewServiceWithClock(store, clock)

	authH := handler.NewAuthHandler(cfg, users, tokens)
	publicH := handler.NewPublicHandler(items, bids, clock)
	itemH := handler.NewItemHandler(items, clock)
	bidH := handler.NewBidHandler(svc, items)
	userH := handler.NewUserHandler(items, bids, clock)

	// Redis backs the response cache and the bid rate limiter.  Both
	// degrade gracefully when the client is nil.
	rdb := config.NewRedisClient()
	cacheCfg := config.LoadCacheConfig()
	rlCfg := config.LoadRateLimitConfig()

	e := echo.New()
	e.HideBanner = true

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterPublic(e, publicH, rdb, cacheCfg)
	router.RegisterUser(e, bidH, userH, itemH, cfg.JWTSecret, rdb, rlCfg)
	router.RegisterAdmin(e, itemH, cfg.JWTSecret)

	// Background consumer for bid.placed events.  It reconnects on its
	// own; a missing broker never blocks the API.
	go func() {
		if err := queue.StartBidConsumer(); err != nil {
			slog.Error("bid consumer stopped", "err", err)
		}
	}()

	addr := ":" + cfg.Port
	slog.Info("listening", "addr", addr, "env", cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
