package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/hessamz/seatmap-session/internal/assets"
	"github.com/hessamz/seatmap-session/internal/config"
	"github.com/hessamz/seatmap-session/internal/conflict"
	"github.com/hessamz/seatmap-session/internal/database"
	"github.com/hessamz/seatmap-session/internal/handler"
	appmw "github.com/hessamz/seatmap-session/internal/middleware"
	"github.com/hessamz/seatmap-session/internal/pricing"
	"github.com/hessamz/seatmap-session/internal/queue"
	"github.com/hessamz/seatmap-session/internal/repository"
	"github.com/hessamz/seatmap-session/internal/router"
	"github.com/hessamz/seatmap-session/internal/selection"
	"github.com/hessamz/seatmap-session/internal/session"
	"github.com/hessamz/seatmap-session/internal/viewcache"
	"github.com/hessamz/seatmap-session/internal/viewport"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("db connect failed: %v", err)
	}
	defer db.Close()

	layoutRepo := repository.NewLayoutRepo(db)
	eventSeatRepo := repository.NewEventSeatRepo(db)

	// Redis backs the saved-view cache plus the layout response cache and
	// rate limiting. Without it the server degrades to in-memory views
	// and unthrottled, uncached layout responses.
	rdb := config.NewRedisClient()
	var views viewcache.Store
	if rdb != nil {
		views = viewcache.NewRedisStore(rdb, time.Duration(cfg.ViewCacheTTLMin)*time.Minute)
	} else {
		log.Println("redis unavailable; using in-memory view cache")
		views = viewcache.NewMemoryStore()
	}

	selCfg := selection.Config{
		MaxSeats:        cfg.MaxSelectableSeats,
		HoldDurationSec: cfg.HoldDurationSec,
		Pricing: pricing.Config{
			Type:      pricing.FeeType(cfg.FeeType),
			Percent:   cfg.FeePercent,
			FlatCents: uint32(cfg.FeeFlatCents),
		},
	}
	vpCfg := viewport.DefaultConfig()

	sessions := session.NewManager()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	// The shared one-second tick drives hold countdowns and debounced
	// view saves for every live session.
	go sessions.Run(ctx)

	// Seat-status pushes from other actors flow through the broker into
	// the conflict resolution layer.
	resolver := conflict.NewResolver(sessions)
	go func() {
		if err := queue.StartSeatStatusConsumer(resolver.Handle); err != nil {
			log.Printf("seat-status consumer stopped: %v", err)
		}
	}()

	e := echo.New()
	router.RegisterRoutes(e,
		handler.NewViewerHandler(cfg.JWTSecret, cfg.ViewerTTLMin),
		handler.NewAssetHandler(assets.NewCache(assets.DirLoader(cfg.AssetsDir))),
	)
	layoutExtra := []echo.MiddlewareFunc{}
	if rdb != nil {
		layoutExtra = append(layoutExtra,
			appmw.NewTokenBucket(config.LoadRateLimitConfig(), rdb),
			appmw.NewRedisCache(config.LoadCacheConfig(), rdb),
		)
	}
	router.RegisterLayout(e, handler.NewLayoutHandler(layoutRepo), layoutExtra...)
	router.RegisterSessions(e, handler.NewSessionHandler(layoutRepo, eventSeatRepo, sessions, views, selCfg, vpCfg), cfg.JWTSecret)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
