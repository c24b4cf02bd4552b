package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/reklik/reklik-server/internal/auth"
	"github.com/reklik/reklik-server/internal/config"
	"github.com/reklik/reklik-server/internal/database"
	"github.com/reklik/reklik-server/internal/handler"
	"github.com/reklik/reklik-server/internal/queue"
	"github.com/reklik/reklik-server/internal/repository"
	"github.com/reklik/reklik-server/internal/router"
)

func main() {
	_ = godotenv.Load() // optional .env for local development

	cfg := config.Load()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer db.Close()

	// Auth core: hasher, Google verifier, token issuer, orchestrator.
	// A failed verifier setup is fatal: the server must not come up with a
	// Google login path that cannot validate assertions.
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	google, err := auth.NewGoogleVerifier(ctx, cfg.GoogleClientID)
	cancel()
	if err != nil {
		log.Fatalf("init google verifier: %v", err)
	}
	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience, cfg.TokenTTLMin)

	users := repository.NewUserRepo(db)
	products := repository.NewProductRepo(db)
	companies := repository.NewCompanyRepo(db)
	codes := repository.NewProductCodeRepo(db)
	scans := repository.NewScanRepo(db)
	rewards := repository.NewRewardRepo(db)
	stats := repository.NewStatsRepo(db)

	authService := auth.NewService(users, auth.NewHasher(), google, tokens)

	// Reward consumer runs for the process lifetime with its own
	// reconnect loop.
	go func() {
		if err := queue.StartScanConsumer(rewards); err != nil {
			log.Printf("scan consumer stopped: %v", err)
		}
	}()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Printf("redis unavailable, response cache disabled")
	}

	e := echo.New()
	router.Register(e, router.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Users:     handler.NewUserHandler(users),
		Products:  handler.NewProductHandler(products, companies, codes),
		Companies: handler.NewCompanyHandler(companies),
		Scans:     handler.NewScanHandler(codes, products, scans, rewards),
		Stats:     handler.NewStatsHandler(stats),
	}, tokens, config.LoadCacheConfig(), rdb)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
