package main

import (
	"log"

	"github.com/labstack/echo/v4"

	"github.com/eabrosimov/fstr-pereval-api/internal/config"
	"github.com/eabrosimov/fstr-pereval-api/internal/database"
	"github.com/eabrosimov/fstr-pereval-api/internal/handler"
	"github.com/eabrosimov/fstr-pereval-api/internal/middleware"
	"github.com/eabrosimov/fstr-pereval-api/internal/queue"
	"github.com/eabrosimov/fstr-pereval-api/internal/repository"
	"github.com/eabrosimov/fstr-pereval-api/internal/router"
	"github.com/eabrosimov/fstr-pereval-api/internal/service"
)

func main() {
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	store := repository.NewSQLStore(db)
	svc := service.NewSubmission(store, queue.PublishSubmissionAccepted)
	h := handler.NewSubmitDataHandler(svc)

	// Redis is optional: without it the cache and limiter pass through.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; response cache and rate limiting disabled")
	}
	cacheMW := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	limitMW := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	e := echo.New()
	router.RegisterRoutes(e, h, limitMW, cacheMW)

	// Background consumer appends accepted submissions to the
	// moderation log; it reconnects on its own and never stops the
	// server.
	go func() {
		if err := queue.StartSubmissionConsumer(); err != nil {
			log.Printf("submission consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
