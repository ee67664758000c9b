package main // Entry point package

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Calboot/RandomSeatGenerator/internal/config"
	"github.com/Calboot/RandomSeatGenerator/internal/database"
	"github.com/Calboot/RandomSeatGenerator/internal/handler"
	"github.com/Calboot/RandomSeatGenerator/internal/metrics"
	"github.com/Calboot/RandomSeatGenerator/internal/middleware"
	"github.com/Calboot/RandomSeatGenerator/internal/queue"
	"github.com/Calboot/RandomSeatGenerator/internal/repository"
	"github.com/Calboot/RandomSeatGenerator/internal/router"
	"github.com/Calboot/RandomSeatGenerator/internal/seating"
	"github.com/Calboot/RandomSeatGenerator/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win

	cfg := config.Load()
	genCfg := config.LoadGenerationConfig()
	cacheCfg := config.LoadCacheConfig()
	rlCfg := config.LoadRateLimitConfig()

	db, err := database.Open(cfg)
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	schemaCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	if err := database.EnsureSchema(schemaCtx, db); err != nil {
		cancel()
		log.Fatalf("schema: %v", err)
	}
	cancel()

	rdb := config.NewRedisClient(config.LoadRedisConfig())
	if rdb == nil {
		log.Printf("redis unavailable: rate limiting and table cache disabled")
	} else {
		defer rdb.Close()
	}

	// repositories
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	configs := repository.NewSeatingConfigRepo(db)
	generations := repository.NewGenerationRepo(db)

	gen := seating.NewGenerator(
		seating.WithTimeout(genCfg.Timeout),
		seating.WithMaxAttempts(genCfg.MaxAttempts),
	)
	m := metrics.New("")
	svc := service.NewSeatingService(configs, generations, service.NewAMQPPublisher(genCfg.AMQPURL), gen)
	svc.Metrics = m

	health := &handler.HealthHandler{DB: db, Redis: rdb}
	auth := handler.NewAuthHandler(cfg, users, tokens)
	seatingH := handler.NewSeatingHandler(svc)
	configH := handler.NewConfigHandler(configs, generations, svc)
	configH.Invalidate = func(ctx context.Context, id uint64) error {
		return middleware.InvalidateConfig(ctx, rdb, cacheCfg.Prefix, id)
	}

	limit := middleware.RateLimit(rlCfg, rdb)
	e := router.New()
	router.RegisterRoutes(e, health, m)
	router.RegisterAuth(e, auth, cfg.JWTSecret)
	router.RegisterPublic(e, seatingH, limit)
	router.RegisterTeacher(e, configH, cfg.JWTSecret, limit, middleware.SeatTableCache(cacheCfg, rdb))

	go func() {
		if err := queue.StartGenerationConsumer(ctx, genCfg.AMQPURL, genCfg.LogDir); err != nil {
			log.Printf("generation consumer stopped: %v", err)
		}
	}()

	go purgeTokens(ctx, tokens, time.Hour)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal(err)
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("shutdown: %v", err)
	}
}

// purgeTokens drops stale refresh tokens every interval until ctx is done.
func purgeTokens(ctx context.Context, tokens *repository.TokenRepo, interval time.Duration) {
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			n, err := tokens.PurgeStale(ctx, time.Now().UTC())
			if err != nil {
				log.Printf("purge refresh tokens: %v", err)
				continue
			}
			if n > 0 {
				log.Printf("purged %d stale refresh tokens", n)
			}
		}
	}
}
