package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lamsaclean/site-api/internal/api"
	"github.com/lamsaclean/site-api/internal/core/ports"
	"github.com/lamsaclean/site-api/internal/core/service"
	"github.com/lamsaclean/site-api/internal/infrastructure/config"
	mongodb "github.com/lamsaclean/site-api/internal/infrastructure/db/mongo"
	redisdb "github.com/lamsaclean/site-api/internal/infrastructure/db/redis"
	"github.com/lamsaclean/site-api/internal/infrastructure/queue"
	"github.com/lamsaclean/site-api/internal/infrastructure/store/memory"
	"github.com/lamsaclean/site-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: !cfg.IsProduction()})

	if cfg.JWTSecret == config.DefaultJWTSecret {
		if cfg.IsProduction() {
			log.Fatal().Msg("JWT_SECRET must be set in production")
		}
		log.Warn().Msg("JWT_SECRET not set, using insecure development default")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	deps := api.Deps{Config: cfg, Log: log}

	// User and contact stores: MongoDB when configured, in-memory otherwise.
	var (
		userStore    ports.UserStore
		contactStore ports.ContactStore
	)
	if cfg.Mongo.URI != "" {
		client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			log.Fatal().Err(err).Msg("mongodb connection failed")
		}
		defer func() {
			disconnectCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			_ = client.Disconnect(disconnectCtx)
		}()
		userStore = mongodb.NewUserStore(db)
		contactStore = mongodb.NewContactStore(db)
		deps.Mongo = db
		log.Info().Str("database", cfg.Mongo.Database).Msg("using mongodb stores")
	} else {
		userStore = memory.NewUserStore()
		contactStore = memory.NewContactStore()
		log.Info().Msg("using in-memory stores, contents are lost on restart")
	}

	// Rate limiter and duplicate checker: Redis when configured.
	var (
		limiter ports.RateLimiter
		dedup   service.DuplicateChecker
	)
	if cfg.Redis.Addr != "" {
		rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			log.Fatal().Err(err).Msg("redis connection failed")
		}
		defer func() { _ = rdb.Close() }()
		limiter = redisdb.NewRateLimiter(rdb)
		dedup = redisdb.NewDuplicateChecker(rdb)
		deps.Redis = rdb
		log.Info().Str("addr", cfg.Redis.Addr).Msg("using redis rate limiter")
	} else {
		memLimiter := service.NewMemoryRateLimiter()
		defer memLimiter.Close()
		limiter = memLimiter
	}

	hasher := service.NewPasswordHasher()
	auth := service.NewAuthService(userStore, hasher)
	if err := auth.EnsureDefaultAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		log.Fatal().Err(err).Msg("failed to seed default administrator")
	}

	contact := service.NewContactService(contactStore, dedup, log)
	dispatcher := queue.NewDispatcher(0, contact, log)
	dispatcher.Start(ctx)

	deps.Users = userStore
	deps.Auth = auth
	deps.Tokens = service.NewTokenService(cfg.JWTSecret, cfg.SessionTTL)
	deps.Limiter = limiter
	deps.Queue = dispatcher

	e := api.NewRouter(deps)

	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server started")

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
