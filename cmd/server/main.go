package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"nba-prop-checker/internal/api"
	"nba-prop-checker/internal/auth"
	"nba-prop-checker/internal/cache"
	"nba-prop-checker/internal/config"
	"nba-prop-checker/internal/gamelog"
	"nba-prop-checker/internal/logger"
	"nba-prop-checker/internal/server"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg := config.Load()
	log := logger.New(cfg.Env)
	defer log.Sync()

	if err := config.Validate(cfg); err != nil {
		log.Fatalw("invalid configuration", "error", err)
	}
	if cfg.APIKey == "" {
		log.Warn("BALLDONTLIE_API_KEY not set, provider requests will be rejected")
	}
	log.Infow("starting", "config", cfg.Describe())

	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	client := api.NewBallDontLieClient(cfg.APIKey, cfg.RequestsPerMinute)

	store, err := gamelog.NewStore(cfg.DBPath)
	if err != nil {
		log.Fatalw("opening game log", "path", cfg.DBPath, "error", err)
	}
	defer store.Close()
	games := gamelog.NewCachedSource(store, client, cfg.GameCacheTTL, log.Named("gamelog"))

	var players server.PlayerFinder = client
	if cfg.RedisURL != "" {
		rdb, err := newRedisClient(cfg.RedisURL)
		if err != nil {
			log.Warnw("player cache disabled", "error", err)
		} else {
			defer rdb.Close()
			players = cache.NewCachedFinder(cache.NewPlayerCache(rdb, cfg.PlayerCacheTTL), client, log.Named("cache"))
			log.Info("player cache enabled")
		}
	}

	h := server.ApiHandler{
		Players: players,
		Games:   games,
		Issuer:  auth.NewIssuer(cfg.JWTSecret, cfg.TokenTTL),
		Log:     log.Named("http"),
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           h.NewRouter(cfg.CORSOrigins),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Infow("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("server error", "error", err)
		}
	}()

	waitForShutdown(srv, log)
}

func newRedisClient(url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, err
	}
	rdb := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, err
	}
	return rdb, nil
}

func waitForShutdown(srv *http.Server, log *zap.SugaredLogger) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Info("shutdown signal received, stopping...")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Errorw("graceful shutdown failed", "error", err)
	}
}
