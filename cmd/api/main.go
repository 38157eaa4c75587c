package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"storefront-app/internal/audit"
	"storefront-app/internal/auth"
	"storefront-app/internal/bigcommerce"
	"storefront-app/internal/config"
	"storefront-app/internal/httpapi"
	"storefront-app/internal/store"
	"storefront-app/pkg/logger"
	"storefront-app/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func main() {
	// Root context that cancels on shutdown
	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("config load failed", "err", err)
		os.Exit(1)
	}

	log := logger.New(cfg.App.Env)
	slog.SetDefault(log)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	authManager, err := auth.NewManager(cfg.Auth)
	if err != nil {
		log.Error("auth init failed", "err", err)
		os.Exit(1)
	}

	var db *sql.DB
	var stores store.Repository = store.NewMemoryRepo()
	if cfg.HasPostgres() {
		db, err = utils.OpenPostgres(rootCtx, cfg.PostgresDSN(), utils.PostgresPoolConfig{})
		if err != nil {
			log.Error("postgres init failed", "err", err)
			os.Exit(1)
		}
		defer db.Close()

		pg := store.NewPostgresRepo(db)
		if err := pg.EnsureSchema(rootCtx); err != nil {
			log.Error("schema init failed", "err", err)
			os.Exit(1)
		}
		stores = pg
	} else {
		log.Warn("DB_HOST not set; installed stores are kept in memory")
	}

	var rdb *redis.Client
	if cfg.HasRedis() {
		rdb, err = utils.OpenRedis(rootCtx, utils.RedisConfig{Addr: cfg.RedisAddr()})
		if err != nil {
			log.Error("redis init failed", "err", err)
			os.Exit(1)
		}
		defer rdb.Close()
		stores = store.NewCachedRepo(stores, rdb, 0, log)
	}

	h := httpapi.Handlers{
		BaseURL:  cfg.App.BaseURL,
		Auth:     authManager,
		Platform: bigcommerce.NewClient(cfg.BigCommerce),
		Stores:   stores,
		Audit:    audit.NewService(audit.NewLogRepo(log)),
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(logger.Middleware(log))

	registerRoutes(r, h, db)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Info("api listening", "addr", srv.Addr, "env", cfg.App.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("http server failed", "err", err)
			stop()
		}
	}()

	<-rootCtx.Done()
	log.Info("shutdown initiated")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 20*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("http shutdown failed", "err", err)
	}
}
