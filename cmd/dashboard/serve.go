package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/TheShai81/music-dashboard/internal/config"
	dbRedis "github.com/TheShai81/music-dashboard/internal/db/redis"
	logpkg "github.com/TheShai81/music-dashboard/internal/logger"
	"github.com/TheShai81/music-dashboard/internal/metrics"
	catalogrepo "github.com/TheShai81/music-dashboard/internal/repository/catalog"
	"github.com/TheShai81/music-dashboard/internal/transport/api"
	chiTransport "github.com/TheShai81/music-dashboard/internal/transport/chi"
	catalogus "github.com/TheShai81/music-dashboard/internal/usecase/catalog"
	"github.com/TheShai81/music-dashboard/internal/version"
)

const apiBaseURL = "/api/v1"

func serve(_ *cli.Context, rt cmdEnv) error {
	cfg, logger := rt.cfg, rt.logger

	logger.Info("Starting music dashboard API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", rt.env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("db_path", cfg.Database.Path),
		zap.String("sampler", cfg.Catalog.Sampler),
	)

	store, err := openDatabase(cfg.Database, logger)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	ctx := context.Background()
	if err := store.Ping(ctx); err != nil {
		return fmt.Errorf("database not reachable: %w", err)
	}
	logger.Info("Connected to database")

	var index *dbRedis.Store
	if cfg.Catalog.Sampler == config.SamplerRedis {
		index, err = openIndex(ctx, cfg.Catalog)
		if err != nil {
			return err
		}
		defer index.Close()
		logger.Info("Connected to sample index", zap.Strings("addrs", cfg.Catalog.Redis.Addrs))
	}

	metrics.RegisterRecommendMetrics()

	svc := buildServices(cfg, store, index, logger)
	server := chiTransport.NewServer(
		svc.taste, svc.likes, svc.social, svc.recommend, svc.insights, svc.health, logger,
	).WithDefaults(chiTransport.Defaults{
		SampleSize:   cfg.Recommend.SampleSize,
		TopK:         cfg.Recommend.TopK,
		ReturnN:      cfg.Recommend.ReturnN,
		DiscoverSize: cfg.Recommend.DiscoverSize,
	})

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	if cfg.HTTP.RateLimit > 0 {
		r.Use(httprate.Limit(cfg.HTTP.RateLimit, time.Minute,
			httprate.WithKeyFuncs(httprate.KeyByIP),
			httprate.WithLimitHandler(rateLimited),
		))
	}
	if len(cfg.HTTP.CORSOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: cfg.HTTP.CORSOrigins,
			AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions},
			AllowedHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
			ExposedHeaders: []string{"X-Request-ID"},
			MaxAge:         300,
		}))
	}
	r.Use(chiTransport.BearerAuthMiddleware(apiBaseURL, cfg.Auth.APIKeys))
	r.Use(metrics.Middleware())
	api.HandlerWithOptions(server, api.ChiServerOptions{
		BaseURL:          apiBaseURL,
		BaseRouter:       r,
		ErrorHandlerFunc: chiTransport.ParamErrorHandler,
	})

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case err := <-serveErr:
		return fmt.Errorf("http server: %w", err)
	case <-quit:
		logger.Info("Received shutdown signal")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
	return nil
}

func migrate(c *cli.Context, rt cmdEnv) error {
	store, err := openDatabase(rt.cfg.Database, rt.logger)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	if err := store.Migrate(c.Context); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	rt.logger.Info("Schema is up to date", zap.String("db_path", rt.cfg.Database.Path))
	return nil
}

func syncIndex(c *cli.Context, rt cmdEnv) error {
	cfg := rt.cfg
	store, err := openDatabase(cfg.Database, rt.logger)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	index, err := openIndex(c.Context, cfg.Catalog)
	if err != nil {
		return err
	}
	defer index.Close()

	catalog := catalogrepo.New(store.Gorm())
	n, err := catalogus.NewIndexSync(catalog, index, cfg.Catalog.IndexKey, cfg.Catalog.SyncBatch).
		Sync(logpkg.ContextWithLogger(c.Context, rt.logger))
	if err != nil {
		return fmt.Errorf("sync index: %w", err)
	}
	fmt.Fprintf(c.App.Writer, "indexed %d tracks into %s\n", n, cfg.Catalog.IndexKey)
	return nil
}
