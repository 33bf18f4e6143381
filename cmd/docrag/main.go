package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/kailas-cloud/docrag/internal/config"
	"github.com/kailas-cloud/docrag/internal/db"
	"github.com/kailas-cloud/docrag/internal/db/memory"
	dbRedis "github.com/kailas-cloud/docrag/internal/db/redis"
	"github.com/kailas-cloud/docrag/internal/domain/relevance"
	logpkg "github.com/kailas-cloud/docrag/internal/logger"
	"github.com/kailas-cloud/docrag/internal/metrics"
	"github.com/kailas-cloud/docrag/internal/repository/ctxcache"
	chiTransport "github.com/kailas-cloud/docrag/internal/transport/chi"
	healthuc "github.com/kailas-cloud/docrag/internal/usecase/health"
	raguc "github.com/kailas-cloud/docrag/internal/usecase/rag"
	"github.com/kailas-cloud/docrag/internal/version"
)

func main() {
	// .env is optional; real environment variables take precedence.
	_ = godotenv.Load()

	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting docrag API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("cache_driver", cfg.Cache.Driver),
		zap.String("ordering", cfg.Pipeline.Ordering),
	)

	ordering, err := relevance.ParseOrdering(cfg.Pipeline.Ordering)
	if err != nil {
		logger.Fatal("Invalid ranking order", zap.Error(err))
	}
	scorer := &relevance.Scorer{
		TopK:      cfg.Pipeline.TopK,
		ChunkSize: cfg.Pipeline.ChunkSize,
		Ordering:  ordering,
	}

	metrics.RegisterPipelineMetrics()

	store, err := openCache(cfg.Cache, logger)
	if err != nil {
		logger.Fatal("Failed to open context cache", zap.Error(err))
	}

	// Pass nil interface (not typed nil pointer!) when the cache is disabled.
	var retriever raguc.ContextRetriever = raguc.RankerRetriever{Ranker: scorer}
	var cachePinger healthuc.Pinger
	if store != nil {
		defer store.Close()
		ttl := time.Duration(cfg.Cache.TTLSec) * time.Second
		retriever = ctxcache.New(scorer, store, ttl, metrics.ContextCacheTotal, logger)
		cachePinger = store
	}

	ragSvc := raguc.New(retriever).
		WithRecorder(metrics.PipelineRecorder{}).
		WithContextUsed(cfg.Pipeline.ContextUsed)
	healthSvc := healthuc.New().WithComponent("cache", cachePinger)

	server := chiTransport.NewServer(ragSvc, healthSvc, logger).
		WithMaxBodyBytes(cfg.HTTP.MaxBodyBytes)

	r := chi.NewRouter()
	r.Use(chiTransport.JSONRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(chiTransport.WideEventMiddleware(logger))
	r.Use(chiTransport.CORS(cfg.CORS.AllowedOrigins))
	r.Use(metrics.Middleware())
	server.Register(r)

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

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// openCache builds the context cache store for the configured driver.
// It returns a nil store when caching is disabled.
func openCache(cfg config.CacheConfig, logger *zap.Logger) (db.Store, error) {
	switch cfg.Driver {
	case "none":
		return nil, nil
	case "memory":
		logger.Info("Using in-process context cache", zap.Int("max_entries", cfg.MaxEntries))
		return memory.NewStore(cfg.MaxEntries), nil
	case "redis", "valkey":
		store, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Addrs,
			Username: cfg.Username,
			Password: cfg.Password,
			DB:       cfg.DB,
		})
		if err != nil {
			return nil, err
		}
		timeout := time.Duration(cfg.ReadinessTimeout) * time.Second
		if err := store.WaitForReady(context.Background(), timeout); err != nil {
			store.Close()
			return nil, err
		}
		logger.Info("Connected to context cache", zap.Strings("addrs", cfg.Addrs))
		return store, nil
	default:
		return nil, fmt.Errorf("unknown cache driver %q", cfg.Driver)
	}
}
