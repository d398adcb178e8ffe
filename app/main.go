package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/aperam/ai-hub/app/api"
	"github.com/aperam/ai-hub/app/cache"
	"github.com/aperam/ai-hub/app/cfg"
	"github.com/aperam/ai-hub/app/feed"
	"github.com/aperam/ai-hub/app/metrics"
	"github.com/aperam/ai-hub/app/news"
	"github.com/aperam/ai-hub/app/tasks"
)

func main() {
	appCfg, err := cfg.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if appCfg == nil {
		// Help was shown
		return
	}

	setupLogger(appCfg.Debug)

	slog.Info("Starting AI Hub News server", "version", appCfg.Version)

	registry, err := feed.LoadRegistry(appCfg.SourcesFile)
	if err != nil {
		slog.Error("Failed to load sources", "file", appCfg.SourcesFile, "error", err)
		os.Exit(1)
	}
	slog.Info("Loaded sources", "count", registry.Len(), "file", appCfg.SourcesFile)

	resultCache, err := newCache(appCfg)
	if err != nil {
		slog.Error("Failed to initialize cache", "error", err)
		os.Exit(1)
	}
	defer resultCache.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	appMetrics := metrics.New(reg)

	fetcher := feed.NewFetcher(&http.Client{}, feed.FetcherConfig{
		UserAgent:    appCfg.UserAgent,
		Timeout:      appCfg.FetchTimeout,
		Attempts:     appCfg.FetchAttempts,
		HostInterval: appCfg.HostInterval,
	})

	service := news.NewService(registry, fetcher, resultCache, appMetrics, news.Options{
		Concurrency: appCfg.FetchConcurrency,
		CacheTTL:    appCfg.CacheTTL,
		MinFiltered: appCfg.MinFiltered,
	})

	if appCfg.WarmCache {
		slog.Info("Starting cache warming scheduler",
			"workers", appCfg.WorkerCount, "interval_seconds", appCfg.SchedulerInterval)
		scheduler := tasks.NewScheduler(service, appMetrics,
			time.Duration(appCfg.SchedulerInterval)*time.Second, appCfg.WorkerCount)
		scheduler.Start()
		defer scheduler.Stop()
	}

	handler := api.NewHandler(service, resultCache, reg, appCfg.MaxNewsArticles, appCfg.Version)

	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      api.NewServer(handler),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrChan := make(chan error, 1)
	go func() {
		slog.Info("HTTP server listening", "port", appCfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		slog.Info("Received signal", "signal", sig.String())
	case err := <-serverErrChan:
		slog.Error("Server error", "error", err)
	}

	slog.Info("Shutting down server gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	slog.Info("AI Hub News server shutdown complete")
}

func setupLogger(debug bool) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})))
}

// newCache picks Redis when a URL is configured, the in-process cache otherwise.
func newCache(appCfg *cfg.Cfg) (cache.Cache, error) {
	if appCfg.RedisURL == "" {
		slog.Info("Using in-memory cache", "size", appCfg.CacheSize, "ttl", appCfg.CacheTTL)
		return cache.NewMemoryCache(appCfg.CacheSize, appCfg.CacheTTL), nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	redisCache, err := cache.NewRedisCache(ctx, appCfg.RedisURL, appCfg.CacheTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	slog.Info("Using Redis cache", "ttl", appCfg.CacheTTL)
	return redisCache, nil
}
