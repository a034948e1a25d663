package main

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

	"github.com/avivbaron/urldefang/internal/buildinfo"
	"github.com/avivbaron/urldefang/internal/cache"
	"github.com/avivbaron/urldefang/internal/config"
	"github.com/avivbaron/urldefang/internal/convert"
	"github.com/avivbaron/urldefang/internal/httpserver"
	"github.com/avivbaron/urldefang/internal/logs"
	"github.com/avivbaron/urldefang/internal/ratelimit"
)

func loadDotenv() {
	// Load .env if it exists, but don't fail if it's missing.
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			log.Printf("warning: couldn't load .env: %v", err)
		}
	}
}

func main() {
	loadDotenv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := logs.NewWithOptions(logs.Options{
		Level:          cfg.LogLevel,
		Output:         cfg.LogOutput,
		FilePath:       cfg.LogFilePath,
		FileMaxSizeMB:  cfg.LogFileMaxSize,
		FileMaxBackups: cfg.LogFileMaxBackups,
		FileMaxAgeDays: cfg.LogFileMaxAge,
		FileCompress:   cfg.LogFileCompress,
	})

	limiter := ratelimit.New(cfg.RatePerSec, cfg.RateBurst)
	defer limiter.Close()

	c, closeCache, err := cache.NewFromConfig(cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("cache init failed")
	}
	defer closeCache()

	svc := convert.NewService(c, cfg.CacheTTL, cfg.MaxLines, logger)

	addr := ":" + cfg.Port
	srv := httpserver.New(addr, logger, limiter, httpserver.Deps{
		Cache:        c,
		Converter:    svc,
		MaxLineLen:   cfg.MaxLineLen,
		MaxBodyBytes: cfg.MaxBodyBytes,
	}, cfg.MetricsEnabled)

	go func() {
		logger.Info().
			Str("addr", addr).
			Str("version", buildinfo.Version).
			Str("cache", cfg.CacheBackend).
			Int("max_lines", cfg.MaxLines).
			Int("rate_per_sec", cfg.RatePerSec).
			Int("burst", cfg.RateBurst).
			Msg("listening")
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Str("addr", addr).Msg("server failed")
		}
	}()

	// os.Interrupt is Ctrl+C, SIGTERM comes from Docker/k8s.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("graceful shutdown error")
	}
	logger.Info().Msg("server stopped")
}
