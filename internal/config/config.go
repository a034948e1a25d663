package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Port         string
	MaxLines     int   // raw input lines processed per request, 0 => unlimited
	MaxLineLen   int   // bytes per line accepted by the API
	MaxBodyBytes int64 // request body cap

	CacheBackend  string        // memory|redis|none
	CacheTTL      time.Duration // TTL for cached conversions
	CacheMaxItems int           // memory backend LRU cap, 0 => unlimited
	CacheSweepMin time.Duration
	CacheSweepMax time.Duration
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	RatePerSec int
	RateBurst  int

	LogLevel          string // info|debug|warn|error
	LogOutput         string // stdout|file|both
	LogFilePath       string // ./logs/urldefang.log
	LogFileMaxSize    int    // MB
	LogFileMaxBackups int    // files
	LogFileMaxAge     int    // days
	LogFileCompress   bool

	MetricsEnabled bool // expose /metrics and collect
}

func Load() (Config, error) {
	c := Config{
		Port:         getenv("PORT", "8080"),
		MaxLines:     getIntEnv("MAX_LINES", 100),
		MaxLineLen:   getIntEnv("MAX_LINE_LEN", 8192),
		MaxBodyBytes: int64(getIntEnv("MAX_BODY_BYTES", 1<<20)),

		CacheBackend:  strings.ToLower(getenv("CACHE_BACKEND", "memory")),
		CacheTTL:      getDurationEnv("CACHE_TTL", "10m"),
		CacheMaxItems: getIntEnv("CACHE_MAX_ITEMS", 10000),
		CacheSweepMin: getDurationEnv("CACHE_SWEEP_MIN", "1s"),
		CacheSweepMax: getDurationEnv("CACHE_SWEEP_MAX", "5m"),
		RedisAddr:     getenv("REDIS_ADDR", "127.0.0.1:6379"),
		RedisPassword: getenv("REDIS_PASSWORD", ""),
		RedisDB:       getIntEnv("REDIS_DB", 0),

		RatePerSec: getIntEnv("RATE_PER_SEC", 10),
		RateBurst:  getIntEnv("RATE_BURST", 20),

		LogLevel:          strings.ToLower(getenv("LOG_LEVEL", "info")),
		LogOutput:         strings.ToLower(getenv("LOG_OUTPUT", "stdout")),
		LogFilePath:       getenv("LOG_FILE_PATH", "./logs/urldefang.log"),
		LogFileMaxSize:    getIntEnv("LOG_FILE_MAX_SIZE", 50),
		LogFileMaxBackups: getIntEnv("LOG_FILE_MAX_BACKUPS", 5),
		LogFileMaxAge:     getIntEnv("LOG_FILE_MAX_AGE", 28),
		LogFileCompress:   getBoolEnv("LOG_FILE_COMPRESS", true),

		MetricsEnabled: getBoolEnv("METRICS_ENABLED", true),
	}

	// Basic sanity checks
	switch c.CacheBackend {
	case "memory", "redis", "none":
	default:
		return Config{}, fmt.Errorf("invalid CACHE_BACKEND: %s", c.CacheBackend)
	}
	switch c.LogOutput {
	case "stdout", "file", "both":
	default:
		return Config{}, fmt.Errorf("invalid LOG_OUTPUT: %s", c.LogOutput)
	}
	if c.MaxLines < 0 {
		c.MaxLines = 0
	}
	if c.MaxLineLen <= 0 {
		c.MaxLineLen = 8192
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = 1 << 20
	}
	if c.RatePerSec <= 0 {
		c.RatePerSec = 1
	}
	if c.RateBurst < c.RatePerSec {
		c.RateBurst = c.RatePerSec
	}
	return c, nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getDurationEnv(env, def string) time.Duration {
	if v := os.Getenv(env); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	d, _ := time.ParseDuration(def)
	return d
}

func getBoolEnv(env string, def bool) bool {
	if v := os.Getenv(env); v != "" {
		s := strings.ToLower(v)
		return s == "1" || s == "true" || s == "yes" || s == "y"
	}
	return def
}

func getIntEnv(env string, def int) int {
	if v := os.Getenv(env); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}
