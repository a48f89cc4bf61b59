package shared

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	AppEnv      string
	HTTPAddr    string
	MetricsAddr string
	MySQLDSN    string
	RedisAddr   string
	RedisDB     int
	RedisPass   string

	// per-IP fixed-window rate limit
	RateLimit  int
	RateWindow time.Duration

	// seeder
	SeedFile    string
	SeedWorkers int
	SeedRPS     int
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	return Config{
		AppEnv:      env("APP_ENV", "prod"),
		HTTPAddr:    env("HTTP_ADDR", ":8080"),
		MetricsAddr: env("METRICS_ADDR", ":9100"),
		MySQLDSN:    env("MYSQL_DSN", "root:root@tcp(localhost:3306)/tourism?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:   env("REDIS_ADDR", "localhost:6379"),
		RedisPass:   env("REDIS_PASSWORD", ""),
		RedisDB:     atoi("REDIS_DB", 0),
		RateLimit:   atoi("RATE_LIMIT", 100),
		RateWindow:  time.Duration(atoi("RATE_WINDOW_SECONDS", 60)) * time.Second,
		SeedFile:    env("SEED_FILE", "fixtures/seed.json"),
		SeedWorkers: atoi("SEED_WORKERS", 8),
		SeedRPS:     atoi("SEED_RPS", 50),
	}
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
