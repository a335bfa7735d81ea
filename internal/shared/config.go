package shared

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv         string
	HotelName      string
	HTTPAddr       string
	MetricsAddr    string
	MySQLDSN       string
	RedisAddr      string
	RedisDB        int
	RedisPass      string
	AMQPURL        string
	CacheTTL       time.Duration
	RateLimitRPS   int
	RateLimitBurst int
	ReservationIDs string // length|monotonic
	APIBaseURL     string
	SeedWorkers    int
	SeedFile       string
}

// Load reads configuration from the environment, after merging an optional .env file.
func Load() Config {
	if err := godotenv.Load(); err == nil {
		log.Debug().Msg(".env loaded")
	}
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:         env("APP_ENV", "prod"),
		HotelName:      env("HOTEL_NAME", "Grand Plaza"),
		HTTPAddr:       env("HTTP_ADDR", ":8080"),
		MetricsAddr:    env("METRICS_ADDR", ""),
		MySQLDSN:       env("MYSQL_DSN", ""),
		RedisAddr:      env("REDIS_ADDR", "localhost:6379"),
		RedisPass:      env("REDIS_PASSWORD", ""),
		RedisDB:        atoi("REDIS_DB", 0),
		AMQPURL:        env("AMQP_URL", ""),
		CacheTTL:       time.Duration(atoi("CACHE_TTL_SECONDS", 60)) * time.Second,
		RateLimitRPS:   atoi("RATE_LIMIT_RPS", 20),
		RateLimitBurst: atoi("RATE_LIMIT_BURST", 40),
		ReservationIDs: env("RESERVATION_IDS", "monotonic"),
		APIBaseURL:     env("API_BASE_URL", "http://localhost:8080"),
		SeedWorkers:    atoi("SEED_WORKERS", 4),
		SeedFile:       env("SEED_FILE", ""),
	}
	if c.ReservationIDs != "length" && c.ReservationIDs != "monotonic" {
		log.Warn().Str("value", c.ReservationIDs).Msg("unknown RESERVATION_IDS, using monotonic")
		c.ReservationIDs = "monotonic"
	}
	if c.MySQLDSN == "" {
		log.Warn().Msg("MYSQL_DSN is empty; audit log disabled")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
