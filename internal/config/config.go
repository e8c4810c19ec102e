package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	BaseURL        string
	City           string
	Collection     string
	CollectionName string
	CityID         string
	Pincode        string
	DataDir        string
	DatabaseURL    string
	RedisURL       string
	MetricsPort    string
	LogLevel       string
	RequestDelay   time.Duration
	ScrapeInterval time.Duration
	DetailCacheTTL time.Duration
}

func Load() *Config {
	// Loads .env from the project root, then from the current directory.
	_ = godotenv.Load("../../.env")
	_ = godotenv.Load()
	return &Config{
		BaseURL:        getEnv("BASE_URL", "https://ciago.furlenco.com"),
		City:           getEnv("CITY", "noida"),
		Collection:     getEnv("COLLECTION", "bedroom-furniture-on-rent"),
		CollectionName: getEnv("COLLECTION_NAME", "bedroom-furniture-on-rent"),
		CityID:         getEnv("CITY_ID", "6"),
		Pincode:        getEnv("PINCODE", "201010"),
		DataDir:        getEnv("DATA_DIR", "data"),
		DatabaseURL:    os.Getenv("DATABASE_URL"),
		RedisURL:       os.Getenv("REDIS_URL"),
		MetricsPort:    getEnv("METRICS_PORT", "9090"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		RequestDelay:   getDuration("REQUEST_DELAY", 100*time.Millisecond),
		ScrapeInterval: getDuration("SCRAPE_INTERVAL", 5*time.Minute),
		DetailCacheTTL: getDuration("DETAIL_CACHE_TTL", 0),
	}
}

func getEnv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

// getDuration parses a Go duration ("100ms", "5m") or a plain number of seconds.
func getDuration(k string, d time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return d
	}
	if parsed, err := time.ParseDuration(v); err == nil {
		return parsed
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	return d
}
