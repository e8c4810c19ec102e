package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"

	"catalogscraper/internal/cache"
	"catalogscraper/internal/config"
	"catalogscraper/internal/crawler"
	"catalogscraper/internal/db"
	"catalogscraper/internal/observability"
	"catalogscraper/internal/repository"
	"catalogscraper/internal/runner"
	"catalogscraper/internal/store"
)

func init() {
	log.SetFormatter(&log.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	log.SetOutput(os.Stdout)
}

func main() {
	cfg := config.Load()

	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	dailyStore, err := store.NewDailyStore(cfg.DataDir)
	if err != nil {
		log.WithError(err).Fatal("failed to open data directory")
	}

	r := &runner.Runner{
		Client: crawler.NewClient(cfg),
		Store:  dailyStore,
	}

	if cfg.DatabaseURL != "" {
		sqlDB, err := db.New(cfg.DatabaseURL)
		if err != nil {
			log.WithError(err).Fatal("failed to open postgres")
		}
		defer sqlDB.Close()
		r.Archive = &repository.Archive{DB: sqlDB}

		pool, err := db.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			log.WithError(err).Fatal("failed to open postgres pool")
		}
		defer pool.Close()
		r.History = &repository.PriceHistory{DB: pool}
	}

	if cfg.RedisURL != "" && cfg.DetailCacheTTL > 0 {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.WithError(err).Fatal("invalid REDIS_URL")
		}
		r.Cache = &cache.DetailCache{
			Client: redis.NewClient(opts),
			TTL:    cfg.DetailCacheTTL,
		}
	}

	observability.Start(cfg.MetricsPort)

	log.WithFields(log.Fields{
		"collection": cfg.Collection,
		"city":       cfg.City,
		"interval":   cfg.ScrapeInterval,
	}).Info("starting product scraper")

	if err := r.Run(ctx, cfg.ScrapeInterval); err != nil && err != context.Canceled {
		log.WithError(err).Fatal("scraper stopped")
	}

	log.Info("scraper stopped by interrupt")
}
