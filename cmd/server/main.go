package main

import (
	"log"

	"github.com/amina/opportunity-radar/internal/api"
	"github.com/amina/opportunity-radar/internal/cache"
	"github.com/amina/opportunity-radar/internal/catalog"
	"github.com/amina/opportunity-radar/internal/config"
	"github.com/amina/opportunity-radar/internal/ingest"
	"github.com/amina/opportunity-radar/internal/telegram"
)

func main() {
	cfg := config.Load()

	registry, err := ingest.LoadRegistry(cfg.SourcesPath)
	if err != nil {
		log.Fatalf("Failed to load source registry: %v", err)
	}

	curated, err := catalog.Load()
	if err != nil {
		log.Fatalf("Failed to load curated catalogue: %v", err)
	}

	aggregator := ingest.NewAggregator(ingest.BuildAdapters(registry), curated)

	var store *cache.Cache
	if cfg.RedisURL != "" {
		store, err = cache.New(cfg.RedisURL, cfg.CacheTTL)
		if err != nil {
			log.Printf("Response caching disabled: %v", err)
			store = nil
		} else {
			defer store.Close()
		}
	}

	var notifier api.Notifier
	if cfg.TelegramToken != "" {
		notifier = telegram.NewNotifier(cfg.TelegramToken)
	} else {
		log.Printf("TELEGRAM_BOT_TOKEN not set; digest endpoint disabled")
	}

	srv := api.NewServer(aggregator, notifier, store, cfg.CORSOrigins)
	log.Printf("Server starting on port %s...", cfg.Port)
	if err := srv.Start(cfg.Port); err != nil {
		log.Fatal(err)
	}
}
