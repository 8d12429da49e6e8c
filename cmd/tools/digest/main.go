// Command digest runs one aggregation and sends the leading matches to a
// Telegram chat. Intended for cron-driven delivery outside the server.
package main

import (
	"context"
	"flag"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/amina/opportunity-radar/internal/catalog"
	"github.com/amina/opportunity-radar/internal/config"
	"github.com/amina/opportunity-radar/internal/ingest"
	"github.com/amina/opportunity-radar/internal/models"
	"github.com/amina/opportunity-radar/internal/telegram"
)

func main() {
	chatID := flag.String("chat", "", "Telegram chat id (defaults to TELEGRAM_CHAT_ID)")
	limit := flag.Int("limit", 6, "maximum digest entries (1-10)")
	query := flag.String("query", "", "free-text filter")
	types := flag.String("types", "", "comma-separated kinds (scholarship,internship)")
	country := flag.String("country", "", "country focus substring")
	minConfidence := flag.Float64("min-confidence", 0, "minimum confidence score")
	deadlineDays := flag.Int("deadline-days", 0, "only entries with a deadline within N days")
	funding := flag.Bool("funding", false, "only entries with funding or stipend")
	flag.Parse()

	cfg := config.Load()
	if *chatID == "" {
		*chatID = cfg.TelegramChatID
	}
	if *chatID == "" {
		log.Fatal("No chat id: pass -chat or set TELEGRAM_CHAT_ID")
	}
	if cfg.TelegramToken == "" {
		log.Fatal("TELEGRAM_BOT_TOKEN is not set")
	}
	if *limit < 1 {
		*limit = 1
	}
	if *limit > 10 {
		*limit = 10
	}

	filter := models.OpportunityFilter{
		Query:              *query,
		Country:            *country,
		MinConfidence:      *minConfidence,
		DeadlineWithinDays: *deadlineDays,
		HasFunding:         *funding,
	}
	for _, t := range strings.Split(*types, ",") {
		switch models.OpportunityType(strings.TrimSpace(t)) {
		case models.TypeScholarship:
			filter.Types = append(filter.Types, models.TypeScholarship)
		case models.TypeInternship:
			filter.Types = append(filter.Types, models.TypeInternship)
		}
	}

	registry, err := ingest.LoadRegistry(cfg.SourcesPath)
	if err != nil {
		log.Fatalf("Failed to load source registry: %v", err)
	}
	curated, err := catalog.Load()
	if err != nil {
		log.Fatalf("Failed to load curated catalogue: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	aggregator := ingest.NewAggregator(ingest.BuildAdapters(registry), curated)
	matched := aggregator.Relevant(ctx, filter)
	entries := telegram.DigestEntries(matched, *limit)

	dispatchID := uuid.NewString()
	notifier := telegram.NewNotifier(cfg.TelegramToken)
	if err := notifier.SendDigest(ctx, *chatID, entries); err != nil {
		log.Fatalf("Digest %s failed: %v", dispatchID, err)
	}
	log.Printf("Digest %s sent: %d entries to chat %s", dispatchID, len(entries), *chatID)
}
