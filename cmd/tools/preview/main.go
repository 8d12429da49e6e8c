// Command preview runs one aggregation and renders the result as a
// terminal table, for eyeballing scores and sources without the API.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/amina/opportunity-radar/internal/catalog"
	"github.com/amina/opportunity-radar/internal/config"
	"github.com/amina/opportunity-radar/internal/ingest"
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

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	aggregator := ingest.NewAggregator(ingest.BuildAdapters(registry), curated)
	aggregated := aggregator.Aggregate(ctx)

	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Title", "Kind", "Mode", "Confidence", "Deadline", "Country Focus", "Source"})

	for _, opp := range aggregated.Opportunities {
		deadline := "-"
		if opp.Deadline != nil {
			deadline = opp.Deadline.Format("2006-01-02")
		}
		review := ""
		if opp.ManualReviewNeeded {
			review = " *"
		}
		t.AppendRow(table.Row{
			ingest.Truncate(opp.Title, 48),
			opp.Type,
			opp.Mode,
			fmt.Sprintf("%.2f%s", opp.AIConfidence, review),
			deadline,
			strings.Join(opp.CountryFocus, ", "),
			opp.Source.Name,
		})
	}
	t.Render()

	stats := aggregated.Stats
	fmt.Printf("\n%d opportunities (%d scholarships, %d internships), %.0f%% remote-friendly, avg confidence %.2f, %d deadlines within 30 days\n",
		stats.Total, stats.Scholarships, stats.Internships, stats.RemoteRatio*100, stats.AverageConfidence, stats.DeadlinesSoon)
	fmt.Printf("generated at %s from %d sources; * = flagged for manual review\n",
		aggregated.GeneratedAt.Format(time.RFC3339), len(aggregated.Sources))
}
