package ingest

import (
	"context"
	"sync"
	"time"

	"github.com/amina/opportunity-radar/internal/models"
	"github.com/amina/opportunity-radar/internal/rank"
)

// Aggregator fans out to all configured source adapters, merges their
// output with the curated catalogue, deduplicates, sorts, and computes
// summary statistics. It holds no state between calls: every invocation
// recomputes from scratch, leaving caching to the HTTP boundary.
type Aggregator struct {
	adapters []SourceAdapter
	curated  []models.Opportunity
}

// NewAggregator builds an aggregator over an explicit ordered adapter
// list. Order matters: the first-seen rules of deduplication follow it.
func NewAggregator(adapters []SourceAdapter, curated []models.Opportunity) *Aggregator {
	return &Aggregator{adapters: adapters, curated: curated}
}

// Aggregate invokes every adapter concurrently, waits for all of them,
// and packages the merged result. Adapters cannot fail, so aggregation
// always succeeds; an empty result just means no source contributed.
func (a *Aggregator) Aggregate(ctx context.Context) models.AggregatedOpportunities {
	results := make([][]models.Opportunity, len(a.adapters))

	var wg sync.WaitGroup
	for i, adapter := range a.adapters {
		wg.Add(1)
		go func(i int, adapter SourceAdapter) {
			defer wg.Done()
			results[i] = adapter.Fetch(ctx)
		}(i, adapter)
	}
	wg.Wait()

	var combined []models.Opportunity
	for _, batch := range results {
		combined = append(combined, batch...)
	}
	combined = append(combined, a.curated...)

	sorted := rank.Sort(dedupeOpportunities(combined))
	now := time.Now().UTC()

	return models.AggregatedOpportunities{
		Opportunities: sorted,
		GeneratedAt:   now,
		Sources:       a.contributingSources(results),
		Stats:         computeStats(sorted, now),
	}
}

// Relevant aggregates and applies the filter engine. The aggregator's
// output is already sorted and filtering preserves relative order, so no
// re-sort is needed.
func (a *Aggregator) Relevant(ctx context.Context, filter models.OpportunityFilter) []models.Opportunity {
	aggregated := a.Aggregate(ctx)
	return rank.Filter(aggregated.Opportunities, filter)
}

// dedupeOpportunities collapses records sharing an id. The record with the
// higher confidence survives; ties keep the first encountered, which is
// deterministic given the fixed adapter ordering.
func dedupeOpportunities(opportunities []models.Opportunity) []models.Opportunity {
	index := make(map[string]int, len(opportunities))
	deduped := make([]models.Opportunity, 0, len(opportunities))
	for _, opp := range opportunities {
		at, ok := index[opp.ID]
		if !ok {
			index[opp.ID] = len(deduped)
			deduped = append(deduped, opp)
			continue
		}
		if opp.AIConfidence > deduped[at].AIConfidence {
			deduped[at] = opp
		}
	}
	return deduped
}

// contributingSources collects the registry of sources that actually
// contribute records, deduplicated by source id with first occurrence
// winning. Feed sources are always listed; API sources only appear when
// they returned entries, as do the sources embedded in curated records.
func (a *Aggregator) contributingSources(results [][]models.Opportunity) []models.OpportunitySource {
	seen := make(map[string]struct{})
	var sources []models.OpportunitySource

	add := func(src models.OpportunitySource) {
		if _, ok := seen[src.ID]; ok {
			return
		}
		seen[src.ID] = struct{}{}
		sources = append(sources, src)
	}

	for i, adapter := range a.adapters {
		src := adapter.Source()
		if src.Type == models.SourceRSS {
			add(src)
			continue
		}
		for _, opp := range results[i] {
			add(opp.Source)
		}
	}
	for _, opp := range a.curated {
		add(opp.Source)
	}
	return sources
}

func computeStats(opportunities []models.Opportunity, now time.Time) models.AggregationStats {
	stats := models.AggregationStats{Total: len(opportunities)}
	if stats.Total == 0 {
		return stats
	}

	soonCutoff := now.AddDate(0, 0, 30)
	var remote int
	var confidenceSum float64
	for _, opp := range opportunities {
		switch opp.Type {
		case models.TypeScholarship:
			stats.Scholarships++
		case models.TypeInternship:
			stats.Internships++
		}
		if opp.Mode == models.ModeRemote || opp.Mode == models.ModeHybrid {
			remote++
		}
		confidenceSum += opp.AIConfidence
		if opp.Deadline != nil && !opp.Deadline.Before(now) && !opp.Deadline.After(soonCutoff) {
			stats.DeadlinesSoon++
		}
	}

	stats.RemoteRatio = float64(remote) / float64(stats.Total)
	stats.AverageConfidence = confidenceSum / float64(stats.Total)
	return stats
}
