package rank

import (
	"testing"
	"time"

	"github.com/amina/opportunity-radar/internal/models"
)

func ptr(t time.Time) *time.Time { return &t }

func baseOpportunity() models.Opportunity {
	deadline := time.Now().UTC().AddDate(0, 0, 14)
	return models.Opportunity{
		ID:           "base",
		Type:         models.TypeScholarship,
		Title:        "Graduate Scholarship in Algiers",
		Summary:      "Funded masters programme",
		Description:  "Covers tuition and housing",
		CountryFocus: []string{"Algeria"},
		Tags:         []string{"scholarship", "masters"},
		Mode:         models.ModeInPerson,
		Funding:      "Full tuition",
		AIConfidence: 0.85,
		Deadline:     &deadline,
	}
}

func TestFilterConjunction(t *testing.T) {
	full := models.OpportunityFilter{
		Query:              "tuition",
		Types:              []models.OpportunityType{models.TypeScholarship},
		Mode:               models.ModeInPerson,
		Country:            "alger",
		Tag:                "Masters",
		HasFunding:         true,
		MinConfidence:      0.80,
		DeadlineWithinDays: 30,
	}

	passing := baseOpportunity()
	if got := Filter([]models.Opportunity{passing}, full); len(got) != 1 {
		t.Fatal("record satisfying every criterion should pass")
	}

	// Each variant breaks exactly one criterion.
	tests := []struct {
		name   string
		mutate func(*models.Opportunity)
	}{
		{"wrong kind", func(o *models.Opportunity) { o.Type = models.TypeInternship }},
		{"wrong mode", func(o *models.Opportunity) { o.Mode = models.ModeRemote }},
		{"country mismatch", func(o *models.Opportunity) { o.CountryFocus = []string{"Morocco"} }},
		{"tag mismatch", func(o *models.Opportunity) { o.Tags = []string{"scholarship"} }},
		{"confidence too low", func(o *models.Opportunity) { o.AIConfidence = 0.70 }},
		{"deadline too far", func(o *models.Opportunity) { o.Deadline = ptr(time.Now().UTC().AddDate(0, 0, 60)) }},
		{"deadline missing", func(o *models.Opportunity) { o.Deadline = nil }},
		{"query mismatch", func(o *models.Opportunity) {
			o.Title, o.Summary, o.Description = "Other", "Other", "Other"
			o.Tags = []string{"masters"}
		}},
		{"no funding", func(o *models.Opportunity) { o.Funding, o.Stipend = "", "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opp := baseOpportunity()
			tt.mutate(&opp)
			if got := Filter([]models.Opportunity{opp}, full); len(got) != 0 {
				t.Errorf("record failing the %q criterion should be excluded", tt.name)
			}
		})
	}
}

func TestFilterEmptyCriteriaPassesEverything(t *testing.T) {
	a := baseOpportunity()
	b := baseOpportunity()
	b.ID = "second"
	b.Title = "Another"

	got := Filter([]models.Opportunity{a, b}, models.OpportunityFilter{})
	if len(got) != 2 {
		t.Fatalf("empty filter returned %d records, want 2", len(got))
	}
	if got[0].ID != "base" || got[1].ID != "second" {
		t.Error("empty filter should preserve order")
	}
}

func TestFilterModeAnySentinel(t *testing.T) {
	opp := baseOpportunity()
	got := Filter([]models.Opportunity{opp}, models.OpportunityFilter{Mode: models.ModeAny})
	if len(got) != 1 {
		t.Error("mode \"any\" should impose no constraint")
	}
}

func TestFilterDeadlineWithinDaysExcludesNil(t *testing.T) {
	withDeadline := baseOpportunity()
	without := baseOpportunity()
	without.ID = "no-deadline"
	without.Deadline = nil

	got := Filter([]models.Opportunity{withDeadline, without}, models.OpportunityFilter{DeadlineWithinDays: 30})
	if len(got) != 1 || got[0].ID != "base" {
		t.Errorf("deadline criterion should exclude records without a deadline, got %d", len(got))
	}
}

func TestFilterQueryMatchesTags(t *testing.T) {
	opp := baseOpportunity()
	got := Filter([]models.Opportunity{opp}, models.OpportunityFilter{Query: "MASTERS"})
	if len(got) != 1 {
		t.Error("free-text query should match tags case-insensitively")
	}
}

func TestFilterThenSortIdempotent(t *testing.T) {
	now := time.Now().UTC()
	opportunities := []models.Opportunity{
		{ID: "a", Title: "A", AIConfidence: 0.90, Deadline: ptr(now.AddDate(0, 0, 5)), CountryFocus: []string{"Algeria"}},
		{ID: "b", Title: "B", AIConfidence: 0.88, Deadline: ptr(now.AddDate(0, 0, 2)), CountryFocus: []string{"Algeria"}},
		{ID: "c", Title: "C", AIConfidence: 0.60, PublishedAt: ptr(now.AddDate(0, 0, -1)), CountryFocus: []string{"Algeria"}},
	}
	filter := models.OpportunityFilter{Country: "algeria"}

	first := Sort(Filter(opportunities, filter))
	second := Sort(Filter(first, filter))
	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Errorf("position %d changed between passes: %q vs %q", i, first[i].ID, second[i].ID)
		}
	}
}
