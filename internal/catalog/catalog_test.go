package catalog

import (
	"testing"

	"github.com/amina/opportunity-radar/internal/models"
)

func TestLoad(t *testing.T) {
	opportunities, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(opportunities) == 0 {
		t.Fatal("embedded catalogue should not be empty")
	}

	seen := make(map[string]bool)
	for _, opp := range opportunities {
		if len(opp.ID) != 16 {
			t.Errorf("%q: id = %q, want 16-char content hash", opp.Title, opp.ID)
		}
		if seen[opp.ID] {
			t.Errorf("%q: duplicate id %q", opp.Title, opp.ID)
		}
		seen[opp.ID] = true

		if opp.Source.Type != models.SourceCurated {
			t.Errorf("%q: source type = %q, want curated", opp.Title, opp.Source.Type)
		}
		if opp.Title == "" || opp.URL == "" {
			t.Errorf("entry %q missing title or url", opp.ID)
		}
		if len(opp.CountryFocus) == 0 {
			t.Errorf("%q: countryFocus should never be empty", opp.Title)
		}
		if opp.AIConfidence <= 0 || opp.AIConfidence > 0.98 {
			t.Errorf("%q: confidence = %v, want within (0, 0.98]", opp.Title, opp.AIConfidence)
		}
		switch opp.Type {
		case models.TypeScholarship, models.TypeInternship:
		default:
			t.Errorf("%q: unknown type %q", opp.Title, opp.Type)
		}
	}
}

func TestLoadParsesDeadlines(t *testing.T) {
	opportunities, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	var withDeadline int
	for _, opp := range opportunities {
		if opp.Deadline != nil {
			withDeadline++
			if opp.Deadline.Location().String() != "UTC" {
				t.Errorf("%q: deadline not in UTC", opp.Title)
			}
		}
	}
	if withDeadline == 0 {
		t.Error("catalogue should include at least one deadline-bearing entry")
	}
}
