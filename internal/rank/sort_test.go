package rank

import (
	"testing"
	"time"

	"github.com/amina/opportunity-radar/internal/models"
)

func TestSortConfidenceDescending(t *testing.T) {
	got := Sort([]models.Opportunity{
		{ID: "low", Title: "A", AIConfidence: 0.60},
		{ID: "high", Title: "B", AIConfidence: 0.90},
	})
	if got[0].ID != "high" {
		t.Errorf("higher confidence should rank first, got %q", got[0].ID)
	}
}

func TestSortSmallConfidenceDeltaFallsThrough(t *testing.T) {
	now := time.Now().UTC()
	withDeadline := models.Opportunity{ID: "deadline", Title: "A", AIConfidence: 0.78, Deadline: ptr(now.AddDate(0, 0, 7))}
	slightlyHigher := models.Opportunity{ID: "higher", Title: "B", AIConfidence: 0.80}

	got := Sort([]models.Opportunity{slightlyHigher, withDeadline})
	if got[0].ID != "deadline" {
		t.Errorf("a 0.02 confidence delta should not outrank a deadline, got %q first", got[0].ID)
	}
}

func TestSortDeadlineAscending(t *testing.T) {
	now := time.Now().UTC()
	got := Sort([]models.Opportunity{
		{ID: "later", Title: "A", AIConfidence: 0.70, Deadline: ptr(now.AddDate(0, 0, 30))},
		{ID: "sooner", Title: "B", AIConfidence: 0.70, Deadline: ptr(now.AddDate(0, 0, 3))},
	})
	if got[0].ID != "sooner" {
		t.Errorf("earlier deadline should rank first, got %q", got[0].ID)
	}
}

func TestSortPublishDateDescending(t *testing.T) {
	now := time.Now().UTC()
	got := Sort([]models.Opportunity{
		{ID: "old", Title: "A", AIConfidence: 0.70, PublishedAt: ptr(now.AddDate(0, 0, -10))},
		{ID: "fresh", Title: "B", AIConfidence: 0.70, PublishedAt: ptr(now.AddDate(0, 0, -1))},
	})
	if got[0].ID != "fresh" {
		t.Errorf("more recent publish date should rank first, got %q", got[0].ID)
	}
}

func TestSortTitleTiebreak(t *testing.T) {
	got := Sort([]models.Opportunity{
		{ID: "z", Title: "Zeta Fellowship", AIConfidence: 0.70},
		{ID: "a", Title: "Alpha Fellowship", AIConfidence: 0.70},
	})
	if got[0].ID != "a" {
		t.Errorf("title should break the final tie, got %q first", got[0].ID)
	}
}

func TestSortDoesNotMutateInput(t *testing.T) {
	input := []models.Opportunity{
		{ID: "low", Title: "A", AIConfidence: 0.60},
		{ID: "high", Title: "B", AIConfidence: 0.90},
	}
	Sort(input)
	if input[0].ID != "low" {
		t.Error("Sort must not reorder its input slice")
	}
}

func TestSortIdempotent(t *testing.T) {
	now := time.Now().UTC()
	input := []models.Opportunity{
		{ID: "a", Title: "A", AIConfidence: 0.95, Deadline: ptr(now.AddDate(0, 0, 9))},
		{ID: "b", Title: "B", AIConfidence: 0.93, Deadline: ptr(now.AddDate(0, 0, 4))},
		{ID: "c", Title: "C", AIConfidence: 0.70},
		{ID: "d", Title: "D", AIConfidence: 0.70, PublishedAt: ptr(now)},
	}

	first := Sort(input)
	second := Sort(first)
	for i := range first {
		if first[i].ID != second[i].ID {
			t.Errorf("position %d unstable across repeated sorts: %q vs %q", i, first[i].ID, second[i].ID)
		}
	}
}
