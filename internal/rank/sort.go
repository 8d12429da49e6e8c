package rank

import (
	"math"
	"sort"

	"github.com/amina/opportunity-radar/internal/models"
)

// Confidence deltas at or below this are ranking noise and fall through to
// the date and title keys.
const confidenceEpsilon = 0.05

// Sort returns a new ordering of the opportunities: confidence descending
// (ignoring deltas within the epsilon), then deadline ascending with
// deadline-bearing records first, then publish date descending, then
// title. The sort is stable and the input slice is left untouched.
func Sort(opportunities []models.Opportunity) []models.Opportunity {
	sorted := make([]models.Opportunity, len(opportunities))
	copy(sorted, opportunities)
	sort.SliceStable(sorted, func(i, j int) bool {
		return less(sorted[i], sorted[j])
	})
	return sorted
}

func less(a, b models.Opportunity) bool {
	delta := a.AIConfidence - b.AIConfidence
	if math.Abs(delta) > confidenceEpsilon {
		return delta > 0
	}

	if a.Deadline != nil || b.Deadline != nil {
		if a.Deadline == nil {
			return false
		}
		if b.Deadline == nil {
			return true
		}
		if !a.Deadline.Equal(*b.Deadline) {
			return a.Deadline.Before(*b.Deadline)
		}
		return false
	}

	if a.PublishedAt != nil && b.PublishedAt != nil {
		if !a.PublishedAt.Equal(*b.PublishedAt) {
			return a.PublishedAt.After(*b.PublishedAt)
		}
		return false
	}

	return a.Title < b.Title
}
