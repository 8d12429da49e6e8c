// Package rank holds the pure filter and sort engine applied to
// opportunity collections. It never mutates its inputs.
package rank

import (
	"strings"
	"time"

	"github.com/amina/opportunity-radar/internal/models"
)

// Filter returns the opportunities matching every supplied criterion.
// Absent criteria (zero values, or the "any" mode sentinel) impose no
// constraint; relative order is preserved.
func Filter(opportunities []models.Opportunity, f models.OpportunityFilter) []models.Opportunity {
	now := time.Now().UTC()
	result := make([]models.Opportunity, 0, len(opportunities))
	for _, opp := range opportunities {
		if matches(opp, f, now) {
			result = append(result, opp)
		}
	}
	return result
}

func matches(opp models.Opportunity, f models.OpportunityFilter, now time.Time) bool {
	if len(f.Types) > 0 && !containsType(f.Types, opp.Type) {
		return false
	}
	if f.Mode != "" && f.Mode != models.ModeAny && opp.Mode != f.Mode {
		return false
	}
	if f.Country != "" && !matchesCountry(opp.CountryFocus, f.Country) {
		return false
	}
	if f.Tag != "" && !matchesTag(opp.Tags, f.Tag) {
		return false
	}
	if f.MinConfidence > 0 && opp.AIConfidence < f.MinConfidence {
		return false
	}
	if f.DeadlineWithinDays > 0 {
		// Records without a deadline are excluded once this criterion
		// is present.
		if opp.Deadline == nil {
			return false
		}
		if opp.Deadline.After(now.AddDate(0, 0, f.DeadlineWithinDays)) {
			return false
		}
	}
	if f.Query != "" {
		haystack := strings.ToLower(opp.SearchText())
		if !strings.Contains(haystack, strings.ToLower(f.Query)) {
			return false
		}
	}
	if f.HasFunding && !opp.HasFunding() {
		return false
	}
	return true
}

func containsType(types []models.OpportunityType, t models.OpportunityType) bool {
	for _, candidate := range types {
		if candidate == t {
			return true
		}
	}
	return false
}

func matchesCountry(countryFocus []string, country string) bool {
	lowered := strings.ToLower(country)
	for _, focus := range countryFocus {
		if strings.Contains(strings.ToLower(focus), lowered) {
			return true
		}
	}
	return false
}

func matchesTag(tags []string, tag string) bool {
	for _, candidate := range tags {
		if strings.EqualFold(candidate, tag) {
			return true
		}
	}
	return false
}
