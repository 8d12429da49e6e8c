package ingest

import (
	"strings"

	"github.com/amina/opportunity-radar/internal/models"
)

// Confidence bounds: no heuristic score ever claims full certainty.
const (
	minConfidence = 0.0
	maxConfidence = 0.98
)

// ComputeConfidence scores how likely a listing is relevant to the target
// audience, from the raw listing text and the opportunity kind.
//
// Scholarship entries start at 0.55, everything else at 0.50. Country-alias
// mentions add 0.25, priority topics 0.10, internship keywords 0.07, and a
// deadline-indicating phrase 0.05. The result is clamped to [0, 0.98].
func ComputeConfidence(content string, kind models.OpportunityType) float64 {
	lowered := strings.ToLower(content)

	score := 0.50
	if kind == models.TypeScholarship {
		score = 0.55
	}

	if containsAnyFold(lowered, CountryAliases) {
		score += 0.25
	}
	if containsAnyFold(lowered, PriorityTags) {
		score += 0.10
	}
	if containsAnyFold(lowered, InternshipKeywords) {
		score += 0.07
	}
	if strings.Contains(lowered, "deadline") || strings.Contains(lowered, "apply by") {
		score += 0.05
	}

	return clampConfidence(score)
}

func clampConfidence(score float64) float64 {
	if score < minConfidence {
		return minConfidence
	}
	if score > maxConfidence {
		return maxConfidence
	}
	return score
}
