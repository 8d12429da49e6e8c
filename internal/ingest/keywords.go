package ingest

import "strings"

// TargetCountry is the country label the whole pipeline scores relevance
// against.
const TargetCountry = "Algeria"

// CountryAliases are matched case-insensitively against listing text to
// decide country relevance.
var CountryAliases = []string{
	"Algeria",
	"Algerian",
	"DZ",
	"North Africa",
	"Maghreb",
	"MENA",
}

// PriorityTags are topic keywords that both boost confidence and become
// tags when present in listing text.
var PriorityTags = []string{
	"computer science",
	"software engineering",
	"data science",
	"ai",
	"machine learning",
	"information technology",
	"digital skills",
	"north africa",
	"africa",
}

// ScholarshipKeywords become tags when present in listing text.
var ScholarshipKeywords = []string{
	"scholarship",
	"fellowship",
	"grant",
	"bursary",
	"masters",
	"undergraduate",
	"postgraduate",
	"phd",
	"training",
	"exchange",
}

// InternshipKeywords gate which job postings count as internships.
var InternshipKeywords = []string{
	"intern",
	"internship",
	"graduate program",
	"trainee",
	"early career",
	"junior",
	"student program",
}

// containsAnyFold reports whether the lowercased text contains any of the
// given keywords, case-insensitively.
func containsAnyFold(loweredText string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(loweredText, strings.ToLower(kw)) {
			return true
		}
	}
	return false
}

// MentionsTargetCountry reports whether any country alias appears in the
// text, case-insensitively.
func MentionsTargetCountry(text string) bool {
	return containsAnyFold(strings.ToLower(text), CountryAliases)
}

// BuildTags scans the lowercased text once for every priority topic and
// scholarship keyword and merges the matches into the caller-supplied
// defaults. The result is duplicate-free; order is not significant.
func BuildTags(text string, defaults []string) []string {
	lowered := strings.ToLower(text)
	tags := make([]string, 0, len(defaults))
	seen := make(map[string]struct{}, len(defaults))

	add := func(tag string) {
		if _, ok := seen[tag]; ok {
			return
		}
		seen[tag] = struct{}{}
		tags = append(tags, tag)
	}

	for _, tag := range defaults {
		add(tag)
	}
	for _, tag := range PriorityTags {
		if strings.Contains(lowered, tag) {
			add(tag)
		}
	}
	for _, kw := range ScholarshipKeywords {
		if strings.Contains(lowered, kw) {
			add(kw)
		}
	}
	return tags
}
