package models

import "time"

type OpportunityType string

const (
	TypeScholarship OpportunityType = "scholarship"
	TypeInternship  OpportunityType = "internship"
)

type OpportunityMode string

const (
	ModeRemote   OpportunityMode = "remote"
	ModeInPerson OpportunityMode = "in-person"
	ModeHybrid   OpportunityMode = "hybrid"

	// ModeAny is a filter sentinel, never set on a record.
	ModeAny OpportunityMode = "any"
)

type SourceType string

const (
	SourceRSS     SourceType = "rss"
	SourceAPI     SourceType = "api"
	SourceManual  SourceType = "manual"
	SourceCurated SourceType = "curated"
)

// OpportunitySource describes a feed or catalogue origin. Constructed once
// per process from the registry (or embedded in curated records) and never
// mutated afterwards.
type OpportunitySource struct {
	ID                   string     `json:"id" yaml:"id"`
	Name                 string     `json:"name" yaml:"name"`
	URL                  string     `json:"url" yaml:"url"`
	Type                 SourceType `json:"type" yaml:"type"`
	Attribution          string     `json:"attribution" yaml:"attribution"`
	ComplianceNotes      []string   `json:"complianceNotes,omitempty" yaml:"compliance_notes,omitempty"`
	UpdateFrequencyHours int        `json:"updateFrequencyHours,omitempty" yaml:"update_frequency_hours,omitempty"`
}

// Opportunity is a single normalized listing. Records are immutable once an
// adapter returns them; ID is a content hash derived from the owning source
// id and the source-native link, so identical postings collapse during
// aggregation.
type Opportunity struct {
	ID                 string            `json:"id"`
	SourceID           string            `json:"sourceId"`
	Source             OpportunitySource `json:"source"`
	Type               OpportunityType   `json:"opportunityType"`
	Title              string            `json:"title"`
	Summary            string            `json:"summary"`
	Description        string            `json:"description"`
	URL                string            `json:"url"`
	PublishedAt        *time.Time        `json:"publishedAt"`
	Deadline           *time.Time        `json:"deadline"`
	Location           string            `json:"location"`
	CountryFocus       []string          `json:"countryFocus"`
	Eligibility        []string          `json:"eligibility"`
	Tags               []string          `json:"tags"`
	Mode               OpportunityMode   `json:"mode"`
	Funding            string            `json:"funding,omitempty"`
	Stipend            string            `json:"stipend,omitempty"`
	Currency           string            `json:"currency,omitempty"`
	AIConfidence       float64           `json:"aiConfidence"`
	ManualReviewNeeded bool              `json:"manualReviewNeeded"`
}

// HasFunding reports whether the record carries any funding or stipend text.
func (o Opportunity) HasFunding() bool {
	return o.Funding != "" || o.Stipend != ""
}

// SearchText returns the lowercased haystack used for free-text filtering:
// title, summary, description, and tags.
func (o Opportunity) SearchText() string {
	text := o.Title + " " + o.Summary + " " + o.Description
	for _, tag := range o.Tags {
		text += " " + tag
	}
	return text
}

// OpportunityFilter is a per-request query object. Zero values mean "no
// constraint"; Mode additionally treats the "any" sentinel as unset.
type OpportunityFilter struct {
	Query              string            `json:"query,omitempty"`
	Types              []OpportunityType `json:"types,omitempty"`
	Mode               OpportunityMode   `json:"mode,omitempty"`
	Country            string            `json:"country,omitempty"`
	Tag                string            `json:"tag,omitempty"`
	HasFunding         bool              `json:"hasFunding,omitempty"`
	MinConfidence      float64           `json:"minConfidence,omitempty"`
	DeadlineWithinDays int               `json:"deadlineWithinDays,omitempty"`
}

// AggregationStats summarizes one aggregation run.
type AggregationStats struct {
	Total             int     `json:"total"`
	Scholarships      int     `json:"scholarships"`
	Internships       int     `json:"internships"`
	RemoteRatio       float64 `json:"remoteRatio"`
	AverageConfidence float64 `json:"averageConfidence"`
	DeadlinesSoon     int     `json:"deadlinesSoon"`
}

// AggregatedOpportunities is the aggregator's output: the deduplicated and
// sorted listing set, the sources that actually contributed, and stats.
type AggregatedOpportunities struct {
	Opportunities []Opportunity       `json:"opportunities"`
	GeneratedAt   time.Time           `json:"generatedAt"`
	Sources       []OpportunitySource `json:"sources"`
	Stats         AggregationStats    `json:"stats"`
}

// TelegramDigestEntry is the minimal shape handed to the Telegram notifier.
type TelegramDigestEntry struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	URL         string          `json:"url"`
	Summary     string          `json:"summary"`
	SourceName  string          `json:"sourceName"`
	Type        OpportunityType `json:"opportunityType"`
	PublishedAt *time.Time      `json:"publishedAt"`
}
