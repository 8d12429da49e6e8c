package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"

	"github.com/amina/opportunity-radar/internal/models"
)

// RemotiveAdapter ingests internships from the Remotive remote-jobs API.
// It fans out one request per curated search query, merges the pages with
// first-occurrence-wins on the upstream job id, and keeps only jobs whose
// title carries an internship keyword and whose candidate location passes
// the relevance check.
type RemotiveAdapter struct {
	source   models.OpportunitySource
	endpoint string
	category string
	queries  []string
	client   *http.Client
}

type remotiveJob struct {
	ID                        int64    `json:"id"`
	URL                       string   `json:"url"`
	Title                     string   `json:"title"`
	CompanyName               string   `json:"company_name"`
	Category                  string   `json:"category"`
	PublicationDate           string   `json:"publication_date"`
	CandidateRequiredLocation string   `json:"candidate_required_location"`
	Salary                    string   `json:"salary"`
	Description               string   `json:"description"`
	Tags                      []string `json:"tags"`
}

type remotiveResponse struct {
	Jobs []remotiveJob `json:"jobs"`
}

func NewRemotiveAdapter(cfg SourceConfig) *RemotiveAdapter {
	return &RemotiveAdapter{
		source:   cfg.Descriptor(),
		endpoint: cfg.URL,
		category: cfg.Category,
		queries:  cfg.Queries,
		client:   &http.Client{Timeout: cfg.timeout()},
	}
}

func (a *RemotiveAdapter) Source() models.OpportunitySource {
	return a.source
}

// Fetch runs all configured queries concurrently and joins them. A failed
// query logs and contributes nothing; it never fails the adapter call.
func (a *RemotiveAdapter) Fetch(ctx context.Context) []models.Opportunity {
	results := make([][]remotiveJob, len(a.queries))

	var wg sync.WaitGroup
	for i, query := range a.queries {
		wg.Add(1)
		go func(i int, query string) {
			defer wg.Done()
			jobs, err := a.fetchQuery(ctx, query)
			if err != nil {
				log.Printf("[remotive] query %q failed: %v", query, err)
				return
			}
			results[i] = jobs
		}(i, query)
	}
	wg.Wait()

	// Merge in query-list order; the first occurrence of an upstream id
	// wins, later queries never overwrite it.
	seen := make(map[int64]struct{})
	var merged []remotiveJob
	for _, jobs := range results {
		for _, job := range jobs {
			if _, ok := seen[job.ID]; ok {
				continue
			}
			seen[job.ID] = struct{}{}
			merged = append(merged, job)
		}
	}

	var opportunities []models.Opportunity
	for _, job := range merged {
		loweredTitle := strings.ToLower(job.Title)
		if !containsAnyFold(loweredTitle, InternshipKeywords) {
			continue
		}
		if !isRelevantLocation(job.CandidateRequiredLocation) {
			continue
		}
		opportunities = append(opportunities, a.opportunityFromJob(job))
	}
	return opportunities
}

func (a *RemotiveAdapter) fetchQuery(ctx context.Context, query string) ([]remotiveJob, error) {
	u, err := url.Parse(a.endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint: %w", err)
	}
	params := u.Query()
	if a.category != "" {
		params.Set("category", a.category)
	}
	params.Set("search", query)
	u.RawQuery = params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("User-Agent", fetchUserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var payload remotiveResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	return payload.Jobs, nil
}

// isRelevantLocation accepts locations naming a country alias, "worldwide"
// postings, or anywhere on the continent.
func isRelevantLocation(location string) bool {
	lowered := strings.ToLower(location)
	if containsAnyFold(lowered, CountryAliases) {
		return true
	}
	return strings.Contains(lowered, "worldwide") || strings.Contains(lowered, "africa")
}

func (a *RemotiveAdapter) opportunityFromJob(job remotiveJob) models.Opportunity {
	description := StripHTML(job.Description)
	content := strings.ToLower(job.Title + " " + job.CompanyName + " " + job.CandidateRequiredLocation + " " + description)
	mentionsCountry := containsAnyFold(content, CountryAliases)

	var countryFocus []string
	if mentionsCountry {
		countryFocus = append(countryFocus, TargetCountry)
	}
	if strings.Contains(strings.ToLower(job.CandidateRequiredLocation), "africa") {
		countryFocus = append(countryFocus, "Africa")
	}
	if len(countryFocus) == 0 {
		countryFocus = append(countryFocus, "Remote")
	}

	tags := []string{"internship", "remote"}
	tagSet := map[string]struct{}{"internship": {}, "remote": {}}
	for _, tag := range job.Tags {
		lowered := strings.ToLower(tag)
		if _, ok := tagSet[lowered]; !ok {
			tagSet[lowered] = struct{}{}
			tags = append(tags, lowered)
		}
	}
	for _, tag := range PriorityTags {
		if !strings.Contains(content, tag) {
			continue
		}
		if _, ok := tagSet[tag]; !ok {
			tagSet[tag] = struct{}{}
			tags = append(tags, tag)
		}
	}

	confidence := 0.62
	if mentionsCountry {
		confidence = 0.76
	}
	if _, ok := tagSet["computer science"]; ok {
		confidence += 0.08
	}
	if confidence > 0.90 {
		confidence = 0.90
	}

	summary := description
	if summary == "" {
		summary = job.CompanyName + " internship"
	}

	return models.Opportunity{
		ID:           HashID("remotive-" + strconv.FormatInt(job.ID, 10)),
		SourceID:     a.source.ID,
		Source:       a.source,
		Type:         models.TypeInternship,
		Title:        job.Title,
		Summary:      Truncate(summary, 240),
		Description:  description,
		URL:          job.URL,
		PublishedAt:  ToISODate(job.PublicationDate),
		Deadline:     nil,
		Location:     job.CandidateRequiredLocation,
		CountryFocus: countryFocus,
		Eligibility: []string{
			"Open to candidates legally able to work from stated location",
			"Strong interest in computer science or software engineering",
		},
		Tags:               tags,
		Mode:               models.ModeRemote,
		Funding:            job.Salary,
		Stipend:            job.Salary,
		AIConfidence:       confidence,
		ManualReviewNeeded: !mentionsCountry,
	}
}
