package ingest

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/mmcdole/gofeed"

	"github.com/amina/opportunity-radar/internal/models"
)

const fetchUserAgent = "opportunity-radar/1.0 (+https://github.com/amina/opportunity-radar)"

// Regional labels for North-African relevance, matched against the
// stripped lowercased listing text.
var regionalKeywords = []string{"north africa", "mena", "africa"}

// RSSAdapter ingests a scholarship RSS feed. Every entry it produces is a
// scholarship; the feeds it covers list campus programmes, so mode is
// fixed to in-person.
type RSSAdapter struct {
	source  models.OpportunitySource
	feedURL string
	client  *http.Client
	parser  *gofeed.Parser
}

func NewRSSAdapter(cfg SourceConfig) *RSSAdapter {
	return &RSSAdapter{
		source:  cfg.Descriptor(),
		feedURL: cfg.URL,
		client:  &http.Client{Timeout: cfg.timeout()},
		parser:  gofeed.NewParser(),
	}
}

func (a *RSSAdapter) Source() models.OpportunitySource {
	return a.source
}

// Fetch downloads and parses the feed. Any failure is logged and yields an
// empty contribution.
func (a *RSSAdapter) Fetch(ctx context.Context) []models.Opportunity {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, a.feedURL, nil)
	if err != nil {
		log.Printf("[rss] %s: building request: %v", a.source.ID, err)
		return nil
	}
	req.Header.Set("User-Agent", fetchUserAgent)

	resp, err := a.client.Do(req)
	if err != nil {
		log.Printf("[rss] %s: fetch failed: %v", a.source.ID, err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("[rss] %s: unexpected status %d", a.source.ID, resp.StatusCode)
		return nil
	}

	feed, err := a.parser.Parse(resp.Body)
	if err != nil {
		log.Printf("[rss] %s: parse failed: %v", a.source.ID, err)
		return nil
	}

	opportunities := make([]models.Opportunity, 0, len(feed.Items))
	for _, item := range feed.Items {
		opportunities = append(opportunities, a.opportunityFromItem(item))
	}
	return opportunities
}

func (a *RSSAdapter) opportunityFromItem(item *gofeed.Item) models.Opportunity {
	link := item.Link
	if link == "" {
		link = item.GUID
	}
	if link == "" {
		link = a.source.URL
	}

	rawContent := item.Title + " " + item.Description + " " + item.Content
	textContent := strings.ToLower(StripHTML(rawContent))
	relevant := containsAnyFold(textContent, CountryAliases)

	summarySource := item.Description
	if summarySource == "" {
		summarySource = rawContent
	}
	descriptionSource := item.Content
	if descriptionSource == "" {
		descriptionSource = item.Description
	}
	if descriptionSource == "" {
		descriptionSource = rawContent
	}

	var countryFocus []string
	if relevant {
		countryFocus = append(countryFocus, TargetCountry)
	}
	if containsAnyFold(textContent, regionalKeywords) {
		countryFocus = append(countryFocus, "North Africa")
	}
	if len(countryFocus) == 0 {
		countryFocus = append(countryFocus, "Multi-country")
	}

	title := NormalizeSpace(item.Title)
	if title == "" {
		title = "Untitled Opportunity"
	}

	location := "European Union"
	if relevant {
		location = "Algeria · Europe"
	}

	publishedAt := item.PublishedParsed
	if publishedAt == nil {
		publishedAt = ToISODate(item.Published)
	}

	return models.Opportunity{
		ID:                 HashID(a.source.ID + "-" + link),
		SourceID:           a.source.ID,
		Source:             a.source,
		Type:               models.TypeScholarship,
		Title:              title,
		Summary:            Truncate(StripHTML(summarySource), 220),
		Description:        StripHTML(descriptionSource),
		URL:                link,
		PublishedAt:        publishedAt,
		Deadline:           nil,
		Location:           location,
		CountryFocus:       countryFocus,
		Eligibility:        []string{},
		Tags:               BuildTags(rawContent, []string{"scholarship"}),
		Mode:               models.ModeInPerson,
		AIConfidence:       ComputeConfidence(rawContent, models.TypeScholarship),
		ManualReviewNeeded: !relevant,
	}
}
