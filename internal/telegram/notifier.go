// Package telegram delivers opportunity digests through the Bot API.
package telegram

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/amina/opportunity-radar/internal/models"
)

const defaultAPIBase = "https://api.telegram.org"

// Notifier sends digest messages to a Telegram chat.
type Notifier struct {
	token   string
	apiBase string
	client  *http.Client
}

func NewNotifier(token string) *Notifier {
	return &Notifier{
		token:   token,
		apiBase: defaultAPIBase,
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

// NewNotifierWithBase is used by tests to point at a fake Bot API.
func NewNotifierWithBase(token, apiBase string) *Notifier {
	n := NewNotifier(token)
	n.apiBase = apiBase
	return n
}

// FormatDigest renders the digest as plain text: a header, numbered
// entries, and a closing hint. An empty entry list becomes a "no matches"
// notice instead.
func FormatDigest(entries []models.TelegramDigestEntry) string {
	if len(entries) == 0 {
		return "⚠️ No new opportunities matched your filters in the latest aggregation."
	}

	var b strings.Builder
	b.WriteString("📢 Scholarship & Internship Digest (Algeria)\n\n")
	for i, entry := range entries {
		published := "Recently posted"
		if entry.PublishedAt != nil {
			published = entry.PublishedAt.Format("Jan 2, 2006")
		}
		kind := "Internship"
		if entry.Type == models.TypeScholarship {
			kind = "Scholarship"
		}
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "%d. %s\n", i+1, entry.Title)
		fmt.Fprintf(&b, "Type: %s\n", kind)
		fmt.Fprintf(&b, "Source: %s\n", entry.SourceName)
		fmt.Fprintf(&b, "Published: %s\n", published)
		fmt.Fprintf(&b, "%s\n", entry.Summary)
		fmt.Fprintf(&b, "➡️ %s", entry.URL)
	}
	b.WriteString("\n\n📌 Open the dashboard for advanced filters.")
	return b.String()
}

// SendDigest formats the entries and posts them with sendMessage.
func (n *Notifier) SendDigest(ctx context.Context, chatID string, entries []models.TelegramDigestEntry) error {
	payload := map[string]any{
		"chat_id":                  chatID,
		"text":                     FormatDigest(entries),
		"disable_web_page_preview": true,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("telegram: marshaling payload: %w", err)
	}

	url := fmt.Sprintf("%s/bot%s/sendMessage", n.apiBase, n.token)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("telegram: building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("telegram: sending message: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var result struct {
			Description string `json:"description"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&result)
		return fmt.Errorf("telegram: API error %d: %s", resp.StatusCode, result.Description)
	}
	return nil
}

// DigestEntries maps the leading opportunities onto the minimal digest
// shape, bounded by limit.
func DigestEntries(opportunities []models.Opportunity, limit int) []models.TelegramDigestEntry {
	if limit > len(opportunities) {
		limit = len(opportunities)
	}
	entries := make([]models.TelegramDigestEntry, 0, limit)
	for _, opp := range opportunities[:limit] {
		entries = append(entries, models.TelegramDigestEntry{
			ID:          opp.ID,
			Title:       opp.Title,
			URL:         opp.URL,
			Summary:     opp.Summary,
			SourceName:  opp.Source.Name,
			Type:        opp.Type,
			PublishedAt: opp.PublishedAt,
		})
	}
	return entries
}

// CoerceChatID accepts the chat id as either a JSON string or number,
// matching what Bot API clients send.
func CoerceChatID(raw any) (string, bool) {
	switch v := raw.(type) {
	case string:
		return v, v != ""
	case float64:
		return strconv.FormatInt(int64(v), 10), true
	case json.Number:
		return v.String(), true
	default:
		return "", false
	}
}
