package ingest

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
)

// Feeds occasionally smuggle script/style blocks into encoded content;
// sanitize before text extraction so their bodies never reach summaries.
var htmlPolicy = bluemonday.UGCPolicy()

// NormalizeSpace collapses runs of whitespace into single spaces and trims
// the ends.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// StripHTML converts an HTML fragment to plain text with normalized
// whitespace. Best-effort: unparseable input falls back to whitespace
// normalization of the raw string.
func StripHTML(s string) string {
	sanitized := htmlPolicy.Sanitize(s)
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(sanitized))
	if err != nil {
		return NormalizeSpace(s)
	}
	return NormalizeSpace(doc.Text())
}

// Truncate cuts a string to maxLen runes, replacing the tail with a single
// ellipsis rune when it has to cut.
func Truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-1]) + "…"
}

// HashID derives a stable 16-character lowercase hex identifier from the
// input. Two records built from the same source id and source-native link
// resolve to the same id by construction; aggregation dedupes on it.
func HashID(input string) string {
	sum := sha256.Sum256([]byte(input))
	return hex.EncodeToString(sum[:])[:16]
}

var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05Z",
	"2006-01-02T15:04:05",
	time.RFC1123Z,
	time.RFC1123,
	time.RFC822Z,
	time.RFC822,
	"2006-01-02 15:04:05",
	"2006-01-02",
	"January 2, 2006",
	"2 January 2006",
	"Jan 2, 2006",
	"2 Jan 2006",
}

// ToISODate parses a date-like string into a UTC timestamp. Absent or
// unparseable values return nil rather than an error; date-based logic
// downstream treats nil as "unknown".
func ToISODate(value string) *time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			utc := t.UTC()
			return &utc
		}
	}
	return nil
}
