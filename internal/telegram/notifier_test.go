package telegram

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/amina/opportunity-radar/internal/models"
)

func sampleEntries() []models.TelegramDigestEntry {
	published := time.Date(2025, time.February, 3, 0, 0, 0, 0, time.UTC)
	return []models.TelegramDigestEntry{
		{
			ID:          "a1",
			Title:       "Erasmus Mundus Scholarship",
			URL:         "https://example.org/erasmus",
			Summary:     "Fully funded masters across Europe.",
			SourceName:  "Opportunity Desk",
			Type:        models.TypeScholarship,
			PublishedAt: &published,
		},
		{
			ID:         "b2",
			Title:      "Remote Software Internship",
			URL:        "https://example.org/intern",
			Summary:    "Six-month paid internship.",
			SourceName: "Remotive",
			Type:       models.TypeInternship,
		},
	}
}

func TestFormatDigest(t *testing.T) {
	text := FormatDigest(sampleEntries())

	for _, want := range []string{
		"📢 Scholarship & Internship Digest (Algeria)",
		"1. Erasmus Mundus Scholarship",
		"Type: Scholarship",
		"Source: Opportunity Desk",
		"Published: Feb 3, 2025",
		"➡️ https://example.org/erasmus",
		"2. Remote Software Internship",
		"Type: Internship",
		"Published: Recently posted",
		"📌 Open the dashboard for advanced filters.",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("digest missing %q\n%s", want, text)
		}
	}
}

func TestFormatDigestEmpty(t *testing.T) {
	text := FormatDigest(nil)
	if !strings.Contains(text, "No new opportunities matched") {
		t.Errorf("empty digest = %q, want the no-matches notice", text)
	}
}

func TestSendDigest(t *testing.T) {
	var gotPath string
	var gotPayload map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotPayload)
		w.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	n := NewNotifierWithBase("test-token", server.URL)
	if err := n.SendDigest(context.Background(), "12345", sampleEntries()); err != nil {
		t.Fatalf("SendDigest error: %v", err)
	}

	if gotPath != "/bottest-token/sendMessage" {
		t.Errorf("path = %q, want bot token routed to sendMessage", gotPath)
	}
	if gotPayload["chat_id"] != "12345" {
		t.Errorf("chat_id = %v, want \"12345\"", gotPayload["chat_id"])
	}
	if gotPayload["disable_web_page_preview"] != true {
		t.Error("link previews should be disabled")
	}
	text, _ := gotPayload["text"].(string)
	if !strings.Contains(text, "Erasmus Mundus Scholarship") {
		t.Error("payload text should carry the formatted digest")
	}
}

func TestSendDigestAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"ok":false,"description":"chat not found"}`))
	}))
	defer server.Close()

	n := NewNotifierWithBase("test-token", server.URL)
	err := n.SendDigest(context.Background(), "999", nil)
	if err == nil {
		t.Fatal("expected an error for a non-200 Bot API response")
	}
	if !strings.Contains(err.Error(), "chat not found") {
		t.Errorf("error = %v, want the API description included", err)
	}
}

func TestDigestEntries(t *testing.T) {
	opportunities := []models.Opportunity{
		{ID: "a", Title: "A", URL: "https://a", Source: models.OpportunitySource{Name: "SrcA"}, Type: models.TypeScholarship},
		{ID: "b", Title: "B", URL: "https://b", Source: models.OpportunitySource{Name: "SrcB"}, Type: models.TypeInternship},
		{ID: "c", Title: "C", URL: "https://c", Source: models.OpportunitySource{Name: "SrcC"}, Type: models.TypeInternship},
	}

	entries := DigestEntries(opportunities, 2)
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want limit of 2", len(entries))
	}
	if entries[0].ID != "a" || entries[1].ID != "b" {
		t.Error("entries should keep the leading opportunities in order")
	}
	if entries[0].SourceName != "SrcA" {
		t.Errorf("sourceName = %q, want the source's display name", entries[0].SourceName)
	}

	if got := DigestEntries(opportunities, 10); len(got) != 3 {
		t.Errorf("limit beyond length should return all %d, got %d", len(opportunities), len(got))
	}
}

func TestCoerceChatID(t *testing.T) {
	tests := []struct {
		name   string
		raw    any
		want   string
		wantOK bool
	}{
		{"string", "@channel", "@channel", true},
		{"empty string", "", "", false},
		{"json number via interface", float64(123456789), "123456789", true},
		{"json.Number", json.Number("987"), "987", true},
		{"nil", nil, "", false},
		{"bool", true, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := CoerceChatID(tt.raw)
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("CoerceChatID(%v) = (%q, %v), want (%q, %v)", tt.raw, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
