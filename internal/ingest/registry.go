package ingest

import (
	"embed"
	"fmt"
	"log"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/amina/opportunity-radar/internal/models"
)

//go:embed config/sources.yaml
var sourcesYAML embed.FS

// Registry holds the ordered configuration for all external sources.
// Adapter invocation order follows registry order, which keeps the
// first-seen rules of deduplication deterministic across runs.
type Registry struct {
	Sources []SourceConfig `yaml:"sources"`
}

// SourceConfig defines a single external source.
type SourceConfig struct {
	ID                   string   `yaml:"id"`
	Name                 string   `yaml:"name"`
	Kind                 string   `yaml:"kind"` // "rss" or "api"
	URL                  string   `yaml:"url"`
	Attribution          string   `yaml:"attribution"`
	ComplianceNotes      []string `yaml:"compliance_notes,omitempty"`
	UpdateFrequencyHours int      `yaml:"update_frequency_hours,omitempty"`
	TimeoutSeconds       int      `yaml:"timeout_seconds,omitempty"`

	// API sources only.
	Queries  []string `yaml:"queries,omitempty"`
	Category string   `yaml:"category,omitempty"`
}

// Descriptor converts the config entry into the canonical source record
// embedded in every opportunity it produces.
func (c SourceConfig) Descriptor() models.OpportunitySource {
	kind := models.SourceRSS
	if c.Kind == "api" {
		kind = models.SourceAPI
	}
	return models.OpportunitySource{
		ID:                   c.ID,
		Name:                 c.Name,
		URL:                  c.URL,
		Type:                 kind,
		Attribution:          c.Attribution,
		ComplianceNotes:      c.ComplianceNotes,
		UpdateFrequencyHours: c.UpdateFrequencyHours,
	}
}

func (c SourceConfig) timeout() time.Duration {
	if c.TimeoutSeconds > 0 {
		return time.Duration(c.TimeoutSeconds) * time.Second
	}
	return 20 * time.Second
}

// LoadRegistry reads the source registry. A non-empty path overrides the
// embedded config for local development.
func LoadRegistry(path string) (*Registry, error) {
	var data []byte
	var err error
	if path != "" {
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading registry %s: %w", path, err)
		}
	} else {
		data, err = sourcesYAML.ReadFile("config/sources.yaml")
		if err != nil {
			return nil, fmt.Errorf("reading embedded registry: %w", err)
		}
	}

	var registry Registry
	if err := yaml.Unmarshal(data, &registry); err != nil {
		return nil, fmt.Errorf("parsing registry: %w", err)
	}
	if len(registry.Sources) == 0 {
		return nil, fmt.Errorf("registry contains no sources")
	}
	return &registry, nil
}

// BuildAdapters constructs one adapter per registry entry, in registry
// order. Entries with an unknown kind are logged and skipped.
func BuildAdapters(registry *Registry) []SourceAdapter {
	adapters := make([]SourceAdapter, 0, len(registry.Sources))
	for _, src := range registry.Sources {
		switch src.Kind {
		case "rss":
			adapters = append(adapters, NewRSSAdapter(src))
		case "api":
			adapters = append(adapters, NewRemotiveAdapter(src))
		default:
			log.Printf("[registry] skipping source %q: unknown kind %q", src.ID, src.Kind)
		}
	}
	return adapters
}
