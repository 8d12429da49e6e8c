package ingest

import (
	"context"

	"github.com/amina/opportunity-radar/internal/models"
)

// SourceAdapter turns one external source into canonical opportunity
// records. Fetch never fails: network and parse errors are logged inside
// the adapter and degrade to an empty or partial list, so a broken source
// can never abort aggregation.
type SourceAdapter interface {
	Source() models.OpportunitySource
	Fetch(ctx context.Context) []models.Opportunity
}
