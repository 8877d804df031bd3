package cost

import (
	"context"

	"github.com/de-tools/ai-foundry/pkg/models/domain"
)

// Analyzer reports spend over the trailing number of days.
type Analyzer interface {
	GenerateReport(ctx context.Context, days int) (*domain.Report, error)
}
