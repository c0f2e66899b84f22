package importer

import (
	"context"

	"remarkcrm/internal/domain"
)

// LeadStore is the slice of the lead service the pipelines need. Insert
// must report a duplicate with leads.ErrDuplicate so the pipeline can
// count it instead of failing the batch.
type LeadStore interface {
	Insert(ctx context.Context, l *domain.Lead) error
	Count(ctx context.Context) (int64, error)
}
