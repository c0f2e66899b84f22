package leads

import (
	"context"
	"time"

	"remarkcrm/internal/domain"
	"remarkcrm/internal/repository"
)

// LeadRepository is the persistence surface the service needs
type LeadRepository interface {
	Create(ctx context.Context, l *domain.Lead) error
	List(ctx context.Context, filter repository.LeadFilter) ([]domain.Lead, error)
	GetByID(ctx context.Context, id int64) (*domain.Lead, error)
	FindMatchCandidates(ctx context.Context, name, phone, email string, firstContact *time.Time) ([]domain.Lead, error)
	UpdateFields(ctx context.Context, id int64, cols map[string]interface{}) (int64, error)
	DeleteByIDs(ctx context.Context, ids []int64) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)
	Count(ctx context.Context) (int64, error)
}
