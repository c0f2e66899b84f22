package leads

import (
	"context"
	"fmt"
	"strings"
	"time"

	"remarkcrm/internal/domain"
	"remarkcrm/internal/pkg/sanitize"
	"remarkcrm/internal/repository"
)

type Service struct {
	repo LeadRepository
	loc  *time.Location
	now  func() time.Time
}

func NewService(repo LeadRepository, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{
		repo: repo,
		loc:  loc,
		now:  time.Now,
	}
}

// Create validates the new-lead form, rejects duplicates and persists
func (s *Service) Create(ctx context.Context, req CreateLeadRequest) (*domain.Lead, error) {
	if strings.TrimSpace(req.CustomerName) == "" {
		return nil, ErrValidation
	}
	if strings.TrimSpace(req.Phone) == "" && strings.TrimSpace(req.Email) == "" {
		return nil, ErrValidation
	}
	firstContact := sanitize.Date(req.FirstContact)
	if firstContact == nil {
		return nil, ErrValidation
	}

	priority := req.Priority
	if priority == "" {
		priority = string(domain.PriorityMedium)
	}
	status := req.Status
	if status == "" {
		status = string(domain.StatusOpen)
	}

	l := &domain.Lead{
		CustomerName:     strings.TrimSpace(req.CustomerName),
		Phone:            strings.TrimSpace(req.Phone),
		Email:            strings.TrimSpace(req.Email),
		City:             strings.TrimSpace(req.City),
		InquiryType:      strings.TrimSpace(req.InquiryType),
		FirstContact:     firstContact,
		ProjectStatus:    strings.TrimSpace(req.ProjectStatus),
		Competitor:       strings.TrimSpace(req.Competitor),
		CompetitorPrice:  req.CompetitorPrice,
		OurOffer:         req.OurOffer,
		CustomerReaction: strings.TrimSpace(req.CustomerReaction),
		NextStep:         strings.TrimSpace(req.NextStep),
		NextStepDate:     sanitize.Date(req.NextStepDate),
		Priority:         domain.Priority(priority),
		Status:           domain.LeadStatus(status),
		IndicativePrice:  req.IndicativePrice,
		RealizationDate:  sanitize.Date(req.RealizationDate),
		Notes:            strings.TrimSpace(req.Notes),
	}

	if err := s.Insert(ctx, l); err != nil {
		return nil, err
	}
	return l, nil
}

// Insert runs the duplicate check and persists the lead. A duplicate is
// a normal, expected outcome (ErrDuplicate), not a failure: bulk imports
// hit it constantly and just count it.
func (s *Service) Insert(ctx context.Context, l *domain.Lead) error {
	key := KeyOf(l)
	candidates, err := s.repo.FindMatchCandidates(ctx, key.Name, key.Phone, key.Email, key.FirstContact)
	if err != nil {
		return err
	}
	if IsDuplicate(key, candidates) {
		return ErrDuplicate
	}
	return s.repo.Create(ctx, l)
}

// List returns leads matching the filter, always with the full column set
func (s *Service) List(ctx context.Context, filter repository.LeadFilter) ([]domain.Lead, error) {
	leads, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	if leads == nil {
		leads = []domain.Lead{}
	}
	return leads, nil
}

// UpdateOne applies a field-by-field overwrite to a single lead
func (s *Service) UpdateOne(ctx context.Context, id int64, fields map[string]interface{}) error {
	cols := s.sanitizeFields(fields)
	affected, err := s.repo.UpdateFields(ctx, id, cols)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateMany applies per-row partial updates. Rows with an unknown id are
// silently skipped and do not count; a mixed batch never fails as a whole.
func (s *Service) UpdateMany(ctx context.Context, updates []BulkUpdate) (int, error) {
	updated := 0
	for _, upd := range updates {
		if upd.ID == 0 {
			continue
		}
		affected, err := s.repo.UpdateFields(ctx, upd.ID, s.sanitizeFields(upd.Fields))
		if err != nil {
			return updated, err
		}
		if affected > 0 {
			updated++
		}
	}
	return updated, nil
}

// sanitizeFields keeps only schema fields and coerces each value per its
// schema kind. Date fields are always re-parsed: callers pass raw grid
// strings and typed values interchangeably.
func (s *Service) sanitizeFields(fields map[string]interface{}) map[string]interface{} {
	cols := make(map[string]interface{}, len(fields))
	for name, value := range fields {
		kind, ok := domain.KindOf(name)
		if !ok {
			continue
		}
		switch kind {
		case domain.KindDate:
			cols[name] = sanitize.Date(value)
		case domain.KindNumeric:
			cols[name] = sanitize.Number(value)
		default:
			cols[name] = coerceText(value)
		}
	}
	return cols
}

func coerceText(value interface{}) interface{} {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return sanitize.Text(v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Convert marks a lead won and stamps today's realization date
func (s *Service) Convert(ctx context.Context, id int64) error {
	today := sanitize.DateOnly(s.now().In(s.loc))
	return s.UpdateOne(ctx, id, map[string]interface{}{
		domain.FieldStatus:          string(domain.StatusConverted),
		domain.FieldRealizationDate: today,
	})
}

// RemoveDuplicates runs the all-pairs cleanup pass and returns how many
// leads were deleted. Idempotent: a second run right after removes zero.
func (s *Service) RemoveDuplicates(ctx context.Context) (int, error) {
	all, err := s.repo.List(ctx, repository.LeadFilter{})
	if err != nil {
		return 0, err
	}
	ids := PlanRemovals(all)
	if len(ids) == 0 {
		return 0, nil
	}
	removed, err := s.repo.DeleteByIDs(ctx, ids)
	return int(removed), err
}

// Reset wipes the whole collection
func (s *Service) Reset(ctx context.Context) (int64, error) {
	return s.repo.DeleteAll(ctx)
}

// Count returns the number of stored leads
func (s *Service) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}
