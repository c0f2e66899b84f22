package prefs

import (
	"context"
	"sort"
	"strings"

	"remarkcrm/internal/domain"
	"remarkcrm/internal/repository"
)

// LeadLister supplies stored leads for deriving default category values
type LeadLister interface {
	List(ctx context.Context, filter repository.LeadFilter) ([]domain.Lead, error)
}

type Service struct {
	files *FileStore
	leads LeadLister
}

func NewService(files *FileStore, leads LeadLister) *Service {
	return &Service{files: files, leads: leads}
}

// Categories returns the permitted values per enumerated grid column.
// Saved preferences win; columns without a saved list fall back to the
// distinct values currently in the store, and the two enum columns fall
// back to their full domains.
func (s *Service) Categories(ctx context.Context) (map[string][]string, error) {
	derived, err := s.derivedCategories(ctx)
	if err != nil {
		return nil, err
	}
	for field, values := range s.files.LoadCategories() {
		if len(values) > 0 {
			derived[field] = values
		}
	}
	return derived, nil
}

// CategoryValues returns the known values for one field, empty when unset
func (s *Service) CategoryValues(ctx context.Context, field string) ([]string, error) {
	cats, err := s.Categories(ctx)
	if err != nil {
		return nil, err
	}
	return cats[field], nil
}

func (s *Service) SaveCategories(cats map[string][]string) error {
	return s.files.SaveCategories(cats)
}

// Grid returns the saved grid layout; the core does not interpret it
func (s *Service) Grid() []GridColumn {
	return s.files.LoadGrid()
}

func (s *Service) SaveGrid(cols []GridColumn) error {
	return s.files.SaveGrid(cols)
}

func (s *Service) derivedCategories(ctx context.Context) (map[string][]string, error) {
	all, err := s.leads.List(ctx, repository.LeadFilter{})
	if err != nil {
		return nil, err
	}

	uniq := func(pick func(*domain.Lead) string) []string {
		seen := map[string]struct{}{}
		var values []string
		for i := range all {
			v := strings.TrimSpace(pick(&all[i]))
			if v == "" {
				continue
			}
			if _, ok := seen[v]; ok {
				continue
			}
			seen[v] = struct{}{}
			values = append(values, v)
		}
		sort.Strings(values)
		return values
	}

	cats := map[string][]string{
		domain.FieldStatus:        uniq(func(l *domain.Lead) string { return string(l.Status) }),
		domain.FieldPriority:      uniq(func(l *domain.Lead) string { return string(l.Priority) }),
		domain.FieldInquiryType:   uniq(func(l *domain.Lead) string { return l.InquiryType }),
		domain.FieldCity:          uniq(func(l *domain.Lead) string { return l.City }),
		domain.FieldProjectStatus: uniq(func(l *domain.Lead) string { return l.ProjectStatus }),
	}
	if len(cats[domain.FieldStatus]) == 0 {
		cats[domain.FieldStatus] = domain.Statuses()
	}
	if len(cats[domain.FieldPriority]) == 0 {
		cats[domain.FieldPriority] = domain.Priorities()
	}
	return cats, nil
}
