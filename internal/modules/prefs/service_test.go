package prefs

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"remarkcrm/internal/domain"
	"remarkcrm/internal/repository"
)

type staticLister struct {
	leads []domain.Lead
}

func (s *staticLister) List(context.Context, repository.LeadFilter) ([]domain.Lead, error) {
	return s.leads, nil
}

func TestFileStoreRoundTrip(t *testing.T) {
	store := NewFileStore(t.TempDir())

	cats := map[string][]string{
		domain.FieldCity: {"Bratislava", "Košice"},
	}
	require.NoError(t, store.SaveCategories(cats))
	assert.Equal(t, cats, store.LoadCategories())

	cols := []GridColumn{
		{Field: domain.FieldCustomerName, Order: 0, Width: 220},
		{Field: domain.FieldStatus, Order: 1},
	}
	require.NoError(t, store.SaveGrid(cols))
	assert.Equal(t, cols, store.LoadGrid())
}

func TestFileStoreMissingAndCorrupt(t *testing.T) {
	dir := t.TempDir()
	store := NewFileStore(dir)

	assert.Empty(t, store.LoadCategories())
	assert.Empty(t, store.LoadGrid())

	require.NoError(t, os.WriteFile(filepath.Join(dir, categoryPrefsFile), []byte("{broken"), 0o644))
	assert.Empty(t, store.LoadCategories())
}

func TestCategoriesDerivedFromStore(t *testing.T) {
	lister := &staticLister{leads: []domain.Lead{
		{City: "Bratislava", InquiryType: "Rekonštrukcia", Status: domain.StatusOpen, Priority: domain.PriorityHigh},
		{City: "Košice", InquiryType: "Rekonštrukcia", Status: domain.StatusCold, Priority: domain.PriorityHigh},
		{City: "  Bratislava  ", Status: domain.StatusOpen, Priority: domain.PriorityLow},
	}}
	svc := NewService(NewFileStore(t.TempDir()), lister)

	cats, err := svc.Categories(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"Bratislava", "Košice"}, cats[domain.FieldCity])
	assert.Equal(t, []string{"Rekonštrukcia"}, cats[domain.FieldInquiryType])
	assert.Equal(t, []string{string(domain.StatusCold), string(domain.StatusOpen)}, cats[domain.FieldStatus])
}

func TestCategoriesEnumFallbacks(t *testing.T) {
	svc := NewService(NewFileStore(t.TempDir()), &staticLister{})

	cats, err := svc.Categories(context.Background())
	require.NoError(t, err)

	assert.Equal(t, domain.Statuses(), cats[domain.FieldStatus])
	assert.Equal(t, domain.Priorities(), cats[domain.FieldPriority])
	assert.Empty(t, cats[domain.FieldCity])
}

func TestCategoriesSavedOverrides(t *testing.T) {
	lister := &staticLister{leads: []domain.Lead{
		{City: "Bratislava", Status: domain.StatusOpen, Priority: domain.PriorityHigh},
	}}
	svc := NewService(NewFileStore(t.TempDir()), lister)

	require.NoError(t, svc.SaveCategories(map[string][]string{
		domain.FieldCity: {"Bratislava", "Nitra", "Žilina"},
	}))

	values, err := svc.CategoryValues(context.Background(), domain.FieldCity)
	require.NoError(t, err)
	assert.Equal(t, []string{"Bratislava", "Nitra", "Žilina"}, values)

	// unsaved columns still derive from the store
	cats, err := svc.Categories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{string(domain.StatusOpen)}, cats[domain.FieldStatus])
}
