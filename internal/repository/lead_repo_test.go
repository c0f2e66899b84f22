package repository

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"remarkcrm/internal/database"
	"remarkcrm/internal/domain"
)

func newTestRepo(t *testing.T) *LeadRepository {
	t.Helper()
	db, err := database.Connect(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, AutoMigrate(db))
	return NewLeadRepository(db)
}

func seedLead(t *testing.T, repo *LeadRepository, l domain.Lead) domain.Lead {
	t.Helper()
	require.NoError(t, repo.Create(context.Background(), &l))
	return l
}

func date(y int, m time.Month, d int) *time.Time {
	v := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &v
}

func TestCreateAndGet(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	l := seedLead(t, repo, domain.Lead{
		CustomerName: "  Ján Novák ",
		Phone:        "0900111111",
		Email:        "jan@x.sk",
		City:         "Bratislava",
		FirstContact: date(2024, 1, 5),
		Priority:     domain.PriorityHigh,
		Status:       domain.StatusOpen,
	})
	require.NotZero(t, l.ID)

	got, err := repo.GetByID(ctx, l.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	// contact fields are stored trimmed
	assert.Equal(t, "Ján Novák", got.CustomerName)
	assert.Equal(t, domain.PriorityHigh, got.Priority)
	require.NotNil(t, got.FirstContact)
	assert.Equal(t, "2024-01-05", got.FirstContact.Format("2006-01-02"))

	missing, err := repo.GetByID(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestListFilters(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	seedLead(t, repo, domain.Lead{CustomerName: "Ján Novák", City: "Bratislava", Status: domain.StatusOpen, Priority: domain.PriorityHigh})
	seedLead(t, repo, domain.Lead{CustomerName: "Eva Malá", City: "Košice", Status: domain.StatusCold, Priority: domain.PriorityLow})
	seedLead(t, repo, domain.Lead{CustomerName: "Peter Kováč", City: "Bratislava", Status: domain.StatusConverted, Priority: domain.PriorityMedium, Notes: "terasa a pergola"})

	all, err := repo.List(ctx, LeadFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	// ascending id order
	assert.Equal(t, "Ján Novák", all[0].CustomerName)
	assert.Equal(t, "Peter Kováč", all[2].CustomerName)

	open, err := repo.List(ctx, LeadFilter{Statuses: []string{string(domain.StatusOpen)}})
	require.NoError(t, err)
	require.Len(t, open, 1)
	assert.Equal(t, "Ján Novák", open[0].CustomerName)

	ba, err := repo.List(ctx, LeadFilter{Cities: []string{"Bratislava"}, Priorities: []string{string(domain.PriorityMedium)}})
	require.NoError(t, err)
	require.Len(t, ba, 1)
	assert.Equal(t, "Peter Kováč", ba[0].CustomerName)
}

func TestListFreeTextSearch(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	seedLead(t, repo, domain.Lead{CustomerName: "Ján Novák", Email: "jan@x.sk"})
	seedLead(t, repo, domain.Lead{CustomerName: "Eva Malá", Notes: "chce pergolu na jar"})

	hits, err := repo.List(ctx, LeadFilter{Query: "PERGOL"})
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "Eva Malá", hits[0].CustomerName)

	hits, err = repo.List(ctx, LeadFilter{Query: "jan@x.sk"})
	require.NoError(t, err)
	require.Len(t, hits, 1)
	assert.Equal(t, "Ján Novák", hits[0].CustomerName)

	hits, err = repo.List(ctx, LeadFilter{Query: "nenajde sa"})
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestFindMatchCandidates(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	seedLead(t, repo, domain.Lead{CustomerName: "Ján Novák", Phone: "0900111111"})
	seedLead(t, repo, domain.Lead{CustomerName: "Eva Malá", Email: "eva@x.sk"})

	// phone match alone is enough to surface a candidate
	got, err := repo.FindMatchCandidates(ctx, "Niekto Iný", "0900111111", "", nil)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Ján Novák", got[0].CustomerName)

	got, err = repo.FindMatchCandidates(ctx, "Eva Malá", "", "eva@x.sk", nil)
	require.NoError(t, err)
	require.Len(t, got, 1)

	// nothing to match on yields no candidates
	got, err = repo.FindMatchCandidates(ctx, "", "", "", nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestUpdateFields(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	l := seedLead(t, repo, domain.Lead{CustomerName: "Ján Novák", Status: domain.StatusOpen})

	affected, err := repo.UpdateFields(ctx, l.ID, map[string]interface{}{
		domain.FieldStatus:          string(domain.StatusConverted),
		domain.FieldRealizationDate: date(2024, 3, 9),
		domain.FieldOurOffer:        1500.50,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	got, err := repo.GetByID(ctx, l.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusConverted, got.Status)
	require.NotNil(t, got.RealizationDate)
	assert.Equal(t, "2024-03-09", got.RealizationDate.Format("2006-01-02"))
	require.NotNil(t, got.OurOffer)
	assert.InDelta(t, 1500.50, *got.OurOffer, 0.001)

	// clearing a column back to NULL
	var noDate *time.Time
	affected, err = repo.UpdateFields(ctx, l.ID, map[string]interface{}{
		domain.FieldRealizationDate: noDate,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)
	got, err = repo.GetByID(ctx, l.ID)
	require.NoError(t, err)
	assert.Nil(t, got.RealizationDate)

	// unknown id touches nothing
	affected, err = repo.UpdateFields(ctx, 9999, map[string]interface{}{
		domain.FieldNotes: "x",
	})
	require.NoError(t, err)
	assert.Zero(t, affected)

	// an empty update still reports whether the row exists
	affected, err = repo.UpdateFields(ctx, l.ID, map[string]interface{}{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)
}

func TestDeleteAndCount(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	a := seedLead(t, repo, domain.Lead{CustomerName: "Ján Novák"})
	b := seedLead(t, repo, domain.Lead{CustomerName: "Eva Malá"})
	seedLead(t, repo, domain.Lead{CustomerName: "Peter Kováč"})

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	removed, err := repo.DeleteByIDs(ctx, []int64{a.ID, b.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), removed)

	removed, err = repo.DeleteByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Zero(t, removed)

	wiped, err := repo.DeleteAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), wiped)

	count, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}
