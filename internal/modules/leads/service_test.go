package leads

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"remarkcrm/internal/domain"
	"remarkcrm/internal/repository"
)

type mockLeadRepo struct {
	mock.Mock
}

func (m *mockLeadRepo) Create(ctx context.Context, l *domain.Lead) error {
	args := m.Called(ctx, l)
	return args.Error(0)
}

func (m *mockLeadRepo) List(ctx context.Context, filter repository.LeadFilter) ([]domain.Lead, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Lead), args.Error(1)
}

func (m *mockLeadRepo) GetByID(ctx context.Context, id int64) (*domain.Lead, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Lead), args.Error(1)
}

func (m *mockLeadRepo) FindMatchCandidates(ctx context.Context, name, phone, email string, firstContact *time.Time) ([]domain.Lead, error) {
	args := m.Called(ctx, name, phone, email, firstContact)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Lead), args.Error(1)
}

func (m *mockLeadRepo) UpdateFields(ctx context.Context, id int64, cols map[string]interface{}) (int64, error) {
	args := m.Called(ctx, id, cols)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockLeadRepo) DeleteByIDs(ctx context.Context, ids []int64) (int64, error) {
	args := m.Called(ctx, ids)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockLeadRepo) DeleteAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockLeadRepo) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func TestCreateRejectsDuplicate(t *testing.T) {
	repo := new(mockLeadRepo)
	svc := NewService(repo, time.UTC)

	existing := []domain.Lead{
		{ID: 1, CustomerName: "Ján Novák", Phone: "0900111111"},
	}
	repo.On("FindMatchCandidates", mock.Anything, "Ján Novák", "0900111111", "jan@x.sk", mock.Anything).
		Return(existing, nil)

	_, err := svc.Create(context.Background(), CreateLeadRequest{
		CustomerName: "Ján Novák",
		Phone:        "0900111111",
		Email:        "jan@x.sk",
		FirstContact: "2024-01-05",
	})
	assert.ErrorIs(t, err, ErrDuplicate)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateDefaultsAndPersists(t *testing.T) {
	repo := new(mockLeadRepo)
	svc := NewService(repo, time.UTC)

	repo.On("FindMatchCandidates", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return([]domain.Lead{}, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	l, err := svc.Create(context.Background(), CreateLeadRequest{
		CustomerName: "Eva Malá",
		Email:        "eva@x.sk",
		FirstContact: "5.1.2024",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.PriorityMedium, l.Priority)
	assert.Equal(t, domain.StatusOpen, l.Status)
	require.NotNil(t, l.FirstContact)
	assert.Equal(t, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), *l.FirstContact)
	repo.AssertExpectations(t)
}

func TestCreateValidation(t *testing.T) {
	repo := new(mockLeadRepo)
	svc := NewService(repo, time.UTC)

	cases := []CreateLeadRequest{
		{Phone: "0900111111", FirstContact: "2024-01-05"},               // no name
		{CustomerName: "Eva Malá", FirstContact: "2024-01-05"},          // no contact channel
		{CustomerName: "Eva Malá", Email: "eva@x.sk"},                   // no first contact
		{CustomerName: "Eva Malá", Email: "eva@x.sk", FirstContact: "garbage"},
	}
	for i, req := range cases {
		_, err := svc.Create(context.Background(), req)
		assert.ErrorIs(t, err, ErrValidation, "case %d", i)
	}
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUpdateOneCoercesByFieldKind(t *testing.T) {
	repo := new(mockLeadRepo)
	svc := NewService(repo, time.UTC)

	want := time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)
	repo.On("UpdateFields", mock.Anything, int64(7), mock.MatchedBy(func(cols map[string]interface{}) bool {
		d, ok := cols[domain.FieldNextStepDate].(*time.Time)
		if !ok || d == nil || !d.Equal(want) {
			return false
		}
		n, ok := cols[domain.FieldOurOffer].(*float64)
		if !ok || n == nil || *n != 1500.50 {
			return false
		}
		// unknown fields never reach the repository
		_, leaked := cols["no_such_field"]
		return !leaked
	})).Return(int64(1), nil)

	err := svc.UpdateOne(context.Background(), 7, map[string]interface{}{
		domain.FieldNextStepDate: "10.02.2024",
		domain.FieldOurOffer:     "1 500,50",
		"no_such_field":          "x",
	})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestUpdateOneNotFound(t *testing.T) {
	repo := new(mockLeadRepo)
	svc := NewService(repo, time.UTC)

	repo.On("UpdateFields", mock.Anything, int64(999), mock.Anything).Return(int64(0), nil)

	err := svc.UpdateOne(context.Background(), 999, map[string]interface{}{
		domain.FieldNotes: "hi",
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateManySkipsUnknownRows(t *testing.T) {
	repo := new(mockLeadRepo)
	svc := NewService(repo, time.UTC)

	repo.On("UpdateFields", mock.Anything, int64(1), mock.Anything).Return(int64(1), nil)
	repo.On("UpdateFields", mock.Anything, int64(999), mock.Anything).Return(int64(0), nil)

	updated, err := svc.UpdateMany(context.Background(), []BulkUpdate{
		{ID: 1, Fields: map[string]interface{}{domain.FieldNotes: "a"}},
		{ID: 999, Fields: map[string]interface{}{domain.FieldNotes: "b"}},
		{ID: 0, Fields: map[string]interface{}{domain.FieldNotes: "c"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, updated)
	repo.AssertNumberOfCalls(t, "UpdateFields", 2)
}

func TestConvertStampsToday(t *testing.T) {
	repo := new(mockLeadRepo)
	svc := NewService(repo, time.UTC)
	svc.now = func() time.Time {
		return time.Date(2024, 3, 9, 17, 45, 0, 0, time.UTC)
	}

	repo.On("UpdateFields", mock.Anything, int64(3), mock.MatchedBy(func(cols map[string]interface{}) bool {
		if cols[domain.FieldStatus] != string(domain.StatusConverted) {
			return false
		}
		d, ok := cols[domain.FieldRealizationDate].(*time.Time)
		return ok && d != nil && d.Equal(time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC))
	})).Return(int64(1), nil)

	require.NoError(t, svc.Convert(context.Background(), 3))
	repo.AssertExpectations(t)
}

func TestRemoveDuplicates(t *testing.T) {
	repo := new(mockLeadRepo)
	svc := NewService(repo, time.UTC)

	all := []domain.Lead{
		{ID: 1, CustomerName: "Ján Novák", Phone: "0900111111"},
		{ID: 2, CustomerName: "Ján Novák", Phone: "0900111111"},
	}
	repo.On("List", mock.Anything, repository.LeadFilter{}).Return(all, nil)
	repo.On("DeleteByIDs", mock.Anything, []int64{2}).Return(int64(1), nil)

	removed, err := svc.RemoveDuplicates(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	repo.AssertExpectations(t)
}
