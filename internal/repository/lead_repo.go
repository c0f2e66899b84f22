package repository

import (
	"context"
	"strings"
	"time"

	"remarkcrm/internal/domain"

	"gorm.io/gorm"
)

type LeadRepository struct {
	db *gorm.DB
}

func NewLeadRepository(db *gorm.DB) *LeadRepository {
	return &LeadRepository{db: db}
}

// AutoMigrate creates or updates the leads table
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&leadModel{})
}

type leadModel struct {
	ID               int64      `gorm:"column:id;primaryKey;autoIncrement"`
	CustomerName     string     `gorm:"column:meno_zakaznika"`
	Phone            string     `gorm:"column:telefon"`
	Email            string     `gorm:"column:email"`
	City             string     `gorm:"column:mesto"`
	InquiryType      string     `gorm:"column:typ_dopytu"`
	FirstContact     *time.Time `gorm:"column:datum_povodneho_kontaktu"`
	ProjectStatus    string     `gorm:"column:stav_projektu"`
	Competitor       string     `gorm:"column:konkurencia"`
	CompetitorPrice  *float64   `gorm:"column:cena_konkurencie"`
	OurOffer         *float64   `gorm:"column:nasa_ponuka_orientacna"`
	CustomerReaction string     `gorm:"column:reakcia_zakaznika"`
	NextStep         string     `gorm:"column:dalsi_krok"`
	NextStepDate     *time.Time `gorm:"column:datum_dalsieho_kroku"`
	Priority         string     `gorm:"column:priorita"`
	Status           string     `gorm:"column:stav_leadu"`
	IndicativePrice  *float64   `gorm:"column:orientacna_cena"`
	RealizationDate  *time.Time `gorm:"column:datum_realizacie"`
	Notes            string     `gorm:"column:poznamky"`
}

func (leadModel) TableName() string { return "leads" }

func toDomainLead(m leadModel) domain.Lead {
	return domain.Lead{
		ID:               m.ID,
		CustomerName:     m.CustomerName,
		Phone:            m.Phone,
		Email:            m.Email,
		City:             m.City,
		InquiryType:      m.InquiryType,
		FirstContact:     m.FirstContact,
		ProjectStatus:    m.ProjectStatus,
		Competitor:       m.Competitor,
		CompetitorPrice:  m.CompetitorPrice,
		OurOffer:         m.OurOffer,
		CustomerReaction: m.CustomerReaction,
		NextStep:         m.NextStep,
		NextStepDate:     m.NextStepDate,
		Priority:         domain.Priority(m.Priority),
		Status:           domain.LeadStatus(m.Status),
		IndicativePrice:  m.IndicativePrice,
		RealizationDate:  m.RealizationDate,
		Notes:            m.Notes,
	}
}

func toLeadModel(l *domain.Lead) leadModel {
	return leadModel{
		ID:               l.ID,
		CustomerName:     strings.TrimSpace(l.CustomerName),
		Phone:            strings.TrimSpace(l.Phone),
		Email:            strings.TrimSpace(l.Email),
		City:             l.City,
		InquiryType:      l.InquiryType,
		FirstContact:     l.FirstContact,
		ProjectStatus:    l.ProjectStatus,
		Competitor:       l.Competitor,
		CompetitorPrice:  l.CompetitorPrice,
		OurOffer:         l.OurOffer,
		CustomerReaction: l.CustomerReaction,
		NextStep:         l.NextStep,
		NextStepDate:     l.NextStepDate,
		Priority:         string(l.Priority),
		Status:           string(l.Status),
		IndicativePrice:  l.IndicativePrice,
		RealizationDate:  l.RealizationDate,
		Notes:            l.Notes,
	}
}

// LeadFilter narrows List results. Zero value means "everything".
type LeadFilter struct {
	Statuses     []string
	Priorities   []string
	InquiryTypes []string
	Cities       []string
	Query        string
}

// columns searched by the free-text filter
var searchColumns = []string{
	domain.FieldCustomerName,
	domain.FieldPhone,
	domain.FieldEmail,
	domain.FieldCity,
	domain.FieldInquiryType,
	domain.FieldProjectStatus,
	domain.FieldCustomerReaction,
	domain.FieldNextStep,
	domain.FieldNotes,
}

// Create persists a new lead and fills in its assigned id
func (r *LeadRepository) Create(ctx context.Context, l *domain.Lead) error {
	m := toLeadModel(l)
	m.ID = 0
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	l.ID = m.ID
	return nil
}

// List returns leads matching the filter in ascending id order
func (r *LeadRepository) List(ctx context.Context, filter LeadFilter) ([]domain.Lead, error) {
	q := r.db.WithContext(ctx).Model(&leadModel{})
	if len(filter.Statuses) > 0 {
		q = q.Where("stav_leadu IN ?", filter.Statuses)
	}
	if len(filter.Priorities) > 0 {
		q = q.Where("priorita IN ?", filter.Priorities)
	}
	if len(filter.InquiryTypes) > 0 {
		q = q.Where("typ_dopytu IN ?", filter.InquiryTypes)
	}
	if len(filter.Cities) > 0 {
		q = q.Where("mesto IN ?", filter.Cities)
	}
	if s := strings.TrimSpace(filter.Query); s != "" {
		pattern := "%" + strings.ToLower(s) + "%"
		var clauses []string
		var args []interface{}
		for _, col := range searchColumns {
			clauses = append(clauses, "LOWER(COALESCE("+col+", '')) LIKE ?")
			args = append(args, pattern)
		}
		q = q.Where(strings.Join(clauses, " OR "), args...)
	}

	var models []leadModel
	if err := q.Order("id ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	leads := make([]domain.Lead, 0, len(models))
	for _, m := range models {
		leads = append(leads, toDomainLead(m))
	}
	return leads, nil
}

// GetByID returns the lead or nil when it does not exist
func (r *LeadRepository) GetByID(ctx context.Context, id int64) (*domain.Lead, error) {
	var m leadModel
	err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	l := toDomainLead(m)
	return &l, nil
}

// FindMatchCandidates returns leads sharing at least one populated match
// field with the given values, for the duplicate tally.
func (r *LeadRepository) FindMatchCandidates(ctx context.Context, name, phone, email string, firstContact *time.Time) ([]domain.Lead, error) {
	q := r.db.WithContext(ctx).Model(&leadModel{})
	matched := false
	if name != "" {
		q = q.Where("meno_zakaznika = ?", name)
		matched = true
	}
	if phone != "" {
		q = q.Or("telefon = ?", phone)
		matched = true
	}
	if email != "" {
		q = q.Or("email = ?", email)
		matched = true
	}
	if firstContact != nil {
		q = q.Or("datum_povodneho_kontaktu = ?", *firstContact)
		matched = true
	}
	if !matched {
		return nil, nil
	}

	var models []leadModel
	if err := q.Order("id ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	leads := make([]domain.Lead, 0, len(models))
	for _, m := range models {
		leads = append(leads, toDomainLead(m))
	}
	return leads, nil
}

// UpdateFields applies a partial column overwrite and reports how many
// rows it touched (0 when the id is unknown).
func (r *LeadRepository) UpdateFields(ctx context.Context, id int64, cols map[string]interface{}) (int64, error) {
	if len(cols) == 0 {
		var count int64
		err := r.db.WithContext(ctx).Model(&leadModel{}).Where("id = ?", id).Count(&count).Error
		return count, err
	}
	res := r.db.WithContext(ctx).Model(&leadModel{}).Where("id = ?", id).Updates(cols)
	return res.RowsAffected, res.Error
}

// DeleteByIDs removes the given leads in one pass
func (r *LeadRepository) DeleteByIDs(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&leadModel{})
	return res.RowsAffected, res.Error
}

// DeleteAll wipes the collection (explicit full-store reset)
func (r *LeadRepository) DeleteAll(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).Where("1 = 1").Delete(&leadModel{})
	return res.RowsAffected, res.Error
}

// Count returns the number of stored leads
func (r *LeadRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&leadModel{}).Count(&count).Error
	return count, err
}
