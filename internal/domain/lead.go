package domain

import "time"

// Priority of a lead
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// LeadStatus represents the sales pipeline state of a lead
type LeadStatus string

const (
	StatusOpen      LeadStatus = "Open"
	StatusCold      LeadStatus = "Cold"
	StatusConverted LeadStatus = "Converted"
	StatusLost      LeadStatus = "Lost"
)

// Canonical field names. The grid UI, the import alias tables and the
// database columns all speak these names, inherited from the legacy
// spreadsheet the CRM was seeded from.
const (
	FieldCustomerName     = "meno_zakaznika"
	FieldPhone            = "telefon"
	FieldEmail            = "email"
	FieldCity             = "mesto"
	FieldInquiryType      = "typ_dopytu"
	FieldFirstContact     = "datum_povodneho_kontaktu"
	FieldProjectStatus    = "stav_projektu"
	FieldCompetitor       = "konkurencia"
	FieldCompetitorPrice  = "cena_konkurencie"
	FieldOurOffer         = "nasa_ponuka_orientacna"
	FieldCustomerReaction = "reakcia_zakaznika"
	FieldNextStep         = "dalsi_krok"
	FieldNextStepDate     = "datum_dalsieho_kroku"
	FieldPriority         = "priorita"
	FieldStatus           = "stav_leadu"
	FieldIndicativePrice  = "orientacna_cena"
	FieldRealizationDate  = "datum_realizacie"
	FieldNotes            = "poznamky"
)

// Lead is one sales opportunity
type Lead struct {
	ID               int64      `json:"id"`
	CustomerName     string     `json:"meno_zakaznika"`
	Phone            string     `json:"telefon"`
	Email            string     `json:"email"`
	City             string     `json:"mesto"`
	InquiryType      string     `json:"typ_dopytu"`
	FirstContact     *time.Time `json:"datum_povodneho_kontaktu"`
	ProjectStatus    string     `json:"stav_projektu"`
	Competitor       string     `json:"konkurencia"`
	CompetitorPrice  *float64   `json:"cena_konkurencie"`
	OurOffer         *float64   `json:"nasa_ponuka_orientacna"`
	CustomerReaction string     `json:"reakcia_zakaznika"`
	NextStep         string     `json:"dalsi_krok"`
	NextStepDate     *time.Time `json:"datum_dalsieho_kroku"`
	Priority         Priority   `json:"priorita"`
	Status           LeadStatus `json:"stav_leadu"`
	IndicativePrice  *float64   `json:"orientacna_cena"`
	RealizationDate  *time.Time `json:"datum_realizacie"`
	Notes            string     `json:"poznamky"`
}

// IsConverted returns true if the lead was won
func (l *Lead) IsConverted() bool {
	return l.Status == StatusConverted
}

// FieldKind tags a schema field with the coercion it needs on write.
// Updates consult the tag instead of guessing from the field name.
type FieldKind int

const (
	KindText FieldKind = iota
	KindNumeric
	KindDate
)

// FieldSpec describes one editable lead field
type FieldSpec struct {
	Name string
	Kind FieldKind
}

// Schema lists the editable lead fields in grid order. The id column is
// not part of the schema: it is assigned by the store and immutable.
var Schema = []FieldSpec{
	{FieldCustomerName, KindText},
	{FieldPhone, KindText},
	{FieldEmail, KindText},
	{FieldCity, KindText},
	{FieldInquiryType, KindText},
	{FieldFirstContact, KindDate},
	{FieldProjectStatus, KindText},
	{FieldCompetitor, KindText},
	{FieldCompetitorPrice, KindNumeric},
	{FieldOurOffer, KindNumeric},
	{FieldCustomerReaction, KindText},
	{FieldNextStep, KindText},
	{FieldNextStepDate, KindDate},
	{FieldPriority, KindText},
	{FieldStatus, KindText},
	{FieldIndicativePrice, KindNumeric},
	{FieldRealizationDate, KindDate},
	{FieldNotes, KindText},
}

var schemaByName = func() map[string]FieldKind {
	m := make(map[string]FieldKind, len(Schema))
	for _, f := range Schema {
		m[f.Name] = f.Kind
	}
	return m
}()

// FieldNames returns the canonical field names in schema order
func FieldNames() []string {
	names := make([]string, len(Schema))
	for i, f := range Schema {
		names[i] = f.Name
	}
	return names
}

// KindOf returns the coercion kind for a canonical field name
func KindOf(name string) (FieldKind, bool) {
	k, ok := schemaByName[name]
	return k, ok
}

// ValidPriority reports whether p belongs to the priority domain
func ValidPriority(p string) bool {
	switch Priority(p) {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// ValidStatus reports whether s belongs to the lead status domain
func ValidStatus(s string) bool {
	switch LeadStatus(s) {
	case StatusOpen, StatusCold, StatusConverted, StatusLost:
		return true
	}
	return false
}

// Priorities returns the priority domain in display order
func Priorities() []string {
	return []string{string(PriorityHigh), string(PriorityMedium), string(PriorityLow)}
}

// Statuses returns the lead status domain in display order
func Statuses() []string {
	return []string{string(StatusOpen), string(StatusCold), string(StatusConverted), string(StatusLost)}
}
