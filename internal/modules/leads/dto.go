package leads

// CreateLeadRequest is the new-lead form payload. Customer name, a first
// contact date and at least one of phone/email are required; the enum
// fields are checked against their domains here, not by the store.
type CreateLeadRequest struct {
	CustomerName     string   `json:"meno_zakaznika" validate:"required"`
	Phone            string   `json:"telefon"`
	Email            string   `json:"email" validate:"omitempty,email"`
	City             string   `json:"mesto"`
	InquiryType      string   `json:"typ_dopytu"`
	FirstContact     string   `json:"datum_povodneho_kontaktu" validate:"required"`
	ProjectStatus    string   `json:"stav_projektu"`
	Competitor       string   `json:"konkurencia"`
	CompetitorPrice  *float64 `json:"cena_konkurencie"`
	OurOffer         *float64 `json:"nasa_ponuka_orientacna"`
	CustomerReaction string   `json:"reakcia_zakaznika"`
	NextStep         string   `json:"dalsi_krok"`
	NextStepDate     string   `json:"datum_dalsieho_kroku"`
	Priority         string   `json:"priorita" validate:"omitempty,oneof=High Medium Low"`
	Status           string   `json:"stav_leadu" validate:"omitempty,oneof=Open Cold Converted Lost"`
	IndicativePrice  *float64 `json:"orientacna_cena"`
	RealizationDate  string   `json:"datum_realizacie"`
	Notes            string   `json:"poznamky"`
}

// BulkUpdate is one row of a bulk grid save
type BulkUpdate struct {
	ID     int64                  `json:"id" validate:"required"`
	Fields map[string]interface{} `json:"fields" validate:"required"`
}

// BulkUpdateRequest carries all edited grid rows in one call
type BulkUpdateRequest struct {
	Updates []BulkUpdate `json:"updates" validate:"required,dive"`
}
