package importer

import (
	"time"

	"remarkcrm/internal/domain"
	"remarkcrm/internal/pkg/sanitize"
	"remarkcrm/internal/pkg/textutil"
)

// CleanRow restricts a normalized row to the given known fields and
// coerces every value to its schema kind. Cells that fail coercion become
// nil, never an error: this runs inside the bulk import loop where one
// bad cell must not abort the batch. A nil fields list means the whole
// schema.
func CleanRow(row map[string]string, fields []string) map[string]interface{} {
	if fields == nil {
		fields = domain.FieldNames()
	}
	clean := make(map[string]interface{}, len(fields))
	for _, name := range fields {
		raw, ok := row[name]
		if !ok {
			continue
		}
		kind, known := domain.KindOf(name)
		if !known {
			continue
		}
		switch kind {
		case domain.KindDate:
			clean[name] = sanitize.Date(raw)
		case domain.KindNumeric:
			clean[name] = sanitize.Number(raw)
		default:
			clean[name] = sanitize.Text(raw)
		}
	}
	return clean
}

// legacy workbooks spell priorities in Slovak
var priorityAliases = map[string]string{
	"vysoka":  string(domain.PriorityHigh),
	"stredna": string(domain.PriorityMedium),
	"nizka":   string(domain.PriorityLow),
	"high":    string(domain.PriorityHigh),
	"medium":  string(domain.PriorityMedium),
	"low":     string(domain.PriorityLow),
}

func normalizePriority(raw string) string {
	if canonical, ok := priorityAliases[textutil.Fold(raw)]; ok {
		return canonical
	}
	return raw
}

// assembleLead builds a lead from a cleaned row, defaulting priority to
// Medium and status to Open when the source left them blank.
func assembleLead(clean map[string]interface{}) *domain.Lead {
	l := &domain.Lead{
		CustomerName:     textAt(clean, domain.FieldCustomerName),
		Phone:            textAt(clean, domain.FieldPhone),
		Email:            textAt(clean, domain.FieldEmail),
		City:             textAt(clean, domain.FieldCity),
		InquiryType:      textAt(clean, domain.FieldInquiryType),
		FirstContact:     dateAt(clean, domain.FieldFirstContact),
		ProjectStatus:    textAt(clean, domain.FieldProjectStatus),
		Competitor:       textAt(clean, domain.FieldCompetitor),
		CompetitorPrice:  numberAt(clean, domain.FieldCompetitorPrice),
		OurOffer:         numberAt(clean, domain.FieldOurOffer),
		CustomerReaction: textAt(clean, domain.FieldCustomerReaction),
		NextStep:         textAt(clean, domain.FieldNextStep),
		NextStepDate:     dateAt(clean, domain.FieldNextStepDate),
		Priority:         domain.Priority(normalizePriority(textAt(clean, domain.FieldPriority))),
		Status:           domain.LeadStatus(textAt(clean, domain.FieldStatus)),
		IndicativePrice:  numberAt(clean, domain.FieldIndicativePrice),
		RealizationDate:  dateAt(clean, domain.FieldRealizationDate),
		Notes:            textAt(clean, domain.FieldNotes),
	}
	if l.Priority == "" {
		l.Priority = domain.PriorityMedium
	}
	if l.Status == "" {
		l.Status = domain.StatusOpen
	}
	return l
}

// isEmptyLead reports whether the row carried no data at all
func isEmptyLead(l *domain.Lead) bool {
	return l.CustomerName == "" && l.Phone == "" && l.Email == "" &&
		l.City == "" && l.InquiryType == "" && l.FirstContact == nil &&
		l.ProjectStatus == "" && l.Competitor == "" && l.CompetitorPrice == nil &&
		l.OurOffer == nil && l.CustomerReaction == "" && l.NextStep == "" &&
		l.NextStepDate == nil && l.IndicativePrice == nil &&
		l.RealizationDate == nil && l.Notes == ""
}

func textAt(clean map[string]interface{}, name string) string {
	if v, ok := clean[name].(string); ok {
		return v
	}
	return ""
}

func dateAt(clean map[string]interface{}, name string) *time.Time {
	if v, ok := clean[name].(*time.Time); ok {
		return v
	}
	return nil
}

func numberAt(clean map[string]interface{}, name string) *float64 {
	if v, ok := clean[name].(*float64); ok {
		return v
	}
	return nil
}
