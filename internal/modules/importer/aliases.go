package importer

import (
	"strings"

	"remarkcrm/internal/domain"
	"remarkcrm/internal/pkg/textutil"
)

// Header alias tables. Keys are normalized header text (lowercase,
// accent-free, space-delimited), values are canonical field names. The
// tables are data on purpose: extending the mapping must never require
// touching the parsing logic.

// workbookAliases covers every header spelling seen in the legacy
// workbooks, both the pretty Slovak captions and the underscored exports.
var workbookAliases = map[string]string{
	"meno":           domain.FieldCustomerName,
	"meno zakaznika": domain.FieldCustomerName,
	"telefon":        domain.FieldPhone,
	"email":          domain.FieldEmail,
	"mesto":          domain.FieldCity,
	"typ dopytu":     domain.FieldInquiryType,

	"datum povodneho kontaktu": domain.FieldFirstContact,
	"stav projektu":            domain.FieldProjectStatus,

	"konkurencia":        domain.FieldCompetitor,
	"kto je konkurencia": domain.FieldCompetitor,
	"cena konkurencie":   domain.FieldCompetitorPrice,

	"nasa ponuka orientacna":   domain.FieldOurOffer,
	"nasa ponuka (orientacna)": domain.FieldOurOffer,

	"reakcia zakaznika":    domain.FieldCustomerReaction,
	"dalsi krok":           domain.FieldNextStep,
	"dohodnuty dalsi krok": domain.FieldNextStep,
	"datum dalsieho kroku": domain.FieldNextStepDate,

	"priorita":   domain.FieldPriority,
	"stav leadu": domain.FieldStatus,

	"orientacna cena":       domain.FieldIndicativePrice,
	"orientacna cena (eur)": domain.FieldIndicativePrice,

	"datum realizacie": domain.FieldRealizationDate,
	"poznamky":         domain.FieldNotes,

	// CRM exports decorate required columns and repeat the English name
	"meno zakaznika*":       domain.FieldCustomerName,
	"meno zakaznika (name)": domain.FieldCustomerName,
	"meno (name)":           domain.FieldCustomerName,
	"meno zakaznika (meno)": domain.FieldCustomerName,
	"telefon*":              domain.FieldPhone,
	"phone":                 domain.FieldPhone,
	"vytvorene":             domain.FieldFirstContact,
	"vytovorene":            domain.FieldFirstContact,
}

// csvAliases is the narrow mapping for contact-list CSV exports
var csvAliases = map[string]string{
	"meno":           domain.FieldCustomerName,
	"meno zakaznika": domain.FieldCustomerName,
	"email":          domain.FieldEmail,
	"phone":          domain.FieldPhone,
	"telefon":        domain.FieldPhone,
	"vytvorene":      domain.FieldFirstContact,
	"vytovorene":     domain.FieldFirstContact,
}

// csvFields is the field subset a CSV import may populate
var csvFields = []string{
	domain.FieldCustomerName,
	domain.FieldEmail,
	domain.FieldPhone,
	domain.FieldFirstContact,
}

// NormalizeHeader maps one raw header to a canonical field name. The
// header is folded (diacritics stripped, lowercased, whitespace collapsed,
// underscores treated as spaces) and looked up in the alias table; on a
// miss the folded form comes back with spaces turned into underscores so
// later stages can still see, and ignore, the column.
func NormalizeHeader(header string, aliases map[string]string) string {
	key := textutil.Fold(strings.ReplaceAll(header, "_", " "))
	if canonical, ok := aliases[key]; ok {
		return canonical
	}
	return strings.ReplaceAll(key, " ", "_")
}

// NormalizeHeaders maps every header of a parsed table
func NormalizeHeaders(headers []string, aliases map[string]string) []string {
	out := make([]string, len(headers))
	for i, h := range headers {
		out[i] = NormalizeHeader(h, aliases)
	}
	return out
}
