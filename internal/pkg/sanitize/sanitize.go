package sanitize

import (
	"strconv"
	"strings"
	"time"
)

// Date layouts accepted during import, most specific first. Legacy
// workbooks mix ISO dates with Slovak d.m.yyyy notation.
var dateLayouts = []string{
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"2006/01/02",
	"02.01.2006",
	"2.1.2006",
	"02.01.2006 15:04",
	"02/01/2006",
	"2/1/2006",
	"01/02/06",
	"20060102",
}

// null-like tokens spreadsheet engines emit for empty cells. Parsers are
// known to choke on these rather than return an empty value, so they are
// filtered out before any parsing is attempted.
var nullTokens = map[string]struct{}{
	"":     {},
	"nat":  {},
	"nan":  {},
	"null": {},
	"none": {},
	"n/a":  {},
	"-":    {},
}

// IsNull reports whether the raw cell value stands for "no value"
func IsNull(s string) bool {
	_, ok := nullTokens[strings.ToLower(strings.TrimSpace(s))]
	return ok
}

// Date parses an arbitrary value into a calendar date. Unparseable input
// and null-like sentinels yield nil, never an error: this runs inside bulk
// import loops where one bad cell must not abort the batch. Values that
// are already dates pass through truncated to midnight UTC.
func Date(v any) *time.Time {
	switch val := v.(type) {
	case nil:
		return nil
	case time.Time:
		if val.IsZero() {
			return nil
		}
		d := DateOnly(val)
		return &d
	case *time.Time:
		if val == nil || val.IsZero() {
			return nil
		}
		d := DateOnly(*val)
		return &d
	case string:
		return parseDateString(val)
	default:
		return nil
	}
}

func parseDateString(s string) *time.Time {
	s = strings.TrimSpace(s)
	if IsNull(s) {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			d := DateOnly(t)
			return &d
		}
	}
	return nil
}

// DateOnly truncates t to midnight UTC so calendar dates compare with ==
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Number coerces an arbitrary value to a float. Decimal commas are
// accepted (legacy sheets use them), as are thousands separators written
// as plain or non-breaking spaces. Failures yield nil, not an error.
func Number(v any) *float64 {
	switch val := v.(type) {
	case nil:
		return nil
	case float64:
		f := val
		return &f
	case float32:
		f := float64(val)
		return &f
	case int:
		f := float64(val)
		return &f
	case int64:
		f := float64(val)
		return &f
	case *float64:
		if val == nil {
			return nil
		}
		f := *val
		return &f
	case string:
		return parseNumberString(val)
	default:
		return nil
	}
}

func parseNumberString(s string) *float64 {
	s = strings.TrimSpace(s)
	if IsNull(s) {
		return nil
	}
	s = strings.NewReplacer(" ", "", " ", "", "€", "").Replace(s)
	if strings.Contains(s, ",") && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	} else {
		s = strings.ReplaceAll(s, ",", "")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

// Text trims a raw cell value and maps null-like sentinels to ""
func Text(s string) string {
	s = strings.TrimSpace(s)
	if IsNull(s) {
		return ""
	}
	return s
}
