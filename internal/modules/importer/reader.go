package importer

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/xuri/excelize/v2"
)

// table is a parsed source file: one header row plus data rows. Data
// rows may be shorter than the header (trailing empty cells), readers do
// not pad them; row access goes through rowValue.
type table struct {
	headers []string
	rows    [][]string
}

func (t *table) rowValue(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}

// readWorkbook parses one sheet of an xlsx stream. An empty sheet name
// selects the first sheet of the workbook.
func readWorkbook(r io.Reader, sheet string) (*table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		list := f.GetSheetList()
		if len(list) == 0 {
			return nil, errors.New("workbook has no sheets")
		}
		sheet = list[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", sheet, err)
	}
	if len(rows) == 0 {
		return &table{}, nil
	}
	return &table{headers: rows[0], rows: rows[1:]}, nil
}

func readWorkbookFile(path, sheet string) (*table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open workbook file: %w", err)
	}
	defer f.Close()
	return readWorkbook(f, sheet)
}

// readCSV parses a CSV stream. Comma separation is tried first; when the
// result collapses into a single semicolon-riddled column the data is
// re-parsed with semicolons, which is what Slovak Excel exports produce.
func readCSV(r io.Reader) (*table, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	t, commaErr := parseCSV(data, ',')
	if commaErr == nil && !looksSemicolonSeparated(t) {
		return t, nil
	}
	t, semiErr := parseCSV(data, ';')
	if semiErr != nil {
		if commaErr != nil {
			return nil, fmt.Errorf("parse csv: %w", commaErr)
		}
		return nil, fmt.Errorf("parse csv: %w", semiErr)
	}
	return t, nil
}

func parseCSV(data []byte, sep rune) (*table, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = sep
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return &table{}, nil
	}
	return &table{headers: records[0], rows: records[1:]}, nil
}

func looksSemicolonSeparated(t *table) bool {
	return len(t.headers) == 1 && strings.Contains(t.headers[0], ";")
}
