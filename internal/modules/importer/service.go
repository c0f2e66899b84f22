package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"remarkcrm/internal/modules/leads"
)

// seedSheet is the fixed sheet name of the first-run seed workbook
const seedSheet = "Leads"

type Service struct {
	store LeadStore
}

func NewService(store LeadStore) *Service {
	return &Service{store: store}
}

// Result reports one import run. Missing-name skips and duplicate skips
// are counted separately; Skipped folds them back together for the
// original one-number status message.
type Result struct {
	Imported           int `json:"imported"`
	SkippedMissingName int `json:"skipped_missing_name"`
	SkippedDuplicates  int `json:"skipped_duplicates"`
}

func (r Result) Skipped() int {
	return r.SkippedMissingName + r.SkippedDuplicates
}

// importOptions tells importTable how to treat one source shape
type importOptions struct {
	aliases     map[string]string
	fields      []string // nil means the full schema
	requireName bool
}

// SeedFromWorkbook populates an empty store from the fixed-schema seed
// workbook. It is a one-time seed, never a merge: a non-empty store makes
// it a no-op, and a missing file is not an error on first run either.
func (s *Service) SeedFromWorkbook(ctx context.Context, path string) (Result, error) {
	count, err := s.store.Count(ctx)
	if err != nil {
		return Result{}, err
	}
	if count > 0 {
		return Result{}, nil
	}

	if path == "" {
		return Result{}, nil
	}
	if _, err := os.Stat(path); err != nil {
		return Result{}, nil
	}

	t, err := readWorkbookFile(path, seedSheet)
	if err != nil {
		return Result{}, fmt.Errorf("seed import: %w", err)
	}
	return s.importTable(ctx, t, importOptions{aliases: workbookAliases})
}

// ImportWorkbook merges a user-supplied spreadsheet into the store at any
// time. Rows without a customer name are skipped and counted apart from
// duplicate skips.
func (s *Service) ImportWorkbook(ctx context.Context, r io.Reader) (Result, error) {
	t, err := readWorkbook(r, "")
	if err != nil {
		return Result{}, err
	}
	return s.importTable(ctx, t, importOptions{aliases: workbookAliases, requireName: true})
}

// ImportCSV merges a contact-list CSV: only name, email, phone and first
// contact date are taken, priority and status get their defaults.
func (s *Service) ImportCSV(ctx context.Context, r io.Reader) (Result, error) {
	t, err := readCSV(r)
	if err != nil {
		return Result{}, err
	}
	return s.importTable(ctx, t, importOptions{aliases: csvAliases, fields: csvFields, requireName: true})
}

// ImportUpload dispatches an uploaded file to the matching pipeline by
// its extension.
func (s *Service) ImportUpload(ctx context.Context, filename string, r io.Reader) (Result, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xls":
		return s.ImportWorkbook(ctx, r)
	case ".csv", ".txt", "":
		return s.ImportCSV(ctx, r)
	default:
		return Result{}, ErrUnsupportedFile
	}
}

// ImportFile runs the matching pipeline against a file on disk (the
// drop-directory auto-import path).
func (s *Service) ImportFile(ctx context.Context, path string) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, err
	}
	defer f.Close()
	return s.ImportUpload(ctx, filepath.Base(path), f)
}

// importTable is the shared pipeline tail: normalize headers, clean each
// row, insert via the store. One bad row never aborts the batch; it is
// tallied and the loop moves on.
func (s *Service) importTable(ctx context.Context, t *table, opts importOptions) (Result, error) {
	var res Result
	if len(t.headers) == 0 {
		return res, nil
	}

	headers := NormalizeHeaders(t.headers, opts.aliases)
	for _, record := range t.rows {
		row := make(map[string]string, len(headers))
		for i, name := range headers {
			row[name] = t.rowValue(record, i)
		}

		l := assembleLead(CleanRow(row, opts.fields))
		if opts.requireName && l.CustomerName == "" {
			res.SkippedMissingName++
			continue
		}
		if isEmptyLead(l) {
			continue
		}

		if err := s.store.Insert(ctx, l); err != nil {
			if errors.Is(err, leads.ErrDuplicate) {
				res.SkippedDuplicates++
				continue
			}
			return res, err
		}
		res.Imported++
	}
	return res, nil
}
