package importer

// ImportResponse is the user-facing import report. "skipped" is the
// combined count the dashboard shows; the split counters let it say why.
type ImportResponse struct {
	Imported           int `json:"imported"`
	Skipped            int `json:"skipped"`
	SkippedMissingName int `json:"skipped_missing_name"`
	SkippedDuplicates  int `json:"skipped_duplicates"`
	Removed            int `json:"removed_duplicates"`
}

func toImportResponse(res Result, removed int) ImportResponse {
	return ImportResponse{
		Imported:           res.Imported,
		Skipped:            res.Skipped(),
		SkippedMissingName: res.SkippedMissingName,
		SkippedDuplicates:  res.SkippedDuplicates,
		Removed:            removed,
	}
}
