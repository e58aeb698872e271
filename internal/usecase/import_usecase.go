package usecase

import "context"

// ImportResult summarizes a finished catalog import.
type ImportResult struct {
	Imported   int    `json:"imported"`
	Generation uint64 `json:"-"`
}

// ImportUsecase runs the CSV import pipeline: fetch the published spreadsheet
// through the proxy, parse it into catalog records, and replace the catalog
// store contents under a generation token.
type ImportUsecase interface {
	// ImportFromSheet imports the sheet at sheetURL; an empty URL uses the
	// configured default sheet. Transport failures and validation failures
	// leave the catalog store untouched.
	ImportFromSheet(ctx context.Context, sheetURL string) (*ImportResult, error)
}
