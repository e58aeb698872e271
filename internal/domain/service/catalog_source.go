package service

import (
	"context"

	"storefront/internal/domain/entity"

	"github.com/pkg/errors"
)

// CatalogSource loads the catalog's JSON document from an external location
// (a blob bucket object in production, an in-memory bucket in tests).
type CatalogSource interface {
	// FetchRecords reads and decodes the catalog document. The read always
	// goes to the source; nothing is cached between calls.
	FetchRecords(ctx context.Context) ([]entity.CatalogRecord, error)
}

var (
	// ErrMissingRequiredColumns means the sheet's header row resolved
	// neither a name column nor a price column.
	ErrMissingRequiredColumns = errors.New("required name and price columns not found")

	// ErrNoData means the sheet had fewer than a header row plus one data row.
	ErrNoData = errors.New("sheet contains no data rows")
)

// SheetParser turns the raw CSV text of a spreadsheet export into catalog
// records, dropping rows that fail validation.
type SheetParser interface {
	// ParseCatalog parses csvText. It returns ErrNoData or
	// ErrMissingRequiredColumns when the sheet as a whole is unusable.
	ParseCatalog(csvText string) ([]entity.CatalogRecord, error)
}

// SheetFetcher retrieves the raw CSV text of a published spreadsheet export,
// passing the request through a CORS-bypass proxy.
type SheetFetcher interface {
	// FetchCSV downloads the CSV export at sheetURL. An empty sheetURL
	// falls back to the configured default sheet.
	FetchCSV(ctx context.Context, sheetURL string) (string, error)
}
