package impl

import (
	"context"
	"log/slog"

	"storefront/config"
	domainerrors "storefront/internal/domain/errors"
	"storefront/internal/domain/service"
	"storefront/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// importService runs the spreadsheet import pipeline.
type importService struct {
	fetcher service.SheetFetcher
	parser  service.SheetParser
	catalog usecase.CatalogUsecase
	config  *config.Config
	logger  *slog.Logger
}

// ImportServiceParams holds dependencies for ImportService, injected by Fx.
type ImportServiceParams struct {
	fx.In

	Fetcher service.SheetFetcher
	Parser  service.SheetParser
	Catalog usecase.CatalogUsecase
	Config  *config.Config
	Logger  *slog.Logger
}

// NewImportService creates a new import service instance.
func NewImportService(params ImportServiceParams) usecase.ImportUsecase {
	return &importService{
		fetcher: params.Fetcher,
		parser:  params.Parser,
		catalog: params.Catalog,
		config:  params.Config,
		logger:  params.Logger,
	}
}

// ImportFromSheet imports the sheet at sheetURL; an empty URL uses the
// configured default sheet.
//
// The generation token is reserved before the fetch starts. When two imports
// overlap, the one that started later carries the higher token, so the
// earlier one's late result cannot overwrite it.
func (s *importService) ImportFromSheet(ctx context.Context, sheetURL string) (*usecase.ImportResult, error) {
	if sheetURL == "" && s.config.Import != nil {
		sheetURL = s.config.Import.SheetURL
	}

	generation := s.catalog.NextGeneration()

	if s.config.Import != nil && s.config.Import.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.config.Import.Timeout)
		defer cancel()
	}

	s.logger.Info("Starting catalog import",
		slog.String("sheet_url", sheetURL),
		slog.Uint64("generation", generation),
	)

	csvText, err := s.fetcher.FetchCSV(ctx, sheetURL)
	if err != nil {
		return nil, domainerrors.ErrImportTransport.WrapMessage(err.Error())
	}

	records, err := s.parser.ParseCatalog(csvText)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrMissingRequiredColumns):
			return nil, domainerrors.ErrImportMissingColumns
		case errors.Is(err, service.ErrNoData):
			return nil, domainerrors.ErrImportNoRows
		default:
			return nil, errors.Wrap(err, "failed to parse sheet")
		}
	}
	if len(records) == 0 {
		return nil, domainerrors.ErrImportNoRows
	}

	if err := s.catalog.ReplaceAll(ctx, generation, records); err != nil {
		return nil, err
	}

	s.logger.Info("Catalog import finished",
		slog.Int("imported", len(records)),
		slog.Uint64("generation", generation),
	)

	return &usecase.ImportResult{
		Imported:   len(records),
		Generation: generation,
	}, nil
}
