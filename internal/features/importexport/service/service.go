package service

import (
	"context"

	apperrors "airdrop-tracker-backend/internal/common/errors"
	"airdrop-tracker-backend/internal/common/logger"
	airdropmodels "airdrop-tracker-backend/internal/features/airdrop/models"
	airdropservice "airdrop-tracker-backend/internal/features/airdrop/service"
	"airdrop-tracker-backend/internal/features/importexport/rows"
)

// SheetGateway is the slice of the spreadsheet API the adapter needs. The
// Sheets client implements it; tests substitute an in-memory fake.
type SheetGateway interface {
	ReadRange(ctx context.Context, spreadsheetID, readRange string) ([][]interface{}, error)
	WriteRange(ctx context.Context, spreadsheetID, writeRange string, values [][]interface{}) error
}

// ImportResult reports what a spreadsheet import did. Skipped rows come back
// as warnings instead of failing the batch.
type ImportResult struct {
	Imported int      `json:"imported"`
	Warnings []string `json:"warnings,omitempty"`
}

// ExportResult reports how many records were written.
type ExportResult struct {
	Exported int `json:"exported"`
}

type ImportExportService interface {
	ImportFromSheet(ctx context.Context, ownerID, spreadsheetID, readRange string) (*ImportResult, error)
	ExportToSheet(ctx context.Context, ownerID, spreadsheetID, writeRange string) (*ExportResult, error)
}

type importExportService struct {
	gateway  SheetGateway
	airdrops airdropservice.AirdropService
}

func NewImportExportService(gateway SheetGateway, airdrops airdropservice.AirdropService) ImportExportService {
	return &importExportService{
		gateway:  gateway,
		airdrops: airdrops,
	}
}

// ImportFromSheet reads the range, validates the header strictly and ingests
// the data rows through the store's bulk path. Per-row problems degrade to
// warnings; a bad header rejects the whole batch.
func (s *importExportService) ImportFromSheet(ctx context.Context, ownerID, spreadsheetID, readRange string) (*ImportResult, error) {
	values, err := s.gateway.ReadRange(ctx, spreadsheetID, readRange)
	if err != nil {
		return nil, apperrors.NewSheetsAPIError("read range", err)
	}

	if len(values) == 0 {
		return nil, apperrors.New(apperrors.ErrCodeHeaderMismatch, "sheet is empty, header row is mandatory")
	}

	if err := rows.ValidateHeader(values[0]); err != nil {
		return nil, apperrors.New(apperrors.ErrCodeHeaderMismatch, err.Error())
	}

	result := &ImportResult{}
	var items []airdropmodels.AirdropCreate
	for i, row := range values[1:] {
		// Row numbers in warnings are 1-based sheet rows, header is row 1.
		input, warn := rows.ParseRow(i+2, row)
		if input == nil {
			result.Warnings = append(result.Warnings, warn)
			continue
		}
		items = append(items, *input)
	}

	bulk, err := s.airdrops.BulkAdd(ctx, ownerID, items)
	if bulk != nil {
		// Rows committed before a failure stay committed.
		result.Imported = bulk.Added
	}
	if err != nil {
		return result, err
	}

	logger.Info().
		Int("imported", result.Imported).
		Int("skipped", len(result.Warnings)).
		Str("owner_id", ownerID).
		Msg("Sheet import finished")

	return result, nil
}

// ExportToSheet clears the destination range and writes the header plus one
// row per airdrop in the store's full unfiltered order.
func (s *importExportService) ExportToSheet(ctx context.Context, ownerID, spreadsheetID, writeRange string) (*ExportResult, error) {
	list, err := s.airdrops.List(ctx, ownerID, airdropmodels.ListQuery{Status: airdropmodels.FilterAll})
	if err != nil {
		return nil, err
	}

	values := make([][]interface{}, 0, len(list)+1)
	values = append(values, rows.HeaderRow())
	for _, airdrop := range list {
		values = append(values, rows.FormatRow(airdrop))
	}

	if err := s.gateway.WriteRange(ctx, spreadsheetID, writeRange, values); err != nil {
		return nil, apperrors.NewSheetsAPIError("write range", err)
	}

	logger.Info().Int("exported", len(list)).Str("owner_id", ownerID).Msg("Sheet export finished")

	return &ExportResult{Exported: len(list)}, nil
}
