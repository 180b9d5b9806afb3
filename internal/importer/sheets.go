package importer

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

// RangeReader reads a rectangular range of cell values.
type RangeReader interface {
	ReadRange(ctx context.Context, sheetRange string) ([][]any, error)
}

// GoogleSheets reads import ranges from one spreadsheet.
type GoogleSheets struct {
	service       *sheetsapi.Service
	spreadsheetID string
	logger        *zap.Logger
}

// valueRender asks for numbers as numbers instead of their displayed text.
const valueRender = "UNFORMATTED_VALUE"

// NewGoogleSheets builds a reader authenticated with a service account
// credentials file.
func NewGoogleSheets(ctx context.Context, credentialsPath, spreadsheetID string, logger *zap.Logger) (*GoogleSheets, error) {
	return newGoogleSheets(ctx, spreadsheetID, logger,
		option.WithCredentialsFile(credentialsPath),
		option.WithScopes(sheetsapi.SpreadsheetsReadonlyScope),
	)
}

func newGoogleSheets(ctx context.Context, spreadsheetID string, logger *zap.Logger, opts ...option.ClientOption) (*GoogleSheets, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	service, err := sheetsapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("initialize sheets client: %w", err)
	}

	return &GoogleSheets{
		service:       service,
		spreadsheetID: spreadsheetID,
		logger:        logger,
	}, nil
}

// ReadRange fetches a range such as "CLAAS!A:K".
func (g *GoogleSheets) ReadRange(ctx context.Context, sheetRange string) ([][]any, error) {
	if sheetRange == "" {
		return nil, fmt.Errorf("sheetRange must not be empty")
	}

	resp, err := g.service.Spreadsheets.Values.Get(g.spreadsheetID, sheetRange).
		ValueRenderOption(valueRender).
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("read range %s: %w", sheetRange, err)
	}

	g.logger.Debug("sheet range read", zap.String("range", sheetRange), zap.Int("rows", len(resp.Values)))
	return resp.Values, nil
}
