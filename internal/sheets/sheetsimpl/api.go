package sheetsimpl

import (
	"context"
	"fmt"

	"github.com/orwa-kh/syria-post-watch/pkg/config"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// api is the narrow slice of the Sheets service the persistence layer needs.
// Tests substitute a fake; production uses googleAPI.
type api interface {
	SheetTitles(ctx context.Context) ([]string, error)
	AddSheet(ctx context.Context, title string, rows, cols int64) error
	ColumnValues(ctx context.Context, title, column string) ([]string, error)
	AppendRow(ctx context.Context, title string, values []interface{}) error
	UpdateRow(ctx context.Context, title string, rowIndex int64, startColumn string, values []interface{}) error
}

type googleAPI struct {
	svc           *sheets.Service
	spreadsheetID string
}

func newGoogleAPI(ctx context.Context, cfg *config.Config) (*googleAPI, error) {
	if cfg.Sheets.CredentialsJSON == "" {
		return nil, fmt.Errorf("GOOGLE_SERVICE_CREDS is not set")
	}
	if cfg.Sheets.SpreadsheetID == "" {
		return nil, fmt.Errorf("GOOGLE_SHEET_ID is not set")
	}

	svc, err := sheets.NewService(ctx,
		option.WithCredentialsJSON([]byte(cfg.Sheets.CredentialsJSON)),
		option.WithScopes(sheets.SpreadsheetsScope),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &googleAPI{svc: svc, spreadsheetID: cfg.Sheets.SpreadsheetID}, nil
}

var _ api = (*googleAPI)(nil)

func (g *googleAPI) SheetTitles(ctx context.Context) ([]string, error) {
	spreadsheet, err := g.svc.Spreadsheets.Get(g.spreadsheetID).Context(ctx).Do()
	if err != nil {
		return nil, err
	}

	titles := make([]string, 0, len(spreadsheet.Sheets))
	for _, s := range spreadsheet.Sheets {
		if s.Properties != nil {
			titles = append(titles, s.Properties.Title)
		}
	}
	return titles, nil
}

func (g *googleAPI) AddSheet(ctx context.Context, title string, rows, cols int64) error {
	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{
			{
				AddSheet: &sheets.AddSheetRequest{
					Properties: &sheets.SheetProperties{
						Title: title,
						GridProperties: &sheets.GridProperties{
							RowCount:    rows,
							ColumnCount: cols,
						},
					},
				},
			},
		},
	}

	_, err := g.svc.Spreadsheets.BatchUpdate(g.spreadsheetID, req).Context(ctx).Do()
	return err
}

func (g *googleAPI) ColumnValues(ctx context.Context, title, column string) ([]string, error) {
	readRange := fmt.Sprintf("%s!%s:%s", title, column, column)
	resp, err := g.svc.Spreadsheets.Values.Get(g.spreadsheetID, readRange).Context(ctx).Do()
	if err != nil {
		return nil, err
	}

	values := make([]string, 0, len(resp.Values))
	for _, row := range resp.Values {
		if len(row) == 0 {
			values = append(values, "")
			continue
		}
		values = append(values, fmt.Sprint(row[0]))
	}
	return values, nil
}

func (g *googleAPI) AppendRow(ctx context.Context, title string, values []interface{}) error {
	vr := &sheets.ValueRange{Values: [][]interface{}{values}}
	_, err := g.svc.Spreadsheets.Values.
		Append(g.spreadsheetID, title, vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	return err
}

func (g *googleAPI) UpdateRow(ctx context.Context, title string, rowIndex int64, startColumn string, values []interface{}) error {
	vr := &sheets.ValueRange{Values: [][]interface{}{values}}
	writeRange := fmt.Sprintf("%s!%s%d", title, startColumn, rowIndex)
	_, err := g.svc.Spreadsheets.Values.
		Update(g.spreadsheetID, writeRange, vr).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	return err
}
