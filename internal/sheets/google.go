package sheets

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"golang.org/x/oauth2/google"
	"golang.org/x/oauth2/jwt"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

const valueInputRaw = "RAW"

// GoogleClient reads and writes spreadsheet tables through the Google Sheets API v4.
type GoogleClient struct {
	svc           *sheetsapi.Service
	spreadsheetID string
}

var _ Client = (*GoogleClient)(nil)

// NewGoogleClient authenticates with a service-account key and returns a client bound to one spreadsheet.
func NewGoogleClient(ctx context.Context, email, privateKey, spreadsheetID string) (*GoogleClient, error) {
	conf := &jwt.Config{
		Email:      email,
		PrivateKey: []byte(privateKey),
		Scopes:     []string{sheetsapi.SpreadsheetsScope},
		TokenURL:   google.JWTTokenURL,
	}
	// The token source outlives the startup context.
	return NewGoogleClientWithOptions(ctx, spreadsheetID, option.WithTokenSource(conf.TokenSource(context.Background())))
}

// NewGoogleClientWithOptions creates a client with custom API options. Used for testing.
func NewGoogleClientWithOptions(ctx context.Context, spreadsheetID string, opts ...option.ClientOption) (*GoogleClient, error) {
	svc, err := sheetsapi.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}
	return &GoogleClient{svc: svc, spreadsheetID: spreadsheetID}, nil
}

func (c *GoogleClient) ReadTable(ctx context.Context, title string) (*Table, error) {
	if title == "" {
		titles, err := c.sheetTitles(ctx)
		if err != nil {
			return nil, err
		}
		title = firstDataSheet(titles)
		if title == "" {
			return nil, fmt.Errorf("spreadsheet %s has no data sheet: %w", c.spreadsheetID, ErrSheetNotFound)
		}
	}

	log.FromContext(ctx).Debug("Reading sheet", "spreadsheet", c.spreadsheetID, "sheet", title)
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, quoteTitle(title)).
		ValueRenderOption("FORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", title, err)
	}
	return tableFromValues(title, resp.Values), nil
}

func (c *GoogleClient) EnsureSheet(ctx context.Context, title string, header []string, seed [][]string) (bool, error) {
	titles, err := c.sheetTitles(ctx)
	if err != nil {
		return false, err
	}
	for _, t := range titles {
		if t == title {
			return false, nil
		}
	}

	log.Info("Creating sheet", "spreadsheet", c.spreadsheetID, "sheet", title, "seed_rows", len(seed))
	_, err = c.svc.Spreadsheets.BatchUpdate(c.spreadsheetID, &sheetsapi.BatchUpdateSpreadsheetRequest{
		Requests: []*sheetsapi.Request{{
			AddSheet: &sheetsapi.AddSheetRequest{
				Properties: &sheetsapi.SheetProperties{Title: title},
			},
		}},
	}).Context(ctx).Do()
	if err != nil {
		return false, fmt.Errorf("failed to add sheet %q: %w", title, err)
	}

	values := append([][]string{header}, seed...)
	_, err = c.svc.Spreadsheets.Values.Update(c.spreadsheetID, quoteTitle(title)+"!A1", &sheetsapi.ValueRange{
		Values: toCells(values),
	}).ValueInputOption(valueInputRaw).Context(ctx).Do()
	if err != nil {
		return true, fmt.Errorf("failed to write header of sheet %q: %w", title, err)
	}
	return true, nil
}

func (c *GoogleClient) UpdateRow(ctx context.Context, title string, row int, values []string) error {
	// Data row 0 lives on sheet row 2, below the header.
	rng := fmt.Sprintf("%s!A%d", quoteTitle(title), row+2)
	_, err := c.svc.Spreadsheets.Values.Update(c.spreadsheetID, rng, &sheetsapi.ValueRange{
		Values: toCells([][]string{values}),
	}).ValueInputOption(valueInputRaw).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to update row %d of sheet %q: %w", row, title, err)
	}
	return nil
}

func (c *GoogleClient) AppendRows(ctx context.Context, title string, rows [][]string) error {
	if len(rows) == 0 {
		return nil
	}
	_, err := c.svc.Spreadsheets.Values.Append(c.spreadsheetID, quoteTitle(title)+"!A1", &sheetsapi.ValueRange{
		Values: toCells(rows),
	}).ValueInputOption(valueInputRaw).InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to append %d rows to sheet %q: %w", len(rows), title, err)
	}
	return nil
}

func (c *GoogleClient) sheetTitles(ctx context.Context) ([]string, error) {
	doc, err := c.svc.Spreadsheets.Get(c.spreadsheetID).
		Fields("sheets.properties(title,index)").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("failed to load spreadsheet %s: %w", c.spreadsheetID, err)
	}
	titles := make([]string, 0, len(doc.Sheets))
	for _, sh := range doc.Sheets {
		if sh.Properties != nil {
			titles = append(titles, sh.Properties.Title)
		}
	}
	return titles, nil
}

func firstDataSheet(titles []string) string {
	for _, t := range titles {
		if t != SettingsSheet {
			return t
		}
	}
	return ""
}

func quoteTitle(title string) string {
	return "'" + strings.ReplaceAll(title, "'", "''") + "'"
}

func tableFromValues(title string, values [][]interface{}) *Table {
	t := &Table{Title: title}
	if len(values) == 0 {
		return t
	}
	t.Header = make([]string, len(values[0]))
	for i, v := range values[0] {
		t.Header[i] = strings.TrimSpace(fmt.Sprint(v))
	}
	t.Rows = make([][]string, 0, len(values)-1)
	for _, raw := range values[1:] {
		row := make([]string, len(raw))
		for i, v := range raw {
			row[i] = fmt.Sprint(v)
		}
		t.Rows = append(t.Rows, row)
	}
	return t
}

func toCells(rows [][]string) [][]interface{} {
	out := make([][]interface{}, len(rows))
	for i, row := range rows {
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}
		out[i] = cells
	}
	return out
}
