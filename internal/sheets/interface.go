package sheets

import "context"

// Client defines the table operations the dashboard needs from a spreadsheet backend.
// Row indexes are zero-based and exclude the header row.
type Client interface {
	// ReadTable returns the header and data rows of the sheet with the given title.
	// An empty title selects the first sheet of the document other than SettingsSheet.
	ReadTable(ctx context.Context, title string) (*Table, error)
	// EnsureSheet creates the sheet with the header and seed rows if it does not exist yet.
	// It reports whether the sheet was created.
	EnsureSheet(ctx context.Context, title string, header []string, seed [][]string) (bool, error)
	UpdateRow(ctx context.Context, title string, row int, values []string) error
	AppendRows(ctx context.Context, title string, rows [][]string) error
}
