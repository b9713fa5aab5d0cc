package sheets

import "errors"

// SettingsSheet is the key/value sheet holding game settings. It is never picked as the data sheet.
const SettingsSheet = "Settings"

// ErrSheetNotFound is returned when a sheet with the requested title does not exist.
var ErrSheetNotFound = errors.New("sheet not found")

// Table is a sheet read as a header row followed by data rows.
// Rows may be shorter than the header when trailing cells are empty.
type Table struct {
	Title  string
	Header []string
	Rows   [][]string
}

// Column returns the index of the named header, or -1 when the sheet has no such column.
func (t *Table) Column(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// Cell returns the value of the named column in the given row, or "" when either is missing.
func (t *Table) Cell(row int, name string) string {
	if row < 0 || row >= len(t.Rows) {
		return ""
	}
	return cellAt(t.Rows[row], t.Column(name))
}

func cellAt(row []string, col int) string {
	if col < 0 || col >= len(row) {
		return ""
	}
	return row[col]
}

// AlignRow returns a copy of row padded to the header width.
func (t *Table) AlignRow(row int) []string {
	width := len(t.Header)
	if row >= 0 && row < len(t.Rows) && len(t.Rows[row]) > width {
		width = len(t.Rows[row])
	}
	out := make([]string, width)
	if row >= 0 && row < len(t.Rows) {
		copy(out, t.Rows[row])
	}
	return out
}
