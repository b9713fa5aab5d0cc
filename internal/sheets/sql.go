package sheets

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
)

// SQLClient emulates a spreadsheet document on top of a SQL database.
// It backs local development, the seeder and store tests.
type SQLClient struct {
	db *sql.DB
}

var _ Client = (*SQLClient)(nil)

// NewSQLClient creates a sheet emulator on a database prepared by database.InitDB.
func NewSQLClient(db *sql.DB) *SQLClient {
	return &SQLClient{db: db}
}

func (c *SQLClient) ReadTable(ctx context.Context, title string) (*Table, error) {
	var (
		headerJSON string
		row        *sql.Row
	)
	if title == "" {
		row = c.db.QueryRowContext(ctx, `SELECT title, header_json FROM sheets WHERE title <> ? ORDER BY position LIMIT 1`, SettingsSheet)
	} else {
		row = c.db.QueryRowContext(ctx, `SELECT title, header_json FROM sheets WHERE title = ?`, title)
	}
	if err := row.Scan(&title, &headerJSON); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("sheet %q: %w", title, ErrSheetNotFound)
		}
		return nil, fmt.Errorf("failed to load sheet %q: %w", title, err)
	}

	t := &Table{Title: title}
	if err := json.Unmarshal([]byte(headerJSON), &t.Header); err != nil {
		return nil, fmt.Errorf("corrupt header for sheet %q: %w", title, err)
	}

	rows, err := c.db.QueryContext(ctx, `SELECT cells_json FROM sheet_rows WHERE sheet_title = ? ORDER BY row_index`, title)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows of sheet %q: %w", title, err)
	}
	defer rows.Close()

	t.Rows = make([][]string, 0)
	for rows.Next() {
		var cellsJSON string
		if err := rows.Scan(&cellsJSON); err != nil {
			return nil, err
		}
		var cells []string
		if err := json.Unmarshal([]byte(cellsJSON), &cells); err != nil {
			return nil, fmt.Errorf("corrupt row in sheet %q: %w", title, err)
		}
		t.Rows = append(t.Rows, cells)
	}
	return t, rows.Err()
}

func (c *SQLClient) EnsureSheet(ctx context.Context, title string, header []string, seed [][]string) (bool, error) {
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM sheets WHERE title = ?`, title).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to look up sheet %q: %w", title, err)
	}
	if exists > 0 {
		return false, nil
	}

	headerJSON, err := json.Marshal(header)
	if err != nil {
		return false, err
	}
	_, err = tx.ExecContext(ctx, `
		INSERT INTO sheets (title, position, header_json)
		VALUES (?, (SELECT COALESCE(MAX(position) + 1, 0) FROM sheets), ?)`,
		title, string(headerJSON))
	if err != nil {
		return false, fmt.Errorf("failed to create sheet %q: %w", title, err)
	}
	if err := insertRows(ctx, tx, title, 0, seed); err != nil {
		return false, err
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit sheet %q: %w", title, err)
	}
	log.Info("Created sheet", "sheet", title, "seed_rows", len(seed))
	return true, nil
}

func (c *SQLClient) UpdateRow(ctx context.Context, title string, row int, values []string) error {
	cellsJSON, err := json.Marshal(values)
	if err != nil {
		return err
	}
	res, err := c.db.ExecContext(ctx,
		`UPDATE sheet_rows SET cells_json = ? WHERE sheet_title = ? AND row_index = ?`,
		string(cellsJSON), title, row)
	if err != nil {
		return fmt.Errorf("failed to update row %d of sheet %q: %w", row, title, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("row %d of sheet %q does not exist", row, title)
	}
	return nil
}

func (c *SQLClient) AppendRows(ctx context.Context, title string, rows [][]string) error {
	if len(rows) == 0 {
		return nil
	}
	tx, err := c.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var headerJSON string
	err = tx.QueryRowContext(ctx, `SELECT header_json FROM sheets WHERE title = ?`, title).Scan(&headerJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("sheet %q: %w", title, ErrSheetNotFound)
	}
	if err != nil {
		return err
	}

	// Like a blank spreadsheet tab, a sheet without a header takes the first appended row as its header.
	var header []string
	if err := json.Unmarshal([]byte(headerJSON), &header); err != nil {
		return fmt.Errorf("corrupt header for sheet %q: %w", title, err)
	}
	if len(header) == 0 {
		newHeader, err := json.Marshal(rows[0])
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `UPDATE sheets SET header_json = ? WHERE title = ?`, string(newHeader), title); err != nil {
			return fmt.Errorf("failed to write header of sheet %q: %w", title, err)
		}
		rows = rows[1:]
	}

	var next int
	err = tx.QueryRowContext(ctx,
		`SELECT COALESCE(MAX(row_index) + 1, 0) FROM sheet_rows WHERE sheet_title = ?`, title).Scan(&next)
	if err != nil {
		return fmt.Errorf("failed to find end of sheet %q: %w", title, err)
	}
	if err := insertRows(ctx, tx, title, next, rows); err != nil {
		return err
	}
	return tx.Commit()
}

func insertRows(ctx context.Context, tx *sql.Tx, title string, start int, rows [][]string) error {
	if len(rows) == 0 {
		return nil
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO sheet_rows (sheet_title, row_index, cells_json) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare row insert: %w", err)
	}
	defer stmt.Close()

	for i, row := range rows {
		cellsJSON, err := json.Marshal(row)
		if err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx, title, start+i, string(cellsJSON)); err != nil {
			return fmt.Errorf("failed to insert row %d into sheet %q: %w", start+i, title, err)
		}
	}
	return nil
}
