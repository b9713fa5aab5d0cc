package sheets

import (
	"context"
	"sync"
)

// MockClient is a mock implementation of the Client interface for testing.
// It is safe for concurrent use.
type MockClient struct {
	mu sync.Mutex

	// Spies for method calls
	ReadTableFunc   func(ctx context.Context, title string) (*Table, error)
	EnsureSheetFunc func(ctx context.Context, title string, header []string, seed [][]string) (bool, error)
	UpdateRowFunc   func(ctx context.Context, title string, row int, values []string) error
	AppendRowsFunc  func(ctx context.Context, title string, rows [][]string) error

	// Call records
	ReadTableCalls   []string
	EnsureSheetCalls []string
	UpdateRowCalls   []UpdateRowCall
	AppendRowsCalls  []AppendRowsCall
}

// UpdateRowCall holds the arguments for a call to UpdateRow.
type UpdateRowCall struct {
	Title  string
	Row    int
	Values []string
}

// AppendRowsCall holds the arguments for a call to AppendRows.
type AppendRowsCall struct {
	Title string
	Rows  [][]string
}

// NewMockClient creates a new mock instance.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// Reset clears all call records.
func (m *MockClient) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ReadTableCalls = nil
	m.EnsureSheetCalls = nil
	m.UpdateRowCalls = nil
	m.AppendRowsCalls = nil
}

func (m *MockClient) ReadTable(ctx context.Context, title string) (*Table, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ReadTableCalls = append(m.ReadTableCalls, title)
	if m.ReadTableFunc != nil {
		return m.ReadTableFunc(ctx, title)
	}
	return &Table{Title: title}, nil
}

func (m *MockClient) EnsureSheet(ctx context.Context, title string, header []string, seed [][]string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.EnsureSheetCalls = append(m.EnsureSheetCalls, title)
	if m.EnsureSheetFunc != nil {
		return m.EnsureSheetFunc(ctx, title, header, seed)
	}
	return false, nil
}

func (m *MockClient) UpdateRow(ctx context.Context, title string, row int, values []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UpdateRowCalls = append(m.UpdateRowCalls, UpdateRowCall{Title: title, Row: row, Values: values})
	if m.UpdateRowFunc != nil {
		return m.UpdateRowFunc(ctx, title, row, values)
	}
	return nil
}

func (m *MockClient) AppendRows(ctx context.Context, title string, rows [][]string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.AppendRowsCalls = append(m.AppendRowsCalls, AppendRowsCall{Title: title, Rows: rows})
	if m.AppendRowsFunc != nil {
		return m.AppendRowsFunc(ctx, title, rows)
	}
	return nil
}

// ReadCount returns the number of ReadTable calls made so far.
func (m *MockClient) ReadCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.ReadTableCalls)
}
