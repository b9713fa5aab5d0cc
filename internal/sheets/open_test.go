package sheets

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/mauv0809/dna-dashboard/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenSQLBackend(t *testing.T) {
	cfg := config.SheetsConfig{
		Backend:     config.BackendSQL,
		LocalDBPath: filepath.Join(t.TempDir(), "open.db"),
	}
	client, closeFn, err := Open(context.Background(), cfg)
	require.NoError(t, err)
	defer closeFn()

	assert.IsType(t, &SQLClient{}, client)
	created, err := client.EnsureSheet(context.Background(), "Players", []string{"Name"}, nil)
	require.NoError(t, err)
	assert.True(t, created)
}

func TestOpenUnknownBackend(t *testing.T) {
	_, _, err := Open(context.Background(), config.SheetsConfig{Backend: "excel"})
	assert.Error(t, err)
}
