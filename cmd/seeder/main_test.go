package main

import (
	"context"
	"math/rand"
	"path/filepath"
	"testing"
	"time"

	"github.com/mauv0809/dna-dashboard/internal/config"
	"github.com/mauv0809/dna-dashboard/internal/metrics"
	"github.com/mauv0809/dna-dashboard/internal/players"
	"github.com/mauv0809/dna-dashboard/internal/settings"
	"github.com/mauv0809/dna-dashboard/internal/sheets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGeneratePlayers(t *testing.T) {
	now := time.Date(2025, 6, 20, 12, 0, 0, 0, time.UTC)
	records := generatePlayers(rand.New(rand.NewSource(42)), 200, 7, now)
	require.Len(t, records, 200)

	for i, r := range records {
		at, ok := players.ParseTimestamp(r.Timestamp, time.UTC)
		require.True(t, ok, r.Timestamp)
		assert.False(t, at.After(now))
		assert.True(t, at.After(now.Add(-7*24*time.Hour)))
		if i > 0 {
			assert.LessOrEqual(t, records[i-1].Timestamp, r.Timestamp)
		}

		assert.GreaterOrEqual(t, r.Attempts, 1)
		assert.LessOrEqual(t, r.Attempts, 3)
		if r.Result == players.ResultWin {
			last := []string{r.Attempt1, r.Attempt2, r.Attempt3}[r.Attempts-1]
			assert.Equal(t, r.TargetPairs, last)
		} else {
			assert.Equal(t, 3, r.Attempts)
		}
	}
}

func TestGeneratedRowsRoundTripThroughMapper(t *testing.T) {
	records := generatePlayers(rand.New(rand.NewSource(1)), 3, 1, time.Now())
	for _, r := range records {
		row := players.ToRow(r)
		assert.Len(t, row, len(players.Header))
	}
}

func TestJoinPairs(t *testing.T) {
	assert.Equal(t, "2,9,18", joinPairs([]int{2, 9, 18}))
	assert.Equal(t, "", joinPairs(nil))
}

func openTestSheets(t *testing.T) sheets.Client {
	t.Helper()
	client, closeFn, err := sheets.Open(context.Background(), config.SheetsConfig{
		Backend:     config.BackendSQL,
		LocalDBPath: filepath.Join(t.TempDir(), "seed.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { closeFn() })
	return client
}

func TestSeededPlayersReachTheDashboard(t *testing.T) {
	ctx := context.Background()
	client := openTestSheets(t)

	// Settings are usually read before anyone seeds, which creates that sheet first.
	settings.New(client, metrics.NewMock(), nil, nil).Get(ctx)

	target, err := playerSheet(ctx, client)
	require.NoError(t, err)
	assert.Equal(t, playersSheet, target.Title)

	records := generatePlayers(rand.New(rand.NewSource(7)), 150, 3, time.Now())
	require.NoError(t, appendPlayers(ctx, client, target, records))

	svc := players.New(client, metrics.NewMock(), time.UTC)
	got, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, records, got)

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 150, stats.TotalPlayers)
}

func TestSeederFillsBlankFirstSheet(t *testing.T) {
	ctx := context.Background()
	client := openTestSheets(t)
	_, err := client.EnsureSheet(ctx, "Sheet1", nil, nil)
	require.NoError(t, err)

	target, err := playerSheet(ctx, client)
	require.NoError(t, err)
	assert.Equal(t, "Sheet1", target.Title)

	records := generatePlayers(rand.New(rand.NewSource(3)), 5, 1, time.Now())
	require.NoError(t, appendPlayers(ctx, client, target, records))

	table, err := client.ReadTable(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, players.Header, table.Header)
	assert.Equal(t, records, players.FromTable(table))
}

func TestAlignToHeaderFollowsSheetColumns(t *testing.T) {
	r := players.PlayerRecord{Name: "An", Age: 25, Result: players.ResultWin}
	row := alignToHeader([]string{"Result", "Name", "Notes", "Age"}, r)
	assert.Equal(t, []string{"Win", "An", "", "25"}, row)
}
