package players

import (
	"math"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func records(n int) []PlayerRecord {
	out := make([]PlayerRecord, n)
	for i := range out {
		out[i] = PlayerRecord{Name: string(rune('a' + i%26))}
	}
	return out
}

func TestPaginateRecords(t *testing.T) {
	tests := []struct {
		total, page, pageSize int
		wantLen, wantPages    int
	}{
		{total: 0, page: 1, pageSize: 10, wantLen: 0, wantPages: 0},
		{total: 25, page: 1, pageSize: 10, wantLen: 10, wantPages: 3},
		{total: 25, page: 3, pageSize: 10, wantLen: 5, wantPages: 3},
		{total: 25, page: 4, pageSize: 10, wantLen: 0, wantPages: 3},
		{total: 10, page: 1, pageSize: 10, wantLen: 10, wantPages: 1},
		{total: 7, page: 7, pageSize: 1, wantLen: 1, wantPages: 7},
		{total: 3, page: 1, pageSize: 50, wantLen: 3, wantPages: 1},
		{total: 3, page: 1, pageSize: math.MaxInt, wantLen: 3, wantPages: 1},
		{total: 3, page: 1<<62 + 1, pageSize: 4, wantLen: 0, wantPages: 1},
		{total: 3, page: math.MaxInt, pageSize: math.MaxInt, wantLen: 0, wantPages: 1},
		{total: 0, page: math.MaxInt, pageSize: 1, wantLen: 0, wantPages: 0},
	}

	for _, tt := range tests {
		all := records(tt.total)
		got := PaginateRecords(all, tt.page, tt.pageSize)
		assert.Len(t, got.Data, tt.wantLen, "total=%d page=%d size=%d", tt.total, tt.page, tt.pageSize)
		assert.Equal(t, tt.wantPages, got.TotalPages)
		assert.Equal(t, tt.total, got.TotalItems)
		if tt.wantLen > 0 {
			assert.Equal(t, all[(tt.page-1)*tt.pageSize], got.Data[0])
		}
	}
}

func TestPaginateRecordsMatchesFormula(t *testing.T) {
	for total := 0; total <= 30; total++ {
		all := records(total)
		for pageSize := 1; pageSize <= 12; pageSize++ {
			for page := 1; page <= 8; page++ {
				want := max(0, min(pageSize, total-(page-1)*pageSize))
				got := PaginateRecords(all, page, pageSize)
				require.Len(t, got.Data, want)
				require.Equal(t, (total+pageSize-1)/pageSize, got.TotalPages)
			}
		}
	}
}

func TestComputeStatsEmpty(t *testing.T) {
	stats := ComputeStats(nil, time.UTC)

	assert.Equal(t, 0, stats.TotalPlayers)
	assert.Zero(t, stats.WinRate)
	assert.Zero(t, stats.AverageAttempts)
	assert.Empty(t, stats.PlayersByDate)
	require.Len(t, stats.PlayersByHour, 24)
	for i, h := range stats.PlayersByHour {
		assert.Equal(t, 0, h.Count)
		assert.Equal(t, i, leadingInt(h.Hour))
		assert.Len(t, h.Hour, 2)
	}
	assert.Equal(t, "00", stats.PlayersByHour[0].Hour)
	assert.Equal(t, "23", stats.PlayersByHour[23].Hour)
}

func TestComputeStatsWinRateIsOrderInvariant(t *testing.T) {
	all := []PlayerRecord{
		{Result: "Win", Attempts: 1},
		{Result: "Lose", Attempts: 3},
		{Result: "Win", Attempts: 2},
		{Result: "win", Attempts: 3},
		{Result: "", Attempts: 0},
	}
	want := ComputeStats(all, time.UTC)
	assert.InDelta(t, 40.0, want.WinRate, 1e-9)
	assert.InDelta(t, 1.8, want.AverageAttempts, 1e-9)

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 20; i++ {
		shuffled := append([]PlayerRecord(nil), all...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		got := ComputeStats(shuffled, time.UTC)
		assert.Equal(t, want.WinRate, got.WinRate)
	}
}

func TestComputeStatsSkipsBadTimestampsFromGroupingsOnly(t *testing.T) {
	all := []PlayerRecord{
		{Result: "Win", Timestamp: "2025-03-14T09:15:00Z"},
		{Result: "Lose", Timestamp: "2025-03-14T09:45:00Z"},
		{Result: "Win", Timestamp: "2025-03-13T23:10:00Z"},
		{Result: "Win", Timestamp: "not a date"},
		{Result: "Lose", Timestamp: ""},
	}

	stats := ComputeStats(all, time.UTC)
	assert.Equal(t, 5, stats.TotalPlayers)
	assert.InDelta(t, 60.0, stats.WinRate, 1e-9)
	assert.Equal(t, []DateCount{{Date: "2025-03-13", Count: 1}, {Date: "2025-03-14", Count: 2}}, stats.PlayersByDate)

	var grouped int
	for _, h := range stats.PlayersByHour {
		grouped += h.Count
	}
	assert.Equal(t, 3, grouped)
	assert.Equal(t, 2, stats.PlayersByHour[9].Count)
	assert.Equal(t, 1, stats.PlayersByHour[23].Count)
}

func TestComputeStatsHoursUseDisplayLocation(t *testing.T) {
	loc := time.FixedZone("ICT", 7*60*60)
	all := []PlayerRecord{{Timestamp: "2025-03-13T20:30:00Z"}}

	stats := ComputeStats(all, loc)
	// the date stays on the UTC calendar, the hour moves to local time
	assert.Equal(t, []DateCount{{Date: "2025-03-13", Count: 1}}, stats.PlayersByDate)
	assert.Equal(t, 1, stats.PlayersByHour[3].Count)
}

func TestGroupHourlyByDate(t *testing.T) {
	all := []PlayerRecord{
		{Timestamp: "2025-03-15T10:00:00Z"},
		{Timestamp: "2025-03-14T10:30:00Z"},
		{Timestamp: "2025-03-14T10:59:59Z"},
		{Timestamp: "2025-03-14T18:00:00Z"},
		{Timestamp: "garbage"},
	}

	got := GroupHourlyByDate(all, time.UTC)
	assert.Equal(t, []string{"2025-03-14", "2025-03-15"}, got.Dates)
	require.Len(t, got.HourlyData, 2)

	day := got.HourlyData[0]
	assert.Equal(t, "2025-03-14", day.Date)
	require.Len(t, day.Hours, 24)
	assert.Equal(t, HourCount{Hour: "10", Count: 2}, day.Hours[10])
	assert.Equal(t, HourCount{Hour: "18", Count: 1}, day.Hours[18])
	assert.Equal(t, HourCount{Hour: "00", Count: 0}, day.Hours[0])

	assert.Equal(t, 1, got.HourlyData[1].Hours[10].Count)
}

func TestGroupHourlyByDateEmpty(t *testing.T) {
	got := GroupHourlyByDate(nil, time.UTC)
	assert.Empty(t, got.Dates)
	assert.NotNil(t, got.HourlyData)
}
