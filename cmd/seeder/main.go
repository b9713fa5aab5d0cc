package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/mauv0809/dna-dashboard/internal/config"
	"github.com/mauv0809/dna-dashboard/internal/players"
	"github.com/mauv0809/dna-dashboard/internal/settings"
	"github.com/mauv0809/dna-dashboard/internal/sheets"
	"github.com/spf13/cobra"
)

const (
	playersSheet = "Players"
	batchSize    = 100
)

var (
	count int
	days  int
	seed  int64
)

var rootCmd = &cobra.Command{
	Use:   "seeder",
	Short: "Fill the player sheet with synthetic game sessions",
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context())
	},
}

func init() {
	rootCmd.Flags().IntVar(&count, "count", 500, "Number of player rows to append")
	rootCmd.Flags().IntVar(&days, "days", 14, "Spread timestamps over this many days before now")
	rootCmd.Flags().Int64Var(&seed, "seed", 0, "Random seed, 0 picks one from the clock")
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		log.Error("Seeder failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	log.Info("Starting sheet seeder...")
	if count <= 0 || days <= 0 {
		return fmt.Errorf("--count and --days must be positive")
	}

	client, teardown, err := sheets.Open(ctx, config.LoadSheets())
	if err != nil {
		return fmt.Errorf("failed to open sheets backend: %w", err)
	}
	defer teardown()

	target, err := playerSheet(ctx, client)
	if err != nil {
		return err
	}

	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	records := generatePlayers(rng, count, days, time.Now())

	log.Info("Preparing to append players...", "sheet", target.Title, "total", len(records), "batch_size", batchSize, "seed", seed)
	startTime := time.Now()
	if err := appendPlayers(ctx, client, target, records); err != nil {
		return err
	}

	log.Info("Successfully seeded players.", "duration", time.Since(startTime))
	return nil
}

// playerSheet resolves the sheet the dashboard reads players from. Without one a Players sheet
// is created, and a blank first sheet gets the player header as its first row.
func playerSheet(ctx context.Context, client sheets.Client) (*sheets.Table, error) {
	table, err := client.ReadTable(ctx, "")
	switch {
	case errors.Is(err, sheets.ErrSheetNotFound):
		if _, err := client.EnsureSheet(ctx, playersSheet, players.Header, nil); err != nil {
			return nil, fmt.Errorf("failed to create %s sheet: %w", playersSheet, err)
		}
		log.Info("Created sheet", "title", playersSheet)
		return &sheets.Table{Title: playersSheet, Header: players.Header}, nil
	case err != nil:
		return nil, fmt.Errorf("failed to read player sheet: %w", err)
	}

	if len(table.Header) == 0 {
		if err := client.AppendRows(ctx, table.Title, [][]string{players.Header}); err != nil {
			return nil, fmt.Errorf("failed to write header of sheet %q: %w", table.Title, err)
		}
		table.Header = players.Header
	}
	return table, nil
}

// appendPlayers writes records in batches, placing each value under its column in the sheet header.
func appendPlayers(ctx context.Context, client sheets.Client, target *sheets.Table, records []players.PlayerRecord) error {
	for start := 0; start < len(records); start += batchSize {
		end := min(start+batchSize, len(records))
		rows := make([][]string, 0, end-start)
		for _, r := range records[start:end] {
			rows = append(rows, alignToHeader(target.Header, r))
		}
		if err := client.AppendRows(ctx, target.Title, rows); err != nil {
			return fmt.Errorf("failed to append batch at row %d: %w", start, err)
		}
		log.Info("Appended batch", "completed", end, "total", len(records))
	}
	return nil
}

func alignToHeader(header []string, r players.PlayerRecord) []string {
	values := players.ToRow(r)
	byColumn := make(map[string]string, len(values))
	for i, col := range players.Header {
		byColumn[col] = values[i]
	}
	row := make([]string, len(header))
	for i, col := range header {
		row[i] = byColumn[col]
	}
	return row
}

// generatePlayers builds n sessions with timestamps spread over the last days days, oldest first.
func generatePlayers(rng *rand.Rand, n, days int, now time.Time) []players.PlayerRecord {
	pairs := settings.Defaults().WhitelistedPairs
	window := time.Duration(days) * 24 * time.Hour

	records := make([]players.PlayerRecord, 0, n)
	for range n {
		at := now.Add(-time.Duration(rng.Int63n(int64(window)))).UTC()
		target := pickPairs(rng, pairs, 3)

		r := players.PlayerRecord{
			Name:        "Player " + uuid.NewString()[:8],
			Phone:       fmt.Sprintf("09%08d", rng.Intn(100000000)),
			Age:         12 + rng.Intn(50),
			TargetPairs: joinPairs(target),
			Result:      "Lose",
			Timestamp:   at.Format("2006-01-02T15:04:05.000Z"),
		}
		attempts := []*string{&r.Attempt1, &r.Attempt2, &r.Attempt3}
		for i, slot := range attempts {
			r.Attempts = i + 1
			guess := target
			if rng.Intn(3) != 0 {
				guess = pickPairs(rng, pairs, 3)
			}
			*slot = joinPairs(guess)
			if *slot == r.TargetPairs {
				r.Result = players.ResultWin
				break
			}
		}
		records = append(records, r)
	}

	sort.Slice(records, func(i, j int) bool { return records[i].Timestamp < records[j].Timestamp })
	return records
}

func pickPairs(rng *rand.Rand, pool []int, k int) []int {
	picked := make([]int, 0, k)
	for _, i := range rng.Perm(len(pool))[:k] {
		picked = append(picked, pool[i])
	}
	sort.Ints(picked)
	return picked
}

func joinPairs(pairs []int) string {
	parts := make([]string, len(pairs))
	for i, p := range pairs {
		parts[i] = strconv.Itoa(p)
	}
	return strings.Join(parts, ",")
}
