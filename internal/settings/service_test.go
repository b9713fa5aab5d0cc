package settings_test

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"github.com/mauv0809/dna-dashboard/internal/database"
	"github.com/mauv0809/dna-dashboard/internal/metrics"
	"github.com/mauv0809/dna-dashboard/internal/notifier"
	"github.com/mauv0809/dna-dashboard/internal/pubsub"
	"github.com/mauv0809/dna-dashboard/internal/settings"
	"github.com/mauv0809/dna-dashboard/internal/sheets"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestService(t *testing.T) (*settings.Service, *sheets.SQLClient, *pubsub.MockPubSubClient, *notifier.Mock) {
	t.Helper()

	db, err := database.InitDB(filepath.Join(t.TempDir(), "settings.db"), "", "")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	client := sheets.NewSQLClient(db)
	publisher := pubsub.NewMock()
	notify := notifier.NewMock()
	return settings.New(client, metrics.NewMock(), publisher, notify), client, publisher, notify
}

func patch(t *testing.T, body string) settings.Patch {
	t.Helper()
	var p settings.Patch
	require.NoError(t, json.Unmarshal([]byte(body), &p))
	return p
}

func TestGetSeedsMissingSheetWithDefaults(t *testing.T) {
	svc, client, _, _ := setupTestService(t)
	ctx := context.Background()

	got := svc.Get(ctx)
	assert.Equal(t, settings.Defaults(), got)

	table, err := client.ReadTable(ctx, settings.SheetTitle)
	require.NoError(t, err)
	assert.Equal(t, settings.Header, table.Header)
	require.Len(t, table.Rows, len(settings.Keys()))
	assert.Equal(t, "numPairs", table.Cell(0, "key"))
	assert.Equal(t, "21", table.Cell(0, "value"))
	assert.Equal(t, "Setting for numPairs", table.Cell(0, "description"))
	assert.Equal(t, "[0,1,2,7,8,9,10,11,12,13,18,19,20]", table.Cell(5, "value"))
}

func TestGetEmptySheetReturnsDefaults(t *testing.T) {
	svc, client, _, _ := setupTestService(t)
	ctx := context.Background()

	_, err := client.EnsureSheet(ctx, settings.SheetTitle, settings.Header, nil)
	require.NoError(t, err)

	assert.Equal(t, settings.Defaults(), svc.Get(ctx))
}

func TestGetOverlaysSheetValues(t *testing.T) {
	svc, client, _, _ := setupTestService(t)
	ctx := context.Background()

	_, err := client.EnsureSheet(ctx, settings.SheetTitle, settings.Header, [][]string{
		{"numPairs", "12", ""},
		{"spin", "FALSE", ""},
		{"helixRadius", "not a number", ""},
		{"defaultCameraPosition", `{"x":1,"y":2,"z":3}`, ""},
		{"whitelistedPairs", "[1,2", ""},
		{"introVideo", "https://cdn.example.com/videos/intro/a.mp4", ""},
		{"unknownKey", "7", ""},
		{"gameTime", "", ""},
	})
	require.NoError(t, err)

	got := svc.Get(ctx)
	want := settings.Defaults()
	want.NumPairs = 12
	want.Spin = false
	want.DefaultCameraPosition = settings.CameraPosition{X: 1, Y: 2, Z: 3}
	want.IntroVideo = "https://cdn.example.com/videos/intro/a.mp4"
	assert.Equal(t, want, got)
}

func TestGetFallsBackToDefaultsOnBackendError(t *testing.T) {
	client := sheets.NewMockClient()
	client.ReadTableFunc = func(ctx context.Context, title string) (*sheets.Table, error) {
		return nil, errors.New("quota exceeded")
	}
	m := metrics.NewMock()
	svc := settings.New(client, m, nil, nil)

	assert.Equal(t, settings.Defaults(), svc.Get(context.Background()))
	assert.Equal(t, 1, m.UpstreamErrors())
}

func TestUpdateNumPairsRoundTrip(t *testing.T) {
	svc, _, publisher, notify := setupTestService(t)
	ctx := context.Background()

	before := svc.Get(ctx)
	updated, err := svc.Update(ctx, patch(t, `{"numPairs": 30}`))
	require.NoError(t, err)

	want := before
	want.NumPairs = 30
	assert.Equal(t, want, updated)
	assert.Equal(t, want, svc.Get(ctx))

	calls := publisher.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, pubsub.EventSettingsUpdated, calls[0].Event)
	assert.Equal(t, [][]string{{"numPairs"}}, notify.SettingsUpdatedCalls)
}

func TestUpdateAppendsKeysMissingFromSheet(t *testing.T) {
	svc, client, _, _ := setupTestService(t)
	ctx := context.Background()

	_, err := client.EnsureSheet(ctx, settings.SheetTitle, settings.Header, [][]string{{"numPairs", "21", "Setting for numPairs"}})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, patch(t, `{"winVideo": "https://cdn/x.mp4", "whitelistedPairs": [3, 4], "spin": false}`))
	require.NoError(t, err)
	assert.Equal(t, "https://cdn/x.mp4", updated.WinVideo)
	assert.Equal(t, []int{3, 4}, updated.WhitelistedPairs)
	assert.False(t, updated.Spin)

	table, err := client.ReadTable(ctx, settings.SheetTitle)
	require.NoError(t, err)
	require.Len(t, table.Rows, 4)
	// appended in schema order
	assert.Equal(t, "whitelistedPairs", table.Cell(1, "key"))
	assert.Equal(t, "[3,4]", table.Cell(1, "value"))
	assert.Equal(t, "spin", table.Cell(2, "key"))
	assert.Equal(t, "false", table.Cell(2, "value"))
	assert.Equal(t, "winVideo", table.Cell(3, "key"))
	assert.Equal(t, "Setting for winVideo", table.Cell(3, "description"))
}

func TestUpdateRewritesDuplicateRows(t *testing.T) {
	svc, client, _, _ := setupTestService(t)
	ctx := context.Background()

	_, err := client.EnsureSheet(ctx, settings.SheetTitle, settings.Header, [][]string{
		{"helixRadius", "1", "first"},
		{"helixRadius", "2", "second"},
	})
	require.NoError(t, err)

	_, err = svc.Update(ctx, patch(t, `{"helixRadius": 9.25}`))
	require.NoError(t, err)

	table, err := client.ReadTable(ctx, settings.SheetTitle)
	require.NoError(t, err)
	require.Len(t, table.Rows, 2)
	assert.Equal(t, []string{"helixRadius", "9.25", "first"}, table.Rows[0])
	assert.Equal(t, []string{"helixRadius", "9.25", "second"}, table.Rows[1])
}

func TestUpdateRejectsInvalidPatch(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"unknown key", `{"bogus": 1}`},
		{"string for int", `{"numPairs": "30"}`},
		{"fraction for int", `{"numPairs": 30.5}`},
		{"null value", `{"textureImage": null}`},
		{"object for bool", `{"spin": {"on": true}}`},
		{"wrong array element", `{"whitelistedPairs": ["a"]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := sheets.NewMockClient()
			svc := settings.New(client, metrics.NewMock(), nil, nil)

			_, err := svc.Update(context.Background(), patch(t, tt.body))
			require.Error(t, err)
			assert.True(t, settings.IsValidationError(err))
			assert.Empty(t, client.EnsureSheetCalls)
			assert.Empty(t, client.UpdateRowCalls)
			assert.Empty(t, client.AppendRowsCalls)
		})
	}
}

func TestUpdateAbortsOnFirstWriteFailure(t *testing.T) {
	client := sheets.NewMockClient()
	client.ReadTableFunc = func(ctx context.Context, title string) (*sheets.Table, error) {
		return &sheets.Table{
			Title:  title,
			Header: settings.Header,
			Rows:   [][]string{{"numPairs", "21", ""}, {"gameTime", "30", ""}},
		}, nil
	}
	client.UpdateRowFunc = func(ctx context.Context, title string, row int, values []string) error {
		return errors.New("permission denied")
	}
	publisher := pubsub.NewMock()
	svc := settings.New(client, metrics.NewMock(), publisher, nil)

	_, err := svc.Update(context.Background(), patch(t, `{"numPairs": 10, "gameTime": 45, "textureImage": "t.png"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "permission denied")
	assert.Len(t, client.UpdateRowCalls, 1)
	assert.Empty(t, client.AppendRowsCalls)
	assert.Empty(t, publisher.Calls())
}

func TestUpdateIgnoresPublishAndNotifyFailures(t *testing.T) {
	svc, _, publisher, notify := setupTestService(t)
	publisher.PublishFunc = func(ctx context.Context, event pubsub.EventType, payload any) error {
		return errors.New("topic not found")
	}
	notify.SettingsUpdatedFunc = func(keys []string, current settings.GameSettings) error {
		return errors.New("channel_not_found")
	}

	updated, err := svc.Update(context.Background(), patch(t, `{"gameTime": 60}`))
	require.NoError(t, err)
	assert.Equal(t, 60, updated.GameTime)
}

func TestUpdateWithEmptyPatchChangesNothing(t *testing.T) {
	svc, client, publisher, notify := setupTestService(t)
	ctx := context.Background()

	got, err := svc.Update(ctx, patch(t, `{}`))
	require.NoError(t, err)
	assert.Equal(t, settings.Defaults(), got)
	assert.Empty(t, publisher.Calls())
	assert.Empty(t, notify.SettingsUpdatedCalls)

	table, err := client.ReadTable(ctx, settings.SheetTitle)
	require.NoError(t, err)
	assert.Len(t, table.Rows, len(settings.Keys()))
}

func TestDefaultsReturnsFreshCopy(t *testing.T) {
	svc := settings.New(sheets.NewMockClient(), metrics.NewMock(), nil, nil)
	d := svc.Defaults()
	d.WhitelistedPairs[0] = 99

	assert.Equal(t, 0, svc.Defaults().WhitelistedPairs[0])
}

func TestValueRendersStoredText(t *testing.T) {
	s := settings.Defaults()
	assert.Equal(t, "21", settings.Value(s, "numPairs"))
	assert.Equal(t, "0.001", settings.Value(s, "rotationSpeed"))
	assert.Equal(t, "true", settings.Value(s, "spin"))
	assert.Equal(t, `{"x":0,"y":0,"z":40}`, settings.Value(s, "defaultCameraPosition"))
	assert.Equal(t, "", settings.Value(s, "nope"))
}
