package settings

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/dna-dashboard/internal/metrics"
	"github.com/mauv0809/dna-dashboard/internal/pubsub"
	"github.com/mauv0809/dna-dashboard/internal/sheets"
)

// Changed is the payload of a settings-updated event.
type Changed struct {
	Keys     []string     `msgpack:"keys"`
	Settings GameSettings `msgpack:"settings"`
}

// Service implements Store on top of a spreadsheet client.
type Service struct {
	sheets    sheets.Client
	metrics   metrics.Metrics
	publisher Publisher
	notifier  Notifier
}

// New creates a settings service. publisher and notifier may be nil.
func New(client sheets.Client, m metrics.Metrics, publisher Publisher, notifier Notifier) *Service {
	return &Service{
		sheets:    client,
		metrics:   m,
		publisher: publisher,
		notifier:  notifier,
	}
}

// Defaults returns a fresh copy of the default settings.
func (s *Service) Defaults() GameSettings {
	return Defaults()
}

// Get returns the defaults overlaid with every parsable value from the settings sheet.
// It never fails; backend errors are logged and the defaults are returned.
func (s *Service) Get(ctx context.Context) GameSettings {
	table, err := s.load(ctx)
	if err != nil {
		log.Error("Failed to read game settings, using defaults", "error", err)
		return Defaults()
	}
	return merge(table)
}

// Update validates the patch, upserts each key into the settings sheet and returns the
// settings as read back afterwards.
func (s *Service) Update(ctx context.Context, patch Patch) (GameSettings, error) {
	values, err := normalize(patch)
	if err != nil {
		return GameSettings{}, err
	}
	if len(values) == 0 {
		return s.Get(ctx), nil
	}

	table, err := s.load(ctx)
	if err != nil {
		return GameSettings{}, err
	}

	keyCol := table.Column("key")
	valueCol := table.Column("value")
	if keyCol < 0 || valueCol < 0 {
		s.metrics.IncUpstreamErrors()
		return GameSettings{}, fmt.Errorf("settings sheet is missing the key or value column")
	}

	written := make(map[string]bool, len(values))
	for i := range table.Rows {
		key := table.Cell(i, "key")
		value, ok := values[key]
		if !ok {
			continue
		}
		row := table.AlignRow(i)
		row[valueCol] = value
		if err := s.sheets.UpdateRow(ctx, SheetTitle, i, row); err != nil {
			s.metrics.IncUpstreamErrors()
			return GameSettings{}, fmt.Errorf("failed to update setting %s: %w", key, err)
		}
		s.metrics.IncSheetWrites()
		written[key] = true
	}

	var missing [][]string
	for _, f := range schema {
		value, ok := values[f.key]
		if !ok || written[f.key] {
			continue
		}
		missing = append(missing, alignedRow(table.Header, f.key, value))
	}
	if len(missing) > 0 {
		if err := s.sheets.AppendRows(ctx, SheetTitle, missing); err != nil {
			s.metrics.IncUpstreamErrors()
			return GameSettings{}, fmt.Errorf("failed to append settings: %w", err)
		}
		s.metrics.IncSheetWrites()
	}

	current := s.Get(ctx)
	keys := changedKeys(values)
	log.Info("Game settings updated", "keys", keys)
	s.announce(ctx, keys, current)
	return current, nil
}

func (s *Service) load(ctx context.Context) (*sheets.Table, error) {
	created, err := s.sheets.EnsureSheet(ctx, SheetTitle, Header, defaultRows())
	if err != nil {
		s.metrics.IncUpstreamErrors()
		return nil, fmt.Errorf("failed to ensure settings sheet: %w", err)
	}
	if created {
		log.Info("Created settings sheet with default values", "sheet", SheetTitle)
		s.metrics.IncSheetWrites()
	}

	start := time.Now()
	table, err := s.sheets.ReadTable(ctx, SheetTitle)
	s.metrics.ObserveSheetReadDuration(time.Since(start).Seconds())
	if err != nil {
		s.metrics.IncUpstreamErrors()
		return nil, fmt.Errorf("failed to read settings sheet: %w", err)
	}
	s.metrics.IncSheetReads()
	return table, nil
}

func (s *Service) announce(ctx context.Context, keys []string, current GameSettings) {
	if s.publisher != nil {
		if err := s.publisher.Publish(ctx, pubsub.EventSettingsUpdated, Changed{Keys: keys, Settings: current}); err != nil {
			log.Warn("Failed to publish settings change", "error", err)
		}
	}
	if s.notifier != nil {
		if err := s.notifier.SettingsUpdated(ctx, keys, current); err != nil {
			log.Warn("Failed to notify about settings change", "error", err)
		}
	}
}

// merge overlays the rows of the settings table on the defaults.
func merge(table *sheets.Table) GameSettings {
	out := Defaults()
	for i := range table.Rows {
		key := table.Cell(i, "key")
		value := table.Cell(i, "value")
		if key == "" || value == "" {
			continue
		}
		f, ok := schemaByKey[key]
		if !ok {
			log.Debug("Ignoring unknown setting", "key", key)
			continue
		}
		if err := f.parse(&out, value); err != nil {
			log.Warn("Failed to parse setting, keeping default", "key", key, "value", value, "error", err)
		}
	}
	return out
}

func alignedRow(header []string, key, value string) []string {
	row := make([]string, len(header))
	for i, h := range header {
		switch h {
		case "key":
			row[i] = key
		case "value":
			row[i] = value
		case "description":
			row[i] = description(key)
		}
	}
	return row
}

func changedKeys(values map[string]string) []string {
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// IsValidationError reports whether err was caused by an invalid patch.
func IsValidationError(err error) bool {
	var verr *ValidationError
	return errors.As(err, &verr)
}
