package players

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/dna-dashboard/internal/metrics"
	"github.com/mauv0809/dna-dashboard/internal/sheets"
)

// Service reads player records from the first sheet of the document.
type Service struct {
	sheets   sheets.Client
	metrics  metrics.Metrics
	location *time.Location
}

var _ Store = (*Service)(nil)

// New creates a player service that buckets hours in loc.
func New(client sheets.Client, m metrics.Metrics, loc *time.Location) *Service {
	return &Service{sheets: client, metrics: m, location: location(loc)}
}

func (s *Service) ListAll(ctx context.Context) ([]PlayerRecord, error) {
	start := time.Now()
	table, err := s.sheets.ReadTable(ctx, "")
	s.metrics.ObserveSheetReadDuration(time.Since(start).Seconds())
	if err != nil {
		s.metrics.IncUpstreamErrors()
		log.Error("Error fetching player data", "error", err)
		return nil, fmt.Errorf("failed to read player sheet: %w", err)
	}
	s.metrics.IncSheetReads()

	records := FromTable(table)
	log.FromContext(ctx).Debug("Loaded player records", "sheet", table.Title, "count", len(records))
	return records, nil
}

func (s *Service) Paginate(ctx context.Context, page, pageSize int) (*Page, error) {
	records, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return PaginateRecords(records, page, pageSize), nil
}

func (s *Service) Stats(ctx context.Context) (*DashboardStats, error) {
	records, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return ComputeStats(records, s.location), nil
}

func (s *Service) HourlyByDate(ctx context.Context) (*HourlyByDate, error) {
	records, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return GroupHourlyByDate(records, s.location), nil
}
