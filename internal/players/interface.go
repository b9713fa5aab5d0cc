package players

import "context"

// Store serves player records and the aggregates derived from them.
type Store interface {
	ListAll(ctx context.Context) ([]PlayerRecord, error)
	Paginate(ctx context.Context, page, pageSize int) (*Page, error)
	Stats(ctx context.Context) (*DashboardStats, error)
	HourlyByDate(ctx context.Context) (*HourlyByDate, error)
}
