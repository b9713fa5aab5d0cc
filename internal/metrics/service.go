package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var _ Metrics = (*Service)(nil)

// NewMetricsHandler returns an http.Handler for the given Gatherer.
// If no gatherer is provided, it uses the default one.
func NewMetricsHandler(gatherer ...prometheus.Gatherer) http.Handler {
	gath := prometheus.DefaultGatherer
	if len(gatherer) > 0 {
		gath = gatherer[0]
	}
	return promhttp.HandlerFor(gath, promhttp.HandlerOpts{})
}

// NewService creates and registers the Prometheus metrics.
// If no registerer is provided, it uses the default Prometheus registerer.
func NewService(registerer ...prometheus.Registerer) *Service {
	reg := prometheus.DefaultRegisterer
	if len(registerer) > 0 {
		reg = registerer[0]
	}

	s := &Service{
		SheetReads: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dna_dashboard_sheet_reads_total",
			Help: "The total number of full-table reads against the spreadsheet backend.",
		}),
		SheetWrites: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dna_dashboard_sheet_writes_total",
			Help: "The total number of row updates and appends sent to the spreadsheet backend.",
		}),
		SheetReadDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "dna_dashboard_sheet_read_duration_seconds",
			Help:    "The duration of full-table spreadsheet reads.",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
		MediaUploads: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dna_dashboard_media_uploads_total",
			Help: "The total number of media files uploaded to object storage.",
		}),
		MediaDeletes: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dna_dashboard_media_deletes_total",
			Help: "The total number of media files deleted from object storage.",
		}),
		UpstreamErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dna_dashboard_upstream_errors_total",
			Help: "The total number of failed spreadsheet or storage calls surfaced to clients.",
		}),
		NotificationsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dna_dashboard_notifications_sent_total",
			Help: "The total number of operator notifications successfully sent.",
		}),
		NotificationsFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dna_dashboard_notifications_failed_total",
			Help: "The total number of operator notifications that failed to send.",
		}),
		StartupTimeSeconds: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "dna_dashboard_startup_duration_seconds",
			Help: "The duration of the application startup in seconds.",
		}),
	}

	reg.MustRegister(
		s.SheetReads,
		s.SheetWrites,
		s.SheetReadDuration,
		s.MediaUploads,
		s.MediaDeletes,
		s.UpstreamErrors,
		s.NotificationsSent,
		s.NotificationsFailed,
		s.StartupTimeSeconds,
	)

	return s
}

func (s *Service) IncSheetReads() {
	s.SheetReads.Inc()
}

func (s *Service) IncSheetWrites() {
	s.SheetWrites.Inc()
}

func (s *Service) ObserveSheetReadDuration(seconds float64) {
	s.SheetReadDuration.Observe(seconds)
}

func (s *Service) IncMediaUploads() {
	s.MediaUploads.Inc()
}

func (s *Service) IncMediaDeletes() {
	s.MediaDeletes.Inc()
}

func (s *Service) IncUpstreamErrors() {
	s.UpstreamErrors.Inc()
}

func (s *Service) IncNotificationsSent() {
	s.NotificationsSent.Inc()
}

func (s *Service) IncNotificationsFailed() {
	s.NotificationsFailed.Inc()
}

func (s *Service) SetStartupTime(duration float64) {
	s.StartupTimeSeconds.Set(duration)
}
