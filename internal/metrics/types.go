package metrics

import "github.com/prometheus/client_golang/prometheus"

// Service holds all the Prometheus metrics for the application.
// By defining them all in one place, we ensure consistency in naming and labeling.
type Service struct {
	SheetReads          prometheus.Counter
	SheetWrites         prometheus.Counter
	SheetReadDuration   prometheus.Histogram
	MediaUploads        prometheus.Counter
	MediaDeletes        prometheus.Counter
	UpstreamErrors      prometheus.Counter
	NotificationsSent   prometheus.Counter
	NotificationsFailed prometheus.Counter
	StartupTimeSeconds  prometheus.Gauge
}
