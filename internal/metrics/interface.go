package metrics

// Metrics defines the interface for collecting application metrics.
// This decouples the application from the specific metrics implementation (e.g., Prometheus).
type Metrics interface {
	IncSheetReads()
	IncSheetWrites()
	ObserveSheetReadDuration(seconds float64)
	IncMediaUploads()
	IncMediaDeletes()
	IncUpstreamErrors()
	IncNotificationsSent()
	IncNotificationsFailed()
	SetStartupTime(duration float64)
}
