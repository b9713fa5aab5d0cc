package metrics

import "sync"

// Mock is a mock implementation of the Metrics interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu                  sync.Mutex
	sheetReads          int
	sheetWrites         int
	readDurations       []float64
	mediaUploads        int
	mediaDeletes        int
	upstreamErrors      int
	notificationsSent   int
	notificationsFailed int
	startupTime         float64
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{
		readDurations: make([]float64, 0),
	}
}

func (m *Mock) IncSheetReads() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sheetReads++
}

func (m *Mock) IncSheetWrites() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sheetWrites++
}

func (m *Mock) ObserveSheetReadDuration(seconds float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.readDurations = append(m.readDurations, seconds)
}

func (m *Mock) IncMediaUploads() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mediaUploads++
}

func (m *Mock) IncMediaDeletes() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mediaDeletes++
}

func (m *Mock) IncUpstreamErrors() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.upstreamErrors++
}

func (m *Mock) IncNotificationsSent() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notificationsSent++
}

func (m *Mock) IncNotificationsFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notificationsFailed++
}

func (m *Mock) SetStartupTime(duration float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.startupTime = duration
}

// SheetReads returns the number of times IncSheetReads was called.
func (m *Mock) SheetReads() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sheetReads
}

// SheetWrites returns the number of times IncSheetWrites was called.
func (m *Mock) SheetWrites() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sheetWrites
}

// MediaUploads returns the number of times IncMediaUploads was called.
func (m *Mock) MediaUploads() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mediaUploads
}

// MediaDeletes returns the number of times IncMediaDeletes was called.
func (m *Mock) MediaDeletes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mediaDeletes
}

// UpstreamErrors returns the number of times IncUpstreamErrors was called.
func (m *Mock) UpstreamErrors() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.upstreamErrors
}

// NotificationsFailed returns the number of times IncNotificationsFailed was called.
func (m *Mock) NotificationsFailed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.notificationsFailed
}

// NotificationsSent returns the number of times IncNotificationsSent was called.
func (m *Mock) NotificationsSent() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.notificationsSent
}
