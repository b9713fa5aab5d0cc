package notifier

import (
	"context"
	"sync"

	"github.com/mauv0809/dna-dashboard/internal/media"
	"github.com/mauv0809/dna-dashboard/internal/settings"
)

// Mock is a mock implementation of the Notifier interface for testing.
// It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	// Spies
	SettingsUpdatedFunc func(keys []string, current settings.GameSettings) error
	MediaUploadedFunc   func(file media.UploadedFile) error
	MediaDeletedFunc    func(key string) error

	// Call records
	SettingsUpdatedCalls [][]string
	MediaUploadedCalls   []media.UploadedFile
	MediaDeletedCalls    []string
}

// NewMock creates a new mock instance.
func NewMock() *Mock {
	return &Mock{}
}

// Reset clears all call records.
func (m *Mock) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SettingsUpdatedCalls = nil
	m.MediaUploadedCalls = nil
	m.MediaDeletedCalls = nil
}

func (m *Mock) SettingsUpdated(_ context.Context, keys []string, current settings.GameSettings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SettingsUpdatedCalls = append(m.SettingsUpdatedCalls, keys)
	if m.SettingsUpdatedFunc != nil {
		return m.SettingsUpdatedFunc(keys, current)
	}
	return nil
}

func (m *Mock) MediaUploaded(_ context.Context, file media.UploadedFile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.MediaUploadedCalls = append(m.MediaUploadedCalls, file)
	if m.MediaUploadedFunc != nil {
		return m.MediaUploadedFunc(file)
	}
	return nil
}

func (m *Mock) MediaDeleted(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.MediaDeletedCalls = append(m.MediaDeletedCalls, key)
	if m.MediaDeletedFunc != nil {
		return m.MediaDeletedFunc(key)
	}
	return nil
}
