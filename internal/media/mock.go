package media

import (
	"context"
	"io"
	"sync"
)

// MockStore is a mock implementation of the Store interface for testing.
// It is safe for concurrent use.
type MockStore struct {
	mu sync.Mutex

	// Spies for method calls
	UploadFunc        func(ctx context.Context, body io.Reader, size int64, mimeType, originalName string, purpose Purpose) (*UploadedFile, error)
	ListFunc          func(ctx context.Context) ([]UploadedFile, error)
	DeleteFunc        func(ctx context.Context, key string) error
	PresignUploadFunc func(ctx context.Context, filename, mimeType string, purpose Purpose) (*PresignedUpload, error)

	// Call records
	UploadCalls  []UploadCall
	ListCalls    int
	DeleteCalls  []string
	PresignCalls []PresignCall
}

// UploadCall holds the arguments for a call to Upload.
type UploadCall struct {
	Size         int64
	MimeType     string
	OriginalName string
	Purpose      Purpose
	Body         []byte
}

// PresignCall holds the arguments for a call to PresignUpload.
type PresignCall struct {
	Filename string
	MimeType string
	Purpose  Purpose
}

// NewMockStore creates a new mock instance.
func NewMockStore() *MockStore {
	return &MockStore{}
}

func (m *MockStore) Upload(ctx context.Context, body io.Reader, size int64, mimeType, originalName string, purpose Purpose) (*UploadedFile, error) {
	data, err := io.ReadAll(body)
	if err != nil {
		return nil, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.UploadCalls = append(m.UploadCalls, UploadCall{Size: size, MimeType: mimeType, OriginalName: originalName, Purpose: purpose, Body: data})
	if m.UploadFunc != nil {
		return m.UploadFunc(ctx, body, size, mimeType, originalName, purpose)
	}
	key := NewKey(PrefixFor(mimeType, purpose), originalName)
	return &UploadedFile{Key: key, URL: "https://cdn.example.com/" + key, Filename: originalName, MimeType: mimeType, Size: size}, nil
}

func (m *MockStore) List(ctx context.Context) ([]UploadedFile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ListCalls++
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return []UploadedFile{}, nil
}

func (m *MockStore) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DeleteCalls = append(m.DeleteCalls, key)
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, key)
	}
	return nil
}

func (m *MockStore) PresignUpload(ctx context.Context, filename, mimeType string, purpose Purpose) (*PresignedUpload, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PresignCalls = append(m.PresignCalls, PresignCall{Filename: filename, MimeType: mimeType, Purpose: purpose})
	if m.PresignUploadFunc != nil {
		return m.PresignUploadFunc(ctx, filename, mimeType, purpose)
	}
	key := NewKey(PrefixFor(mimeType, purpose), filename)
	return &PresignedUpload{URL: "https://bucket.example.com/" + key, Key: key, PublicURL: "https://cdn.example.com/" + key}, nil
}
