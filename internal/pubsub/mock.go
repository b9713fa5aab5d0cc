package pubsub

import (
	"context"
	"sync"
)

// MockPubSubClient is a mock implementation of PubSubClient for testing.
// It is safe for concurrent use.
type MockPubSubClient struct {
	mu sync.Mutex

	// Spies for method calls
	PublishFunc func(ctx context.Context, event EventType, payload any) error

	// Call records
	PublishCalls []PublishCall
	Closed       bool
}

// PublishCall holds the arguments for a call to Publish.
type PublishCall struct {
	Event   EventType
	Payload any
}

// NewMock creates a new mock PubSubClient.
func NewMock() *MockPubSubClient {
	return &MockPubSubClient{}
}

// Reset clears all call records.
func (m *MockPubSubClient) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PublishCalls = nil
	m.Closed = false
}

// Publish records the call and executes the mock function if provided.
func (m *MockPubSubClient) Publish(ctx context.Context, event EventType, payload any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.PublishCalls = append(m.PublishCalls, PublishCall{Event: event, Payload: payload})
	if m.PublishFunc != nil {
		return m.PublishFunc(ctx, event, payload)
	}
	return nil
}

func (m *MockPubSubClient) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Closed = true
	return nil
}

// Calls returns a copy of the recorded Publish calls.
func (m *MockPubSubClient) Calls() []PublishCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]PublishCall(nil), m.PublishCalls...)
}
