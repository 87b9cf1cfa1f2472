package testutil

import (
	"context"
	"sync"

	"github.com/ndewijer/Trade-Journal-Backend/internal/model"
)

// MockExtractionClient is a mock implementation of extraction.Client for testing.
// Records and errors are keyed by the image bytes, so tests can mix good and bad
// images in one batch.
type MockExtractionClient struct {
	// Records maps image content to the record returned for it
	Records map[string]model.RawRecord
	// Errors maps image content to the error returned for it
	Errors map[string]error
	// Panics maps image content to a value Extract panics with
	Panics map[string]any

	mu    sync.Mutex
	calls int
}

// NewMockExtractionClient creates an empty mock client.
func NewMockExtractionClient() *MockExtractionClient {
	return &MockExtractionClient{
		Records: make(map[string]model.RawRecord),
		Errors:  make(map[string]error),
		Panics:  make(map[string]any),
	}
}

// Extract returns the configured error or record for image. Unknown images
// yield an empty record, which normalization rejects.
func (m *MockExtractionClient) Extract(_ context.Context, image []byte, _ string) (model.RawRecord, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()

	if v, ok := m.Panics[string(image)]; ok {
		panic(v)
	}
	if err, ok := m.Errors[string(image)]; ok {
		return model.RawRecord{}, err
	}
	return m.Records[string(image)], nil
}

// Calls returns how many times Extract was called.
func (m *MockExtractionClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}
