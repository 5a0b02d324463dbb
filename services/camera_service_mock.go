package services

import (
	"context"
	"net/http"
	"sync"

	"github.com/mps-cell/mps-dashboard/models"
)

// MockCameraService is a mock implementation of CameraService for testing
type MockCameraService struct {
	mu sync.Mutex

	Open        bool
	Err         error
	StatusCalls int
}

// NewMockCameraService creates a new mock camera service
func NewMockCameraService() *MockCameraService {
	return &MockCameraService{}
}

// SetAsMockForTesting sets this mock as the global camera service instance for testing
func (m *MockCameraService) SetAsMockForTesting() {
	SetCameraService(m)
}

// Status returns the canned camera state
func (m *MockCameraService) Status(ctx context.Context) (*models.CameraStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.StatusCalls++
	if m.Err != nil {
		return nil, m.Err
	}
	return &models.CameraStatus{CameraAberta: m.Open}, nil
}

// Feed is not implemented by the mock; feed proxying is covered by
// integration tests against a fake camera server
func (m *MockCameraService) Feed(ctx context.Context) (*http.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Err != nil {
		return nil, m.Err
	}
	return nil, &ServerError{StatusCode: http.StatusNotImplemented, Message: "mock feed not available"}
}

// SetOpen updates the canned camera state (test helper)
func (m *MockCameraService) SetOpen(open bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Open = open
}

// SetError injects an error into every subsequent call (test helper)
func (m *MockCameraService) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Err = err
}
