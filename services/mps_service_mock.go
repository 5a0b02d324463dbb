package services

import (
	"context"
	"sync"

	"github.com/mps-cell/mps-dashboard/models"
)

// MockMPSService is a mock implementation of MPSService for testing
type MockMPSService struct {
	mu sync.Mutex

	// Canned responses
	LoginResponse    *models.LoginResponse
	Machine          *models.MachineStatus
	Stats            *models.ProductionStats
	Hourly           []models.HourlyDataPoint
	Orders           []models.Order
	Pieces           *models.PiecesPage

	// Error injected into every call when set
	Err error

	// Recorded calls
	CreatedOrders   []models.OrderForm
	LoginCalls      int
	PiecesRequests  []PiecesRequest
	RequestCount    int
}

// PiecesRequest records the parameters of one RecentPieces call
type PiecesRequest struct {
	Page       int
	PageSize   int
	DateFilter string
}

// NewMockMPSService creates a new mock MPS service
func NewMockMPSService() *MockMPSService {
	return &MockMPSService{}
}

// SetAsMockForTesting sets this mock as the global MPS service instance for testing
func (m *MockMPSService) SetAsMockForTesting() {
	SetMPSService(m)
}

// Login returns the canned login response
func (m *MockMPSService) Login(ctx context.Context, username, password string) (*models.LoginResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.LoginCalls++
	m.RequestCount++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.LoginResponse, nil
}

// MachineStatus returns the canned machine status
func (m *MockMPSService) MachineStatus(ctx context.Context) (*models.MachineStatus, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.RequestCount++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Machine, nil
}

// ProductionStats returns the canned production stats
func (m *MockMPSService) ProductionStats(ctx context.Context) (*models.ProductionStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.RequestCount++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Stats, nil
}

// HourlyProduction returns the canned hourly buckets
func (m *MockMPSService) HourlyProduction(ctx context.Context) ([]models.HourlyDataPoint, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.RequestCount++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Hourly, nil
}

// RecentOrders returns the canned order list
func (m *MockMPSService) RecentOrders(ctx context.Context) ([]models.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.RequestCount++
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Orders, nil
}

// RecentPieces records the request parameters and returns the canned page
func (m *MockMPSService) RecentPieces(ctx context.Context, page, pageSize int, dateFilter string) (*models.PiecesPage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.RequestCount++
	m.PiecesRequests = append(m.PiecesRequests, PiecesRequest{Page: page, PageSize: pageSize, DateFilter: dateFilter})
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Pieces, nil
}

// CreateOrder records the submitted form
func (m *MockMPSService) CreateOrder(ctx context.Context, form models.OrderForm) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.RequestCount++
	if m.Err != nil {
		return m.Err
	}
	m.CreatedOrders = append(m.CreatedOrders, form)
	return nil
}

// CreatedOrderCount returns how many orders were submitted (test helper)
func (m *MockMPSService) CreatedOrderCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.CreatedOrders)
}

// Requests returns the total number of calls made against the mock (test helper)
func (m *MockMPSService) Requests() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.RequestCount
}

// PiecesRequestCount returns how many pieces pages were requested (test helper)
func (m *MockMPSService) PiecesRequestCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.PiecesRequests)
}

// LastPiecesRequest returns the most recent RecentPieces parameters (test helper)
func (m *MockMPSService) LastPiecesRequest() (PiecesRequest, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if len(m.PiecesRequests) == 0 {
		return PiecesRequest{}, false
	}
	return m.PiecesRequests[len(m.PiecesRequests)-1], true
}

// SetError injects an error into every subsequent call (test helper)
func (m *MockMPSService) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Err = err
}
