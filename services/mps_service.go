package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/mps-cell/mps-dashboard/models"
	"github.com/mps-cell/mps-dashboard/session"
)

// MPSService exposes every MPS backend operation the dashboard consumes
type MPSService interface {
	// Login authenticates against the backend and returns the token
	// and user record. It does not touch the session store.
	Login(ctx context.Context, username, password string) (*models.LoginResponse, error)

	// MachineStatus fetches the live station state
	MachineStatus(ctx context.Context) (*models.MachineStatus, error)

	// ProductionStats fetches the production totals
	ProductionStats(ctx context.Context) (*models.ProductionStats, error)

	// HourlyProduction fetches the per-hour production buckets
	HourlyProduction(ctx context.Context) ([]models.HourlyDataPoint, error)

	// RecentOrders fetches the most recent orders, newest first
	RecentOrders(ctx context.Context) ([]models.Order, error)

	// RecentPieces fetches one page of the produced-pieces feed.
	// dateFilter is an optional YYYY-MM-DD string; empty means no filter.
	RecentPieces(ctx context.Context, page, pageSize int, dateFilter string) (*models.PiecesPage, error)

	// CreateOrder submits a new production order. Requires a session token.
	CreateOrder(ctx context.Context, form models.OrderForm) error
}

// HTTPMPSService implements MPSService over the backend REST API
type HTTPMPSService struct {
	baseURL  string
	client   *http.Client
	sessions *session.Store
}

var mpsServiceInstance MPSService

// InitMPSService initializes the MPS service with the backend base URL
// and the session store the gateway invalidates on 401
func InitMPSService(baseURL string, sessions *session.Store) MPSService {
	mpsServiceInstance = NewHTTPMPSService(baseURL, sessions)
	return mpsServiceInstance
}

// GetMPSService returns the initialized MPS service instance
func GetMPSService() MPSService {
	return mpsServiceInstance
}

// SetMPSService sets the MPS service instance (primarily for testing)
func SetMPSService(service MPSService) {
	mpsServiceInstance = service
}

// NewHTTPMPSService creates an HTTP-backed MPS service
func NewHTTPMPSService(baseURL string, sessions *session.Store) *HTTPMPSService {
	return &HTTPMPSService{
		baseURL:  strings.TrimSuffix(baseURL, "/") + "/",
		client:   &http.Client{Timeout: 10 * time.Second},
		sessions: sessions,
	}
}

// Request issues an HTTP call against the backend. It always sends the
// JSON content type and attaches a bearer authorization header when a
// session token is present. A 401 response clears the whole session
// before the call fails with *SessionExpiredError; every other status
// is returned as-is for the caller to interpret.
func (s *HTTPMPSService) Request(ctx context.Context, method, endpoint string, query url.Values, body any) (*http.Response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	requestURL := s.baseURL + strings.TrimPrefix(endpoint, "/")
	if len(query) > 0 {
		requestURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token := s.sessions.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach backend: %w", err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		resp.Body.Close()
		if err := s.sessions.ClearSession(); err != nil {
			return nil, fmt.Errorf("failed to clear expired session: %w", err)
		}
		return nil, &SessionExpiredError{Endpoint: endpoint}
	}

	return resp, nil
}

// getJSON performs an authenticated GET and decodes the response body into out
func (s *HTTPMPSService) getJSON(ctx context.Context, endpoint string, query url.Values, out any) error {
	resp, err := s.Request(ctx, http.MethodGet, endpoint, query, nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return serverError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", endpoint, err)
	}
	return nil
}

// Login authenticates with a plain request so that a rejected login is
// never mistaken for an expired session
func (s *HTTPMPSService) Login(ctx context.Context, username, password string) (*models.LoginResponse, error) {
	payload, err := json.Marshal(models.LoginRequest{Username: username, Password: password})
	if err != nil {
		return nil, fmt.Errorf("failed to encode login request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.baseURL+"api/login", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to create login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach backend: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, serverError(resp)
	}

	var login models.LoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&login); err != nil {
		return nil, fmt.Errorf("failed to decode login response: %w", err)
	}
	return &login, nil
}

// MachineStatus fetches the live station state
func (s *HTTPMPSService) MachineStatus(ctx context.Context) (*models.MachineStatus, error) {
	var status models.MachineStatus
	if err := s.getJSON(ctx, "api/machine-status", nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// ProductionStats fetches the production totals
func (s *HTTPMPSService) ProductionStats(ctx context.Context) (*models.ProductionStats, error) {
	var stats models.ProductionStats
	if err := s.getJSON(ctx, "api/production-stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// HourlyProduction fetches the per-hour production buckets
func (s *HTTPMPSService) HourlyProduction(ctx context.Context) ([]models.HourlyDataPoint, error) {
	var hourly models.HourlyProduction
	if err := s.getJSON(ctx, "api/hourly-production", nil, &hourly); err != nil {
		return nil, err
	}
	return hourly.HourlyData, nil
}

// RecentOrders fetches the most recent orders
func (s *HTTPMPSService) RecentOrders(ctx context.Context) ([]models.Order, error) {
	var list models.OrderList
	if err := s.getJSON(ctx, "api/recent-orders", nil, &list); err != nil {
		return nil, err
	}
	return list.Orders, nil
}

// RecentPieces fetches one page of the produced-pieces feed
func (s *HTTPMPSService) RecentPieces(ctx context.Context, page, pageSize int, dateFilter string) (*models.PiecesPage, error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("page_size", strconv.Itoa(pageSize))
	if dateFilter != "" {
		query.Set("date_filter", dateFilter)
	}

	var pieces models.PiecesPage
	if err := s.getJSON(ctx, "api/recent-pieces", query, &pieces); err != nil {
		return nil, err
	}
	return &pieces, nil
}

// CreateOrder submits a new production order through the gateway, so an
// expired token clears the session and surfaces as *SessionExpiredError
func (s *HTTPMPSService) CreateOrder(ctx context.Context, form models.OrderForm) error {
	resp, err := s.Request(ctx, http.MethodPost, "api/create-order", nil, form)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return serverError(resp)
	}
	return nil
}

// serverError turns a non-401 error response into a *ServerError,
// carrying the backend detail message when present
func serverError(resp *http.Response) error {
	var detail struct {
		Detail string `json:"detail"`
	}
	if body, err := io.ReadAll(io.LimitReader(resp.Body, 4096)); err == nil {
		_ = json.Unmarshal(body, &detail)
	}
	return &ServerError{StatusCode: resp.StatusCode, Message: detail.Detail}
}
