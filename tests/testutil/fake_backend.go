package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"

	"github.com/mps-cell/mps-dashboard/models"
)

// FakeMPSBackend is an in-process stand-in for the MPS backend REST API.
// It accepts one username/password pair, issues one token and rejects
// any authenticated call that does not carry that token.
type FakeMPSBackend struct {
	mu sync.Mutex

	Username string
	Password string
	Token    string

	Machine *models.MachineStatus
	Stats   *models.ProductionStats
	Hourly  []models.HourlyDataPoint
	Orders  []models.Order
	Pieces  *models.PiecesPage

	CreatedOrders []models.OrderForm

	server *httptest.Server
}

// NewFakeMPSBackend starts a fake backend with default credentials
func NewFakeMPSBackend() *FakeMPSBackend {
	backend := &FakeMPSBackend{
		Username: "operador",
		Password: "senha123",
		Token:    "fake-backend-token",
		Machine:  &models.MachineStatus{Status: models.StatusIdle},
		Stats:    &models.ProductionStats{},
		Pieces:   &models.PiecesPage{Page: 1, TotalPages: 1},
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/login", backend.handleLogin)
	mux.HandleFunc("/api/machine-status", backend.authenticated(func(w http.ResponseWriter, r *http.Request) {
		backend.writeJSON(w, backend.Machine)
	}))
	mux.HandleFunc("/api/production-stats", backend.authenticated(func(w http.ResponseWriter, r *http.Request) {
		backend.writeJSON(w, backend.Stats)
	}))
	mux.HandleFunc("/api/hourly-production", backend.authenticated(func(w http.ResponseWriter, r *http.Request) {
		backend.writeJSON(w, models.HourlyProduction{HourlyData: backend.Hourly})
	}))
	mux.HandleFunc("/api/recent-orders", backend.authenticated(func(w http.ResponseWriter, r *http.Request) {
		backend.writeJSON(w, models.OrderList{Orders: backend.Orders})
	}))
	mux.HandleFunc("/api/recent-pieces", backend.authenticated(backend.handleRecentPieces))
	mux.HandleFunc("/api/create-order", backend.authenticated(backend.handleCreateOrder))

	backend.server = httptest.NewServer(mux)
	return backend
}

// URL returns the backend base URL
func (b *FakeMPSBackend) URL() string {
	return b.server.URL
}

// Close shuts the backend down
func (b *FakeMPSBackend) Close() {
	b.server.Close()
}

// CreatedOrderCount returns how many orders reached the backend
func (b *FakeMPSBackend) CreatedOrderCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()

	return len(b.CreatedOrders)
}

// LastCreatedOrder returns the most recent submitted order form
func (b *FakeMPSBackend) LastCreatedOrder() (models.OrderForm, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.CreatedOrders) == 0 {
		return models.OrderForm{}, false
	}
	return b.CreatedOrders[len(b.CreatedOrders)-1], true
}

// InvalidateToken changes the accepted token, so requests carrying the
// previously issued one start failing with 401
func (b *FakeMPSBackend) InvalidateToken() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.Token = b.Token + "-rotated"
}

func (b *FakeMPSBackend) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if req.Username != b.Username || req.Password != b.Password {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Usuário ou senha inválidos"})
		return
	}

	json.NewEncoder(w).Encode(map[string]any{
		"access_token": b.Token,
		"user":         map[string]string{"username": b.Username},
	})
}

func (b *FakeMPSBackend) handleRecentPieces(w http.ResponseWriter, r *http.Request) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))

	b.mu.Lock()
	defer b.mu.Unlock()

	response := *b.Pieces
	if page > 0 {
		response.Page = page
	}
	json.NewEncoder(w).Encode(response)
}

func (b *FakeMPSBackend) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	var form models.OrderForm
	if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		return
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.CreatedOrders = append(b.CreatedOrders, form)
	w.WriteHeader(http.StatusCreated)
	w.Write([]byte(`{}`))
}

// authenticated rejects requests that do not carry the issued token
func (b *FakeMPSBackend) authenticated(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		expected := "Bearer " + b.Token
		b.mu.Unlock()

		if r.Header.Get("Authorization") != expected {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		next(w, r)
	}
}

func (b *FakeMPSBackend) writeJSON(w http.ResponseWriter, v any) {
	b.mu.Lock()
	defer b.mu.Unlock()

	json.NewEncoder(w).Encode(v)
}

// FakeCameraServer is an in-process stand-in for the camera service
type FakeCameraServer struct {
	mu sync.Mutex

	Open      bool
	FeedBytes []byte

	server *httptest.Server
}

// NewFakeCameraServer starts a fake camera service
func NewFakeCameraServer() *FakeCameraServer {
	camera := &FakeCameraServer{
		Open:      true,
		FeedBytes: []byte("mjpeg-frame"),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/status", func(w http.ResponseWriter, r *http.Request) {
		camera.mu.Lock()
		defer camera.mu.Unlock()
		json.NewEncoder(w).Encode(models.CameraStatus{CameraAberta: camera.Open})
	})
	mux.HandleFunc("/video_feed", func(w http.ResponseWriter, r *http.Request) {
		camera.mu.Lock()
		defer camera.mu.Unlock()
		w.Header().Set("Content-Type", "multipart/x-mixed-replace; boundary=frame")
		w.Write(camera.FeedBytes)
	})

	camera.server = httptest.NewServer(mux)
	return camera
}

// URL returns the camera base URL
func (c *FakeCameraServer) URL() string {
	return c.server.URL
}

// Close shuts the camera server down
func (c *FakeCameraServer) Close() {
	c.server.Close()
}

// SetOpen flips the reported camera state
func (c *FakeCameraServer) SetOpen(open bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.Open = open
}
