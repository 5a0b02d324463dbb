package views

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/mps-cell/mps-dashboard/models"
	"github.com/mps-cell/mps-dashboard/poller"
	"github.com/mps-cell/mps-dashboard/services"
)

// MonitoringView tracks whether the camera feed is online. Any failure
// to reach the camera service marks the feed offline.
type MonitoringView struct {
	mu sync.RWMutex

	interval time.Duration
	online   bool

	statusPoller *poller.Poller[*models.CameraStatus]
}

var monitoringViewInstance *MonitoringView

// InitMonitoringView initializes the monitoring view
func InitMonitoringView(interval time.Duration) *MonitoringView {
	monitoringViewInstance = NewMonitoringView(interval)
	return monitoringViewInstance
}

// GetMonitoringView returns the initialized monitoring view instance
func GetMonitoringView() *MonitoringView {
	return monitoringViewInstance
}

// SetMonitoringView sets the monitoring view instance (primarily for testing)
func SetMonitoringView(view *MonitoringView) {
	monitoringViewInstance = view
}

// NewMonitoringView creates a monitoring view with the given poll interval
func NewMonitoringView(interval time.Duration) *MonitoringView {
	return &MonitoringView{interval: interval}
}

// Mount starts the camera status polling schedule
func (v *MonitoringView) Mount(ctx context.Context) {
	status := poller.New("camera-status", v.interval, v.fetchStatus, v.applyStatus, v.handleStatusError)

	v.mu.Lock()
	v.statusPoller = status
	v.mu.Unlock()

	status.Start(ctx)
}

// Unmount stops the polling schedule
func (v *MonitoringView) Unmount() {
	v.mu.Lock()
	status := v.statusPoller
	v.statusPoller = nil
	v.mu.Unlock()

	if status != nil {
		status.Stop()
	}
}

// Refresh checks the camera status once. A failed check marks the feed
// offline before the error is returned.
func (v *MonitoringView) Refresh(ctx context.Context) error {
	status, err := v.fetchStatus(ctx)
	if err != nil {
		v.setOnline(false)
		return err
	}
	v.applyStatus(status)
	return nil
}

func (v *MonitoringView) fetchStatus(ctx context.Context) (*models.CameraStatus, error) {
	return services.GetCameraService().Status(ctx)
}

func (v *MonitoringView) applyStatus(status *models.CameraStatus) {
	v.setOnline(status.CameraAberta)
}

// handleStatusError fails safe: an unreachable camera shows as offline
func (v *MonitoringView) handleStatusError(err error) {
	v.setOnline(false)
	log.Printf("Failed to refresh camera-status: %v", err)
}

func (v *MonitoringView) setOnline(online bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.online = online
}

// Online reports whether the camera feed is online
func (v *MonitoringView) Online() bool {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.online
}

// MonitoringState is the display-ready monitoring page state
type MonitoringState struct {
	Online bool `json:"online"`
}

// State returns the current monitoring page state
func (v *MonitoringView) State() MonitoringState {
	return MonitoringState{Online: v.Online()}
}
