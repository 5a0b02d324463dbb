package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/mps-cell/mps-dashboard/models"
)

// CameraService talks to the camera streaming service
type CameraService interface {
	// Status reports whether the camera is open
	Status(ctx context.Context) (*models.CameraStatus, error)

	// Feed opens the continuous video stream. The caller owns the
	// response and must close its body.
	Feed(ctx context.Context) (*http.Response, error)
}

// HTTPCameraService implements CameraService over the camera HTTP API
type HTTPCameraService struct {
	baseURL string
	client  *http.Client
}

var cameraServiceInstance CameraService

// InitCameraService initializes the camera service with the camera base URL
func InitCameraService(baseURL string) CameraService {
	cameraServiceInstance = NewHTTPCameraService(baseURL)
	return cameraServiceInstance
}

// GetCameraService returns the initialized camera service instance
func GetCameraService() CameraService {
	return cameraServiceInstance
}

// SetCameraService sets the camera service instance (primarily for testing)
func SetCameraService(service CameraService) {
	cameraServiceInstance = service
}

// NewHTTPCameraService creates an HTTP-backed camera service
func NewHTTPCameraService(baseURL string) *HTTPCameraService {
	return &HTTPCameraService{
		baseURL: strings.TrimSuffix(baseURL, "/") + "/",
		// The status endpoint answers fast; the feed request is
		// issued with no timeout because the stream never ends.
		client: &http.Client{Timeout: 5 * time.Second},
	}
}

// Status reports whether the camera is open
func (s *HTTPCameraService) Status(ctx context.Context) (*models.CameraStatus, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"status", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create camera status request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach camera service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, &ServerError{StatusCode: resp.StatusCode, Message: "camera status request failed"}
	}

	var status models.CameraStatus
	if err := json.NewDecoder(resp.Body).Decode(&status); err != nil {
		return nil, fmt.Errorf("failed to decode camera status: %w", err)
	}
	return &status, nil
}

// Feed opens the continuous video stream
func (s *HTTPCameraService) Feed(ctx context.Context) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"video_feed", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create video feed request: %w", err)
	}

	// A fresh client without the status timeout; the MJPEG stream
	// stays open for as long as the viewer watches it.
	streamClient := &http.Client{}
	resp, err := streamClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to open video feed: %w", err)
	}

	if resp.StatusCode >= 400 {
		resp.Body.Close()
		return nil, &ServerError{StatusCode: resp.StatusCode, Message: "video feed request failed"}
	}
	return resp, nil
}
