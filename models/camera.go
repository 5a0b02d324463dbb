package models

// CameraStatus is the response of the camera service status endpoint
type CameraStatus struct {
	CameraAberta bool `json:"camera_aberta"`
}
