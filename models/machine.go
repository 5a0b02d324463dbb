package models

// Machine status values reported by the MPS backend
const (
	StatusRunning   = "running"
	StatusIdle      = "idle"
	StatusStopped   = "stopped"
	StatusError     = "error"
	StatusCycle     = "cycle"
	StatusEmergency = "emergency"
)

// ActiveOrder represents the order currently being processed by the station
type ActiveOrder struct {
	OrderName         string `json:"order_name"`
	ColorRequested    string `json:"color_requested"`
	QuantityRequested int    `json:"quantity_requested"`
	QuantityProcessed int    `json:"quantity_processed"`
	QuantityRemaining int    `json:"quantity_remaining"`
}

// MachineStatus is the live state of the sorting station.
// ActiveOrder is nil when no order is running; the station never
// reports more than one active order at a time.
type MachineStatus struct {
	Status            string       `json:"status"`
	ConveyorAvailable bool         `json:"conveyor_available"`
	ActiveOrder       *ActiveOrder `json:"active_order"`
	Timestamp         float64      `json:"timestamp"`
}
