package models

// ProductionStats holds the running totals for the current production day
type ProductionStats struct {
	TotalPieces    int     `json:"total_pieces"`
	RejectedPieces int     `json:"rejected_pieces"`
	ApprovedPieces int     `json:"approved_pieces"`
	Timestamp      float64 `json:"timestamp"`
}

// HourlyDataPoint is one per-hour production bucket.
// The backend returns these as an ordered sequence by hour.
type HourlyDataPoint struct {
	Hour     string `json:"hour"`
	Total    int    `json:"total"`
	Rejected int    `json:"rejected"`
	Approved int    `json:"approved"`
}

// HourlyProduction is the response envelope for the hourly production endpoint
type HourlyProduction struct {
	HourlyData []HourlyDataPoint `json:"hourly_data"`
}
