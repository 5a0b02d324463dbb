package models

// Piece is a single produced piece. Result is true for approved
// pieces and false for rejected ones. Pieces are immutable once created.
type Piece struct {
	ID         int    `json:"id"`
	PieceColor string `json:"piece_color"`
	Result     bool   `json:"result"`
	OrderID    *int   `json:"order_id"`
	OrderName  string `json:"order_name"`
	CreatedAt  string `json:"created_at"`
}

// PiecesPage is one page of the produced-pieces feed
type PiecesPage struct {
	Pieces     []Piece `json:"pieces"`
	TotalCount int     `json:"total_count"`
	Page       int     `json:"page"`
	PageSize   int     `json:"page_size"`
	TotalPages int     `json:"total_pages"`
	Timestamp  float64 `json:"timestamp"`
}
