package models

// Piece colors the station can produce
const (
	ColorPrata = "prata"
	ColorPreto = "preto"
	ColorRosa  = "rosa"
)

// Order represents a production order as reported by the MPS backend
type Order struct {
	ID                int     `json:"id"`
	OrderName         string  `json:"order_name"`
	ColorRequested    string  `json:"color_requested"`
	QuantityRequested int     `json:"quantity_requested"`
	QuantityProcessed int     `json:"quantity_processed"`
	CreatedAt         string  `json:"created_at"`
	FinishedAt        *string `json:"finished_at"`
}

// OrderList is the response envelope for the recent orders endpoint
type OrderList struct {
	Orders []Order `json:"orders"`
}

// OrderForm is the draft for a new production order.
// It mirrors the create-order request body field for field.
type OrderForm struct {
	OrderName string `json:"orderName"`
	Color     string `json:"color"`
	Quantity  int    `json:"quantity"`
}

// DefaultOrderForm returns a fresh draft with the station defaults
func DefaultOrderForm() OrderForm {
	return OrderForm{
		OrderName: "",
		Color:     ColorPrata,
		Quantity:  1,
	}
}
