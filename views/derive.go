package views

import (
	"github.com/mps-cell/mps-dashboard/models"
	"github.com/mps-cell/mps-dashboard/utils"
)

// Badge classifications for an order
const (
	BadgeCompleted  = "completed"
	BadgeInProgress = "in-progress"
	BadgePending    = "pending"
)

var statusTexts = map[string]string{
	models.StatusRunning:   "EM OPERAÇÃO",
	models.StatusIdle:      "AGUARDANDO",
	models.StatusStopped:   "PARADA",
	models.StatusError:     "ERRO",
	models.StatusCycle:     "CICLO",
	models.StatusEmergency: "EMERGÊNCIA",
}

var badgeLabels = map[string]string{
	BadgeCompleted:  "Concluída",
	BadgeInProgress: "Em Progresso",
	BadgePending:    "Pendente",
}

// StatusText maps a machine status to its display label.
// Unknown statuses get the fallback label.
func StatusText(status string) string {
	if text, ok := statusTexts[status]; ok {
		return text
	}
	return "DESCONHECIDO"
}

// StatusBadge classifies an order: completed once finished_at is set,
// in-progress once any piece was processed, pending otherwise
func StatusBadge(order models.Order) string {
	if order.FinishedAt != nil && *order.FinishedAt != "" {
		return BadgeCompleted
	}
	if order.QuantityProcessed > 0 {
		return BadgeInProgress
	}
	return BadgePending
}

// BadgeLabel maps a badge classification to its display label
func BadgeLabel(badge string) string {
	return badgeLabels[badge]
}

// ProgressPercentage is processed/requested as a percentage, clamped to
// [0,100] so bad server data never renders an impossible progress bar
func ProgressPercentage(processed, requested int) float64 {
	if requested <= 0 {
		return 0
	}

	progress := float64(processed) / float64(requested) * 100
	if progress < 0 {
		return 0
	}
	if progress > 100 {
		return 100
	}
	return progress
}

// OrderItem is an order enriched with display-ready derivations
type OrderItem struct {
	models.Order
	StatusBadge      string  `json:"status_badge"`
	StatusLabel      string  `json:"status_label"`
	Progress         float64 `json:"progress"`
	CreatedAtDisplay string  `json:"created_at_display"`
}

// NewOrderItem derives the display fields for one order
func NewOrderItem(order models.Order) OrderItem {
	badge := StatusBadge(order)
	return OrderItem{
		Order:            order,
		StatusBadge:      badge,
		StatusLabel:      BadgeLabel(badge),
		Progress:         ProgressPercentage(order.QuantityProcessed, order.QuantityRequested),
		CreatedAtDisplay: utils.FormatDateTime(order.CreatedAt),
	}
}

// PieceItem is a piece enriched with display-ready derivations
type PieceItem struct {
	models.Piece
	ResultLabel      string `json:"result_label"`
	CreatedAtDisplay string `json:"created_at_display"`
}

// NewPieceItem derives the display fields for one piece
func NewPieceItem(piece models.Piece) PieceItem {
	label := "Rejeitada"
	if piece.Result {
		label = "Aprovada"
	}
	return PieceItem{
		Piece:            piece,
		ResultLabel:      label,
		CreatedAtDisplay: utils.FormatDateTime(piece.CreatedAt),
	}
}

func newOrderItems(orders []models.Order) []OrderItem {
	items := make([]OrderItem, 0, len(orders))
	for _, order := range orders {
		items = append(items, NewOrderItem(order))
	}
	return items
}

func newPieceItems(pieces []models.Piece) []PieceItem {
	items := make([]PieceItem, 0, len(pieces))
	for _, piece := range pieces {
		items = append(items, NewPieceItem(piece))
	}
	return items
}
