package views

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mps-cell/mps-dashboard/models"
)

func strPtr(s string) *string {
	return &s
}

func TestStatusBadge(t *testing.T) {
	tests := []struct {
		name     string
		order    models.Order
		expected string
	}{
		{
			name:     "Finished order is completed",
			order:    models.Order{QuantityProcessed: 10, FinishedAt: strPtr("2024-05-10T14:30:05")},
			expected: BadgeCompleted,
		},
		{
			name:     "Finished order with zero processed is still completed",
			order:    models.Order{QuantityProcessed: 0, FinishedAt: strPtr("2024-05-10T14:30:05")},
			expected: BadgeCompleted,
		},
		{
			name:     "Unfinished order with progress is in-progress",
			order:    models.Order{QuantityProcessed: 3},
			expected: BadgeInProgress,
		},
		{
			name:     "Untouched order is pending",
			order:    models.Order{QuantityProcessed: 0},
			expected: BadgePending,
		},
		{
			name:     "Empty finished_at counts as unfinished",
			order:    models.Order{QuantityProcessed: 0, FinishedAt: strPtr("")},
			expected: BadgePending,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, StatusBadge(tt.order))
		})
	}
}

func TestBadgeLabel(t *testing.T) {
	assert.Equal(t, "Concluída", BadgeLabel(BadgeCompleted))
	assert.Equal(t, "Em Progresso", BadgeLabel(BadgeInProgress))
	assert.Equal(t, "Pendente", BadgeLabel(BadgePending))
}

func TestStatusText(t *testing.T) {
	tests := []struct {
		status   string
		expected string
	}{
		{models.StatusRunning, "EM OPERAÇÃO"},
		{models.StatusIdle, "AGUARDANDO"},
		{models.StatusStopped, "PARADA"},
		{models.StatusError, "ERRO"},
		{models.StatusCycle, "CICLO"},
		{models.StatusEmergency, "EMERGÊNCIA"},
		{"maintenance", "DESCONHECIDO"},
		{"", "DESCONHECIDO"},
	}

	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			assert.Equal(t, tt.expected, StatusText(tt.status))
		})
	}
}

func TestProgressPercentage(t *testing.T) {
	tests := []struct {
		name      string
		processed int
		requested int
		expected  float64
	}{
		{"Thirty of one hundred", 30, 100, 30.0},
		{"Complete", 50, 50, 100.0},
		{"Nothing processed", 0, 10, 0.0},
		{"Odd fraction", 1, 3, 100.0 / 3},
		{"Over-processed clamps to 100", 12, 10, 100.0},
		{"Negative processed clamps to 0", -2, 10, 0.0},
		{"Zero requested", 5, 0, 0.0},
		{"Negative requested", 5, -1, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, ProgressPercentage(tt.processed, tt.requested), 1e-9)
		})
	}
}

func TestNewOrderItem(t *testing.T) {
	order := models.Order{
		ID:                7,
		OrderName:         "ORDEM_001",
		ColorRequested:    models.ColorRosa,
		QuantityRequested: 100,
		QuantityProcessed: 30,
		CreatedAt:         "2024-05-10T14:30:05",
	}

	item := NewOrderItem(order)

	assert.Equal(t, BadgeInProgress, item.StatusBadge)
	assert.Equal(t, "Em Progresso", item.StatusLabel)
	assert.InDelta(t, 30.0, item.Progress, 1e-9)
	assert.Equal(t, "10/05/2024 14:30:05", item.CreatedAtDisplay)
}

func TestNewPieceItem(t *testing.T) {
	approved := NewPieceItem(models.Piece{ID: 1, Result: true, CreatedAt: "2024-05-10T08:00:00"})
	assert.Equal(t, "Aprovada", approved.ResultLabel)
	assert.Equal(t, "10/05/2024 08:00:00", approved.CreatedAtDisplay)

	rejected := NewPieceItem(models.Piece{ID: 2, Result: false})
	assert.Equal(t, "Rejeitada", rejected.ResultLabel)
}
