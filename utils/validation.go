package utils

import (
	"strings"

	"github.com/mps-cell/mps-dashboard/models"
)

// ValidationError represents a client-side order form validation error
type ValidationError struct {
	Code    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ValidateOrderForm checks a draft before any request is issued
func ValidateOrderForm(form models.OrderForm) error {
	if strings.TrimSpace(form.OrderName) == "" {
		return &ValidationError{
			Code:    "EMPTY_ORDER_NAME",
			Message: "Por favor, preencha o nome da ordem!",
		}
	}

	if form.Quantity < 1 {
		return &ValidationError{
			Code:    "INVALID_QUANTITY",
			Message: "A quantidade deve ser maior que 0!",
		}
	}

	switch form.Color {
	case models.ColorPrata, models.ColorPreto, models.ColorRosa:
	default:
		return &ValidationError{
			Code:    "INVALID_COLOR",
			Message: "Cor inválida. Use prata, preto ou rosa.",
		}
	}

	return nil
}
