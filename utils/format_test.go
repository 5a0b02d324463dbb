package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatDateTime(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected string
	}{
		{
			name:     "RFC3339 timestamp",
			value:    "2024-05-10T14:30:05Z",
			expected: "10/05/2024 14:30:05",
		},
		{
			name:     "Timestamp without timezone",
			value:    "2024-05-10T14:30:05",
			expected: "10/05/2024 14:30:05",
		},
		{
			name:     "Empty value",
			value:    "",
			expected: "",
		},
		{
			name:     "Unparseable value is returned unchanged",
			value:    "ontem",
			expected: "ontem",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatDateTime(tt.value))
		})
	}
}
