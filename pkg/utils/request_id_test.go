package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateRequestID_Format(t *testing.T) {
	// Act
	id := GenerateRequestID("settle", 7)

	// Assert
	assert.Regexp(t, regexp.MustCompile(`^settle-k7-[0-9a-f]{8}$`), id)
}

func TestGenerateRequestID_Unique(t *testing.T) {
	// Act
	first := GenerateRequestID("recruits", 1)
	second := GenerateRequestID("recruits", 1)

	// Assert
	assert.NotEqual(t, first, second)
}

func TestNormalizeCategory(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"settle", "settle"},
		{"Settle", "settle"},
		{"build missiles", "build_missiles"},
		{"  specialists ", "specialists"},
		{"", "order"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, normalizeCategory(tt.input))
		})
	}
}
