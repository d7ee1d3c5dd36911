package ledger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoerceAmount(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"integer", "50", "50"},
		{"fraction", "49.99", "49.99"},
		{"surrounding spaces", "  12.5 ", "12.5"},
		{"blank", "", "0"},
		{"whitespace only", "   ", "0"},
		{"garbage", "abc", "0"},
		{"negative", "-3", "-3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assertDecimal(t, tt.expected, CoerceAmount(tt.input))
		})
	}
}

func TestRound2(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"0", "0"},
		{"1.234", "1.23"},
		{"1.005", "1.01"},
		{"2.675", "2.68"},
		{"0.125", "0.13"},
		{"-1.005", "-1"},
		{"-0.125", "-0.12"},
		{"-2.5", "-2.5"},
		{"50", "50"},
		{"1449.999", "1450"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assertDecimal(t, tt.expected, Round2(dec(tt.input)))
		})
	}
}

func TestIsNegligible(t *testing.T) {
	assert.True(t, IsNegligible(dec("0")))
	assert.True(t, IsNegligible(dec("0.000000001")))
	assert.True(t, IsNegligible(dec("-0.000000001")))
	assert.False(t, IsNegligible(dec("0.0000000011")))
	assert.False(t, IsNegligible(dec("0.01")))
}
