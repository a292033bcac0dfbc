package entities

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestRoundToPrecision(t *testing.T) {
	tests := []struct {
		name     string
		qty      string
		rounding string
		expected string
	}{
		{name: "half_rounds_up", qty: "2.5", rounding: "1", expected: "3"},
		{name: "below_half_rounds_down", qty: "2.4", rounding: "1", expected: "2"},
		{name: "hundredth_step", qty: "1.2345", rounding: "0.01", expected: "1.23"},
		{name: "coarse_step", qty: "7", rounding: "5", expected: "5"},
		{name: "zero_step_untouched", qty: "1.2345", rounding: "0", expected: "1.2345"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RoundToPrecision(
				decimal.RequireFromString(tt.qty),
				decimal.RequireFromString(tt.rounding),
			)
			if !got.Equal(decimal.RequireFromString(tt.expected)) {
				t.Errorf("Expected %s, got %s", tt.expected, got)
			}
		})
	}
}

func TestNewBOMLine_Validation(t *testing.T) {
	if _, err := NewBOMLine("", decimal.NewFromInt(1)); err == nil {
		t.Error("Expected an error for an empty component id")
	}
	if _, err := NewBOMLine("WHEEL", decimal.Zero); err == nil {
		t.Error("Expected an error for a zero quantity per unit")
	}
	if _, err := NewBOMLine("WHEEL", decimal.NewFromInt(-2)); err == nil {
		t.Error("Expected an error for a negative quantity per unit")
	}

	line, err := NewBOMLine("WHEEL", decimal.NewFromInt(2))
	if err != nil {
		t.Fatalf("Failed to create BOM line: %v", err)
	}
	if line.Component != "WHEEL" || !line.QtyPer.Equal(decimal.NewFromInt(2)) {
		t.Errorf("Unexpected line %+v", line)
	}
}
