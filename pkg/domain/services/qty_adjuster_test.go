package services

import (
	"testing"

	"github.com/shopspring/decimal"

	"mrp-multilevel/pkg/domain/entities"
)

func TestAdjustToOrder(t *testing.T) {
	tests := []struct {
		name      string
		policy    entities.PlanningPolicy
		requested string
		expected  string
	}{
		{
			name:      "no_rules_returns_request",
			policy:    entities.PlanningPolicy{},
			requested: "7",
			expected:  "7",
		},
		{
			name: "raised_to_minimum",
			policy: entities.PlanningPolicy{
				MinOrderQty: decimal.NewFromInt(10),
			},
			requested: "3",
			expected:  "10",
		},
		{
			name: "capped_at_maximum",
			policy: entities.PlanningPolicy{
				MaxOrderQty: decimal.NewFromInt(25),
			},
			requested: "40",
			expected:  "25",
		},
		{
			name: "rounded_up_to_multiple",
			policy: entities.PlanningPolicy{
				QtyMultiple: decimal.NewFromInt(12),
			},
			requested: "30",
			expected:  "36",
		},
		{
			name: "exact_multiple_unchanged",
			policy: entities.PlanningPolicy{
				QtyMultiple: decimal.NewFromInt(12),
			},
			requested: "24",
			expected:  "24",
		},
		{
			name: "minimum_then_multiple",
			policy: entities.PlanningPolicy{
				MinOrderQty: decimal.NewFromInt(10),
				QtyMultiple: decimal.NewFromInt(4),
			},
			requested: "1",
			expected:  "12",
		},
		{
			name: "fractional_multiple",
			policy: entities.PlanningPolicy{
				QtyMultiple: decimal.RequireFromString("0.5"),
			},
			requested: "1.2",
			expected:  "1.5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AdjustToOrder(tt.policy, decimal.RequireFromString(tt.requested))
			if !got.Equal(decimal.RequireFromString(tt.expected)) {
				t.Errorf("Expected %s, got %s", tt.expected, got)
			}
		})
	}
}
