package domain

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestIsRiskBreach(t *testing.T) {
	tests := []struct {
		name  string
		pnl   string
		limit string
		want  bool
	}{
		{"loss above limit", "-150", "100", true},
		{"loss equal to limit", "-100", "100", false},
		{"loss below limit", "-99.99", "100", false},
		{"profit above limit", "500", "100", false},
		{"zero pnl", "0", "0", false},
		{"any loss with zero limit", "-0.01", "0", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := IsRiskBreach(decimal.RequireFromString(tt.pnl), decimal.RequireFromString(tt.limit))
			if got != tt.want {
				t.Errorf("IsRiskBreach(%s, %s) = %v, want %v", tt.pnl, tt.limit, got, tt.want)
			}
		})
	}
}
