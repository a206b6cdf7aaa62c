package llm

import (
	"math"
	"testing"
)

func TestLookupCost(t *testing.T) {
	tests := []struct {
		model string
		want  *ModelCost
	}{
		{"gpt-4o-mini", &ModelCost{0.15, 0.6}},
		{"claude-haiku-4-5-20251001", &ModelCost{1, 5}},
		{"google/gemini-2.0-flash-001", &ModelCost{0.1, 0.4}},
		{"openai/gpt-4o", &ModelCost{2.5, 10}},
		{"mock", nil},
	}
	for _, tt := range tests {
		got := LookupCost(tt.model)
		if (got == nil) != (tt.want == nil) {
			t.Errorf("LookupCost(%q) = %v, want %v", tt.model, got, tt.want)
			continue
		}
		if got != nil && *got != *tt.want {
			t.Errorf("LookupCost(%q) = %+v, want %+v", tt.model, *got, *tt.want)
		}
	}
}

func TestModelCost(t *testing.T) {
	c := ModelCost{InputPerMTok: 1, OutputPerMTok: 5}
	got := c.Cost(2_000_000, 100_000)
	if math.Abs(got-2.5) > 1e-9 {
		t.Errorf("Cost = %v, want 2.5", got)
	}
}
