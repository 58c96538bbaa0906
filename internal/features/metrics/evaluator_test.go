package metrics

import (
	"context"
	"math"
	"strings"
	"testing"
)

func TestEvaluate(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name      string
		formula   string
		variables map[string]float64
		want      float64
	}{
		{"arithmetic", "2 + 3 * 4", nil, 14},
		{"variables", "responses / invites * 100", map[string]float64{"responses": 45, "invites": 60}, 75},
		{"nps", "promoters - detractors", map[string]float64{"promoters": 58, "detractors": 12}, 46},
		{"math module", "math.sqrt(x)", map[string]float64{"x": 81}, 9},
		{"division", "total / 4", map[string]float64{"total": 10}, 2.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Evaluate(ctx, tt.formula, tt.variables)
			if err != nil {
				t.Fatalf("Evaluate(%q): %v", tt.formula, err)
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Evaluate(%q) = %v, want %v", tt.formula, got, tt.want)
			}
		})
	}
}

func TestEvaluateErrors(t *testing.T) {
	ctx := context.Background()
	tests := []struct {
		name    string
		formula string
	}{
		{"empty", ""},
		{"syntax error", "2 +* 3"},
		{"unknown variable", "missing + 1"},
		{"non-numeric result", `"hello"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Evaluate(ctx, tt.formula, nil); err == nil {
				t.Errorf("Evaluate(%q) should fail", tt.formula)
			}
		})
	}
}

func TestEvaluateErrorMentionsCompile(t *testing.T) {
	_, err := Evaluate(context.Background(), "2 +* 3", nil)
	if err == nil || !strings.Contains(err.Error(), "compile") {
		t.Errorf("compile failure should say so, got %v", err)
	}
}
