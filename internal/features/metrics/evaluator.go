package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
)

// evalTimeout bounds a single formula run. Formulas are tiny; anything that
// takes longer is looping.
const evalTimeout = 2 * time.Second

// Evaluate runs a formula with the given variables and returns its numeric
// result. Formulas are plain expressions; the math stdlib module is
// available as math.
func Evaluate(ctx context.Context, formula string, variables map[string]float64) (float64, error) {
	if formula == "" {
		return 0, fmt.Errorf("formula is empty")
	}

	src := "math := import(\"math\")\nresult := (" + formula + ")"
	script := tengo.NewScript([]byte(src))
	script.SetImports(stdlib.GetModuleMap("math"))

	for name, value := range variables {
		if err := script.Add(name, value); err != nil {
			return 0, fmt.Errorf("failed to bind variable %q: %w", name, err)
		}
	}

	compiled, err := script.Compile()
	if err != nil {
		return 0, fmt.Errorf("failed to compile formula: %w", err)
	}

	runCtx, cancel := context.WithTimeout(ctx, evalTimeout)
	defer cancel()
	if err := compiled.RunContext(runCtx); err != nil {
		return 0, fmt.Errorf("failed to run formula: %w", err)
	}

	result := compiled.Get("result")
	switch v := result.Value().(type) {
	case float64:
		return v, nil
	case int64:
		return float64(v), nil
	}
	return 0, fmt.Errorf("formula result is not numeric: %s", result.ValueType())
}
