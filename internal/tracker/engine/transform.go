package engine

import (
	"fmt"

	"github.com/expr-lang/expr"
)

// Transforms are closed expressions evaluated with expr, replacing the
// arbitrary code evaluation of earlier revisions. The environment exposes
// the raw value, the capture groups (index 0 = whole match) and the full
// raw text; builtins like int() and float() cover numeric parsing.
func runTransform(src string, env map[string]any) (any, error) {
	program, err := expr.Compile(src)
	if err != nil {
		return nil, fmt.Errorf("invalid transform expression: %w", err)
	}
	out, err := expr.Run(program, env)
	if err != nil {
		return nil, fmt.Errorf("transform evaluation failed: %w", err)
	}
	return out, nil
}

// transformEnv builds the expression scope. value is a string for
// capture-based mappings and an int for counts; groups is empty for
// counts, which never depend on a primary match.
func transformEnv(value any, groups []string, text string) map[string]any {
	if groups == nil {
		groups = []string{}
	}
	return map[string]any{
		"value":  value,
		"groups": groups,
		"text":   text,
	}
}
