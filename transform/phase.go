package transform

import (
	"github.com/go-schematron/schematron/ast"
	apperrors "github.com/go-schematron/schematron/errors"
)

// Reserved phase selectors (spec.md §4.2.3, GLOSSARY "Phase").
const (
	PhaseAll     = "#ALL"
	PhaseDefault = "#DEFAULT"
)

// PhaseSelection prunes schema down to the patterns activated by phase: a
// phase id, the literal "#ALL", or the literal "#DEFAULT" (an empty string
// is treated as "#DEFAULT", spec.md §6.1's "null == '#DEFAULT'").
//
// "#ALL" keeps every pattern and leaves Phases untouched. "#DEFAULT"
// substitutes schema.DefaultPhase, falling back to "#ALL" if the schema
// declares none. Any other value must name an existing Phase; the result
// keeps only the patterns that phase activates and only that one Phase
// node (spec.md §4.2.3, §8 property 4).
func PhaseSelection(schema ast.Schema, phase string) (ast.Schema, error) {
	resolved := phase
	if resolved == "" {
		resolved = PhaseDefault
	}
	if resolved == PhaseDefault {
		if schema.DefaultPhase != "" {
			resolved = schema.DefaultPhase
		} else {
			resolved = PhaseAll
		}
	}

	if resolved == PhaseAll {
		return schema, nil
	}

	ph, ok := ast.FindPhaseByID(schema.Phases, resolved)
	if !ok {
		return ast.Schema{}, apperrors.NewUnresolvedReferenceError("phase", resolved)
	}

	active := make(map[string]bool, len(ph.Active))
	for _, a := range ph.Active {
		active[a.PatternID] = true
	}

	patterns := make([]ast.Pattern, 0, len(schema.Patterns))
	for _, p := range schema.Patterns {
		if active[ast.PatternID(p)] {
			patterns = append(patterns, p)
		}
	}

	return schema.WithPatterns(patterns).WithPhases([]ast.Phase{ph}), nil
}
