package transform

import (
	"testing"

	"github.com/go-schematron/schematron/ast"
)

func twoPatternSchema() ast.Schema {
	return ast.Schema{
		Phases: []ast.Phase{
			{ID: "q", Active: []ast.ActivePhase{{PatternID: "p1"}}},
		},
		Patterns: []ast.Pattern{
			ast.ConcretePattern{ID: "p1"},
			ast.ConcretePattern{ID: "p2"},
		},
	}
}

func TestPhaseSelectionPrunesToNamedPhase(t *testing.T) {
	resolved, err := PhaseSelection(twoPatternSchema(), "q")
	if err != nil {
		t.Fatalf("PhaseSelection failed: %v", err)
	}
	if len(resolved.Patterns) != 1 || ast.PatternID(resolved.Patterns[0]) != "p1" {
		t.Fatalf("expected only p1 to survive, got %+v", resolved.Patterns)
	}
	if len(resolved.Phases) != 1 || resolved.Phases[0].ID != "q" {
		t.Fatalf("expected only the selected phase to remain, got %+v", resolved.Phases)
	}
}

func TestPhaseSelectionAllKeepsEverything(t *testing.T) {
	resolved, err := PhaseSelection(twoPatternSchema(), PhaseAll)
	if err != nil {
		t.Fatalf("PhaseSelection failed: %v", err)
	}
	if len(resolved.Patterns) != 2 {
		t.Errorf("expected #ALL to keep every pattern, got %d", len(resolved.Patterns))
	}
}

func TestPhaseSelectionDefaultFallsBackToAll(t *testing.T) {
	resolved, err := PhaseSelection(twoPatternSchema(), "")
	if err != nil {
		t.Fatalf("PhaseSelection failed: %v", err)
	}
	if len(resolved.Patterns) != 2 {
		t.Errorf("expected an empty phase with no schema default to fall back to #ALL, got %d patterns", len(resolved.Patterns))
	}
}

func TestPhaseSelectionDefaultUsesSchemaDefaultPhase(t *testing.T) {
	schema := twoPatternSchema()
	schema.DefaultPhase = "q"

	resolved, err := PhaseSelection(schema, "")
	if err != nil {
		t.Fatalf("PhaseSelection failed: %v", err)
	}
	if len(resolved.Patterns) != 1 || ast.PatternID(resolved.Patterns[0]) != "p1" {
		t.Fatalf("expected the schema's declared default phase to apply, got %+v", resolved.Patterns)
	}
}

func TestPhaseSelectionUnknownPhase(t *testing.T) {
	if _, err := PhaseSelection(twoPatternSchema(), "nonexistent"); err == nil {
		t.Error("expected an error for an unknown phase id")
	}
}
