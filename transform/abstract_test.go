package transform

import (
	"testing"

	"github.com/go-schematron/schematron/ast"
)

func TestResolveAbstractPatternsExpandsInstance(t *testing.T) {
	schema := ast.Schema{
		Patterns: []ast.Pattern{
			ast.AbstractPattern{
				ID: "base",
				Rules: []ast.Rule{
					ast.ConcreteRule{
						Context: ast.Query{Query: "$ctx"},
						Checks: []ast.Check{
							ast.Assert{Test: ast.Query{Query: "$cond"}, Content: []ast.RichTextItem{ast.Text("M")}},
						},
					},
				},
			},
			ast.InstancePattern{
				ID:            "derived",
				AbstractIDRef: "base",
				Params: []ast.PatternParameter{
					{Name: "ctx", Value: "item"},
					{Name: "cond", Value: "@ok"},
				},
			},
		},
	}

	resolved, err := ResolveAbstractPatterns(schema)
	if err != nil {
		t.Fatalf("ResolveAbstractPatterns failed: %v", err)
	}
	if len(resolved.Patterns) != 1 {
		t.Fatalf("expected the AbstractPattern to be dropped, leaving one ConcretePattern, got %d", len(resolved.Patterns))
	}

	cp, ok := resolved.Patterns[0].(ast.ConcretePattern)
	if !ok {
		t.Fatalf("expected a ConcretePattern, got %T", resolved.Patterns[0])
	}
	if cp.ID != "derived" {
		t.Errorf("expected the instance's own id to be preserved, got %q", cp.ID)
	}

	rule := cp.Rules[0].(ast.ConcreteRule)
	if rule.Context.Query != "item" {
		t.Errorf("expected $ctx expanded to item, got %q", rule.Context.Query)
	}
	if rule.Checks[0].(ast.Assert).Test.Query != "@ok" {
		t.Errorf("expected $cond expanded to @ok, got %q", rule.Checks[0].(ast.Assert).Test.Query)
	}
}

func TestResolveAbstractPatternsLeavesNoAbstracts(t *testing.T) {
	schema := ast.Schema{
		Patterns: []ast.Pattern{
			ast.AbstractPattern{ID: "base", Rules: []ast.Rule{
				ast.ConcreteRule{Context: ast.Query{Query: "$ctx"}},
			}},
			ast.InstancePattern{ID: "d1", AbstractIDRef: "base", Params: []ast.PatternParameter{{Name: "ctx", Value: "a"}}},
			ast.InstancePattern{ID: "d2", AbstractIDRef: "base", Params: []ast.PatternParameter{{Name: "ctx", Value: "b"}}},
			ast.ConcretePattern{ID: "plain"},
		},
	}

	resolved, err := ResolveAbstractPatterns(schema)
	if err != nil {
		t.Fatalf("ResolveAbstractPatterns failed: %v", err)
	}
	for _, p := range resolved.Patterns {
		switch p.(type) {
		case ast.AbstractPattern, ast.InstancePattern:
			t.Fatalf("expected no AbstractPattern/InstancePattern to survive, found %T", p)
		}
	}
	if len(resolved.Patterns) != 3 {
		t.Errorf("expected 3 patterns (two expanded instances + the plain one), got %d", len(resolved.Patterns))
	}
}

func TestResolveAbstractPatternsUnresolvedReference(t *testing.T) {
	schema := ast.Schema{
		Patterns: []ast.Pattern{
			ast.InstancePattern{ID: "d1", AbstractIDRef: "missing"},
		},
	}
	if _, err := ResolveAbstractPatterns(schema); err == nil {
		t.Error("expected an error for an is-a reference to a missing abstract pattern")
	}
}
