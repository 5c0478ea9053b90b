package transform

import (
	"testing"

	"github.com/go-schematron/schematron/ast"
)

func schemaWithExtends() ast.Schema {
	base := ast.AbstractRule{
		ID: "base-rule",
		Checks: []ast.Check{
			ast.Assert{Test: ast.Query{Query: "@id"}, Content: []ast.RichTextItem{ast.Text("needs id")}},
		},
	}
	concrete := ast.ConcreteRule{
		Context: ast.Query{Query: "item"},
		Extends: []ast.Extends{ast.ExtendsById{IDRef: "base-rule"}},
		Checks: []ast.Check{
			ast.Assert{Test: ast.Query{Query: "@ok"}, Content: []ast.RichTextItem{ast.Text("needs ok")}},
		},
	}
	return ast.Schema{
		Patterns: []ast.Pattern{
			ast.ConcretePattern{ID: "p1", Rules: []ast.Rule{base, concrete}},
		},
	}
}

func TestResolveExtendsInlinesInheritedContentFirst(t *testing.T) {
	resolved, err := ResolveExtends(schemaWithExtends())
	if err != nil {
		t.Fatalf("ResolveExtends failed: %v", err)
	}

	pattern := resolved.Patterns[0].(ast.ConcretePattern)
	if len(pattern.Rules) != 1 {
		t.Fatalf("expected the AbstractRule to be dropped, leaving one rule, got %d", len(pattern.Rules))
	}

	rule := pattern.Rules[0].(ast.ConcreteRule)
	if len(rule.Checks) != 2 {
		t.Fatalf("expected two checks (inherited + own), got %d", len(rule.Checks))
	}
	if rule.Checks[0].(ast.Assert).Test.Query != "@id" {
		t.Errorf("expected the inherited check first, got %+v", rule.Checks[0])
	}
	if rule.Checks[1].(ast.Assert).Test.Query != "@ok" {
		t.Errorf("expected the rule's own check last, got %+v", rule.Checks[1])
	}
	if len(rule.Extends) != 0 {
		t.Errorf("expected Extends to be cleared after resolution, got %+v", rule.Extends)
	}
}

func TestResolveExtendsIdempotent(t *testing.T) {
	once, err := ResolveExtends(schemaWithExtends())
	if err != nil {
		t.Fatalf("first ResolveExtends failed: %v", err)
	}
	twice, err := ResolveExtends(once)
	if err != nil {
		t.Fatalf("second ResolveExtends failed: %v", err)
	}

	onceRule := once.Patterns[0].(ast.ConcretePattern).Rules[0].(ast.ConcreteRule)
	twiceRule := twice.Patterns[0].(ast.ConcretePattern).Rules[0].(ast.ConcreteRule)
	if len(onceRule.Checks) != len(twiceRule.Checks) {
		t.Fatalf("applying ResolveExtends twice changed the check count: %d vs %d", len(onceRule.Checks), len(twiceRule.Checks))
	}
	for i := range onceRule.Checks {
		if ast.CheckTest(onceRule.Checks[i]).Query != ast.CheckTest(twiceRule.Checks[i]).Query {
			t.Errorf("check %d differs between one and two applications", i)
		}
	}
}

func TestResolveExtendsUnresolvedReference(t *testing.T) {
	schema := ast.Schema{
		Patterns: []ast.Pattern{
			ast.ConcretePattern{ID: "p1", Rules: []ast.Rule{
				ast.ConcreteRule{Context: ast.Query{Query: "item"}, Extends: []ast.Extends{ast.ExtendsById{IDRef: "missing"}}},
			}},
		},
	}
	if _, err := ResolveExtends(schema); err == nil {
		t.Error("expected an error for an extends reference to a missing rule id")
	}
}

func TestResolveExtendsCyclicDetection(t *testing.T) {
	ruleA := ast.AbstractRule{ID: "a", Extends: []ast.Extends{ast.ExtendsById{IDRef: "b"}}}
	ruleB := ast.AbstractRule{ID: "b", Extends: []ast.Extends{ast.ExtendsById{IDRef: "a"}}}
	concrete := ast.ConcreteRule{Context: ast.Query{Query: "item"}, Extends: []ast.Extends{ast.ExtendsById{IDRef: "a"}}}

	schema := ast.Schema{
		Patterns: []ast.Pattern{
			ast.ConcretePattern{ID: "p1", Rules: []ast.Rule{ruleA, ruleB, concrete}},
		},
	}
	if _, err := ResolveExtends(schema); err == nil {
		t.Error("expected an error for a cyclic extends chain")
	}
}
