package query

import "testing"

func TestEvaluationContextWithNamespacesMerges(t *testing.T) {
	ctx := NewEvaluationContext(nil).WithNamespaces(map[string]string{"a": "urn:a"})
	ctx = ctx.WithNamespaces(map[string]string{"b": "urn:b"})

	if ctx.Namespaces()["a"] != "urn:a" || ctx.Namespaces()["b"] != "urn:b" {
		t.Errorf("expected both namespaces to be present, got %v", ctx.Namespaces())
	}
}

func TestEvaluationContextWithVariablesNoOverwrite(t *testing.T) {
	ctx := NewEvaluationContext(nil).WithVariables(map[string]interface{}{"x": 1}, true)
	ctx = ctx.WithVariables(map[string]interface{}{"x": 2}, false)

	if ctx.Variables()["x"] != 1 {
		t.Errorf("expected first binding of x to survive, got %v", ctx.Variables()["x"])
	}
}

func TestEvaluationContextWithVariablesOverwrite(t *testing.T) {
	ctx := NewEvaluationContext(nil).WithVariables(map[string]interface{}{"x": 1}, true)
	ctx = ctx.WithVariables(map[string]interface{}{"x": 2}, true)

	if ctx.Variables()["x"] != 2 {
		t.Errorf("expected overwrite to replace x, got %v", ctx.Variables()["x"])
	}
}

func TestEvaluationContextWithContextItemIdentitySkip(t *testing.T) {
	root := &XMLNode{}
	ctx := NewEvaluationContext(root)
	same := ctx.WithContextItem(root)

	if same.ContextItem() != root {
		t.Error("expected context item to remain root")
	}
}
