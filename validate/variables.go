package validate

import (
	"github.com/go-schematron/schematron/ast"
	"github.com/go-schematron/schematron/query"
)

// variableEvaluator is a pre-parsed <let>, either a compiled query
// (QueryVariable) or a literal string (XMLVariable) — spec.md §9's
// resolved Open Question treats XMLVariable substitution as a raw string,
// matching the query-binding layer's opaque string-substitution handling.
type variableEvaluator struct {
	name    string
	query   *dynamicQuery // nil for a literal XMLVariable
	literal string
}

func compileVariables(vars []ast.Variable, parser query.QueryParser) ([]variableEvaluator, error) {
	out := make([]variableEvaluator, 0, len(vars))
	for _, v := range vars {
		switch vv := v.(type) {
		case ast.QueryVariable:
			q, err := newDynamicQuery(vv.Value.Query, parser)
			if err != nil {
				return nil, err
			}
			out = append(out, variableEvaluator{name: vv.Name, query: q})
		case ast.XMLVariable:
			out = append(out, variableEvaluator{name: vv.Name, literal: vv.Value})
		}
	}
	return out, nil
}

func (v variableEvaluator) evaluate(ctx query.EvaluationContext) (string, error) {
	if v.query == nil {
		return v.literal, nil
	}
	res, err := v.query.Evaluate(ctx)
	if err != nil {
		return "", err
	}
	return res.AsString(), nil
}

// bindVariables evaluates each variable in evaluators in order, binding
// each one's result into ctx before evaluating the next — so a later
// variable's query can reference an earlier one of the same scope by name
// (spec.md §4.4 Phase B, pattern-evaluation step 1: "later variables may
// reference earlier ones").
func bindVariables(ctx query.EvaluationContext, evaluators []variableEvaluator) (query.EvaluationContext, error) {
	for _, v := range evaluators {
		val, err := v.evaluate(ctx)
		if err != nil {
			return ctx, err
		}
		ctx = ctx.WithVariables(map[string]interface{}{v.name: val}, true)
	}
	return ctx, nil
}
