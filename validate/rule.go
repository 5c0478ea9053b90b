package validate

import (
	"github.com/go-schematron/schematron/ast"
	"github.com/go-schematron/schematron/query"
	"github.com/go-schematron/schematron/result"
)

// ruleValidator is the pre-parsed form of one <rule context="..."> in a
// phase-reduced schema (spec.md §4.4 Phase A, step 3).
type ruleValidator struct {
	rule      ast.ConcreteRule
	context   *dynamicQuery
	variables []variableEvaluator
	checks    []*checkValidator
	subject   *dynamicQuery
}

func compileRule(r ast.ConcreteRule, parser query.QueryParser, diagByID map[string]ast.Diagnostic, propByID map[string]ast.Property) (*ruleValidator, error) {
	ctxQuery, err := newDynamicQuery(r.Context.Query, parser)
	if err != nil {
		return nil, err
	}

	vars, err := compileVariables(r.Variables, parser)
	if err != nil {
		return nil, err
	}

	checks := make([]*checkValidator, 0, len(r.Checks))
	for _, c := range r.Checks {
		cv, err := compileCheck(c, parser, diagByID, propByID)
		if err != nil {
			return nil, err
		}
		checks = append(checks, cv)
	}

	var subject *dynamicQuery
	if r.Subject != nil {
		subject, err = newDynamicQuery(r.Subject.Expression, parser)
		if err != nil {
			return nil, err
		}
	}

	return &ruleValidator{
		rule:      r,
		context:   ctxQuery,
		variables: vars,
		checks:    checks,
		subject:   subject,
	}, nil
}

// matches tests whether node satisfies this rule's context (spec.md §4.4's
// "parent-plus-membership" test): the context query is evaluated against
// node's parent (the owning element, for an attribute), and node matches
// iff it appears in the returned node-set. Matching against the parent
// rather than the node itself is required because a context query like
// "book" is a child-axis step, meaningless evaluated directly against a
// book element's own context.
func (v *ruleValidator) matches(ctx query.EvaluationContext, node *query.XMLNode) (bool, error) {
	parent := query.ParentContextItem(node)
	if parent == nil {
		return false, nil
	}
	res, err := v.context.Evaluate(ctx.WithContextItem(parent))
	if err != nil {
		return false, err
	}
	if !res.IsNodeSet() {
		return false, nil
	}
	for _, n := range res.Nodes() {
		if query.SameNode(n, node) {
			return true, nil
		}
	}
	return false, nil
}

// fire runs this rule's variables and checks against node, having already
// confirmed a context match (spec.md §4.4 Phase B, per-rule evaluation
// steps 2-4).
func (v *ruleValidator) fire(ctx query.EvaluationContext, node *query.XMLNode) (result.FiredRuleResult, error) {
	ctx = ctx.WithContextItem(node)

	ctx, err := bindVariables(ctx, v.variables)
	if err != nil {
		return result.FiredRuleResult{}, err
	}

	subjectNode, err := evaluateSubject(v.subject, ctx)
	if err != nil {
		return result.FiredRuleResult{}, err
	}

	checkResults := make([]result.CheckResult, 0, len(v.checks))
	for _, c := range v.checks {
		cr, err := c.evaluate(ctx)
		if err != nil {
			return result.FiredRuleResult{}, err
		}
		checkResults = append(checkResults, cr)
	}

	return result.FiredRuleResult{
		Rl:           v.rule,
		CheckResults: checkResults,
		SubjectNode:  subjectNode,
	}, nil
}
