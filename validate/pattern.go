package validate

import (
	"github.com/go-schematron/schematron/ast"
	"github.com/go-schematron/schematron/query"
	"github.com/go-schematron/schematron/result"
)

// patternValidator is the pre-parsed form of one <pattern> in a
// phase-reduced schema (spec.md §4.4 Phase A, step 4).
type patternValidator struct {
	pattern   ast.ConcretePattern
	variables []variableEvaluator
	rules     []*ruleValidator
}

func compilePattern(p ast.ConcretePattern, parser query.QueryParser, diagByID map[string]ast.Diagnostic, propByID map[string]ast.Property) (*patternValidator, error) {
	vars, err := compileVariables(p.Variables, parser)
	if err != nil {
		return nil, err
	}

	rules := make([]*ruleValidator, 0, len(p.Rules))
	for _, r := range p.Rules {
		cr, ok := r.(ast.ConcreteRule)
		if !ok {
			continue
		}
		rv, err := compileRule(cr, parser, diagByID, propByID)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rv)
	}

	return &patternValidator{pattern: p, variables: vars, rules: rules}, nil
}

// evaluate runs this pattern's rule validators against node in order,
// implementing rule shadowing (spec.md §4.4's "per-pattern evaluation"):
// the first rule whose context matches fires; any later rule that also
// matches for the same node is suppressed.
func (v *patternValidator) evaluate(ctx query.EvaluationContext, node *query.XMLNode) (result.PatternResult, error) {
	ctx = ctx.WithContextItem(node)

	ctx, err := bindVariables(ctx, v.variables)
	if err != nil {
		return result.PatternResult{}, err
	}

	ruleResults := make([]result.RuleResult, 0, len(v.rules))
	fired := false
	firedByRuleID := ""

	for _, rv := range v.rules {
		matched, err := rv.matches(ctx, node)
		if err != nil {
			return result.PatternResult{}, err
		}

		switch {
		case !matched:
			ruleResults = append(ruleResults, result.SkippedRuleResult{Rl: rv.rule})
		case !fired:
			fr, err := rv.fire(ctx, node)
			if err != nil {
				return result.PatternResult{}, err
			}
			ruleResults = append(ruleResults, fr)
			fired = true
			firedByRuleID = rv.rule.ID
		default:
			ruleResults = append(ruleResults, result.SuppressedRuleResult{Rl: rv.rule, FiredByRuleID: firedByRuleID})
		}
	}

	return result.PatternResult{Pattern: v.pattern, RuleResults: ruleResults}, nil
}
