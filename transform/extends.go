package transform

import (
	"fmt"

	"github.com/go-schematron/schematron/ast"
	apperrors "github.com/go-schematron/schematron/errors"
)

// ResolveExtends inlines every <extends> reference into its owning rule,
// then drops all non-concrete rules from every pattern (spec.md §4.2.1).
// Grounded on original_source's ResolveExtends AST visitor: extended
// checks/variables are prepended so a rule's own checks/variables can
// shadow the extended ones by ordinary XPath variable-shadowing semantics.
//
// Applying this transform twice is a no-op (spec.md §8 property 2): once a
// rule's Extends list has been inlined it is cleared, so the second pass
// finds nothing left to resolve.
func ResolveExtends(schema ast.Schema) (ast.Schema, error) {
	abstractByID := indexAbstractRules(schema.Patterns)

	patterns := make([]ast.Pattern, len(schema.Patterns))
	for i, p := range schema.Patterns {
		np, err := resolveExtendsInPattern(p, abstractByID)
		if err != nil {
			return ast.Schema{}, err
		}
		patterns[i] = np
	}
	return schema.WithPatterns(patterns), nil
}

// indexAbstractRules collects every AbstractRule in the schema, keyed by
// id, regardless of which pattern declares it — <extends rule="id"/> may
// reference an abstract rule defined in a different pattern.
func indexAbstractRules(patterns []ast.Pattern) map[string]ast.AbstractRule {
	out := make(map[string]ast.AbstractRule)
	for _, p := range patterns {
		var rules []ast.Rule
		switch pp := p.(type) {
		case ast.ConcretePattern:
			rules = pp.Rules
		case ast.AbstractPattern:
			rules = pp.Rules
		}
		for _, r := range rules {
			if ar, ok := r.(ast.AbstractRule); ok && ar.ID != "" {
				out[ar.ID] = ar
			}
		}
	}
	return out
}

func resolveExtendsInPattern(p ast.Pattern, abstractByID map[string]ast.AbstractRule) (ast.Pattern, error) {
	switch pp := p.(type) {
	case ast.ConcretePattern:
		rules, err := resolveExtendsInRules(pp.Rules, abstractByID)
		if err != nil {
			return nil, err
		}
		pp.Rules = rules
		return pp, nil
	case ast.AbstractPattern:
		rules, err := resolveExtendsInRules(pp.Rules, abstractByID)
		if err != nil {
			return nil, err
		}
		pp.Rules = rules
		return pp, nil
	default:
		return p, nil
	}
}

// resolveExtendsInRules inlines each rule's extends and then keeps only
// ConcreteRule results, dropping the AbstractRule/ExternalRule fragments
// that existed only to be extended (spec.md §4.2.1, last step).
func resolveExtendsInRules(rules []ast.Rule, abstractByID map[string]ast.AbstractRule) ([]ast.Rule, error) {
	out := make([]ast.Rule, 0, len(rules))
	for _, r := range rules {
		resolved, err := resolveExtendsInRule(r, abstractByID)
		if err != nil {
			return nil, err
		}
		if _, ok := resolved.(ast.ConcreteRule); ok {
			out = append(out, resolved)
		}
	}
	return out, nil
}

func resolveExtendsInRule(r ast.Rule, abstractByID map[string]ast.AbstractRule) (ast.Rule, error) {
	extends := ast.RuleExtends(r)
	if len(extends) == 0 {
		return r, nil
	}

	var inheritedChecks []ast.Check
	var inheritedVars []ast.Variable
	visiting := make(map[string]bool)
	for _, e := range extends {
		checks, vars, err := inlineExtends(e, abstractByID, visiting)
		if err != nil {
			return nil, err
		}
		inheritedChecks = append(inheritedChecks, checks...)
		inheritedVars = append(inheritedVars, vars...)
	}

	ownChecks := ast.RuleChecks(r)
	ownVars := ast.RuleVariables(r)

	checks := append(append([]ast.Check{}, inheritedChecks...), ownChecks...)
	vars := append(append([]ast.Variable{}, inheritedVars...), ownVars...)

	return ast.WithRuleChecksAndVariables(r, checks, vars), nil
}

// inlineExtends resolves one <extends> reference to the (checks,
// variables) it contributes, recursing through the target's own extends
// so a chain of abstract rules extending abstract rules flattens fully.
// visiting guards against a cyclic extends chain.
func inlineExtends(e ast.Extends, abstractByID map[string]ast.AbstractRule, visiting map[string]bool) ([]ast.Check, []ast.Variable, error) {
	switch ee := e.(type) {
	case ast.ExtendsById:
		target, ok := abstractByID[ee.IDRef]
		if !ok {
			return nil, nil, apperrors.NewUnresolvedReferenceError("extends", ee.IDRef)
		}
		if visiting[ee.IDRef] {
			return nil, nil, fmt.Errorf("transform: cyclic extends reference through rule %q", ee.IDRef)
		}
		visiting[ee.IDRef] = true
		innerChecks, innerVars, err := inlineTarget(target.Extends, target.Checks, target.Variables, abstractByID, visiting)
		delete(visiting, ee.IDRef)
		return innerChecks, innerVars, err

	case ast.ExtendsExternal:
		return inlineTarget(ee.Rule.Extends, ee.Rule.Checks, ee.Rule.Variables, abstractByID, visiting)

	default:
		return nil, nil, nil
	}
}

func inlineTarget(targetExtends []ast.Extends, ownChecks []ast.Check, ownVars []ast.Variable, abstractByID map[string]ast.AbstractRule, visiting map[string]bool) ([]ast.Check, []ast.Variable, error) {
	var checks []ast.Check
	var vars []ast.Variable
	for _, e := range targetExtends {
		innerChecks, innerVars, err := inlineExtends(e, abstractByID, visiting)
		if err != nil {
			return nil, nil, err
		}
		checks = append(checks, innerChecks...)
		vars = append(vars, innerVars...)
	}
	checks = append(checks, ownChecks...)
	vars = append(vars, ownVars...)
	return checks, vars, nil
}
