package validate

import (
	"github.com/go-schematron/schematron/ast"
	"github.com/go-schematron/schematron/query"
	"github.com/go-schematron/schematron/result"
)

// diagnosticEvaluator is a pre-compiled <diagnostic>, resolved at compile
// time from a check's diagnostics="" id-refs (spec.md §4.4 Phase A, step
// 5).
type diagnosticEvaluator struct {
	diagnostic ast.Diagnostic
	content    []textFragment
}

func (d diagnosticEvaluator) evaluate(ctx query.EvaluationContext) (result.DiagnosticResult, error) {
	text, err := evaluateRichText(d.content, ctx)
	if err != nil {
		return result.DiagnosticResult{}, err
	}
	return result.DiagnosticResult{Diagnostic: d.diagnostic, Text: text}, nil
}

// propertyEvaluator is a pre-compiled <property>, resolved at compile time
// from a check's properties="" id-refs.
type propertyEvaluator struct {
	property ast.Property
	content  []textFragment
}

func (p propertyEvaluator) evaluate(ctx query.EvaluationContext) (result.PropertyResult, error) {
	text, err := evaluateRichText(p.content, ctx)
	if err != nil {
		return result.PropertyResult{}, err
	}
	return result.PropertyResult{Property: p.property, Text: text}, nil
}

// checkValidator is the pre-parsed form of one <assert>/<report> (spec.md
// §4.4 Phase A, step 4/5).
type checkValidator struct {
	check       ast.Check
	test        *dynamicQuery
	content     []textFragment
	subject     *dynamicQuery
	diagnostics []diagnosticEvaluator
	properties  []propertyEvaluator
}

func compileCheck(c ast.Check, parser query.QueryParser, diagByID map[string]ast.Diagnostic, propByID map[string]ast.Property) (*checkValidator, error) {
	test, err := newDynamicQuery(ast.CheckTest(c).Query, parser)
	if err != nil {
		return nil, err
	}

	content, err := compileRichText(ast.CheckContent(c), parser)
	if err != nil {
		return nil, err
	}

	var subject *dynamicQuery
	if s := ast.CheckSubject(c); s != nil {
		subject, err = newDynamicQuery(s.Expression, parser)
		if err != nil {
			return nil, err
		}
	}

	diags := make([]diagnosticEvaluator, 0, len(ast.CheckDiagnostics(c)))
	for _, ref := range ast.CheckDiagnostics(c) {
		d, ok := diagByID[ref]
		if !ok {
			continue
		}
		frags, err := compileRichText(d.Content, parser)
		if err != nil {
			return nil, err
		}
		diags = append(diags, diagnosticEvaluator{diagnostic: d, content: frags})
	}

	props := make([]propertyEvaluator, 0, len(ast.CheckProperties(c)))
	for _, ref := range ast.CheckProperties(c) {
		p, ok := propByID[ref]
		if !ok {
			continue
		}
		frags, err := compileRichText(p.Content, parser)
		if err != nil {
			return nil, err
		}
		props = append(props, propertyEvaluator{property: p, content: frags})
	}

	return &checkValidator{
		check:       c,
		test:        test,
		content:     content,
		subject:     subject,
		diagnostics: diags,
		properties:  props,
	}, nil
}

// evaluate runs this check against ctx, whose context item must already be
// set to the node under evaluation (spec.md §4.4 "per-check evaluation").
func (v *checkValidator) evaluate(ctx query.EvaluationContext) (result.CheckResult, error) {
	testResult, err := v.test.Evaluate(ctx)
	if err != nil {
		return result.CheckResult{}, err
	}

	text, err := evaluateRichText(v.content, ctx)
	if err != nil {
		return result.CheckResult{}, err
	}

	subjectNode, err := evaluateSubject(v.subject, ctx)
	if err != nil {
		return result.CheckResult{}, err
	}

	diags := make([]result.DiagnosticResult, 0, len(v.diagnostics))
	for _, d := range v.diagnostics {
		dr, err := d.evaluate(ctx)
		if err != nil {
			return result.CheckResult{}, err
		}
		diags = append(diags, dr)
	}

	props := make([]result.PropertyResult, 0, len(v.properties))
	for _, p := range v.properties {
		pr, err := p.evaluate(ctx)
		if err != nil {
			return result.CheckResult{}, err
		}
		props = append(props, pr)
	}

	return result.CheckResult{
		Check:       v.check,
		TestResult:  testResult.AsBoolean(),
		Text:        text,
		SubjectNode: subjectNode,
		Properties:  props,
		Diagnostics: diags,
	}, nil
}

// evaluateSubject resolves an optional subject XPath (spec.md §4.6):
// evaluate against ctx, take the first node of a node-set result, wrap it
// via its already-computed canonical path. A missing subject or an empty
// result yields no subject node.
func evaluateSubject(q *dynamicQuery, ctx query.EvaluationContext) (*query.XMLNode, error) {
	if q == nil {
		return nil, nil
	}
	res, err := q.Evaluate(ctx)
	if err != nil {
		return nil, err
	}
	if !res.IsNodeSet() || len(res.Nodes()) == 0 {
		return nil, nil
	}
	return res.Nodes()[0], nil
}
