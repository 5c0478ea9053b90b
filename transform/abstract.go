package transform

import (
	"github.com/go-schematron/schematron/ast"
	apperrors "github.com/go-schematron/schematron/errors"
)

// ResolveAbstractPatterns replaces every InstancePattern with a
// ConcretePattern built by macro-expanding its referenced AbstractPattern
// against the instance's parameters, and drops every remaining
// AbstractPattern (spec.md §4.2.2). Must run after ResolveExtends so an
// abstract pattern's rules have already had their own <extends> inlined
// and are plain ConcreteRule values by the time they are macro-expanded.
func ResolveAbstractPatterns(schema ast.Schema) (ast.Schema, error) {
	patterns := make([]ast.Pattern, 0, len(schema.Patterns))
	for _, p := range schema.Patterns {
		switch pp := p.(type) {
		case ast.InstancePattern:
			abstractPattern, ok := ast.FindAbstractPatternByID(schema.Patterns, pp.AbstractIDRef)
			if !ok {
				return ast.Schema{}, apperrors.NewUnresolvedReferenceError("pattern is-a", pp.AbstractIDRef)
			}
			macros := make(map[string]string, len(pp.Params))
			for _, param := range pp.Params {
				macros["$"+param.Name] = param.Value
			}
			patterns = append(patterns, expandAbstractPattern(abstractPattern, macros, pp.ID))
		case ast.AbstractPattern:
			// Dropped: exists only as a template for InstancePattern.
		default:
			patterns = append(patterns, p)
		}
	}
	return schema.WithPatterns(patterns), nil
}

// expandAbstractPattern walks every string field of ap, replacing $name
// macro references per the single-pass word-boundary rule in macro.go, and
// returns the result as a ConcretePattern carrying the instance's own id
// (spec.md §4.2.2: "preserving the instance's id").
func expandAbstractPattern(ap ast.AbstractPattern, macros map[string]string, instanceID string) ast.ConcretePattern {
	rules := make([]ast.Rule, len(ap.Rules))
	for i, r := range ap.Rules {
		rules[i] = expandRule(r, macros)
	}
	variables := make([]ast.Variable, len(ap.Variables))
	for i, v := range ap.Variables {
		variables[i] = expandVariable(v, macros)
	}
	paragraphs := make([]ast.Paragraph, len(ap.Paragraphs))
	for i, p := range ap.Paragraphs {
		paragraphs[i] = expandParagraph(p, macros)
	}

	var title *ast.Title
	if ap.Title != nil {
		t := ast.Title{Content: macroExpand(ap.Title.Content, macros)}
		title = &t
	}

	var documents *ast.XPathExpression
	if ap.Documents != nil {
		d := expandXPathExpression(*ap.Documents, macros)
		documents = &d
	}

	return ast.ConcretePattern{
		Rules:      rules,
		Variables:  variables,
		Paragraphs: paragraphs,
		Title:      title,
		Documents:  documents,
		ID:         instanceID,
		FPI:        macroExpand(ap.FPI, macros),
		Icon:       macroExpand(ap.Icon, macros),
		See:        macroExpand(ap.See, macros),
		XMLLang:    ap.XMLLang,
		XMLSpace:   ap.XMLSpace,
	}
}

func expandRule(r ast.Rule, macros map[string]string) ast.Rule {
	cr, ok := r.(ast.ConcreteRule)
	if !ok {
		// Should not occur post-ResolveExtends, but pass through unchanged
		// rather than panic on a malformed pipeline invocation.
		return r
	}

	checks := make([]ast.Check, len(cr.Checks))
	for i, c := range cr.Checks {
		checks[i] = expandCheck(c, macros)
	}
	variables := make([]ast.Variable, len(cr.Variables))
	for i, v := range cr.Variables {
		variables[i] = expandVariable(v, macros)
	}
	paragraphs := make([]ast.Paragraph, len(cr.Paragraphs))
	for i, p := range cr.Paragraphs {
		paragraphs[i] = expandParagraph(p, macros)
	}

	cr.Checks = checks
	cr.Variables = variables
	cr.Paragraphs = paragraphs
	cr.Context = expandQuery(cr.Context, macros)
	if cr.Subject != nil {
		s := expandXPathExpression(*cr.Subject, macros)
		cr.Subject = &s
	}
	cr.Flag = macroExpand(cr.Flag, macros)
	cr.FPI = macroExpand(cr.FPI, macros)
	cr.Icon = macroExpand(cr.Icon, macros)
	cr.Role = macroExpand(cr.Role, macros)
	cr.See = macroExpand(cr.See, macros)
	return cr
}

func expandCheck(c ast.Check, macros map[string]string) ast.Check {
	content := expandRichText(ast.CheckContent(c), macros)

	switch cc := c.(type) {
	case ast.Assert:
		cc.Test = expandQuery(cc.Test, macros)
		cc.Content = content
		cc.Flag = macroExpand(cc.Flag, macros)
		cc.FPI = macroExpand(cc.FPI, macros)
		cc.Icon = macroExpand(cc.Icon, macros)
		cc.Role = macroExpand(cc.Role, macros)
		cc.See = macroExpand(cc.See, macros)
		if cc.Subject != nil {
			s := expandXPathExpression(*cc.Subject, macros)
			cc.Subject = &s
		}
		return cc
	case ast.Report:
		cc.Test = expandQuery(cc.Test, macros)
		cc.Content = content
		cc.Flag = macroExpand(cc.Flag, macros)
		cc.FPI = macroExpand(cc.FPI, macros)
		cc.Icon = macroExpand(cc.Icon, macros)
		cc.Role = macroExpand(cc.Role, macros)
		cc.See = macroExpand(cc.See, macros)
		if cc.Subject != nil {
			s := expandXPathExpression(*cc.Subject, macros)
			cc.Subject = &s
		}
		return cc
	default:
		return c
	}
}

func expandVariable(v ast.Variable, macros map[string]string) ast.Variable {
	switch vv := v.(type) {
	case ast.QueryVariable:
		vv.Value = expandQuery(vv.Value, macros)
		return vv
	case ast.XMLVariable:
		vv.Value = macroExpand(vv.Value, macros)
		return vv
	default:
		return v
	}
}

func expandParagraph(p ast.Paragraph, macros map[string]string) ast.Paragraph {
	p.Content = macroExpand(p.Content, macros)
	p.Class = macroExpand(p.Class, macros)
	p.Icon = macroExpand(p.Icon, macros)
	return p
}

func expandRichText(items []ast.RichTextItem, macros map[string]string) []ast.RichTextItem {
	if items == nil {
		return nil
	}
	out := make([]ast.RichTextItem, len(items))
	for i, it := range items {
		switch v := it.(type) {
		case ast.Text:
			out[i] = ast.Text(macroExpand(string(v), macros))
		case ast.ValueOf:
			v.Select = expandQuery(v.Select, macros)
			out[i] = v
		case ast.Name:
			if v.Path != nil {
				p := expandQuery(*v.Path, macros)
				v.Path = &p
			}
			out[i] = v
		default:
			out[i] = it
		}
	}
	return out
}

func expandQuery(q ast.Query, macros map[string]string) ast.Query {
	return ast.Query{Query: macroExpand(q.Query, macros)}
}

func expandXPathExpression(x ast.XPathExpression, macros map[string]string) ast.XPathExpression {
	return ast.XPathExpression{Expression: macroExpand(x.Expression, macros)}
}
