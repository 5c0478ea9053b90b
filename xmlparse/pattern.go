package xmlparse

import (
	"github.com/antchfx/xmlquery"

	"github.com/go-schematron/schematron/ast"
)

// patternParser parses <pattern> tags, dispatching to ConcretePattern,
// AbstractPattern, or InstancePattern based on the abstract/is-a
// attributes (spec.md §3.1's pattern sum type).
type patternParser struct{}

func (patternParser) Parse(el *xmlquery.Node, ctx *ParsingContext) (ast.Node, error) {
	isAbstract := attr(el, "abstract") == "true"
	isA := attr(el, "is-a")

	common := struct {
		id, fpi, icon, see, lang, space string
		documents                       *ast.XPathExpression
	}{
		id:    attr(el, "id"),
		fpi:   attr(el, "fpi"),
		icon:  attr(el, "icon"),
		see:   attr(el, "see"),
		lang:  xmlLang(el),
		space: xmlSpace(el),
	}
	if d := attr(el, "documents"); d != "" {
		x := ast.XPathExpression{Expression: d}
		common.documents = &x
	}

	rules, err := collectRules(el, ctx)
	if err != nil {
		return nil, err
	}
	variables, err := collectVariables(el, ctx)
	if err != nil {
		return nil, err
	}
	paragraphs, err := collectParagraphs(el, ctx)
	if err != nil {
		return nil, err
	}
	title, err := collectTitle(el, ctx)
	if err != nil {
		return nil, err
	}

	includes, err := parseChildTags(el, ctx, "include")
	if err != nil {
		return nil, err
	}
	for _, inc := range includes {
		switch v := inc.(type) {
		case ast.Rule:
			rules = append(rules, v)
		case ast.Variable:
			variables = append(variables, v)
		case ast.Paragraph:
			paragraphs = append(paragraphs, v)
		case ast.Title:
			title = &v
		}
	}

	switch {
	case isAbstract:
		return ast.AbstractPattern{
			Rules: rules, Variables: variables, Paragraphs: paragraphs, Title: title,
			Documents: common.documents, ID: common.id, FPI: common.fpi, Icon: common.icon,
			See: common.see, XMLLang: common.lang, XMLSpace: common.space,
		}, nil
	case isA != "":
		params, err := parseChildTags(el, ctx, "param")
		if err != nil {
			return nil, err
		}
		var pp []ast.PatternParameter
		for _, p := range params {
			pp = append(pp, p.(ast.PatternParameter))
		}
		return ast.InstancePattern{
			AbstractIDRef: isA, Params: pp,
			Documents: common.documents, ID: common.id, FPI: common.fpi, Icon: common.icon,
			See: common.see, XMLLang: common.lang, XMLSpace: common.space,
		}, nil
	default:
		return ast.ConcretePattern{
			Rules: rules, Variables: variables, Paragraphs: paragraphs, Title: title,
			Documents: common.documents, ID: common.id, FPI: common.fpi, Icon: common.icon,
			See: common.see, XMLLang: common.lang, XMLSpace: common.space,
		}, nil
	}
}

func collectRules(el *xmlquery.Node, ctx *ParsingContext) ([]ast.Rule, error) {
	nodes, err := parseChildTags(el, ctx, "rule")
	if err != nil {
		return nil, err
	}
	var out []ast.Rule
	for _, n := range nodes {
		out = append(out, n.(ast.Rule))
	}
	return out, nil
}

func collectVariables(el *xmlquery.Node, ctx *ParsingContext) ([]ast.Variable, error) {
	nodes, err := parseChildTags(el, ctx, "let")
	if err != nil {
		return nil, err
	}
	var out []ast.Variable
	for _, n := range nodes {
		out = append(out, n.(ast.Variable))
	}
	return out, nil
}

func collectParagraphs(el *xmlquery.Node, ctx *ParsingContext) ([]ast.Paragraph, error) {
	nodes, err := parseChildTags(el, ctx, "p")
	if err != nil {
		return nil, err
	}
	var out []ast.Paragraph
	for _, n := range nodes {
		out = append(out, n.(ast.Paragraph))
	}
	return out, nil
}

func collectTitle(el *xmlquery.Node, ctx *ParsingContext) (*ast.Title, error) {
	nodes, err := parseChildTags(el, ctx, "title")
	if err != nil {
		return nil, err
	}
	if len(nodes) == 0 {
		return nil, nil
	}
	t := nodes[0].(ast.Title)
	return &t, nil
}

// patternParameterParser parses <param name="" value=""/>.
type patternParameterParser struct{}

func (patternParameterParser) Parse(el *xmlquery.Node, _ *ParsingContext) (ast.Node, error) {
	return ast.PatternParameter{Name: attr(el, "name"), Value: attr(el, "value")}, nil
}
