package xmlparse

import (
	"fmt"

	"github.com/antchfx/xmlquery"

	"github.com/go-schematron/schematron/ast"
)

// ruleParser parses <rule> tags, dispatching to ConcreteRule, AbstractRule,
// or ExternalRule based on the abstract/context attributes (spec.md §3.1's
// rule sum type): a rule with context="" and no abstract is concrete, a
// rule with abstract="true" is abstract, and a rule with neither is an
// external rule fragment only ever reached via <extends href="">.
type ruleParser struct{}

func (ruleParser) Parse(el *xmlquery.Node, ctx *ParsingContext) (ast.Node, error) {
	isAbstract := attr(el, "abstract") == "true"
	hasContext := hasAttr(el, "context")

	checks, err := collectChecks(el, ctx)
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
	extends, err := collectExtends(el, ctx)
	if err != nil {
		return nil, err
	}

	includes, err := parseChildTags(el, ctx, "include")
	if err != nil {
		return nil, err
	}
	for _, inc := range includes {
		switch v := inc.(type) {
		case ast.Check:
			checks = append(checks, v)
		case ast.Variable:
			variables = append(variables, v)
		case ast.Paragraph:
			paragraphs = append(paragraphs, v)
		case ast.Extends:
			extends = append(extends, v)
		}
	}

	var subject *ast.XPathExpression
	if s := attr(el, "subject"); s != "" {
		x := ast.XPathExpression{Expression: s}
		subject = &x
	}

	id, flag, fpi, icon, role, see := attr(el, "id"), attr(el, "flag"), attr(el, "fpi"), attr(el, "icon"), attr(el, "role"), attr(el, "see")
	lang, space := xmlLang(el), xmlSpace(el)

	switch {
	case isAbstract:
		return ast.AbstractRule{
			Checks: checks, Variables: variables, Paragraphs: paragraphs, Extends: extends,
			ID: id, Flag: flag, FPI: fpi, Icon: icon, Role: role, See: see,
			Subject: subject, XMLLang: lang, XMLSpace: space,
		}, nil
	case !hasContext:
		return ast.ExternalRule{
			Checks: checks, Variables: variables, Paragraphs: paragraphs, Extends: extends,
			ID: id, Flag: flag, FPI: fpi, Icon: icon, Role: role, See: see,
			Subject: subject, XMLLang: lang, XMLSpace: space,
		}, nil
	default:
		return ast.ConcreteRule{
			Checks: checks, Variables: variables, Paragraphs: paragraphs, Extends: extends,
			Context: ast.Query{Query: attr(el, "context")},
			ID:      id, Flag: flag, FPI: fpi, Icon: icon, Role: role, See: see,
			Subject: subject, XMLLang: lang, XMLSpace: space,
		}, nil
	}
}

func collectChecks(el *xmlquery.Node, ctx *ParsingContext) ([]ast.Check, error) {
	var out []ast.Check
	for _, tag := range [2]string{"assert", "report"} {
		nodes, err := parseChildTags(el, ctx, tag)
		if err != nil {
			return nil, err
		}
		for _, n := range nodes {
			out = append(out, n.(ast.Check))
		}
	}
	return out, nil
}

func collectExtends(el *xmlquery.Node, ctx *ParsingContext) ([]ast.Extends, error) {
	nodes, err := parseChildTags(el, ctx, "extends")
	if err != nil {
		return nil, err
	}
	var out []ast.Extends
	for _, n := range nodes {
		out = append(out, n.(ast.Extends))
	}
	return out, nil
}

// extendsParser parses <extends rule="id"/> and <extends href=""/>.
type extendsParser struct{}

func (extendsParser) Parse(el *xmlquery.Node, ctx *ParsingContext) (ast.Node, error) {
	if ref := attr(el, "rule"); ref != "" {
		return ast.ExtendsById{IDRef: ref}, nil
	}

	href := attr(el, "href")
	filePath := resolveHref(href, ctx.BasePath)
	root, err := loadXMLDocument(filePath)
	if err != nil {
		return nil, fmt.Errorf("parsing <extends href=%q>: %w", href, err)
	}

	parser, err := ctx.Factory.GetParser("rule")
	if err != nil {
		return nil, err
	}
	subCtx := &ParsingContext{Factory: ctx.Factory, BasePath: dirOf(filePath)}
	node, err := parser.Parse(root, subCtx)
	if err != nil {
		return nil, err
	}

	rule, ok := node.(ast.ExternalRule)
	if !ok {
		return nil, fmt.Errorf("xmlparse: the rule referenced by <extends href=%q> must have neither a context nor abstract=\"true\"", href)
	}

	return ast.ExtendsExternal{Rule: rule, FilePath: filePath}, nil
}
