package xmlparse

import (
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/go-schematron/schematron/ast"
)

// checkParser parses <assert> and <report> tags, which share every
// attribute and differ only in polarity (spec.md §4.5).
type checkParser struct {
	isAssert bool
}

func (p checkParser) Parse(el *xmlquery.Node, ctx *ParsingContext) (ast.Node, error) {
	content, err := getRichContent(el, ctx, true)
	if err != nil {
		return nil, err
	}

	var subject *ast.XPathExpression
	if s := attr(el, "subject"); s != "" {
		x := ast.XPathExpression{Expression: s}
		subject = &x
	}

	test := ast.Query{Query: attr(el, "test")}
	diagnostics := splitRefs(attr(el, "diagnostics"))
	properties := splitRefs(attr(el, "properties"))
	id, flag, fpi, icon, role, see := attr(el, "id"), attr(el, "flag"), attr(el, "fpi"), attr(el, "icon"), attr(el, "role"), attr(el, "see")
	lang, space := xmlLang(el), xmlSpace(el)

	if p.isAssert {
		return ast.Assert{
			Test: test, Content: content, Diagnostics: diagnostics, Properties: properties,
			Flag: flag, FPI: fpi, Icon: icon, ID: id, Role: role, See: see,
			Subject: subject, XMLLang: lang, XMLSpace: space,
		}, nil
	}
	return ast.Report{
		Test: test, Content: content, Diagnostics: diagnostics, Properties: properties,
		Flag: flag, FPI: fpi, Icon: icon, ID: id, Role: role, See: see,
		Subject: subject, XMLLang: lang, XMLSpace: space,
	}, nil
}

// splitRefs splits a whitespace-separated attribute value (diagnostics= or
// properties=) into its individual id-refs.
func splitRefs(v string) []string {
	if v == "" {
		return nil
	}
	return strings.Fields(v)
}
