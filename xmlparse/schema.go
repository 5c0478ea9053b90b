package xmlparse

import (
	"github.com/antchfx/xmlquery"

	"github.com/go-schematron/schematron/ast"
)

// schemaParser parses the <schema> root element.
type schemaParser struct{}

func (schemaParser) Parse(el *xmlquery.Node, ctx *ParsingContext) (ast.Node, error) {
	s := ast.Schema{
		DefaultPhase:  attr(el, "defaultPhase"),
		FPI:           attr(el, "fpi"),
		Icon:          attr(el, "icon"),
		ID:            attr(el, "id"),
		QueryBinding:  attr(el, "queryBinding"),
		SchemaVersion: attr(el, "schemaVersion"),
		See:           attr(el, "see"),
		XMLLang:       xmlLang(el),
		XMLSpace:      xmlSpace(el),
	}

	if err := collectInto(el, ctx, "pattern", func(n ast.Node) { s.Patterns = append(s.Patterns, n.(ast.Pattern)) }); err != nil {
		return nil, err
	}
	if err := collectInto(el, ctx, "ns", func(n ast.Node) { s.Namespaces = append(s.Namespaces, n.(ast.Namespace)) }); err != nil {
		return nil, err
	}
	if err := collectInto(el, ctx, "phase", func(n ast.Node) { s.Phases = append(s.Phases, n.(ast.Phase)) }); err != nil {
		return nil, err
	}
	if err := collectInto(el, ctx, "diagnostics", func(n ast.Node) { s.Diagnostics = append(s.Diagnostics, n.(ast.Diagnostics)) }); err != nil {
		return nil, err
	}
	if err := collectInto(el, ctx, "properties", func(n ast.Node) { s.Properties = append(s.Properties, n.(ast.Properties)) }); err != nil {
		return nil, err
	}
	if err := collectInto(el, ctx, "p", func(n ast.Node) { s.Paragraphs = append(s.Paragraphs, n.(ast.Paragraph)) }); err != nil {
		return nil, err
	}
	if err := collectInto(el, ctx, "let", func(n ast.Node) { s.Variables = append(s.Variables, n.(ast.Variable)) }); err != nil {
		return nil, err
	}

	titles, err := parseChildTags(el, ctx, "title")
	if err != nil {
		return nil, err
	}
	if len(titles) > 0 {
		t := titles[0].(ast.Title)
		s.Title = &t
	}

	includes, err := parseChildTags(el, ctx, "include")
	if err != nil {
		return nil, err
	}
	for _, inc := range includes {
		switch v := inc.(type) {
		case ast.Pattern:
			s.Patterns = append(s.Patterns, v)
		case ast.Namespace:
			s.Namespaces = append(s.Namespaces, v)
		case ast.Phase:
			s.Phases = append(s.Phases, v)
		case ast.Diagnostics:
			s.Diagnostics = append(s.Diagnostics, v)
		case ast.Properties:
			s.Properties = append(s.Properties, v)
		case ast.Paragraph:
			s.Paragraphs = append(s.Paragraphs, v)
		case ast.Variable:
			s.Variables = append(s.Variables, v)
		case ast.Title:
			s.Title = &v
		}
	}

	return s, nil
}

// collectInto parses every direct tag-named child of el and invokes add for
// each resulting node, in document order.
func collectInto(el *xmlquery.Node, ctx *ParsingContext, tag string, add func(ast.Node)) error {
	nodes, err := parseChildTags(el, ctx, tag)
	if err != nil {
		return err
	}
	for _, n := range nodes {
		add(n)
	}
	return nil
}

// namespaceParser parses <ns prefix="" uri=""/>.
type namespaceParser struct{}

func (namespaceParser) Parse(el *xmlquery.Node, _ *ParsingContext) (ast.Node, error) {
	return ast.Namespace{Prefix: attr(el, "prefix"), URI: attr(el, "uri")}, nil
}
