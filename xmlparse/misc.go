package xmlparse

import (
	"github.com/antchfx/xmlquery"

	"github.com/go-schematron/schematron/ast"
)

// nameParser parses <name path=""/>, the "what element am I in" rich-text
// placeholder.
type nameParser struct{}

func (nameParser) Parse(el *xmlquery.Node, _ *ParsingContext) (ast.Node, error) {
	if p := attr(el, "path"); p != "" {
		q := ast.Query{Query: p}
		return ast.Name{Path: &q}, nil
	}
	return ast.Name{}, nil
}

// valueOfParser parses <value-of select=""/>.
type valueOfParser struct{}

func (valueOfParser) Parse(el *xmlquery.Node, _ *ParsingContext) (ast.Node, error) {
	return ast.ValueOf{Select: ast.Query{Query: attr(el, "select")}}, nil
}

// titleParser parses <title>.
type titleParser struct{}

func (titleParser) Parse(el *xmlquery.Node, ctx *ParsingContext) (ast.Node, error) {
	content, err := getRichContent(el, ctx, true)
	if err != nil {
		return nil, err
	}
	return ast.Title{Content: richTextToString(content)}, nil
}

// paragraphParser parses <p>.
type paragraphParser struct{}

func (paragraphParser) Parse(el *xmlquery.Node, ctx *ParsingContext) (ast.Node, error) {
	content, err := getRichContent(el, ctx, false)
	if err != nil {
		return nil, err
	}
	return ast.Paragraph{
		Content:  richTextToString(content),
		Class:    attr(el, "class"),
		Icon:     attr(el, "icon"),
		ID:       attr(el, "id"),
		XMLLang:  xmlLang(el),
		XMLSpace: xmlSpace(el),
	}, nil
}

// phaseParser parses <phase id="">.
type phaseParser struct{}

func (phaseParser) Parse(el *xmlquery.Node, ctx *ParsingContext) (ast.Node, error) {
	p := ast.Phase{
		ID:       attr(el, "id"),
		FPI:      attr(el, "fpi"),
		Icon:     attr(el, "icon"),
		See:      attr(el, "see"),
		XMLLang:  xmlLang(el),
		XMLSpace: xmlSpace(el),
	}

	actives, err := parseChildTags(el, ctx, "active")
	if err != nil {
		return nil, err
	}
	for _, n := range actives {
		p.Active = append(p.Active, n.(ast.ActivePhase))
	}

	variables, err := collectVariables(el, ctx)
	if err != nil {
		return nil, err
	}
	p.Variables = variables

	paragraphs, err := collectParagraphs(el, ctx)
	if err != nil {
		return nil, err
	}
	p.Paragraphs = paragraphs

	includes, err := parseChildTags(el, ctx, "include")
	if err != nil {
		return nil, err
	}
	for _, inc := range includes {
		switch v := inc.(type) {
		case ast.ActivePhase:
			p.Active = append(p.Active, v)
		case ast.Variable:
			p.Variables = append(p.Variables, v)
		case ast.Paragraph:
			p.Paragraphs = append(p.Paragraphs, v)
		}
	}

	return p, nil
}

// activePhaseParser parses <active pattern=""/>.
type activePhaseParser struct{}

func (activePhaseParser) Parse(el *xmlquery.Node, ctx *ParsingContext) (ast.Node, error) {
	content, err := getRichContent(el, ctx, false)
	if err != nil {
		return nil, err
	}
	return ast.ActivePhase{PatternID: attr(el, "pattern"), Content: richTextToString(content)}, nil
}

// diagnosticsParser parses <diagnostics>.
type diagnosticsParser struct{}

func (diagnosticsParser) Parse(el *xmlquery.Node, ctx *ParsingContext) (ast.Node, error) {
	nodes, err := parseChildTags(el, ctx, "diagnostic")
	if err != nil {
		return nil, err
	}
	var diags []ast.Diagnostic
	for _, n := range nodes {
		diags = append(diags, n.(ast.Diagnostic))
	}

	includes, err := parseChildTags(el, ctx, "include")
	if err != nil {
		return nil, err
	}
	for _, inc := range includes {
		if d, ok := inc.(ast.Diagnostic); ok {
			diags = append(diags, d)
		}
	}

	return ast.Diagnostics{Diagnostics: diags}, nil
}

// diagnosticParser parses <diagnostic id="">.
type diagnosticParser struct{}

func (diagnosticParser) Parse(el *xmlquery.Node, ctx *ParsingContext) (ast.Node, error) {
	content, err := getRichContent(el, ctx, true)
	if err != nil {
		return nil, err
	}
	return ast.Diagnostic{
		Content:  content,
		ID:       attr(el, "id"),
		FPI:      attr(el, "fpi"),
		Icon:     attr(el, "icon"),
		Role:     attr(el, "role"),
		See:      attr(el, "see"),
		XMLLang:  xmlLang(el),
		XMLSpace: xmlSpace(el),
	}, nil
}

// propertiesParser parses <properties>.
type propertiesParser struct{}

func (propertiesParser) Parse(el *xmlquery.Node, ctx *ParsingContext) (ast.Node, error) {
	nodes, err := parseChildTags(el, ctx, "property")
	if err != nil {
		return nil, err
	}
	var props []ast.Property
	for _, n := range nodes {
		props = append(props, n.(ast.Property))
	}

	includes, err := parseChildTags(el, ctx, "include")
	if err != nil {
		return nil, err
	}
	for _, inc := range includes {
		if p, ok := inc.(ast.Property); ok {
			props = append(props, p)
		}
	}

	return ast.Properties{Properties: props}, nil
}

// propertyParser parses <property id="">.
type propertyParser struct{}

func (propertyParser) Parse(el *xmlquery.Node, ctx *ParsingContext) (ast.Node, error) {
	content, err := getRichContent(el, ctx, true)
	if err != nil {
		return nil, err
	}
	return ast.Property{
		Content: content,
		ID:      attr(el, "id"),
		Role:    attr(el, "role"),
		Scheme:  attr(el, "scheme"),
	}, nil
}
