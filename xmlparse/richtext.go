package xmlparse

import (
	"fmt"
	"strings"

	"github.com/antchfx/xmlquery"

	"github.com/go-schematron/schematron/ast"
)

// getRichContent renders el's mixed content (spec.md §3.1's rich text) into
// a sequence of RichTextItems: plain text runs (including inline markup
// like <emph> rendered as their serialized string form, matching
// pyschematron's node_to_str treatment of non-special children), plus
// parsed ValueOf/Name nodes when parseSpecial is true.
func getRichContent(el *xmlquery.Node, ctx *ParsingContext, parseSpecial bool) ([]ast.RichTextItem, error) {
	var items []ast.RichTextItem

	appendText := func(s string) {
		if s == "" {
			return
		}
		items = append(items, ast.Text(s))
	}

	for c := el.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case xmlquery.TextNode, xmlquery.CharDataNode:
			appendText(c.Data)
		case xmlquery.ElementNode:
			if parseSpecial && c.Data == "value-of" {
				parser, err := ctx.Factory.GetParser("value-of")
				if err != nil {
					return nil, err
				}
				node, err := parser.Parse(c, ctx)
				if err != nil {
					return nil, err
				}
				items = append(items, node.(ast.ValueOf))
			} else if parseSpecial && c.Data == "name" {
				parser, err := ctx.Factory.GetParser("name")
				if err != nil {
					return nil, err
				}
				node, err := parser.Parse(c, ctx)
				if err != nil {
					return nil, err
				}
				items = append(items, node.(ast.Name))
			} else {
				appendText(nodeToString(c))
			}
		}
	}

	return items, nil
}

// richTextToString concatenates rich-text items into a plain string,
// rendering ValueOf/Name placeholders literally; used by elements (title,
// paragraph, diagnostic, property, active) whose AST representation is a
// flat string rather than structured rich text.
func richTextToString(items []ast.RichTextItem) string {
	var b strings.Builder
	for _, it := range items {
		switch v := it.(type) {
		case ast.Text:
			b.WriteString(string(v))
		case ast.ValueOf:
			b.WriteString(v.Select.Query)
		case ast.Name:
			if v.Path != nil {
				b.WriteString(v.Path.Query)
			}
		}
	}
	return b.String()
}

// nodeToString renders an element and its descendants back to an XML
// fragment, dropping namespace prefixes and xmlns declarations (matching
// pyschematron's node_to_str default of remove_namespaces=True — see
// DESIGN.md's resolved Open Question on lossy namespace handling in rich
// text). This is used only to stringify inline markup like <emph> nested
// inside documentation text; it never runs on Schematron's own control
// elements.
func nodeToString(n *xmlquery.Node) string {
	var b strings.Builder
	writeNode(&b, n)
	return b.String()
}

func writeNode(b *strings.Builder, n *xmlquery.Node) {
	switch n.Type {
	case xmlquery.TextNode, xmlquery.CharDataNode:
		b.WriteString(n.Data)
		return
	case xmlquery.CommentNode:
		fmt.Fprintf(b, "<!--%s-->", n.Data)
		return
	}

	if n.Type != xmlquery.ElementNode {
		return
	}

	fmt.Fprintf(b, "<%s", n.Data)
	for _, attr := range n.Attr {
		if attr.Name.Space == "xmlns" || attr.Name.Local == "xmlns" {
			continue
		}
		fmt.Fprintf(b, " %s=%q", attr.Name.Local, attr.Value)
	}

	if n.FirstChild == nil {
		b.WriteString("/>")
		return
	}

	b.WriteString(">")
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeNode(b, c)
	}
	fmt.Fprintf(b, "</%s>", n.Data)
}
