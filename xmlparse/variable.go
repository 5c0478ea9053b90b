package xmlparse

import (
	"github.com/antchfx/xmlquery"

	"github.com/go-schematron/schematron/ast"
)

// variableParser parses <let name="" value=""/> as a QueryVariable, and
// <let name=""><xml/></let> (no value attribute) as an XMLVariable whose
// value is the element's serialized inner XML (spec.md §3.1's variable sum
// type).
type variableParser struct{}

func (variableParser) Parse(el *xmlquery.Node, ctx *ParsingContext) (ast.Node, error) {
	name := attr(el, "name")

	if hasAttr(el, "value") {
		return ast.QueryVariable{Name: name, Value: ast.Query{Query: attr(el, "value")}}, nil
	}

	var b []byte
	for c := el.FirstChild; c != nil; c = c.NextSibling {
		b = append(b, []byte(nodeToStringWithNamespaces(c))...)
	}
	return ast.XMLVariable{Name: name, Value: string(b)}, nil
}

// nodeToStringWithNamespaces is nodeToString's namespace-preserving sibling,
// used only for <let> XML content: pyschematron's VariableParser passes
// remove_namespaces=False here, since an XMLVariable's value is meant to be
// substituted back into query text verbatim.
func nodeToStringWithNamespaces(n *xmlquery.Node) string {
	switch n.Type {
	case xmlquery.TextNode, xmlquery.CharDataNode:
		return n.Data
	case xmlquery.ElementNode:
		var b []byte
		b = append(b, '<')
		b = append(b, []byte(qualifiedName(n))...)
		for _, a := range n.Attr {
			b = append(b, ' ')
			b = append(b, []byte(a.Name.Local)...)
			b = append(b, '=', '"')
			b = append(b, []byte(a.Value)...)
			b = append(b, '"')
		}
		if n.FirstChild == nil {
			b = append(b, '/', '>')
			return string(b)
		}
		b = append(b, '>')
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			b = append(b, []byte(nodeToStringWithNamespaces(c))...)
		}
		b = append(b, '<', '/')
		b = append(b, []byte(qualifiedName(n))...)
		b = append(b, '>')
		return string(b)
	default:
		return ""
	}
}

func qualifiedName(n *xmlquery.Node) string {
	if n.Prefix == "" {
		return n.Data
	}
	return n.Prefix + ":" + n.Data
}
