package query

import (
	"fmt"
	"io"
	"os"

	"github.com/antchfx/xmlquery"
)

// ParseDocumentFile reads and parses the XML document at path, returning
// its document node (not the root element) — the validator's evaluation
// context is rooted at the document node, matching antchfx/xpath's own
// navigator-from-document convention.
func ParseDocumentFile(path string) (*xmlquery.Node, error) {
	f, err := os.Open(path) //nolint:gosec // path supplied by the caller (CLI arg or API call)
	if err != nil {
		return nil, fmt.Errorf("query: opening %s: %w", path, err)
	}
	defer f.Close()
	return ParseDocument(f)
}

// ParseDocument parses r as an XML document, returning its document node.
func ParseDocument(r io.Reader) (*xmlquery.Node, error) {
	doc, err := xmlquery.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("query: parsing XML document: %w", err)
	}
	return doc, nil
}

// IterateDocument walks doc in document order and wraps every element,
// attribute, comment, and processing-instruction node as an XMLNode,
// skipping text/CDATA nodes and the document node itself (spec.md §4.4
// Phase B: "iterate lazily over all nodes... skip text nodes. Skip the
// top-level node with no parent"). Each element is immediately followed
// by its own attribute nodes, in attribute-declaration order, before
// descending into its children.
func IterateDocument(doc *xmlquery.Node) []*XMLNode {
	var out []*XMLNode
	var walk func(n *xmlquery.Node)
	walk = func(n *xmlquery.Node) {
		switch n.Type {
		case xmlquery.ElementNode:
			out = append(out, NewElementNode(n))
			for _, a := range n.Attr {
				out = append(out, NewAttributeNode(n, a.Name.Local, a.Value))
			}
		case xmlquery.CommentNode:
			out = append(out, NewElementNode(n))
		case xmlquery.DeclarationNode:
			out = append(out, NewProcessingInstructionNode(n))
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for c := doc.FirstChild; c != nil; c = c.NextSibling {
		walk(c)
	}
	return out
}

// ParentContextItem returns the node a rule's context query must be
// evaluated against to test whether n matches (spec.md §4.4's
// "parent-plus-membership" check): for an attribute, the owning element
// itself; for anything else, n's engine-level parent. Returns nil if n has
// no parent (should not occur for nodes produced by IterateDocument, since
// the document node itself is never wrapped).
func ParentContextItem(n *XMLNode) *XMLNode {
	if n == nil {
		return nil
	}
	if n.Kind == AttributeNode {
		return NewElementNode(n.Elem)
	}
	if n.Elem == nil || n.Elem.Parent == nil {
		return nil
	}
	return NewElementNode(n.Elem.Parent)
}
