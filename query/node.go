package query

import (
	"fmt"
	"strings"

	"github.com/antchfx/xmlquery"
)

// NodeKind distinguishes the four XPath node kinds spec.md §3.3 requires a
// node descriptor to represent. Text nodes are deliberately absent: the
// validator's document-order iteration skips them (spec.md §4.4 Phase B).
type NodeKind int

const (
	ElementNode NodeKind = iota
	AttributeNode
	CommentNode
	ProcessingInstructionNode
)

func (k NodeKind) String() string {
	switch k {
	case ElementNode:
		return "element"
	case AttributeNode:
		return "attribute"
	case CommentNode:
		return "comment"
	case ProcessingInstructionNode:
		return "processing-instruction"
	default:
		return "unknown"
	}
}

// XMLNode is the sum-type node descriptor from spec.md §3.3: every node the
// validator visits or reports on is wrapped in one of these, carrying a
// canonical XPath location string and a reference back to the underlying
// engine node. antchfx/xmlquery does not model attributes as distinct tree
// nodes (they live in Node.Attr), so AttributeNode carries the owning
// element separately from the attribute's name/value.
type XMLNode struct {
	Kind NodeKind

	// Elem is the underlying antchfx/xmlquery node for Element, Comment, and
	// ProcessingInstruction kinds. For AttributeNode it is the *owning*
	// element, since xmlquery has no separate attribute node type.
	Elem *xmlquery.Node

	// AttrName/AttrValue are populated only when Kind == AttributeNode.
	AttrName  string
	AttrValue string

	// path is the canonical XPath location string, computed once at
	// descriptor-construction time (see CanonicalPath).
	path string
}

// Path returns the canonical XPath 3.1-style location string for this node
// (spec.md §3.3, §6.5's path() contract).
func (n *XMLNode) Path() string {
	if n == nil {
		return ""
	}
	return n.path
}

// NewElementNode wraps an element or comment xmlquery node (a comment gets
// CommentNode kind; every other node type, including the document node, gets
// ElementNode kind). Processing instructions go through
// NewProcessingInstructionNode.
func NewElementNode(n *xmlquery.Node) *XMLNode {
	if n == nil {
		return nil
	}
	kind := ElementNode
	switch n.Type {
	case xmlquery.CommentNode:
		kind = CommentNode
	}
	node := &XMLNode{Kind: kind, Elem: n}
	node.path = CanonicalPath(node)
	return node
}

// NewProcessingInstructionNode wraps a processing-instruction xmlquery node.
// xmlquery represents PI nodes with Type == xmlquery.DeclarationNode for the
// XML declaration and a dedicated node for other PIs depending on parser
// options; callers of the document iterator are expected to have already
// distinguished PI nodes before calling this constructor.
func NewProcessingInstructionNode(n *xmlquery.Node) *XMLNode {
	if n == nil {
		return nil
	}
	node := &XMLNode{Kind: ProcessingInstructionNode, Elem: n}
	node.path = CanonicalPath(node)
	return node
}

// NewAttributeNode wraps an attribute of the given owning element.
func NewAttributeNode(owner *xmlquery.Node, name, value string) *XMLNode {
	node := &XMLNode{Kind: AttributeNode, Elem: owner, AttrName: name, AttrValue: value}
	node.path = CanonicalPath(node)
	return node
}

// StringValue returns the XPath string-value of this node: for an element
// it is the concatenation of all descendant text; for an attribute, its
// value; for a comment or PI, its content.
func (n *XMLNode) StringValue() string {
	if n == nil {
		return ""
	}
	switch n.Kind {
	case AttributeNode:
		return n.AttrValue
	case CommentNode, ProcessingInstructionNode:
		return n.Elem.Data
	default:
		var b strings.Builder
		collectText(n.Elem, &b)
		return b.String()
	}
}

func collectText(n *xmlquery.Node, b *strings.Builder) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case xmlquery.TextNode, xmlquery.CharDataNode:
			b.WriteString(c.Data)
		case xmlquery.ElementNode:
			collectText(c, b)
		}
	}
}

// SameNode reports whether a and b denote the same underlying XML
// location: the same engine node for elements/comments/PIs, or the same
// owning element and attribute name for attributes. Used by the
// validator's "parent-plus-membership" rule context test (spec.md §4.4
// Phase B, per-rule evaluation step 1).
func SameNode(a, b *XMLNode) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind || a.Elem != b.Elem {
		return false
	}
	if a.Kind == AttributeNode {
		return a.AttrName == b.AttrName
	}
	return true
}

// String implements fmt.Stringer for debug output/logging.
func (n *XMLNode) String() string {
	if n == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s(%s)", n.Kind, n.path)
}
