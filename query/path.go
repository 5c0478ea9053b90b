package query

import (
	"fmt"
	"strings"

	"github.com/antchfx/xmlquery"
)

// CanonicalPath computes a canonical XPath-3.1-style location string for an
// XMLNode, the same purpose antchfx/xpath's missing path() function would
// serve (spec.md §6.5 requires the engine expose a path() function; this
// repository's engine does not have one natively, so this hand-rolled
// sibling-position walk plays that role — see SPEC_FULL.md §D).
//
// Adapted from the sibling-indexed element path walk used elsewhere in this
// codebase's ancestor-path helper, extended here to also cover attribute,
// comment, and processing-instruction nodes, which spec.md §3.3 requires
// but the original helper never needed to handle.
func CanonicalPath(n *XMLNode) string {
	if n == nil {
		return ""
	}

	switch n.Kind {
	case AttributeNode:
		return elementPath(n.Elem) + "/@" + n.AttrName
	case CommentNode:
		return elementPath(n.Elem.Parent) + fmt.Sprintf("/comment()[%d]", siblingPosition(n.Elem, xmlquery.CommentNode, ""))
	case ProcessingInstructionNode:
		return elementPath(n.Elem.Parent) + fmt.Sprintf("/processing-instruction()[%d]", siblingPosition(n.Elem, n.Elem.Type, n.Elem.Data))
	default:
		return elementPath(n.Elem)
	}
}

// elementPath walks up from n to the document root, building a sequence of
// sibling-indexed /tag[k] segments.
func elementPath(n *xmlquery.Node) string {
	if n == nil {
		return ""
	}

	var parts []string
	for cur := n; cur != nil && cur.Type != xmlquery.DocumentNode; cur = cur.Parent {
		if cur.Type != xmlquery.ElementNode {
			continue
		}
		pos := siblingPosition(cur, xmlquery.ElementNode, cur.Data)
		parts = append(parts, fmt.Sprintf("/%s[%d]", cur.Data, pos))
	}

	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}

	return strings.Join(parts, "")
}

// siblingPosition returns the 1-based position of n among its preceding
// siblings (inclusive of n) that share the same node type and, for element
// nodes, the same tag name.
func siblingPosition(n *xmlquery.Node, kind xmlquery.NodeType, data string) int {
	pos := 1
	for sib := n.PrevSibling; sib != nil; sib = sib.PrevSibling {
		if sib.Type != kind {
			continue
		}
		if kind == xmlquery.ElementNode && sib.Data != data {
			continue
		}
		pos++
	}
	return pos
}
