// Package ast defines the immutable node algebra for a parsed Schematron
// schema: the closed set of types produced by the xmlparse package, consumed
// by the transform and validate packages, and read (never mutated) by the
// svrl package.
//
// Every node is a plain value-typed Go struct. Sequences are Go slices
// treated as fixed, ordered, and never mutated in place — a "with-updated"
// copy (see WithX helper methods on the concrete node types) always builds
// a new slice header rather than mutating the old one. This mirrors the
// source implementation's frozen dataclasses plus `with_updated`, adapted
// to a language without dataclass machinery: structural sharing comes from
// Go's slice/string value semantics (copying a struct copies the slice
// header, not the backing array), not from a persistent-data-structure
// library.
package ast

// Node is the generic AST node contract: every node can enumerate its
// immediate children for generic traversal (id lookup, type search, and
// similar whole-tree walks used by the transform package).
type Node interface {
	// Children returns this node's immediate child nodes, in schema order.
	// Leaf nodes return nil.
	Children() []Node
}

// Pattern is the sum type for <pattern> tags: ConcretePattern, AbstractPattern,
// or InstancePattern. A schema that has passed the transform pipeline
// contains only ConcretePattern values.
type Pattern interface {
	Node
	isPattern()
}

// Rule is the sum type for <rule> tags: ConcreteRule, AbstractRule, or
// ExternalRule. A schema that has passed the transform pipeline contains
// only ConcreteRule values.
type Rule interface {
	Node
	isRule()
}

// Extends is the sum type for <extends> tags: ExtendsById or ExtendsExternal.
// Resolved and discarded by the ResolveExtends transform.
type Extends interface {
	Node
	isExtends()
}

// Check is the sum type for <assert>/<report> tags: Assert or Report.
type Check interface {
	Node
	isCheck()
}

// Variable is the sum type for <let> tags: QueryVariable or XMLVariable.
type Variable interface {
	Node
	isVariable()
}

// RichTextItem is the sum type for inline rich-text content: plain string
// fragments, ValueOf, or Name. Stored as []RichTextItem in Content slices
// and type-switched by consumers (see validate's rich-text compiler); string is
// included in the sum via the Text wrapper type below since a bare Go
// `string` cannot implement an interface.
type RichTextItem interface {
	isRichTextItem()
}

// Text is a literal string fragment inside rich-text content.
type Text string

func (Text) isRichTextItem() {}

// Namespace represents an <ns prefix="" uri=""/> declaration.
type Namespace struct {
	Prefix string
	URI    string
}

func (n Namespace) Children() []Node { return nil }

// ActivePhase represents an <active pattern=""/> child of <phase>.
type ActivePhase struct {
	PatternID string
	Content   string
}

func (a ActivePhase) Children() []Node { return nil }

// PatternParameter represents a <param name="" value=""/> child of an
// instance <pattern is-a="">.
type PatternParameter struct {
	Name  string
	Value string
}

func (p PatternParameter) Children() []Node { return nil }

// Paragraph represents a <p> documentation tag.
type Paragraph struct {
	Content  string
	Class    string
	Icon     string
	ID       string
	XMLLang  string
	XMLSpace string
}

func (p Paragraph) Children() []Node { return nil }

// Title represents a <title> tag.
type Title struct {
	Content string
}

func (t Title) Children() []Node { return nil }

// Query is an opaque query-language string, interpreted according to the
// schema's declared query binding (spec.md §3.1 distinguishes this from
// XPathExpression, which is always XPath regardless of binding).
type Query struct {
	Query string
}

func (q Query) Children() []Node { return nil }

// XPathExpression is an opaque XPath string, used for `subject=` attributes
// which ISO Schematron mandates be XPath regardless of the schema's query
// binding.
type XPathExpression struct {
	Expression string
}

func (x XPathExpression) Children() []Node { return nil }

// ValueOf represents a <value-of select=""/> rich-text item.
type ValueOf struct {
	Select Query
}

func (ValueOf) isRichTextItem()  {}
func (v ValueOf) Children() []Node { return []Node{v.Select} }

// Name represents a <name path=""/> rich-text item. Path is nil when the
// element carried no `path` attribute (meaning "name of the current node").
type Name struct {
	Path *Query
}

func (Name) isRichTextItem() {}
func (n Name) Children() []Node {
	if n.Path == nil {
		return nil
	}
	return []Node{*n.Path}
}

// richTextChildren converts a slice of rich-text items into Node children,
// used by container nodes (Check, Diagnostic, Property) implementing
// Children().
func richTextChildren(items []RichTextItem) []Node {
	out := make([]Node, 0, len(items))
	for _, it := range items {
		if n, ok := it.(Node); ok {
			out = append(out, n)
		}
	}
	return out
}
