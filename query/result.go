package query

import "fmt"

// Result wraps the value produced by evaluating a Query, normalizing across
// the handful of XPath result shapes the validator cares about: booleans,
// strings, numbers, and node-sets. Coercions follow XPath 1.0's
// boolean()/string() rules (spec.md §4.3), since antchfx/xpath is the only
// engine this repository binds (SPEC_FULL.md §D).
type Result struct {
	nodes  []*XMLNode
	str    string
	num    float64
	bln    bool
	isNode bool
	isStr  bool
	isNum  bool
	isBln  bool
}

// NewNodeSetResult wraps a node-set result.
func NewNodeSetResult(nodes []*XMLNode) Result {
	return Result{nodes: nodes, isNode: true}
}

// NewStringResult wraps a string result.
func NewStringResult(s string) Result {
	return Result{str: s, isStr: true}
}

// NewNumberResult wraps a numeric result.
func NewNumberResult(n float64) Result {
	return Result{num: n, isNum: true}
}

// NewBooleanResult wraps a boolean result.
func NewBooleanResult(b bool) Result {
	return Result{bln: b, isBln: true}
}

// IsNodeSet reports whether the result is a node-set.
func (r Result) IsNodeSet() bool { return r.isNode }

// Nodes returns the node-set, or nil if the result is not a node-set.
func (r Result) Nodes() []*XMLNode { return r.nodes }

// AsBoolean coerces the result to a boolean using XPath boolean() rules: a
// non-empty node-set is true, a non-zero/non-NaN number is true, a non-empty
// string is true, and a boolean passes through unchanged.
func (r Result) AsBoolean() bool {
	switch {
	case r.isNode:
		return len(r.nodes) > 0
	case r.isNum:
		return r.num != 0 && r.num == r.num // false for NaN
	case r.isStr:
		return r.str != ""
	default:
		return r.bln
	}
}

// AsString coerces the result to a string using XPath string() rules: a
// node-set yields the string-value of its first node in document order (or
// "" if empty), a number is formatted per XPath's number-to-string
// conversion, and a boolean renders as "true"/"false".
func (r Result) AsString() string {
	switch {
	case r.isNode:
		if len(r.nodes) == 0 {
			return ""
		}
		return r.nodes[0].StringValue()
	case r.isNum:
		return formatXPathNumber(r.num)
	case r.isStr:
		return r.str
	default:
		if r.bln {
			return "true"
		}
		return "false"
	}
}

func formatXPathNumber(n float64) string {
	if n == float64(int64(n)) {
		return fmt.Sprintf("%d", int64(n))
	}
	return fmt.Sprintf("%g", n)
}
