package ast

// Visitor is the generic AST visitor contract. Unlike a typed double
// dispatch (one method per node type), callers type-switch inside Visit —
// this mirrors the source's single dynamic-dispatch `visit` method, which
// favors ease of renaming node types over compile-time exhaustiveness
// checks at the call site.
type Visitor[T any] interface {
	Visit(node Node) T
}

// Walk calls fn for node and recursively for every descendant, depth
// first, pre-order. CountNodesOfType below is built on it; the Find*ByID
// helpers scan a flat slice instead, and the transform package's visitors
// do not use it since each transform needs to rebuild the tree (not just
// observe it).
func Walk(node Node, fn func(Node)) {
	if node == nil {
		return
	}
	fn(node)
	for _, child := range node.Children() {
		Walk(child, fn)
	}
}

// FindRuleByID searches the given rules slice (not their descendants) for
// an AbstractRule with the given id. ResolveExtends does not call it; it
// builds its own schema-wide index of abstract rules.
func FindRuleByID(rules []Rule, id string) (Rule, bool) {
	for _, r := range rules {
		if ar, ok := r.(AbstractRule); ok && ar.ID == id {
			return r, true
		}
	}
	return nil, false
}

// FindAbstractPatternByID searches patterns for an AbstractPattern with the
// given id. Used by ResolveAbstractPatterns to resolve InstancePattern
// references.
func FindAbstractPatternByID(patterns []Pattern, id string) (AbstractPattern, bool) {
	for _, p := range patterns {
		if ap, ok := p.(AbstractPattern); ok && ap.ID == id {
			return ap, true
		}
	}
	return AbstractPattern{}, false
}

// FindPhaseByID searches phases for one with the given id.
func FindPhaseByID(phases []Phase, id string) (Phase, bool) {
	for _, p := range phases {
		if p.ID == id {
			return p, true
		}
	}
	return Phase{}, false
}

// CountNodesOfType walks the whole tree rooted at node and counts how many
// descendants (node itself included) satisfy the predicate. Useful for
// tests asserting invariants like "no AbstractPattern remains" (spec.md §8
// property 3).
func CountNodesOfType(node Node, predicate func(Node) bool) int {
	count := 0
	Walk(node, func(n Node) {
		if predicate(n) {
			count++
		}
	})
	return count
}
