// Package query is the XPath binding layer: it abstracts over "which engine
// evaluates a query-binding's expressions" behind Query/QueryParser/
// QueryProcessor interfaces (spec.md §4.3), with a single concrete
// antchfx/xpath-backed implementation (SPEC_FULL.md §D) registered under all
// seven binding names.
package query

// Query is a single parsed, ready-to-evaluate expression.
type Query interface {
	// Evaluate runs the query against ctx's context item, returning a
	// normalized Result.
	Evaluate(ctx EvaluationContext) (Result, error)

	// Source returns the original query text, used for error messages and
	// the CachingQueryParser's memoization key.
	Source() string
}

// QueryProcessor bundles a QueryParser with the namespace bindings active
// for a particular schema (spec.md §4.3: "a query processor is obtained per
// query-binding name and carries the schema's namespace declarations").
type QueryProcessor interface {
	// Parser returns the QueryParser to use for compiling expression text
	// under this processor's namespace bindings.
	Parser() QueryParser
}
