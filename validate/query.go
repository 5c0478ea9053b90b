package validate

import (
	"fmt"
	"strings"

	"github.com/go-schematron/schematron/query"
	"github.com/go-schematron/schematron/transform"
)

// dynamicQuery wraps a compiled Query alongside its original source text
// and the shared caching parser it was compiled with.
//
// antchfx/xpath (this repository's sole query engine, SPEC_FULL.md §D) has
// no native facility for binding Schematron's <let> variables into an
// expression's evaluation scope. dynamicQuery compensates: the query is
// pre-parsed once from its literal source at compile time (the fast path,
// used whenever the current evaluation context has no bound variables, or
// the source text contains no "$" token at all); when variables ARE bound
// and the source could reference one, the source text is rewritten with
// transform.MacroExpand substituting each bound variable's stringified
// value for its "$name" token, and the rewritten text is re-parsed through
// the same CachingQueryParser — so a given (source, variable-values) pair
// still compiles only once per process, keeping faith with spec.md §4.3's
// CachingQueryParser intent even on the variable-bound path. This is a
// documented scoping decision (see DESIGN.md), not silent behavior.
type dynamicQuery struct {
	source string
	parsed query.Query
	parser query.QueryParser
}

// newDynamicQuery compiles source once via parser. Returns nil, nil if
// source is empty (used for optional fields like Rule.Subject).
func newDynamicQuery(source string, parser query.QueryParser) (*dynamicQuery, error) {
	if source == "" {
		return nil, nil
	}
	q, err := parser.Parse(source)
	if err != nil {
		return nil, err
	}
	return &dynamicQuery{source: source, parsed: q, parser: parser}, nil
}

// Evaluate evaluates the query against ctx, re-parsing with substituted
// variable values if ctx carries any variables this query's source text
// could reference.
func (d *dynamicQuery) Evaluate(ctx query.EvaluationContext) (query.Result, error) {
	if d == nil {
		return query.Result{}, fmt.Errorf("validate: evaluating a nil query")
	}

	q := d.parsed
	if substituted := substituteVariables(d.source, ctx.Variables()); substituted != d.source {
		var err error
		q, err = d.parser.Parse(substituted)
		if err != nil {
			return query.Result{}, err
		}
	}
	return q.Evaluate(ctx)
}

// Source returns the original, unsubstituted query text.
func (d *dynamicQuery) Source() string {
	if d == nil {
		return ""
	}
	return d.source
}

// substituteVariables rewrites source, replacing each "$name" token with
// vars["name"]'s stringified value, for every bound variable that is a
// string and whose token actually occurs in source. Returns source
// unchanged (same string, so callers can compare by ==) when there is
// nothing to substitute.
func substituteVariables(source string, vars map[string]interface{}) string {
	if len(vars) == 0 || !strings.Contains(source, "$") {
		return source
	}

	macros := make(map[string]string, len(vars))
	for name, v := range vars {
		s, ok := v.(string)
		if !ok {
			continue
		}
		macros["$"+name] = s
	}
	if len(macros) == 0 {
		return source
	}

	return transform.MacroExpand(source, macros)
}
