// Package validate implements the two-phase compile/evaluate Schematron
// engine (spec.md §4.4): Phase A pre-parses a phase-reduced schema into a
// tree of pattern/rule/check validators; Phase B walks a target XML
// document's nodes, running that tree against each one to build the
// per-node result tree defined in the result package.
//
// Grounded on original_source/pyschematron/direct_mode/xml_validation/
// validators.py's _PatternValidator/_RuleValidator/_CheckValidator
// hierarchy and its rule-shadowing, parent-plus-membership context
// matching, and variable-scoping rules.
package validate

import (
	"github.com/go-schematron/schematron/logging"
	"github.com/go-schematron/schematron/query"
)

// Options configures NewValidator. All fields are optional; zero values
// fall back to sensible defaults.
type Options struct {
	// Factory resolves a schema's queryBinding to a QueryProcessor.
	// Defaults to query.NewDefaultQueryProcessorFactory().
	Factory query.QueryProcessorFactory
	// BasePath is logged at compile time and copied into each result's
	// BasePath field. It resolves nothing: <include>/<extends href> are
	// already loaded by the time a schema reaches NewValidator.
	BasePath string
	// Logger receives compile/evaluate diagnostics. Defaults to
	// logging.NewDefaultLogger().
	Logger *logging.Logger
	// QueryCacheSize bounds the CachingQueryParser's memoization table.
	// Defaults to 1024.
	QueryCacheSize int
}

func (o Options) withDefaults() Options {
	if o.Factory == nil {
		o.Factory = query.NewDefaultQueryProcessorFactory()
	}
	if o.Logger == nil {
		o.Logger = logging.NewDefaultLogger()
	}
	if o.QueryCacheSize <= 0 {
		o.QueryCacheSize = 1024
	}
	return o
}
