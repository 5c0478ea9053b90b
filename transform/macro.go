// Package transform implements the three AST-to-AST passes that turn a
// freshly parsed schema into one a validator can compile directly:
// ResolveExtends, ResolveAbstractPatterns, and PhaseSelection, applied in
// that fixed order (spec.md §4.2). Each pass is grounded on the matching
// visitor in original_source/pyschematron/direct_mode/schematron/ast_visitors.py,
// adapted from Python's dataclass-reflection-based `with_updated` into
// explicit field-by-field Go reconstruction.
package transform

import "regexp"

// macroExpand replaces every occurrence of a macro key in s with its value,
// in one pass, matching only whole-word occurrences (a $name not
// immediately followed by a further identifier character). Used to
// instantiate an AbstractPattern's $param references when expanding an
// InstancePattern (spec.md §4.2's "macro expansion" step).
func macroExpand(s string, macros map[string]string) string {
	if len(macros) == 0 || s == "" {
		return s
	}

	pattern := macroPattern(macros)
	return pattern.ReplaceAllStringFunc(s, func(match string) string {
		return macros[match]
	})
}

// macroPattern builds (and the caller should cache) a regexp alternating
// every macro key, anchored so a key is only matched as a whole word — this
// mirrors the source's `re.compile(f'({pattern})\\b')`.
func macroPattern(macros map[string]string) *regexp.Regexp {
	var pattern string
	first := true
	for k := range macros {
		if !first {
			pattern += "|"
		}
		first = false
		pattern += regexp.QuoteMeta(k)
	}
	return regexp.MustCompile("(?:" + pattern + ")\\b")
}

// MacroExpand is the exported form of macroExpand. ResolveAbstractPatterns
// (abstract.go, same package) uses the unexported form directly; the
// validate package imports this exported wrapper to fake $variable binding
// against an XPath engine (antchfx/xpath) that has no native variable
// scope — see validate/query.go's substituteVariables and DESIGN.md's
// write-up of that scoping decision.
func MacroExpand(s string, macros map[string]string) string {
	return macroExpand(s, macros)
}
