package transform

import "github.com/go-schematron/schematron/ast"

// Compile runs the three AST-to-AST passes in the fixed order spec.md
// §4.2 mandates: ResolveExtends, then ResolveAbstractPatterns, then
// PhaseSelection. The result contains only ConcreteRule rules and only
// ConcretePattern patterns, restricted to phase (spec.md §4.2's closing
// paragraph).
func Compile(schema ast.Schema, phase string) (ast.Schema, error) {
	schema, err := ResolveExtends(schema)
	if err != nil {
		return ast.Schema{}, err
	}

	schema, err = ResolveAbstractPatterns(schema)
	if err != nil {
		return ast.Schema{}, err
	}

	schema, err = PhaseSelection(schema, phase)
	if err != nil {
		return ast.Schema{}, err
	}

	return schema, nil
}
