// Package schematron is the public entry point for compiling a Schematron
// schema and validating XML documents against it (spec.md §6.1). It wraps
// the validate/svrl/transform/query machinery behind a small, stable
// surface: Factory builds a Validator from a schema file, Validator checks
// one or many documents, and ValidationResult exposes pass/fail status plus
// SVRL output.
//
// Grounded on the teacher repo's validator.NetexValidator /
// validation/engine.EnhancedNetexValidatorsRunner split between "build a
// configured validator once" and "run it over many files concurrently."
package schematron
