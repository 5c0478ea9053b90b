// Package errors defines the Schematron error taxonomy: a builder-pattern
// ValidationError type, chainable With... setters, and one constructor per
// taxonomy member, adapted from an enhanced-error idiom seen throughout
// this codebase's ambient error handling.
package errors

import (
	"fmt"
	"strings"

	"github.com/go-schematron/schematron/types"
)

// Error codes, one per taxonomy member (spec.md §7).
const (
	CodeSchemaParseError                = "SCHEMA_PARSE_ERROR"
	CodeUnresolvedReferenceError        = "UNRESOLVED_REFERENCE_ERROR"
	CodeUnknownQueryBindingError        = "UNKNOWN_QUERY_BINDING_ERROR"
	CodeQueryParseError                 = "QUERY_PARSE_ERROR"
	CodeMissingRootNodeError            = "MISSING_ROOT_NODE_ERROR"
	CodeXPath1CustomFunctionUnsupported = "XPATH1_CUSTOM_FUNCTION_UNSUPPORTED"
)

// ValidationError is an enhanced error carrying the location and context
// needed to diagnose a Schematron compile or parse failure.
type ValidationError struct {
	// Code is one of the Code* constants above.
	Code string
	// Message is the primary error message.
	Message string
	// Details provides additional context about the error.
	Details string
	// File is the schema or document filename where the error occurred.
	File string
	// Line is the line number where the error occurred, if known.
	Line int
	// Column is the column number where the error occurred, if known.
	Column int
	// Element names the Schematron element involved (e.g. "rule", "extends").
	Element string
	// Severity indicates how serious the condition is.
	Severity types.Severity
	// Suggestions offers actionable fixes.
	Suggestions []string
	// Context carries arbitrary structured diagnostic data.
	Context map[string]interface{}
	// Cause is the underlying error, if any.
	Cause error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.File != "" {
		if e.Line > 0 {
			if e.Column > 0 {
				parts = append(parts, fmt.Sprintf("%s:%d:%d", e.File, e.Line, e.Column))
			} else {
				parts = append(parts, fmt.Sprintf("%s:%d", e.File, e.Line))
			}
		} else {
			parts = append(parts, e.File)
		}
	}

	if e.Code != "" {
		parts = append(parts, fmt.Sprintf("[%s]", e.Code))
	}

	if e.Element != "" {
		parts = append(parts, fmt.Sprintf("element: %s", e.Element))
	}

	parts = append(parts, e.Message)

	if e.Details != "" {
		parts = append(parts, fmt.Sprintf("details: %s", e.Details))
	}

	if e.Cause != nil {
		parts = append(parts, fmt.Sprintf("cause: %s", e.Cause))
	}

	return strings.Join(parts, " - ")
}

// Unwrap allows errors.Is/errors.As to traverse to Cause.
func (e *ValidationError) Unwrap() error { return e.Cause }

// GetFormattedMessage returns a multi-line, human-friendly rendering of the
// error including suggestions and context.
func (e *ValidationError) GetFormattedMessage() string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s error: %s\n", e.Severity, e.Message)

	if e.File != "" {
		b.WriteString("file: " + e.File)
		if e.Line > 0 {
			fmt.Fprintf(&b, " (line %d", e.Line)
			if e.Column > 0 {
				fmt.Fprintf(&b, ", column %d", e.Column)
			}
			b.WriteString(")")
		}
		b.WriteString("\n")
	}

	if e.Element != "" {
		fmt.Fprintf(&b, "element: %s\n", e.Element)
	}

	if e.Details != "" {
		fmt.Fprintf(&b, "details: %s\n", e.Details)
	}

	if len(e.Context) > 0 {
		b.WriteString("context:\n")
		for k, v := range e.Context {
			fmt.Fprintf(&b, "  %s: %v\n", k, v)
		}
	}

	if len(e.Suggestions) > 0 {
		b.WriteString("suggestions:\n")
		for i, s := range e.Suggestions {
			fmt.Fprintf(&b, "  %d. %s\n", i+1, s)
		}
	}

	if e.Cause != nil {
		fmt.Fprintf(&b, "caused by: %s\n", e.Cause)
	}

	return b.String()
}

// NewValidationError creates a bare ValidationError with the given code and
// message; callers chain With... methods to fill in the rest.
func NewValidationError(code, message string) *ValidationError {
	return &ValidationError{
		Code:     code,
		Message:  message,
		Severity: types.ERROR,
		Context:  make(map[string]interface{}),
	}
}

func (e *ValidationError) WithFile(file string) *ValidationError {
	e.File = file
	return e
}

func (e *ValidationError) WithLocation(line, column int) *ValidationError {
	e.Line = line
	e.Column = column
	return e
}

func (e *ValidationError) WithElement(element string) *ValidationError {
	e.Element = element
	return e
}

func (e *ValidationError) WithSeverity(severity types.Severity) *ValidationError {
	e.Severity = severity
	return e
}

func (e *ValidationError) WithDetails(details string) *ValidationError {
	e.Details = details
	return e
}

func (e *ValidationError) WithSuggestion(suggestion string) *ValidationError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

func (e *ValidationError) WithContext(key string, value interface{}) *ValidationError {
	e.Context[key] = value
	return e
}

func (e *ValidationError) WithCause(cause error) *ValidationError {
	e.Cause = cause
	return e
}

// NewSchemaParseError reports malformed Schematron XML, a missing required
// attribute, or an invalid polymorphic discriminant (e.g. an abstract rule
// without an id). Fatal at parse time (spec.md §7).
func NewSchemaParseError(file string, line int, element, message string) *ValidationError {
	return NewValidationError(CodeSchemaParseError, message).
		WithFile(file).
		WithLocation(line, 0).
		WithElement(element).
		WithSuggestion("check the Schematron document against the ISO Schematron element/attribute grammar")
}

// NewUnresolvedReferenceError reports an <extends rule="X">, <pattern
// is-a="X">, or phase id reference to a missing X. Fatal at transform time.
func NewUnresolvedReferenceError(refKind, refValue string) *ValidationError {
	return NewValidationError(CodeUnresolvedReferenceError,
		fmt.Sprintf("unresolved %s reference: %q", refKind, refValue)).
		WithElement(refKind).
		WithContext("reference", refValue).
		WithSuggestion(fmt.Sprintf("define a matching %s with id %q elsewhere in the schema", refKind, refValue))
}

// NewUnknownQueryBindingError reports a queryBinding attribute not
// registered in the query processor factory. Fatal at validator
// construction.
func NewUnknownQueryBindingError(binding string) *ValidationError {
	return NewValidationError(CodeUnknownQueryBindingError,
		fmt.Sprintf("unknown query binding: %q", binding)).
		WithContext("queryBinding", binding).
		WithSuggestion("use one of xpath, xpath2, xpath3, xpath31, xslt, xslt2, xslt3, or register a custom binding")
}

// NewQueryParseError reports the query engine rejecting a query source.
// Fatal at validator construction (compile phase).
func NewQueryParseError(source string, cause error) *ValidationError {
	return NewValidationError(CodeQueryParseError,
		fmt.Sprintf("failed to parse query: %s", source)).
		WithContext("query", source).
		WithCause(cause)
}

// NewMissingRootNodeError reports an evaluation context consulted before
// its root was set. This is a programmer error that bubbles up rather than
// being caught by the library.
func NewMissingRootNodeError() *ValidationError {
	return NewValidationError(CodeMissingRootNodeError,
		"evaluation context has no root node set").
		WithSeverity(types.CRITICAL)
}

// NewXPath1CustomFunctionUnsupportedError reports an attempt to attach a
// custom function to an XPath 1.0 parser. Fatal at configuration time.
func NewXPath1CustomFunctionUnsupportedError(fnName string) *ValidationError {
	return NewValidationError(CodeXPath1CustomFunctionUnsupported,
		fmt.Sprintf("cannot register custom function %q on an XPath 1.0 binding", fnName)).
		WithContext("function", fnName).
		WithSuggestion("register a new query binding backed by a QueryProcessor that supports the function (ExtendableQueryProcessorFactory.RegisterBinding)")
}

// ErrorFormatter renders ValidationErrors for different output surfaces.
type ErrorFormatter struct{}

func NewErrorFormatter() *ErrorFormatter { return &ErrorFormatter{} }

func (f *ErrorFormatter) FormatAsText(err *ValidationError) string {
	return err.GetFormattedMessage()
}

func (f *ErrorFormatter) FormatAsJSON(err *ValidationError) map[string]interface{} {
	result := map[string]interface{}{
		"code":     err.Code,
		"message":  err.Message,
		"severity": err.Severity.String(),
	}
	if err.File != "" {
		result["file"] = err.File
	}
	if err.Line > 0 {
		loc := map[string]interface{}{"line": err.Line}
		if err.Column > 0 {
			loc["column"] = err.Column
		}
		result["location"] = loc
	}
	if err.Element != "" {
		result["element"] = err.Element
	}
	if err.Details != "" {
		result["details"] = err.Details
	}
	if len(err.Suggestions) > 0 {
		result["suggestions"] = err.Suggestions
	}
	if len(err.Context) > 0 {
		result["context"] = err.Context
	}
	if err.Cause != nil {
		result["cause"] = err.Cause.Error()
	}
	return result
}
