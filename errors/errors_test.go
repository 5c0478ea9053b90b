package errors

import (
	"errors"
	"strings"
	"testing"
)

func TestValidationErrorFormatting(t *testing.T) {
	cause := errors.New("boom")
	err := NewSchemaParseError("schema.sch", 12, "rule", "abstract rule missing id").
		WithSuggestion("add an id attribute").
		WithCause(cause)

	if !strings.Contains(err.Error(), "schema.sch:12") {
		t.Errorf("expected file:line in error string, got %q", err.Error())
	}
	if !strings.Contains(err.Error(), CodeSchemaParseError) {
		t.Errorf("expected code in error string, got %q", err.Error())
	}
	if !errors.Is(err.Unwrap(), cause) {
		t.Errorf("expected Unwrap to return cause")
	}

	formatted := err.GetFormattedMessage()
	if !strings.Contains(formatted, "add an id attribute") {
		t.Errorf("expected suggestion in formatted message, got %q", formatted)
	}
}

func TestNewUnresolvedReferenceError(t *testing.T) {
	err := NewUnresolvedReferenceError("extends", "my-abstract-rule")
	if err.Code != CodeUnresolvedReferenceError {
		t.Errorf("expected code %s, got %s", CodeUnresolvedReferenceError, err.Code)
	}
	if err.Context["reference"] != "my-abstract-rule" {
		t.Errorf("expected reference context to be set")
	}
}

func TestErrorFormatterJSON(t *testing.T) {
	err := NewUnknownQueryBindingError("xquery")
	f := NewErrorFormatter()
	out := f.FormatAsJSON(err)

	if out["code"] != CodeUnknownQueryBindingError {
		t.Errorf("expected code %s in JSON output, got %v", CodeUnknownQueryBindingError, out["code"])
	}
	if ctx, ok := out["context"].(map[string]interface{}); !ok || ctx["queryBinding"] != "xquery" {
		t.Errorf("expected queryBinding context, got %v", out["context"])
	}
}
