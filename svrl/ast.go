// Package svrl models the ISO Schematron Validation Reporting Language
// (SVRL) as a flat, immutable AST (spec.md §3.4) and serializes it to XML
// (spec.md §4.7, §6.4). Build() converts a result.XMLDocumentValidationResult
// into a SchematronOutput; Write serializes one to XML.
//
// Grounded on original_source/pyschematron's
// xml_validation/results/svrl_builder.py for the metadata block and the
// pattern/rule/check grouping algorithm.
package svrl

// SchematronOutput is the root of the SVRL AST, one per validated document.
type SchematronOutput struct {
	Title         string
	SchemaVersion string
	Phase         string

	Texts             []Text
	NSPrefixes        []NSPrefixInAttributeValues
	MetaData          MetaData
	ValidationEvents  []ValidationEvent
}

// Text mirrors one schema-level <p> (spec.md §4.7: "one Text per Paragraph
// in the schema, preserving icon/lang/id/class").
type Text struct {
	Content string
	Class   string
	ID      string
	Icon    string
	XMLLang string
}

// NSPrefixInAttributeValues mirrors one schema-level <ns> declaration.
type NSPrefixInAttributeValues struct {
	Prefix string
	URI    string
}

// MetaData is the fixed metadata block spec.md §4.7 requires: creator
// agent, creation timestamp, source description, declared in the dct/skos/
// rdf namespaces plus a tool-specific one.
type MetaData struct {
	CreatorName    string
	CreatorVersion string
	Created        string // local-zone ISO 8601
	Source         string
}

// ValidationEvent is the sum type for one reportable event in document
// order: ActivePattern, FiredRule, SuppressedRule, FailedAssert, or
// SuccessfulReport (spec.md §3.4).
type ValidationEvent interface {
	isValidationEvent()
}

// ActivePattern marks the first time a pattern produces output for this
// document (spec.md §4.7: "For each pattern that had at least one fired
// rule anywhere, emit one ActivePattern").
type ActivePattern struct {
	ID        string
	Name      string
	Documents string
	Role      string
	See       string
}

func (ActivePattern) isValidationEvent() {}

// FiredRule records a rule whose context matched and which was the first
// to do so for its node (no shadowing).
type FiredRule struct {
	Context  string
	ID       string
	Document string
	Role     string
	See      string
	Flag     string
}

func (FiredRule) isValidationEvent() {}

// SuppressedRule records a rule whose context matched but which was
// shadowed by an earlier fired rule in the same pattern (spec.md §6.4's
// "optional suppressed-rule extension").
type SuppressedRule struct {
	Context  string
	ID       string
	Document string
}

func (SuppressedRule) isValidationEvent() {}

// FailedAssert records an Assert check whose derived outcome was "fail"
// (spec.md §4.5).
type FailedAssert struct {
	Test        string
	Location    string
	ID          string
	Role        string
	See         string
	Flag        string
	Text        string
	Diagnostics []DiagnosticReference
	Properties  []PropertyReference
	Subject     string
}

func (FailedAssert) isValidationEvent() {}

// SuccessfulReport records a Report check whose derived outcome was "fire"
// (spec.md §4.5).
type SuccessfulReport struct {
	Test        string
	Location    string
	ID          string
	Role        string
	See         string
	Flag        string
	Text        string
	Diagnostics []DiagnosticReference
	Properties  []PropertyReference
	Subject     string
}

func (SuccessfulReport) isValidationEvent() {}

// DiagnosticReference is a child of FailedAssert/SuccessfulReport
// referencing one <diagnostic> by id, carrying its rendered text.
type DiagnosticReference struct {
	Diagnostic string
	Text       string
}

// PropertyReference is a child of FailedAssert/SuccessfulReport
// referencing one <property> by id, carrying its rendered text.
type PropertyReference struct {
	Property string
	Role     string
	Text     string
}
