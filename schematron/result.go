package schematron

import (
	"bytes"
	"path/filepath"
	"time"

	"github.com/go-schematron/schematron/result"
	"github.com/go-schematron/schematron/svrl"
)

// ValidationResult wraps one document's validation outcome, adding SVRL
// serialization on top of the raw result tree (spec.md §6.1).
type ValidationResult struct {
	doc     result.XMLDocumentValidationResult
	created string
}

func newValidationResult(doc result.XMLDocumentValidationResult) *ValidationResult {
	return &ValidationResult{doc: doc, created: time.Now().Format(time.RFC3339)}
}

// IsValid reports whether every fired rule's checks passed (spec.md §3.2:
// no Assert failed and no Report fired).
func (r *ValidationResult) IsValid() bool {
	return r.doc.IsValid()
}

// FailureCount returns the number of failing checks across the document.
func (r *ValidationResult) FailureCount() int {
	return r.doc.FailureCount()
}

// DocumentURI returns the URI or path this result was validated against.
func (r *ValidationResult) DocumentURI() string {
	return r.doc.DocumentURI
}

// Raw exposes the underlying node-by-node result tree for callers that need
// more than pass/fail (spec.md §3.2).
func (r *ValidationResult) Raw() result.XMLDocumentValidationResult {
	return r.doc
}

// SVRL builds this result's Schematron Validation Reporting Language
// document (spec.md §4.7).
func (r *ValidationResult) SVRL() svrl.SchematronOutput {
	return svrl.Build(r.doc, r.created)
}

// WriteSVRL serializes this result's SVRL document to a string.
func (r *ValidationResult) WriteSVRL() (string, error) {
	var buf bytes.Buffer
	if err := svrl.Write(r.SVRL(), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// SVRLFileName derives an output path for document docPath when multiple
// documents share a single --svrl-out target (spec.md §6.2): the target's
// stem gains "_<document stem>" before its extension.
func SVRLFileName(target, docPath string) string {
	ext := filepath.Ext(target)
	stem := target[:len(target)-len(ext)]
	docStem := filepath.Base(docPath)
	if docExt := filepath.Ext(docStem); docExt != "" {
		docStem = docStem[:len(docStem)-len(docExt)]
	}
	return stem + "_" + docStem + ext
}
