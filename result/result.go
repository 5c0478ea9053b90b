// Package result defines the immutable per-document validation result
// tree (spec.md §3.2): one XMLDocumentValidationResult per document,
// holding an ordered FullNodeResult per visited node, each holding an
// ordered PatternResult, each holding an ordered RuleResult. Built by the
// validate package's evaluate phase; read by the svrl package's builder
// and by callers via ValidationResult.IsValid().
package result

import (
	"github.com/go-schematron/schematron/ast"
	"github.com/go-schematron/schematron/query"
)

// XMLDocumentValidationResult is the per-document root of the result tree.
type XMLDocumentValidationResult struct {
	// Schema is the concrete, phase-reduced schema that was evaluated.
	Schema ast.Schema
	// Phase is the phase selector the schema was reduced against.
	Phase string
	// BasePath is the directory <include>/<extends href> were resolved
	// against, kept for SVRL metadata/debugging.
	BasePath string
	// DocumentURI identifies the validated document (a file path or a
	// caller-supplied label), used for SVRL's fired-rule@document and
	// active-pattern@documents attributes.
	DocumentURI string
	// NodeResults holds one FullNodeResult per visited document node, in
	// document order.
	NodeResults []FullNodeResult
}

// IsValid reports whether no check across all fired rules in this
// document's result reported a failure (spec.md §3.2, §4.5).
func (r XMLDocumentValidationResult) IsValid() bool {
	for _, nr := range r.NodeResults {
		if !nr.IsValid() {
			return false
		}
	}
	return true
}

// FailureCount returns the number of failed-assert/successful-report
// events this result would produce in SVRL.
func (r XMLDocumentValidationResult) FailureCount() int {
	count := 0
	for _, nr := range r.NodeResults {
		count += nr.FailureCount()
	}
	return count
}

// FiredRuleCount returns the total number of rules that fired across every
// visited node.
func (r XMLDocumentValidationResult) FiredRuleCount() int {
	count := 0
	for _, nr := range r.NodeResults {
		for _, pr := range nr.PatternResults {
			for _, rr := range pr.RuleResults {
				if _, ok := rr.(FiredRuleResult); ok {
					count++
				}
			}
		}
	}
	return count
}

// FullNodeResult is the result of evaluating every pattern against one
// visited XML node.
type FullNodeResult struct {
	Node            *query.XMLNode
	PatternResults  []PatternResult
}

// IsValid reports whether every check in this node's fired rules passed.
func (n FullNodeResult) IsValid() bool {
	for _, pr := range n.PatternResults {
		if !pr.IsValid() {
			return false
		}
	}
	return true
}

// FailureCount returns this node's number of failed-assert/successful-report
// events.
func (n FullNodeResult) FailureCount() int {
	count := 0
	for _, pr := range n.PatternResults {
		count += pr.FailureCount()
	}
	return count
}

// PatternResult is the result of running one pattern's rules against one
// node.
type PatternResult struct {
	Pattern     ast.ConcretePattern
	RuleResults []RuleResult
}

// IsValid reports whether every fired rule's checks passed in this pattern.
func (p PatternResult) IsValid() bool {
	for _, rr := range p.RuleResults {
		if fr, ok := rr.(FiredRuleResult); ok {
			if !fr.IsValid() {
				return false
			}
		}
	}
	return true
}

// FailureCount returns this pattern's number of failure events.
func (p PatternResult) FailureCount() int {
	count := 0
	for _, rr := range p.RuleResults {
		if fr, ok := rr.(FiredRuleResult); ok {
			count += fr.FailureCount()
		}
	}
	return count
}

// RuleResult is the sum type for one rule's outcome against one node:
// SkippedRuleResult, FiredRuleResult, or SuppressedRuleResult (spec.md
// §3.2).
type RuleResult interface {
	isRuleResult()
	// Rule returns the ConcreteRule this result is for.
	Rule() ast.ConcreteRule
}

// SkippedRuleResult means the rule's context did not match the node.
type SkippedRuleResult struct {
	Rl ast.ConcreteRule
}

func (SkippedRuleResult) isRuleResult()        {}
func (s SkippedRuleResult) Rule() ast.ConcreteRule { return s.Rl }

// FiredRuleResult means the rule's context matched and it was the first
// matching rule in its pattern for this node.
type FiredRuleResult struct {
	Rl           ast.ConcreteRule
	CheckResults []CheckResult
	SubjectNode  *query.XMLNode
}

func (FiredRuleResult) isRuleResult()            {}
func (f FiredRuleResult) Rule() ast.ConcreteRule { return f.Rl }

// IsValid reports whether every check in this fired rule passed (spec.md
// §4.5's polarity table determines "passed").
func (f FiredRuleResult) IsValid() bool {
	for _, cr := range f.CheckResults {
		if cr.IsFailure() {
			return false
		}
	}
	return true
}

// FailureCount returns the number of this rule's checks whose derived
// outcome was fail/fire.
func (f FiredRuleResult) FailureCount() int {
	count := 0
	for _, cr := range f.CheckResults {
		if cr.IsFailure() {
			count++
		}
	}
	return count
}

// SuppressedRuleResult means the rule's context matched but an earlier
// rule in the same pattern already fired for this node (spec.md §4.4's
// rule-shadowing step; GLOSSARY "Suppressed rule").
type SuppressedRuleResult struct {
	Rl           ast.ConcreteRule
	FiredByRuleID string
}

func (SuppressedRuleResult) isRuleResult()            {}
func (s SuppressedRuleResult) Rule() ast.ConcreteRule { return s.Rl }

// CheckResult is the outcome of evaluating one assert/report against the
// node a fired rule matched (spec.md §3.2, §4.5).
type CheckResult struct {
	Check       ast.Check
	TestResult  bool
	Text        string
	SubjectNode *query.XMLNode
	Properties  []PropertyResult
	Diagnostics []DiagnosticResult
}

// IsFailure reports the derived outcome from spec.md §4.5's polarity
// table: an Assert fails when its test is false; a Report fires when its
// test is true. Both are "failures" in the sense of producing an SVRL
// failed-assert/successful-report event and making the document invalid.
func (c CheckResult) IsFailure() bool {
	if ast.IsAssert(c.Check) {
		return !c.TestResult
	}
	return c.TestResult
}

// PropertyResult is one referenced <property>'s rendered text for a
// particular check evaluation.
type PropertyResult struct {
	Property ast.Property
	Text     string
}

// DiagnosticResult is one referenced <diagnostic>'s rendered text for a
// particular check evaluation.
type DiagnosticResult struct {
	Diagnostic ast.Diagnostic
	Text       string
}
