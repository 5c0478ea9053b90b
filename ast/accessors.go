package ast

// This file collects small type-switch helpers shared by the transform and
// validate packages, so dispatch over the sum types lives in one place
// instead of being repeated at every call site.

// VariableName returns the `name` attribute shared by both Variable
// variants.
func VariableName(v Variable) string {
	switch vv := v.(type) {
	case QueryVariable:
		return vv.Name
	case XMLVariable:
		return vv.Name
	default:
		return ""
	}
}

// RuleChecks returns the Checks slice shared by all three Rule variants.
func RuleChecks(r Rule) []Check {
	switch rr := r.(type) {
	case ConcreteRule:
		return rr.Checks
	case AbstractRule:
		return rr.Checks
	case ExternalRule:
		return rr.Checks
	default:
		return nil
	}
}

// RuleVariables returns the Variables slice shared by all three Rule
// variants.
func RuleVariables(r Rule) []Variable {
	switch rr := r.(type) {
	case ConcreteRule:
		return rr.Variables
	case AbstractRule:
		return rr.Variables
	case ExternalRule:
		return rr.Variables
	default:
		return nil
	}
}

// RuleExtends returns the Extends slice shared by all three Rule variants.
func RuleExtends(r Rule) []Extends {
	switch rr := r.(type) {
	case ConcreteRule:
		return rr.Extends
	case AbstractRule:
		return rr.Extends
	case ExternalRule:
		return rr.Extends
	default:
		return nil
	}
}

// RuleID returns the `id` attribute, empty if unset (ConcreteRule and
// ExternalRule both carry an optional id; AbstractRule's is required).
func RuleID(r Rule) string {
	switch rr := r.(type) {
	case ConcreteRule:
		return rr.ID
	case AbstractRule:
		return rr.ID
	case ExternalRule:
		return rr.ID
	default:
		return ""
	}
}

// RuleSubject returns the `subject` XPath expression, if any.
func RuleSubject(r Rule) *XPathExpression {
	switch rr := r.(type) {
	case ConcreteRule:
		return rr.Subject
	case AbstractRule:
		return rr.Subject
	case ExternalRule:
		return rr.Subject
	default:
		return nil
	}
}

// WithRuleChecksAndVariables returns a copy of r with its Checks, Variables
// replaced and Extends cleared, dispatching across the three Rule variants.
// Used by ResolveExtends.
func WithRuleChecksAndVariables(r Rule, checks []Check, variables []Variable) Rule {
	switch rr := r.(type) {
	case ConcreteRule:
		return rr.WithChecksAndVariables(checks, variables)
	case AbstractRule:
		return rr.WithChecksAndVariables(checks, variables)
	case ExternalRule:
		return rr.WithChecksAndVariables(checks, variables)
	default:
		return r
	}
}

// PatternID returns the `id` attribute shared by all three Pattern variants
// (empty for an unidentified ConcretePattern/AbstractPattern).
func PatternID(p Pattern) string {
	switch pp := p.(type) {
	case ConcretePattern:
		return pp.ID
	case AbstractPattern:
		return pp.ID
	case InstancePattern:
		return pp.ID
	default:
		return ""
	}
}

// CheckTest returns the Test query shared by Assert and Report.
func CheckTest(c Check) Query {
	switch cc := c.(type) {
	case Assert:
		return cc.Test
	case Report:
		return cc.Test
	default:
		return Query{}
	}
}

// CheckContent returns the rich-text Content shared by Assert and Report.
func CheckContent(c Check) []RichTextItem {
	switch cc := c.(type) {
	case Assert:
		return cc.Content
	case Report:
		return cc.Content
	default:
		return nil
	}
}

// CheckSubject returns the `subject` XPath expression, if any.
func CheckSubject(c Check) *XPathExpression {
	switch cc := c.(type) {
	case Assert:
		return cc.Subject
	case Report:
		return cc.Subject
	default:
		return nil
	}
}

// CheckDiagnostics returns the diagnostic id-refs shared by Assert and Report.
func CheckDiagnostics(c Check) []string {
	switch cc := c.(type) {
	case Assert:
		return cc.Diagnostics
	case Report:
		return cc.Diagnostics
	default:
		return nil
	}
}

// CheckProperties returns the property id-refs shared by Assert and Report.
func CheckProperties(c Check) []string {
	switch cc := c.(type) {
	case Assert:
		return cc.Properties
	case Report:
		return cc.Properties
	default:
		return nil
	}
}

// CheckID returns the `id` attribute, if any.
func CheckID(c Check) string {
	switch cc := c.(type) {
	case Assert:
		return cc.ID
	case Report:
		return cc.ID
	default:
		return ""
	}
}

// IsAssert reports whether c is an Assert (as opposed to a Report).
func IsAssert(c Check) bool {
	_, ok := c.(Assert)
	return ok
}
