package svrl

import (
	"github.com/go-schematron/schematron/ast"
	"github.com/go-schematron/schematron/result"
)

// ToolName/ToolVersion populate MetaData's creator-agent fields (spec.md
// §4.7).
const (
	ToolName    = "go-schematron"
	ToolVersion = "0.1.0"
)

// Build converts a document's validation result into a SchematronOutput,
// following spec.md §4.7's grouping algorithm. created is the local-zone
// ISO 8601 creation timestamp to stamp into the metadata block (passed in
// rather than read from time.Now(), so callers control the stamped value
// and Build stays a pure function of its inputs).
func Build(docResult result.XMLDocumentValidationResult, created string) SchematronOutput {
	schema := docResult.Schema

	var title string
	if schema.Title != nil {
		title = schema.Title.Content
	}

	texts := make([]Text, 0, len(schema.Paragraphs))
	for _, p := range schema.Paragraphs {
		texts = append(texts, Text{
			Content: p.Content,
			Class:   p.Class,
			ID:      p.ID,
			Icon:    p.Icon,
			XMLLang: p.XMLLang,
		})
	}

	nsPrefixes := make([]NSPrefixInAttributeValues, 0, len(schema.Namespaces))
	for _, n := range schema.Namespaces {
		nsPrefixes = append(nsPrefixes, NSPrefixInAttributeValues{Prefix: n.Prefix, URI: n.URI})
	}

	metadata := MetaData{
		CreatorName:    ToolName,
		CreatorVersion: ToolVersion,
		Created:        created,
		Source:         docResult.DocumentURI,
	}

	return SchematronOutput{
		Title:            title,
		SchemaVersion:    schema.SchemaVersion,
		Phase:            docResult.Phase,
		Texts:            texts,
		NSPrefixes:       nsPrefixes,
		MetaData:         metadata,
		ValidationEvents: buildValidationEvents(docResult),
	}
}

// buildValidationEvents groups rule results by pattern encounter order
// (spec.md §4.7): every node's PatternResults slice has the same length
// and pattern-ordering (the validate package runs every pattern validator
// against every node), so the pattern at index i is the same logical
// pattern across all of docResult.NodeResults.
func buildValidationEvents(docResult result.XMLDocumentValidationResult) []ValidationEvent {
	if len(docResult.NodeResults) == 0 {
		return nil
	}
	patternCount := len(docResult.NodeResults[0].PatternResults)

	documentURI := fileURI(docResult.DocumentURI)

	var events []ValidationEvent
	for i := 0; i < patternCount; i++ {
		if !patternFired(docResult.NodeResults, i) {
			continue
		}
		pattern := docResult.NodeResults[0].PatternResults[i].Pattern
		events = append(events, ActivePattern{
			ID:        pattern.ID,
			Documents: documentURI,
			See:       pattern.See,
		})
		for _, nr := range docResult.NodeResults {
			pr := nr.PatternResults[i]
			events = append(events, ruleEvents(pr, nr, documentURI)...)
		}
	}
	return events
}

// fileURI prefixes a document path with "file:" (spec.md §4.7's closing
// paragraph), unless it already names a URI scheme or is empty.
func fileURI(documentURI string) string {
	if documentURI == "" {
		return ""
	}
	for i := 0; i < len(documentURI); i++ {
		c := documentURI[i]
		if c == ':' {
			return documentURI
		}
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '+' || c == '-' || c == '.') {
			break
		}
	}
	return "file:" + documentURI
}

func patternFired(nodeResults []result.FullNodeResult, patternIndex int) bool {
	for _, nr := range nodeResults {
		for _, rr := range nr.PatternResults[patternIndex].RuleResults {
			if _, ok := rr.(result.FiredRuleResult); ok {
				return true
			}
		}
	}
	return false
}

func ruleEvents(pr result.PatternResult, nr result.FullNodeResult, documentURI string) []ValidationEvent {
	var events []ValidationEvent
	for _, rr := range pr.RuleResults {
		switch r := rr.(type) {
		case result.FiredRuleResult:
			events = append(events, FiredRule{
				Context:  r.Rl.Context.Query,
				ID:       r.Rl.ID,
				Document: documentURI,
				Role:     r.Rl.Role,
				See:      r.Rl.See,
				Flag:     r.Rl.Flag,
			})
			events = append(events, checkEvents(r, nr)...)
		case result.SuppressedRuleResult:
			events = append(events, SuppressedRule{
				Context:  r.Rl.Context.Query,
				ID:       r.Rl.ID,
				Document: documentURI,
			})
		case result.SkippedRuleResult:
			// spec.md §4.7: "Skipped rule -> no event."
		}
	}
	return events
}

func checkEvents(fired result.FiredRuleResult, nr result.FullNodeResult) []ValidationEvent {
	var events []ValidationEvent
	for _, cr := range fired.CheckResults {
		if !cr.IsFailure() {
			continue
		}

		diags := make([]DiagnosticReference, 0, len(cr.Diagnostics))
		for _, d := range cr.Diagnostics {
			diags = append(diags, DiagnosticReference{Diagnostic: d.Diagnostic.ID, Text: d.Text})
		}
		props := make([]PropertyReference, 0, len(cr.Properties))
		for _, p := range cr.Properties {
			props = append(props, PropertyReference{Property: p.Property.ID, Role: p.Property.Role, Text: p.Text})
		}

		var subject string
		if cr.SubjectNode != nil {
			subject = cr.SubjectNode.Path()
		} else if fired.SubjectNode != nil {
			subject = fired.SubjectNode.Path()
		}

		location := nr.Node.Path()

		if ast.IsAssert(cr.Check) {
			events = append(events, FailedAssert{
				Test:        ast.CheckTest(cr.Check).Query,
				Location:    location,
				ID:          ast.CheckID(cr.Check),
				Role:        checkRole(cr.Check),
				See:         checkSee(cr.Check),
				Flag:        checkFlag(cr.Check),
				Text:        cr.Text,
				Diagnostics: diags,
				Properties:  props,
				Subject:     subject,
			})
		} else {
			events = append(events, SuccessfulReport{
				Test:        ast.CheckTest(cr.Check).Query,
				Location:    location,
				ID:          ast.CheckID(cr.Check),
				Role:        checkRole(cr.Check),
				See:         checkSee(cr.Check),
				Flag:        checkFlag(cr.Check),
				Text:        cr.Text,
				Diagnostics: diags,
				Properties:  props,
				Subject:     subject,
			})
		}
	}
	return events
}

func checkRole(c ast.Check) string {
	switch cc := c.(type) {
	case ast.Assert:
		return cc.Role
	case ast.Report:
		return cc.Role
	default:
		return ""
	}
}

func checkSee(c ast.Check) string {
	switch cc := c.(type) {
	case ast.Assert:
		return cc.See
	case ast.Report:
		return cc.See
	default:
		return ""
	}
}

func checkFlag(c ast.Check) string {
	switch cc := c.(type) {
	case ast.Assert:
		return cc.Flag
	case ast.Report:
		return cc.Flag
	default:
		return ""
	}
}
