package schematron

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-schematron/schematron/result"
	"github.com/go-schematron/schematron/svrl"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

// S1: trivial passing schema.
func TestValidateFile_TrivialPass(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeFile(t, dir, "schema.sch", `<?xml version="1.0"?>
<schema xmlns="http://purl.oclc.org/dsdl/schematron">
  <pattern id="p1">
    <rule context="/root">
      <assert test="true()" id="a1">X</assert>
    </rule>
  </pattern>
</schema>`)
	xmlPath := writeFile(t, dir, "data.xml", `<root/>`)

	vr, err := ValidateFile(xmlPath, schemaPath, "")
	if err != nil {
		t.Fatalf("ValidateFile failed: %v", err)
	}
	if !vr.IsValid() {
		t.Errorf("expected valid, got %d failure(s)", vr.FailureCount())
	}

	var activeCount, firedCount, assertCount int
	for _, ev := range vr.SVRL().ValidationEvents {
		switch ev.(type) {
		case svrl.ActivePattern:
			activeCount++
		case svrl.FiredRule:
			firedCount++
		case svrl.FailedAssert:
			assertCount++
		}
	}
	if activeCount != 1 || firedCount != 1 || assertCount != 0 {
		t.Errorf("expected one active-pattern, one fired-rule, zero failed-assert, got active=%d fired=%d assert=%d", activeCount, firedCount, assertCount)
	}
}

// S2: failing assert.
func TestValidateFile_FailingAssert(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeFile(t, dir, "schema.sch", `<?xml version="1.0"?>
<schema xmlns="http://purl.oclc.org/dsdl/schematron">
  <pattern id="p1">
    <rule context="/root">
      <assert test="false()" id="a1">X</assert>
    </rule>
  </pattern>
</schema>`)
	xmlPath := writeFile(t, dir, "data.xml", `<root/>`)

	vr, err := ValidateFile(xmlPath, schemaPath, "")
	if err != nil {
		t.Fatalf("ValidateFile failed: %v", err)
	}
	if vr.IsValid() {
		t.Fatal("expected invalid result")
	}
	if vr.FailureCount() != 1 {
		t.Errorf("expected one failure, got %d", vr.FailureCount())
	}

	svrlText, err := vr.WriteSVRL()
	if err != nil {
		t.Fatalf("WriteSVRL failed: %v", err)
	}
	if !containsAll(svrlText, `failed-assert`, `>X<`, `location="/root[1]"`) {
		t.Errorf("expected failed-assert with text X at /root, got:\n%s", svrlText)
	}
}

// S3: firing report.
func TestValidateFile_FiringReport(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeFile(t, dir, "schema.sch", `<?xml version="1.0"?>
<schema xmlns="http://purl.oclc.org/dsdl/schematron">
  <pattern id="p1">
    <rule context="/root/fruit">
      <report test="true()" id="r1">banana</report>
    </rule>
  </pattern>
</schema>`)
	xmlPath := writeFile(t, dir, "data.xml", `<root><fruit/></root>`)

	vr, err := ValidateFile(xmlPath, schemaPath, "")
	if err != nil {
		t.Fatalf("ValidateFile failed: %v", err)
	}
	if vr.IsValid() {
		t.Fatal("expected invalid result (a firing report is a validation-relevant event)")
	}

	svrlText, err := vr.WriteSVRL()
	if err != nil {
		t.Fatalf("WriteSVRL failed: %v", err)
	}
	if !containsAll(svrlText, "successful-report", "banana") {
		t.Errorf("expected successful-report with text banana, got:\n%s", svrlText)
	}
}

// S4: rule shadowing — of two rules with overlapping contexts, only the
// first fires.
func TestValidateFile_RuleShadowing(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeFile(t, dir, "schema.sch", `<?xml version="1.0"?>
<schema xmlns="http://purl.oclc.org/dsdl/schematron">
  <pattern id="p1">
    <rule context="*" id="r1">
      <assert test="true()">first</assert>
    </rule>
    <rule context="*" id="r2">
      <assert test="false()">second</assert>
    </rule>
  </pattern>
</schema>`)
	xmlPath := writeFile(t, dir, "data.xml", `<root><a/></root>`)

	vr, err := ValidateFile(xmlPath, schemaPath, "")
	if err != nil {
		t.Fatalf("ValidateFile failed: %v", err)
	}
	if !vr.IsValid() {
		t.Fatalf("expected valid (shadowed rule's failing assert must not count), got %d failures", vr.FailureCount())
	}

	var firedCount, suppressedCount int
	for _, nr := range vr.Raw().NodeResults {
		for _, pr := range nr.PatternResults {
			for _, rr := range pr.RuleResults {
				switch rr.(type) {
				case result.FiredRuleResult:
					firedCount++
				case result.SuppressedRuleResult:
					suppressedCount++
				}
			}
		}
	}
	if firedCount == 0 || suppressedCount == 0 {
		t.Errorf("expected both a fired and a suppressed rule result, got fired=%d suppressed=%d", firedCount, suppressedCount)
	}
}

// S5: abstract pattern instantiation.
func TestValidateFile_AbstractPatternInstantiation(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeFile(t, dir, "schema.sch", `<?xml version="1.0"?>
<schema xmlns="http://purl.oclc.org/dsdl/schematron">
  <pattern id="base" abstract="true">
    <rule context="$ctx">
      <assert test="$cond">M</assert>
    </rule>
  </pattern>
  <pattern id="derived" is-a="base">
    <param name="ctx" value="item"/>
    <param name="cond" value="@ok"/>
  </pattern>
</schema>`)
	xmlPath := writeFile(t, dir, "data.xml", `<root><item ok="1"/><item/></root>`)

	vr, err := ValidateFile(xmlPath, schemaPath, "")
	if err != nil {
		t.Fatalf("ValidateFile failed: %v", err)
	}
	if vr.FailureCount() != 1 {
		t.Errorf("expected one failed-assert on the second item, got %d", vr.FailureCount())
	}
}

// S6: phase pruning keeps only the selected phase's patterns.
func TestValidateFile_PhasePruning(t *testing.T) {
	dir := t.TempDir()
	schemaPath := writeFile(t, dir, "schema.sch", `<?xml version="1.0"?>
<schema xmlns="http://purl.oclc.org/dsdl/schematron">
  <phase id="q">
    <active pattern="p1"/>
  </phase>
  <pattern id="p1">
    <rule context="/root">
      <assert test="true()" id="a1">from p1</assert>
    </rule>
  </pattern>
  <pattern id="p2">
    <rule context="/root">
      <assert test="false()" id="a2">from p2</assert>
    </rule>
  </pattern>
</schema>`)
	xmlPath := writeFile(t, dir, "data.xml", `<root/>`)

	vr, err := ValidateFile(xmlPath, schemaPath, "q")
	if err != nil {
		t.Fatalf("ValidateFile failed: %v", err)
	}
	if !vr.IsValid() {
		t.Errorf("expected valid: phase q excludes p2's failing assert, got %d failures", vr.FailureCount())
	}

	svrlText, err := vr.WriteSVRL()
	if err != nil {
		t.Fatalf("WriteSVRL failed: %v", err)
	}
	if containsAll(svrlText, "from p2") {
		t.Errorf("expected no trace of p2's rule in phase-pruned SVRL, got:\n%s", svrlText)
	}
}

func containsAll(s string, subs ...string) bool {
	for _, sub := range subs {
		if !strings.Contains(s, sub) {
			return false
		}
	}
	return true
}
