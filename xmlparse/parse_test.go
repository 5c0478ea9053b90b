package xmlparse

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-schematron/schematron/ast"
)

func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	return path
}

func TestParseSchemaFileBasic(t *testing.T) {
	dir := t.TempDir()
	path := writeTestFile(t, dir, "schema.sch", `<?xml version="1.0"?>
<schema xmlns="http://purl.oclc.org/dsdl/schematron" queryBinding="xslt2">
  <title>Sample schema</title>
  <ns prefix="ex" uri="urn:example"/>
  <pattern id="p1">
    <rule context="ex:item">
      <assert test="@id" id="a1">Every item needs an id.</assert>
      <report test="not(@id)">Item is missing an id.</report>
    </rule>
  </pattern>
</schema>`)

	schema, err := ParseSchemaFile(path)
	if err != nil {
		t.Fatalf("ParseSchemaFile failed: %v", err)
	}

	if schema.QueryBinding != "xslt2" {
		t.Errorf("expected queryBinding xslt2, got %q", schema.QueryBinding)
	}
	if schema.Title == nil || schema.Title.Content != "Sample schema" {
		t.Errorf("unexpected title: %+v", schema.Title)
	}
	if len(schema.Namespaces) != 1 || schema.Namespaces[0].Prefix != "ex" {
		t.Fatalf("expected one namespace 'ex', got %+v", schema.Namespaces)
	}
	if len(schema.Patterns) != 1 {
		t.Fatalf("expected one pattern, got %d", len(schema.Patterns))
	}

	pattern, ok := schema.Patterns[0].(ast.ConcretePattern)
	if !ok {
		t.Fatalf("expected ConcretePattern, got %T", schema.Patterns[0])
	}
	if len(pattern.Rules) != 1 {
		t.Fatalf("expected one rule, got %d", len(pattern.Rules))
	}

	rule, ok := pattern.Rules[0].(ast.ConcreteRule)
	if !ok {
		t.Fatalf("expected ConcreteRule, got %T", pattern.Rules[0])
	}
	if rule.Context.Query != "ex:item" {
		t.Errorf("unexpected context: %q", rule.Context.Query)
	}
	if len(rule.Checks) != 2 {
		t.Fatalf("expected two checks, got %d", len(rule.Checks))
	}
	if !ast.IsAssert(rule.Checks[0]) {
		t.Error("expected the first check to be an assert")
	}
	if ast.IsAssert(rule.Checks[1]) {
		t.Error("expected the second check to be a report")
	}
}

func TestParseAbstractAndInstancePattern(t *testing.T) {
	dir := t.TempDir()
	path := writeTestFile(t, dir, "schema.sch", `<?xml version="1.0"?>
<schema xmlns="http://purl.oclc.org/dsdl/schematron">
  <pattern id="base" abstract="true">
    <rule context="$ctx" abstract="true" id="base-rule">
      <assert test="true()">ok</assert>
    </rule>
  </pattern>
  <pattern id="derived" is-a="base">
    <param name="ctx" value="item"/>
  </pattern>
</schema>`)

	schema, err := ParseSchemaFile(path)
	if err != nil {
		t.Fatalf("ParseSchemaFile failed: %v", err)
	}
	if len(schema.Patterns) != 2 {
		t.Fatalf("expected two patterns, got %d", len(schema.Patterns))
	}
	if _, ok := schema.Patterns[0].(ast.AbstractPattern); !ok {
		t.Errorf("expected first pattern to be abstract, got %T", schema.Patterns[0])
	}
	instance, ok := schema.Patterns[1].(ast.InstancePattern)
	if !ok {
		t.Fatalf("expected second pattern to be an instance pattern, got %T", schema.Patterns[1])
	}
	if instance.AbstractIDRef != "base" {
		t.Errorf("expected is-a reference 'base', got %q", instance.AbstractIDRef)
	}
	if len(instance.Params) != 1 || instance.Params[0].Name != "ctx" {
		t.Errorf("unexpected params: %+v", instance.Params)
	}
}

func TestParseLetVariable(t *testing.T) {
	dir := t.TempDir()
	path := writeTestFile(t, dir, "schema.sch", `<?xml version="1.0"?>
<schema xmlns="http://purl.oclc.org/dsdl/schematron">
  <let name="threshold" value="10"/>
  <pattern id="p1">
    <rule context="item">
      <assert test="@count &lt; $threshold">fine</assert>
    </rule>
  </pattern>
</schema>`)

	schema, err := ParseSchemaFile(path)
	if err != nil {
		t.Fatalf("ParseSchemaFile failed: %v", err)
	}
	if len(schema.Variables) != 1 {
		t.Fatalf("expected one variable, got %d", len(schema.Variables))
	}
	qv, ok := schema.Variables[0].(ast.QueryVariable)
	if !ok {
		t.Fatalf("expected QueryVariable, got %T", schema.Variables[0])
	}
	if qv.Name != "threshold" || qv.Value.Query != "10" {
		t.Errorf("unexpected variable: %+v", qv)
	}
}

func TestParseDiagnosticsAndProperties(t *testing.T) {
	dir := t.TempDir()
	path := writeTestFile(t, dir, "schema.sch", `<?xml version="1.0"?>
<schema xmlns="http://purl.oclc.org/dsdl/schematron">
  <diagnostics>
    <diagnostic id="d1">Node value was <value-of select="."/>.</diagnostic>
  </diagnostics>
  <properties>
    <property id="pr1" role="error">Severe</property>
  </properties>
  <pattern id="p1">
    <rule context="item">
      <assert test="@id" diagnostics="d1" properties="pr1">needs an id</assert>
    </rule>
  </pattern>
</schema>`)

	schema, err := ParseSchemaFile(path)
	if err != nil {
		t.Fatalf("ParseSchemaFile failed: %v", err)
	}
	if len(schema.Diagnostics) != 1 || len(schema.Diagnostics[0].Diagnostics) != 1 {
		t.Fatalf("unexpected diagnostics: %+v", schema.Diagnostics)
	}
	if len(schema.Properties) != 1 || len(schema.Properties[0].Properties) != 1 {
		t.Fatalf("unexpected properties: %+v", schema.Properties)
	}

	pattern := schema.Patterns[0].(ast.ConcretePattern)
	rule := pattern.Rules[0].(ast.ConcreteRule)
	assertCheck := rule.Checks[0].(ast.Assert)
	if len(assertCheck.Diagnostics) != 1 || assertCheck.Diagnostics[0] != "d1" {
		t.Errorf("unexpected diagnostics refs: %+v", assertCheck.Diagnostics)
	}
	if len(assertCheck.Properties) != 1 || assertCheck.Properties[0] != "pr1" {
		t.Errorf("unexpected properties refs: %+v", assertCheck.Properties)
	}
}

func TestParseRejectsNonSchemaRoot(t *testing.T) {
	dir := t.TempDir()
	path := writeTestFile(t, dir, "not-a-schema.xml", `<root/>`)

	if _, err := ParseSchemaFile(path); err == nil {
		t.Error("expected an error when the root element is not <schema>")
	}
}
