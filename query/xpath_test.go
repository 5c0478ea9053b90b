package query

import (
	"strings"
	"testing"

	"github.com/antchfx/xmlquery"
)

func parseTestDoc(t *testing.T, xmlSrc string) *xmlquery.Node {
	t.Helper()
	doc, err := xmlquery.Parse(strings.NewReader(xmlSrc))
	if err != nil {
		t.Fatalf("failed to parse test document: %v", err)
	}
	return doc
}

func TestXPathQueryEvaluateBoolean(t *testing.T) {
	doc := parseTestDoc(t, `<root><item value="5"/></root>`)
	root := xmlquery.FindOne(doc, "//root")

	processor := NewXPathQueryProcessor(nil)
	q, err := processor.Parser().Parse("item/@value = '5'")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	ctx := NewEvaluationContext(NewElementNode(doc)).WithContextItem(NewElementNode(root))
	result, err := q.Evaluate(ctx)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if !result.AsBoolean() {
		t.Error("expected true result")
	}
}

func TestXPathQueryEvaluateNodeSet(t *testing.T) {
	doc := parseTestDoc(t, `<root><item id="a"/><item id="b"/></root>`)
	root := xmlquery.FindOne(doc, "//root")

	processor := NewXPathQueryProcessor(nil)
	q, err := processor.Parser().Parse("item")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	ctx := NewEvaluationContext(NewElementNode(doc)).WithContextItem(NewElementNode(root))
	result, err := q.Evaluate(ctx)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if !result.IsNodeSet() {
		t.Fatal("expected a node-set result")
	}
	if len(result.Nodes()) != 2 {
		t.Errorf("expected 2 nodes, got %d", len(result.Nodes()))
	}
}

func TestXPathParserWithNamespaces(t *testing.T) {
	doc := parseTestDoc(t, `<root xmlns:n="urn:example"><n:item/></root>`)
	root := xmlquery.FindOne(doc, "//*[local-name()='root']")

	processor := NewXPathQueryProcessor(map[string]string{"n": "urn:example"})
	q, err := processor.Parser().Parse("n:item")
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	ctx := NewEvaluationContext(NewElementNode(doc)).WithContextItem(NewElementNode(root))
	result, err := q.Evaluate(ctx)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if len(result.Nodes()) != 1 {
		t.Errorf("expected 1 namespaced node, got %d", len(result.Nodes()))
	}
}

func TestXPathParserWithCustomFunctionRejected(t *testing.T) {
	processor := NewXPathQueryProcessor(nil)
	_, err := processor.Parser().WithCustomFunction(CustomFunction{Name: "my-fn", Arity: 1})
	if err == nil {
		t.Fatal("expected WithCustomFunction to fail for the XPath 1.0 engine")
	}
}

func TestXPathParserInvalidSyntax(t *testing.T) {
	processor := NewXPathQueryProcessor(nil)
	_, err := processor.Parser().Parse("///[[[")
	if err == nil {
		t.Fatal("expected a parse error for malformed XPath")
	}
}
