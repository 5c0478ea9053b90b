package query

import (
	"strings"
	"testing"

	"github.com/antchfx/xmlquery"
)

func TestCanonicalPathElements(t *testing.T) {
	doc := parseTestDoc(t, `<root><item/><item/></root>`)
	items := xmlquery.Find(doc, "//item")
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}

	n1 := NewElementNode(items[0])
	n2 := NewElementNode(items[1])

	if n1.Path() != "/root[1]/item[1]" {
		t.Errorf("unexpected path for first item: %s", n1.Path())
	}
	if n2.Path() != "/root[1]/item[2]" {
		t.Errorf("unexpected path for second item: %s", n2.Path())
	}
}

func TestCanonicalPathAttribute(t *testing.T) {
	doc := parseTestDoc(t, `<root id="x"/>`)
	root := xmlquery.FindOne(doc, "//root")

	attr := NewAttributeNode(root, "id", "x")
	if attr.Path() != "/root[1]/@id" {
		t.Errorf("unexpected attribute path: %s", attr.Path())
	}
}

func TestCanonicalPathComment(t *testing.T) {
	doc, err := xmlquery.Parse(strings.NewReader(`<root><!-- hi --></root>`))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	root := xmlquery.FindOne(doc, "//root")

	var comment *xmlquery.Node
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.CommentNode {
			comment = c
		}
	}
	if comment == nil {
		t.Fatal("expected a comment child")
	}

	n := NewElementNode(comment)
	if n.Kind != CommentNode {
		t.Fatalf("expected CommentNode kind, got %v", n.Kind)
	}
	if n.Path() != "/root[1]/comment()[1]" {
		t.Errorf("unexpected comment path: %s", n.Path())
	}
}
