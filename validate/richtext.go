package validate

import (
	"strings"

	"github.com/go-schematron/schematron/ast"
	"github.com/go-schematron/schematron/query"
)

// textFragment is a pre-compiled piece of rich-text content (spec.md §4.4
// "Rich-text evaluation"): either a literal string fragment passed through
// verbatim, or a compiled query whose stringified result is substituted in
// at evaluation time.
type textFragment struct {
	literal string
	query   *dynamicQuery // nil for a literal fragment
}

// compileRichText pre-compiles a rich-text sequence: ValueOf(select) is
// compiled to parse(select); Name is compiled to parse("./name()") or, if
// it carries a path, parse(path + "/name()") with any trailing slash
// trimmed (spec.md §4.4).
func compileRichText(items []ast.RichTextItem, parser query.QueryParser) ([]textFragment, error) {
	out := make([]textFragment, 0, len(items))
	for _, it := range items {
		switch v := it.(type) {
		case ast.Text:
			if v == "" {
				continue
			}
			out = append(out, textFragment{literal: string(v)})
		case ast.ValueOf:
			q, err := newDynamicQuery(v.Select.Query, parser)
			if err != nil {
				return nil, err
			}
			out = append(out, textFragment{query: q})
		case ast.Name:
			path := "./name()"
			if v.Path != nil {
				path = strings.TrimSuffix(v.Path.Query, "/") + "/name()"
			}
			q, err := newDynamicQuery(path, parser)
			if err != nil {
				return nil, err
			}
			out = append(out, textFragment{query: q})
		}
	}
	return out, nil
}

// evaluateRichText concatenates frags against ctx, stringifying query
// results via stringifyValueOf (a node-set concatenates the string-value
// of its members; a scalar is stringified directly), then strips leading
// and trailing whitespace from the concatenation (spec.md §4.4).
func evaluateRichText(frags []textFragment, ctx query.EvaluationContext) (string, error) {
	var b strings.Builder
	for _, f := range frags {
		if f.query == nil {
			b.WriteString(f.literal)
			continue
		}
		res, err := f.query.Evaluate(ctx)
		if err != nil {
			return "", err
		}
		b.WriteString(stringifyValueOf(res))
	}
	return strings.TrimSpace(b.String()), nil
}

// stringifyValueOf renders a value-of/name query result into text. Unlike
// Result.AsString()'s XPath string()-rule of taking only the first node of
// a node-set, rich-text rendering concatenates the string-value of every
// node in the sequence (spec.md §4.4: "for a sequence of XPath nodes,
// concatenate their string values"), since a <value-of select="item"/>
// over several matching items is meant to list them all.
func stringifyValueOf(res query.Result) string {
	if !res.IsNodeSet() {
		return res.AsString()
	}
	var b strings.Builder
	for _, n := range res.Nodes() {
		b.WriteString(n.StringValue())
	}
	return b.String()
}
