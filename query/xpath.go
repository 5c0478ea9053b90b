package query

import (
	"fmt"

	"github.com/antchfx/xmlquery"
	"github.com/antchfx/xpath"

	"github.com/go-schematron/schematron/errors"
)

// XPathQueryProcessor is the sole concrete QueryProcessor this repository
// binds: an antchfx/xpath-backed XPath 1.0 engine, registered under every
// query-binding name spec.md §4.3 lists (xpath, xpath2, xpath3, xpath31,
// xslt, xslt2, xslt3) because antchfx/xpath implements only XPath 1.0
// grammar regardless of which binding name requested it (SPEC_FULL.md §D).
type XPathQueryProcessor struct {
	parser QueryParser
}

// NewXPathQueryProcessor builds a processor with ns as its namespace
// bindings.
func NewXPathQueryProcessor(ns map[string]string) *XPathQueryProcessor {
	return &XPathQueryProcessor{parser: &xpathParser{namespaces: ns}}
}

// Parser implements QueryProcessor.
func (p *XPathQueryProcessor) Parser() QueryParser { return p.parser }

// xpathParser compiles XPath 1.0 expression text via antchfx/xpath.
type xpathParser struct {
	namespaces map[string]string
}

// Parse implements QueryParser.
func (p *xpathParser) Parse(source string) (Query, error) {
	var expr *xpath.Expr
	var err error

	if len(p.namespaces) > 0 {
		expr, err = xpath.CompileWithNS(source, p.namespaces)
	} else {
		expr, err = xpath.Compile(source)
	}
	if err != nil {
		return nil, errors.NewQueryParseError(source, err)
	}

	return &xpathQuery{source: source, expr: expr}, nil
}

// WithNamespaces implements QueryParser, merging ns over the receiver's
// existing bindings.
func (p *xpathParser) WithNamespaces(ns map[string]string) QueryParser {
	if len(ns) == 0 {
		return p
	}
	merged := make(map[string]string, len(p.namespaces)+len(ns))
	for k, v := range p.namespaces {
		merged[k] = v
	}
	for k, v := range ns {
		merged[k] = v
	}
	return &xpathParser{namespaces: merged}
}

// WithCustomFunction implements QueryParser. The antchfx/xpath 1.0 engine
// has no supported extension-function registration hook, matching spec.md
// §4.3's statement that XPath 1.0 parsers reject custom function
// declarations; callers wanting custom functions must register an
// additional query-binding backed by a different QueryProcessor
// implementation via ExtendableQueryProcessorFactory instead.
func (p *xpathParser) WithCustomFunction(fn CustomFunction) (QueryParser, error) {
	return nil, errors.NewXPath1CustomFunctionUnsupportedError(fn.Name)
}

// xpathQuery is a compiled antchfx/xpath expression bound to its source
// text.
type xpathQuery struct {
	source string
	expr   *xpath.Expr
}

// Source implements Query.
func (q *xpathQuery) Source() string { return q.source }

// Evaluate implements Query by running the compiled expression against
// ctx's context item and normalizing antchfx/xpath's untyped result into a
// Result.
func (q *xpathQuery) Evaluate(ctx EvaluationContext) (Result, error) {
	item := ctx.ContextItem()
	if item == nil || item.Elem == nil {
		return Result{}, fmt.Errorf("query: evaluation context has no context item")
	}

	nav := xmlquery.CreateXPathNavigator(item.Elem)

	raw := q.expr.Evaluate(nav)

	switch v := raw.(type) {
	case bool:
		return NewBooleanResult(v), nil
	case float64:
		return NewNumberResult(v), nil
	case string:
		return NewStringResult(v), nil
	case *xpath.NodeIterator:
		var nodes []*XMLNode
		for v.MoveNext() {
			n := wrapNavigatorNode(v.Current())
			if n != nil {
				nodes = append(nodes, n)
			}
		}
		return NewNodeSetResult(nodes), nil
	default:
		return Result{}, fmt.Errorf("query: unsupported result type %T", raw)
	}
}

// wrapNavigatorNode converts an antchfx xpath.NodeNavigator positioned on a
// result node back into this package's XMLNode descriptor. Attribute
// results are distinguished via the navigator's NodeType()/LocalName()/
// Value() interface methods rather than xmlquery.Node's own Type field,
// since xmlquery never represents attributes as distinct tree nodes.
func wrapNavigatorNode(nav xpath.NodeNavigator) *XMLNode {
	xn, ok := nav.(*xmlquery.NodeNavigator)
	if !ok {
		return nil
	}
	cur := xn.Current()
	if cur == nil {
		return nil
	}

	switch nav.NodeType() {
	case xpath.AttributeNode:
		return NewAttributeNode(cur, nav.LocalName(), nav.Value())
	default:
		return NewElementNode(cur)
	}
}
