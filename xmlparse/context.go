// Package xmlparse turns a Schematron XML document into the ast package's
// node tree: one ElementParser per Schematron tag, dispatched through a
// ParserFactory so a caller can swap in a parser for a custom AST subtype
// without forking the whole parser (spec.md §4.1's "parse" stage, grounded
// on original_source/pyschematron/direct_mode/schematron/parsers/xml).
package xmlparse

import (
	"fmt"

	"github.com/antchfx/xmlquery"

	"github.com/go-schematron/schematron/ast"
)

// schematronNS is the fixed namespace URI every Schematron element lives
// in. The parsers match elements by local name only and do not compare
// their namespace against it.
const schematronNS = "http://purl.oclc.org/dsdl/schematron"

// ElementParser parses one XML element into an ast.Node.
type ElementParser interface {
	Parse(el *xmlquery.Node, ctx *ParsingContext) (ast.Node, error)
}

// ParserFactory resolves a Schematron XML tag name to the ElementParser
// that handles it. By going through a factory, a caller wanting a
// subclassed AST node (e.g. an Assert carrying extra attributes) only
// needs to register a replacement parser for "assert", not fork every
// other tag's parser too.
type ParserFactory interface {
	GetParser(tag string) (ElementParser, error)
}

// DefaultParserFactory returns this package's built-in parser for each of
// the twenty Schematron element tags.
type DefaultParserFactory struct {
	parsers map[string]ElementParser
}

// NewDefaultParserFactory builds the standard tag-to-parser table.
func NewDefaultParserFactory() *DefaultParserFactory {
	return &DefaultParserFactory{
		parsers: map[string]ElementParser{
			"schema":      schemaParser{},
			"ns":          namespaceParser{},
			"phase":       phaseParser{},
			"active":      activePhaseParser{},
			"pattern":     patternParser{},
			"rule":        ruleParser{},
			"assert":      checkParser{isAssert: true},
			"report":      checkParser{isAssert: false},
			"extends":     extendsParser{},
			"param":       patternParameterParser{},
			"diagnostics": diagnosticsParser{},
			"diagnostic":  diagnosticParser{},
			"properties":  propertiesParser{},
			"property":    propertyParser{},
			"name":        nameParser{},
			"value-of":    valueOfParser{},
			"let":         variableParser{},
			"p":           paragraphParser{},
			"title":       titleParser{},
			"include":     includeParser{},
		},
	}
}

// GetParser implements ParserFactory.
func (f *DefaultParserFactory) GetParser(tag string) (ElementParser, error) {
	p, ok := f.parsers[tag]
	if !ok {
		return nil, fmt.Errorf("xmlparse: no parser registered for <%s>", tag)
	}
	return p, nil
}

// RegisterParser overrides (or adds) the parser used for tag, returning f
// for chaining.
func (f *DefaultParserFactory) RegisterParser(tag string, parser ElementParser) *DefaultParserFactory {
	f.parsers[tag] = parser
	return f
}

// ParsingContext carries the state threaded through every ElementParser
// call: which factory to dispatch through, and the base directory against
// which <include href=""> and <extends href=""> are resolved.
type ParsingContext struct {
	Factory  ParserFactory
	BasePath string
}

// NewParsingContext builds a context with the default parser factory.
func NewParsingContext(basePath string) *ParsingContext {
	return &ParsingContext{Factory: NewDefaultParserFactory(), BasePath: basePath}
}

// childElements returns el's direct element children with local name tag,
// in document order, whatever their namespace.
func childElements(el *xmlquery.Node, tag string) []*xmlquery.Node {
	var out []*xmlquery.Node
	for c := el.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == xmlquery.ElementNode && c.Data == tag {
			out = append(out, c)
		}
	}
	return out
}

// parseChildTags parses every direct child of el with local name tag,
// using ctx's factory, and returns the resulting nodes in document order.
func parseChildTags(el *xmlquery.Node, ctx *ParsingContext, tag string) ([]ast.Node, error) {
	parser, err := ctx.Factory.GetParser(tag)
	if err != nil {
		return nil, err
	}

	var out []ast.Node
	for _, child := range childElements(el, tag) {
		node, err := parser.Parse(child, ctx)
		if err != nil {
			return nil, fmt.Errorf("parsing <%s>: %w", tag, err)
		}
		out = append(out, node)
	}
	return out, nil
}
