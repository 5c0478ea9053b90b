package xmlparse

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/antchfx/xmlquery"

	"github.com/go-schematron/schematron/ast"
)

// resolveHref resolves an href attribute (from <include> or <extends>)
// against basePath: absolute hrefs pass through unchanged, relative hrefs
// are joined to basePath and cleaned.
func resolveHref(href, basePath string) string {
	if filepath.IsAbs(href) {
		return href
	}
	return filepath.Clean(filepath.Join(basePath, href))
}

func dirOf(path string) string { return filepath.Dir(path) }

// loadXMLDocument reads and parses the XML file at path, returning its
// document element.
func loadXMLDocument(path string) (*xmlquery.Node, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path resolved from schema-declared hrefs
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	doc, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	root := xmlquery.FindOne(doc, "/*")
	if root == nil {
		return nil, fmt.Errorf("%s: no root element", path)
	}
	return root, nil
}

// includeParser parses <include href=""/>, loading the referenced file and
// dispatching to whichever parser handles its root element's tag — the
// included content can be any Schematron element, not just a pattern or
// rule (spec.md §4.1's include-resolution step).
type includeParser struct{}

func (includeParser) Parse(el *xmlquery.Node, ctx *ParsingContext) (ast.Node, error) {
	href := attr(el, "href")
	filePath := resolveHref(href, ctx.BasePath)

	root, err := loadXMLDocument(filePath)
	if err != nil {
		return nil, fmt.Errorf("resolving <include href=%q>: %w", href, err)
	}

	parser, err := ctx.Factory.GetParser(root.Data)
	if err != nil {
		return nil, err
	}

	subCtx := &ParsingContext{Factory: ctx.Factory, BasePath: dirOf(filePath)}
	return parser.Parse(root, subCtx)
}
