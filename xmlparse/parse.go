package xmlparse

import (
	"fmt"

	"github.com/go-schematron/schematron/ast"
)

// ParseSchemaFile reads and parses the Schematron schema at path into an
// ast.Schema, using the default parser factory and path's directory as the
// base for resolving <include>/<extends href="">.
func ParseSchemaFile(path string) (ast.Schema, error) {
	return ParseSchemaFileWithFactory(path, NewDefaultParserFactory())
}

// ParseSchemaFileWithFactory is ParseSchemaFile with a caller-supplied
// ParserFactory, letting callers register parsers for custom AST node
// subtypes (see ParserFactory's doc comment).
func ParseSchemaFileWithFactory(path string, factory ParserFactory) (ast.Schema, error) {
	root, err := loadXMLDocument(path)
	if err != nil {
		return ast.Schema{}, err
	}
	if root.Data != "schema" {
		return ast.Schema{}, fmt.Errorf("xmlparse: %s: root element is <%s>, expected <schema>", path, root.Data)
	}

	ctx := &ParsingContext{Factory: factory, BasePath: dirOf(path)}
	node, err := schemaParser{}.Parse(root, ctx)
	if err != nil {
		return ast.Schema{}, fmt.Errorf("parsing schema %s: %w", path, err)
	}
	return node.(ast.Schema), nil
}
