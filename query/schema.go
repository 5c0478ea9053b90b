package query

import "github.com/go-schematron/schematron/ast"

// GetSchemaQueryProcessor resolves the QueryProcessor a schema's rules
// should evaluate against: the binding named by the schema's queryBinding
// attribute (DefaultQueryBinding if absent), with the schema's namespace
// declarations bound (spec.md §4.3).
func GetSchemaQueryProcessor(factory QueryProcessorFactory, schema ast.Schema) (QueryProcessor, error) {
	binding := schema.QueryBinding
	if binding == "" {
		binding = DefaultQueryBinding
	}

	ns := make(map[string]string, len(schema.Namespaces))
	for _, n := range schema.Namespaces {
		ns[n.Prefix] = n.URI
	}

	return factory.GetQueryProcessor(binding, ns)
}
