package schematron

// ValidateFile is a convenience one-shot entry point that builds a
// Validator for schemaPath and checks a single xmlPath against it
// (spec.md §6.1). Prefer building a Factory once and reusing the Validator
// when checking more than one document against the same schema.
func ValidateFile(xmlPath, schemaPath, phase string) (*ValidationResult, error) {
	v, err := NewFactory().SetSchemaFile(schemaPath).SetPhase(phase).Build()
	if err != nil {
		return nil, err
	}
	return v.ValidateFile(xmlPath)
}

// ValidateFiles is the batch counterpart to ValidateFile: it builds one
// Validator for schemaPath and runs every path in xmlPaths through it
// across workers goroutines (SPEC_FULL.md §C.1).
func ValidateFiles(xmlPaths []string, schemaPath, phase string, workers int) ([]*ValidationResult, error) {
	v, err := NewFactory().SetSchemaFile(schemaPath).SetPhase(phase).Build()
	if err != nil {
		return nil, err
	}
	return v.ValidateDocuments(xmlPaths, workers)
}
