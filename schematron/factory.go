package schematron

import (
	"fmt"

	"github.com/go-schematron/schematron/ast"
	"github.com/go-schematron/schematron/logging"
	"github.com/go-schematron/schematron/query"
	"github.com/go-schematron/schematron/validate"
	"github.com/go-schematron/schematron/xmlparse"
)

// Factory builds a Validator from a Schematron schema, following the
// builder-chain style of the teacher's
// EnhancedNetexValidatorsRunnerBuilder: each With/Set method mutates and
// returns the same *Factory, and Build() does the actual work.
type Factory struct {
	schemaPath string
	schema     *ast.Schema
	basePath   string
	phase      string
	extensions *query.ExtendableQueryProcessorFactory
	logger     *logging.Logger
	cache      Cache
	err        error
}

// NewFactory returns an empty Factory. Exactly one of SetSchemaFile or
// SetSchema must be called before Build.
func NewFactory() *Factory {
	return &Factory{}
}

// SetSchemaFile loads the schema from an .sch file on disk; href-resolved
// <include>/<extends> use the schema file's own directory as base path.
// SetBasePath does not change that resolution.
func (f *Factory) SetSchemaFile(path string) *Factory {
	f.schemaPath = path
	return f
}

// SetSchema supplies an already-parsed schema tree (e.g. loaded and
// inspected by the caller, or reused across several Factory builds). An
// ast.Schema carries no unresolved <include>/<extends href>: the parser
// loads those files when it builds the tree.
func (f *Factory) SetSchema(schema ast.Schema) *Factory {
	f.schema = &schema
	return f
}

// SetBasePath overrides the base directory reported in each result's
// BasePath (by default the schema file's directory). It does not affect
// how relative <include>/<extends href> attributes are resolved; parsing
// always resolves them against the schema file's own directory.
func (f *Factory) SetBasePath(path string) *Factory {
	f.basePath = path
	return f
}

// SetPhase selects the phase to validate against, matching a schema's
// <phase id="..."> or the reserved names "#ALL"/"#DEFAULT" (spec.md §4.2).
// Defaults to "#DEFAULT" if never called.
func (f *Factory) SetPhase(phase string) *Factory {
	f.phase = phase
	return f
}

// AddCustomFunctions registers an additional query-binding name backed by a
// caller-supplied QueryProcessor constructor (SPEC_FULL.md §C.4), for
// schemas that declare queryBinding="binding".
func (f *Factory) AddCustomFunctions(binding string, construct query.ProcessorConstructor) *Factory {
	if f.extensions == nil {
		f.extensions = query.NewExtendableQueryProcessorFactory(query.NewDefaultQueryProcessorFactory())
	}
	if err := f.extensions.RegisterBinding(binding, construct); err != nil {
		f.err = err
	}
	return f
}

// SetLogger overrides the default logger used for compile/evaluate
// diagnostics.
func (f *Factory) SetLogger(logger *logging.Logger) *Factory {
	f.logger = logger
	return f
}

// SetCache enables document-result caching (spec.md SPEC_FULL.md §C.2) for
// Validator.ValidateDocuments. Without a cache, every document is always
// fully evaluated.
func (f *Factory) SetCache(cache Cache) *Factory {
	f.cache = cache
	return f
}

// Build resolves the configured schema and runs Phase A compilation,
// returning a ready-to-use Validator.
func (f *Factory) Build() (*Validator, error) {
	if f.err != nil {
		return nil, f.err
	}

	schema, basePath, err := f.resolveSchema()
	if err != nil {
		return nil, err
	}

	phase := f.phase
	if phase == "" {
		phase = "#DEFAULT"
	}

	var factory query.QueryProcessorFactory = query.NewDefaultQueryProcessorFactory()
	if f.extensions != nil {
		factory = f.extensions
	}

	v, err := validate.NewValidator(schema, phase, validate.Options{
		Factory:  factory,
		BasePath: basePath,
		Logger:   f.logger,
	})
	if err != nil {
		return nil, err
	}

	return &Validator{inner: v, cache: f.cache, logger: loggerOrDefault(f.logger)}, nil
}

func (f *Factory) resolveSchema() (ast.Schema, string, error) {
	switch {
	case f.schemaPath != "":
		schema, err := xmlparse.ParseSchemaFile(f.schemaPath)
		if err != nil {
			return ast.Schema{}, "", err
		}
		basePath := f.basePath
		if basePath == "" {
			basePath = dirOf(f.schemaPath)
		}
		return schema, basePath, nil
	case f.schema != nil:
		return *f.schema, f.basePath, nil
	default:
		return ast.Schema{}, "", fmt.Errorf("schematron: Factory needs SetSchemaFile or SetSchema before Build")
	}
}

func loggerOrDefault(l *logging.Logger) *logging.Logger {
	if l != nil {
		return l
	}
	return logging.NewDefaultLogger()
}
