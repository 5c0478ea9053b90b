package validate

import (
	"time"

	"github.com/go-schematron/schematron/ast"
	"github.com/go-schematron/schematron/logging"
	"github.com/go-schematron/schematron/query"
	"github.com/go-schematron/schematron/result"
	"github.com/go-schematron/schematron/transform"
)

// Validator is a compiled, phase-reduced schema ready to evaluate XML
// documents (spec.md §4.4). Construct with NewValidator; it holds no
// per-document state and is safe for concurrent use by multiple goroutines
// evaluating different documents (SPEC_FULL.md §C.1's batch validation runs a
// single Validator against many documents concurrently).
type Validator struct {
	schema    ast.Schema
	phase     string
	variables []variableEvaluator
	patterns  []*patternValidator
	logger    *logging.Logger
	basePath  string
}

// NewValidator runs Phase A (spec.md §4.4): the three AST transforms, query
// processor resolution, and pre-parsing of every schema/pattern/rule/check
// level into its validator tree.
func NewValidator(schema ast.Schema, phase string, opts Options) (*Validator, error) {
	opts = opts.withDefaults()

	opts.Logger.CompileStart(opts.BasePath)
	start := time.Now()

	compiled, err := transform.Compile(schema, phase)
	if err != nil {
		return nil, err
	}

	processor, err := query.GetSchemaQueryProcessor(opts.Factory, compiled)
	if err != nil {
		return nil, err
	}
	parser := query.NewCachingQueryParser(processor.Parser(), opts.QueryCacheSize)

	vars, err := compileVariables(compiled.Variables, parser)
	if err != nil {
		return nil, err
	}

	diagByID := make(map[string]ast.Diagnostic)
	for _, container := range compiled.Diagnostics {
		for _, d := range container.Diagnostics {
			diagByID[d.ID] = d
		}
	}
	propByID := make(map[string]ast.Property)
	for _, container := range compiled.Properties {
		for _, p := range container.Properties {
			propByID[p.ID] = p
		}
	}

	ruleCount := 0
	patterns := make([]*patternValidator, 0, len(compiled.Patterns))
	for _, p := range compiled.Patterns {
		cp, ok := p.(ast.ConcretePattern)
		if !ok {
			continue
		}
		pv, err := compilePattern(cp, parser, diagByID, propByID)
		if err != nil {
			return nil, err
		}
		patterns = append(patterns, pv)
		ruleCount += len(pv.rules)
	}

	opts.Logger.CompileComplete(opts.BasePath, len(patterns), ruleCount, time.Since(start))

	return &Validator{
		schema:    compiled,
		phase:     phase,
		variables: vars,
		patterns:  patterns,
		logger:    opts.Logger,
		basePath:  opts.BasePath,
	}, nil
}

// Schema returns the compiled, phase-reduced schema this validator runs.
func (v *Validator) Schema() ast.Schema { return v.schema }

// ValidateDocument runs Phase B (spec.md §4.4) against an already-parsed
// XML document node, tagging the result with documentURI for SVRL output.
func (v *Validator) ValidateDocument(doc *query.XMLNode, documentURI string) (result.XMLDocumentValidationResult, error) {
	start := time.Now()
	v.logger.EvaluateStart(documentURI)

	root := doc
	ctx := query.NewEvaluationContext(root)

	ctx, err := bindVariables(ctx, v.variables)
	if err != nil {
		return result.XMLDocumentValidationResult{}, err
	}

	return v.validate(ctx, documentURI, start)
}

// ValidateXML parses and validates the XML document at path (spec.md §4.4
// Phase B, step 1), using path itself as the SVRL document URI.
func (v *Validator) ValidateXML(path string) (result.XMLDocumentValidationResult, error) {
	doc, err := query.ParseDocumentFile(path)
	if err != nil {
		return result.XMLDocumentValidationResult{}, err
	}
	return v.ValidateDocument(query.NewElementNode(doc), path)
}

// validate walks doc's root-rooted node list, running every pattern
// validator against each visited node (spec.md §4.4 Phase B, steps 3-4).
func (v *Validator) validate(rootCtx query.EvaluationContext, documentURI string, start time.Time) (result.XMLDocumentValidationResult, error) {
	root := rootCtx.XMLRoot()
	nodes := query.IterateDocument(root.Elem)

	nodeResults := make([]result.FullNodeResult, 0, len(nodes))
	firedRules := 0
	failedChecks := 0

	for _, node := range nodes {
		patternResults := make([]result.PatternResult, 0, len(v.patterns))
		for _, pv := range v.patterns {
			pr, err := pv.evaluate(rootCtx, node)
			if err != nil {
				return result.XMLDocumentValidationResult{}, err
			}
			patternResults = append(patternResults, pr)

			for _, rr := range pr.RuleResults {
				switch r := rr.(type) {
				case result.FiredRuleResult:
					firedRules++
					failedChecks += r.FailureCount()
					v.logger.RuleFired(r.Rl.ID, node.Path())
					for _, cr := range r.CheckResults {
						if cr.IsFailure() {
							v.logger.CheckFailed(ast.CheckID(cr.Check), node.Path(), cr.Text)
						}
					}
				case result.SuppressedRuleResult:
					v.logger.RuleSuppressed(r.Rl.ID, r.FiredByRuleID, node.Path())
				}
			}
		}
		nodeResults = append(nodeResults, result.FullNodeResult{Node: node, PatternResults: patternResults})
	}

	docResult := result.XMLDocumentValidationResult{
		Schema:      v.schema,
		Phase:       v.phase,
		BasePath:    v.basePath,
		DocumentURI: documentURI,
		NodeResults: nodeResults,
	}

	v.logger.EvaluateComplete(documentURI, time.Since(start), firedRules, failedChecks, docResult.IsValid())

	return docResult, nil
}
