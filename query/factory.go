package query

import (
	"fmt"
	"sync"

	"github.com/go-schematron/schematron/errors"
)

// Built-in query-binding names a schema's queryBinding attribute may name
// (spec.md §4.3). All resolve to the same antchfx/xpath-backed engine
// (SPEC_FULL.md §D): antchfx/xpath implements only XPath 1.0 grammar, so
// the XSLT-family and XPath-2/3-family names are accepted but evaluated as
// XPath 1.0.
const (
	BindingXPath   = "xpath"
	BindingXPath2  = "xpath2"
	BindingXPath3  = "xpath3"
	BindingXPath31 = "xpath31"
	BindingXSLT    = "xslt"
	BindingXSLT2   = "xslt2"
	BindingXSLT3   = "xslt3"
)

// DefaultQueryBinding is used when a schema declares no queryBinding
// attribute (spec.md §4.3).
const DefaultQueryBinding = BindingXSLT

// ProcessorConstructor builds a QueryProcessor given a schema's in-scope
// namespace bindings.
type ProcessorConstructor func(namespaces map[string]string) QueryProcessor

// QueryProcessorFactory resolves a query-binding name to a QueryProcessor.
type QueryProcessorFactory interface {
	// GetQueryProcessor returns the processor registered for binding, with
	// namespaces bound, or an UnknownQueryBindingError if binding is not
	// registered.
	GetQueryProcessor(binding string, namespaces map[string]string) (QueryProcessor, error)
}

// DefaultQueryProcessorFactory registers the built-in antchfx-backed
// XPath-1.0 engine under all seven binding names.
type DefaultQueryProcessorFactory struct{}

// NewDefaultQueryProcessorFactory constructs the built-in factory.
func NewDefaultQueryProcessorFactory() *DefaultQueryProcessorFactory {
	return &DefaultQueryProcessorFactory{}
}

// GetQueryProcessor implements QueryProcessorFactory.
func (f *DefaultQueryProcessorFactory) GetQueryProcessor(binding string, namespaces map[string]string) (QueryProcessor, error) {
	switch binding {
	case BindingXPath, BindingXPath2, BindingXPath3, BindingXPath31,
		BindingXSLT, BindingXSLT2, BindingXSLT3:
		return NewXPathQueryProcessor(namespaces), nil
	default:
		return nil, errors.NewUnknownQueryBindingError(binding)
	}
}

// ExtendableQueryProcessorFactory wraps a base factory (normally
// DefaultQueryProcessorFactory) and lets callers register additional
// binding names backed by their own QueryProcessor implementations
// (SPEC_FULL.md §C.4). This is this repository's answer to "custom XPath
// functions": rather than splicing extension functions into the bound-in
// antchfx/xpath 1.0 engine — whose registration surface this repository
// does not rely on, see xpath.go's WithCustomFunction — a caller needing
// custom functions supplies an entirely different QueryProcessor under a
// new binding name, and schemas opt in via queryBinding="that-name".
type ExtendableQueryProcessorFactory struct {
	base QueryProcessorFactory

	mu         sync.RWMutex
	extensions map[string]ProcessorConstructor
}

// NewExtendableQueryProcessorFactory wraps base with room for extra
// bindings.
func NewExtendableQueryProcessorFactory(base QueryProcessorFactory) *ExtendableQueryProcessorFactory {
	return &ExtendableQueryProcessorFactory{base: base, extensions: make(map[string]ProcessorConstructor)}
}

// RegisterBinding adds a new query-binding name backed by construct. It is
// an error to shadow one of the seven built-in names.
func (f *ExtendableQueryProcessorFactory) RegisterBinding(binding string, construct ProcessorConstructor) error {
	switch binding {
	case BindingXPath, BindingXPath2, BindingXPath3, BindingXPath31,
		BindingXSLT, BindingXSLT2, BindingXSLT3:
		return fmt.Errorf("query: cannot override built-in binding %q", binding)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.extensions[binding] = construct
	return nil
}

// GetQueryProcessor implements QueryProcessorFactory, checking registered
// extensions before falling back to the wrapped base factory.
func (f *ExtendableQueryProcessorFactory) GetQueryProcessor(binding string, namespaces map[string]string) (QueryProcessor, error) {
	f.mu.RLock()
	construct, ok := f.extensions[binding]
	f.mu.RUnlock()

	if ok {
		return construct(namespaces), nil
	}
	return f.base.GetQueryProcessor(binding, namespaces)
}
