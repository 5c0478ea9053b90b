package query

import (
	"sync"

	"github.com/golang/groupcache/lru"
)

// CustomFunction describes an extension function a caller wants available
// to queries under some binding name (spec.md §4.3's extension-function
// hook, SPEC_FULL.md §C.4). Only bindings registered through
// ExtendableQueryProcessorFactory can honor these; the built-in
// antchfx-backed XPath-1.0 processor always rejects registration (see
// xpath.go's WithCustomFunction).
type CustomFunction struct {
	Name string
	Arity int
	Call func(args []Result) (Result, error)
}

// QueryParser compiles query source text into a Query, under a fixed set of
// namespace bindings and optional custom functions.
type QueryParser interface {
	// Parse compiles source into a Query.
	Parse(source string) (Query, error)

	// WithNamespaces returns a parser that additionally binds ns, layered
	// over any namespaces the receiver already carries.
	WithNamespaces(ns map[string]string) QueryParser

	// WithCustomFunction returns a parser with fn additionally available to
	// parsed queries. Implementations that cannot support extension
	// functions (the XPath 1.0 engine bound here) return
	// errors.NewXPath1CustomFunctionUnsupportedError.
	WithCustomFunction(fn CustomFunction) (QueryParser, error)
}

// CachingQueryParser decorates a QueryParser with memoization keyed on the
// exact source string, so that the same query text appearing in many rules
// (or visited many times across documents in a batch run) is compiled once.
// Backed by golang/groupcache's lru.Cache (SPEC_FULL.md §B); the batch
// document cache is a separate utils.MemoryValidationCache. Unlike that
// cache this has no TTL, which is fine here since compiled queries never go stale
// within a process lifetime.
type CachingQueryParser struct {
	inner QueryParser
	mu    sync.Mutex
	cache *lru.Cache
}

// NewCachingQueryParser wraps inner with an LRU cache holding up to
// maxEntries compiled queries.
func NewCachingQueryParser(inner QueryParser, maxEntries int) *CachingQueryParser {
	return &CachingQueryParser{inner: inner, cache: lru.New(maxEntries)}
}

type cachedQueryOrError struct {
	query Query
	err   error
}

// Parse compiles source, returning a previously cached Query if this exact
// source string (under the current namespace/function bindings) has been
// seen before.
func (p *CachingQueryParser) Parse(source string) (Query, error) {
	p.mu.Lock()
	if v, ok := p.cache.Get(source); ok {
		p.mu.Unlock()
		entry := v.(cachedQueryOrError)
		return entry.query, entry.err
	}
	p.mu.Unlock()

	q, err := p.inner.Parse(source)

	p.mu.Lock()
	p.cache.Add(source, cachedQueryOrError{query: q, err: err})
	p.mu.Unlock()

	return q, err
}

// WithNamespaces returns a new CachingQueryParser wrapping the inner
// parser's namespace-extended variant; the cache is NOT carried over, since
// the same source text can compile to a different Query under different
// namespace bindings.
func (p *CachingQueryParser) WithNamespaces(ns map[string]string) QueryParser {
	return NewCachingQueryParser(p.inner.WithNamespaces(ns), p.cache.MaxEntries)
}

// WithCustomFunction returns a new CachingQueryParser wrapping the inner
// parser's function-extended variant, or an error if inner rejects fn.
func (p *CachingQueryParser) WithCustomFunction(fn CustomFunction) (QueryParser, error) {
	extended, err := p.inner.WithCustomFunction(fn)
	if err != nil {
		return nil, err
	}
	return NewCachingQueryParser(extended, p.cache.MaxEntries), nil
}
