package query

import "testing"

type countingParser struct {
	parseCalls int
}

func (p *countingParser) Parse(source string) (Query, error) {
	p.parseCalls++
	return &xpathQuery{source: source}, nil
}

func (p *countingParser) WithNamespaces(ns map[string]string) QueryParser { return p }

func (p *countingParser) WithCustomFunction(fn CustomFunction) (QueryParser, error) { return p, nil }

func TestCachingQueryParserMemoizesBySource(t *testing.T) {
	inner := &countingParser{}
	caching := NewCachingQueryParser(inner, 10)

	if _, err := caching.Parse("a/b"); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if _, err := caching.Parse("a/b"); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if _, err := caching.Parse("c/d"); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	if inner.parseCalls != 2 {
		t.Errorf("expected inner parser to be called twice (once per distinct source), got %d", inner.parseCalls)
	}
}
