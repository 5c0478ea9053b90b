package schematron

import (
	"time"

	"github.com/go-schematron/schematron/utils"
)

// Cache stores ValidationResults keyed by document content hash (spec.md
// SPEC_FULL.md §C.2). It is the schematron package's narrowing of
// utils.ValidationCache to the one value type this package caches.
type Cache interface {
	Get(contentHash string) (*ValidationResult, bool)
	Set(contentHash string, result *ValidationResult, ttl time.Duration) error
}

// CacheTTL is the default entry lifetime used by NewMemoryCache.
const CacheTTL = 10 * time.Minute

// memoryCache adapts utils.MemoryValidationCache (an interface{}-valued,
// LRU+TTL cache already used elsewhere in this repository) to the
// *ValidationResult-typed Cache interface.
type memoryCache struct {
	inner *utils.MemoryValidationCache
	ttl   time.Duration
}

// NewMemoryCache builds an in-memory, LRU-evicting, TTL-expiring
// ValidationResult cache sized per opts (nil for the defaults
// utils.DefaultMemoryCacheOptions returns).
func NewMemoryCache(opts *utils.MemoryCacheOptions) Cache {
	return &memoryCache{inner: utils.NewMemoryValidationCache(opts), ttl: CacheTTL}
}

func (c *memoryCache) Get(contentHash string) (*ValidationResult, bool) {
	v, ok := c.inner.Get(contentHash)
	if !ok {
		return nil, false
	}
	vr, ok := v.(*ValidationResult)
	return vr, ok
}

func (c *memoryCache) Set(contentHash string, result *ValidationResult, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = c.ttl
	}
	return c.inner.Set(contentHash, result, ttl)
}
