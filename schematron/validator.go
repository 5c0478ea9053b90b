package schematron

import (
	"fmt"
	"os"
	"time"

	"github.com/go-schematron/schematron/logging"
	"github.com/go-schematron/schematron/query"
	"github.com/go-schematron/schematron/utils"
	"github.com/go-schematron/schematron/validate"
)

// Validator is a compiled schema ready to check XML documents against it
// (spec.md §6.1). Build one with Factory.Build. A Validator is safe for
// concurrent use: ValidateDocuments runs many documents through the same
// Validator from a worker pool.
type Validator struct {
	inner  *validate.Validator
	cache  Cache
	logger *logging.Logger
}

// ValidateFile validates the XML document at path, consulting the cache (if
// configured via Factory.SetCache) by the file's SHA-256 content hash
// before running Phase B evaluation (SPEC_FULL.md §C.2).
func (v *Validator) ValidateFile(path string) (*ValidationResult, error) {
	if v.cache == nil {
		doc, err := v.inner.ValidateXML(path)
		if err != nil {
			return nil, err
		}
		return newValidationResult(doc), nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	hash := utils.CalculateFileHash(content)

	if cached, ok := v.cache.Get(hash); ok {
		v.logger.CacheHit(path)
		return cached, nil
	}

	doc, err := v.inner.ValidateXML(path)
	if err != nil {
		return nil, err
	}
	vr := newValidationResult(doc)
	if err := v.cache.Set(hash, vr, CacheTTL); err != nil {
		return nil, err
	}
	return vr, nil
}

// ValidateDocument validates an already-parsed document node, tagging the
// result with documentURI for SVRL output.
func (v *Validator) ValidateDocument(doc *query.XMLNode, documentURI string) (*ValidationResult, error) {
	docResult, err := v.inner.ValidateDocument(doc, documentURI)
	if err != nil {
		return nil, err
	}
	return newValidationResult(docResult), nil
}

// documentJob is one unit of work for ValidateDocuments' worker pool.
type documentJob struct {
	index int
	path  string
}

// documentOutcome pairs a job's index (to restore input order) with its
// result or error.
type documentOutcome struct {
	index  int
	result *ValidationResult
	err    error
}

// validateJobRecovering runs one document job, recovering a panic into an
// error outcome so a single malformed document cannot take a worker
// goroutine (and the jobs still queued behind it) down with it.
func (v *Validator) validateJobRecovering(j documentJob) (outcome documentOutcome) {
	defer func() {
		if r := recover(); r != nil {
			outcome = documentOutcome{index: j.index, err: fmt.Errorf("schematron: validating %s: panic: %v", j.path, r)}
		}
	}()
	vr, err := v.ValidateFile(j.path)
	return documentOutcome{index: j.index, result: vr, err: err}
}

// ValidateDocuments validates every path in paths concurrently across a
// bounded pool of workers, returning results in the same order as paths
// (SPEC_FULL.md §C.1). Modeled on the teacher's validateZipDataset: a
// buffered job channel, a fixed worker pool each recovering from panics so
// one bad document cannot take down the batch, and a collector loop that
// gathers exactly len(paths) outcomes.
//
// If any document fails to validate, ValidateDocuments still returns every
// other document's result; the first encountered error is also returned
// (non-nil) so callers can distinguish "ran clean" from "some failed".
func (v *Validator) ValidateDocuments(paths []string, workers int) ([]*ValidationResult, error) {
	if len(paths) == 0 {
		return nil, nil
	}
	if workers <= 0 {
		workers = 1
	}
	if workers > len(paths) {
		workers = len(paths)
	}

	start := time.Now()
	v.logger.BatchValidationStart(len(paths), workers)

	jobs := make(chan documentJob, len(paths))
	outcomes := make(chan documentOutcome, len(paths))

	for w := 0; w < workers; w++ {
		go func() {
			for j := range jobs {
				outcomes <- v.validateJobRecovering(j)
			}
		}()
	}

	for i, p := range paths {
		jobs <- documentJob{index: i, path: p}
	}
	close(jobs)

	results := make([]*ValidationResult, len(paths))
	var firstErr error
	validCount := 0
	for i := 0; i < len(paths); i++ {
		o := <-outcomes
		if o.err != nil {
			if firstErr == nil {
				firstErr = o.err
			}
			continue
		}
		results[o.index] = o.result
		if o.result.IsValid() {
			validCount++
		}
	}

	v.logger.BatchValidationComplete(len(paths), validCount, time.Since(start))
	return results, firstErr
}
