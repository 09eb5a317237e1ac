// Package worker provides a worker pool for parallel batch extraction.
//
// The pool enables efficient extraction of many CCR documents in parallel,
// taking advantage of multi-core processors. A single engine.Extractor is
// shared by all workers; it holds no per-document state.
//
// Example usage:
//
//	pool := worker.NewPool(extractor, 4)
//	defer pool.Close()
//
//	for _, doc := range docs {
//	    pool.Submit(worker.NewJob(doc))
//	}
//
//	for result := range pool.Results() {
//	    // Process result.Result.Record
//	}
package worker
