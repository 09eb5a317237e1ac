package ccrextract

import (
	"sync"

	"github.com/gofhir/ccrextract/clinical"
)

// Result contains the outcome of extracting one source document: the
// assembled clinical record plus any diagnostics recorded along the way.
// Use Release() to return it to the pool when done.
type Result struct {
	// Record is the assembled clinical record
	Record *clinical.Record `json:"record,omitempty"`

	// Issues contains diagnostics recorded during extraction
	Issues []Issue `json:"issues,omitempty"`

	// JobID is set when using batch extraction to correlate results
	JobID string `json:"jobId,omitempty"`

	// mu protects concurrent access to Issues
	mu sync.Mutex
}

// resultPool holds reusable Result instances.
var resultPool = sync.Pool{
	New: func() any {
		return &Result{
			Issues: make([]Issue, 0, 16),
		}
	},
}

// AcquireResult gets a Result from the pool.
func AcquireResult() *Result {
	r := resultPool.Get().(*Result)
	r.Reset()
	return r
}

// Release returns the Result to the pool.
// After calling Release, the Result should not be used.
func (r *Result) Release() {
	if r == nil {
		return
	}
	// Don't return results with oversized issue slices
	if cap(r.Issues) <= 512 {
		resultPool.Put(r)
	}
}

// Reset clears the result for reuse.
func (r *Result) Reset() {
	r.Record = nil
	r.Issues = r.Issues[:0]
	r.JobID = ""
}

// AddIssue adds a diagnostic to the result.
// This method is thread-safe.
func (r *Result) AddIssue(issue Issue) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Issues = append(r.Issues, issue)
}

// AddInfo is a convenience method to add an informational diagnostic.
func (r *Result) AddInfo(code IssueType, diagnostics, category, elementID string) {
	r.AddIssue(Issue{
		Severity:    SeverityInformation,
		Code:        code,
		Diagnostics: diagnostics,
		Category:    category,
		ElementID:   elementID,
	})
}

// AddWarning is a convenience method to add a warning diagnostic.
func (r *Result) AddWarning(code IssueType, diagnostics, category, elementID string) {
	r.AddIssue(Issue{
		Severity:    SeverityWarning,
		Code:        code,
		Diagnostics: diagnostics,
		Category:    category,
		ElementID:   elementID,
	})
}

// HasWarnings returns true if any warning diagnostics were recorded.
func (r *Result) HasWarnings() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, issue := range r.Issues {
		if issue.IsWarning() {
			return true
		}
	}
	return false
}

// IssuesOf returns the diagnostics with the given type.
func (r *Result) IssuesOf(code IssueType) []Issue {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Issue
	for _, issue := range r.Issues {
		if issue.Code == code {
			out = append(out, issue)
		}
	}
	return out
}

// IssueCount returns the number of recorded diagnostics.
func (r *Result) IssueCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.Issues)
}
