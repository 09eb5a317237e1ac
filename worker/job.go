package worker

import (
	"github.com/google/uuid"

	cx "github.com/gofhir/ccrextract"
	"github.com/gofhir/ccrextract/ccr"
)

// Job represents one document extraction to be processed by a worker.
type Job struct {
	// ID is a unique identifier for this job.
	ID string

	// Document is the CCR document to extract.
	Document *ccr.ContinuityOfCareRecord
}

// NewJob creates a Job with a generated unique ID.
func NewJob(doc *ccr.ContinuityOfCareRecord) Job {
	return Job{
		ID:       uuid.NewString(),
		Document: doc,
	}
}

// JobResult represents the result of an extraction job.
type JobResult struct {
	// ID matches the Job.ID that produced this result.
	ID string

	// Result contains the extraction result; its JobID is set to ID.
	Result *cx.Result

	// Duration is the time taken to extract (in nanoseconds).
	Duration int64
}

// BatchResult aggregates results from multiple jobs.
type BatchResult struct {
	// Results contains all job results.
	Results []*JobResult

	// TotalJobs is the number of jobs submitted.
	TotalJobs int

	// CompletedJobs is the number of jobs completed.
	CompletedJobs int

	// TotalDuration is the total time across all extractions (in nanoseconds).
	TotalDuration int64
}

// IssueCount returns the total number of diagnostics across all results.
func (br *BatchResult) IssueCount() int {
	count := 0
	for _, r := range br.Results {
		if r.Result != nil {
			count += r.Result.IssueCount()
		}
	}
	return count
}
