package worker

import (
	"fmt"
	"testing"

	cx "github.com/gofhir/ccrextract"
	"github.com/gofhir/ccrextract/ccr"
	"github.com/gofhir/ccrextract/engine"
	"github.com/gofhir/ccrextract/vocabulary"
)

func testDocument(id string) *ccr.ContinuityOfCareRecord {
	return &ccr.ContinuityOfCareRecord{
		ID: id,
		Body: ccr.Body{
			Problems: []ccr.Problem{{
				CodedDataObject: ccr.CodedDataObject{
					ID:        id + "-P1",
					DateTimes: []ccr.DateTime{{ExactDateTime: "2020-01-05T00:00:00"}},
				},
			}},
		},
	}
}

func newPoolExtractor(t *testing.T) *engine.Extractor {
	t.Helper()
	ex, err := engine.New(vocabulary.Default())
	if err != nil {
		t.Fatalf("engine.New() error = %v", err)
	}
	return ex
}

func TestPoolExtractsAllJobs(t *testing.T) {
	pool := NewPool(newPoolExtractor(t), 4)

	const jobs = 10
	ids := make(map[string]bool, jobs)
	for i := 0; i < jobs; i++ {
		job := NewJob(testDocument(fmt.Sprintf("doc-%d", i)))
		if job.ID == "" {
			t.Fatal("NewJob should assign an ID")
		}
		ids[job.ID] = true
		if !pool.Submit(job) {
			t.Fatalf("Submit failed for job %d", i)
		}
	}

	batch := pool.CloseAndWait()

	if batch.TotalJobs != jobs {
		t.Errorf("TotalJobs = %d; want %d", batch.TotalJobs, jobs)
	}
	if batch.CompletedJobs != jobs {
		t.Errorf("CompletedJobs = %d; want %d", batch.CompletedJobs, jobs)
	}
	if len(batch.Results) != jobs {
		t.Fatalf("len(Results) = %d; want %d", len(batch.Results), jobs)
	}
	for _, r := range batch.Results {
		if !ids[r.ID] {
			t.Errorf("unexpected result ID %q", r.ID)
		}
		if r.Result == nil || r.Result.Record == nil {
			t.Fatal("result should carry a record")
		}
		if r.Result.JobID != r.ID {
			t.Errorf("Result.JobID = %q; want %q", r.Result.JobID, r.ID)
		}
		if len(r.Result.Record.Conditions) != 1 {
			t.Errorf("len(Conditions) = %d; want 1", len(r.Result.Record.Conditions))
		}
	}
}

func TestPoolWorkerCountFromOptions(t *testing.T) {
	ex, err := engine.New(vocabulary.Default(), cx.WithWorkerCount(3))
	if err != nil {
		t.Fatalf("engine.New() error = %v", err)
	}

	pool := NewPool(ex, 0)
	defer pool.Close()

	if got := pool.Stats().Workers; got != 3 {
		t.Errorf("Workers = %d; want 3 (from WithWorkerCount)", got)
	}

	// An explicit count still wins over the configured one.
	override := NewPool(ex, 2)
	defer override.Close()
	if got := override.Stats().Workers; got != 2 {
		t.Errorf("Workers = %d; want 2 (explicit count)", got)
	}
}

func TestPoolSubmitAfterClose(t *testing.T) {
	pool := NewPool(newPoolExtractor(t), 2)
	pool.Close()

	if pool.Submit(NewJob(testDocument("late"))) {
		t.Error("Submit after Close should return false")
	}
}

func TestPoolStats(t *testing.T) {
	pool := NewPool(newPoolExtractor(t), 2)
	pool.Submit(NewJob(testDocument("a")))
	pool.Submit(NewJob(testDocument("b")))
	batch := pool.CloseAndWait()

	if batch.IssueCount() == 0 {
		t.Error("expected diagnostics (resolved dates are absent on the test docs)")
	}

	stats := pool.Stats()
	if stats.JobsSubmitted != 2 || stats.JobsCompleted != 2 {
		t.Errorf("stats = %+v; want 2 submitted and completed", stats)
	}
	if stats.Workers != 2 {
		t.Errorf("Workers = %d; want 2", stats.Workers)
	}
}

func TestPoolDoubleClose(t *testing.T) {
	pool := NewPool(newPoolExtractor(t), 1)
	pool.Close()
	pool.Close() // must be a no-op

	if got := pool.CloseAndWait(); got.TotalJobs != 0 {
		t.Errorf("CloseAndWait after Close = %+v; want empty batch", got)
	}
}
