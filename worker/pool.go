package worker

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	cx "github.com/gofhir/ccrextract"
	"github.com/gofhir/ccrextract/ccr"
)

// Extractor is the interface the pool uses to extract documents.
// *engine.Extractor satisfies it.
type Extractor interface {
	Extract(doc *ccr.ContinuityOfCareRecord) *cx.Result
}

// configured is implemented by extractors that carry options; the pool reads
// WorkerCount from it when no explicit worker count is given.
type configured interface {
	Options() *cx.Options
}

// Pool manages a pool of worker goroutines for parallel extraction.
type Pool struct {
	workers    int
	jobsChan   chan Job
	resultChan chan *JobResult
	extractor  Extractor
	ctx        context.Context
	cancel     context.CancelFunc
	wg         sync.WaitGroup
	closed     atomic.Bool

	// Metrics
	jobsSubmitted atomic.Uint64
	jobsCompleted atomic.Uint64
	totalDuration atomic.Uint64
}

// NewPool creates a worker pool with the specified number of workers.
// If workers <= 0, it defaults to the extractor's configured WorkerCount
// (see ccrextract.WithWorkerCount), then to runtime.NumCPU().
func NewPool(extractor Extractor, workers int) *Pool {
	if workers <= 0 {
		if c, ok := extractor.(configured); ok {
			workers = c.Options().WorkerCount
		}
	}
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	ctx, cancel := context.WithCancel(context.Background())

	p := &Pool{
		workers:    workers,
		jobsChan:   make(chan Job, workers*2),
		resultChan: make(chan *JobResult, workers*2),
		extractor:  extractor,
		ctx:        ctx,
		cancel:     cancel,
	}

	p.wg.Add(workers)
	for i := 0; i < workers; i++ {
		go p.worker()
	}

	return p
}

// Submit submits a job to the pool for processing.
// This method blocks if the job queue is full. It returns false when the
// pool is closed.
func (p *Pool) Submit(job Job) bool {
	if p.closed.Load() {
		return false
	}

	select {
	case <-p.ctx.Done():
		return false
	case p.jobsChan <- job:
		p.jobsSubmitted.Add(1)
		return true
	}
}

// Results returns the channel for receiving job results.
func (p *Pool) Results() <-chan *JobResult {
	return p.resultChan
}

// Close shuts down the pool, discarding any results not yet consumed, and
// waits for all workers to finish.
func (p *Pool) Close() {
	if p.closed.Swap(true) {
		return // Already closed
	}

	p.cancel()
	close(p.jobsChan)

	// Drain results in background to prevent worker deadlock
	done := make(chan struct{})
	go func() {
		for range p.resultChan {
		}
		close(done)
	}()

	p.wg.Wait()
	close(p.resultChan)
	<-done
}

// CloseAndWait closes the pool and collects all pending results.
func (p *Pool) CloseAndWait() *BatchResult {
	if p.closed.Swap(true) {
		return &BatchResult{}
	}

	close(p.jobsChan)

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(p.resultChan)
		close(done)
	}()

	results := make([]*JobResult, 0, p.jobsSubmitted.Load())
	for result := range p.resultChan {
		results = append(results, result)
	}
	<-done
	p.cancel()

	return &BatchResult{
		Results:       results,
		TotalJobs:     int(p.jobsSubmitted.Load()),
		CompletedJobs: int(p.jobsCompleted.Load()),
		TotalDuration: int64(p.totalDuration.Load()),
	}
}

// Stats returns current pool statistics.
func (p *Pool) Stats() PoolStats {
	return PoolStats{
		Workers:       p.workers,
		JobsSubmitted: p.jobsSubmitted.Load(),
		JobsCompleted: p.jobsCompleted.Load(),
		AvgDuration:   p.averageDuration(),
	}
}

// PoolStats contains pool statistics.
type PoolStats struct {
	Workers       int
	JobsSubmitted uint64
	JobsCompleted uint64
	AvgDuration   time.Duration
}

func (p *Pool) averageDuration() time.Duration {
	completed := p.jobsCompleted.Load()
	if completed == 0 {
		return 0
	}
	return time.Duration(p.totalDuration.Load() / completed)
}

func (p *Pool) worker() {
	defer p.wg.Done()

	for job := range p.jobsChan {
		result := p.processJob(job)
		p.jobsCompleted.Add(1)
		p.totalDuration.Add(uint64(result.Duration))

		select {
		case <-p.ctx.Done():
			return
		case p.resultChan <- result:
		}
	}
}

func (p *Pool) processJob(job Job) *JobResult {
	start := time.Now()
	res := p.extractor.Extract(job.Document)
	res.JobID = job.ID
	return &JobResult{
		ID:       job.ID,
		Result:   res,
		Duration: time.Since(start).Nanoseconds(),
	}
}
