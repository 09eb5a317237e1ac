package ccrextract

import (
	"sync/atomic"
	"time"
)

// Metrics tracks extraction performance metrics using lock-free atomic
// operations. All methods are safe for concurrent use.
type Metrics struct {
	// Extraction counts
	recordsTotal atomic.Uint64

	// Timing (stored as nanoseconds)
	extractTimeTotal atomic.Uint64
	extractTimeMin   atomic.Uint64
	extractTimeMax   atomic.Uint64

	// Entity counts across all extracted records
	entitiesTotal atomic.Uint64

	// Date role resolution outcomes
	datesResolved atomic.Uint64
	datesNotFound atomic.Uint64

	// Epoch parse cache
	cacheHits   atomic.Uint64
	cacheMisses atomic.Uint64
}

// NewMetrics creates a new Metrics instance.
func NewMetrics() *Metrics {
	m := &Metrics{}
	// Initialize min to max uint64 so first value becomes the minimum
	m.extractTimeMin.Store(^uint64(0))
	return m
}

// RecordExtraction records a completed record extraction.
func (m *Metrics) RecordExtraction(duration time.Duration, entities int) {
	m.recordsTotal.Add(1)
	m.entitiesTotal.Add(uint64(entities))

	ns := uint64(duration.Nanoseconds())
	m.extractTimeTotal.Add(ns)

	// Update min (CAS loop)
	for {
		old := m.extractTimeMin.Load()
		if ns >= old {
			break
		}
		if m.extractTimeMin.CompareAndSwap(old, ns) {
			break
		}
	}

	// Update max (CAS loop)
	for {
		old := m.extractTimeMax.Load()
		if ns <= old {
			break
		}
		if m.extractTimeMax.CompareAndSwap(old, ns) {
			break
		}
	}
}

// RecordDateResolved records a successful date role resolution.
func (m *Metrics) RecordDateResolved() {
	m.datesResolved.Add(1)
}

// RecordDateNotFound records a date role resolution with no match.
func (m *Metrics) RecordDateNotFound() {
	m.datesNotFound.Add(1)
}

// RecordCacheHit records an epoch parse cache hit.
func (m *Metrics) RecordCacheHit() {
	m.cacheHits.Add(1)
}

// RecordCacheMiss records an epoch parse cache miss.
func (m *Metrics) RecordCacheMiss() {
	m.cacheMisses.Add(1)
}

// RecordsExtracted returns the number of records extracted.
func (m *Metrics) RecordsExtracted() uint64 {
	return m.recordsTotal.Load()
}

// EntitiesExtracted returns the total number of entities across all records.
func (m *Metrics) EntitiesExtracted() uint64 {
	return m.entitiesTotal.Load()
}

// DatesResolved returns the number of successful date resolutions.
func (m *Metrics) DatesResolved() uint64 {
	return m.datesResolved.Load()
}

// DatesNotFound returns the number of date resolutions with no match.
func (m *Metrics) DatesNotFound() uint64 {
	return m.datesNotFound.Load()
}

// AvgExtractionTime returns the mean time spent per record.
func (m *Metrics) AvgExtractionTime() time.Duration {
	total := m.recordsTotal.Load()
	if total == 0 {
		return 0
	}
	return time.Duration(m.extractTimeTotal.Load() / total)
}

// MinExtractionTime returns the fastest recorded extraction.
func (m *Metrics) MinExtractionTime() time.Duration {
	min := m.extractTimeMin.Load()
	if min == ^uint64(0) {
		return 0
	}
	return time.Duration(min)
}

// MaxExtractionTime returns the slowest recorded extraction.
func (m *Metrics) MaxExtractionTime() time.Duration {
	return time.Duration(m.extractTimeMax.Load())
}

// CacheHitRate returns the epoch cache hit rate in [0, 1].
func (m *Metrics) CacheHitRate() float64 {
	hits := m.cacheHits.Load()
	total := hits + m.cacheMisses.Load()
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total)
}
