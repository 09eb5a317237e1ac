package ccrextract

import (
	"sync"
	"testing"
	"time"
)

func TestMetricsRecordExtraction(t *testing.T) {
	m := NewMetrics()

	if m.RecordsExtracted() != 0 {
		t.Error("new metrics should have zero records")
	}
	if m.MinExtractionTime() != 0 {
		t.Error("min time should be 0 before any extraction")
	}

	m.RecordExtraction(10*time.Millisecond, 5)
	m.RecordExtraction(30*time.Millisecond, 7)
	m.RecordExtraction(20*time.Millisecond, 0)

	if got := m.RecordsExtracted(); got != 3 {
		t.Errorf("RecordsExtracted() = %d; want 3", got)
	}
	if got := m.EntitiesExtracted(); got != 12 {
		t.Errorf("EntitiesExtracted() = %d; want 12", got)
	}
	if got := m.MinExtractionTime(); got != 10*time.Millisecond {
		t.Errorf("MinExtractionTime() = %v; want 10ms", got)
	}
	if got := m.MaxExtractionTime(); got != 30*time.Millisecond {
		t.Errorf("MaxExtractionTime() = %v; want 30ms", got)
	}
	if got := m.AvgExtractionTime(); got != 20*time.Millisecond {
		t.Errorf("AvgExtractionTime() = %v; want 20ms", got)
	}
}

func TestMetricsDates(t *testing.T) {
	m := NewMetrics()
	m.RecordDateResolved()
	m.RecordDateResolved()
	m.RecordDateNotFound()

	if got := m.DatesResolved(); got != 2 {
		t.Errorf("DatesResolved() = %d; want 2", got)
	}
	if got := m.DatesNotFound(); got != 1 {
		t.Errorf("DatesNotFound() = %d; want 1", got)
	}
}

func TestMetricsCacheHitRate(t *testing.T) {
	m := NewMetrics()
	if got := m.CacheHitRate(); got != 0 {
		t.Errorf("CacheHitRate() = %v; want 0 with no lookups", got)
	}

	m.RecordCacheHit()
	m.RecordCacheHit()
	m.RecordCacheHit()
	m.RecordCacheMiss()

	if got := m.CacheHitRate(); got != 0.75 {
		t.Errorf("CacheHitRate() = %v; want 0.75", got)
	}
}

func TestMetricsConcurrent(t *testing.T) {
	m := NewMetrics()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.RecordExtraction(time.Millisecond, 1)
			m.RecordDateResolved()
			m.RecordCacheHit()
		}()
	}
	wg.Wait()

	if got := m.RecordsExtracted(); got != 20 {
		t.Errorf("RecordsExtracted() = %d; want 20", got)
	}
	if got := m.EntitiesExtracted(); got != 20 {
		t.Errorf("EntitiesExtracted() = %d; want 20", got)
	}
}
