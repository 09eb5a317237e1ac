// Package engine provides the clinical record extraction engine.
package engine

import (
	"time"

	"go.uber.org/zap"

	cx "github.com/gofhir/ccrextract"
	"github.com/gofhir/ccrextract/cache"
	"github.com/gofhir/ccrextract/ccr"
	"github.com/gofhir/ccrextract/clinical"
	"github.com/gofhir/ccrextract/concept"
	"github.com/gofhir/ccrextract/dates"
	"github.com/gofhir/ccrextract/vocabulary"
)

// Extractor extracts clinical records from CCR documents using a controlled
// vocabulary. It holds no per-document state: the document is a parameter to
// every operation, so a single Extractor is safe for concurrent use. The
// vocabulary is read-only after construction.
type Extractor struct {
	vocab    *vocabulary.Vocabulary
	matcher  *concept.Matcher
	resolver *dates.Resolver
	options  *cx.Options
	metrics  *cx.Metrics
	log      *zap.Logger

	// epochCache memoizes ISO-8601 parses across documents
	epochCache *cache.Cache[string, int64]
}

// New creates an Extractor using the given vocabulary. The vocabulary must
// define every required term set (see vocabulary.RequiredTermSets); a
// vocabulary missing any of them yields an *ccrextract.IncompleteVocabularyError
// and no extractor.
func New(vocab *vocabulary.Vocabulary, opts ...cx.Option) (*Extractor, error) {
	if missing := vocab.Missing(); len(missing) > 0 {
		return nil, &cx.IncompleteVocabularyError{Missing: missing}
	}

	options := cx.DefaultOptions()
	for _, opt := range opts {
		opt(options)
	}

	matcher := concept.NewMatcher()
	return &Extractor{
		vocab:      vocab,
		matcher:    matcher,
		resolver:   dates.NewResolver(matcher),
		options:    options,
		metrics:    cx.NewMetrics(),
		log:        options.Logger,
		epochCache: cache.New[string, int64](options.EpochCacheSize),
	}, nil
}

// Extract assembles a clinical record from the document and returns it
// together with the diagnostics recorded along the way. Extraction never
// fails: missing sections contribute nothing, unresolved dates leave fields
// unset, and unknown actor references degrade to absent references.
func (e *Extractor) Extract(doc *ccr.ContinuityOfCareRecord) *cx.Result {
	start := time.Now()

	res := cx.AcquireResult()
	rec := &clinical.Record{}
	res.Record = rec

	rec.Patient = e.assemblePatient(doc, res)
	rec.Actors = e.assembleActors(doc)
	rec.Conditions = e.assembleConditions(doc, res)
	rec.Encounters = e.assembleEncounters(doc, res)
	rec.Procedures = e.assembleProcedures(doc, res)
	rec.Results = e.assembleResults(doc, res)
	rec.Medications = e.assembleMedications(doc, res)
	rec.Allergies = e.assembleAllergies(doc, res)
	rec.Orders = e.assembleOrders(doc, res)

	e.metrics.RecordExtraction(time.Since(start), countEntities(rec))
	return res
}

// CreateRecord is a convenience wrapper around Extract for callers that do
// not inspect diagnostics.
func (e *Extractor) CreateRecord(doc *ccr.ContinuityOfCareRecord) *clinical.Record {
	res := e.Extract(doc)
	rec := res.Record
	res.Record = nil
	res.Release()
	return rec
}

// ConvertExactDateTimeToEpochSeconds converts a full or partial ISO-8601
// timestamp to epoch seconds. Empty or unparseable input yields
// clinical.UnknownDate. Parses are memoized in an LRU cache.
func (e *Extractor) ConvertExactDateTimeToEpochSeconds(iso string) int64 {
	if iso == "" {
		return clinical.UnknownDate
	}
	if sec, ok := e.epochCache.Get(iso); ok {
		e.metrics.RecordCacheHit()
		return sec
	}
	e.metrics.RecordCacheMiss()
	sec := dates.ToEpochSeconds(iso)
	e.epochCache.Set(iso, sec)
	return sec
}

// Metrics returns the extractor's metrics.
func (e *Extractor) Metrics() *cx.Metrics {
	return e.metrics
}

// Options returns the extractor's options.
func (e *Extractor) Options() *cx.Options {
	return e.options
}

// Vocabulary returns the vocabulary the extractor was constructed with.
func (e *Extractor) Vocabulary() *vocabulary.Vocabulary {
	return e.vocab
}

func countEntities(rec *clinical.Record) int {
	n := len(rec.Conditions) + len(rec.Encounters) + len(rec.Procedures) +
		len(rec.Results) + len(rec.Medications) + len(rec.Allergies) +
		len(rec.Orders)
	if rec.Patient != nil {
		n++
	}
	return n
}
