// Package ccrextract extracts flat clinical records from hierarchical
// Continuity of Care Record documents.
//
// A CCR represents the same clinical fact redundantly in several places and
// tags each element with multiple timestamped events whose semantic roles are
// ambiguous. The engine normalizes this into one uniformly-shaped record
// (patient, conditions, encounters, results, medications, allergies,
// procedures, orders, goals) suitable for downstream rule matching.
//
// The core is the vocabulary-driven resolution engine: controlled term sets
// decide which of an element's dated events plays a requested role (onset,
// occurred, resolved, ended, collected, ordered) and whether an arbitrary
// coded or textual concept matches a semantic category such as gender.
//
// # Quick Start
//
//	import (
//	    cx "github.com/gofhir/ccrextract"
//	    "github.com/gofhir/ccrextract/engine"
//	    "github.com/gofhir/ccrextract/vocabulary"
//	)
//
//	ex, err := engine.New(vocabulary.Default())
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result := ex.Extract(doc)
//	record := result.Record
//	result.Release() // Return to pool for better performance
//
// # Functional Options
//
//	ex, err := engine.New(vocab,
//	    cx.WithLogger(logger),
//	    cx.WithWorkerCount(8),
//	    cx.WithDiagnostics(true),
//	)
//
// # Failure Model
//
// Only construction can fail: a vocabulary missing a required term set
// yields an IncompleteVocabularyError and no extractor. Everything else
// degrades: absent sections contribute nothing, unresolved date roles leave
// fields unset, unknown actor references become absent references. Each
// degradation is recorded as a low-severity Issue on the Result.
package ccrextract
