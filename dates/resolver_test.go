package dates

import (
	"testing"

	"github.com/gofhir/ccrextract/ccr"
	"github.com/gofhir/ccrextract/concept"
	"github.com/gofhir/ccrextract/vocabulary"
)

func testTermSet(id string, terms ...string) *vocabulary.TermSet {
	return &vocabulary.TermSet{ID: id, Terms: terms}
}

func TestResolveSingleEvent(t *testing.T) {
	r := NewResolver(concept.NewMatcher())
	single := []ccr.DateTime{{ExactDateTime: "2020-01-05T00:00:00"}}

	t.Run("single untyped event resolves for unambiguous roles", func(t *testing.T) {
		for _, role := range []string{vocabulary.RoleOnset, vocabulary.RoleOccurred, vocabulary.RoleCollected} {
			got, ok := r.Resolve(testTermSet(role), single)
			if !ok {
				t.Errorf("role %s: expected resolution", role)
				continue
			}
			if got != "2020-01-05T00:00:00" {
				t.Errorf("role %s: got %q", role, got)
			}
		}
	})

	t.Run("single untyped event does not resolve for refinement roles", func(t *testing.T) {
		for _, role := range []string{vocabulary.RoleResolved, vocabulary.RoleEnded, vocabulary.RoleOrdered} {
			if _, ok := r.Resolve(testTermSet(role), single); ok {
				t.Errorf("role %s: single untyped date must not resolve", role)
			}
		}
	})

	t.Run("single event without exact timestamp", func(t *testing.T) {
		events := []ccr.DateTime{{}}
		if _, ok := r.Resolve(testTermSet(vocabulary.RoleOnset), events); ok {
			t.Error("event without exact timestamp must not resolve")
		}
	})

	t.Run("single typed event still resolves refinement roles by type", func(t *testing.T) {
		events := []ccr.DateTime{{
			Type:          &ccr.CodedDescription{Text: "resolved"},
			ExactDateTime: "2021-06-01",
		}}
		got, ok := r.Resolve(testTermSet(vocabulary.RoleResolved, "resolved"), events)
		if !ok || got != "2021-06-01" {
			t.Errorf("got %q, %v; want 2021-06-01, true", got, ok)
		}
	})
}

func TestResolveScan(t *testing.T) {
	r := NewResolver(concept.NewMatcher())
	onset := testTermSet(vocabulary.RoleOnset, "onset", "start date")

	t.Run("empty list", func(t *testing.T) {
		if _, ok := r.Resolve(onset, nil); ok {
			t.Error("nil events must not resolve")
		}
		if _, ok := r.Resolve(onset, []ccr.DateTime{}); ok {
			t.Error("empty events must not resolve")
		}
	})

	t.Run("nil term set", func(t *testing.T) {
		events := []ccr.DateTime{{ExactDateTime: "2020-01-01"}}
		if got, ok := r.Resolve(nil, events); ok {
			t.Errorf("got %q; nil term set must not resolve", got)
		}
	})

	t.Run("first matching typed event wins", func(t *testing.T) {
		events := []ccr.DateTime{
			{Type: &ccr.CodedDescription{Text: "resolved"}, ExactDateTime: "2022-01-01"},
			{Type: &ccr.CodedDescription{Text: "Start Date"}, ExactDateTime: "2019-03-04"},
			{Type: &ccr.CodedDescription{Text: "onset"}, ExactDateTime: "2018-01-01"},
		}
		got, ok := r.Resolve(onset, events)
		if !ok || got != "2019-03-04" {
			t.Errorf("got %q, %v; want 2019-03-04, true", got, ok)
		}
	})

	t.Run("match by code regardless of position", func(t *testing.T) {
		ts := &vocabulary.TermSet{
			ID:    vocabulary.RoleCollected,
			Codes: []vocabulary.CodedTerm{{System: "SNOMEDCT", Value: "399445004"}},
		}
		events := []ccr.DateTime{
			{ExactDateTime: "2020-01-01"},
			{Type: &ccr.CodedDescription{Codes: []ccr.Code{{System: "SNOMEDCT", Value: "399445004"}}}, ExactDateTime: "2020-05-05"},
		}
		got, ok := r.Resolve(ts, events)
		if !ok || got != "2020-05-05" {
			t.Errorf("got %q, %v; want 2020-05-05, true", got, ok)
		}
	})

	t.Run("matching event without timestamp is skipped", func(t *testing.T) {
		events := []ccr.DateTime{
			{Type: &ccr.CodedDescription{Text: "onset"}},
			{Type: &ccr.CodedDescription{Text: "onset"}, ExactDateTime: "2017-11-30"},
		}
		got, ok := r.Resolve(onset, events)
		if !ok || got != "2017-11-30" {
			t.Errorf("got %q, %v; want 2017-11-30, true", got, ok)
		}
	})

	t.Run("untyped events are skipped in scan", func(t *testing.T) {
		events := []ccr.DateTime{
			{ExactDateTime: "2020-01-01"},
			{ExactDateTime: "2020-02-02"},
		}
		if _, ok := r.Resolve(onset, events); ok {
			t.Error("multiple untyped events must not resolve")
		}
	})

	t.Run("no match is not found, not an error", func(t *testing.T) {
		events := []ccr.DateTime{
			{Type: &ccr.CodedDescription{Text: "ended"}, ExactDateTime: "2020-01-01"},
		}
		if got, ok := r.Resolve(onset, events); ok {
			t.Errorf("got %q; want not found", got)
		}
	})
}
