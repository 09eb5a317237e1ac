package concept

import (
	"testing"

	"github.com/gofhir/ccrextract/ccr"
	"github.com/gofhir/ccrextract/clinical"
	"github.com/gofhir/ccrextract/vocabulary"
)

func TestConvert(t *testing.T) {
	t.Run("nil description", func(t *testing.T) {
		if got := Convert(nil); len(got) != 0 {
			t.Errorf("Convert(nil) = %v; want empty", got)
		}
	})

	t.Run("text only", func(t *testing.T) {
		got := Convert(&ccr.CodedDescription{Text: "Aspirin"})
		if len(got) != 1 {
			t.Fatalf("len = %d; want 1", len(got))
		}
		if got[0].CodingSystem != clinical.TextCodingSystem {
			t.Errorf("CodingSystem = %q; want %q", got[0].CodingSystem, clinical.TextCodingSystem)
		}
		if len(got[0].Values) != 1 || got[0].Values[0] != "Aspirin" {
			t.Errorf("Values = %v; want [Aspirin]", got[0].Values)
		}
	})

	t.Run("text emitted before codes", func(t *testing.T) {
		got := Convert(&ccr.CodedDescription{
			Text: "Diabetes",
			Codes: []ccr.Code{
				{System: "ICD9", Value: "250.00"},
				{System: "SNOMEDCT", Version: "2010", Value: "73211009"},
			},
		})
		if len(got) != 3 {
			t.Fatalf("len = %d; want 3", len(got))
		}
		if got[0].CodingSystem != clinical.TextCodingSystem {
			t.Errorf("first CodingSystem = %q; want TEXT", got[0].CodingSystem)
		}
		if got[1].CodingSystem != "ICD9" || got[1].Values[0] != "250.00" {
			t.Errorf("second = %+v; want ICD9 250.00", got[1])
		}
		if got[2].Version != "2010" {
			t.Errorf("third Version = %q; want 2010", got[2].Version)
		}
	})

	t.Run("codes sharing a system are not merged", func(t *testing.T) {
		got := Convert(&ccr.CodedDescription{
			Codes: []ccr.Code{
				{System: "ICD9", Value: "250.00"},
				{System: "ICD9", Value: "250.01"},
			},
		})
		if len(got) != 2 {
			t.Errorf("len = %d; want 2 (no merging)", len(got))
		}
	})
}

func TestMatcherMatches(t *testing.T) {
	m := NewMatcher()
	ts := &vocabulary.TermSet{
		ID: "gender_male",
		Codes: []vocabulary.CodedTerm{
			{System: "SNOMEDCT", Value: "248153007"},
			{System: "HL7", Value: "M"},
		},
		Terms: []string{"male", "m"},
	}

	t.Run("code match", func(t *testing.T) {
		cand := &ccr.CodedDescription{Codes: []ccr.Code{{System: "HL7", Value: "M"}}}
		if !m.Matches(ts, cand) {
			t.Error("expected code match on M")
		}
	})

	t.Run("code match ignores coding system", func(t *testing.T) {
		// Systems are currently always comparable.
		cand := &ccr.CodedDescription{Codes: []ccr.Code{{System: "LOCAL", Value: "248153007"}}}
		if !m.Matches(ts, cand) {
			t.Error("expected value match across coding systems")
		}
	})

	t.Run("text match is case-insensitive", func(t *testing.T) {
		if !m.Matches(ts, &ccr.CodedDescription{Text: "MALE"}) {
			t.Error("expected case-insensitive text match")
		}
		if !m.Matches(ts, &ccr.CodedDescription{Text: "Male"}) {
			t.Error("expected case-insensitive text match")
		}
	})

	t.Run("codes checked before text", func(t *testing.T) {
		cand := &ccr.CodedDescription{
			Text:  "not a gender",
			Codes: []ccr.Code{{System: "HL7", Value: "M"}},
		}
		if !m.Matches(ts, cand) {
			t.Error("expected match by code despite non-matching text")
		}
	})

	t.Run("no match", func(t *testing.T) {
		cand := &ccr.CodedDescription{
			Text:  "female",
			Codes: []ccr.Code{{System: "HL7", Value: "F"}},
		}
		if m.Matches(ts, cand) {
			t.Error("expected no match")
		}
	})

	t.Run("nil candidate", func(t *testing.T) {
		if m.Matches(ts, nil) {
			t.Error("nil candidate must not match")
		}
	})

	t.Run("empty candidate text never matches terms", func(t *testing.T) {
		empty := &vocabulary.TermSet{ID: "x", Terms: []string{""}}
		if m.Matches(empty, &ccr.CodedDescription{}) {
			t.Error("empty text must not match")
		}
	})
}
