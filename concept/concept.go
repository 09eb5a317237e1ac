// Package concept implements concept matching and coded-value conversion.
//
// A concept match tests a source coded/textual item against a vocabulary term
// set: codes are authoritative when present, free text is a case-insensitive
// fallback, because source documents rarely carry controlled vocabularies for
// type or status fields.
package concept

import (
	"strings"

	"github.com/gofhir/ccrextract/ccr"
	"github.com/gofhir/ccrextract/clinical"
	"github.com/gofhir/ccrextract/vocabulary"
)

// Convert normalizes a source coded description into a list of coded values.
// A nil description yields an empty list. When the description carries free
// text, a TEXT coded value is emitted first; each source code then becomes
// one coded value in document order. Codes sharing a coding system are not
// merged.
func Convert(desc *ccr.CodedDescription) []clinical.CodedValue {
	if desc == nil {
		return nil
	}
	out := make([]clinical.CodedValue, 0, len(desc.Codes)+1)
	if desc.Text != "" {
		out = append(out, clinical.Text(desc.Text))
	}
	for _, c := range desc.Codes {
		out = append(out, clinical.CodedValue{
			CodingSystem: c.System,
			Version:      c.Version,
			Values:       []string{c.Value},
		})
	}
	return out
}

// Matcher decides whether source concepts match vocabulary term sets.
// The zero value is ready to use and safe for concurrent use.
type Matcher struct{}

// NewMatcher returns a new Matcher.
func NewMatcher() *Matcher {
	return &Matcher{}
}

// Matches reports whether the candidate concept matches the term set.
// Codes are compared first: every term set code against every candidate code,
// on literal value equality, gated on coding-system comparability. When no
// code matches, each term set term is compared case-insensitively against the
// candidate's free text. A nil candidate never matches.
func (m *Matcher) Matches(ts *vocabulary.TermSet, candidate *ccr.CodedDescription) bool {
	if ts == nil || candidate == nil {
		return false
	}
	for i := range ts.Codes {
		for j := range candidate.Codes {
			if !m.comparableSystems(ts.Codes[i].System, candidate.Codes[j].System) {
				continue
			}
			if ts.Codes[i].Value == candidate.Codes[j].Value {
				return true
			}
		}
	}
	if candidate.Text != "" {
		for _, term := range ts.Terms {
			if strings.EqualFold(term, candidate.Text) {
				return true
			}
		}
	}
	return false
}

// comparableSystems reports whether codes from the two coding systems may be
// compared by value. All systems are currently treated as comparable; the
// sets in play (ICD, SNOMED, RxNorm) do not overlap. Replacing this with a
// real system-compatibility table changes nothing else in the matcher.
func (m *Matcher) comparableSystems(a, b string) bool {
	return true
}
