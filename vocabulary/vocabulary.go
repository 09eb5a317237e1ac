package vocabulary

import "sort"

// Role identifiers for the term sets the extraction engine resolves dates and
// demographics against.
const (
	RoleOnset        = "onset"
	RoleOccurred     = "occurred"
	RoleResolved     = "resolved"
	RoleEnded        = "ended"
	RoleCollected    = "collected"
	RoleOrdered      = "ordered"
	RoleGenderMale   = "gender_male"
	RoleGenderFemale = "gender_female"
)

// requiredTermSets lists the term sets every usable vocabulary must define.
var requiredTermSets = []string{
	RoleOnset, RoleOccurred, RoleResolved, RoleEnded,
	RoleCollected, RoleOrdered, RoleGenderMale, RoleGenderFemale,
}

// RequiredTermSets returns the IDs of the term sets the extraction engine
// requires. The returned slice is a copy.
func RequiredTermSets() []string {
	out := make([]string, len(requiredTermSets))
	copy(out, requiredTermSets)
	return out
}

// CodedTerm is one controlled code recognized by a term set.
type CodedTerm struct {
	System  string `json:"codingSystem"`
	Version string `json:"version,omitempty"`
	Value   string `json:"value"`
}

// TermSet is a named set of recognized codes and free-text terms for one
// semantic role. Term sets are immutable once loaded.
type TermSet struct {
	ID    string      `json:"id"`
	Codes []CodedTerm `json:"codes,omitempty"`
	Terms []string    `json:"terms,omitempty"`
}

// Vocabulary maps term set IDs to term sets. It is read-only after
// construction and safe to share across concurrent extractors.
type Vocabulary struct {
	sets map[string]*TermSet
}

// New builds a Vocabulary from the given term sets. A later term set with a
// duplicate ID replaces the earlier one.
func New(sets ...TermSet) *Vocabulary {
	v := &Vocabulary{sets: make(map[string]*TermSet, len(sets))}
	for i := range sets {
		ts := sets[i]
		v.sets[ts.ID] = &ts
	}
	return v
}

// TermSet returns the term set with the given ID.
func (v *Vocabulary) TermSet(id string) (*TermSet, bool) {
	ts, ok := v.sets[id]
	return ts, ok
}

// Has reports whether the vocabulary defines a term set with the given ID.
func (v *Vocabulary) Has(id string) bool {
	_, ok := v.sets[id]
	return ok
}

// IDs returns the defined term set IDs in sorted order.
func (v *Vocabulary) IDs() []string {
	ids := make([]string, 0, len(v.sets))
	for id := range v.sets {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Len returns the number of term sets.
func (v *Vocabulary) Len() int {
	return len(v.sets)
}

// Missing returns the required term set IDs the vocabulary does not define,
// in required order. An empty result means the vocabulary is complete.
func (v *Vocabulary) Missing() []string {
	var missing []string
	for _, id := range requiredTermSets {
		if !v.Has(id) {
			missing = append(missing, id)
		}
	}
	return missing
}
