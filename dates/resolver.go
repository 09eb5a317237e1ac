// Package dates implements role-based timestamp resolution and ISO-8601 to
// epoch-seconds conversion.
//
// Role resolution picks the single semantically-correct timestamp out of a
// list of ambiguous dated events: given a term set naming a role ("onset",
// "collected", ...), the resolver either applies the single-event convention
// or scans for an event whose type concept-matches the role.
package dates

import (
	"github.com/gofhir/ccrextract/ccr"
	"github.com/gofhir/ccrextract/concept"
	"github.com/gofhir/ccrextract/vocabulary"
)

// singleEventRoles are the roles for which a single unlabeled timestamp is
// unambiguous by convention. A single untyped date is never assumed to be a
// resolution, end, or order date.
var singleEventRoles = map[string]bool{
	vocabulary.RoleOnset:     true,
	vocabulary.RoleOccurred:  true,
	vocabulary.RoleCollected: true,
}

// Resolver selects timestamps by semantic role. The zero value is not usable;
// construct with NewResolver. A Resolver is safe for concurrent use.
type Resolver struct {
	matcher *concept.Matcher
}

// NewResolver returns a Resolver using the given matcher for event types.
func NewResolver(m *concept.Matcher) *Resolver {
	return &Resolver{matcher: m}
}

// Resolve picks the one timestamp among events that plays the role named by
// the term set. It returns the event's exact ISO-8601 timestamp and true, or
// "" and false when no event plays the role.
//
// A nil term set or an empty event list resolves nothing. A single event resolves directly for
// the onset, occurred, and collected roles, provided it carries an exact
// timestamp; its type is not consulted. In every other case the events are
// scanned in document order and the first typed event whose type matches the
// role wins. A matching event with no exact timestamp is skipped silently and
// the scan continues; it is not an error.
func (r *Resolver) Resolve(ts *vocabulary.TermSet, events []ccr.DateTime) (string, bool) {
	if ts == nil || len(events) == 0 {
		return "", false
	}
	if len(events) == 1 && singleEventRoles[ts.ID] {
		if events[0].ExactDateTime != "" {
			return events[0].ExactDateTime, true
		}
		return "", false
	}
	for i := range events {
		if events[i].Type == nil {
			continue
		}
		if r.matcher.Matches(ts, events[i].Type) && events[i].ExactDateTime != "" {
			return events[i].ExactDateTime, true
		}
	}
	return "", false
}
