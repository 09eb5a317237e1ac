package ccrextract

import "fmt"

// IssueSeverity represents the severity of an extraction diagnostic.
type IssueSeverity string

const (
	// SeverityError indicates data the extractor could not represent at all.
	SeverityError IssueSeverity = "error"
	// SeverityWarning indicates a degraded extraction, such as a reference
	// to an actor the document does not define.
	SeverityWarning IssueSeverity = "warning"
	// SeverityInformation indicates an expected, recoverable outcome, such
	// as an optional date role with no matching timestamp.
	SeverityInformation IssueSeverity = "information"
)

// IssueType classifies an extraction diagnostic.
type IssueType string

const (
	// IssueTypeDateNotFound indicates a role resolution found no matching
	// timestamp. Most optional date roles are legitimately absent on most
	// records, so this is informational, not a defect signal.
	IssueTypeDateNotFound IssueType = "date-not-found"
	// IssueTypeDateInvalid indicates a resolved timestamp string could not
	// be converted to epoch seconds.
	IssueTypeDateInvalid IssueType = "date-invalid"
	// IssueTypeActorNotFound indicates a reference to an actor the document
	// does not define.
	IssueTypeActorNotFound IssueType = "actor-not-found"
	// IssueTypeStructure indicates the document is missing an element the
	// extractor expected.
	IssueTypeStructure IssueType = "structure"
)

// Issue is a single extraction diagnostic. Issues never abort a record
// build; they record what was left unset and why.
type Issue struct {
	// Severity of the issue
	Severity IssueSeverity `json:"severity"`

	// Code identifying the type of issue
	Code IssueType `json:"code"`

	// Diagnostics contains human-readable details about the issue
	Diagnostics string `json:"diagnostics,omitempty"`

	// Category is the entity category being assembled (problem, encounter, ...)
	Category string `json:"category,omitempty"`

	// ElementID is the source element's object ID, when known
	ElementID string `json:"elementId,omitempty"`
}

// IsError returns true if this is an error issue.
func (i Issue) IsError() bool {
	return i.Severity == SeverityError
}

// IsWarning returns true if this is a warning.
func (i Issue) IsWarning() bool {
	return i.Severity == SeverityWarning
}

// String returns a human-readable representation of the issue.
func (i Issue) String() string {
	where := ""
	if i.Category != "" {
		where = " at " + i.Category
		if i.ElementID != "" {
			where += "[" + i.ElementID + "]"
		}
	}
	return string(i.Severity) + ": " + i.Diagnostics + where
}

// IncompleteVocabularyError is returned when an extractor is constructed
// with a vocabulary that does not define every required term set. No
// partially-usable extractor is ever produced.
type IncompleteVocabularyError struct {
	// Missing lists the required term set IDs the vocabulary lacks.
	Missing []string
}

// Error implements the error interface.
func (e *IncompleteVocabularyError) Error() string {
	return fmt.Sprintf("vocabulary is missing required termsets: %v", e.Missing)
}
