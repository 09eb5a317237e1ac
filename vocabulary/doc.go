// Package vocabulary provides the controlled vocabulary the extraction
// engine resolves semantic roles against.
//
// A TermSet names one semantic role (for example "onset" or "gender_male")
// and lists the controlled codes and free-text terms recognized for it. A
// Vocabulary is an immutable collection of term sets looked up by ID.
//
// Example usage:
//
//	// Use the embedded base vocabulary
//	vocab := vocabulary.Default()
//
//	// Or load one from a JSON file
//	vocab, err := vocabulary.LoadFile("myvocabulary.json")
//
//	ts, ok := vocab.TermSet(vocabulary.RoleOnset)
package vocabulary
