package vocabulary

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"sync"
)

// vocabularyFile is the on-disk JSON shape: a flat list of term sets.
type vocabularyFile struct {
	TermSets []TermSet `json:"termsets"`
}

// FromJSON parses a vocabulary from its JSON representation.
func FromJSON(data []byte) (*Vocabulary, error) {
	var file vocabularyFile
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse vocabulary: %w", err)
	}
	for i := range file.TermSets {
		if file.TermSets[i].ID == "" {
			return nil, fmt.Errorf("termset at index %d has no id", i)
		}
	}
	return New(file.TermSets...), nil
}

// LoadFile reads and parses a vocabulary from a JSON file.
func LoadFile(path string) (*Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read vocabulary file: %w", err)
	}
	return FromJSON(data)
}

//go:embed base.json
var baseVocabularyJSON []byte

var (
	defaultOnce  sync.Once
	defaultVocab *Vocabulary
)

// Default returns the embedded base vocabulary shipped with the module. It
// defines every required term set and is loaded once on first use.
func Default() *Vocabulary {
	defaultOnce.Do(func() {
		v, err := FromJSON(baseVocabularyJSON)
		if err != nil {
			// The embedded file is compiled in; a parse failure is a build defect.
			panic(fmt.Sprintf("vocabulary: embedded base vocabulary is invalid: %v", err))
		}
		defaultVocab = v
	})
	return defaultVocab
}
