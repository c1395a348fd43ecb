package corrector

import "errors"

// ErrInvalidInput is returned by embeddings when a word or text argument
// is empty. The engine methods themselves accept any string.
var ErrInvalidInput = errors.New("invalid input: word or text required")

// MisspelledRange is a token that failed lookup. Offsets use the unit of
// the scanned input (UTF-16 code units or bytes).
type MisspelledRange struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Candidate is one correction under consideration. Only Term leaves the
// package; the other fields order candidates.
type Candidate struct {
	Term    string
	Variant bool // differs from the input only by letter case
	Edits   int  // Damerau-Levenshtein distance to the input
	Freq    int  // dictionary frequency, 0 when unknown
}

// ValidateWord returns ErrInvalidInput for an empty word.
func ValidateWord(word string) error {
	if word == "" {
		return ErrInvalidInput
	}
	return nil
}
