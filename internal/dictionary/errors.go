package dictionary

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound means no dictionary files exist for the requested language.
	ErrNotFound = errors.New("dictionary not found")
	// ErrMalformed means the source has a structurally invalid header or section.
	ErrMalformed = errors.New("malformed dictionary")
	// ErrEncoding means the declared character set is unknown or the bytes do not decode.
	ErrEncoding = errors.New("unreadable dictionary encoding")
)

// LoadError reports a failed dictionary load. Err wraps one of the
// sentinel errors above, so errors.Is works through it.
type LoadError struct {
	Lang string
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	switch {
	case e.Path != "":
		return fmt.Sprintf("load dictionary %q from %s: %v", e.Lang, e.Path, e.Err)
	case e.Lang != "":
		return fmt.Sprintf("load dictionary %q: %v", e.Lang, e.Err)
	}
	return fmt.Sprintf("load dictionary: %v", e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

func malformed(line int, format string, args ...any) error {
	return fmt.Errorf("%w: line %d: %s", ErrMalformed, line, fmt.Sprintf(format, args...))
}
