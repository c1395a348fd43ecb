// Package overrides keeps the per-session vocabulary changes layered on
// top of a dictionary: words the user accepted and words the user
// rejected.
//
// Lookups are case-sensitive; callers that want case-insensitive overrides
// normalize before calling. UserOverrides is not safe for concurrent
// mutation.
package overrides

import "slices"

// UserOverrides holds the added and removed word sets. A word present in
// both sets counts as removed.
type UserOverrides struct {
	added   map[string]struct{}
	removed map[string]struct{}
}

// New returns empty overrides.
func New() *UserOverrides {
	return &UserOverrides{
		added:   make(map[string]struct{}),
		removed: make(map[string]struct{}),
	}
}

// Add accepts word. A previous Remove of the same word is undone, so the
// most recent Add makes the word correct again.
func (o *UserOverrides) Add(word string) {
	if word == "" {
		return
	}
	o.added[word] = struct{}{}
	delete(o.removed, word)
}

// Remove rejects word. The word stays in the added set, where removal
// takes precedence over it.
func (o *UserOverrides) Remove(word string) {
	if word == "" {
		return
	}
	o.removed[word] = struct{}{}
}

// IsAdded reports whether word was added.
func (o *UserOverrides) IsAdded(word string) bool {
	_, ok := o.added[word]
	return ok
}

// IsRemoved reports whether word was removed.
func (o *UserOverrides) IsRemoved(word string) bool {
	_, ok := o.removed[word]
	return ok
}

// Accepted reports whether word is added and not removed.
func (o *UserOverrides) Accepted(word string) bool {
	return o.IsAdded(word) && !o.IsRemoved(word)
}

// Empty reports whether no word was ever added or removed.
func (o *UserOverrides) Empty() bool {
	return len(o.added) == 0 && len(o.removed) == 0
}

// HasRemoved reports whether any word is currently removed.
func (o *UserOverrides) HasRemoved() bool { return len(o.removed) > 0 }

// Added returns the added words, sorted.
func (o *UserOverrides) Added() []string { return sortedKeys(o.added) }

// Removed returns the removed words, sorted.
func (o *UserOverrides) Removed() []string { return sortedKeys(o.removed) }

// Reset forgets every override.
func (o *UserOverrides) Reset() {
	clear(o.added)
	clear(o.removed)
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}
