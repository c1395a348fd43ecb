package corrector

import (
	"cmp"
	"slices"
	"strings"

	"spellchecker/internal/dictionary"
)

// Suggest returns corrections for word, best first. Case variants come
// before everything else; the rest are ordered by edit distance, then by
// frequency, then alphabetically. The result is empty when word is empty
// or no dictionary is loaded.
func (sc *SpellCorrector) Suggest(word string) []string {
	d := sc.dict.Load()
	if word == "" || d == nil {
		return nil
	}
	s := newSuggester(sc, d, word)
	s.caseVariants()
	if !s.full() {
		s.singleEdits()
	}
	if !s.full() {
		s.strippedAffixes()
	}
	if len(s.found) < sc.config.MinSuggestions && len(s.runes) <= sc.config.MaxTwoEditLength {
		s.doubleEdits()
	}
	return s.ranked()
}

// suggester collects the candidates of one Suggest call.
type suggester struct {
	sc    *SpellCorrector
	d     *dictionary.Dictionary
	word  string
	runes []rune
	seen  map[string]struct{}
	found []Candidate
}

func newSuggester(sc *SpellCorrector, d *dictionary.Dictionary, word string) *suggester {
	return &suggester{
		sc:    sc,
		d:     d,
		word:  word,
		runes: []rune(word),
		seen:  make(map[string]struct{}),
	}
}

func (s *suggester) full() bool { return len(s.found) >= s.sc.config.MaxSuggestions }

// offer records term if the engine accepts it and it is new.
func (s *suggester) offer(term string, variant bool) {
	if term == s.word || term == "" {
		return
	}
	if _, ok := s.seen[term]; ok {
		return
	}
	if !s.sc.acceptable(s.d, term) {
		return
	}
	s.seen[term] = struct{}{}
	s.found = append(s.found, Candidate{
		Term:    term,
		Variant: variant,
		Edits:   editDistance(s.runes, []rune(term)),
		Freq:    s.d.Frequency(term),
	})
}

func (s *suggester) caseVariants() {
	for _, v := range []string{lowerCase(s.word), titleCase(s.word), upperCase(s.word)} {
		s.offer(v, true)
	}
}

func (s *suggester) singleEdits() {
	edits(s.runes, s.d.Alphabet(), func(e string) { s.offer(e, false) })
}

func (s *suggester) strippedAffixes() {
	for _, stem := range s.d.StripAffixes(s.word) {
		s.offer(stem, false)
	}
}

func (s *suggester) doubleEdits() {
	alphabet := s.d.Alphabet()
	first := make(map[string]struct{})
	edits(s.runes, alphabet, func(e string) { first[e] = struct{}{} })
	for e := range first {
		edits([]rune(e), alphabet, func(e2 string) { s.offer(e2, false) })
	}
}

func (s *suggester) ranked() []string {
	slices.SortFunc(s.found, compareCandidates)
	n := min(len(s.found), s.sc.config.MaxSuggestions)
	out := make([]string, n)
	for i := range out {
		out[i] = s.found[i].Term
	}
	return out
}

func compareCandidates(a, b Candidate) int {
	if a.Variant != b.Variant {
		if a.Variant {
			return -1
		}
		return 1
	}
	if c := cmp.Compare(a.Edits, b.Edits); c != 0 {
		return c
	}
	if c := cmp.Compare(b.Freq, a.Freq); c != 0 {
		return c
	}
	return strings.Compare(a.Term, b.Term)
}

// acceptable reports whether term may be offered: never when removed,
// always when added, otherwise when the dictionary allows suggesting it.
func (sc *SpellCorrector) acceptable(d *dictionary.Dictionary, term string) bool {
	if sc.overrides.IsRemoved(term) {
		return false
	}
	if sc.overrides.IsAdded(term) {
		return true
	}
	return d.Suggestible(term)
}

// edits calls emit with every string one edit away from word: each
// deletion, adjacent transposition, substitution and insertion, the last
// two drawing from alphabet. Duplicates are possible.
func edits(word, alphabet []rune, emit func(string)) {
	buf := make([]rune, 0, len(word)+1)
	for i := range word {
		buf = append(buf[:0], word[:i]...)
		buf = append(buf, word[i+1:]...)
		emit(string(buf))
	}
	for i := 0; i+1 < len(word); i++ {
		if word[i] == word[i+1] {
			continue
		}
		buf = append(buf[:0], word...)
		buf[i], buf[i+1] = buf[i+1], buf[i]
		emit(string(buf))
	}
	for i := range word {
		for _, c := range alphabet {
			if c == word[i] {
				continue
			}
			buf = append(buf[:0], word...)
			buf[i] = c
			emit(string(buf))
		}
	}
	for i := 0; i <= len(word); i++ {
		for _, c := range alphabet {
			buf = append(buf[:0], word[:i]...)
			buf = append(buf, c)
			buf = append(buf, word[i:]...)
			emit(string(buf))
		}
	}
}
