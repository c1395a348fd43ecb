// Package dictionary holds the compiled, immutable vocabulary of one
// language: stems with their affix flags, the affix rule table indexed for
// lookup, optional word frequencies, and the alphabet used for suggestions.
//
// Dictionaries are built by a Parser from source bytes. HunspellParser
// reads the .aff/.dic format; WordListParser reads plain word lists. Both
// produce the same representation, and a built Dictionary never refers
// back to the source bytes. A Dictionary is safe for concurrent reads.
package dictionary

import (
	"slices"
	"strings"
	"unicode/utf8"
)

// Dictionary is an immutable vocabulary for one language.
type Dictionary struct {
	lang  string
	stems map[string]flagSet
	freq  map[string]int

	// rules by flag, and by the text they attach to a word
	rules      map[Flag][]*AffixRule
	suffixes   map[string][]*AffixRule
	prefixes   map[string][]*AffixRule
	suffixLens []int
	prefixLens []int

	alphabet []rune

	forbidden Flag
	noSuggest Flag
	needAffix Flag
	keepCase  Flag

	skipped int
}

// Language returns the identifier the dictionary was built for.
func (d *Dictionary) Language() string { return d.lang }

// Len returns the number of stems.
func (d *Dictionary) Len() int { return len(d.stems) }

// Skipped returns how many malformed entries were dropped while loading.
func (d *Dictionary) Skipped() int { return d.skipped }

// Rules returns the affix rules registered for flag.
func (d *Dictionary) Rules(flag Flag) []*AffixRule { return d.rules[flag] }

// Alphabet returns the characters used to build insertion and
// substitution candidates, in suggestion order.
func (d *Dictionary) Alphabet() []rune { return d.alphabet }

// HasFrequencies reports whether any word carries a frequency.
func (d *Dictionary) HasFrequencies() bool { return len(d.freq) > 0 }

// Frequency returns the corpus count for word, or 0 when unknown.
func (d *Dictionary) Frequency(word string) int { return d.freq[word] }

// Contains reports whether word is a stem or a stem transformed by one
// of its affix rules.
func (d *Dictionary) Contains(word string) bool {
	_, ok := d.find(word)
	return ok
}

// Suggestible reports whether word is in the dictionary and may be
// offered as a correction.
func (d *Dictionary) Suggestible(word string) bool {
	fs, ok := d.find(word)
	return ok && !fs.has(d.noSuggest)
}

// Forbidden reports whether word is explicitly marked as a wrong form.
func (d *Dictionary) Forbidden(word string) bool {
	return d.stems[word].has(d.forbidden)
}

// KeepCase reports whether word only matches in its stored case.
func (d *Dictionary) KeepCase(word string) bool {
	fs, ok := d.find(word)
	return ok && fs.has(d.keepCase)
}

// find resolves word to the flags of the stem it derives from.
func (d *Dictionary) find(word string) (flagSet, bool) {
	if d == nil || word == "" {
		return nil, false
	}
	if fs, ok := d.stems[word]; ok {
		if fs.has(d.forbidden) {
			return nil, false
		}
		if !fs.has(d.needAffix) {
			return fs, true
		}
	}
	if fs, ok := d.findSuffixed(word, nil); ok {
		return fs, true
	}
	for _, n := range d.prefixLens {
		if n >= len(word) {
			break
		}
		for _, p := range d.prefixes[word[:n]] {
			rest := p.Strip + word[n:]
			if fs, ok := d.stemFor(rest, p); ok {
				return fs, true
			}
			if p.Cross {
				if fs, ok := d.findSuffixed(rest, p); ok {
					return fs, true
				}
			}
		}
	}
	return nil, false
}

// findSuffixed strips one suffix from word. When outer is set, the stem
// must also carry outer's flag and the suffix must allow cross products.
func (d *Dictionary) findSuffixed(word string, outer *AffixRule) (flagSet, bool) {
	for _, n := range d.suffixLens {
		if n >= len(word) {
			break
		}
		for _, s := range d.suffixes[word[len(word)-n:]] {
			if outer != nil && !s.Cross {
				continue
			}
			stem := word[:len(word)-n] + s.Strip
			fs, ok := d.stemFor(stem, s)
			if !ok {
				continue
			}
			if outer != nil && (!fs.has(outer.Flag) || !outer.Condition.matchPrefix(word)) {
				continue
			}
			return fs, true
		}
	}
	return nil, false
}

func (d *Dictionary) stemFor(stem string, r *AffixRule) (flagSet, bool) {
	fs, ok := d.stems[stem]
	if !ok || !fs.has(r.Flag) || fs.has(d.forbidden) {
		return nil, false
	}
	if !r.matches(stem) {
		return nil, false
	}
	return fs, true
}

// StripAffixes returns every residual stem reachable by removing one
// affix rule whose attached text matches word, whether or not the
// residual carries that rule's flag. Results are sorted and distinct.
func (d *Dictionary) StripAffixes(word string) []string {
	if d == nil || word == "" {
		return nil
	}
	seen := make(map[string]struct{})
	for _, n := range d.suffixLens {
		if n >= len(word) {
			break
		}
		for _, s := range d.suffixes[word[len(word)-n:]] {
			seen[word[:len(word)-n]+s.Strip] = struct{}{}
		}
	}
	for _, n := range d.prefixLens {
		if n >= len(word) {
			break
		}
		for _, p := range d.prefixes[word[:n]] {
			seen[p.Strip+word[n:]] = struct{}{}
		}
	}
	delete(seen, word)
	delete(seen, "")
	out := make([]string, 0, len(seen))
	for s := range seen {
		out = append(out, s)
	}
	slices.Sort(out)
	return out
}

// builder accumulates parser output into a Dictionary.
type builder struct {
	d        *Dictionary
	declared map[Flag]bool
	stemRune map[rune]struct{}
	try      string
}

func newBuilder(lang string) *builder {
	return &builder{
		d: &Dictionary{
			lang:     lang,
			stems:    make(map[string]flagSet),
			freq:     make(map[string]int),
			rules:    make(map[Flag][]*AffixRule),
			suffixes: make(map[string][]*AffixRule),
			prefixes: make(map[string][]*AffixRule),
		},
		declared: make(map[Flag]bool),
		stemRune: make(map[rune]struct{}),
	}
}

func (b *builder) declare(f Flag) { b.declared[f] = true }

func (b *builder) addRule(r *AffixRule) {
	b.declare(r.Flag)
	b.d.rules[r.Flag] = append(b.d.rules[r.Flag], r)
	if r.Prefix {
		b.d.prefixes[r.Add] = append(b.d.prefixes[r.Add], r)
	} else {
		b.d.suffixes[r.Add] = append(b.d.suffixes[r.Add], r)
	}
}

// addStem registers word with flags. Undeclared flags are dropped and
// repeated stems (homonyms) merge their flags.
func (b *builder) addStem(word string, flags []Flag) {
	kept := b.d.stems[word]
	for _, f := range flags {
		if b.declared[f] && !kept.has(f) {
			kept = append(kept, f)
		}
	}
	b.d.stems[word] = kept
	for _, r := range word {
		b.stemRune[r] = struct{}{}
	}
}

func (b *builder) setFrequency(word string, n int) {
	if n > 0 {
		b.d.freq[word] = n
	}
}

func (b *builder) skip() { b.d.skipped++ }

func (b *builder) finish() *Dictionary {
	d := b.d
	d.suffixLens = affixLengths(d.suffixes)
	d.prefixLens = affixLengths(d.prefixes)
	d.alphabet = b.alphabet()
	b.d = nil
	return d
}

func (b *builder) alphabet() []rune {
	var out []rune
	seen := make(map[rune]bool)
	for _, r := range b.try {
		if !seen[r] {
			seen[r] = true
			out = append(out, r)
		}
	}
	if len(out) > 0 {
		return out
	}
	for r := range b.stemRune {
		out = append(out, r)
	}
	slices.Sort(out)
	return out
}

func affixLengths(m map[string][]*AffixRule) []int {
	lens := make([]int, 0, len(m))
	for add := range m {
		if !slices.Contains(lens, len(add)) {
			lens = append(lens, len(add))
		}
	}
	slices.Sort(lens)
	return lens
}

// splitFlags returns s up to the first unescaped '/' and the remainder
// after it. A "\/" sequence is kept as a literal slash in the word.
func splitFlags(s string) (word, flags string) {
	if !strings.Contains(s, "/") {
		return s, ""
	}
	var sb strings.Builder
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch {
		case r == '\\' && i+1 < len(s) && s[i+1] == '/':
			sb.WriteByte('/')
			i += 2
			continue
		case r == '/':
			return sb.String(), s[i+1:]
		}
		sb.WriteRune(r)
		i += size
	}
	return sb.String(), ""
}
