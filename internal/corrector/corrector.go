// Package corrector is the spellchecking engine: it answers whether words
// are misspelled, finds misspellings in text and ranks corrections, using
// the current dictionary and the session's user overrides.
//
// A SpellCorrector is meant for one logical caller. Read operations
// (IsMisspelled, CheckSpelling, CheckString, Suggest) may run
// concurrently with each other, but mutations (SetDictionary*,
// ReplaceDictionary, Add, Remove) must not overlap any other call; the
// embedding serializes them. Dictionary replacement itself is atomic: a
// query sees either the old or the new dictionary, never a mix.
package corrector

import (
	"log/slog"
	"sync/atomic"
	"unicode/utf16"

	"spellchecker/internal/catalog"
	"spellchecker/internal/dictionary"
	"spellchecker/internal/overrides"
	"spellchecker/internal/tokenizer"
	"spellchecker/pkg/options"
)

type SpellCorrector struct {
	config    options.SpellcheckerOptions
	dict      atomic.Pointer[dictionary.Dictionary]
	overrides *overrides.UserOverrides
	log       *slog.Logger
}

// NewSpellCorrector returns an engine with no dictionary loaded. Until one
// is loaded every word is reported as correctly spelled.
func NewSpellCorrector(opts ...options.Options) *SpellCorrector {
	cfg := options.Resolve(opts...)
	return &SpellCorrector{
		config:    cfg,
		overrides: overrides.New(),
		log:       cfg.Logger,
	}
}

// SetDictionary loads the dictionary for lang from the configured search
// paths (or the platform defaults). On failure the current dictionary is
// kept and the *dictionary.LoadError is returned.
func (sc *SpellCorrector) SetDictionary(lang string) error {
	paths := sc.config.SearchPaths
	if len(paths) == 0 {
		paths = catalog.DefaultSearchPaths()
	}
	d, err := dictionary.LoadLanguage(lang, paths, sc.log)
	if err != nil {
		sc.log.Warn("dictionary load failed", "lang", lang, "err", err)
		return err
	}
	sc.ReplaceDictionary(d)
	return nil
}

// SetDictionaryFromBytes builds a dictionary from data, laid out as
// described on dictionary.Build. data is copied; the caller may reuse it
// as soon as the call returns.
func (sc *SpellCorrector) SetDictionaryFromBytes(lang string, data []byte) error {
	d, err := dictionary.HunspellParser{Logger: sc.log}.Parse(lang, data)
	if err != nil {
		sc.log.Warn("dictionary build failed", "lang", lang, "err", err)
		return err
	}
	sc.ReplaceDictionary(d)
	return nil
}

// ReplaceDictionary installs d as the current dictionary. A nil d unloads
// the dictionary, returning the engine to fail-open mode.
func (sc *SpellCorrector) ReplaceDictionary(d *dictionary.Dictionary) {
	sc.dict.Store(d)
	if sc.config.ResetOverridesOnReplace {
		sc.overrides.Reset()
	}
	if d != nil {
		sc.log.Info("dictionary installed", "lang", d.Language(), "stems", d.Len())
	}
}

// Dictionary returns the current dictionary, or nil.
func (sc *SpellCorrector) Dictionary() *dictionary.Dictionary {
	return sc.dict.Load()
}

// Language returns the current dictionary's language, or "".
func (sc *SpellCorrector) Language() string {
	if d := sc.dict.Load(); d != nil {
		return d.Language()
	}
	return ""
}

// Add accepts word for this session regardless of the dictionary.
func (sc *SpellCorrector) Add(word string) { sc.overrides.Add(word) }

// Remove rejects word for this session regardless of the dictionary,
// even if it was added.
func (sc *SpellCorrector) Remove(word string) { sc.overrides.Remove(word) }

// AddedWords returns the session's added words, sorted.
func (sc *SpellCorrector) AddedWords() []string { return sc.overrides.Added() }

// RemovedWords returns the session's removed words, sorted.
func (sc *SpellCorrector) RemovedWords() []string { return sc.overrides.Removed() }

// AvailableDictionaries lists the dictionaries installed directly under path.
func (sc *SpellCorrector) AvailableDictionaries(path string) []string {
	return catalog.ListAvailable(path)
}

// IsMisspelled reports whether word should be flagged. Removed words are
// always misspelled and added words never are. Without a dictionary, or
// for words without letters, the answer is false.
func (sc *SpellCorrector) IsMisspelled(word string) bool {
	if word == "" {
		return false
	}
	if sc.overrides.IsRemoved(word) {
		return true
	}
	if sc.overrides.IsAdded(word) {
		return false
	}
	d := sc.dict.Load()
	if d == nil || !hasLetter(word) {
		return false
	}
	return !sc.known(d, word)
}

func (sc *SpellCorrector) known(d *dictionary.Dictionary, word string) bool {
	if d.Contains(word) {
		return true
	}
	if !sc.config.Capitalization {
		return false
	}
	switch caseOf(word) {
	case caseInitial:
		lw := lowerCase(word)
		return d.Contains(lw) && !d.KeepCase(lw)
	case caseUpper:
		for _, w := range []string{lowerCase(word), titleCase(word)} {
			if d.Contains(w) && !d.KeepCase(w) {
				return true
			}
		}
	}
	return false
}

// CheckSpelling returns the misspelled words of UTF-16 text as code unit
// ranges, in text order.
func (sc *SpellCorrector) CheckSpelling(text []uint16) []MisspelledRange {
	if !sc.checking() {
		return nil
	}
	var out []MisspelledRange
	for tok := range tokenizer.Scan(text) {
		if sc.IsMisspelled(string(utf16.Decode(text[tok.Start:tok.End]))) {
			out = append(out, MisspelledRange(tok))
		}
	}
	return out
}

// CheckString is CheckSpelling for UTF-8 text, with byte ranges.
func (sc *SpellCorrector) CheckString(text string) []MisspelledRange {
	if !sc.checking() {
		return nil
	}
	var out []MisspelledRange
	for tok := range tokenizer.ScanString(text) {
		if sc.IsMisspelled(text[tok.Start:tok.End]) {
			out = append(out, MisspelledRange(tok))
		}
	}
	return out
}

// checking reports whether any token could be misspelled at all.
func (sc *SpellCorrector) checking() bool {
	return sc.dict.Load() != nil || sc.overrides.HasRemoved()
}
