// Package tokenizer finds the word-like runs in a text buffer.
//
// A token is a maximal run of letters and digits. An apostrophe or hyphen
// joins two runs when a letter sits on both sides of it, so "don't" and
// "stop-go" are single tokens; joiners at either end of a run are never
// part of the token. Everything else (whitespace, punctuation, symbols)
// separates tokens.
//
// Offsets are half-open and expressed in the unit of the input: UTF-16
// code units for Scan and bytes for ScanString, so callers can slice
// their original buffer directly.
package tokenizer

import (
	"fmt"
	"iter"
	"unicode"
	"unicode/utf16"
	"unicode/utf8"
)

// Token is the half-open range [Start, End) of one word in the input.
type Token struct {
	Start int
	End   int
}

// Len returns the token length in input units.
func (t Token) Len() int { return t.End - t.Start }

// String returns a debug representation, e.g. [0:5].
func (t Token) String() string {
	return fmt.Sprintf("[%d:%d]", t.Start, t.End)
}

// Scan yields the tokens of UTF-16 text with code unit offsets. Each
// call starts a fresh pass over text.
func Scan(text []uint16) iter.Seq[Token] {
	return scan(len(text), func(i int) (rune, int) {
		r := rune(text[i])
		if utf16.IsSurrogate(r) && i+1 < len(text) {
			if dr := utf16.DecodeRune(r, rune(text[i+1])); dr != utf8.RuneError {
				return dr, 2
			}
		}
		return r, 1
	})
}

// ScanString yields the tokens of UTF-8 text with byte offsets.
func ScanString(text string) iter.Seq[Token] {
	return scan(len(text), func(i int) (rune, int) {
		return utf8.DecodeRuneInString(text[i:])
	})
}

// Collect gathers a token sequence into a slice.
func Collect(seq iter.Seq[Token]) []Token {
	var out []Token
	for t := range seq {
		out = append(out, t)
	}
	return out
}

// scan runs the segmentation state machine over n units, reading one
// rune at a time through decode.
func scan(n int, decode func(i int) (r rune, size int)) iter.Seq[Token] {
	return func(yield func(Token) bool) {
		i := 0
		for i < n {
			r, size := decode(i)
			if !isWordRune(r) {
				i += size
				continue
			}
			start := i
			prev := r
			i += size
			for i < n {
				r, size = decode(i)
				if isWordRune(r) {
					prev = r
					i += size
					continue
				}
				if unicode.In(r, unicode.Mn, unicode.Mc) {
					i += size
					continue
				}
				if isJoiner(r) && unicode.IsLetter(prev) && i+size < n {
					next, nsize := decode(i + size)
					if unicode.IsLetter(next) {
						prev = next
						i += size + nsize
						continue
					}
				}
				break
			}
			if !yield(Token{Start: start, End: i}) {
				return
			}
		}
	}
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isJoiner(r rune) bool {
	switch r {
	case '\'', '’', '-', '‐':
		return true
	}
	return false
}
