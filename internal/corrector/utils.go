package corrector

import (
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// editDistance is the optimal string alignment distance between a and b:
// insertions, deletions, substitutions and adjacent transpositions all
// cost 1, and no substring is edited twice.
func editDistance(a, b []rune) int {
	la, lb := len(a), len(b)
	if la == 0 {
		return lb
	}
	if lb == 0 {
		return la
	}
	prev2 := make([]int, lb+1)
	prev := make([]int, lb+1)
	curr := make([]int, lb+1)
	for j := 0; j <= lb; j++ {
		prev[j] = j
	}
	for i := 1; i <= la; i++ {
		curr[0] = i
		for j := 1; j <= lb; j++ {
			cost := 0
			if a[i-1] != b[j-1] {
				cost = 1
			}
			x := min(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
			if i > 1 && j > 1 && a[i-1] == b[j-2] && a[i-2] == b[j-1] {
				x = min(x, prev2[j-2]+1)
			}
			curr[j] = x
		}
		prev2, prev, curr = prev, curr, prev2
	}
	return prev[lb]
}

type wordCase int

const (
	caseOther   wordCase = iota // lowercase, mixed, or no letters
	caseInitial                 // first letter upper, rest lower
	caseUpper                   // every letter upper
)

func caseOf(word string) wordCase {
	upper, lower, first := 0, 0, true
	initial := false
	for _, r := range word {
		switch {
		case unicode.IsUpper(r) || unicode.IsTitle(r):
			upper++
			if first {
				initial = true
			}
		case unicode.IsLower(r):
			lower++
		default:
			continue
		}
		first = false
	}
	switch {
	case upper > 1 && lower == 0:
		return caseUpper
	case initial && upper == 1:
		return caseInitial
	}
	return caseOther
}

func hasLetter(word string) bool {
	for _, r := range word {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

// Casers keep state and are not safe for concurrent use, so each call
// builds its own.

func lowerCase(s string) string { return cases.Lower(language.Und).String(s) }

func upperCase(s string) string { return cases.Upper(language.Und).String(s) }

func titleCase(s string) string {
	return cases.Title(language.Und, cases.NoLower).String(lowerCase(s))
}
