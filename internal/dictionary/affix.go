package dictionary

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Flag identifies an affix class or a special stem attribute.
// The zero Flag means "unset" and never matches.
type Flag uint32

// flagMode is the FLAG directive of an affix file.
type flagMode int

const (
	flagChar flagMode = iota // one character per flag (default)
	flagLong                 // two characters per flag
	flagNum                  // comma separated decimal numbers
	flagUTF8                 // one UTF-8 rune per flag
)

func parseFlagMode(s string) (flagMode, bool) {
	switch strings.ToLower(s) {
	case "char":
		return flagChar, true
	case "long":
		return flagLong, true
	case "num":
		return flagNum, true
	case "utf-8", "utf8":
		return flagUTF8, true
	}
	return flagChar, false
}

// parse splits a flag string into flags. Source bytes are already decoded
// to UTF-8, so char and UTF-8 modes both work on runes.
func (m flagMode) parse(s string) ([]Flag, error) {
	if s == "" {
		return nil, nil
	}
	switch m {
	case flagLong:
		rs := []rune(s)
		if len(rs)%2 != 0 {
			return nil, fmt.Errorf("odd length long flag string %q", s)
		}
		flags := make([]Flag, 0, len(rs)/2)
		for i := 0; i < len(rs); i += 2 {
			flags = append(flags, Flag(rs[i])<<16|Flag(rs[i+1]))
		}
		return flags, nil
	case flagNum:
		parts := strings.Split(s, ",")
		flags := make([]Flag, 0, len(parts))
		for _, p := range parts {
			n, err := strconv.ParseUint(strings.TrimSpace(p), 10, 32)
			if err != nil || n == 0 {
				return nil, fmt.Errorf("bad numeric flag %q", p)
			}
			flags = append(flags, Flag(n))
		}
		return flags, nil
	default:
		flags := make([]Flag, 0, utf8.RuneCountInString(s))
		for _, r := range s {
			flags = append(flags, Flag(r))
		}
		return flags, nil
	}
}

// single parses a flag string that must hold exactly one flag.
func (m flagMode) single(s string) (Flag, error) {
	flags, err := m.parse(s)
	if err != nil {
		return 0, err
	}
	if len(flags) != 1 {
		return 0, fmt.Errorf("expected a single flag, got %q", s)
	}
	return flags[0], nil
}

type flagSet []Flag

func (fs flagSet) has(f Flag) bool {
	if f == 0 {
		return false
	}
	for _, x := range fs {
		if x == f {
			return true
		}
	}
	return false
}

// charClass is one position of an affix condition.
type charClass struct {
	any   bool
	neg   bool
	runes string
}

func (c charClass) match(r rune) bool {
	if c.any {
		return true
	}
	return strings.ContainsRune(c.runes, r) != c.neg
}

// Condition is a sequence of character classes matched against the end
// of a stem (suffix rules) or its start (prefix rules).
type Condition []charClass

// parseCondition reads the Hunspell condition syntax: '.', literal
// characters, [abc] and [^abc].
func parseCondition(s string) (Condition, error) {
	if s == "" || s == "." {
		return nil, nil
	}
	var cond Condition
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		switch r {
		case '.':
			cond = append(cond, charClass{any: true})
			i += size
		case '[':
			end := strings.IndexByte(s[i:], ']')
			if end < 0 {
				return nil, fmt.Errorf("unterminated character class in condition %q", s)
			}
			body := s[i+1 : i+end]
			cc := charClass{}
			if strings.HasPrefix(body, "^") {
				cc.neg = true
				body = body[1:]
			}
			if body == "" {
				return nil, fmt.Errorf("empty character class in condition %q", s)
			}
			cc.runes = body
			cond = append(cond, cc)
			i += end + 1
		case ']':
			return nil, fmt.Errorf("unbalanced ']' in condition %q", s)
		default:
			cond = append(cond, charClass{runes: string(r)})
			i += size
		}
	}
	return cond, nil
}

func (c Condition) matchSuffix(s string) bool {
	j := len(s)
	for i := len(c) - 1; i >= 0; i-- {
		if j == 0 {
			return false
		}
		r, size := utf8.DecodeLastRuneInString(s[:j])
		if !c[i].match(r) {
			return false
		}
		j -= size
	}
	return true
}

func (c Condition) matchPrefix(s string) bool {
	j := 0
	for i := 0; i < len(c); i++ {
		if j == len(s) {
			return false
		}
		r, size := utf8.DecodeRuneInString(s[j:])
		if !c[i].match(r) {
			return false
		}
		j += size
	}
	return true
}

// AffixRule turns a stem into a surface word: Strip is removed from the
// stem's start (prefix) or end (suffix) and Add is attached in its place.
type AffixRule struct {
	Flag      Flag
	Prefix    bool
	Cross     bool
	Strip     string
	Add       string
	Condition Condition
}

// matches reports whether the rule may be applied to stem.
func (r *AffixRule) matches(stem string) bool {
	if r.Prefix {
		return strings.HasPrefix(stem, r.Strip) && r.Condition.matchPrefix(stem)
	}
	return strings.HasSuffix(stem, r.Strip) && r.Condition.matchSuffix(stem)
}

// Apply returns the surface word derived from stem, or false when the
// rule's condition rejects the stem.
func (r *AffixRule) Apply(stem string) (string, bool) {
	if !r.matches(stem) {
		return "", false
	}
	if r.Prefix {
		return r.Add + stem[len(r.Strip):], true
	}
	return stem[:len(stem)-len(r.Strip)] + r.Add, true
}

// fits checks that the strip text agrees with the condition where the
// two overlap. Rules failing this could never apply to any stem.
func (r *AffixRule) fits() bool {
	if r.Strip == "" {
		return true
	}
	n := utf8.RuneCountInString(r.Strip)
	if n > len(r.Condition) {
		n = len(r.Condition)
	}
	if r.Prefix {
		return r.Condition[:n].matchPrefix(r.Strip)
	}
	return r.Condition[len(r.Condition)-n:].matchSuffix(r.Strip)
}
