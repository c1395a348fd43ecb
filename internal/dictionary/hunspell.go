package dictionary

import (
	"bytes"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

// Parser turns raw source bytes into a Dictionary. Implementations must
// copy whatever they keep; src belongs to the caller.
type Parser interface {
	Parse(lang string, src []byte) (*Dictionary, error)
}

// HunspellParser reads Hunspell affix and word-list files.
type HunspellParser struct {
	// Logger receives one debug record per skipped entry. Nil means slog.Default().
	Logger *slog.Logger
}

var (
	_ Parser = HunspellParser{}
	_ Parser = WordListParser{}
)

// Build parses a single buffer holding an affix section followed by a
// word-list section. The word list starts at the first line that holds
// only an integer, the Hunspell word-count header.
func Build(lang string, src []byte) (*Dictionary, error) {
	return HunspellParser{}.Parse(lang, src)
}

// BuildFiles parses separate .aff and .dic contents.
func BuildFiles(lang string, aff, dic []byte) (*Dictionary, error) {
	return HunspellParser{}.ParseFiles(lang, aff, dic, nil)
}

func (p HunspellParser) logger() *slog.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return slog.Default()
}

// Parse implements Parser for the single-buffer layout described on Build.
func (p HunspellParser) Parse(lang string, src []byte) (*Dictionary, error) {
	if len(bytes.TrimSpace(src)) == 0 {
		return nil, &LoadError{Lang: lang, Err: fmt.Errorf("%w: empty source", ErrMalformed)}
	}
	enc, err := lookupCharset(findCharset(src))
	if err != nil {
		return nil, &LoadError{Lang: lang, Err: err}
	}
	text, err := decode(enc, src)
	if err != nil {
		return nil, &LoadError{Lang: lang, Err: err}
	}
	lines := splitLines(text)
	split := -1
	for i, l := range lines {
		if _, ok := countHeader(l); ok {
			split = i
			break
		}
	}
	if split < 0 {
		return nil, &LoadError{Lang: lang, Err: malformed(len(lines), "missing word count header")}
	}
	d, err := p.parse(lang, lines[:split], lines[split:], split, nil)
	if err != nil {
		return nil, &LoadError{Lang: lang, Err: err}
	}
	return d, nil
}

// ParseFiles parses .aff and .dic contents plus an optional frequency
// list of "word count" lines. The .dic and frequency data are decoded
// with the charset the .aff declares.
func (p HunspellParser) ParseFiles(lang string, aff, dic, freq []byte) (*Dictionary, error) {
	enc, err := lookupCharset(findCharset(aff))
	if err != nil {
		return nil, &LoadError{Lang: lang, Err: err}
	}
	affText, err := decode(enc, aff)
	if err != nil {
		return nil, &LoadError{Lang: lang, Err: err}
	}
	dicText, err := decode(enc, dic)
	if err != nil {
		return nil, &LoadError{Lang: lang, Err: err}
	}
	dicLines := splitLines(dicText)
	for len(dicLines) > 0 && strings.TrimSpace(dicLines[0]) == "" {
		dicLines = dicLines[1:]
	}
	if len(dicLines) == 0 {
		return nil, &LoadError{Lang: lang, Err: malformed(1, "missing word count header")}
	}
	var freqText string
	if len(freq) > 0 {
		if freqText, err = decode(enc, freq); err != nil {
			return nil, &LoadError{Lang: lang, Err: err}
		}
	}
	d, err := p.parse(lang, splitLines(affText), dicLines, 0, func(b *builder) {
		readCounts(freqText, func(word string, n int) { b.setFrequency(word, n) }, nil)
	})
	if err != nil {
		return nil, &LoadError{Lang: lang, Err: err}
	}
	return d, nil
}

// affixState carries directive state across affix lines.
type affixState struct {
	mode    flagMode
	aliases []string
}

func (p HunspellParser) parse(lang string, aff, dic []string, dicOffset int, extra func(*builder)) (*Dictionary, error) {
	b := newBuilder(lang)
	st := &affixState{mode: flagChar}
	for i := 0; i < len(aff); i++ {
		fields := strings.Fields(aff[i])
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		switch fields[0] {
		case "FLAG":
			if len(fields) < 2 {
				return nil, malformed(i+1, "FLAG without a type")
			}
			m, ok := parseFlagMode(fields[1])
			if !ok {
				return nil, malformed(i+1, "unknown flag type %q", fields[1])
			}
			st.mode = m
		case "TRY":
			if len(fields) > 1 {
				b.try = fields[1]
			}
		case "FORBIDDENWORD", "NOSUGGEST", "NEEDAFFIX", "PSEUDOROOT", "KEEPCASE":
			if len(fields) < 2 {
				p.skipLine(b, i+1, "missing flag", fields[0])
				continue
			}
			f, err := st.mode.single(fields[1])
			if err != nil {
				p.skipLine(b, i+1, err.Error(), fields[0])
				continue
			}
			b.declare(f)
			switch fields[0] {
			case "FORBIDDENWORD":
				b.d.forbidden = f
			case "NOSUGGEST":
				b.d.noSuggest = f
			case "KEEPCASE":
				b.d.keepCase = f
			default:
				b.d.needAffix = f
			}
		case "AF":
			n, err := p.parseAliases(b, st, aff, i)
			if err != nil {
				return nil, err
			}
			i += n
		case "PFX", "SFX":
			n, err := p.parseAffixBlock(b, st, aff, i)
			if err != nil {
				return nil, err
			}
			i += n
		}
	}

	if _, ok := countHeader(dic[0]); !ok {
		return nil, malformed(dicOffset+1, "bad word count header %q", strings.TrimSpace(dic[0]))
	}
	for i, line := range dic[1:] {
		lineNo := dicOffset + i + 2
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		word, flagStr := splitFlags(fields[0])
		if word == "" {
			p.skipLine(b, lineNo, "empty stem", line)
			continue
		}
		if n, err := strconv.Atoi(flagStr); err == nil && len(st.aliases) > 0 {
			if n < 1 || n > len(st.aliases) {
				p.skipLine(b, lineNo, "unknown flag alias", line)
				continue
			}
			flagStr = st.aliases[n-1]
		}
		flags, err := st.mode.parse(flagStr)
		if err != nil {
			p.skipLine(b, lineNo, err.Error(), line)
			continue
		}
		b.addStem(word, flags)
	}
	if extra != nil {
		extra(b)
	}
	return b.finish(), nil
}

// parseAffixBlock reads a PFX/SFX header at lines[i] and the rules that
// follow it. It returns the number of lines consumed after the header.
func (p HunspellParser) parseAffixBlock(b *builder, st *affixState, lines []string, i int) (int, error) {
	header := strings.Fields(lines[i])
	kind := header[0]
	if len(header) < 4 {
		return 0, malformed(i+1, "short %s header", kind)
	}
	flag, err := st.mode.single(header[1])
	if err != nil {
		return 0, malformed(i+1, "%s header: %v", kind, err)
	}
	var cross bool
	switch header[2] {
	case "Y":
		cross = true
	case "N":
	default:
		return 0, malformed(i+1, "%s header: cross product must be Y or N, got %q", kind, header[2])
	}
	count, err := strconv.Atoi(header[3])
	if err != nil || count < 0 {
		return 0, malformed(i+1, "%s header: bad rule count %q", kind, header[3])
	}
	b.declare(flag)

	j, got := i+1, 0
	for got < count {
		if j >= len(lines) {
			return 0, malformed(i+1, "%s %s declares %d rules, found %d", kind, header[1], count, got)
		}
		fields := strings.Fields(lines[j])
		j++
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		if fields[0] != kind || len(fields) < 2 || fields[1] != header[1] {
			return 0, malformed(i+1, "%s %s declares %d rules, found %d", kind, header[1], count, got)
		}
		got++
		rule, err := parseRule(fields, flag, kind == "PFX", cross)
		if err != nil {
			p.skipLine(b, j, err.Error(), lines[j-1])
			continue
		}
		b.addRule(rule)
	}
	return j - i - 1, nil
}

func parseRule(fields []string, flag Flag, prefix, cross bool) (*AffixRule, error) {
	if len(fields) < 4 {
		return nil, fmt.Errorf("affix rule needs strip and add fields")
	}
	strip := fields[2]
	if strip == "0" {
		strip = ""
	}
	// Continuation classes after '/' are accepted but not applied.
	add, _, _ := strings.Cut(fields[3], "/")
	if add == "0" {
		add = ""
	}
	condText := "."
	if len(fields) > 4 {
		condText = fields[4]
	}
	cond, err := parseCondition(condText)
	if err != nil {
		return nil, err
	}
	r := &AffixRule{Flag: flag, Prefix: prefix, Cross: cross, Strip: strip, Add: add, Condition: cond}
	if !r.fits() {
		return nil, fmt.Errorf("strip %q contradicts condition %q", strip, condText)
	}
	return r, nil
}

// parseAliases reads an AF block: "AF n" followed by n "AF flags" lines.
func (p HunspellParser) parseAliases(b *builder, st *affixState, lines []string, i int) (int, error) {
	header := strings.Fields(lines[i])
	if len(header) < 2 {
		return 0, malformed(i+1, "AF header without count")
	}
	count, err := strconv.Atoi(header[1])
	if err != nil || count < 0 {
		return 0, malformed(i+1, "AF header: bad count %q", header[1])
	}
	j := i + 1
	for len(st.aliases) < count {
		if j >= len(lines) {
			return 0, malformed(i+1, "AF declares %d aliases, found %d", count, len(st.aliases))
		}
		fields := strings.Fields(lines[j])
		j++
		if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
			continue
		}
		if fields[0] != "AF" {
			return 0, malformed(i+1, "AF declares %d aliases, found %d", count, len(st.aliases))
		}
		if len(fields) < 2 {
			p.skipLine(b, j, "empty flag alias", lines[j-1])
			st.aliases = append(st.aliases, "")
			continue
		}
		st.aliases = append(st.aliases, fields[1])
	}
	return j - i - 1, nil
}

func (p HunspellParser) skipLine(b *builder, line int, reason, text string) {
	b.skip()
	p.logger().Debug("skipping dictionary entry", "lang", b.d.lang, "line", line, "reason", reason, "text", text)
}

// countHeader reports whether line holds only a non-negative integer.
func countHeader(line string) (int, bool) {
	s := strings.TrimSpace(line)
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	return n, err == nil
}

func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
