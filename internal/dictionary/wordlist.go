package dictionary

import (
	"bytes"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

// WordListParser reads a plain vocabulary: one word per line, optionally
// followed by a corpus count that becomes the word's frequency. Words
// carry no affix flags.
type WordListParser struct {
	Logger *slog.Logger
}

// Parse implements Parser.
func (p WordListParser) Parse(lang string, src []byte) (*Dictionary, error) {
	if len(bytes.TrimSpace(src)) == 0 {
		return nil, &LoadError{Lang: lang, Err: fmt.Errorf("%w: empty source", ErrMalformed)}
	}
	text, err := decode(nil, src)
	if err != nil {
		return nil, &LoadError{Lang: lang, Err: err}
	}
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}
	b := newBuilder(lang)
	readCounts(text, func(word string, n int) {
		b.addStem(word, nil)
		b.setFrequency(word, n)
	}, func(line int, text string) {
		b.skip()
		logger.Debug("skipping word list entry", "lang", lang, "line", line, "text", text)
	})
	return b.finish(), nil
}

// readCounts calls fn for every "word [count]" line of text. A line with
// an unparsable count is reported to bad and skipped.
func readCounts(text string, fn func(word string, n int), bad func(line int, text string)) {
	for i, line := range splitLines(text) {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		if len(fields) == 1 {
			fn(fields[0], 0)
			continue
		}
		n, ok := parseCount(fields[1])
		if !ok {
			if bad != nil {
				bad(i+1, line)
			}
			continue
		}
		fn(fields[0], n)
	}
}

func parseCount(s string) (int, bool) {
	if n, err := strconv.Atoi(s); err == nil {
		return n, n >= 0
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f >= 0 {
		return int(f), true
	}
	return 0, false
}
