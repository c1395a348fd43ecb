package dictionary

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/ianaindex"
)

// aliases maps Hunspell SET names that IANA does not know verbatim.
var aliases = map[string]encoding.Encoding{
	"microsoft-cp1251": charmap.Windows1251,
	"microsoft-cp1252": charmap.Windows1252,
}

// findCharset scans an affix source for its SET directive, stopping at
// the word-count header. The directive line is ASCII in every supported
// charset.
func findCharset(aff []byte) string {
	sc := bufio.NewScanner(bytes.NewReader(aff))
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for sc.Scan() {
		if _, ok := countHeader(sc.Text()); ok {
			break
		}
		fields := strings.Fields(sc.Text())
		if len(fields) >= 2 && fields[0] == "SET" {
			return fields[1]
		}
	}
	return ""
}

// lookupCharset returns the decoder for a SET name; nil means UTF-8.
func lookupCharset(name string) (encoding.Encoding, error) {
	norm := strings.ToLower(strings.TrimSpace(name))
	switch norm {
	case "", "utf-8", "utf8":
		return nil, nil
	}
	if enc, ok := aliases[norm]; ok {
		return enc, nil
	}
	// Hunspell writes ISO8859-1 where IANA expects ISO-8859-1.
	if strings.HasPrefix(norm, "iso8859") {
		norm = "iso-8859" + strings.TrimPrefix(norm, "iso8859")
	}
	enc, err := ianaindex.IANA.Encoding(norm)
	if err != nil || enc == nil {
		return nil, fmt.Errorf("%w: unknown charset %q", ErrEncoding, name)
	}
	return enc, nil
}

// decode converts src to UTF-8 text using enc, copying the bytes so the
// result never aliases caller memory.
func decode(enc encoding.Encoding, src []byte) (string, error) {
	src = bytes.TrimPrefix(src, []byte("\xef\xbb\xbf"))
	if enc == nil {
		if !utf8.Valid(src) {
			return "", fmt.Errorf("%w: invalid UTF-8", ErrEncoding)
		}
		return string(src), nil
	}
	out, err := enc.NewDecoder().Bytes(src)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrEncoding, err)
	}
	return string(out), nil
}
