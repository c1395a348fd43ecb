// Package catalog discovers Hunspell dictionaries installed on disk.
package catalog

import (
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"golang.org/x/text/language"
)

// DicExt and AffExt are the file extensions of a dictionary pair.
const (
	DicExt = ".dic"
	AffExt = ".aff"
)

// ListAvailable returns the language identifiers of the .dic files found
// directly under path, sorted. A missing or unreadable path yields an
// empty list.
func ListAvailable(path string) []string {
	entries, err := os.ReadDir(path)
	if err != nil {
		return []string{}
	}
	langs := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, DicExt) {
			continue
		}
		lang := strings.TrimSuffix(name, DicExt)
		if lang == "" {
			continue
		}
		langs = append(langs, lang)
	}
	slices.Sort(langs)
	return langs
}

// Resolve finds the first search path holding both <id>.aff and <id>.dic
// for one of the spellings of lang.
func Resolve(lang string, searchPaths []string) (aff, dic string, ok bool) {
	ids := Candidates(lang)
	for _, dir := range searchPaths {
		for _, id := range ids {
			aff = filepath.Join(dir, id+AffExt)
			dic = filepath.Join(dir, id+DicExt)
			if isFile(aff) && isFile(dic) {
				return aff, dic, true
			}
		}
	}
	return "", "", false
}

// Candidates lists the file base names tried for lang: the identifier as
// given, then its underscore and hyphen forms, then the canonical BCP 47
// form with an underscore separator ("en-us" -> "en_US").
func Candidates(lang string) []string {
	lang = strings.TrimSpace(lang)
	if lang == "" {
		return nil
	}
	var out []string
	add := func(s string) {
		if s != "" && !slices.Contains(out, s) {
			out = append(out, s)
		}
	}
	add(lang)
	add(strings.ReplaceAll(lang, "-", "_"))
	add(strings.ReplaceAll(lang, "_", "-"))
	if tag, err := language.Parse(strings.ReplaceAll(lang, "_", "-")); err == nil {
		add(strings.ReplaceAll(tag.String(), "-", "_"))
		if base, conf := tag.Base(); conf != language.No {
			add(base.String())
		}
	}
	return out
}

// DefaultSearchPaths returns the usual Hunspell install locations for the
// current platform, followed by the working directory.
func DefaultSearchPaths() []string {
	var paths []string
	if env := os.Getenv("DICPATH"); env != "" {
		paths = append(paths, filepath.SplitList(env)...)
	}
	switch runtime.GOOS {
	case "darwin":
		if home, err := os.UserHomeDir(); err == nil {
			paths = append(paths, filepath.Join(home, "Library", "Spelling"))
		}
		paths = append(paths, "/Library/Spelling")
	case "linux", "freebsd", "netbsd", "openbsd":
		paths = append(paths, "/usr/share/hunspell", "/usr/share/myspell", "/usr/share/myspell/dicts", "/usr/local/share/hunspell")
	}
	return append(paths, ".")
}

func isFile(path string) bool {
	st, err := os.Stat(path)
	return err == nil && !st.IsDir()
}
