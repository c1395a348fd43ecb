package dictionary

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/edsrzf/mmap-go"

	"spellchecker/internal/catalog"
)

// LoadLanguage resolves lang to a .aff/.dic pair under searchPaths and
// loads it. It fails with ErrNotFound when no directory holds both files.
func LoadLanguage(lang string, searchPaths []string, logger *slog.Logger) (*Dictionary, error) {
	aff, dic, ok := catalog.Resolve(lang, searchPaths)
	if !ok {
		return nil, &LoadError{Lang: lang, Err: fmt.Errorf("%w in %s", ErrNotFound, strings.Join(searchPaths, string(os.PathListSeparator)))}
	}
	return Load(lang, aff, dic, logger)
}

// Load maps affPath and dicPath into memory and parses them. A file named
// like dicPath with a .freq extension, when present, supplies word
// frequencies. The mappings are released before Load returns.
func Load(lang, affPath, dicPath string, logger *slog.Logger) (*Dictionary, error) {
	aff, unmapAff, err := mapFile(affPath)
	if err != nil {
		return nil, &LoadError{Lang: lang, Path: affPath, Err: err}
	}
	defer unmapAff()

	dic, unmapDic, err := mapFile(dicPath)
	if err != nil {
		return nil, &LoadError{Lang: lang, Path: dicPath, Err: err}
	}
	defer unmapDic()

	freqPath := strings.TrimSuffix(dicPath, ".dic") + ".freq"
	freq, unmapFreq, err := mapFile(freqPath)
	switch {
	case err == nil:
		defer unmapFreq()
	case errors.Is(err, ErrNotFound):
		freq = nil
	default:
		return nil, &LoadError{Lang: lang, Path: freqPath, Err: err}
	}

	d, err := HunspellParser{Logger: logger}.ParseFiles(lang, aff, dic, freq)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Path = dicPath
		}
		return nil, err
	}
	if logger != nil {
		logger.Info("dictionary loaded", "lang", lang, "stems", d.Len(), "skipped", d.Skipped(), "frequencies", d.HasFrequencies())
	}
	return d, nil
}

// mapFile maps path read-only. Empty files are returned as nil slices
// because zero-length mappings are rejected by the OS.
func mapFile(path string) (mmap.MMap, func(), error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, fmt.Errorf("%w: %v", ErrNotFound, err)
		}
		return nil, nil, err
	}
	st, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	if st.Size() == 0 {
		f.Close()
		return nil, func() {}, nil
	}
	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, nil, fmt.Errorf("mmap %s: %w", path, err)
	}
	return m, func() {
		m.Unmap()
		f.Close()
	}, nil
}
