package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
)

// Watch calls onChange with the language identifier of every .dic or .aff
// file under dir that is written, created or renamed, until ctx is done.
// onChange runs on the watcher goroutine.
func Watch(ctx context.Context, dir string, logger *slog.Logger, onChange func(lang string)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return fmt.Errorf("watch %s: %w", dir, err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
					continue
				}
				lang, ok := langOf(event.Name)
				if !ok {
					continue
				}
				logger.Debug("dictionary file changed", "path", event.Name, "op", event.Op.String())
				onChange(lang)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("dictionary watcher error", "dir", dir, "err", err)
			}
		}
	}()
	return nil
}

func langOf(path string) (string, bool) {
	name := filepath.Base(path)
	for _, ext := range []string{DicExt, AffExt} {
		if strings.HasSuffix(name, ext) && len(name) > len(ext) {
			return strings.TrimSuffix(name, ext), true
		}
	}
	return "", false
}
