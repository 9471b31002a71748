package bindings

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 250 * time.Millisecond

// Watch calls onChange after the document is written, created, renamed or
// removed. Bursts of events within the debounce window produce a single call,
// and a burst that leaves the file as this store last saved it produces none.
// Watch blocks until ctx is cancelled.
func (s *FileStore) Watch(ctx context.Context, onChange func()) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create shortcuts directory: %w", err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer w.Close()

	// Editors replace files by rename, so the directory is watched rather
	// than the file itself.
	if err := w.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	target := filepath.Clean(s.path)
	fire := func() {
		if s.unchangedSinceSave() {
			s.log.Debug().Str("path", s.path).Msg("shortcuts file matches last save, ignoring")
			return
		}
		onChange()
	}
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) && !ev.Has(fsnotify.Remove) {
				continue
			}
			s.log.Debug().Str("path", ev.Name).Str("op", ev.Op.String()).Msg("shortcuts file changed")
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(watchDebounce, fire)
		case werr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			s.log.Warn().Err(werr).Msg("shortcuts watcher error")
		}
	}
}
