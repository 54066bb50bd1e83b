package builder

import (
	"context"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"

	"github.com/muhammadolammi/resumeascode/internal/logger"
)

const DefaultDebounce = 500 * time.Millisecond

// Watch calls rebuild whenever a file under dirs changes, coalescing bursts
// of events within debounce. It blocks until ctx is cancelled. Rebuild
// errors are logged and do not stop the watch.
func Watch(ctx context.Context, dirs []string, debounce time.Duration, rebuild func() error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "failed to create file watcher")
	}
	defer watcher.Close()

	for _, dir := range dirs {
		if err := addRecursive(watcher, dir); err != nil {
			return err
		}
	}

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()

	log := logger.G(ctx)
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			log.WithField("file", event.Name).WithField("operation", event.Op.String()).Debug("change detected")
			if event.Op&fsnotify.Create != 0 {
				// new profile directories need watching too
				_ = addRecursive(watcher, event.Name)
			}
			timer.Reset(debounce)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.WithError(err).Warn("file watcher error")
		case <-timer.C:
			if err := rebuild(); err != nil {
				log.WithError(err).Error("rebuild failed")
			}
		}
	}
}

func addRecursive(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return errors.Wrapf(err, "failed to walk %s", path)
		}
		if !d.IsDir() {
			return nil
		}
		return errors.Wrapf(w.Add(path), "failed to watch %s", path)
	})
}
