// Package watch triggers a config refresh when the local overrides file
// changes on disk.
package watch

import (
	"context"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/autocore-io/autocore/pkg/log"
)

// Watcher observes one file and invokes onChange for every write to it.
type Watcher struct {
	path     string
	onChange func()
	logger   log.Logger
}

// New creates a Watcher for path. onChange runs on the watcher goroutine.
func New(path string, onChange func()) *Watcher {
	return &Watcher{
		path:     path,
		onChange: onChange,
		logger:   log.WithName("watch"),
	}
}

// Run watches until ctx is canceled. The parent directory is watched rather
// than the file itself so editors that replace the file atomically still
// produce events.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()

	dir := filepath.Dir(w.path)
	if err := fw.Add(dir); err != nil {
		return err
	}
	w.logger.Info("Watching overrides file", "path", w.path)

	target := filepath.Clean(w.path)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if event.Op.Has(fsnotify.Write) || event.Op.Has(fsnotify.Create) {
				w.logger.Info("Overrides file changed, refreshing", "op", event.Op.String())
				w.onChange()
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("Watcher error", "err", err.Error())
		}
	}
}
