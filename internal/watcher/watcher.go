// Package watcher rebuilds shader modules as their sources change on disk.
package watcher

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// Handler reacts to source changes. *pipeline.Pipeline satisfies it.
type Handler interface {
	Supported(path string) bool
	TranspileFile(path string) ([]string, error)
	Remove(path string) error
}

// Watcher watches a directory tree and forwards supported file events to a
// Handler one at a time.
type Watcher struct {
	fs      *fsnotify.Watcher
	skip    map[string]struct{}
	handler Handler
}

// New registers root and every directory below it, except those in skip.
func New(root string, skip []string, handler Handler) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	w := &Watcher{
		fs:      fw,
		skip:    make(map[string]struct{}, len(skip)),
		handler: handler,
	}
	for _, dir := range skip {
		w.skip[filepath.Clean(dir)] = struct{}{}
	}

	if _, err := w.addTree(root); err != nil {
		_ = fw.Close()
		return nil, err
	}

	return w, nil
}

// Run handles events until ctx is cancelled or the watcher is closed.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fs.Close()

	log.Info().Int("dirs", len(w.fs.WatchList())).Msg("Watching for changes")

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.fs.Events:
			if !ok {
				return nil
			}
			w.handle(event)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return nil
			}
			log.Error().Err(err).Msg("watch error")
		}
	}
}

func (w *Watcher) handle(event fsnotify.Event) {
	path := filepath.Clean(event.Name)

	log.Debug().Str("path", path).Str("op", event.Op.String()).Msg("event")

	switch {
	case event.Has(fsnotify.Remove), event.Has(fsnotify.Rename):
		if w.handler.Supported(path) {
			_ = w.handler.Remove(path)
		}
	case event.Has(fsnotify.Create):
		info, err := os.Stat(path)
		if err != nil {
			return
		}
		if info.IsDir() {
			w.createdDir(path)
			return
		}
		w.changed(path)
	case event.Has(fsnotify.Write):
		w.changed(path)
	}
}

// createdDir starts watching a new directory and transpiles the sources
// that were written into it before the watch was in place.
func (w *Watcher) createdDir(dir string) {
	files, err := w.addTree(dir)
	if err != nil {
		log.Error().Err(err).Str("dir", dir).Msg("failed to watch directory")
		return
	}
	for _, path := range files {
		w.changed(path)
	}
}

func (w *Watcher) changed(path string) {
	if !w.handler.Supported(path) {
		return
	}
	_, _ = w.handler.TranspileFile(path)
}

// addTree adds dir and its subdirectories to the watch list and returns the
// regular files found along the way.
func (w *Watcher) addTree(dir string) ([]string, error) {
	var files []string

	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) && path != dir {
				return nil
			}
			return err
		}
		if !d.IsDir() {
			if regularFile(path, d) {
				files = append(files, path)
			}
			return nil
		}
		if _, ok := w.skip[filepath.Clean(path)]; ok {
			return filepath.SkipDir
		}
		if err := w.fs.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})

	return files, err
}

// regularFile reports whether d ends at a regular file, following symlinks.
func regularFile(path string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
