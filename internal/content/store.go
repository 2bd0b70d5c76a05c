package content

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/afero"
)

// Load reads the document at path from fs. An empty path yields the built-in
// document.
func Load(fs afero.Fs, path string) (*Document, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("read content file %s: %w", path, err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("content file %s: %w", path, err)
	}
	return doc, nil
}

// Store holds the current document. Readers never block writers.
type Store struct {
	fs   afero.Fs
	path string
	doc  atomic.Pointer[Document]
}

// NewStore loads the document at path from fs into a new store.
func NewStore(fs afero.Fs, path string) (*Store, error) {
	doc, err := Load(fs, path)
	if err != nil {
		return nil, err
	}
	s := &Store{fs: fs, path: path}
	s.doc.Store(doc)
	return s, nil
}

// Current returns the document in effect.
func (s *Store) Current() *Document {
	return s.doc.Load()
}

// Reload re-reads the backing file. On error the current document is kept.
func (s *Store) Reload() error {
	doc, err := Load(s.fs, s.path)
	if err != nil {
		return err
	}
	s.doc.Store(doc)
	return nil
}

// Watch reloads the document whenever its file changes on disk, until ctx is
// done. Invalid edits are logged and ignored. It returns once the watcher is
// running; it is a no-op for the built-in document.
func (s *Store) Watch(ctx context.Context) error {
	if s.path == "" {
		slog.Info("No content file configured, skipping content watcher")
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create content watcher: %w", err)
	}
	// Editors often replace the file, so watch the directory and filter.
	if err := watcher.Add(filepath.Dir(s.path)); err != nil {
		watcher.Close()
		return fmt.Errorf("watch %s: %w", s.path, err)
	}

	target := filepath.Clean(s.path)
	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				slog.Debug("Content watcher stopped")
				return
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(event.Name) != target || event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				s.handleChange()
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				slog.Error("Content watcher error", "error", err)
			}
		}
	}()

	slog.Info("Watching content file for changes", "path", s.path)
	return nil
}

func (s *Store) handleChange() {
	if err := s.Reload(); err != nil {
		slog.Warn("Ignoring invalid content change", "path", s.path, "error", err)
		return
	}
	slog.Info("Reloaded page content", "path", s.path)
}
