// Package filesystem provides a NoteStore over a directory of Markdown
// files. Notes are plain .md files; folders are plain directories.
package filesystem

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"

	"github.com/marknote-dev/marknote/internal/core/domain"
	"github.com/marknote-dev/marknote/internal/core/ports/driven"
	"github.com/marknote-dev/marknote/internal/logger"
)

// Ensure NoteStore implements the interface.
var _ driven.NoteStore = (*NoteStore)(nil)

// noteExt is the only file extension treated as a note.
const noteExt = ".md"

// NoteStore reads and writes notes on the local filesystem and watches
// the workspace for external changes.
type NoteStore struct {
	mu      sync.Mutex
	watcher *fsnotify.Watcher
	changes chan struct{}
	done    chan struct{}
}

// NewNoteStore creates a filesystem note store.
func NewNoteStore() *NoteStore {
	return &NoteStore{}
}

// Read returns the content of the note at path.
func (s *NoteStore) Read(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", domain.ErrNotFound, path)
		}
		return "", err
	}
	return string(data), nil
}

// Write persists content to path, creating parent directories.
func (s *NoteStore) Write(path, content string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("create parent directory: %w", err)
	}
	return os.WriteFile(path, []byte(content), 0600)
}

// List returns all entries under root, recursively: folders first, then
// notes, each group sorted case-insensitively by path.
func (s *NoteStore) List(root string) ([]domain.NoteInfo, error) {
	var folders, notes []domain.NoteInfo

	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == root {
			return nil
		}
		name := d.Name()
		// Skip hidden files and directories.
		if strings.HasPrefix(name, ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			folders = append(folders, domain.NoteInfo{Path: path, Title: name, IsDir: true})
			return nil
		}
		if strings.EqualFold(filepath.Ext(name), noteExt) {
			notes = append(notes, domain.NoteInfo{Path: path, Title: domain.NoteTitle(path)})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}

	byPath := func(entries []domain.NoteInfo) func(i, j int) bool {
		return func(i, j int) bool {
			return strings.ToLower(entries[i].Path) < strings.ToLower(entries[j].Path)
		}
	}
	sort.Slice(folders, byPath(folders))
	sort.Slice(notes, byPath(notes))

	return append(folders, notes...), nil
}

// CreateFolder creates a directory.
func (s *NoteStore) CreateFolder(path string) error {
	if err := os.MkdirAll(path, 0750); err != nil {
		return fmt.Errorf("create folder: %w", err)
	}
	return nil
}

// Delete removes a note file or an empty folder. Non-empty folders are
// refused so a stray keypress cannot wipe a subtree.
func (s *NoteStore) Delete(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", domain.ErrNotFound, path)
		}
		return err
	}
	if info.IsDir() {
		return os.Remove(path) // fails on non-empty directories
	}
	return os.Remove(path)
}

// Watch starts watching root and its subdirectories, delivering a
// coalesced signal on any create/write/remove/rename event. The channel
// closes when the store is closed.
func (s *NoteStore) Watch(root string) (<-chan struct{}, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.watcher != nil {
		return s.changes, nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	// Watch the root and every existing subdirectory; fsnotify does not
	// recurse on its own.
	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() && !strings.HasPrefix(d.Name(), ".") {
			return watcher.Add(path)
		}
		return nil
	})
	if err != nil {
		watcher.Close()
		return nil, fmt.Errorf("watch %s: %w", root, err)
	}

	s.watcher = watcher
	s.changes = make(chan struct{}, 1)
	s.done = make(chan struct{})

	go s.watchLoop()

	return s.changes, nil
}

// watchLoop forwards filesystem events as coalesced change signals and
// adds newly created directories to the watch set.
func (s *NoteStore) watchLoop() {
	defer close(s.changes)

	for {
		select {
		case <-s.done:
			return

		case event, ok := <-s.watcher.Events:
			if !ok {
				return
			}
			if event.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := s.watcher.Add(event.Name); err != nil {
						logger.Warn("watch new directory %s: %v", event.Name, err)
					}
				}
			}
			s.notify()

		case err, ok := <-s.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("workspace watcher: %v", err)
		}
	}
}

// notify delivers a non-blocking change signal. A pending signal is
// enough; consumers re-list the workspace on receipt.
func (s *NoteStore) notify() {
	select {
	case s.changes <- struct{}{}:
	default:
	}
}

// Close stops the watcher and releases resources.
func (s *NoteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.watcher == nil {
		return nil
	}
	close(s.done)
	err := s.watcher.Close()
	s.watcher = nil
	return err
}
