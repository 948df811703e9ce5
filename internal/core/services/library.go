package services

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/marknote-dev/marknote/internal/core/domain"
	"github.com/marknote-dev/marknote/internal/core/ports/driven"
	"github.com/marknote-dev/marknote/internal/core/ports/driving"
	"github.com/marknote-dev/marknote/internal/logger"
)

// Ensure LibraryService implements the interface.
var _ driving.LibraryService = (*LibraryService)(nil)

// LibraryService manages the notes workspace: listing, creation,
// deletion, and the recent-files history. The filesystem is the source
// of truth; the index is derived metadata and index failures never
// block file operations.
type LibraryService struct {
	store driven.NoteStore
	index driven.NoteIndex
	root  string

	changes <-chan struct{}
}

// NewLibraryService creates a library over root. The store's watcher is
// started immediately so the view refreshes on external edits; a watch
// failure degrades to manual refresh rather than failing startup.
func NewLibraryService(store driven.NoteStore, index driven.NoteIndex, root string) *LibraryService {
	changes, err := store.Watch(root)
	if err != nil {
		logger.Warn("workspace watch unavailable: %v", err)
		ch := make(chan struct{})
		close(ch)
		changes = ch
	}
	return &LibraryService{
		store:   store,
		index:   index,
		root:    root,
		changes: changes,
	}
}

// Root returns the workspace root directory.
func (s *LibraryService) Root() string {
	return s.root
}

// Changes delivers a signal when the workspace changes on disk.
func (s *LibraryService) Changes() <-chan struct{} {
	return s.changes
}

// Notes lists workspace entries matching filter, refreshing the index
// as a side effect so searches stay consistent with disk.
func (s *LibraryService) Notes(filter string) ([]domain.NoteInfo, error) {
	entries, err := s.store.List(s.root)
	if err != nil {
		return nil, fmt.Errorf("list workspace: %w", err)
	}

	s.reindex(entries)

	if filter == "" {
		return entries, nil
	}
	needle := strings.ToLower(filter)
	matched := make([]domain.NoteInfo, 0, len(entries))
	for _, e := range entries {
		if strings.Contains(strings.ToLower(e.Title), needle) {
			matched = append(matched, e)
		}
	}
	return matched, nil
}

// Titles returns all note titles in the workspace.
func (s *LibraryService) Titles() ([]string, error) {
	entries, err := s.store.List(s.root)
	if err != nil {
		return nil, fmt.Errorf("list workspace: %w", err)
	}
	titles := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir {
			titles = append(titles, e.Title)
		}
	}
	return titles, nil
}

// CreateNote creates an empty note named name under dir and returns its
// path. A missing .md extension is appended; an existing file is never
// overwritten.
func (s *LibraryService) CreateNote(dir, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", domain.ErrInvalidInput
	}
	if !strings.EqualFold(filepath.Ext(name), ".md") {
		name += ".md"
	}
	if dir == "" {
		dir = s.root
	}

	path := filepath.Join(dir, name)
	if _, err := s.store.Read(path); err == nil {
		return "", fmt.Errorf("%w: %s", domain.ErrAlreadyExists, path)
	}
	if err := s.store.Write(path, ""); err != nil {
		return "", fmt.Errorf("create note: %w", err)
	}
	logger.Info("created note %s", path)
	return path, nil
}

// CreateFolder creates a folder named name under dir.
func (s *LibraryService) CreateFolder(dir, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.ErrInvalidInput
	}
	if dir == "" {
		dir = s.root
	}
	if err := s.store.CreateFolder(filepath.Join(dir, name)); err != nil {
		return fmt.Errorf("create folder: %w", err)
	}
	return nil
}

// Delete removes a note or empty folder and drops its index record.
func (s *LibraryService) Delete(path string) error {
	if err := s.store.Delete(path); err != nil {
		return fmt.Errorf("delete %s: %w", path, err)
	}
	if err := s.index.Remove(path); err != nil {
		logger.Warn("index remove %s: %v", path, err)
	}
	logger.Info("deleted %s", path)
	return nil
}

// RecordOpened moves path to the top of the recent list.
func (s *LibraryService) RecordOpened(path string) error {
	return s.index.TouchRecent(path)
}

// Recent returns recently opened note paths, newest first. Paths whose
// files have disappeared are filtered out.
func (s *LibraryService) Recent(limit int) ([]string, error) {
	paths, err := s.index.Recent(limit)
	if err != nil {
		return nil, fmt.Errorf("recent notes: %w", err)
	}
	live := paths[:0]
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			live = append(live, p)
		}
	}
	return live, nil
}

// reindex pushes the current listing into the index. Best effort.
func (s *LibraryService) reindex(entries []domain.NoteInfo) {
	for _, e := range entries {
		if e.IsDir {
			continue
		}
		rec := driven.NoteRecord{Path: e.Path, Title: e.Title}
		if fi, err := os.Stat(e.Path); err == nil {
			rec.ModifiedAt = fi.ModTime()
		}
		if err := s.index.Upsert(rec); err != nil {
			logger.Warn("index upsert %s: %v", e.Path, err)
			return
		}
	}
}
