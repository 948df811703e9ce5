package services

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/marknote-dev/marknote/internal/core/domain"
	"github.com/marknote-dev/marknote/internal/core/ports/driven"
)

// fakeNoteStore is an in-memory NoteStore for service tests.
type fakeNoteStore struct {
	files   map[string]string
	folders map[string]bool
	writes  int
	readErr error
	writeErr error
}

func newFakeNoteStore() *fakeNoteStore {
	return &fakeNoteStore{
		files:   make(map[string]string),
		folders: make(map[string]bool),
	}
}

func (s *fakeNoteStore) Read(path string) (string, error) {
	if s.readErr != nil {
		return "", s.readErr
	}
	content, ok := s.files[path]
	if !ok {
		return "", fmt.Errorf("%w: %s", domain.ErrNotFound, path)
	}
	return content, nil
}

func (s *fakeNoteStore) Write(path, content string) error {
	if s.writeErr != nil {
		return s.writeErr
	}
	s.files[path] = content
	s.writes++
	return nil
}

func (s *fakeNoteStore) List(root string) ([]domain.NoteInfo, error) {
	var entries []domain.NoteInfo
	for dir := range s.folders {
		entries = append(entries, domain.NoteInfo{Path: dir, Title: filepath.Base(dir), IsDir: true})
	}
	for path := range s.files {
		entries = append(entries, domain.NoteInfo{Path: path, Title: domain.NoteTitle(path)})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].IsDir != entries[j].IsDir {
			return entries[i].IsDir
		}
		return strings.ToLower(entries[i].Title) < strings.ToLower(entries[j].Title)
	})
	return entries, nil
}

func (s *fakeNoteStore) CreateFolder(path string) error {
	s.folders[path] = true
	return nil
}

func (s *fakeNoteStore) Delete(path string) error {
	if _, ok := s.files[path]; ok {
		delete(s.files, path)
		return nil
	}
	if s.folders[path] {
		delete(s.folders, path)
		return nil
	}
	return fmt.Errorf("%w: %s", domain.ErrNotFound, path)
}

func (s *fakeNoteStore) Watch(root string) (<-chan struct{}, error) {
	ch := make(chan struct{})
	return ch, nil
}

func (s *fakeNoteStore) Close() error { return nil }

// fakeNoteIndex is an in-memory NoteIndex.
type fakeNoteIndex struct {
	records map[string]driven.NoteRecord
	recent  []string
}

func newFakeNoteIndex() *fakeNoteIndex {
	return &fakeNoteIndex{records: make(map[string]driven.NoteRecord)}
}

func (i *fakeNoteIndex) Upsert(record driven.NoteRecord) error {
	i.records[record.Path] = record
	return nil
}

func (i *fakeNoteIndex) List(filter string) ([]driven.NoteRecord, error) {
	var out []driven.NoteRecord
	needle := strings.ToLower(filter)
	for _, r := range i.records {
		if filter == "" || strings.Contains(strings.ToLower(r.Title), needle) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (i *fakeNoteIndex) Remove(path string) error {
	delete(i.records, path)
	return nil
}

func (i *fakeNoteIndex) TouchRecent(path string) error {
	filtered := []string{path}
	for _, p := range i.recent {
		if p != path {
			filtered = append(filtered, p)
		}
	}
	i.recent = filtered
	return nil
}

func (i *fakeNoteIndex) Recent(limit int) ([]string, error) {
	if limit > 0 && len(i.recent) > limit {
		return i.recent[:limit], nil
	}
	return i.recent, nil
}

func (i *fakeNoteIndex) Close() error { return nil }

// fakeLLM records Generate calls and plays back a scripted response.
type fakeLLM struct {
	response string
	err      error
	prompts  []string
	maxToks  []int
}

func (l *fakeLLM) Generate(_ context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	l.prompts = append(l.prompts, prompt)
	l.maxToks = append(l.maxToks, opts.MaxTokens)
	if l.err != nil {
		return "", l.err
	}
	return l.response, nil
}

func (l *fakeLLM) Ping(context.Context) error { return nil }
func (l *fakeLLM) ModelName() string          { return "fake-model" }
func (l *fakeLLM) Close() error               { return nil }

// fakePromptStore serves the embedded defaults so composed prompts are
// deterministic in tests.
type fakePromptStore struct {
	overrides map[string]string
}

func (p *fakePromptStore) Load(name string) (string, error) {
	if tmpl, ok := p.overrides[name]; ok {
		return tmpl, nil
	}
	// Minimal stand-ins with the same placeholder arity as the real
	// templates, so fill() behaves identically.
	switch name {
	case driven.PromptGeneral, driven.PromptGeneralSelection,
		driven.PromptAutoLink, driven.PromptFindRelated, driven.PromptSemanticSearch:
		return name + ": %s | %s", nil
	case driven.PromptSummarizeAdvanced:
		return name + ": %s | %s | %s | %s", nil
	default:
		return name + ": %s", nil
	}
}

// fakeConfigStore is an in-memory ConfigStore.
type fakeConfigStore struct {
	values map[string]any
	setErr error
}

func newFakeConfigStore() *fakeConfigStore {
	return &fakeConfigStore{values: make(map[string]any)}
}

func (c *fakeConfigStore) Get(key string) (any, bool) {
	v, ok := c.values[key]
	return v, ok
}

func (c *fakeConfigStore) GetString(key string) string {
	if v, ok := c.values[key].(string); ok {
		return v
	}
	return ""
}

func (c *fakeConfigStore) GetInt(key string) int {
	switch v := c.values[key].(type) {
	case int:
		return v
	case float64:
		return int(v)
	}
	return 0
}

func (c *fakeConfigStore) GetBool(key string) bool {
	if v, ok := c.values[key].(bool); ok {
		return v
	}
	return false
}

func (c *fakeConfigStore) Set(key string, value any) error {
	if c.setErr != nil {
		return c.setErr
	}
	c.values[key] = value
	return nil
}

func (c *fakeConfigStore) Load() error { return nil }
func (c *fakeConfigStore) Path() string { return "/tmp/fake/config.json" }

var errBoom = errors.New("boom")
