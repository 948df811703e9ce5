package services

import (
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/marknote-dev/marknote/internal/core/domain"
	"github.com/marknote-dev/marknote/internal/core/ports/driven"
	"github.com/marknote-dev/marknote/internal/core/ports/driving"
	"github.com/marknote-dev/marknote/internal/logger"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// DocumentService tracks the single open document and its persistence
// state. All mutations happen on the UI event loop; the service itself
// holds no locks.
type DocumentService struct {
	store driven.NoteStore
	doc   *domain.Document
	md    goldmark.Markdown
}

// NewDocumentService creates a document service with an empty session.
func NewDocumentService(store driven.NoteStore) *DocumentService {
	return &DocumentService{
		store: store,
		doc:   domain.NewDocument(),
		md:    goldmark.New(goldmark.WithExtensions(extension.GFM)),
	}
}

// Current returns the open document.
func (s *DocumentService) Current() *domain.Document {
	return s.doc
}

// Open loads the note at path, resetting the dirty state. A dirty
// session blocks the open unless discard is set.
func (s *DocumentService) Open(path string, discard bool) error {
	if s.doc.Dirty() && !discard {
		return domain.ErrUnsavedChanges
	}

	content, err := s.store.Read(path)
	if err != nil {
		// In-memory state is left unchanged on read failure.
		return fmt.Errorf("open %s: %w", path, err)
	}

	s.doc = &domain.Document{
		Path:      path,
		Content:   content,
		LastSaved: content,
	}
	logger.Debug("opened %s (%d bytes)", path, len(content))
	return nil
}

// New replaces the session with an empty unsaved document.
func (s *DocumentService) New(discard bool) error {
	if s.doc.Dirty() && !discard {
		return domain.ErrUnsavedChanges
	}
	s.doc = domain.NewDocument()
	return nil
}

// SetContent replaces the buffer. Dirtiness is derived from the
// last-saved snapshot, so setting the content back to the snapshot
// clears the dirty flag.
func (s *DocumentService) SetContent(text string) {
	s.doc.Content = text
}

// Save writes the buffer to the document's path and updates the
// last-saved snapshot. Unsaved new documents must go through SaveAs.
func (s *DocumentService) Save() error {
	if !s.doc.HasPath() {
		return domain.ErrNoDocumentPath
	}
	if err := s.store.Write(s.doc.Path, s.doc.Content); err != nil {
		// Snapshot stays untouched so the document remains dirty.
		return fmt.Errorf("save %s: %w", s.doc.Path, err)
	}
	s.doc.MarkSaved()
	logger.Debug("saved %s", s.doc.Path)
	return nil
}

// SaveAs associates path with the document and saves. A missing .md
// extension is appended. Returns the final path.
func (s *DocumentService) SaveAs(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", domain.ErrInvalidInput
	}
	if !strings.EqualFold(filepath.Ext(path), ".md") {
		path += ".md"
	}
	s.doc.Path = path
	if err := s.Save(); err != nil {
		return "", err
	}
	return path, nil
}

// Close ends the session. A dirty document must be explicitly discarded.
func (s *DocumentService) Close(discard bool) error {
	if s.doc.Dirty() && !discard {
		return domain.ErrUnsavedChanges
	}
	s.doc = domain.NewDocument()
	return nil
}

// AutoSaveTick saves on a timer tick only when the document is dirty
// and already has a path, so auto-save never creates files silently.
func (s *DocumentService) AutoSaveTick() (bool, error) {
	if !s.doc.AutoSaveEligible() {
		return false, nil
	}
	if err := s.Save(); err != nil {
		return false, err
	}
	return true, nil
}

// TableOfContents generates a Markdown ToC from the buffer's headings.
func (s *DocumentService) TableOfContents(maxDepth int) string {
	return domain.FormatToC(domain.ExtractHeadings(s.doc.Content, maxDepth))
}

// htmlShell wraps rendered content in a minimal standalone document.
const htmlShell = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
</head>
<body>
%s</body>
</html>
`

// ExportHTML renders the buffer with goldmark and writes a standalone
// HTML document to path.
func (s *DocumentService) ExportHTML(path string) error {
	var buf bytes.Buffer
	if err := s.md.Convert([]byte(s.doc.Content), &buf); err != nil {
		return fmt.Errorf("render html: %w", err)
	}
	out := fmt.Sprintf(htmlShell, s.doc.Title(), buf.String())
	if err := s.store.Write(path, out); err != nil {
		return fmt.Errorf("export %s: %w", path, err)
	}
	return nil
}
