package domain

import (
	"path/filepath"
	"strings"
)

// UntitledName is the display title for documents that have never been saved.
const UntitledName = "Untitled"

// Document is the single open note: its file path, in-memory buffer, and
// the snapshot of the last persisted content. A document with an empty
// Path has never been saved to disk.
type Document struct {
	// Path is the absolute file path, or "" for a new unsaved document.
	Path string

	// Content is the current in-memory text buffer.
	Content string

	// LastSaved is the content snapshot at the last successful load or
	// save. Dirtiness is derived by comparing Content against it.
	LastSaved string
}

// NewDocument returns an empty unsaved document.
func NewDocument() *Document {
	return &Document{}
}

// Dirty reports whether the buffer diverges from the last-saved snapshot.
func (d *Document) Dirty() bool {
	return d.Content != d.LastSaved
}

// HasPath reports whether the document is associated with a file on disk.
func (d *Document) HasPath() bool {
	return d.Path != ""
}

// Title returns the display title: the file name without its extension,
// or UntitledName for unsaved documents.
func (d *Document) Title() string {
	if d.Path == "" {
		return UntitledName
	}
	base := filepath.Base(d.Path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// MarkSaved records the current content as persisted.
func (d *Document) MarkSaved() {
	d.LastSaved = d.Content
}

// AutoSaveEligible reports whether an auto-save tick may persist this
// document. New unsaved documents are excluded so auto-save never creates
// files silently.
func (d *Document) AutoSaveEligible() bool {
	return d.Dirty() && d.HasPath()
}

// AppendResult appends generated text to the end of the buffer, separated
// from existing content by a blank line.
func (d *Document) AppendResult(text string) {
	if d.Content == "" {
		d.Content = text
		return
	}
	switch {
	case strings.HasSuffix(d.Content, "\n\n"):
	case strings.HasSuffix(d.Content, "\n"):
		d.Content += "\n"
	default:
		d.Content += "\n\n"
	}
	d.Content += text
}

// NoteInfo describes a note in the library listing.
type NoteInfo struct {
	// Path is the absolute file path.
	Path string

	// Title is the file name without the .md extension.
	Title string

	// IsDir marks folder entries in the library tree.
	IsDir bool
}

// NoteTitle derives a note title from a file path (name without extension).
func NoteTitle(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
