package driven

// Clipboard is the system clipboard boundary, used by the "copy"
// follow-up control.
type Clipboard interface {
	// WriteAll replaces the clipboard content with text.
	WriteAll(text string) error
}
