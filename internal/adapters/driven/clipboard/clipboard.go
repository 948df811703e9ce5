// Package clipboard provides a system clipboard adapter.
package clipboard

import (
	"fmt"

	"github.com/atotto/clipboard"

	"github.com/marknote-dev/marknote/internal/core/ports/driven"
)

// Ensure Clipboard implements the interface.
var _ driven.Clipboard = (*Clipboard)(nil)

// Clipboard writes to the system clipboard via the platform's native
// mechanism (xclip/xsel, pbcopy, or the Windows API).
type Clipboard struct{}

// New creates a system clipboard adapter.
func New() *Clipboard {
	return &Clipboard{}
}

// WriteAll replaces the clipboard contents with text.
func (c *Clipboard) WriteAll(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("write clipboard: %w", err)
	}
	return nil
}
