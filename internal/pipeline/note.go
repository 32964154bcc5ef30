package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

// ErrNoteConversion indicates the markdown note could not be converted.
var ErrNoteConversion = errors.New("note conversion failed")

// NoteRenderer converts a short markdown note into an HTML fragment.
type NoteRenderer struct {
	md goldmark.Markdown
}

// NewNoteRenderer creates a NoteRenderer with GFM extensions. Raw HTML in the
// note is dropped.
func NewNoteRenderer() *NoteRenderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			extension.Typographer,
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithXHTML(),
		),
	)
	return &NoteRenderer{md: md}
}

// Render converts markdown to an HTML fragment. Blank input yields "".
func (n *NoteRenderer) Render(ctx context.Context, markdown string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if strings.TrimSpace(markdown) == "" {
		return "", nil
	}

	var buf bytes.Buffer
	if err := n.md.Convert([]byte(markdown), &buf); err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoteConversion, err)
	}
	return strings.TrimSpace(buf.String()), nil
}
