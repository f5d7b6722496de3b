package components

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// Writer emits markup and keeps the first write error, so a component can
// write many fragments and check once.
type Writer struct {
	w   io.Writer
	err error
}

// NewWriter wraps w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Raw writes trusted markup.
func (m *Writer) Raw(markup string) {
	if m.err != nil {
		return
	}
	_, m.err = io.WriteString(m.w, markup)
}

// Rawf writes trusted markup built from format. Callers escape user values
// with Text before passing them in.
func (m *Writer) Rawf(format string, args ...any) {
	if m.err != nil {
		return
	}
	_, m.err = fmt.Fprintf(m.w, format, args...)
}

// Text writes an escaped string.
func (m *Writer) Text(value string) {
	m.Raw(templ.EscapeString(value))
}

// Render writes a nested component.
func (m *Writer) Render(ctx context.Context, component templ.Component) {
	if m.err != nil || component == nil {
		return
	}
	m.err = component.Render(ctx, m.w)
}

// Err returns the first write error.
func (m *Writer) Err() error {
	return m.err
}

// Text escapes a value for inclusion in markup or a quoted attribute.
func Text(value string) string {
	return templ.EscapeString(value)
}
