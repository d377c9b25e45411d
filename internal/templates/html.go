// Package templates holds the helpers shared by the layout and page components.
package templates

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// Writer accumulates HTML output and remembers the first write error,
// so components can emit markup without checking every call.
type Writer struct {
	w   io.Writer
	err error
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Raw writes trusted markup.
func (o *Writer) Raw(s string) {
	if o.err != nil {
		return
	}
	_, o.err = io.WriteString(o.w, s)
}

// Rawf writes trusted markup built from a format string. Arguments are not escaped.
func (o *Writer) Rawf(format string, args ...any) {
	if o.err != nil {
		return
	}
	_, o.err = fmt.Fprintf(o.w, format, args...)
}

// Text writes s escaped for element content or quoted attribute values.
func (o *Writer) Text(s string) {
	o.Raw(templ.EscapeString(s))
}

// Element writes <tag class="class">text</tag> with text escaped.
func (o *Writer) Element(tag, class, text string) {
	if class != "" {
		o.Rawf(`<%s class="%s">`, tag, templ.EscapeString(class))
	} else {
		o.Rawf("<%s>", tag)
	}
	o.Text(text)
	o.Rawf("</%s>", tag)
}

// Link writes an anchor. Unsafe URLs are replaced by templ's sanitised placeholder.
func (o *Writer) Link(href, class, text string) {
	o.Rawf(`<a href="%s"`, templ.EscapeString(string(templ.URL(href))))
	if class != "" {
		o.Rawf(` class="%s"`, templ.EscapeString(class))
	}
	o.Raw(">")
	o.Text(text)
	o.Raw("</a>")
}

// Render writes a child component. A nil component writes nothing.
func (o *Writer) Render(ctx context.Context, c templ.Component) {
	if o.err != nil || c == nil {
		return
	}
	o.err = c.Render(ctx, o.w)
}

// Err returns the first error encountered.
func (o *Writer) Err() error {
	return o.err
}

// Component adapts a writer function into a templ.Component.
func Component(fn func(ctx context.Context, o *Writer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		o := NewWriter(w)
		fn(ctx, o)
		return o.Err()
	})
}
