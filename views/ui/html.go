package ui

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

// HTML accumulates markup for a component and keeps the first write error
type HTML struct {
	ctx context.Context
	w   io.Writer
	err error
}

// NewHTML wraps w for a render pass
func NewHTML(ctx context.Context, w io.Writer) *HTML {
	return &HTML{ctx: ctx, w: w}
}

// Raw writes trusted markup as is
func (h *HTML) Raw(s string) {
	if h.err != nil {
		return
	}
	_, h.err = io.WriteString(h.w, s)
}

// Text writes escaped text
func (h *HTML) Text(s string) {
	h.Raw(templ.EscapeString(s))
}

// Attr writes ` name="value"` with value escaped
func (h *HTML) Attr(name, value string) {
	h.Raw(" " + name + `="` + templ.EscapeString(value) + `"`)
}

// URLAttr writes a URL attribute, dropping unsafe schemes
func (h *HTML) URLAttr(name, url string) {
	h.Attr(name, string(templ.URL(url)))
}

// Open writes `<tag class="...">`
func (h *HTML) Open(tag, class string) {
	h.Raw("<" + tag)
	if class != "" {
		h.Attr("class", class)
	}
	h.Raw(">")
}

// Close writes `</tag>`
func (h *HTML) Close(tag string) {
	h.Raw("</" + tag + ">")
}

// Render writes a child component
func (h *HTML) Render(c templ.Component) {
	if h.err != nil || c == nil {
		return
	}
	h.err = c.Render(h.ctx, h.w)
}

// Err returns the first error seen during the render pass
func (h *HTML) Err() error {
	return h.err
}

// Component adapts a render function built on HTML into a templ component
func Component(fn func(h *HTML)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := NewHTML(ctx, w)
		fn(h)
		return h.Err()
	})
}
