package ui

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormat(t *testing.T) {
	assert.Equal(t, "Free", Price(0))
	assert.Equal(t, "$49.99", Price(49.99))
	assert.Equal(t, "$10.00", Price(10))

	assert.Equal(t, "12h", Hours(12))
	assert.Equal(t, "12.5h", Hours(12.5))

	assert.Equal(t, "999", Count(999))
	assert.Equal(t, "1k", Count(1000))
	assert.Equal(t, "1.2k", Count(1234))

	assert.Equal(t, "course", Plural(1, "course", "courses"))
	assert.Equal(t, "courses", Plural(0, "course", "courses"))
}

func TestButtonOverrides(t *testing.T) {
	classes := strings.Fields(Button(ButtonPrimary, "px-6"))
	assert.Contains(t, classes, "px-6")
	assert.NotContains(t, classes, "px-4", "conflicting padding is replaced")
	assert.Contains(t, classes, "bg-indigo-600")
}

func TestInputInvalid(t *testing.T) {
	assert.NotContains(t, Input(false), "border-red-500")

	classes := strings.Fields(Input(true))
	assert.Contains(t, classes, "border-red-500")
	assert.NotContains(t, classes, "border-slate-300")
}

func TestNavLinkActive(t *testing.T) {
	assert.Contains(t, strings.Fields(NavLink(true, false)), "text-indigo-600")
	assert.NotContains(t, strings.Fields(NavLink(true, false)), "text-slate-600")
	assert.Contains(t, strings.Fields(NavLink(false, true)), "block")
}

func TestComponentEscapes(t *testing.T) {
	c := Component(func(h *HTML) {
		h.Raw("<p")
		h.Attr("title", `"quoted"`)
		h.URLAttr("data-href", "javascript:alert(1)")
		h.Raw(">")
		h.Text("<b>bold</b>")
		h.Close("p")
	})

	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	out := buf.String()
	assert.Contains(t, out, `title="&#34;quoted&#34;"`)
	assert.NotContains(t, out, "javascript:")
	assert.Contains(t, out, "&lt;b&gt;bold&lt;/b&gt;")
}
