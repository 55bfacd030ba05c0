package layout

import (
	"bytes"
	"context"
	"testing"

	"learnhub/views/ui"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, activePath string) *goquery.Document {
	t.Helper()
	body := ui.Component(func(h *ui.HTML) { h.Raw(`<p id="content">hello</p>`) })

	var buf bytes.Buffer
	require.NoError(t, Page("Courses", activePath, body).Render(context.Background(), &buf))

	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	return doc
}

func TestIsActive(t *testing.T) {
	assert.True(t, IsActive("/", "/"))
	assert.False(t, IsActive("/", "/courses"))
	assert.True(t, IsActive("/courses", "/courses"))
	assert.True(t, IsActive("/instructors", "/instructors/ada"))
	assert.False(t, IsActive("/courses", "/coursesx"))
}

func TestPageShell(t *testing.T) {
	doc := render(t, "/instructors/7")

	assert.Equal(t, "Courses · LearnHub", doc.Find("title").Text())
	assert.Equal(t, "hello", doc.Find("main #content").Text())
	assert.Equal(t, 1, doc.Find("footer").Length())

	active := doc.Find(`nav a[aria-current="page"]`)
	require.Equal(t, 1, active.Length())
	assert.Equal(t, "Instructors", active.Text())

	mobileActive := doc.Find(`#mobile-menu a[aria-current="page"]`)
	assert.Equal(t, "Instructors", mobileActive.Text())
}

func TestMobileMenuMarkup(t *testing.T) {
	doc := render(t, "/")

	toggle := doc.Find("#menu-toggle")
	assert.Equal(t, "mobile-menu", toggle.AttrOr("aria-controls", ""))
	assert.Equal(t, "false", toggle.AttrOr("aria-expanded", ""))

	menu := doc.Find("#mobile-menu")
	assert.True(t, menu.HasClass("max-h-0"))
	assert.True(t, menu.HasClass("opacity-0"))
	assert.Equal(t, MenuOpenClasses, menu.AttrOr("data-open-class", ""))
	assert.Equal(t, len(NavItems), menu.Find("a").Length())
}
