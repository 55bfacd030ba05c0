package layout

import (
	"strings"

	"learnhub/views/ui"

	"github.com/a-h/templ"
)

// NavItem is one entry of the main navigation
type NavItem struct {
	Label string
	Href  string
}

// NavItems is the main navigation, in display order
var NavItems = []NavItem{
	{Label: "Home", Href: "/"},
	{Label: "Courses", Href: "/courses"},
	{Label: "Instructors", Href: "/instructors"},
	{Label: "Contact", Href: "/contact"},
}

// IsActive reports whether href is the current section. The root only
// matches itself; other entries match their sub-paths too.
func IsActive(href, activePath string) bool {
	if href == "/" {
		return activePath == "/"
	}
	return activePath == href || strings.HasPrefix(activePath, href+"/")
}

// Mobile menu states
const (
	MenuClosedClasses = "max-h-0 opacity-0"
	MenuOpenClasses   = "max-h-96 opacity-100"
)

// Page renders the document shell around body
func Page(title, activePath string, body templ.Component) templ.Component {
	return ui.Component(func(h *ui.HTML) {
		h.Raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`)
		h.Raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		h.Raw("<title>")
		if title != "" {
			h.Text(title + " · LearnHub")
		} else {
			h.Text("LearnHub")
		}
		h.Raw("</title>")
		// Form fragments come back as 422/429 and must still be swapped in
		h.Raw(`<meta name="htmx-config" content='{"responseHandling":[{"code":"204","swap":false},{"code":"[23]..","swap":true},{"code":"42[29]","swap":true},{"code":"[45]..","swap":false,"error":true}]}'>`)
		h.Raw(`<script src="https://cdn.tailwindcss.com"></script>`)
		h.Raw(`<link rel="stylesheet" href="/assets/app.css">`)
		h.Raw(`<script src="https://unpkg.com/htmx.org@2.0.4" defer></script>`)
		h.Raw(`<script src="/assets/app.js" defer></script>`)
		h.Raw(`</head><body class="flex min-h-screen flex-col bg-slate-50 text-slate-900">`)

		h.Render(Navbar(activePath))
		h.Raw(`<main id="main" class="mx-auto w-full max-w-6xl flex-1 px-4 py-10">`)
		h.Render(body)
		h.Raw("</main>")
		h.Render(Footer())

		h.Raw("</body></html>")
	})
}

// Navbar renders the top navigation with its collapsible mobile menu
func Navbar(activePath string) templ.Component {
	return ui.Component(func(h *ui.HTML) {
		h.Raw(`<header id="navbar" class="sticky top-0 z-40 bg-white/95 backdrop-blur transition-shadow" data-scroll-shadow="shadow-md">`)
		h.Raw(`<nav class="mx-auto flex max-w-6xl items-center justify-between px-4 py-3" aria-label="Main">`)
		h.Raw(`<a href="/" class="text-xl font-bold text-indigo-600">LearnHub</a>`)

		h.Raw(`<div class="hidden items-center gap-1 md:flex">`)
		for _, item := range NavItems {
			navLink(h, item, activePath, false)
		}
		h.Raw("</div>")

		h.Raw(`<button type="button" id="menu-toggle" class="`)
		h.Raw(ui.Button(ui.ButtonGhost, "md:hidden px-2"))
		h.Raw(`" aria-controls="mobile-menu" aria-expanded="false" aria-label="Toggle menu">`)
		h.Raw(`<svg class="h-6 w-6" fill="none" viewBox="0 0 24 24" stroke="currentColor" aria-hidden="true">`)
		h.Raw(`<path stroke-linecap="round" stroke-linejoin="round" stroke-width="2" d="M4 6h16M4 12h16M4 18h16"/></svg>`)
		h.Raw("</button>")
		h.Raw("</nav>")

		h.Raw(`<div id="mobile-menu" class="overflow-hidden transition-all duration-300 ease-in-out md:hidden `)
		h.Raw(MenuClosedClasses)
		h.Raw(`" data-open-class="`)
		h.Raw(MenuOpenClasses)
		h.Raw(`" data-closed-class="`)
		h.Raw(MenuClosedClasses)
		h.Raw(`"><div class="space-y-1 px-4 pb-4">`)
		for _, item := range NavItems {
			navLink(h, item, activePath, true)
		}
		h.Raw("</div></div>")
		h.Raw("</header>")
	})
}

func navLink(h *ui.HTML, item NavItem, activePath string, mobile bool) {
	active := IsActive(item.Href, activePath)
	h.Raw("<a")
	h.Attr("href", item.Href)
	h.Attr("class", ui.NavLink(active, mobile))
	if active {
		h.Attr("aria-current", "page")
	}
	h.Raw(">")
	h.Text(item.Label)
	h.Raw("</a>")
}

// Footer renders the site footer
func Footer() templ.Component {
	return ui.Component(func(h *ui.HTML) {
		h.Raw(`<footer class="border-t border-slate-200 bg-white">`)
		h.Raw(`<div class="mx-auto flex max-w-6xl flex-col gap-4 px-4 py-8 text-sm text-slate-500 md:flex-row md:justify-between">`)
		h.Raw(`<p>&copy; LearnHub. Learn something new every day.</p>`)
		h.Raw(`<ul class="flex gap-4">`)
		for _, item := range NavItems[1:] {
			h.Raw("<li><a")
			h.Attr("href", item.Href)
			h.Raw(` class="hover:text-indigo-600">`)
			h.Text(item.Label)
			h.Raw("</a></li>")
		}
		h.Raw("</ul></div></footer>")
	})
}
