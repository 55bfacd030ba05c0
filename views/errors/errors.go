package errors

import (
	"learnhub/views/ui"

	"github.com/a-h/templ"
)

// NotFound renders the 404 page body
func NotFound(path string) templ.Component {
	return ui.Component(func(h *ui.HTML) {
		h.Raw(`<section class="not-found mx-auto max-w-lg py-16 text-center">`)
		h.Raw(`<p class="text-6xl font-bold text-indigo-600">404</p>`)
		h.Raw(`<h1 class="mt-4 text-2xl font-semibold">Page not found</h1>`)
		h.Raw(`<p class="mt-2 text-slate-600">We couldn't find <code class="path">`)
		h.Text(path)
		h.Raw(`</code>.</p><a href="/"`)
		h.Attr("class", ui.Button(ui.ButtonPrimary, "mt-6"))
		h.Raw(">Back to home</a></section>")
	})
}
