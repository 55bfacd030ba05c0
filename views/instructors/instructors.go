package instructors

import (
	"strconv"

	"learnhub/internal/features/instructors/models"
	"learnhub/views/ui"

	"github.com/a-h/templ"
)

// SearchPath serves the results fragment
const SearchPath = "/instructors/search"

// Page renders the directory with its live search box
func Page(result models.SearchResult) templ.Component {
	return ui.Component(func(h *ui.HTML) {
		h.Raw(`<section class="space-y-6">`)
		h.Raw(`<header><h1 class="text-3xl font-bold">Meet our instructors</h1>`)
		h.Raw(`<p class="mt-2 text-slate-600">Practitioners who teach what they do every day.</p></header>`)

		h.Raw(`<form action="/instructors" method="get" role="search">`)
		h.Raw(`<label for="instructor-search" class="sr-only">Search instructors</label>`)
		h.Raw(`<input id="instructor-search" type="search" name="q" placeholder="Search by name, role or skill"`)
		h.Attr("value", result.Query)
		h.Attr("class", ui.Input(false))
		h.Attr("hx-get", SearchPath)
		h.Raw(` hx-trigger="input changed delay:300ms, search" hx-target="#instructor-results" hx-swap="outerHTML">`)
		h.Raw("</form>")

		h.Render(Results(result))
		h.Raw("</section>")
	})
}

// Results renders the search results fragment
func Results(result models.SearchResult) templ.Component {
	return ui.Component(func(h *ui.HTML) {
		h.Raw(`<div id="instructor-results">`)
		h.Raw(`<p class="result-count mb-4 text-sm text-slate-500">`)
		h.Text(strconv.Itoa(result.Total) + " " + ui.Plural(result.Total, "instructor", "instructors"))
		if result.Query != "" {
			h.Text(` matching "` + result.Query + `"`)
		}
		h.Raw("</p>")

		if result.Total == 0 {
			h.Raw(`<p class="empty rounded-xl border border-dashed border-slate-300 p-10 text-center text-slate-500">`)
			h.Raw("No instructors match your search.</p></div>")
			return
		}

		h.Raw(`<ul class="grid grid-cols-1 gap-6 sm:grid-cols-2 lg:grid-cols-3">`)
		for _, in := range result.Instructors {
			h.Raw("<li>")
			card(h, in)
			h.Raw("</li>")
		}
		h.Raw("</ul></div>")
	})
}

func card(h *ui.HTML, in models.Instructor) {
	h.Raw("<article")
	h.Attr("class", ui.Card("instructor-card p-5"))
	h.Attr("data-instructor-id", in.ID)
	h.Raw(">")

	h.Raw(`<div class="flex items-center gap-4">`)
	avatar(h, in, "h-16 w-16")
	h.Raw(`<div><h2 class="name text-lg font-semibold"><a`)
	h.URLAttr("href", "/instructors/"+in.ID)
	h.Raw(` class="hover:text-indigo-600">`)
	h.Text(in.Name)
	h.Raw(`</a></h2><p class="title text-sm text-slate-500">`)
	h.Text(in.Title)
	h.Raw("</p></div></div>")

	specialties(h, in.Specialties)

	h.Raw(`<p class="meta mt-4 text-xs text-slate-500">`)
	h.Text(strconv.Itoa(in.CourseCount) + " " + ui.Plural(in.CourseCount, "course", "courses"))
	h.Text(" · ★ " + strconv.FormatFloat(in.Rating, 'f', 1, 64))
	h.Raw("</p></article>")
}

func avatar(h *ui.HTML, in models.Instructor, size string) {
	if in.Image == "" {
		return
	}
	h.Raw("<img")
	h.URLAttr("src", in.Image)
	h.Attr("alt", in.Name)
	h.Attr("class", size+" rounded-full bg-slate-200 object-cover")
	h.Raw(` loading="lazy">`)
}

func specialties(h *ui.HTML, list []string) {
	if len(list) == 0 {
		return
	}
	h.Raw(`<ul class="specialties mt-4 flex flex-wrap gap-2">`)
	for _, s := range list {
		h.Raw(`<li class="`)
		h.Raw(ui.Badge())
		h.Raw(`">`)
		h.Text(s)
		h.Raw("</li>")
	}
	h.Raw("</ul>")
}

// Detail renders a single instructor profile
func Detail(in models.Instructor) templ.Component {
	return ui.Component(func(h *ui.HTML) {
		h.Raw(`<article class="instructor-detail space-y-6">`)
		h.Raw(`<a href="/instructors" class="text-sm text-indigo-600 hover:underline">&larr; All instructors</a>`)

		h.Raw(`<header class="flex items-center gap-6">`)
		avatar(h, in, "h-24 w-24")
		h.Raw(`<div><h1 class="text-3xl font-bold">`)
		h.Text(in.Name)
		h.Raw(`</h1><p class="text-slate-600">`)
		h.Text(in.Title)
		h.Raw("</p></div></header>")

		if in.Bio != "" {
			h.Raw(`<p class="bio max-w-2xl text-slate-700">`)
			h.Text(in.Bio)
			h.Raw("</p>")
		}

		specialties(h, in.Specialties)

		if len(in.Social) > 0 {
			h.Raw(`<ul class="social flex gap-4">`)
			for _, link := range in.Social {
				h.Raw("<li><a")
				h.URLAttr("href", link.URL)
				h.Raw(` rel="noopener" target="_blank" class="text-indigo-600 hover:underline">`)
				h.Text(link.Network)
				h.Raw("</a></li>")
			}
			h.Raw("</ul>")
		}
		h.Raw("</article>")
	})
}
