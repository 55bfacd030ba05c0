package home

import (
	"learnhub/views/courses"
	"learnhub/views/ui"

	"github.com/a-h/templ"
)

// Teaser links to another section of the site
type Teaser struct {
	Title string
	Body  string
	Href  string
	CTA   string
}

// Teasers shown below the carousel
var Teasers = []Teaser{
	{
		Title: "Learn from practitioners",
		Body:  "Our instructors teach what they do every day, from data engineering to product design.",
		Href:  "/instructors",
		CTA:   "Meet the instructors",
	},
	{
		Title: "Training for your team",
		Body:  "Licences for groups, custom learning paths and progress reports for managers.",
		Href:  "/contact",
		CTA:   "Talk to us",
	},
}

// Page renders the home page
func Page() templ.Component {
	return ui.Component(func(h *ui.HTML) {
		h.Raw(`<section class="hero rounded-2xl bg-gradient-to-br from-indigo-600 to-violet-600 px-6 py-16 text-center text-white md:py-24">`)
		h.Raw(`<h1 class="text-4xl font-extrabold tracking-tight md:text-5xl">Learn something new every day</h1>`)
		h.Raw(`<p class="mx-auto mt-4 max-w-2xl text-lg text-indigo-100">Practical courses taught by people who do the work. Start free, learn at your own pace.</p>`)
		h.Raw(`<a href="/courses"`)
		h.Attr("class", ui.Button(ui.ButtonSecondary, "mt-8 border-transparent px-6 py-3 text-base text-indigo-700"))
		h.Raw(">Browse courses</a></section>")

		h.Raw(`<section class="mt-16 space-y-6"><h2 class="text-2xl font-bold">Popular right now</h2>`)
		h.Render(courses.Placeholder())
		h.Raw("</section>")

		h.Raw(`<section class="teasers mt-16 grid gap-6 md:grid-cols-2">`)
		for _, t := range Teasers {
			h.Raw("<article")
			h.Attr("class", ui.Card("teaser p-6"))
			h.Raw(`><h3 class="text-lg font-semibold">`)
			h.Text(t.Title)
			h.Raw(`</h3><p class="mt-2 text-slate-600">`)
			h.Text(t.Body)
			h.Raw("</p><a")
			h.Attr("href", t.Href)
			h.Raw(` class="mt-4 inline-block font-medium text-indigo-600 hover:underline">`)
			h.Text(t.CTA)
			h.Raw(" &rarr;</a></article>")
		}
		h.Raw("</section>")
	})
}
