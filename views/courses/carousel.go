package courses

import (
	"strconv"

	"learnhub/internal/features/courses/carousel"
	"learnhub/internal/features/courses/models"
	"learnhub/views/ui"

	"github.com/a-h/templ"
)

// Carousel endpoints
const (
	FragmentPath = "/courses/carousel"
	NextPath     = FragmentPath + "/next"
	PrevPath     = FragmentPath + "/prev"
	SwipePath    = FragmentPath + "/swipe"
	HoverPath    = FragmentPath + "/hover"
	ResizePath   = FragmentPath + "/resize"
	RetryPath    = FragmentPath + "/retry"
)

// PollInterval matches the auto-advance period so every tick shows up
const PollInterval = "5s"

// Page renders the courses page. The carousel itself loads lazily.
func Page() templ.Component {
	return ui.Component(func(h *ui.HTML) {
		h.Raw(`<section class="space-y-6">`)
		h.Raw(`<header><h1 class="text-3xl font-bold">Popular courses</h1>`)
		h.Raw(`<p class="mt-2 text-slate-600">Hand-picked courses from our instructors. Swipe or use the arrows to browse.</p></header>`)
		h.Render(Placeholder())
		h.Raw("</section>")
	})
}

// Placeholder fetches the carousel fragment as soon as it is on screen
func Placeholder() templ.Component {
	return ui.Component(func(h *ui.HTML) {
		h.Raw(`<div id="course-carousel" hx-get="`)
		h.Raw(FragmentPath)
		h.Raw(`" hx-trigger="load" hx-swap="outerHTML">`)
		skeleton(h)
		h.Raw("</div>")
	})
}

// Carousel renders the carousel fragment for a controller snapshot
func Carousel(snap carousel.Snapshot) templ.Component {
	return ui.Component(func(h *ui.HTML) {
		h.Raw(`<section id="course-carousel" class="relative" aria-roledescription="carousel" aria-label="Courses"`)
		h.Attr("data-status", snap.Status.String())
		h.Attr("data-index", strconv.Itoa(snap.Index))
		h.Attr("data-total", strconv.Itoa(snap.TotalWindows))
		h.Attr("data-window-size", strconv.Itoa(snap.WindowSize))
		h.Attr("data-paused", strconv.FormatBool(snap.Paused))
		h.Attr("data-hover-url", HoverPath)
		h.Attr("data-swipe-url", SwipePath)
		h.Attr("data-resize-url", ResizePath)
		h.Attr("hx-get", FragmentPath)
		h.Attr("hx-trigger", "every "+PollInterval)
		h.Attr("hx-swap", "outerHTML")
		h.Raw(">")

		switch {
		case snap.Loaded == 0 && snap.Status == carousel.StatusError:
			errorNotice(h, snap.Error)
		case snap.Loaded == 0 && snap.Status == carousel.StatusReady:
			h.Raw(`<p class="empty rounded-xl border border-dashed border-slate-300 p-10 text-center text-slate-500">No courses available yet.</p>`)
		case snap.Loaded == 0:
			skeleton(h)
		default:
			if snap.Status == carousel.StatusError {
				errorNotice(h, snap.Error)
			}
			slides(h, snap)
		}

		h.Raw("</section>")
	})
}

func slides(h *ui.HTML, snap carousel.Snapshot) {
	h.Raw(`<div class="flex items-center gap-4">`)
	navButton(h, PrevPath, "prev", "Previous courses", "M15 19l-7-7 7-7")

	h.Raw(`<ul class="slides grid flex-1 gap-6`)
	switch snap.WindowSize {
	case 1:
		h.Raw(" grid-cols-1")
	case 2:
		h.Raw(" grid-cols-2")
	default:
		h.Raw(" grid-cols-3")
	}
	h.Raw(`">`)
	for _, course := range snap.Courses {
		h.Raw(`<li class="slide">`)
		h.Render(Card(course))
		h.Raw("</li>")
	}
	h.Raw("</ul>")

	navButton(h, NextPath, "next", "Next courses", "M9 5l7 7-7 7")
	h.Raw("</div>")

	h.Raw(`<div class="mt-6 flex items-center justify-center gap-2">`)
	for i := 0; i < snap.TotalWindows; i++ {
		h.Raw(`<span class="dot h-2 rounded-full transition-all`)
		if i == snap.Index {
			h.Raw(` active w-6 bg-indigo-600" aria-current="true"></span>`)
		} else {
			h.Raw(` w-2 bg-slate-300"></span>`)
		}
	}
	h.Raw("</div>")

	if snap.Fetching {
		h.Raw(`<p class="loading-more mt-3 text-center text-sm text-slate-500">Loading more courses…</p>`)
	}
}

func navButton(h *ui.HTML, path, name, label, icon string) {
	h.Raw("<button")
	h.Attr("type", "button")
	h.Attr("class", ui.Button(ui.ButtonIcon, name))
	h.Attr("hx-post", path)
	h.Attr("hx-target", "#course-carousel")
	h.Attr("hx-swap", "outerHTML")
	h.Attr("aria-label", label)
	h.Raw(`><svg class="h-5 w-5" fill="none" viewBox="0 0 24 24" stroke="currentColor" aria-hidden="true">`)
	h.Raw(`<path stroke-linecap="round" stroke-linejoin="round" stroke-width="2"`)
	h.Attr("d", icon)
	h.Raw("/></svg></button>")
}

func errorNotice(h *ui.HTML, message string) {
	h.Raw("<div")
	h.Attr("class", ui.Alert("error")+" feed-error mb-4 flex items-center justify-between gap-4")
	h.Raw(` role="alert"><span>`)
	if message == "" {
		message = "We couldn't load courses right now."
	}
	h.Text(message)
	h.Raw("</span><button")
	h.Attr("type", "button")
	h.Attr("class", ui.Button(ui.ButtonSecondary, "retry"))
	h.Attr("hx-post", RetryPath)
	h.Attr("hx-target", "#course-carousel")
	h.Attr("hx-swap", "outerHTML")
	h.Raw(">Try again</button></div>")
}

func skeleton(h *ui.HTML) {
	h.Raw(`<div class="skeleton grid animate-pulse grid-cols-1 gap-6 md:grid-cols-3" aria-busy="true">`)
	for i := 0; i < 3; i++ {
		h.Raw(`<div class="h-72 rounded-xl bg-slate-200"></div>`)
	}
	h.Raw(`<span class="sr-only">Loading courses…</span></div>`)
}

// Card renders one course
func Card(course models.CourseSummary) templ.Component {
	return ui.Component(func(h *ui.HTML) {
		h.Raw("<article")
		h.Attr("class", ui.Card("course-card flex h-full flex-col"))
		h.Attr("data-course-id", string(course.ID))
		h.Raw(">")

		if course.Image != "" {
			h.Raw("<img")
			h.URLAttr("src", course.Image)
			h.Attr("alt", course.Title)
			h.Raw(` class="h-40 w-full object-cover" loading="lazy">`)
		}

		h.Raw(`<div class="flex flex-1 flex-col gap-3 p-5">`)
		if course.Category != "" {
			h.Raw(`<span class="`)
			h.Raw(ui.Badge("category self-start"))
			h.Raw(`">`)
			h.Text(course.Category)
			h.Raw("</span>")
		}
		h.Raw(`<h3 class="title text-lg font-semibold">`)
		h.Text(course.Title)
		h.Raw("</h3>")
		if course.InstructorName != "" {
			h.Raw(`<p class="instructor text-sm text-slate-500">by `)
			h.Text(course.InstructorName)
			h.Raw("</p>")
		}

		h.Raw(`<ul class="stats mt-auto flex gap-4 text-xs text-slate-500">`)
		h.Raw(`<li class="students">`)
		h.Text(ui.Count(course.StudentsCount) + " " + ui.Plural(course.StudentsCount, "student", "students"))
		h.Raw(`</li><li class="teachers">`)
		h.Text(strconv.Itoa(course.TeachersCount) + " " + ui.Plural(course.TeachersCount, "teacher", "teachers"))
		h.Raw(`</li><li class="hours">`)
		h.Text(ui.Hours(course.TotalHours))
		h.Raw("</li></ul>")

		h.Raw(`<p class="price text-lg font-bold`)
		if course.IsFree() {
			h.Raw(" text-green-600")
		} else {
			h.Raw(" text-slate-900")
		}
		h.Raw(`">`)
		h.Text(ui.Price(course.Price))
		h.Raw("</p></div></article>")
	})
}
