package contact

import (
	"strconv"

	"learnhub/internal/features/contact/models"
	"learnhub/views/ui"

	"github.com/a-h/templ"
)

// FormPath receives form submissions
const FormPath = "/contact"

// FormState is what the form fragment shows
type FormState struct {
	Values  models.ContactForm
	Errors  models.FieldErrors
	Notice  string // form-wide error, e.g. rate limiting
	Success bool
}

// Page renders the contact page with the office map and the form
func Page(office models.OfficeMap, state FormState) templ.Component {
	return ui.Component(func(h *ui.HTML) {
		h.Raw(`<section class="grid gap-10 lg:grid-cols-2">`)

		h.Raw(`<div class="space-y-4">`)
		h.Raw(`<h1 class="text-3xl font-bold">Get in touch</h1>`)
		h.Raw(`<p class="text-slate-600">Questions about a course, team licences or teaching with us? Send us a message.</p>`)
		h.Render(Form(state))
		h.Raw("</div>")

		h.Render(Map(office))
		h.Raw("</section>")
	})
}

// Map renders the static office map linking to the interactive one
func Map(office models.OfficeMap) templ.Component {
	return ui.Component(func(h *ui.HTML) {
		h.Raw("<figure")
		h.Attr("class", ui.Card("office-map"))
		h.Raw("><a")
		h.URLAttr("href", office.LinkURL)
		h.Raw(` target="_blank" rel="noopener"><img`)
		h.URLAttr("src", office.ImageURL)
		h.Attr("alt", "Map showing "+office.Address)
		h.Attr("width", strconv.Itoa(600))
		h.Attr("height", strconv.Itoa(400))
		h.Raw(` class="h-auto w-full" loading="lazy"></a>`)
		h.Raw(`<figcaption class="address p-4 text-sm text-slate-600">`)
		h.Text(office.Address)
		h.Raw(`<a class="ml-2 text-indigo-600 hover:underline"`)
		h.URLAttr("href", office.LinkURL)
		h.Raw(` target="_blank" rel="noopener">Open map</a></figcaption></figure>`)
	})
}

// Form renders the contact form fragment, swapped in place on submit
func Form(state FormState) templ.Component {
	return ui.Component(func(h *ui.HTML) {
		if state.Success {
			h.Raw(`<div id="contact-form"`)
			h.Attr("class", ui.Alert("success")+" contact-success")
			h.Raw(` role="status">Thanks for your message! We usually reply within two working days.</div>`)
			return
		}

		h.Raw(`<form id="contact-form" class="space-y-4" method="post"`)
		h.Attr("action", FormPath)
		h.Attr("hx-post", FormPath)
		h.Raw(` hx-target="this" hx-swap="outerHTML" novalidate>`)

		if state.Notice != "" {
			h.Raw(`<p`)
			h.Attr("class", ui.Alert("error")+" form-notice")
			h.Raw(` role="alert">`)
			h.Text(state.Notice)
			h.Raw("</p>")
		}

		field(h, state, "name", "Name", "text", state.Values.Name)
		field(h, state, "email", "Email", "email", state.Values.Email)
		field(h, state, "subject", "Subject (optional)", "text", state.Values.Subject)

		h.Raw(`<div class="field">`)
		h.Raw(`<label for="contact-message" class="mb-1 block text-sm font-medium">Message</label>`)
		h.Raw(`<textarea id="contact-message" name="message" rows="6"`)
		h.Attr("class", ui.Input(state.Errors["message"] != ""))
		invalid(h, state, "message")
		h.Raw(">")
		h.Text(state.Values.Message)
		h.Raw("</textarea>")
		fieldError(h, state, "message")
		h.Raw("</div>")

		h.Raw(`<button type="submit"`)
		h.Attr("class", ui.Button(ui.ButtonPrimary))
		h.Raw(">Send message</button></form>")
	})
}

func field(h *ui.HTML, state FormState, name, label, kind, value string) {
	id := "contact-" + name
	h.Raw(`<div class="field">`)
	h.Raw("<label")
	h.Attr("for", id)
	h.Raw(` class="mb-1 block text-sm font-medium">`)
	h.Text(label)
	h.Raw("</label><input")
	h.Attr("id", id)
	h.Attr("type", kind)
	h.Attr("name", name)
	h.Attr("value", value)
	h.Attr("class", ui.Input(state.Errors[name] != ""))
	invalid(h, state, name)
	h.Raw(">")
	fieldError(h, state, name)
	h.Raw("</div>")
}

func invalid(h *ui.HTML, state FormState, name string) {
	if state.Errors[name] != "" {
		h.Raw(` aria-invalid="true"`)
		h.Attr("aria-describedby", "contact-"+name+"-error")
	}
}

func fieldError(h *ui.HTML, state FormState, name string) {
	msg := state.Errors[name]
	if msg == "" {
		return
	}
	h.Raw("<p")
	h.Attr("id", "contact-"+name+"-error")
	h.Raw(` class="field-error mt-1 text-sm text-red-600">`)
	h.Text(msg)
	h.Raw("</p>")
}
