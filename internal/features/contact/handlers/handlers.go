package handlers

import (
	"errors"
	"net/http"

	"learnhub/internal/core"
	"learnhub/internal/features/contact/models"
	"learnhub/internal/features/contact/services"
	"learnhub/views/contact"
	"learnhub/views/layout"

	"github.com/a-h/templ"
)

// Handlers contains all contact HTTP handlers
type Handlers struct {
	logger  *core.Logger
	service *services.ContactService
	office  models.OfficeMap
}

// NewHandlers creates a new handlers instance
func NewHandlers(logger *core.Logger, service *services.ContactService, office models.OfficeMap) *Handlers {
	return &Handlers{
		logger:  logger,
		service: service,
		office:  office,
	}
}

// ContactPage serves the contact form and office map
func (h *Handlers) ContactPage(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, contact.FormState{})
}

// Submit handles a form post. HTMX requests get the form fragment back,
// plain posts the whole page.
func (h *Handlers) Submit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.render(w, r, http.StatusBadRequest, contact.FormState{Notice: "We couldn't read your message. Please try again."})
		return
	}

	form := models.ContactForm{
		Name:    r.PostFormValue("name"),
		Email:   r.PostFormValue("email"),
		Subject: r.PostFormValue("subject"),
		Message: r.PostFormValue("message"),
	}

	_, err := h.service.Submit(r.Context(), form, r.RemoteAddr)
	if err == nil {
		h.render(w, r, http.StatusOK, contact.FormState{Success: true})
		return
	}

	form.Normalize()
	state := contact.FormState{Values: form}

	var formErr *services.FormError
	var appErr *core.AppError
	switch {
	case errors.As(err, &formErr):
		state.Errors = formErr.Fields
		h.render(w, r, http.StatusUnprocessableEntity, state)
	case errors.As(err, &appErr) && appErr.Code == core.ErrCodeRateLimited:
		state.Notice = appErr.Message
		h.render(w, r, http.StatusTooManyRequests, state)
	default:
		h.logger.WithContext(r.Context()).Error("Failed to accept contact message", "error", err)
		state.Notice = "Something went wrong on our side. Please try again later."
		h.render(w, r, http.StatusInternalServerError, state)
	}
}

func (h *Handlers) render(w http.ResponseWriter, r *http.Request, status int, state contact.FormState) {
	var component templ.Component
	if r.Header.Get("HX-Request") == "true" {
		component = contact.Form(state)
	} else {
		component = layout.Page("Contact", r.URL.Path, contact.Page(h.office, state))
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := component.Render(r.Context(), w); err != nil {
		h.logger.WithContext(r.Context()).Error("Failed to render contact form", "error", err)
	}
}
