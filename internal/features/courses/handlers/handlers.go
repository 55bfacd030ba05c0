package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"learnhub/internal/core"
	"learnhub/internal/features/courses/carousel"
	"learnhub/internal/features/courses/sessions"
	"learnhub/views/courses"
	"learnhub/views/layout"
)

// Handlers contains all course carousel HTTP handlers
type Handlers struct {
	logger *core.Logger
	store  *sessions.Store
}

// NewHandlers creates a new handlers instance
func NewHandlers(logger *core.Logger, store *sessions.Store) *Handlers {
	return &Handlers{
		logger: logger,
		store:  store,
	}
}

// session returns the visitor's carousel session, starting one and setting
// the cookie when needed. New sessions load their first page right away.
func (h *Handlers) session(w http.ResponseWriter, r *http.Request) *sessions.Session {
	var id string
	if cookie, err := r.Cookie(sessions.CookieName); err == nil {
		id = cookie.Value
	}

	width, _ := strconv.Atoi(r.FormValue("width"))
	sess, created := h.store.GetOrCreate(id, width)
	if created {
		http.SetCookie(w, &http.Cookie{
			Name:     sessions.CookieName,
			Value:    sess.ID,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		h.logger.WithContext(r.Context()).Debug("Started carousel session", "session_id", sess.ID)
	}

	if sess.Controller.Snapshot().Status == carousel.StatusIdle {
		sess.Controller.Mount(sess.Context())
	}
	return sess
}

func (h *Handlers) renderCarousel(w http.ResponseWriter, r *http.Request, sess *sessions.Session) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := courses.Carousel(sess.Controller.Snapshot()).Render(r.Context(), w); err != nil {
		h.logger.WithContext(r.Context()).Error("Failed to render carousel", "error", err)
	}
}

// CoursesPage serves the courses page
func (h *Handlers) CoursesPage(w http.ResponseWriter, r *http.Request) {
	component := layout.Page("Courses", r.URL.Path, courses.Page())
	component.Render(r.Context(), w)
}

// Carousel serves the current carousel fragment
func (h *Handlers) Carousel(w http.ResponseWriter, r *http.Request) {
	sess := h.session(w, r)
	h.renderCarousel(w, r, sess)
}

// Next advances the carousel one window
func (h *Handlers) Next(w http.ResponseWriter, r *http.Request) {
	sess := h.session(w, r)
	sess.Controller.Next(sess.Context())
	h.renderCarousel(w, r, sess)
}

// Prev moves the carousel back one window
func (h *Handlers) Prev(w http.ResponseWriter, r *http.Request) {
	sess := h.session(w, r)
	sess.Controller.Prev(sess.Context())
	h.renderCarousel(w, r, sess)
}

// Swipe replays a completed touch sequence reported by the browser
func (h *Handlers) Swipe(w http.ResponseWriter, r *http.Request) {
	startX, err := strconv.ParseFloat(r.FormValue("start_x"), 64)
	if err != nil {
		core.WriteErrorResponse(w, http.StatusBadRequest, core.NewValidationError("start_x must be a number", err))
		return
	}
	endX, err := strconv.ParseFloat(r.FormValue("end_x"), 64)
	if err != nil {
		core.WriteErrorResponse(w, http.StatusBadRequest, core.NewValidationError("end_x must be a number", err))
		return
	}

	sess := h.session(w, r)
	ctrl := sess.Controller
	ctrl.TouchStart(startX)
	ctrl.TouchMove(endX)
	swipe := ctrl.TouchEnd(sess.Context())

	h.logger.WithContext(r.Context()).Debug("Carousel swipe", "session_id", sess.ID, "swipe", swipe.String())
	h.renderCarousel(w, r, sess)
}

// Hover pauses auto-advance while the pointer is over the carousel
func (h *Handlers) Hover(w http.ResponseWriter, r *http.Request) {
	var hovering bool
	switch r.FormValue("state") {
	case "enter":
		hovering = true
	case "leave":
		hovering = false
	default:
		core.WriteErrorResponse(w, http.StatusBadRequest, core.NewValidationError("state must be enter or leave", nil))
		return
	}

	sess := h.session(w, r)
	sess.Controller.SetHover(hovering)
	w.WriteHeader(http.StatusNoContent)
}

// Resize records the browser's viewport width and re-windows the carousel
func (h *Handlers) Resize(w http.ResponseWriter, r *http.Request) {
	width, err := strconv.Atoi(r.FormValue("width"))
	if err != nil || width <= 0 {
		core.WriteErrorResponse(w, http.StatusBadRequest, core.NewValidationError("width must be a positive integer", err))
		return
	}

	sess := h.session(w, r)
	sess.Viewport.SetWidth(width)
	sess.Controller.Resize(sess.Context())
	h.renderCarousel(w, r, sess)
}

// Retry remounts the carousel after a failed load
func (h *Handlers) Retry(w http.ResponseWriter, r *http.Request) {
	sess := h.session(w, r)
	if !sess.Controller.Retry(sess.Context()) {
		h.logger.WithContext(r.Context()).Debug("Retry dropped, load in progress", "session_id", sess.ID)
	}
	h.renderCarousel(w, r, sess)
}

// SnapshotJSON returns the carousel state as JSON
func (h *Handlers) SnapshotJSON(w http.ResponseWriter, r *http.Request) {
	sess := h.session(w, r)

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(sess.Controller.Snapshot()); err != nil {
		h.logger.WithContext(r.Context()).Error("Failed to encode carousel snapshot", "error", err)
	}
}
