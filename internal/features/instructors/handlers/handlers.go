package handlers

import (
	"encoding/json"
	"net/http"

	"learnhub/internal/core"
	"learnhub/internal/features/instructors/services"
	viewerrors "learnhub/views/errors"
	"learnhub/views/instructors"
	"learnhub/views/layout"

	"github.com/go-chi/chi/v5"
)

// Handlers contains all instructor directory HTTP handlers
type Handlers struct {
	logger    *core.Logger
	directory *services.Directory
}

// NewHandlers creates a new handlers instance
func NewHandlers(logger *core.Logger, directory *services.Directory) *Handlers {
	return &Handlers{
		logger:    logger,
		directory: directory,
	}
}

// DirectoryPage serves the instructor directory, filtered by ?q=
func (h *Handlers) DirectoryPage(w http.ResponseWriter, r *http.Request) {
	result := h.directory.Search(r.URL.Query().Get("q"))
	component := layout.Page("Instructors", r.URL.Path, instructors.Page(result))
	component.Render(r.Context(), w)
}

// SearchFragment serves the results list for the live search box
func (h *Handlers) SearchFragment(w http.ResponseWriter, r *http.Request) {
	result := h.directory.Search(r.URL.Query().Get("q"))
	component := instructors.Results(result)
	component.Render(r.Context(), w)
}

// InstructorPage serves one instructor profile
func (h *Handlers) InstructorPage(w http.ResponseWriter, r *http.Request) {
	in, err := h.directory.Get(chi.URLParam(r, "id"))
	if err != nil {
		w.WriteHeader(http.StatusNotFound)
		component := layout.Page("Not found", r.URL.Path, viewerrors.NotFound(r.URL.Path))
		component.Render(r.Context(), w)
		return
	}

	component := layout.Page(in.Name, r.URL.Path, instructors.Detail(in))
	component.Render(r.Context(), w)
}

// ListJSON returns the directory, filtered by ?q=, as JSON
func (h *Handlers) ListJSON(w http.ResponseWriter, r *http.Request) {
	result := h.directory.Search(r.URL.Query().Get("q"))

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(result); err != nil {
		h.logger.WithContext(r.Context()).Error("Failed to encode instructors", "error", err)
	}
}

// GetJSON returns one instructor as JSON
func (h *Handlers) GetJSON(w http.ResponseWriter, r *http.Request) {
	in, err := h.directory.Get(chi.URLParam(r, "id"))
	if err != nil {
		core.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(in)
}
