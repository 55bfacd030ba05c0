package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"learnhub/internal/core"
	"learnhub/internal/features/instructors/data"
	"learnhub/internal/features/instructors/models"
	"learnhub/internal/features/instructors/services"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(t *testing.T) chi.Router {
	t.Helper()
	logger := core.NewNopLogger()
	directory, err := services.NewDirectory(logger, data.InstructorsJSON)
	require.NoError(t, err)

	h := NewHandlers(logger, directory)
	r := chi.NewRouter()
	r.Get("/instructors", h.DirectoryPage)
	r.Get("/instructors/search", h.SearchFragment)
	r.Get("/instructors/{id}", h.InstructorPage)
	r.Get("/api/instructors", h.ListJSON)
	r.Get("/api/instructors/{id}", h.GetJSON)
	return r
}

func get(t *testing.T, r http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func parse(t *testing.T, rec *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(rec.Body)
	require.NoError(t, err)
	return doc
}

func TestDirectoryPage(t *testing.T) {
	rec := get(t, newRouter(t), "/instructors")
	require.Equal(t, http.StatusOK, rec.Code)

	doc := parse(t, rec)
	assert.Equal(t, 6, doc.Find(".instructor-card").Length())
	assert.Equal(t, "/instructors/search", doc.Find("#instructor-search").AttrOr("hx-get", ""))
	assert.Equal(t, "Instructors", doc.Find(`nav a[aria-current="page"]`).Text())
}

func TestDirectoryPageWithQuery(t *testing.T) {
	doc := parse(t, get(t, newRouter(t), "/instructors?q=m%C3%BCller"))

	cards := doc.Find(".instructor-card")
	require.Equal(t, 1, cards.Length())
	assert.Equal(t, "Zoë Müller", cards.Find(".name").Text())
	assert.Equal(t, "müller", doc.Find("#instructor-search").AttrOr("value", ""))
}

func TestSearchFragment(t *testing.T) {
	r := newRouter(t)

	doc := parse(t, get(t, r, "/instructors/search?q=python"))
	assert.Equal(t, 1, doc.Find("#instructor-results .instructor-card").Length())
	assert.Contains(t, doc.Find(".result-count").Text(), `1 instructor matching "python"`)
	assert.Zero(t, doc.Find("nav").Length(), "fragment has no page shell")

	doc = parse(t, get(t, r, "/instructors/search?q=%3Cscript%3E"))
	assert.Equal(t, 1, doc.Find(".empty").Length())
	assert.Zero(t, doc.Find("script").Length())
}

func TestInstructorPage(t *testing.T) {
	r := newRouter(t)

	rec := get(t, r, "/instructors/ada-okafor")
	require.Equal(t, http.StatusOK, rec.Code)
	doc := parse(t, rec)
	assert.Equal(t, "Ada Okafor", doc.Find(".instructor-detail h1").Text())
	assert.Equal(t, 2, doc.Find(".social a").Length())
	assert.Equal(t, "Instructors", doc.Find(`nav a[aria-current="page"]`).Text())

	rec = get(t, r, "/instructors/nobody")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, 1, parse(t, rec).Find(".not-found").Length())
}

func TestListJSON(t *testing.T) {
	rec := get(t, newRouter(t), "/api/instructors?q=design")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var result models.SearchResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, "design", result.Query)
	require.Equal(t, 1, result.Total)
	assert.Equal(t, "jose-ramirez", result.Instructors[0].ID)
}

func TestGetJSON(t *testing.T) {
	r := newRouter(t)

	rec := get(t, r, "/api/instructors/mei-chen")
	require.Equal(t, http.StatusOK, rec.Code)
	var in models.Instructor
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &in))
	assert.Equal(t, "Mei Chen", in.Name)

	rec = get(t, r, "/api/instructors/nobody")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), core.ErrCodeNotFound)
}
