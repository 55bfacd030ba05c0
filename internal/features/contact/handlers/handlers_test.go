package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"learnhub/internal/core"
	"learnhub/internal/features/contact/migrations"
	"learnhub/internal/features/contact/models"
	"learnhub/internal/features/contact/services"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	router http.Handler
	store  *services.MessageStore
}

func newHarness(t *testing.T, limit int) *harness {
	t.Helper()
	logger := core.NewNopLogger()
	db, err := core.OpenDatabase(":memory:", logger)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, migrations.NewManager(db, logger).Migrate(context.Background()))

	hasher, err := services.NewIPHasher("test-secret")
	require.NoError(t, err)

	store := services.NewMessageStore(db, logger)
	service := services.NewContactService(store, hasher, limit, logger)
	office := services.NewOfficeMap("12 Learning Lane, Dublin", 53.3498, -6.2603, 15)

	h := NewHandlers(logger, service, office)
	r := chi.NewRouter()
	r.Get("/contact", h.ContactPage)
	r.Post("/contact", h.Submit)
	return &harness{router: r, store: store}
}

func (hs *harness) post(t *testing.T, form url.Values, htmx bool) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.RemoteAddr = "198.51.100.4:6000"
	if htmx {
		req.Header.Set("HX-Request", "true")
	}
	rec := httptest.NewRecorder()
	hs.router.ServeHTTP(rec, req)
	return rec
}

func parse(t *testing.T, rec *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(rec.Body)
	require.NoError(t, err)
	return doc
}

func validValues() url.Values {
	return url.Values{
		"name":    {"Ada Okafor"},
		"email":   {"ada@example.com"},
		"subject": {"Team licences"},
		"message": {"Do you offer discounts for teams of twenty?"},
	}
}

func TestContactPage(t *testing.T) {
	hs := newHarness(t, 5)
	rec := httptest.NewRecorder()
	hs.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/contact", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	doc := parse(t, rec)
	assert.Equal(t, 1, doc.Find("form#contact-form").Length())
	assert.Contains(t, doc.Find(".office-map img").AttrOr("src", ""), "staticmap.openstreetmap.de")
	assert.Equal(t, "Contact", doc.Find(`nav a[aria-current="page"]`).Text())
}

func TestSubmitAccepted(t *testing.T) {
	hs := newHarness(t, 5)

	rec := hs.post(t, validValues(), true)
	require.Equal(t, http.StatusOK, rec.Code)

	doc := parse(t, rec)
	assert.Equal(t, 1, doc.Find(".contact-success").Length())
	assert.Zero(t, doc.Find("nav").Length(), "HTMX gets the fragment only")

	pending, err := hs.store.Pending(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "ada@example.com", pending[0].Email)
	assert.Equal(t, models.StatusPending, pending[0].Status)
}

func TestSubmitInvalid(t *testing.T) {
	hs := newHarness(t, 5)

	values := validValues()
	values.Set("email", "nope")
	values.Set("message", "hi")

	rec := hs.post(t, values, true)
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	doc := parse(t, rec)
	assert.Equal(t, "Please enter a valid email address.", doc.Find("#contact-email-error").Text())
	assert.Equal(t, "Your message must be at least 10 characters.", doc.Find("#contact-message-error").Text())
	assert.Equal(t, "Ada Okafor", doc.Find("input[name=name]").AttrOr("value", ""), "values are kept")

	pending, err := hs.store.Pending(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestSubmitRateLimited(t *testing.T) {
	hs := newHarness(t, 1)

	require.Equal(t, http.StatusOK, hs.post(t, validValues(), true).Code)

	rec := hs.post(t, validValues(), true)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	doc := parse(t, rec)
	assert.Contains(t, doc.Find(".form-notice").Text(), "Please try again later")
}

func TestSubmitWithoutHTMX(t *testing.T) {
	hs := newHarness(t, 5)

	rec := hs.post(t, validValues(), false)
	require.Equal(t, http.StatusOK, rec.Code)

	doc := parse(t, rec)
	assert.Equal(t, 1, doc.Find("nav").Length(), "plain posts get the full page")
	assert.Equal(t, 1, doc.Find(".contact-success").Length())
	assert.Equal(t, 1, doc.Find(".office-map").Length())
}
