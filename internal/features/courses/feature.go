package courses

import (
	"context"
	"net/http"

	"learnhub/internal/core"
	"learnhub/internal/features/courses/carousel"
	"learnhub/internal/features/courses/handlers"
	"learnhub/internal/features/courses/models"
	"learnhub/internal/features/courses/services"
	"learnhub/internal/features/courses/sessions"
)

// Feature represents the course carousel feature
type Feature struct {
	*core.BaseFeature
	config   *Config
	client   *services.SummaryClient
	store    *sessions.Store
	handlers *handlers.Handlers
}

// NewFeature creates a new courses feature. httpClient may be nil.
func NewFeature(logger *core.Logger, config *Config, httpClient *http.Client) (*Feature, error) {
	featureLogger := logger.ForFeature("courses")

	client, err := services.NewSummaryClient(featureLogger, &models.FetcherConfig{
		BaseURL:   config.APIBaseURL,
		UserAgent: config.UserAgent,
	}, httpClient)
	if err != nil {
		return nil, err
	}

	store := sessions.NewStore(client, sessions.Options{
		Capacity: config.SessionCapacity,
		TTL:      config.SessionTTL,
		Autoplay: config.Autoplay,
		Interval: carousel.AutoAdvanceInterval,
	}, featureLogger)

	return &Feature{
		BaseFeature: core.NewBaseFeature("courses", "Course Carousel", config.Enabled, logger, nil),
		config:      config,
		client:      client,
		store:       store,
		handlers:    handlers.NewHandlers(featureLogger, store),
	}, nil
}

// Init initializes the courses feature
func (f *Feature) Init(ctx context.Context) error {
	if err := f.BaseFeature.Init(ctx); err != nil {
		return err
	}

	if err := f.config.Validate(); err != nil {
		return err
	}

	f.Logger().Info("Courses feature initialized", "api", f.config.APIBaseURL, "autoplay", f.config.Autoplay)
	return nil
}

// Routes returns the HTTP routes for the courses feature
func (f *Feature) Routes() []core.Route {
	return []core.Route{
		// Web interface
		{Method: "GET", Path: "/courses", Handler: f.handlers.CoursesPage},

		// Carousel fragments
		{Method: "GET", Path: "/courses/carousel", Handler: f.handlers.Carousel},
		{Method: "POST", Path: "/courses/carousel/next", Handler: f.handlers.Next},
		{Method: "POST", Path: "/courses/carousel/prev", Handler: f.handlers.Prev},
		{Method: "POST", Path: "/courses/carousel/swipe", Handler: f.handlers.Swipe},
		{Method: "POST", Path: "/courses/carousel/hover", Handler: f.handlers.Hover},
		{Method: "POST", Path: "/courses/carousel/resize", Handler: f.handlers.Resize},
		{Method: "POST", Path: "/courses/carousel/retry", Handler: f.handlers.Retry},

		// API
		{Method: "GET", Path: "/api/courses/carousel", Handler: f.handlers.SnapshotJSON},
	}
}

// Shutdown ends every carousel session
func (f *Feature) Shutdown(ctx context.Context) error {
	f.Logger().Info("Closing carousel sessions", "sessions", f.store.Len())
	f.store.Close()
	return f.BaseFeature.Shutdown(ctx)
}

// Health reports the number of live carousel sessions
func (f *Feature) Health(ctx context.Context) core.Health {
	return core.Health{
		Status: core.HealthOK,
		Details: map[string]any{
			"sessions": f.store.Len(),
			"autoplay": f.config.Autoplay,
		},
	}
}

// Store returns the carousel session store
func (f *Feature) Store() *sessions.Store {
	return f.store
}
