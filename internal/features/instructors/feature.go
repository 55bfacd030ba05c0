package instructors

import (
	"context"
	"errors"

	"learnhub/internal/core"
	"learnhub/internal/features/instructors/data"
	"learnhub/internal/features/instructors/handlers"
	"learnhub/internal/features/instructors/services"
)

// Feature represents the instructor directory feature
type Feature struct {
	*core.BaseFeature
	directory *services.Directory
	handlers  *handlers.Handlers
}

// NewFeature creates the instructor directory from the bundled data set
func NewFeature(logger *core.Logger, config core.InstructorsConfig) (*Feature, error) {
	featureLogger := logger.ForFeature("instructors")

	directory, err := services.NewDirectory(featureLogger, data.InstructorsJSON)
	if err != nil {
		return nil, core.NewFeatureError("instructors", "failed to load directory", err)
	}

	return &Feature{
		BaseFeature: core.NewBaseFeature("instructors", "Instructor Directory", config.Enabled, logger, nil),
		directory:   directory,
		handlers:    handlers.NewHandlers(featureLogger, directory),
	}, nil
}

// Init initializes the instructor directory feature
func (f *Feature) Init(ctx context.Context) error {
	if err := f.BaseFeature.Init(ctx); err != nil {
		return err
	}

	f.Logger().Info("Instructor directory ready", "instructors", f.directory.Len())
	return nil
}

// Routes returns the HTTP routes for the instructor directory
func (f *Feature) Routes() []core.Route {
	return []core.Route{
		// Web interface
		{Method: "GET", Path: "/instructors", Handler: f.handlers.DirectoryPage},
		{Method: "GET", Path: "/instructors/search", Handler: f.handlers.SearchFragment},
		{Method: "GET", Path: "/instructors/{id}", Handler: f.handlers.InstructorPage},

		// API
		{Method: "GET", Path: "/api/instructors", Handler: f.handlers.ListJSON},
		{Method: "GET", Path: "/api/instructors/{id}", Handler: f.handlers.GetJSON},
	}
}

// Health reports the directory size. An empty directory is degraded.
func (f *Feature) Health(ctx context.Context) core.Health {
	n := f.directory.Len()
	details := map[string]any{"instructors": n}
	if n == 0 {
		return core.Degraded(errors.New("instructor directory is empty"), details)
	}
	return core.Health{Status: core.HealthOK, Details: details}
}

// Directory returns the instructor directory
func (f *Feature) Directory() *services.Directory {
	return f.directory
}
