package core

import (
	"context"
	"net/http"
)

// Feature represents a modular section of the LearnHub site
type Feature interface {
	// Name returns the unique name of the feature
	Name() string

	// Description returns a human-readable description
	Description() string

	// Enabled returns whether this feature is enabled
	Enabled() bool

	// Init initializes the feature
	Init(ctx context.Context) error

	// Routes returns the HTTP routes for this feature
	Routes() []Route

	// Shutdown gracefully shuts down the feature
	Shutdown(ctx context.Context) error

	// Health reports the feature's runtime state for /health
	Health(ctx context.Context) Health
}

// Health states reported by features
const (
	HealthOK       = "ok"
	HealthDegraded = "degraded"
)

// Health is a feature's self-reported state. Details carries whatever
// counters the feature wants operators to see.
type Health struct {
	Status  string         `json:"status"`
	Details map[string]any `json:"details,omitempty"`
	Error   string         `json:"error,omitempty"`
}

// OK reports whether the feature is serving normally
func (h Health) OK() bool {
	return h.Status == HealthOK
}

// Degraded builds a Health for a failing check
func Degraded(err error, details map[string]any) Health {
	h := Health{Status: HealthDegraded, Details: details}
	if err != nil {
		h.Error = err.Error()
	}
	return h
}

// Route represents an HTTP route for a feature
type Route struct {
	Method  string
	Path    string
	Handler http.HandlerFunc
}

// BaseFeature provides common functionality for all features
type BaseFeature struct {
	name        string
	description string
	enabled     bool
	logger      *Logger
	db          *Database
}

// NewBaseFeature creates a new base feature. db may be nil for features
// that keep no state.
func NewBaseFeature(name, description string, enabled bool, logger *Logger, db *Database) *BaseFeature {
	return &BaseFeature{
		name:        name,
		description: description,
		enabled:     enabled,
		logger:      logger,
		db:          db,
	}
}

// Name returns the feature name
func (f *BaseFeature) Name() string {
	return f.name
}

// Description returns the feature description
func (f *BaseFeature) Description() string {
	return f.description
}

// Enabled returns whether the feature is enabled
func (f *BaseFeature) Enabled() bool {
	return f.enabled
}

// Logger returns the feature-specific logger
func (f *BaseFeature) Logger() *Logger {
	return f.logger.ForFeature(f.name)
}

// DB returns the database connection
func (f *BaseFeature) DB() *Database {
	return f.db
}

// Default implementations for optional methods
func (f *BaseFeature) Init(ctx context.Context) error {
	f.Logger().Info("Initializing feature", "name", f.name)
	return nil
}

func (f *BaseFeature) Routes() []Route {
	return []Route{}
}

func (f *BaseFeature) Shutdown(ctx context.Context) error {
	f.Logger().Info("Shutting down feature", "name", f.name)
	return nil
}

// Health pings the feature's database when it has one
func (f *BaseFeature) Health(ctx context.Context) Health {
	if f.db == nil {
		return Health{Status: HealthOK}
	}
	if err := f.db.PingContext(ctx); err != nil {
		return Degraded(err, nil)
	}
	return Health{Status: HealthOK}
}
