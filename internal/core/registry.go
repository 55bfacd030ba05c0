package core

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// Registry manages all features of the site. Features are initialised in
// registration order and shut down in reverse order.
type Registry struct {
	features []Feature
	byName   map[string]Feature
	mutex    sync.RWMutex
	logger   *Logger
}

// NewRegistry creates a new feature registry
func NewRegistry(logger *Logger) *Registry {
	return &Registry{
		byName: make(map[string]Feature),
		logger: logger,
	}
}

// Register adds a feature to the registry
func (r *Registry) Register(feature Feature) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	name := feature.Name()
	if _, exists := r.byName[name]; exists {
		return fmt.Errorf("feature %s already registered", name)
	}

	r.features = append(r.features, feature)
	r.byName[name] = feature
	r.logger.Info("Registered feature", "name", name, "enabled", feature.Enabled())
	return nil
}

// Get retrieves a feature by name
func (r *Registry) Get(name string) (Feature, bool) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	feature, exists := r.byName[name]
	return feature, exists
}

// List returns all registered features in registration order
func (r *Registry) List() []Feature {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	features := make([]Feature, len(r.features))
	copy(features, r.features)
	return features
}

// ListEnabled returns only enabled features
func (r *Registry) ListEnabled() []Feature {
	enabledFeatures := make([]Feature, 0)
	for _, feature := range r.List() {
		if feature.Enabled() {
			enabledFeatures = append(enabledFeatures, feature)
		}
	}
	return enabledFeatures
}

// InitAll initializes all enabled features
func (r *Registry) InitAll(ctx context.Context) error {
	features := r.ListEnabled()
	r.logger.Info("Initializing features", "count", len(features))

	for _, feature := range features {
		if err := feature.Init(ctx); err != nil {
			return NewFeatureError(feature.Name(), "failed to initialize", err)
		}
		r.logger.Info("Initialized feature", "name", feature.Name())
	}

	return nil
}

// ShutdownAll gracefully shuts down all features. Every feature is given a
// chance to shut down; the returned error joins all failures.
func (r *Registry) ShutdownAll(ctx context.Context) error {
	features := r.ListEnabled()
	r.logger.Info("Shutting down features", "count", len(features))

	var errs []error
	for i := len(features) - 1; i >= 0; i-- {
		feature := features[i]
		if err := feature.Shutdown(ctx); err != nil {
			r.logger.Error("Failed to shutdown feature", "name", feature.Name(), "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", feature.Name(), err))
			continue
		}
		r.logger.Info("Shutdown feature", "name", feature.Name())
	}

	return errors.Join(errs...)
}

// GetAllRoutes returns all routes from enabled features
func (r *Registry) GetAllRoutes() []Route {
	var allRoutes []Route
	for _, feature := range r.ListEnabled() {
		allRoutes = append(allRoutes, feature.Routes()...)
	}
	return allRoutes
}

// GetFeatureStatus returns the status of all features. Enabled features
// are asked for their health.
func (r *Registry) GetFeatureStatus(ctx context.Context) map[string]FeatureStatus {
	status := make(map[string]FeatureStatus)
	for _, feature := range r.List() {
		fs := FeatureStatus{
			Name:        feature.Name(),
			Description: feature.Description(),
			Enabled:     feature.Enabled(),
		}
		if feature.Enabled() {
			health := feature.Health(ctx)
			if !health.OK() {
				r.logger.Warn("Feature reports degraded health", "name", feature.Name(), "error", health.Error)
			}
			fs.Health = &health
		}
		status[feature.Name()] = fs
	}
	return status
}

// FeatureStatus represents the status of a feature
type FeatureStatus struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Enabled     bool    `json:"enabled"`
	Health      *Health `json:"health,omitempty"`
}

// Healthy reports whether every enabled feature in status is healthy
func Healthy(status map[string]FeatureStatus) bool {
	for _, fs := range status {
		if fs.Health != nil && !fs.Health.OK() {
			return false
		}
	}
	return true
}
