package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/netip"
	"strings"
	"time"

	"learnhub/internal/core"
	"learnhub/internal/features/contact"
	"learnhub/internal/features/courses"
	"learnhub/internal/features/instructors"
	"learnhub/internal/server/handlers"
	"learnhub/internal/server/services/mailer"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
)

type Server struct {
	config   *core.Config
	logger   *core.Logger
	db       *core.Database
	registry *core.Registry
	router   chi.Router
	server   *http.Server
	proxies  []netip.Prefix
}

// Option customises how the server builds its features
type Option func(*options)

type options struct {
	courseClient *http.Client
	mailerOpts   []mailer.Option
}

// WithCourseClient sets the HTTP client used for the course summary API
func WithCourseClient(client *http.Client) Option {
	return func(o *options) { o.courseClient = client }
}

// WithMailerOptions passes options to the contact mailer
func WithMailerOptions(opts ...mailer.Option) Option {
	return func(o *options) { o.mailerOpts = append(o.mailerOpts, opts...) }
}

// New opens the database, registers and initialises the enabled features
// and builds the router
func New(ctx context.Context, config *core.Config, logger *core.Logger, opts ...Option) (*Server, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	proxies, err := config.Server.TrustedProxyPrefixes()
	if err != nil {
		return nil, core.NewConfigurationError("invalid server configuration", err)
	}

	db, err := core.OpenDatabase(config.Database.Path, logger)
	if err != nil {
		return nil, err
	}

	srv := &Server{
		config:   config,
		logger:   logger,
		db:       db,
		registry: core.NewRegistry(logger),
		proxies:  proxies,
	}

	if err := srv.registerFeatures(o); err != nil {
		db.Close()
		return nil, err
	}

	if err := srv.registry.InitAll(ctx); err != nil {
		srv.registry.ShutdownAll(ctx)
		db.Close()
		return nil, err
	}

	srv.setupRoutes()
	return srv, nil
}

func (s *Server) registerFeatures(o options) error {
	if s.config.IsFeatureEnabled("courses") {
		feature, err := courses.NewFeature(s.logger, courses.NewConfig(s.config), o.courseClient)
		if err != nil {
			return fmt.Errorf("failed to create courses feature: %w", err)
		}
		if err := s.registry.Register(feature); err != nil {
			return err
		}
	}

	if s.config.IsFeatureEnabled("instructors") {
		feature, err := instructors.NewFeature(s.logger, s.config.Features.Instructors)
		if err != nil {
			return fmt.Errorf("failed to create instructors feature: %w", err)
		}
		if err := s.registry.Register(feature); err != nil {
			return err
		}
	}

	if s.config.IsFeatureEnabled("contact") {
		feature, err := contact.NewFeature(s.logger, s.db, contact.NewConfig(s.config), o.mailerOpts...)
		if err != nil {
			return fmt.Errorf("failed to create contact feature: %w", err)
		}
		if err := s.registry.Register(feature); err != nil {
			return err
		}
	}

	return nil
}

func (s *Server) setupRoutes() {
	portalHandler := handlers.NewPortalHandler(s.logger, s.registry, s.db)

	// Create router
	mux := chi.NewRouter()

	// Add middleware
	mux.Use(middleware.Recoverer)
	mux.Use(middleware.RequestID)
	mux.Use(TrustedRealIP(s.proxies))
	mux.Use(middleware.Logger)

	c := cors.New(cors.Options{
		AllowedOrigins: s.config.Server.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	})

	mux.Get("/", portalHandler.HomeHandler)
	mux.Get("/health", portalHandler.HealthCheckHandler)
	mux.Get("/assets/*", handlers.StaticHandler)

	// Feature routes; JSON endpoints are open to other origins
	for _, route := range s.registry.GetAllRoutes() {
		if strings.HasPrefix(route.Path, "/api/") {
			mux.With(c.Handler).Method(route.Method, route.Path, route.Handler)
			mux.With(c.Handler).Options(route.Path, func(w http.ResponseWriter, r *http.Request) {})
			continue
		}
		mux.Method(route.Method, route.Path, route.Handler)
	}

	mux.NotFound(portalHandler.NotFoundHandler)

	s.router = mux
	s.server = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port),
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       time.Minute,
	}
}

// Handler returns the site's router
func (s *Server) Handler() http.Handler {
	return s.router
}

// Registry returns the feature registry
func (s *Server) Registry() *core.Registry {
	return s.registry
}

// Start serves HTTP until Shutdown is called
func (s *Server) Start() error {
	s.logger.Info("Starting server", "host", s.config.Server.Host, "port", s.config.Server.Port)

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains HTTP connections, stops the features and closes the
// database
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")

	var errs []error
	if err := s.server.Shutdown(ctx); err != nil {
		errs = append(errs, fmt.Errorf("failed to shutdown HTTP server: %w", err))
	}

	// Shutdown all features once no request can reach them
	if err := s.registry.ShutdownAll(ctx); err != nil {
		s.logger.Error("Failed to shutdown features", "error", err)
	}

	if err := s.db.Close(); err != nil {
		errs = append(errs, fmt.Errorf("failed to close database: %w", err))
	}

	return errors.Join(errs...)
}
