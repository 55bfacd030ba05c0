package contact

import (
	"context"
	"fmt"

	"learnhub/internal/core"
	"learnhub/internal/features/contact/handlers"
	"learnhub/internal/features/contact/migrations"
	"learnhub/internal/features/contact/models"
	"learnhub/internal/features/contact/services"
	"learnhub/internal/server/services/mailer"
)

// Feature represents the contact form feature
type Feature struct {
	*core.BaseFeature
	config       *Config
	migrationMgr *migrations.Manager
	store        *services.MessageStore
	service      *services.ContactService
	mailer       *mailer.Mailer
	dispatcher   *services.Dispatcher
	handlers     *handlers.Handlers
	cancel       context.CancelFunc
}

// NewFeature creates a new contact feature. Extra mailer options are used
// by tests to point delivery at a fake endpoint.
func NewFeature(logger *core.Logger, db *core.Database, config *Config, mailerOpts ...mailer.Option) (*Feature, error) {
	featureLogger := logger.ForFeature("contact")

	hasher, err := services.NewIPHasher(config.IPHashSecret)
	if err != nil {
		return nil, core.NewConfigurationError("invalid contact configuration", err)
	}

	store := services.NewMessageStore(db, featureLogger)
	service := services.NewContactService(store, hasher, config.RateLimitPerHour, featureLogger)
	m := mailer.New(config.SMTP2GOAPIKey, config.SMTP2GOSender, featureLogger, mailerOpts...)
	office := services.NewOfficeMap(config.OfficeAddress, config.MapLatitude, config.MapLongitude, config.MapZoom)

	return &Feature{
		BaseFeature:  core.NewBaseFeature("contact", "Contact Form", config.Enabled, logger, db),
		config:       config,
		migrationMgr: migrations.NewManager(db, featureLogger),
		store:        store,
		service:      service,
		mailer:       m,
		dispatcher:   services.NewDispatcher(store, m, config.Recipient, config.DispatchInterval, featureLogger),
		handlers:     handlers.NewHandlers(featureLogger, service, office),
	}, nil
}

// Init runs migrations and starts delivery when a mailer is configured
func (f *Feature) Init(ctx context.Context) error {
	if err := f.BaseFeature.Init(ctx); err != nil {
		return err
	}

	if err := f.config.Validate(); err != nil {
		return err
	}

	if err := f.migrationMgr.Migrate(ctx); err != nil {
		return err
	}

	if !f.mailer.Configured() {
		f.Logger().Warn("No SMTP2GO API key set, contact messages are stored but not emailed")
		return nil
	}

	// The dispatcher outlives Init's context
	runCtx, cancel := context.WithCancel(context.Background())
	if err := f.dispatcher.Start(runCtx); err != nil {
		cancel()
		return fmt.Errorf("failed to start contact dispatcher: %w", err)
	}
	f.cancel = cancel

	f.Logger().Info("Contact feature initialized", "recipient", f.config.Recipient)
	return nil
}

// Routes returns the HTTP routes for the contact feature
func (f *Feature) Routes() []core.Route {
	return []core.Route{
		{Method: "GET", Path: "/contact", Handler: f.handlers.ContactPage},
		{Method: "POST", Path: "/contact", Handler: f.handlers.Submit},
	}
}

// Shutdown stops message delivery
func (f *Feature) Shutdown(ctx context.Context) error {
	if f.cancel != nil {
		f.cancel()
		f.dispatcher.Stop()
		f.cancel = nil
	}
	return f.BaseFeature.Shutdown(ctx)
}

// Health reports the outbox backlog and whether messages are emailed
func (f *Feature) Health(ctx context.Context) core.Health {
	details := map[string]any{"email_delivery": f.mailer.Configured()}

	pending, err := f.store.CountByStatus(ctx, models.StatusPending)
	if err != nil {
		return core.Degraded(err, details)
	}
	failed, err := f.store.CountByStatus(ctx, models.StatusFailed)
	if err != nil {
		return core.Degraded(err, details)
	}

	details["pending"] = pending
	details["failed"] = failed
	return core.Health{Status: core.HealthOK, Details: details}
}

// Store returns the contact message store
func (f *Feature) Store() *services.MessageStore {
	return f.store
}

// Dispatcher returns the outbox dispatcher
func (f *Feature) Dispatcher() *services.Dispatcher {
	return f.dispatcher
}
