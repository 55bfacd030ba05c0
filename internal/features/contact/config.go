package contact

import (
	"fmt"
	"time"

	"learnhub/internal/core"
)

// Config represents contact form configuration
type Config struct {
	Enabled          bool
	OfficeAddress    string
	MapLatitude      float64
	MapLongitude     float64
	MapZoom          int
	RateLimitPerHour int
	IPHashSecret     string
	DispatchInterval time.Duration
	SMTP2GOAPIKey    string
	SMTP2GOSender    string
	Recipient        string
}

// NewConfig creates contact config from core config
func NewConfig(coreConfig *core.Config) *Config {
	c := coreConfig.Features.Contact
	return &Config{
		Enabled:          c.Enabled,
		OfficeAddress:    c.OfficeAddress,
		MapLatitude:      c.MapLatitude,
		MapLongitude:     c.MapLongitude,
		MapZoom:          c.MapZoom,
		RateLimitPerHour: c.RateLimitPerHour,
		IPHashSecret:     c.IPHashSecret,
		DispatchInterval: c.DispatchInterval,
		SMTP2GOAPIKey:    c.SMTP2GOAPIKey,
		SMTP2GOSender:    c.SMTP2GOSender,
		Recipient:        c.Recipient,
	}
}

// Validate validates the contact configuration
func (c *Config) Validate() error {
	if c.MapLatitude < -90 || c.MapLatitude > 90 || c.MapLongitude < -180 || c.MapLongitude > 180 {
		return fmt.Errorf("office coordinates out of range: %f,%f", c.MapLatitude, c.MapLongitude)
	}

	if c.MapZoom < 1 || c.MapZoom > 19 {
		return fmt.Errorf("map zoom must be between 1 and 19")
	}

	if c.RateLimitPerHour < 1 {
		return fmt.Errorf("rate limit must be at least 1 message per hour")
	}

	if c.DispatchInterval < 10*time.Second {
		return fmt.Errorf("dispatch interval must be at least 10s")
	}

	if c.SMTP2GOAPIKey != "" && c.Recipient == "" {
		return fmt.Errorf("a recipient is required when email delivery is configured")
	}

	return nil
}
