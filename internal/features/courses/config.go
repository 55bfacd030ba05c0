package courses

import (
	"fmt"
	"net/url"
	"time"

	"learnhub/internal/core"
)

// Config represents course carousel configuration
type Config struct {
	Enabled         bool
	APIBaseURL      string
	UserAgent       string
	SessionTTL      time.Duration
	SessionCapacity int
	Autoplay        bool
}

// NewConfig creates courses config from core config
func NewConfig(coreConfig *core.Config) *Config {
	c := coreConfig.Features.Courses
	return &Config{
		Enabled:         c.Enabled,
		APIBaseURL:      c.APIBaseURL,
		UserAgent:       c.UserAgent,
		SessionTTL:      c.SessionTTL,
		SessionCapacity: c.SessionCapacity,
		Autoplay:        c.Autoplay,
	}
}

// Validate validates the courses configuration
func (c *Config) Validate() error {
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || u.Host == "" {
		return fmt.Errorf("invalid course API base URL %q", c.APIBaseURL)
	}

	if c.SessionTTL < time.Minute || c.SessionTTL > 24*time.Hour {
		return fmt.Errorf("session TTL must be between 1m and 24h")
	}

	if c.SessionCapacity < 1 {
		return fmt.Errorf("session capacity must be at least 1")
	}

	return nil
}
