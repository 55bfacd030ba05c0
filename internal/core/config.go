package core

import (
	"fmt"
	"net/netip"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is prepended to every configuration environment variable,
// e.g. LEARNHUB_SERVER_PORT.
const EnvPrefix = "LEARNHUB"

// Config represents the main configuration for LearnHub
type Config struct {
	Server   ServerConfig   `json:"server"`
	Database DatabaseConfig `json:"database"`
	Log      LogConfig      `json:"log"`
	Features FeatureConfig  `json:"features"`
}

// ServerConfig contains server-related configuration
type ServerConfig struct {
	Port            int           `json:"port" default:"4000"`
	Host            string        `json:"host" default:"0.0.0.0"`
	AllowedOrigins  []string      `json:"allowed_origins" split_words:"true" default:"*"`
	TrustedProxies  []string      `json:"trusted_proxies" split_words:"true"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout" split_words:"true" default:"15s"`
}

// TrustedProxyPrefixes parses TrustedProxies. Entries are CIDR prefixes or
// single addresses.
func (c ServerConfig) TrustedProxyPrefixes() ([]netip.Prefix, error) {
	prefixes := make([]netip.Prefix, 0, len(c.TrustedProxies))
	for _, entry := range c.TrustedProxies {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		if prefix, err := netip.ParsePrefix(entry); err == nil {
			prefixes = append(prefixes, prefix.Masked())
			continue
		}
		addr, err := netip.ParseAddr(entry)
		if err != nil {
			return nil, fmt.Errorf("invalid trusted proxy %q", entry)
		}
		addr = addr.Unmap()
		prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return prefixes, nil
}

// DatabaseConfig contains database-related configuration
type DatabaseConfig struct {
	Path string `json:"path" default:"./learnhub.db"`
}

// LogConfig contains logging configuration
type LogConfig struct {
	Level  string `json:"level" default:"info"`
	Format string `json:"format" default:"text"`
}

// FeatureConfig contains feature-specific configuration
type FeatureConfig struct {
	Courses     CoursesConfig     `json:"courses"`
	Instructors InstructorsConfig `json:"instructors"`
	Contact     ContactConfig     `json:"contact"`
}

// CoursesConfig contains course carousel configuration
type CoursesConfig struct {
	Enabled         bool          `json:"enabled" default:"true"`
	APIBaseURL      string        `json:"api_base_url" envconfig:"API_BASE_URL" default:"http://localhost:8000/api/v1"`
	UserAgent       string        `json:"user_agent" split_words:"true" default:"LearnHub/1.0"`
	SessionTTL      time.Duration `json:"session_ttl" envconfig:"SESSION_TTL" default:"30m"`
	SessionCapacity int           `json:"session_capacity" split_words:"true" default:"1024"`
	Autoplay        bool          `json:"autoplay" default:"true"`
}

// InstructorsConfig contains instructor directory configuration
type InstructorsConfig struct {
	Enabled bool `json:"enabled" default:"true"`
}

// ContactConfig contains contact form and office map configuration
type ContactConfig struct {
	Enabled          bool          `json:"enabled" default:"true"`
	OfficeAddress    string        `json:"office_address" split_words:"true" default:"12 Learning Lane, Dublin"`
	MapLatitude      float64       `json:"map_latitude" split_words:"true" default:"53.3498"`
	MapLongitude     float64       `json:"map_longitude" split_words:"true" default:"-6.2603"`
	MapZoom          int           `json:"map_zoom" split_words:"true" default:"15"`
	RateLimitPerHour int           `json:"rate_limit_per_hour" split_words:"true" default:"5"`
	IPHashSecret     string        `json:"-" envconfig:"IP_HASH_SECRET" default:"learnhub-contact"`
	DispatchInterval time.Duration `json:"dispatch_interval" split_words:"true" default:"1m"`
	SMTP2GOAPIKey    string        `json:"-" envconfig:"SMTP2GO_API_KEY"`
	SMTP2GOSender    string        `json:"smtp2go_sender" envconfig:"SMTP2GO_SENDER" default:"LearnHub <hello@learnhub.dev>"`
	Recipient        string        `json:"recipient" default:"hello@learnhub.dev"`
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	var config Config
	if err := envconfig.Process(EnvPrefix, &config); err != nil {
		return nil, NewConfigurationError("failed to read environment", err)
	}

	// Validate required configuration
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}

	if _, err := c.Server.TrustedProxyPrefixes(); err != nil {
		return err
	}

	if c.Database.Path == "" {
		return fmt.Errorf("database path is required")
	}

	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format: %q", c.Log.Format)
	}

	if c.Features.Courses.Enabled {
		u, err := url.Parse(c.Features.Courses.APIBaseURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("courses API base URL must be an absolute http(s) URL, got %q", c.Features.Courses.APIBaseURL)
		}
		if c.Features.Courses.SessionCapacity < 1 {
			return fmt.Errorf("courses session capacity must be positive")
		}
	}

	if c.Features.Contact.Enabled {
		contact := c.Features.Contact
		if contact.MapZoom < 1 || contact.MapZoom > 19 {
			return fmt.Errorf("map zoom must be between 1 and 19")
		}
		if contact.RateLimitPerHour < 1 {
			return fmt.Errorf("contact rate limit must be at least 1 per hour")
		}
		// blake2b keys are limited to 64 bytes
		if len(contact.IPHashSecret) > 64 {
			return fmt.Errorf("IP hash secret must be at most 64 bytes")
		}
	}

	return nil
}

// GetFeatureConfig returns configuration for a specific feature
func (c *Config) GetFeatureConfig(featureName string) interface{} {
	switch strings.ToLower(featureName) {
	case "courses":
		return c.Features.Courses
	case "instructors":
		return c.Features.Instructors
	case "contact":
		return c.Features.Contact
	default:
		return nil
	}
}

// IsFeatureEnabled checks if a feature is enabled
func (c *Config) IsFeatureEnabled(featureName string) bool {
	switch strings.ToLower(featureName) {
	case "courses":
		return c.Features.Courses.Enabled
	case "instructors":
		return c.Features.Instructors.Enabled
	case "contact":
		return c.Features.Contact.Enabled
	default:
		return false
	}
}
