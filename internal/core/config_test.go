package core

import (
	"net/netip"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 4000, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Empty(t, cfg.Server.TrustedProxies)
	assert.Equal(t, 15*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "./learnhub.db", cfg.Database.Path)
	assert.Equal(t, "http://localhost:8000/api/v1", cfg.Features.Courses.APIBaseURL)
	assert.Equal(t, 30*time.Minute, cfg.Features.Courses.SessionTTL)
	assert.True(t, cfg.Features.Instructors.Enabled)
	assert.Equal(t, 15, cfg.Features.Contact.MapZoom)
	assert.Equal(t, 5, cfg.Features.Contact.RateLimitPerHour)
	assert.Equal(t, time.Minute, cfg.Features.Contact.DispatchInterval)
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("LEARNHUB_SERVER_PORT", "8081")
	t.Setenv("LEARNHUB_SERVER_ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("LEARNHUB_FEATURES_COURSES_API_BASE_URL", "https://api.example.com/v2")
	t.Setenv("LEARNHUB_FEATURES_CONTACT_ENABLED", "false")
	t.Setenv("LEARNHUB_LOG_FORMAT", "json")
	t.Setenv("LEARNHUB_SERVER_TRUSTED_PROXIES", "10.0.0.0/8,192.0.2.10")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.Server.Port)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "https://api.example.com/v2", cfg.Features.Courses.APIBaseURL)
	assert.False(t, cfg.IsFeatureEnabled("contact"))
	assert.True(t, cfg.IsFeatureEnabled("Courses"))
	assert.False(t, cfg.IsFeatureEnabled("unknown"))
	assert.Equal(t, "json", cfg.Log.Format)

	prefixes, err := cfg.Server.TrustedProxyPrefixes()
	require.NoError(t, err)
	assert.Equal(t, []netip.Prefix{
		netip.MustParsePrefix("10.0.0.0/8"),
		netip.MustParsePrefix("192.0.2.10/32"),
	}, prefixes)
}

func TestConfigValidate(t *testing.T) {
	valid := func() *Config {
		cfg, err := LoadConfig()
		require.NoError(t, err)
		return cfg
	}

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"port out of range", func(c *Config) { c.Server.Port = 70000 }},
		{"empty database path", func(c *Config) { c.Database.Path = "" }},
		{"bad trusted proxy", func(c *Config) { c.Server.TrustedProxies = []string{"proxy.internal"} }},
		{"unknown log format", func(c *Config) { c.Log.Format = "xml" }},
		{"relative api url", func(c *Config) { c.Features.Courses.APIBaseURL = "/api" }},
		{"ftp api url", func(c *Config) { c.Features.Courses.APIBaseURL = "ftp://example.com" }},
		{"zero session capacity", func(c *Config) { c.Features.Courses.SessionCapacity = 0 }},
		{"map zoom too high", func(c *Config) { c.Features.Contact.MapZoom = 20 }},
		{"rate limit zero", func(c *Config) { c.Features.Contact.RateLimitPerHour = 0 }},
		{"long hash secret", func(c *Config) {
			c.Features.Contact.IPHashSecret = string(make([]byte, 65))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}

	t.Run("disabled features are not validated", func(t *testing.T) {
		cfg := valid()
		cfg.Features.Courses.Enabled = false
		cfg.Features.Courses.APIBaseURL = "not a url"
		assert.NoError(t, cfg.Validate())
	})
}

func TestGetFeatureConfig(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	courses, ok := cfg.GetFeatureConfig("courses").(CoursesConfig)
	require.True(t, ok)
	assert.Equal(t, cfg.Features.Courses.APIBaseURL, courses.APIBaseURL)
	assert.Nil(t, cfg.GetFeatureConfig("rss"))
}
