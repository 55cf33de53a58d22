package config

import (
	"testing"
	"time"
)

func validConfig() Config {
	return Config{
		Database: DatabaseConfig{DSN: "postgres://u:p@localhost:5432/seedlog"},
		Log:      LogConfig{Level: "info", Format: "json"},
		Musing:   MusingConfig{ExclusionWindowDays: 2, MaxCandidates: 10, Timezone: "UTC"},
		Slug:     SlugConfig{MaxAttempts: 100},
		Tool: ToolConfig{
			DefaultTimeout: 30 * time.Second,
			MaxTimeout:     5 * time.Minute,
			MaxRedirects:   5,
		},
	}
}

func TestValidate_OK(t *testing.T) {
	t.Parallel()

	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_Failures(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero exclusion window", func(c *Config) { c.Musing.ExclusionWindowDays = 0 }},
		{"zero max candidates", func(c *Config) { c.Musing.MaxCandidates = 0 }},
		{"bad timezone", func(c *Config) { c.Musing.Timezone = "Mars/Olympus_Mons" }},
		{"zero slug attempts", func(c *Config) { c.Slug.MaxAttempts = 0 }},
		{"negative default timeout", func(c *Config) { c.Tool.DefaultTimeout = -time.Second }},
		{"zero max timeout", func(c *Config) { c.Tool.MaxTimeout = 0 }},
		{"default above max", func(c *Config) {
			c.Tool.DefaultTimeout = 10 * time.Minute
			c.Tool.MaxTimeout = 5 * time.Minute
		}},
		{"negative redirects", func(c *Config) { c.Tool.MaxRedirects = -1 }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			cfg := validConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error, got nil")
			}
		})
	}
}
