package config

import (
	"time"
)

// Config is the root application configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	Musing   MusingConfig   `yaml:"musing"`
	Slug     SlugConfig     `yaml:"slug"`
	Tool     ToolConfig     `yaml:"tool"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// MusingConfig holds idea musing scheduler settings.
type MusingConfig struct {
	// ExclusionWindowDays is the rolling shown-history window in calendar
	// days. 2 means a seed shown today or yesterday yields no candidates.
	ExclusionWindowDays int `yaml:"exclusion_window_days" env:"MUSING_EXCLUSION_WINDOW_DAYS" env-default:"2"`
	// MaxCandidates caps how many musings one NextCandidates call returns.
	MaxCandidates int `yaml:"max_candidates" env:"MUSING_MAX_CANDIDATES" env-default:"10"`
	// Timezone sets the calendar used for day-granularity comparisons.
	Timezone string `yaml:"timezone" env:"MUSING_TIMEZONE" env-default:"UTC"`
}

// SlugConfig holds slug generation settings.
type SlugConfig struct {
	// MaxAttempts bounds the collision counter before generation fails
	// loudly instead of looping forever.
	MaxAttempts int `yaml:"max_attempts" env:"SLUG_MAX_ATTEMPTS" env-default:"100"`
}

// ToolConfig holds automation tool execution settings.
type ToolConfig struct {
	DefaultTimeout time.Duration `yaml:"default_timeout" env:"TOOL_DEFAULT_TIMEOUT" env-default:"30s"`
	MaxTimeout     time.Duration `yaml:"max_timeout"     env:"TOOL_MAX_TIMEOUT"     env-default:"5m"`
	MaxRedirects   int           `yaml:"max_redirects"   env:"TOOL_MAX_REDIRECTS"   env-default:"5"`
}
