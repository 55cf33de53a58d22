package config

import (
	"fmt"
	"time"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Musing.validate(); err != nil {
		return fmt.Errorf("musing: %w", err)
	}
	if err := c.Slug.validate(); err != nil {
		return fmt.Errorf("slug: %w", err)
	}
	if err := c.Tool.validate(); err != nil {
		return fmt.Errorf("tool: %w", err)
	}
	return nil
}

func (m *MusingConfig) validate() error {
	if m.ExclusionWindowDays < 1 {
		return fmt.Errorf("exclusion_window_days must be >= 1 (got %d)", m.ExclusionWindowDays)
	}
	if m.MaxCandidates < 1 {
		return fmt.Errorf("max_candidates must be >= 1 (got %d)", m.MaxCandidates)
	}
	if _, err := time.LoadLocation(m.Timezone); err != nil {
		return fmt.Errorf("timezone %q: %w", m.Timezone, err)
	}
	return nil
}

func (s *SlugConfig) validate() error {
	if s.MaxAttempts < 1 {
		return fmt.Errorf("max_attempts must be >= 1 (got %d)", s.MaxAttempts)
	}
	return nil
}

func (t *ToolConfig) validate() error {
	if t.DefaultTimeout < 0 {
		return fmt.Errorf("default_timeout must be >= 0 (got %v)", t.DefaultTimeout)
	}
	if t.MaxTimeout <= 0 {
		return fmt.Errorf("max_timeout must be > 0 (got %v)", t.MaxTimeout)
	}
	if t.DefaultTimeout > t.MaxTimeout {
		return fmt.Errorf("default_timeout %v exceeds max_timeout %v", t.DefaultTimeout, t.MaxTimeout)
	}
	if t.MaxRedirects < 0 {
		return fmt.Errorf("max_redirects must be >= 0 (got %d)", t.MaxRedirects)
	}
	return nil
}
