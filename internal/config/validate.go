package config

import (
	"errors"
	"fmt"
)

// Validate checks configuration values for internal consistency.
func (c *Config) Validate() error {
	if c.Paths.DataDir == "" {
		return errors.New("paths.data_dir must not be empty")
	}
	if c.Matching.AutoApproveThreshold <= 0 {
		return fmt.Errorf("matching.auto_approve_threshold must be positive, got %d", c.Matching.AutoApproveThreshold)
	}
	if c.Import.LookupDelayMS < 0 {
		return fmt.Errorf("import.lookup_delay_ms must not be negative, got %d", c.Import.LookupDelayMS)
	}
	if c.Import.LookupTimeoutSeconds <= 0 {
		return fmt.Errorf("import.lookup_timeout_seconds must be positive, got %d", c.Import.LookupTimeoutSeconds)
	}
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	return nil
}
