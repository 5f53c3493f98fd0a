package config

import (
	"errors"
	"fmt"
	"time"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateMatching(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if c.Paths.Database == "" {
		return errors.New("paths.database must be set")
	}
	return nil
}

func (c *Config) validateMatching() error {
	if c.Matching.MinReleaseDate != "" {
		if _, err := time.Parse(time.DateOnly, c.Matching.MinReleaseDate); err != nil {
			return fmt.Errorf("matching.min_release_date must be YYYY-MM-DD, got %q", c.Matching.MinReleaseDate)
		}
	}
	if c.Matching.PresenterOverlap < 0 || c.Matching.PresenterOverlap >= 1 {
		return errors.New("matching.presenter_overlap must be at least 0 and below 1")
	}
	if c.Matching.PersistConcurrency > 64 {
		return errors.New("matching.persist_concurrency must be 64 or less")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level)
	}
}
