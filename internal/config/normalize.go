package config

import (
	"fmt"
	"os"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeMatching()
	c.normalizeSlides()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	if value, ok := os.LookupEnv("TALKMATCH_DATABASE"); ok && strings.TrimSpace(value) != "" {
		c.Paths.Database = strings.TrimSpace(value)
	}
	if value, ok := os.LookupEnv("TALKMATCH_OVERRIDES"); ok {
		c.Paths.Overrides = strings.TrimSpace(value)
	}

	var err error
	if strings.TrimSpace(c.Paths.Database) == "" {
		c.Paths.Database = defaultDatabasePath
	}
	if c.Paths.Database, err = expandPath(strings.TrimSpace(c.Paths.Database)); err != nil {
		return fmt.Errorf("paths.database: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	// An empty overrides path disables overrides.
	if c.Paths.Overrides, err = expandPath(strings.TrimSpace(c.Paths.Overrides)); err != nil {
		return fmt.Errorf("paths.overrides: %w", err)
	}
	return nil
}

func (c *Config) normalizeMatching() {
	c.Matching.MinReleaseDate = strings.TrimSpace(c.Matching.MinReleaseDate)
	if c.Matching.PersistConcurrency <= 0 {
		c.Matching.PersistConcurrency = defaultPersistConcurrency
	}
}

func (c *Config) normalizeSlides() {
	stages := make([]string, 0, len(c.Slides.Stages))
	seen := make(map[string]struct{}, len(c.Slides.Stages))
	for _, stage := range c.Slides.Stages {
		trimmed := strings.TrimSpace(stage)
		if trimmed == "" {
			continue
		}
		key := strings.ToLower(trimmed)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		stages = append(stages, trimmed)
	}
	c.Slides.Stages = stages

	c.Report.ExcludedStages = trimPatterns(c.Report.ExcludedStages)
	c.Report.ExcludedTitles = trimPatterns(c.Report.ExcludedTitles)
}

func trimPatterns(patterns []string) []string {
	out := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		if trimmed := strings.TrimSpace(pattern); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
}
