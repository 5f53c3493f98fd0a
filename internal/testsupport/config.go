package testsupport

import (
	"path/filepath"
	"testing"

	"talkmatch/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp paths per test.
// Overrides are disabled unless WithOverrides is applied.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.Database = filepath.Join(base, "data", "talkmatch.db")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Paths.Overrides = ""
	cfgVal.Matching.MinReleaseDate = "2019-11-01"

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	return builder.cfg
}

// WithOverrides writes body to an override file inside the test directory
// and points the config at it. name picks the file format by extension.
func WithOverrides(name, body string) ConfigOption {
	return func(b *configBuilder) {
		path := filepath.Join(b.baseDir, name)
		WriteFile(b.t, path, body)
		b.cfg.Paths.Overrides = path
	}
}

// WithMinReleaseDate sets the video release cut-off.
func WithMinReleaseDate(date string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Matching.MinReleaseDate = date
	}
}

// WithSlideStages replaces the slide-bearing stage list.
func WithSlideStages(stages ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Slides.Stages = stages
	}
}
