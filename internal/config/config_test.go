package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"talkmatch/internal/config"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"TALKMATCH_DATABASE", "TALKMATCH_OVERRIDES"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	clearEnv(t)
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantDB := filepath.Join(tempHome, ".local", "share", "talkmatch", "talkmatch.db")
	if cfg.Paths.Database != wantDB {
		t.Fatalf("unexpected database path: got %q want %q", cfg.Paths.Database, wantDB)
	}
	if cfg.Paths.Overrides != filepath.Join(tempHome, ".config", "talkmatch", "overrides.yaml") {
		t.Fatalf("unexpected overrides path: %q", cfg.Paths.Overrides)
	}
	if cfg.Matching.MinReleaseDate != "2019-11-01" {
		t.Fatalf("unexpected min release date: %q", cfg.Matching.MinReleaseDate)
	}
	if cfg.Matching.PresenterOverlap != 0.7 {
		t.Fatalf("unexpected presenter overlap: %v", cfg.Matching.PresenterOverlap)
	}
	if cfg.Matching.PersistConcurrency != config.Default().Matching.PersistConcurrency {
		t.Fatalf("unexpected persist concurrency: %d", cfg.Matching.PersistConcurrency)
	}
	if len(cfg.Slides.Stages) == 0 {
		t.Fatal("expected default slide stages")
	}
	if cfg.LockPath() != wantDB+".lock" {
		t.Fatalf("unexpected lock path: %q", cfg.LockPath())
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{filepath.Dir(cfg.Paths.Database), cfg.Paths.LogDir} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("expected directory %q to exist: %v", dir, err)
		}
		if !info.IsDir() {
			t.Fatalf("expected %q to be directory", dir)
		}
	}
}

func TestLoadCustomPath(t *testing.T) {
	clearEnv(t)
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "talkmatch.toml")

	type payload struct {
		Paths struct {
			Database string `toml:"database"`
		} `toml:"paths"`
		Matching struct {
			MinReleaseDate   string  `toml:"min_release_date"`
			PresenterOverlap float64 `toml:"presenter_overlap"`
		} `toml:"matching"`
		Slides struct {
			Stages []string `toml:"stages"`
		} `toml:"slides"`
		Logging struct {
			Format string `toml:"format"`
			Level  string `toml:"level"`
		} `toml:"logging"`
	}
	custom := payload{}
	custom.Paths.Database = filepath.Join(tempDir, "db", "custom.db")
	custom.Matching.MinReleaseDate = "2021-01-01"
	custom.Matching.PresenterOverlap = 0.5
	custom.Slides.Stages = []string{" Main ", "main", "", "Workshop"}
	custom.Logging.Format = "JSON"
	custom.Logging.Level = "DEBUG"

	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != configPath {
		t.Fatalf("expected custom config to be used, got %q exists=%v", resolved, exists)
	}
	if cfg.Paths.Database != custom.Paths.Database {
		t.Fatalf("unexpected database: %q", cfg.Paths.Database)
	}
	if cfg.Matching.MinReleaseDate != "2021-01-01" || cfg.Matching.PresenterOverlap != 0.5 {
		t.Fatalf("unexpected matching section: %+v", cfg.Matching)
	}
	if got := strings.Join(cfg.Slides.Stages, ","); got != "Main,Workshop" {
		t.Fatalf("expected stages trimmed and deduplicated, got %q", got)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("expected logging normalized, got %+v", cfg.Logging)
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	clearEnv(t)
	configPath := filepath.Join(t.TempDir(), "talkmatch.toml")
	if err := os.WriteFile(configPath, []byte("[matching]\nmin_release = \"2020-01-01\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(configPath); err == nil {
		t.Fatal("expected error for misspelled key")
	}
}

func TestEnvVarOverridesConfigFilePaths(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "talkmatch.toml")
	body := "[paths]\ndatabase = \"" + filepath.ToSlash(filepath.Join(tempDir, "file.db")) + "\"\n"
	if err := os.WriteFile(configPath, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	envDB := filepath.Join(tempDir, "env.db")
	t.Setenv("TALKMATCH_DATABASE", envDB)
	t.Setenv("TALKMATCH_OVERRIDES", "")

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Paths.Database != envDB {
		t.Fatalf("expected database from env, got %q", cfg.Paths.Database)
	}
	if cfg.Paths.Overrides != "" {
		t.Fatalf("expected empty overrides env to disable overrides, got %q", cfg.Paths.Overrides)
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "sample.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(contents), "min_release_date") {
		t.Fatalf("sample config missing matching section: %s", contents)
	}

	var cfg config.Config
	if err := toml.Unmarshal(contents, &cfg); err != nil {
		t.Fatalf("unmarshal sample: %v", err)
	}
	defaults := config.Default()
	if cfg.Matching != defaults.Matching {
		t.Fatalf("sample matching %+v differs from defaults %+v", cfg.Matching, defaults.Matching)
	}
	if strings.Join(cfg.Report.ExcludedStages, "|") != strings.Join(defaults.Report.ExcludedStages, "|") {
		t.Fatalf("sample excluded stages differ from defaults: %v", cfg.Report.ExcludedStages)
	}
	if strings.Join(cfg.Report.ExcludedTitles, "|") != strings.Join(defaults.Report.ExcludedTitles, "|") {
		t.Fatalf("sample excluded titles differ from defaults: %v", cfg.Report.ExcludedTitles)
	}
	if !strings.Contains(cfg.Paths.Database, "talkmatch") {
		t.Fatalf("expected database path to contain talkmatch, got %q", cfg.Paths.Database)
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	cfg := config.Default()
	cfg.Matching.MinReleaseDate = "01/11/2019"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for malformed release date")
	}

	cfg = config.Default()
	cfg.Matching.PresenterOverlap = 1
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for overlap of 1")
	}

	cfg = config.Default()
	cfg.Matching.PresenterOverlap = -0.1
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for negative overlap")
	}

	cfg = config.Default()
	cfg.Matching.PersistConcurrency = 1000
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for excessive concurrency")
	}

	cfg = config.Default()
	cfg.Logging.Level = "verbose"
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for unknown log level")
	}

	cfg = config.Default()
	cfg.Paths.Database = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("expected error for empty database path")
	}

	cfg = config.Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
}
