package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"talkmatch/internal/config"
	"talkmatch/internal/testsupport"
)

type cliTestEnv struct {
	cfg           *config.Config
	configPath    string
	fixturePath   string
	overridesPath string
	baseDir       string
}

const testFixture = `{
  "talks": [
    {"id": "t1", "stage": "AWS Stage", "title": "Serverless at Scale", "presenters": [{"name": "Jane Doe"}]},
    {"id": "t2", "stage": "Main Stage", "title": "Cloud 101 Q+A"},
    {"id": "t3", "stage": "Main Stage", "title": "Hallway Chat"},
    {"id": "t4", "stage": "Registration", "title": "Badge pickup"}
  ],
  "videos": [
    {"uri": "/videos/1", "name": "Serverless at Scale", "release_time": "2020-01-10"},
    {"uri": "/videos/2", "name": "cloud 101 q&a", "release_time": "2020-02-01"},
    {"uri": "/videos/4", "name": "Corridor conversation", "release_time": "2020-02-02"},
    {"uri": "/videos/old", "name": "Badge pickup", "release_time": "2018-01-01"}
  ],
  "slides": [
    {"slug": "serverless-at-scale", "title": "Serverless at Scale"}
  ]
}
`

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	homeDir := filepath.Join(base, "home")
	if err := os.MkdirAll(homeDir, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", homeDir)
	for _, key := range []string{"TALKMATCH_DATABASE", "TALKMATCH_OVERRIDES"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	overridesPath := filepath.Join(base, "overrides.yaml")
	testsupport.WriteFile(t, overridesPath, "version: 1\noverrides:\n  - talk_id: t3\n    video_uri: /videos/4\n    note: recorded under a different title\n")
	cfg := testsupport.NewConfig(t)
	cfg.Paths.Overrides = overridesPath

	configPath := filepath.Join(homeDir, ".config", "talkmatch", "config.toml")
	writeTestConfig(t, configPath, cfg)

	fixturePath := filepath.Join(base, "fixture.json")
	testsupport.WriteFile(t, fixturePath, testFixture)

	return &cliTestEnv{
		cfg:           cfg,
		configPath:    configPath,
		fixturePath:   fixturePath,
		overridesPath: overridesPath,
		baseDir:       base,
	}
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeTestConfig(t *testing.T, path string, cfg *config.Config) {
	t.Helper()
	content := fmt.Sprintf(`[paths]
database = %q
log_dir = %q
overrides = %q

[matching]
min_release_date = %q

[report]
excluded_stages = ["Registration"]

[logging]
level = "error"
`,
		cfg.Paths.Database,
		cfg.Paths.LogDir,
		cfg.Paths.Overrides,
		cfg.Matching.MinReleaseDate,
	)
	testsupport.WriteFile(t, path, content)
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
