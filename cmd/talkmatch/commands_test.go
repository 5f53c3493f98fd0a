package main

import (
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"

	"talkmatch/internal/reconcile"
	"talkmatch/internal/services"
	"talkmatch/internal/store"
	"talkmatch/internal/testsupport"
)

func TestImportMatchAndReport(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, []string{"import", env.fixturePath}, env.configPath)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	requireContains(t, out, "Imported 4 talks, 4 videos and 1 slides")

	out, _, err = runCLI(t, []string{"match"}, env.configPath)
	if err != nil {
		t.Fatalf("match: %v", err)
	}
	requireContains(t, out, "match manually")
	requireContains(t, out, "match title exactly")
	requireContains(t, out, "Video matches      MATCHED  3")
	requireContains(t, out, "Unmatched videos   MATCHED  0")

	out, _, err = runCLI(t, []string{"matches", "--unmatched"}, env.configPath)
	if err != nil {
		t.Fatalf("matches --unmatched: %v", err)
	}
	requireContains(t, out, "No unmatched videos found")

	out, _, err = runCLI(t, []string{"matches", "--source", "override"}, env.configPath)
	if err != nil {
		t.Fatalf("matches: %v", err)
	}
	requireContains(t, out, "Hallway Chat")
	requireContains(t, out, "1 matches")

	out, _, err = runCLI(t, []string{"matches", "--slides"}, env.configPath)
	if err != nil {
		t.Fatalf("matches --slides: %v", err)
	}
	requireContains(t, out, "serverless-at-scale")

	out, _, err = runCLI(t, []string{"--json", "stats"}, env.configPath)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	var view struct {
		Stats   store.Stats `json:"stats"`
		LastRun *store.Run  `json:"last_run"`
	}
	if err := json.Unmarshal([]byte(out), &view); err != nil {
		t.Fatalf("decode stats: %v\n%s", err, out)
	}
	want := store.Stats{Talks: 3, MatchedTalks: 3, Videos: 3, MatchedVideos: 3, Slides: 1, MatchedSlides: 1}
	if view.Stats != want {
		t.Fatalf("stats = %+v, want %+v", view.Stats, want)
	}
	if view.LastRun == nil || view.LastRun.Matches != 3 {
		t.Fatalf("last run = %+v", view.LastRun)
	}

	out, _, err = runCLI(t, []string{"stats", "--all-stages"}, env.configPath)
	if err != nil {
		t.Fatalf("stats --all-stages: %v", err)
	}
	requireContains(t, out, "Coverage")
	requireContains(t, out, "Last run")
}

func TestMatchJSONOutput(t *testing.T) {
	env := setupCLITestEnv(t)
	if _, _, err := runCLI(t, []string{"import", env.fixturePath}, env.configPath); err != nil {
		t.Fatalf("import: %v", err)
	}

	out, _, err := runCLI(t, []string{"match", "--json", "--no-overrides"}, env.configPath)
	if err != nil {
		t.Fatalf("match: %v", err)
	}
	var summary reconcile.Summary
	if err := json.Unmarshal([]byte(out), &summary); err != nil {
		t.Fatalf("decode summary: %v\n%s", err, out)
	}
	if summary.Overrides != 0 || len(summary.Matches) != 2 || summary.UnmatchedVideos != 1 {
		t.Fatalf("unexpected summary %+v", summary)
	}
	if len(summary.Passes) != 5 {
		t.Fatalf("expected five pass reports, got %d", len(summary.Passes))
	}

	out, _, err = runCLI(t, []string{"matches", "--unmatched", "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("matches --unmatched: %v", err)
	}
	var leftovers []struct {
		URI string `json:"uri"`
	}
	if err := json.Unmarshal([]byte(out), &leftovers); err != nil {
		t.Fatalf("decode unmatched videos: %v\n%s", err, out)
	}
	if len(leftovers) != 1 || leftovers[0].URI != "/videos/4" {
		t.Fatalf("unmatched videos = %+v, want only /videos/4", leftovers)
	}

	out, _, err = runCLI(t, []string{"matches", "--unmatched"}, env.configPath)
	if err != nil {
		t.Fatalf("matches --unmatched: %v", err)
	}
	requireContains(t, out, "Corridor conversation")
	requireContains(t, out, "1 unmatched videos")
}

func TestMatchesUnmatchedRejectsSlides(t *testing.T) {
	env := setupCLITestEnv(t)
	if _, _, err := runCLI(t, []string{"matches", "--unmatched", "--slides"}, env.configPath); err == nil {
		t.Fatal("expected --unmatched and --slides to be mutually exclusive")
	}
}

func TestImportReplacesPreviousRunAndMatches(t *testing.T) {
	env := setupCLITestEnv(t)
	if _, _, err := runCLI(t, []string{"import", env.fixturePath}, env.configPath); err != nil {
		t.Fatalf("import: %v", err)
	}
	if _, _, err := runCLI(t, []string{"match"}, env.configPath); err != nil {
		t.Fatalf("match: %v", err)
	}

	smaller := filepath.Join(env.baseDir, "smaller.json")
	testsupport.WriteFile(t, smaller, `{"talks": [{"id": "t9", "stage": "Main Stage", "title": "Fresh & New"}],
  "videos": [{"uri": "/videos/9", "name": "Fresh & New", "release_time": "2020-03-01"}]}`)
	out, _, err := runCLI(t, []string{"--json", "import", smaller}, env.configPath)
	if err != nil {
		t.Fatalf("re-import: %v", err)
	}
	requireContains(t, out, `"talks": 1`)

	out, _, err = runCLI(t, []string{"matches"}, env.configPath)
	if err != nil {
		t.Fatalf("matches: %v", err)
	}
	requireContains(t, out, "No matches found")

	out, _, err = runCLI(t, []string{"--json", "matches", "--unmatched"}, env.configPath)
	if err != nil {
		t.Fatalf("matches --unmatched: %v", err)
	}
	requireContains(t, out, `"name": "Fresh & New"`)
}

func TestMatchesEmptyStore(t *testing.T) {
	env := setupCLITestEnv(t)
	out, _, err := runCLI(t, []string{"matches"}, env.configPath)
	if err != nil {
		t.Fatalf("matches: %v", err)
	}
	requireContains(t, out, "No matches found")
}

func TestOverridesCheck(t *testing.T) {
	env := setupCLITestEnv(t)
	if _, _, err := runCLI(t, []string{"import", env.fixturePath}, env.configPath); err != nil {
		t.Fatalf("import: %v", err)
	}

	out, _, err := runCLI(t, []string{"overrides", "check"}, env.configPath)
	if err != nil {
		t.Fatalf("overrides check: %v", err)
	}
	requireContains(t, out, "every entry applies cleanly")

	bad := filepath.Join(env.baseDir, "bad.json")
	testsupport.WriteFile(t, bad, `[{"talk_id":"ghost","video_uri":"/videos/old"}]`)
	out, _, err = runCLI(t, []string{"overrides", "check", "--file", bad}, env.configPath)
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if services.ExitCode(err) != 2 {
		t.Fatalf("exit code = %d", services.ExitCode(err))
	}
	requireContains(t, out, `unknown talk "ghost"`)
	requireContains(t, out, `unknown video "/videos/old"`)
}

func TestImportRejectsInvalidFixture(t *testing.T) {
	env := setupCLITestEnv(t)
	bad := filepath.Join(env.baseDir, "dup.json")
	testsupport.WriteFile(t, bad, `{"talks": [{"id": "t1"}, {"id": "t1"}]}`)
	_, _, err := runCLI(t, []string{"import", bad}, env.configPath)
	if !errors.Is(err, services.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
