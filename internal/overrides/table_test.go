package overrides_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"talkmatch/internal/overrides"
)

func TestParseAcceptsListAndWrapper(t *testing.T) {
	tests := []struct {
		name        string
		data        string
		format      overrides.Format
		wantVersion int
		wantLen     int
	}{
		{name: "json list", data: `[{"talk_id":" t1 ","video_uri":"v1"}]`, format: overrides.FormatJSON, wantLen: 1},
		{name: "json wrapper", data: "\xef\xbb\xbf{\"version\": 3, \"overrides\": [{\"talk_id\":\"t1\",\"video_uri\":\"v1\"},{\"talk_id\":\"t2\",\"video_uri\":\"v2\",\"note\":\"split\"}]}", format: overrides.FormatJSON, wantVersion: 3, wantLen: 2},
		{name: "yaml list", data: "- talk_id: t1\n  video_uri: v1\n", format: overrides.FormatYAML, wantLen: 1},
		{name: "yaml wrapper", data: "version: 2\noverrides:\n  - talk_id: t1\n    video_uri: v1\n    note: manual\n", format: overrides.FormatYAML, wantVersion: 2, wantLen: 1},
		{name: "blank", data: "  \n", format: overrides.FormatJSON, wantLen: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := overrides.Parse([]byte(tt.data), tt.format)
			if err != nil {
				t.Fatalf("Parse: %v", err)
			}
			if table.Version != tt.wantVersion {
				t.Fatalf("version = %d, want %d", table.Version, tt.wantVersion)
			}
			if table.Len() != tt.wantLen {
				t.Fatalf("len = %d, want %d", table.Len(), tt.wantLen)
			}
			if tt.wantLen > 0 && table.Entries[0].TalkID != "t1" {
				t.Fatalf("expected trimmed talk id, got %q", table.Entries[0].TalkID)
			}
		})
	}
}

func TestParseRejectsIncompleteEntries(t *testing.T) {
	if _, err := overrides.Parse([]byte(`[{"talk_id":"t1"}]`), overrides.FormatJSON); err == nil {
		t.Fatal("expected error for missing video_uri")
	}
	if _, err := overrides.Parse([]byte(`{"overrides": [`), overrides.FormatJSON); err == nil {
		t.Fatal("expected error for malformed json")
	}
}

func TestLoadMissingFileIsEmpty(t *testing.T) {
	table, err := overrides.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if table.Len() != 0 {
		t.Fatalf("expected empty table, got %d entries", table.Len())
	}
	table, err = overrides.Load("")
	if err != nil || table.Len() != 0 {
		t.Fatalf("expected empty table for blank path, got %+v err %v", table, err)
	}
}

func TestLoadPicksFormatFromExtension(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "overrides.yml")
	if err := os.WriteFile(path, []byte("version: 1\noverrides:\n  - talk_id: t9\n    video_uri: /videos/9\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	table, err := overrides.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if table.Path != path || table.Len() != 1 || table.Entries[0].VideoURI != "/videos/9" {
		t.Fatalf("unexpected table %+v", table)
	}
}

func TestValidateReportsUnknownIDsAndSharedVideos(t *testing.T) {
	table := overrides.Table{Entries: []overrides.Entry{
		{TalkID: "t1", VideoURI: "v1"},
		{TalkID: "t2", VideoURI: "v1"},
		{TalkID: "ghost", VideoURI: "v2"},
		{TalkID: "t3", VideoURI: "missing"},
	}}
	report := table.Validate([]string{"t1", "t2", "t3"}, []string{"v1", "v2"})
	if report.Empty() {
		t.Fatal("expected anomalies")
	}
	if len(report.UnknownTalks) != 1 || report.UnknownTalks[0].TalkID != "ghost" {
		t.Fatalf("unknown talks = %+v", report.UnknownTalks)
	}
	if len(report.UnknownVideos) != 1 || report.UnknownVideos[0].VideoURI != "missing" {
		t.Fatalf("unknown videos = %+v", report.UnknownVideos)
	}
	shared := report.SharedVideos["v1"]
	if len(shared) != 2 || shared[0].TalkID != "t1" || shared[1].TalkID != "t2" {
		t.Fatalf("shared videos = %+v", report.SharedVideos)
	}
	problems := report.Problems()
	if len(problems) != 3 {
		t.Fatalf("problems = %v", problems)
	}
	if !strings.Contains(problems[2], "first entry wins") {
		t.Fatalf("expected conflict line, got %q", problems[2])
	}
}

func TestValidateCleanTable(t *testing.T) {
	table := overrides.Table{Entries: []overrides.Entry{{TalkID: "t1", VideoURI: "v1"}}}
	if report := table.Validate([]string{"t1"}, []string{"v1"}); !report.Empty() {
		t.Fatalf("expected empty report, got %v", report.Problems())
	}
}
