package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestReportLineLayout(t *testing.T) {
	got := reportLine("Video matches", verdictMatched, "3", false)
	want := "  Video matches      MATCHED  3"
	if got != want {
		t.Fatalf("reportLine = %q, want %q", got, want)
	}
	if got := reportLine("Entries", verdictNote, "", false); got != "  Entries            NOTE" {
		t.Fatalf("reportLine without message = %q", got)
	}
}

func TestReportLineColoursOnlyVerdict(t *testing.T) {
	got := reportLine("Problem", verdictInvalid, "unknown talk", true)
	if !strings.HasPrefix(got, "  Problem            "+ansiRed+"INVALID") {
		t.Fatalf("expected coloured verdict after label, got %q", got)
	}
	if !strings.HasSuffix(got, ansiReset+"  unknown talk") {
		t.Fatalf("expected uncoloured message, got %q", got)
	}
}

func TestLeftoverVerdict(t *testing.T) {
	if leftoverVerdict(0) != verdictMatched {
		t.Fatal("expected MATCHED with nothing left over")
	}
	if v := leftoverVerdict(2); v != verdictReview || v.String() != "REVIEW" {
		t.Fatalf("expected REVIEW with leftovers, got %s", v)
	}
}

func TestReportHeadingRuleMatchesTitle(t *testing.T) {
	lines := reportHeading(" Run abc ", false)
	if lines[0] != "Run abc" || lines[1] != "───────" {
		t.Fatalf("unexpected heading %q", lines)
	}
}

func TestUseColorRejectsBuffers(t *testing.T) {
	if useColor(&bytes.Buffer{}) {
		t.Fatal("expected no colour for non-terminal writers")
	}
}
