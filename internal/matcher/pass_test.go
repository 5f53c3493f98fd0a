package matcher_test

import (
	"context"
	"errors"
	"testing"

	"talkmatch/internal/matcher"
	"talkmatch/internal/overrides"
	"talkmatch/internal/records"
)

func TestDefaultPassOrder(t *testing.T) {
	passes := matcher.DefaultPasses(matcher.Options{}, nil)
	want := []string{"override", "exact_title", "time_slot", "presenter", "multi_title"}
	if len(passes) != len(want) {
		t.Fatalf("got %d passes, want %d", len(passes), len(want))
	}
	for i, id := range want {
		if passes[i].ID() != id {
			t.Fatalf("pass %d = %s, want %s", i, passes[i].ID(), id)
		}
		if passes[i].Name() == "" {
			t.Fatalf("pass %s has no name", id)
		}
	}
}

func TestPipelineReportsPerPass(t *testing.T) {
	ws := matcher.NewWorkingSet(
		[]records.Talk{
			talk("t1", "Main", "Foo Talk"),
			talk("t2", "Main", "Bar Talk"),
			talk("t3", "Main", "Nobody Watches"),
		},
		[]records.Video{
			video("v1", "Foo Talk", ""),
			video("v2", "Bar Talk", "part 1"),
			video("v3", "Bar Talk", "part 2"),
			video("v4", "Orphan", ""),
			video("v5", "Manual", ""),
		},
		nil,
	)
	out, reports := runPipeline(t, ws, overrides.Table{Entries: []overrides.Entry{{TalkID: "t3", VideoURI: "v5"}}})

	requirePairs(t, out.Matches(), "t3->v5", "t1->v1", "t2->v2", "t2->v3")
	want := []matcher.PassReport{
		{ID: "override", MatchedTalks: 1, NewMatches: 1, UnmatchedTalks: 3, UnmatchedVideos: 4},
		{ID: "exact_title", MatchedTalks: 1, NewMatches: 1, UnmatchedTalks: 2, UnmatchedVideos: 3},
		{ID: "time_slot", UnmatchedTalks: 2, UnmatchedVideos: 3},
		{ID: "presenter", UnmatchedTalks: 2, UnmatchedVideos: 3},
		{ID: "multi_title", MatchedTalks: 1, NewMatches: 2, UnmatchedTalks: 1, UnmatchedVideos: 1},
	}
	for i, w := range want {
		got := reports[i]
		got.Name = ""
		if got != w {
			t.Fatalf("report %d = %+v, want %+v", i, got, w)
		}
	}
}

func TestPipelineStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ws := matcher.NewWorkingSet([]records.Talk{talk("t1", "Main", "Foo")}, []records.Video{video("v1", "Foo", "")}, nil)
	out, reports, err := matcher.NewPipeline(nil, matcher.DefaultPasses(matcher.Options{}, nil)...).Run(ctx, ws)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation, got %v", err)
	}
	if len(reports) != 0 || out.MatchCount() != 0 {
		t.Fatalf("expected no pass to run, got %d reports", len(reports))
	}
}
