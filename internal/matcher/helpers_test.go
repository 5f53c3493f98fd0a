package matcher_test

import (
	"context"
	"testing"

	"talkmatch/internal/matcher"
	"talkmatch/internal/overrides"
	"talkmatch/internal/records"
)

func talk(id, stage, title string, presenters ...string) records.Talk {
	list := make([]records.Presenter, 0, len(presenters))
	for _, name := range presenters {
		list = append(list, records.Presenter{Name: name})
	}
	return records.Talk{ID: id, Stage: stage, Title: title, PresentersRaw: records.EncodePresenters(list)}
}

func video(uri, name, description string) records.Video {
	return records.Video{URI: uri, Name: name, Description: description, ReleaseTime: "2020-11-03"}
}

func runPipeline(t *testing.T, ws matcher.WorkingSet, table overrides.Table) (matcher.WorkingSet, []matcher.PassReport) {
	t.Helper()
	passes := matcher.DefaultPasses(matcher.Options{Overrides: table}, nil)
	out, reports, err := matcher.NewPipeline(nil, passes...).Run(context.Background(), ws)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	return out, reports
}

func applyPass(pass matcher.Pass, ws matcher.WorkingSet) matcher.WorkingSet {
	return pass.Apply(context.Background(), ws)
}

func pairs(matches []records.Match) map[string]int {
	out := make(map[string]int, len(matches))
	for _, m := range matches {
		out[m.TalkID+"->"+m.VideoURI]++
	}
	return out
}

func requirePairs(t *testing.T, matches []records.Match, want ...string) {
	t.Helper()
	got := pairs(matches)
	if len(matches) != len(want) {
		t.Fatalf("got %d matches %v, want %v", len(matches), got, want)
	}
	for _, pair := range want {
		if got[pair] != 1 {
			t.Fatalf("expected exactly one %s, got %v", pair, got)
		}
	}
}
