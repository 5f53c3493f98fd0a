package matcher

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"talkmatch/internal/logging"
	"talkmatch/internal/records"
	"talkmatch/internal/textutil"
)

// SlideMatcher pairs slide decks with talks on slide-bearing stages: exact
// slug equality first, then greedy nearest neighbour by edit distance. The
// greedy phase is an approximation of minimum-weight assignment; the
// smallest remaining distance always wins.
type SlideMatcher struct {
	stages map[string]struct{}
	logger *slog.Logger
}

// NewSlideMatcher scopes matching to talks whose stage is one of stages,
// compared case-insensitively.
func NewSlideMatcher(stages []string, logger *slog.Logger) *SlideMatcher {
	set := make(map[string]struct{}, len(stages))
	for _, stage := range stages {
		if key := stageKey(stage); key != "" {
			set[key] = struct{}{}
		}
	}
	return &SlideMatcher{stages: set, logger: logging.NewComponentLogger(logger, "slides")}
}

// MatchSlides runs a SlideMatcher without logging.
func MatchSlides(ws WorkingSet, stages []string) WorkingSet {
	return NewSlideMatcher(stages, nil).Apply(context.Background(), ws)
}

func (m *SlideMatcher) ID() string   { return "slides" }
func (m *SlideMatcher) Name() string { return "match slides" }

type slidePair struct {
	slide    records.Slide
	title    string
	distance int
}

// Apply matches slides against the scoped talks. Talks are scoped locally
// and stay in the pool for the video passes.
func (m *SlideMatcher) Apply(ctx context.Context, ws WorkingSet) WorkingSet {
	var scoped []records.Talk
	for _, talk := range ws.talks {
		if _, ok := m.stages[stageKey(talk.Stage)]; ok {
			scoped = append(scoped, talk)
		}
	}
	logger := logging.WithContext(ctx, m.logger)
	scopedCount := len(scoped)

	exact := 0
	for _, slide := range ws.Slides() {
		var rest []records.Talk
		found := false
		for _, talk := range scoped {
			if talk.TitleSlug == slide.Slug {
				ws = ws.WithSlideMatch("slide_exact", talk.ID, slide.Slug)
				found = true
				continue
			}
			rest = append(rest, talk)
		}
		scoped = rest
		if found {
			ws = ws.WithoutSlides(slide.Slug)
			exact++
		}
	}

	// Pairs are enumerated slide-major; the stable sort keeps that order
	// among equal distances.
	titles := distinctTitles(scoped)
	pairs := make([]slidePair, 0, ws.SlideCount()*len(titles))
	for _, slide := range ws.slides {
		for _, title := range titles {
			pairs = append(pairs, slidePair{slide: slide, title: title, distance: textutil.Distance(title, slide.Slug)})
		}
	}
	sort.SliceStable(pairs, func(i, j int) bool { return pairs[i].distance < pairs[j].distance })

	usedSlides := make(map[string]bool)
	usedTitles := make(map[string]bool)
	greedy := 0
	for _, pair := range pairs {
		if usedSlides[pair.slide.Slug] || usedTitles[pair.title] {
			continue
		}
		usedSlides[pair.slide.Slug] = true
		usedTitles[pair.title] = true
		for _, talk := range scoped {
			if talk.TitleSlug == pair.title {
				ws = ws.WithSlideMatch("slide_nearest", talk.ID, pair.slide.Slug)
			}
		}
		ws = ws.WithoutSlides(pair.slide.Slug)
		greedy++
		logger.Debug("slide assigned by distance",
			logging.String(logging.FieldSlideSlug, pair.slide.Slug),
			logging.String("title_slug", pair.title),
			logging.Int("distance", pair.distance),
		)
	}

	logger.Info("slide matching complete",
		logging.Int("scoped_talks", scopedCount),
		logging.Int("exact", exact),
		logging.Int("nearest", greedy),
		logging.Int("slide_matches", ws.SlideMatchCount()),
		logging.Int("unmatched_slides", ws.SlideCount()),
	)
	return ws
}

func distinctTitles(talks []records.Talk) []string {
	seen := make(map[string]bool, len(talks))
	var titles []string
	for _, talk := range talks {
		if seen[talk.TitleSlug] {
			continue
		}
		seen[talk.TitleSlug] = true
		titles = append(titles, talk.TitleSlug)
	}
	return titles
}

func stageKey(stage string) string {
	return strings.ToLower(strings.TrimSpace(stage))
}
