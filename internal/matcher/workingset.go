package matcher

import (
	"slices"

	"talkmatch/internal/records"
)

// WorkingSet is an immutable snapshot of the matching state: the pools of
// talks, videos and slides still eligible for matching plus the accumulated
// pairs. Every transition returns a new snapshot; slices held by an older
// snapshot are never written to.
type WorkingSet struct {
	talks        []records.Talk
	videos       []records.Video
	slides       []records.Slide
	matches      []records.Match
	slideMatches []records.SlideMatch
}

// NewWorkingSet builds the initial snapshot from the full input sets. Slugs
// are derived here so every pass compares the same canonical form.
func NewWorkingSet(talks []records.Talk, videos []records.Video, slides []records.Slide) WorkingSet {
	ws := WorkingSet{
		talks:  make([]records.Talk, 0, len(talks)),
		videos: make([]records.Video, 0, len(videos)),
		slides: slices.Clone(slides),
	}
	for _, talk := range talks {
		ws.talks = append(ws.talks, talk.Normalized())
	}
	for _, video := range videos {
		ws.videos = append(ws.videos, video.Normalized())
	}
	return ws
}

// Talks returns the unmatched talk pool.
func (ws WorkingSet) Talks() []records.Talk { return slices.Clone(ws.talks) }

// Videos returns the unmatched video pool.
func (ws WorkingSet) Videos() []records.Video { return slices.Clone(ws.videos) }

// Slides returns the unmatched slide pool.
func (ws WorkingSet) Slides() []records.Slide { return slices.Clone(ws.slides) }

// Matches returns the accumulated talk-to-video pairs in the order recorded.
func (ws WorkingSet) Matches() []records.Match { return slices.Clone(ws.matches) }

// SlideMatches returns the accumulated talk-to-slide pairs in the order recorded.
func (ws WorkingSet) SlideMatches() []records.SlideMatch { return slices.Clone(ws.slideMatches) }

func (ws WorkingSet) TalkCount() int       { return len(ws.talks) }
func (ws WorkingSet) VideoCount() int      { return len(ws.videos) }
func (ws WorkingSet) SlideCount() int      { return len(ws.slides) }
func (ws WorkingSet) MatchCount() int      { return len(ws.matches) }
func (ws WorkingSet) SlideMatchCount() int { return len(ws.slideMatches) }

// WithMatches records talkID against each uri. Pairs already recorded by an
// earlier pass are not duplicated.
func (ws WorkingSet) WithMatches(source, talkID string, uris ...string) WorkingSet {
	next := slices.Clip(ws.matches)
	for _, uri := range uris {
		match := records.Match{TalkID: talkID, VideoURI: uri, Source: source}
		if containsKey(next, match.Key(), records.Match.Key) {
			continue
		}
		next = append(next, match)
	}
	ws.matches = next
	return ws
}

// WithSlideMatch records talkID against slug unless the pair already exists.
func (ws WorkingSet) WithSlideMatch(source, talkID, slug string) WorkingSet {
	match := records.SlideMatch{TalkID: talkID, SlideSlug: slug, Source: source}
	if containsKey(ws.slideMatches, match.Key(), records.SlideMatch.Key) {
		return ws
	}
	ws.slideMatches = append(slices.Clip(ws.slideMatches), match)
	return ws
}

// WithoutTalks drops every pooled talk carrying one of the ids.
func (ws WorkingSet) WithoutTalks(ids ...string) WorkingSet {
	drop := keySet(ids)
	ws.talks = filter(ws.talks, func(t records.Talk) bool { return !drop[t.ID] })
	return ws
}

// WithoutVideos drops every pooled video carrying one of the uris.
func (ws WorkingSet) WithoutVideos(uris ...string) WorkingSet {
	drop := keySet(uris)
	ws.videos = filter(ws.videos, func(v records.Video) bool { return !drop[v.URI] })
	return ws
}

// WithoutSlides drops every pooled slide carrying one of the slugs.
func (ws WorkingSet) WithoutSlides(slugs ...string) WorkingSet {
	drop := keySet(slugs)
	ws.slides = filter(ws.slides, func(s records.Slide) bool { return !drop[s.Slug] })
	return ws
}

func filter[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

func keySet(keys []string) map[string]bool {
	set := make(map[string]bool, len(keys))
	for _, key := range keys {
		set[key] = true
	}
	return set
}

func containsKey[T any](items []T, key string, keyOf func(T) string) bool {
	for _, item := range items {
		if keyOf(item) == key {
			return true
		}
	}
	return false
}
