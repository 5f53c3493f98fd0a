package matcher

import (
	"context"
	"log/slog"

	"talkmatch/internal/logging"
	"talkmatch/internal/records"
)

// openingRemarksSlug names a recurring session whose videos share one title
// across days, so equal titles say nothing about which talk they belong to.
const openingRemarksSlug = "opening-remarks"

// ExactTitlePass matches a talk to the single pooled video whose name slug
// equals its title slug. Zero or several candidates defer the talk.
type ExactTitlePass struct {
	logger *slog.Logger
}

func NewExactTitlePass(logger *slog.Logger) *ExactTitlePass {
	return &ExactTitlePass{logger: logging.NewComponentLogger(logger, "matcher")}
}

func (p *ExactTitlePass) ID() string   { return "exact_title" }
func (p *ExactTitlePass) Name() string { return "match title exactly" }

func (p *ExactTitlePass) Apply(ctx context.Context, ws WorkingSet) WorkingSet {
	for _, talk := range ws.Talks() {
		candidates := videosWithSlug(ws.videos, talk.TitleSlug, "")
		if len(candidates) != 1 {
			if len(candidates) > 1 {
				passLogger(ctx, p.logger, talk.ID).Debug("title matches several videos",
					logging.Args(logging.DecisionAttrs("exact_title", "deferred", "ambiguous")...)...)
			}
			continue
		}
		uri := candidates[0].URI
		ws = ws.WithMatches(p.ID(), talk.ID, uri).WithoutTalks(talk.ID).WithoutVideos(uri)
	}
	return ws
}

// MultiTitlePass is the permissive fallback: a talk whose title equals the
// name of several pooled videos takes all of them (multi-part recordings).
type MultiTitlePass struct {
	logger *slog.Logger
}

func NewMultiTitlePass(logger *slog.Logger) *MultiTitlePass {
	return &MultiTitlePass{logger: logging.NewComponentLogger(logger, "matcher")}
}

func (p *MultiTitlePass) ID() string   { return "multi_title" }
func (p *MultiTitlePass) Name() string { return "match multiple" }

func (p *MultiTitlePass) Apply(ctx context.Context, ws WorkingSet) WorkingSet {
	for _, talk := range ws.Talks() {
		candidates := videosWithSlug(ws.videos, talk.TitleSlug, openingRemarksSlug)
		if len(candidates) <= 1 {
			continue
		}
		uris := make([]string, 0, len(candidates))
		for _, video := range candidates {
			uris = append(uris, video.URI)
		}
		ws = ws.WithMatches(p.ID(), talk.ID, uris...).WithoutTalks(talk.ID).WithoutVideos(uris...)
		passLogger(ctx, p.logger, talk.ID).Debug("talk matched several videos", logging.Int("videos", len(uris)))
	}
	return ws
}

// videosWithSlug returns pooled videos named slug, skipping excluded. An
// empty slug never matches.
func videosWithSlug(videos []records.Video, slug, excluded string) []records.Video {
	if slug == "" {
		return nil
	}
	var out []records.Video
	for _, video := range videos {
		if video.NameSlug == slug && video.NameSlug != excluded {
			out = append(out, video)
		}
	}
	return out
}
