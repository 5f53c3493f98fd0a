package matcher

import (
	"context"
	"log/slog"

	"talkmatch/internal/logging"
	"talkmatch/internal/overrides"
)

// OverridePass applies curated pairs. A matched video leaves the pool but the
// talk stays, since split recordings may still match it in later passes.
type OverridePass struct {
	table  overrides.Table
	logger *slog.Logger
}

// NewOverridePass constructs the override pass for the given table.
func NewOverridePass(table overrides.Table, logger *slog.Logger) *OverridePass {
	return &OverridePass{table: table, logger: logging.NewComponentLogger(logger, "matcher")}
}

func (p *OverridePass) ID() string   { return "override" }
func (p *OverridePass) Name() string { return "match manually" }

func (p *OverridePass) Apply(ctx context.Context, ws WorkingSet) WorkingSet {
	for _, entry := range p.table.Entries {
		logger := passLogger(ctx, p.logger, entry.TalkID)
		talks := 0
		for _, talk := range ws.talks {
			if talk.ID == entry.TalkID {
				talks++
			}
		}
		if talks != 1 {
			logging.WarnWithContext(logger, "override did not find exactly one talk", "override_anomaly",
				logging.String(logging.FieldVideoURI, entry.VideoURI),
				logging.Int("talks_found", talks),
				logging.String(logging.FieldErrorHint, "check the talk id in the overrides file"),
				logging.String(logging.FieldImpact, "override skipped"),
			)
			continue
		}
		videos := 0
		for _, video := range ws.videos {
			if video.URI == entry.VideoURI {
				videos++
			}
		}
		if videos != 1 {
			// Consumed by an earlier entry or not ingested yet.
			logger.Debug("override video not in pool",
				logging.String(logging.FieldVideoURI, entry.VideoURI),
				logging.Int("videos_found", videos),
			)
			continue
		}
		ws = ws.WithMatches(p.ID(), entry.TalkID, entry.VideoURI).WithoutVideos(entry.VideoURI)
		logger.Debug("override applied", logging.String(logging.FieldVideoURI, entry.VideoURI))
	}
	return ws
}
