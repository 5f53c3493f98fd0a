package matcher

import (
	"context"
	"log/slog"

	"talkmatch/internal/logging"
	"talkmatch/internal/overrides"
	"talkmatch/internal/services"
)

// Pass is one matching strategy applied once, in a fixed pipeline position.
// Apply must not mutate its input; it returns the next snapshot.
type Pass interface {
	ID() string
	Name() string
	Apply(ctx context.Context, ws WorkingSet) WorkingSet
}

// PassReport summarizes what one pass changed.
type PassReport struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	MatchedTalks    int    `json:"matched_talks"`
	NewMatches      int    `json:"new_matches"`
	UnmatchedTalks  int    `json:"unmatched_talks"`
	UnmatchedVideos int    `json:"unmatched_videos"`
}

// Options tunes the default pass list.
type Options struct {
	Overrides        overrides.Table
	PresenterOverlap float64
}

// DefaultPasses returns the fixed pass order: curated overrides, exact
// title, time slot, presenter and the permissive multi-video title pass.
// Strict signals run first so a weak rule never claims a talk a stronger
// rule could still match.
func DefaultPasses(opts Options, logger *slog.Logger) []Pass {
	return []Pass{
		NewOverridePass(opts.Overrides, logger),
		NewExactTitlePass(logger),
		NewRulePass(NewTimeSlotRule(), logger),
		NewRulePass(NewPresenterRule(opts.PresenterOverlap).WithLogger(logger), logger),
		NewMultiTitlePass(logger),
	}
}

// Pipeline runs passes strictly in order, each on the snapshot left by its
// predecessor.
type Pipeline struct {
	passes []Pass
	logger *slog.Logger
}

// NewPipeline constructs a pipeline over the given passes.
func NewPipeline(logger *slog.Logger, passes ...Pass) *Pipeline {
	return &Pipeline{passes: passes, logger: logging.NewComponentLogger(logger, "matcher")}
}

// Run applies every pass and returns the final snapshot with one report per
// pass. Cancellation is checked between passes.
func (p *Pipeline) Run(ctx context.Context, ws WorkingSet) (WorkingSet, []PassReport, error) {
	reports := make([]PassReport, 0, len(p.passes))
	for _, pass := range p.passes {
		if err := ctx.Err(); err != nil {
			return ws, reports, err
		}
		passCtx := services.WithPass(ctx, pass.ID())
		next := pass.Apply(passCtx, ws)
		report := summarize(pass, ws, next)
		reports = append(reports, report)
		logging.WithContext(passCtx, p.logger).Info("pass complete",
			logging.Int("matched_talks", report.MatchedTalks),
			logging.Int("new_matches", report.NewMatches),
			logging.Int("unmatched_talks", report.UnmatchedTalks),
			logging.Int("unmatched_videos", report.UnmatchedVideos),
		)
		ws = next
	}
	return ws, reports, nil
}

func summarize(pass Pass, before, after WorkingSet) PassReport {
	added := after.matches[before.MatchCount():]
	talks := make(map[string]struct{}, len(added))
	for _, match := range added {
		talks[match.TalkID] = struct{}{}
	}
	return PassReport{
		ID:              pass.ID(),
		Name:            pass.Name(),
		MatchedTalks:    len(talks),
		NewMatches:      len(added),
		UnmatchedTalks:  after.TalkCount(),
		UnmatchedVideos: after.VideoCount(),
	}
}

// passLogger scopes a logger to the pass and talk carried by ctx.
func passLogger(ctx context.Context, logger *slog.Logger, talkID string) *slog.Logger {
	return logging.WithContext(services.WithTalkID(ctx, talkID), logger)
}
