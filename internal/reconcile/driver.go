package reconcile

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"talkmatch/internal/config"
	"talkmatch/internal/logging"
	"talkmatch/internal/matcher"
	"talkmatch/internal/overrides"
	"talkmatch/internal/records"
	"talkmatch/internal/services"
	"talkmatch/internal/store"
)

// Storage is the read/write contract the driver needs from the database.
type Storage interface {
	LoadTalks(ctx context.Context) ([]records.Talk, error)
	LoadVideos(ctx context.Context, minRelease string) ([]records.Video, error)
	LoadSlides(ctx context.Context) ([]records.Slide, error)
	ResetMatches(ctx context.Context) error
	InsertMatch(ctx context.Context, match records.Match) error
	InsertSlideMatch(ctx context.Context, match records.SlideMatch) error
}

// runRecorder is implemented by storage that keeps a run history.
type runRecorder interface {
	RecordRun(ctx context.Context, run store.Run) error
}

// Options tunes a Driver. Zero values fall back to the defaults in config.
type Options struct {
	MinRelease         string
	OverridesPath      string
	SlideStages        []string
	PresenterOverlap   float64
	PersistConcurrency int
	// LockPath is the run lock file. Empty disables locking.
	LockPath string
}

// OptionsFromConfig maps configuration onto driver options.
func OptionsFromConfig(cfg *config.Config) Options {
	if cfg == nil {
		return Options{}
	}
	return Options{
		MinRelease:         cfg.Matching.MinReleaseDate,
		OverridesPath:      cfg.Paths.Overrides,
		SlideStages:        cfg.Slides.Stages,
		PresenterOverlap:   cfg.Matching.PresenterOverlap,
		PersistConcurrency: cfg.Matching.PersistConcurrency,
		LockPath:           cfg.LockPath(),
	}
}

// Driver coordinates loading, matching and persisting.
type Driver struct {
	storage Storage
	opts    Options
	logger  *slog.Logger
	now     func() time.Time
	newID   func() string
}

// New constructs a driver over storage.
func New(storage Storage, opts Options, logger *slog.Logger) *Driver {
	if opts.PresenterOverlap <= 0 {
		opts.PresenterOverlap = matcher.DefaultPresenterOverlap
	}
	if opts.PersistConcurrency <= 0 {
		opts.PersistConcurrency = 1
	}
	return &Driver{
		storage: storage,
		opts:    opts,
		logger:  logging.NewComponentLogger(logger, "reconcile"),
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// Summary describes a completed run.
type Summary struct {
	RunID            string               `json:"run_id"`
	StartedAt        time.Time            `json:"started_at"`
	FinishedAt       time.Time            `json:"finished_at"`
	Talks            int                  `json:"talks"`
	Videos           int                  `json:"videos"`
	Slides           int                  `json:"slides"`
	Overrides        int                  `json:"overrides"`
	OverrideProblems []string             `json:"override_problems,omitempty"`
	Passes           []matcher.PassReport `json:"passes"`
	Matches          []records.Match      `json:"matches"`
	SlideMatches     []records.SlideMatch `json:"slide_matches"`
	UnmatchedTalks   int                  `json:"unmatched_talks"`
	UnmatchedVideos  int                  `json:"unmatched_videos"`
	UnmatchedSlides  int                  `json:"unmatched_slides"`
}

// Run executes one reconciliation. Prior match relations are replaced.
func (d *Driver) Run(ctx context.Context) (Summary, error) {
	if d.storage == nil {
		return Summary{}, services.Wrap(services.ErrConfiguration, "reconcile", "run", "storage unavailable", nil)
	}

	unlock, err := acquireLock(d.opts.LockPath)
	if err != nil {
		return Summary{}, err
	}
	defer unlock()

	summary := Summary{RunID: d.newID(), StartedAt: d.now()}
	ctx = services.WithRunID(ctx, summary.RunID)
	logger := logging.WithContext(ctx, d.logger)
	logger.Info("reconciliation started",
		logging.String(logging.FieldEventType, "run_start"),
		logging.String("min_release", d.opts.MinRelease),
	)

	table, err := overrides.Load(d.opts.OverridesPath)
	if err != nil {
		return summary, services.Wrap(services.ErrConfiguration, "reconcile", "load overrides", d.opts.OverridesPath, err)
	}

	talks, videos, slides, err := d.load(ctx)
	if err != nil {
		return summary, err
	}
	summary.Talks, summary.Videos, summary.Slides = len(talks), len(videos), len(slides)
	summary.Overrides = table.Len()
	summary.OverrideProblems = d.checkOverrides(logger, table, talks, videos)

	if err := d.storage.ResetMatches(ctx); err != nil {
		return summary, services.Wrap(services.ErrStorage, "reconcile", "reset matches", "", err)
	}

	ws := matcher.NewWorkingSet(talks, videos, slides)
	ws = matcher.NewSlideMatcher(d.opts.SlideStages, d.logger).Apply(services.WithPass(ctx, "slides"), ws)

	passes := matcher.DefaultPasses(matcher.Options{
		Overrides:        table,
		PresenterOverlap: d.opts.PresenterOverlap,
	}, d.logger)
	ws, reports, err := matcher.NewPipeline(d.logger, passes...).Run(ctx, ws)
	summary.Passes = reports
	if err != nil {
		return summary, err
	}

	summary.Matches = ws.Matches()
	summary.SlideMatches = ws.SlideMatches()
	summary.UnmatchedTalks = ws.TalkCount()
	summary.UnmatchedVideos = ws.VideoCount()
	summary.UnmatchedSlides = ws.SlideCount()

	if err := persist(ctx, d.storage, summary.Matches, summary.SlideMatches, d.opts.PersistConcurrency); err != nil {
		logging.ErrorWithContext(logger, "persist failed", "persist_failed",
			logging.Error(err),
			logging.String(logging.FieldImpact, "match relations are incomplete"),
			logging.String(logging.FieldErrorHint, "re-run talkmatch match"),
		)
		return summary, err
	}
	summary.FinishedAt = d.now()

	if recorder, ok := d.storage.(runRecorder); ok {
		run := store.Run{
			ID:              summary.RunID,
			StartedAt:       summary.StartedAt,
			FinishedAt:      summary.FinishedAt,
			Matches:         len(summary.Matches),
			SlideMatches:    len(summary.SlideMatches),
			UnmatchedTalks:  summary.UnmatchedTalks,
			UnmatchedVideos: summary.UnmatchedVideos,
		}
		if err := recorder.RecordRun(ctx, run); err != nil {
			logging.WarnWithContext(logger, "failed to record run history", "run_history",
				logging.Error(err),
				logging.String(logging.FieldImpact, "stats will not show this run"),
			)
		}
	}

	logger.Info("reconciliation complete",
		logging.String(logging.FieldEventType, "run_complete"),
		logging.Int("matches", len(summary.Matches)),
		logging.Int("slide_matches", len(summary.SlideMatches)),
		logging.Int("unmatched_talks", summary.UnmatchedTalks),
		logging.Int("unmatched_videos", summary.UnmatchedVideos),
		logging.Duration("elapsed", summary.FinishedAt.Sub(summary.StartedAt)),
	)
	return summary, nil
}

func (d *Driver) load(ctx context.Context) ([]records.Talk, []records.Video, []records.Slide, error) {
	talks, err := d.storage.LoadTalks(ctx)
	if err != nil {
		return nil, nil, nil, services.Wrap(services.ErrStorage, "reconcile", "load talks", "", err)
	}
	videos, err := d.storage.LoadVideos(ctx, d.opts.MinRelease)
	if err != nil {
		return nil, nil, nil, services.Wrap(services.ErrStorage, "reconcile", "load videos", "", err)
	}
	slides, err := d.storage.LoadSlides(ctx)
	if err != nil {
		return nil, nil, nil, services.Wrap(services.ErrStorage, "reconcile", "load slides", "", err)
	}
	return talks, videos, slides, nil
}

func (d *Driver) checkOverrides(logger *slog.Logger, table overrides.Table, talks []records.Talk, videos []records.Video) []string {
	if table.Len() == 0 {
		return nil
	}
	talkIDs := make([]string, 0, len(talks))
	for _, talk := range talks {
		talkIDs = append(talkIDs, talk.ID)
	}
	videoURIs := make([]string, 0, len(videos))
	for _, video := range videos {
		videoURIs = append(videoURIs, video.URI)
	}
	problems := table.Validate(talkIDs, videoURIs).Problems()
	for _, problem := range problems {
		logging.WarnWithContext(logger, "override entry will not apply cleanly", "override_anomaly",
			logging.String("problem", problem),
			logging.String(logging.FieldErrorHint, "run talkmatch overrides check"),
		)
	}
	return problems
}
