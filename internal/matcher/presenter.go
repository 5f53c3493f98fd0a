package matcher

import (
	"log/slog"
	"regexp"
	"strings"

	"talkmatch/internal/logging"
	"talkmatch/internal/records"
	"talkmatch/internal/textutil"
)

// DefaultPresenterOverlap is the share of presenter names a multi-presenter
// talk must have in common with a video.
const DefaultPresenterOverlap = 0.7

var (
	presenterMarkers  = []string{"opening-remarks", "breakout-startups", startupShowcaseMarker}
	leadingWith       = regexp.MustCompile(`(?i)^with\s+`)
	presenterSplitter = regexp.MustCompile(`,|\s+and\s+`)
)

// PresenterRule matches recurring session formats by who is on stage. Video
// descriptions open with a presenter line such as "With Jane Doe and John Roe".
type PresenterRule struct {
	threshold float64
	logger    *slog.Logger
}

// NewPresenterRule builds the rule. A non-positive threshold selects the
// default.
func NewPresenterRule(threshold float64) PresenterRule {
	if threshold <= 0 {
		threshold = DefaultPresenterOverlap
	}
	return PresenterRule{threshold: threshold, logger: logging.NewNop()}
}

// WithLogger returns a copy that reports every overlap score at debug level.
func (r PresenterRule) WithLogger(logger *slog.Logger) PresenterRule {
	r.logger = logging.NewComponentLogger(logger, "matcher")
	return r
}

func (PresenterRule) ID() string   { return "presenter" }
func (PresenterRule) Name() string { return "match via presenter" }

func (PresenterRule) InScope(talk records.Talk) bool {
	return textutil.ContainsAny(talk.TitleSlug, presenterMarkers...)
}

func (r PresenterRule) Narrow(talk records.Talk, videos []records.Video) ([]records.Video, error) {
	presenters, err := talk.Presenters()
	if err != nil {
		return nil, err
	}
	var candidates []records.Video
	for _, video := range videos {
		if textutil.ContainsAny(video.NameSlug, presenterMarkers...) {
			candidates = append(candidates, video)
		}
	}

	switch len(presenters) {
	case 0:
		return nil, nil
	case 1:
		return narrowSinglePresenter(talk, presenters[0], candidates), nil
	default:
		return r.narrowByOverlap(talk, presenters, candidates), nil
	}
}

func narrowSinglePresenter(talk records.Talk, presenter records.Presenter, candidates []records.Video) []records.Video {
	name := textutil.Normalize(presenter.Name)
	if name == "" {
		return nil
	}
	var survivors []records.Video
	for _, video := range candidates {
		if textutil.Normalize(presenterLine(video)) == name {
			survivors = append(survivors, video)
		}
	}
	if len(survivors) <= 1 {
		return survivors
	}
	stage := textutil.Normalize(talk.Stage)
	if stage == "" {
		return survivors
	}
	var onStage []records.Video
	for _, video := range survivors {
		if strings.HasPrefix(video.NameSlug, stage) {
			onStage = append(onStage, video)
		}
	}
	return onStage
}

func (r PresenterRule) narrowByOverlap(talk records.Talk, presenters []records.Presenter, candidates []records.Video) []records.Video {
	talkNames := make([]string, 0, len(presenters))
	for _, presenter := range presenters {
		talkNames = append(talkNames, textutil.Normalize(presenter.Name))
	}
	var survivors []records.Video
	for _, video := range candidates {
		ratio := textutil.OverlapRatio(talkNames, videoPresenters(video))
		if r.logger != nil {
			r.logger.Debug("presenter overlap",
				logging.String(logging.FieldTalkID, talk.ID),
				logging.String(logging.FieldVideoURI, video.URI),
				logging.Float64("overlap", ratio),
				logging.Float64("threshold", r.threshold),
			)
		}
		if ratio > r.threshold {
			survivors = append(survivors, video)
		}
	}
	return survivors
}

// presenterLine is the description's first line without its leading "with ".
func presenterLine(video records.Video) string {
	return leadingWith.ReplaceAllString(video.FirstDescriptionLine(), "")
}

func videoPresenters(video records.Video) []string {
	parts := presenterSplitter.Split(presenterLine(video), -1)
	names := make([]string, 0, len(parts))
	for _, part := range parts {
		if slug := textutil.Normalize(part); slug != "" {
			names = append(names, slug)
		}
	}
	return names
}
