package matcher

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"talkmatch/internal/records"
	"talkmatch/internal/textutil"
)

const startupShowcaseMarker = "startup-showcase"

var (
	showcaseStageNumber = regexp.MustCompile(`startup-showcase-(\d+)`)
	talkThemePattern    = regexp.MustCompile(`(?i)this hour focuses on (?:the )?([^,]+),`)
	clockLayouts        = []string{"15:04:05", "15:04", "3:04pm", "3:04 pm", "3:04PM", "3:04 PM", time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04:05"}
)

// TimeSlotRule matches showcase sessions by stage and time slot. Showcase
// videos are named "<stage> - 9:05am - 10:00am"; when several share a slot
// the hour's theme from the talk description picks one.
type TimeSlotRule struct{}

func NewTimeSlotRule() TimeSlotRule { return TimeSlotRule{} }

func (TimeSlotRule) ID() string   { return "time_slot" }
func (TimeSlotRule) Name() string { return "match showcase time slot" }

func (TimeSlotRule) InScope(talk records.Talk) bool {
	return strings.Contains(talk.TitleSlug, startupShowcaseMarker)
}

func (TimeSlotRule) Narrow(talk records.Talk, videos []records.Video) ([]records.Video, error) {
	pattern, err := slotPattern(talk)
	if err != nil {
		return nil, err
	}
	var candidates []records.Video
	for _, video := range videos {
		if strings.Contains(video.NameSlug, startupShowcaseMarker) && pattern.MatchString(video.NameSlug) {
			candidates = append(candidates, video)
		}
	}
	if len(candidates) <= 1 {
		return candidates, nil
	}
	theme, ok := extractTheme(talk.Description)
	if !ok {
		return candidates, nil
	}
	themed := regexp.MustCompile(`(?i)theme:\s*(?:the\s+)?` + regexp.QuoteMeta(theme))
	var survivors []records.Video
	for _, video := range candidates {
		if themed.MatchString(video.Description) {
			survivors = append(survivors, video)
		}
	}
	return survivors, nil
}

// slotPattern builds "<stage>-<start>-<end>" against name slugs.
func slotPattern(talk records.Talk) (*regexp.Regexp, error) {
	stage := showcaseStageNumber.ReplaceAllString(textutil.Normalize(talk.Stage), "startup-showcase-stage-$1")
	if stage == "" {
		return nil, fmt.Errorf("talk %s has no stage", talk.ID)
	}
	start, err := compactClock(talk.StartTime)
	if err != nil {
		return nil, fmt.Errorf("start time: %w", err)
	}
	end, err := compactClock(talk.EndTime)
	if err != nil {
		return nil, fmt.Errorf("end time: %w", err)
	}
	expr := `(?:^|-)` + regexp.QuoteMeta(stage) + `-` + start + `-(?:to-)?` + end + `(?:-|$)`
	return regexp.MustCompile(expr), nil
}

// compactClock renders a schedule time as a lower-case clock string without
// separators ("09:05:00" -> "905am").
func compactClock(value string) (string, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return "", fmt.Errorf("empty clock value")
	}
	for _, layout := range clockLayouts {
		if parsed, err := time.Parse(layout, trimmed); err == nil {
			return parsed.Format("304pm"), nil
		}
	}
	return "", fmt.Errorf("unrecognized clock value %q", value)
}

func extractTheme(description string) (string, bool) {
	match := talkThemePattern.FindStringSubmatch(description)
	if match == nil {
		return "", false
	}
	theme := strings.TrimSpace(match[1])
	return theme, theme != ""
}
