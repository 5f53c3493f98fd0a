package records

import (
	"encoding/json"
	"fmt"
	"strings"

	"talkmatch/internal/textutil"
)

// Presenter is one participant listed on a scheduled talk.
type Presenter struct {
	Name        string `json:"name" yaml:"name"`
	CompanyName string `json:"companyName,omitempty" yaml:"company_name,omitempty"`
	JobTitle    string `json:"jobTitle,omitempty" yaml:"job_title,omitempty"`
	Bio         string `json:"bio,omitempty" yaml:"bio,omitempty"`
}

// Talk is a scheduled session. Presenters are kept as the stored JSON document
// and decoded on demand so a malformed list only affects the pass reading it.
type Talk struct {
	ID            string
	Stage         string
	Title         string
	Description   string
	Date          string
	StartTime     string
	EndTime       string
	DurationSec   int
	Topics        []string
	PresentersRaw string
	TitleSlug     string
}

// Presenters decodes the presenter list.
func (t Talk) Presenters() ([]Presenter, error) {
	raw := strings.TrimSpace(t.PresentersRaw)
	if raw == "" || raw == "null" {
		return nil, nil
	}
	var presenters []Presenter
	if err := json.Unmarshal([]byte(raw), &presenters); err != nil {
		return nil, fmt.Errorf("decode presenters for talk %s: %w", t.ID, err)
	}
	return presenters, nil
}

// Normalized returns a copy with TitleSlug derived from Title.
func (t Talk) Normalized() Talk {
	t.TitleSlug = textutil.Normalize(t.Title)
	return t
}

// Video is a published recording.
type Video struct {
	URI         string `json:"uri" yaml:"uri"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Link        string `json:"link,omitempty" yaml:"link,omitempty"`
	DurationSec int    `json:"duration_sec,omitempty" yaml:"duration_sec,omitempty"`
	ReleaseTime string `json:"release_time" yaml:"release_time"`
	NameSlug    string `json:"-" yaml:"-"`
}

// Normalized returns a copy with NameSlug derived from Name.
func (v Video) Normalized() Video {
	v.NameSlug = textutil.Normalize(v.Name)
	return v
}

// FirstDescriptionLine returns the first line of the description, which by
// convention lists the presenters ("With Jane Doe and John Roe").
func (v Video) FirstDescriptionLine() string {
	line, _, _ := strings.Cut(v.Description, "\n")
	return strings.TrimSpace(strings.TrimSuffix(line, "\r"))
}

// Slide is a published slide deck. Slug is assigned when the deck is ingested.
type Slide struct {
	Slug     string `json:"slug" yaml:"slug"`
	Title    string `json:"title" yaml:"title"`
	Link     string `json:"link" yaml:"link"`
	ImageURL string `json:"image_url" yaml:"image_url"`
}

// Match links a talk to a video. Source names the pass that produced it.
type Match struct {
	TalkID   string `json:"talk_id"`
	VideoURI string `json:"video_uri"`
	Source   string `json:"source,omitempty"`
}

// Key identifies the pair; Source is not part of the identity.
func (m Match) Key() string {
	return m.TalkID + "\x00" + m.VideoURI
}

// SlideMatch links a talk to a slide deck.
type SlideMatch struct {
	TalkID    string `json:"talk_id"`
	SlideSlug string `json:"slide_slug"`
	Source    string `json:"source,omitempty"`
}

// Key identifies the pair; Source is not part of the identity.
func (m SlideMatch) Key() string {
	return m.TalkID + "\x00" + m.SlideSlug
}

// EncodePresenters renders presenters in the stored JSON shape.
func EncodePresenters(presenters []Presenter) string {
	if len(presenters) == 0 {
		return "[]"
	}
	data, err := json.Marshal(presenters)
	if err != nil {
		return "[]"
	}
	return string(data)
}
