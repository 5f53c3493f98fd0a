package records

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// TalkFixture is the file form of a talk, with presenters as a structured list.
type TalkFixture struct {
	ID          string      `json:"id" yaml:"id"`
	Stage       string      `json:"stage" yaml:"stage"`
	Title       string      `json:"title" yaml:"title"`
	Description string      `json:"description" yaml:"description"`
	Presenters  []Presenter `json:"presenters" yaml:"presenters"`
	Date        string      `json:"date" yaml:"date"`
	StartTime   string      `json:"start_time" yaml:"start_time"`
	EndTime     string      `json:"end_time" yaml:"end_time"`
	DurationSec int         `json:"duration_sec,omitempty" yaml:"duration_sec,omitempty"`
	Topics      []string    `json:"topics,omitempty" yaml:"topics,omitempty"`
}

// Talk converts the fixture into the stored record shape.
func (f TalkFixture) Talk() Talk {
	return Talk{
		ID:            strings.TrimSpace(f.ID),
		Stage:         f.Stage,
		Title:         f.Title,
		Description:   f.Description,
		Date:          f.Date,
		StartTime:     f.StartTime,
		EndTime:       f.EndTime,
		DurationSec:   f.DurationSec,
		Topics:        f.Topics,
		PresentersRaw: EncodePresenters(f.Presenters),
	}.Normalized()
}

// Fixture bundles the three input record sets as exported by the importers.
type Fixture struct {
	Talks  []TalkFixture `json:"talks" yaml:"talks"`
	Videos []Video       `json:"videos" yaml:"videos"`
	Slides []Slide       `json:"slides" yaml:"slides"`
}

// LoadFixture reads a JSON or YAML fixture. The format follows the extension;
// anything other than .yaml/.yml is parsed as JSON.
func LoadFixture(path string) (Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Fixture{}, fmt.Errorf("read fixture: %w", err)
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	var fixture Fixture
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fixture)
	default:
		err = json.Unmarshal(data, &fixture)
	}
	if err != nil {
		return Fixture{}, fmt.Errorf("parse fixture %s: %w", filepath.Base(path), err)
	}
	if err := fixture.validate(); err != nil {
		return Fixture{}, err
	}
	return fixture, nil
}

// TalkRecords returns the talks in stored form.
func (f Fixture) TalkRecords() []Talk {
	out := make([]Talk, 0, len(f.Talks))
	for _, talk := range f.Talks {
		out = append(out, talk.Talk())
	}
	return out
}

func (f Fixture) validate() error {
	seenTalks := make(map[string]struct{}, len(f.Talks))
	for i, talk := range f.Talks {
		id := strings.TrimSpace(talk.ID)
		if id == "" {
			return fmt.Errorf("fixture talk %d: id is required", i)
		}
		if _, dup := seenTalks[id]; dup {
			return fmt.Errorf("fixture talk %q: duplicate id", id)
		}
		seenTalks[id] = struct{}{}
	}
	seenVideos := make(map[string]struct{}, len(f.Videos))
	for i, video := range f.Videos {
		uri := strings.TrimSpace(video.URI)
		if uri == "" {
			return fmt.Errorf("fixture video %d: uri is required", i)
		}
		if _, dup := seenVideos[uri]; dup {
			return fmt.Errorf("fixture video %q: duplicate uri", uri)
		}
		seenVideos[uri] = struct{}{}
	}
	seenSlides := make(map[string]struct{}, len(f.Slides))
	for i, slide := range f.Slides {
		slug := strings.TrimSpace(slide.Slug)
		if slug == "" {
			return fmt.Errorf("fixture slide %d: slug is required", i)
		}
		if _, dup := seenSlides[slug]; dup {
			return fmt.Errorf("fixture slide %q: duplicate slug", slug)
		}
		seenSlides[slug] = struct{}{}
	}
	return nil
}
