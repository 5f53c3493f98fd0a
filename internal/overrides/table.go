package overrides

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Entry pins one talk to one video.
type Entry struct {
	TalkID   string `json:"talk_id" yaml:"talk_id"`
	VideoURI string `json:"video_uri" yaml:"video_uri"`
	Note     string `json:"note,omitempty" yaml:"note,omitempty"`
}

// Table is the ordered, curated override list. Order matters: when two entries
// claim the same video the earlier one consumes it.
type Table struct {
	Version int
	Path    string
	Entries []Entry
}

type document struct {
	Version   int     `json:"version" yaml:"version"`
	Overrides []Entry `json:"overrides" yaml:"overrides"`
}

// Load reads an override file. A blank path or a missing file yields an empty
// table; curated overrides are optional.
func Load(path string) (Table, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return Table{}, nil
	}
	data, err := os.ReadFile(trimmed)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Table{Path: trimmed}, nil
		}
		return Table{}, fmt.Errorf("read overrides: %w", err)
	}
	table, err := Parse(data, formatFor(trimmed))
	if err != nil {
		return Table{}, fmt.Errorf("parse overrides %s: %w", filepath.Base(trimmed), err)
	}
	table.Path = trimmed
	return table, nil
}

// Format selects the override file syntax.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

func formatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Parse decodes either a bare entry list or a {version, overrides} document.
func Parse(data []byte, format Format) (Table, error) {
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return Table{}, nil
	}

	var doc document
	switch format {
	case FormatYAML:
		var node yaml.Node
		if err := yaml.Unmarshal(trimmed, &node); err != nil {
			return Table{}, err
		}
		if len(node.Content) > 0 && node.Content[0].Kind == yaml.SequenceNode {
			if err := node.Decode(&doc.Overrides); err != nil {
				return Table{}, err
			}
		} else if err := node.Decode(&doc); err != nil {
			return Table{}, err
		}
	default:
		if trimmed[0] == '[' {
			if err := json.Unmarshal(trimmed, &doc.Overrides); err != nil {
				return Table{}, err
			}
		} else if err := json.Unmarshal(trimmed, &doc); err != nil {
			return Table{}, err
		}
	}

	entries := make([]Entry, 0, len(doc.Overrides))
	for i, entry := range doc.Overrides {
		entry.normalize()
		if entry.TalkID == "" || entry.VideoURI == "" {
			return Table{}, fmt.Errorf("override %d: talk_id and video_uri are required", i)
		}
		entries = append(entries, entry)
	}
	return Table{Version: doc.Version, Entries: entries}, nil
}

func (e *Entry) normalize() {
	e.TalkID = strings.TrimSpace(e.TalkID)
	e.VideoURI = strings.TrimSpace(e.VideoURI)
	e.Note = strings.TrimSpace(e.Note)
}

// Len returns the number of entries.
func (t Table) Len() int {
	return len(t.Entries)
}
