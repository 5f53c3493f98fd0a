package overrides

import (
	"fmt"
	"sort"
	"strings"
)

// Report lists override entries that cannot apply cleanly to the current data.
type Report struct {
	UnknownTalks  []Entry
	UnknownVideos []Entry
	// SharedVideos maps a video uri to every entry that claims it.
	SharedVideos map[string][]Entry
}

// Empty reports whether no anomaly was found.
func (r Report) Empty() bool {
	return len(r.UnknownTalks) == 0 && len(r.UnknownVideos) == 0 && len(r.SharedVideos) == 0
}

// Problems renders each anomaly as one line, in a stable order.
func (r Report) Problems() []string {
	var lines []string
	for _, entry := range r.UnknownTalks {
		lines = append(lines, fmt.Sprintf("unknown talk %q (video %s)", entry.TalkID, entry.VideoURI))
	}
	for _, entry := range r.UnknownVideos {
		lines = append(lines, fmt.Sprintf("unknown video %q (talk %s)", entry.VideoURI, entry.TalkID))
	}
	uris := make([]string, 0, len(r.SharedVideos))
	for uri := range r.SharedVideos {
		uris = append(uris, uri)
	}
	sort.Strings(uris)
	for _, uri := range uris {
		talks := make([]string, 0, len(r.SharedVideos[uri]))
		for _, entry := range r.SharedVideos[uri] {
			talks = append(talks, entry.TalkID)
		}
		lines = append(lines, fmt.Sprintf("video %q claimed by talks %s; first entry wins", uri, strings.Join(talks, ", ")))
	}
	return lines
}

// Validate checks every entry against the known talk ids and video uris.
// Callers pass the videos eligible for the run, so an entry whose video was
// filtered out by release date shows up as unknown.
func (t Table) Validate(talkIDs, videoURIs []string) Report {
	talks := toSet(talkIDs)
	videos := toSet(videoURIs)

	report := Report{}
	claims := make(map[string][]Entry)
	for _, entry := range t.Entries {
		if _, ok := talks[entry.TalkID]; !ok {
			report.UnknownTalks = append(report.UnknownTalks, entry)
		}
		if _, ok := videos[entry.VideoURI]; !ok {
			report.UnknownVideos = append(report.UnknownVideos, entry)
		}
		claims[entry.VideoURI] = append(claims[entry.VideoURI], entry)
	}
	for uri, entries := range claims {
		if len(entries) < 2 {
			continue
		}
		if report.SharedVideos == nil {
			report.SharedVideos = make(map[string][]Entry)
		}
		report.SharedVideos[uri] = entries
	}
	return report
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, value := range values {
		set[value] = struct{}{}
	}
	return set
}
