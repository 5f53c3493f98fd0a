package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"talkmatch/internal/records"
	"talkmatch/internal/services"
)

// InsertMatch records a talk-video pair. Re-inserting an existing pair is a no-op.
func (s *Store) InsertMatch(ctx context.Context, match records.Match) error {
	err := s.execWithRetry(ctx,
		"INSERT INTO matches (talk_id, video_uri, source) VALUES (?, ?, ?) ON CONFLICT (talk_id, video_uri) DO NOTHING",
		match.TalkID, match.VideoURI, match.Source)
	if err != nil {
		return services.Wrap(services.ErrStorage, "store", "insert match",
			fmt.Sprintf("talk %s video %s", match.TalkID, match.VideoURI), err)
	}
	return nil
}

// InsertSlideMatch records a talk-slide pair. Re-inserting an existing pair is a no-op.
func (s *Store) InsertSlideMatch(ctx context.Context, match records.SlideMatch) error {
	err := s.execWithRetry(ctx,
		"INSERT INTO slide_matches (talk_id, slide_slug, source) VALUES (?, ?, ?) ON CONFLICT (talk_id, slide_slug) DO NOTHING",
		match.TalkID, match.SlideSlug, match.Source)
	if err != nil {
		return services.Wrap(services.ErrStorage, "store", "insert slide match",
			fmt.Sprintf("talk %s slide %s", match.TalkID, match.SlideSlug), err)
	}
	return nil
}

// MatchedPair is a persisted talk-video match joined with display fields.
type MatchedPair struct {
	TalkID    string `json:"talk_id"`
	TalkTitle string `json:"talk_title"`
	Stage     string `json:"stage"`
	VideoURI  string `json:"video_uri"`
	VideoName string `json:"video_name"`
	Source    string `json:"source"`
}

// MatchedPairs lists persisted talk-video matches ordered by talk title.
func (s *Store) MatchedPairs(ctx context.Context) ([]MatchedPair, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx, `SELECT m.talk_id, COALESCE(t.title, ''), COALESCE(t.stage, ''),
       m.video_uri, COALESCE(v.name, ''), m.source
FROM matches m
LEFT JOIN talks t ON t.id = m.talk_id
LEFT JOIN videos v ON v.uri = m.video_uri
ORDER BY t.title, m.talk_id, m.video_uri`)
	if err != nil {
		return nil, wrap("list matches", err)
	}
	defer rows.Close()

	var pairs []MatchedPair
	for rows.Next() {
		var pair MatchedPair
		if err := rows.Scan(&pair.TalkID, &pair.TalkTitle, &pair.Stage, &pair.VideoURI, &pair.VideoName, &pair.Source); err != nil {
			return nil, wrap("scan match", err)
		}
		pairs = append(pairs, pair)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("list matches", err)
	}
	return pairs, nil
}

// SlidePair is a persisted talk-slide match joined with display fields.
type SlidePair struct {
	TalkID     string `json:"talk_id"`
	TalkTitle  string `json:"talk_title"`
	Stage      string `json:"stage"`
	SlideSlug  string `json:"slide_slug"`
	SlideTitle string `json:"slide_title"`
	Source     string `json:"source"`
}

// SlidePairs lists persisted talk-slide matches ordered by talk title.
func (s *Store) SlidePairs(ctx context.Context) ([]SlidePair, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx, `SELECT m.talk_id, COALESCE(t.title, ''), COALESCE(t.stage, ''),
       m.slide_slug, COALESCE(sl.title, ''), m.source
FROM slide_matches m
LEFT JOIN talks t ON t.id = m.talk_id
LEFT JOIN slides sl ON sl.slug = m.slide_slug
ORDER BY t.title, m.talk_id, m.slide_slug`)
	if err != nil {
		return nil, wrap("list slide matches", err)
	}
	defer rows.Close()

	var pairs []SlidePair
	for rows.Next() {
		var pair SlidePair
		if err := rows.Scan(&pair.TalkID, &pair.TalkTitle, &pair.Stage, &pair.SlideSlug, &pair.SlideTitle, &pair.Source); err != nil {
			return nil, wrap("scan slide match", err)
		}
		pairs = append(pairs, pair)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("list slide matches", err)
	}
	return pairs, nil
}

// StatsFilter narrows the coverage counts.
type StatsFilter struct {
	// MinRelease drops videos released before this date (YYYY-MM-DD).
	MinRelease string
	// ExcludedStages are SQL LIKE patterns; talks on matching stages are not counted.
	ExcludedStages []string
	// ExcludedTitles are SQL LIKE patterns for schedule entries that are not talks.
	ExcludedTitles []string
}

// Stats summarises match coverage.
type Stats struct {
	Talks         int `json:"talks"`
	MatchedTalks  int `json:"matched_talks"`
	Videos        int `json:"videos"`
	MatchedVideos int `json:"matched_videos"`
	Slides        int `json:"slides"`
	MatchedSlides int `json:"matched_slides"`
}

// Stats counts records and how many of them take part in at least one match.
func (s *Store) Stats(ctx context.Context, filter StatsFilter) (Stats, error) {
	ctx = ensureContext(ctx)

	talkWhere, talkArgs := excludePatterns(nil, nil, "t.stage", filter.ExcludedStages)
	talkWhere, talkArgs = excludePatterns(talkWhere, talkArgs, "t.title", filter.ExcludedTitles)
	videoWhere := "1 = 1"
	var videoArgs []any
	if strings.TrimSpace(filter.MinRelease) != "" {
		videoWhere = "v.release_time >= ?"
		videoArgs = append(videoArgs, filter.MinRelease)
	}

	var stats Stats
	queries := []struct {
		dest  *int
		query string
		args  []any
	}{
		{&stats.Talks, "SELECT COUNT(1) FROM talks t WHERE " + joinClauses(talkWhere), talkArgs},
		{&stats.MatchedTalks, "SELECT COUNT(1) FROM talks t WHERE " + joinClauses(talkWhere) +
			" AND EXISTS (SELECT 1 FROM matches m WHERE m.talk_id = t.id)", talkArgs},
		{&stats.Videos, "SELECT COUNT(1) FROM videos v WHERE " + videoWhere, videoArgs},
		{&stats.MatchedVideos, "SELECT COUNT(1) FROM videos v WHERE " + videoWhere +
			" AND EXISTS (SELECT 1 FROM matches m WHERE m.video_uri = v.uri)", videoArgs},
		{&stats.Slides, "SELECT COUNT(1) FROM slides", nil},
		{&stats.MatchedSlides, "SELECT COUNT(1) FROM slides s WHERE EXISTS (SELECT 1 FROM slide_matches m WHERE m.slide_slug = s.slug)", nil},
	}
	for _, q := range queries {
		if err := s.db.QueryRowContext(ctx, q.query, q.args...).Scan(q.dest); err != nil {
			return Stats{}, wrap("stats", err)
		}
	}
	return stats, nil
}

// excludePatterns appends a NOT LIKE clause on column for every pattern.
func excludePatterns(clauses []string, args []any, column string, patterns []string) ([]string, []any) {
	for _, pattern := range patterns {
		pattern = strings.TrimSpace(pattern)
		if pattern == "" {
			continue
		}
		clauses = append(clauses, column+" NOT LIKE ?")
		args = append(args, pattern)
	}
	return clauses, args
}

func joinClauses(clauses []string) string {
	if len(clauses) == 0 {
		return "1 = 1"
	}
	return strings.Join(clauses, " AND ")
}

// UnmatchedVideos lists videos released on or after minRelease that no
// persisted match references, in insertion order.
func (s *Store) UnmatchedVideos(ctx context.Context, minRelease string) ([]records.Video, error) {
	ctx = ensureContext(ctx)
	query := `SELECT v.uri, v.name, v.description, v.link, v.duration_sec, v.release_time
FROM videos v
WHERE NOT EXISTS (SELECT 1 FROM matches m WHERE m.video_uri = v.uri)`
	var args []any
	if strings.TrimSpace(minRelease) != "" {
		query += " AND v.release_time >= ?"
		args = append(args, minRelease)
	}
	query += " ORDER BY v.rowid"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrap("list unmatched videos", err)
	}
	defer rows.Close()

	var videos []records.Video
	for rows.Next() {
		var video records.Video
		if err := rows.Scan(&video.URI, &video.Name, &video.Description, &video.Link,
			&video.DurationSec, &video.ReleaseTime); err != nil {
			return nil, wrap("scan unmatched video", err)
		}
		videos = append(videos, video)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("list unmatched videos", err)
	}
	return videos, nil
}

// Run is the audit row written after each reconciliation.
type Run struct {
	ID              string    `json:"id"`
	StartedAt       time.Time `json:"started_at"`
	FinishedAt      time.Time `json:"finished_at"`
	Matches         int       `json:"matches"`
	SlideMatches    int       `json:"slide_matches"`
	UnmatchedTalks  int       `json:"unmatched_talks"`
	UnmatchedVideos int       `json:"unmatched_videos"`
}

// RecordRun stores a completed run.
func (s *Store) RecordRun(ctx context.Context, run Run) error {
	err := s.execWithRetry(ctx,
		`INSERT INTO runs (id, started_at, finished_at, matches, slide_matches, unmatched_talks, unmatched_videos)
VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.StartedAt.UTC().Format(time.RFC3339Nano), run.FinishedAt.UTC().Format(time.RFC3339Nano),
		run.Matches, run.SlideMatches, run.UnmatchedTalks, run.UnmatchedVideos)
	return wrap("record run", err)
}

// LastRun returns the most recently finished run. ok is false when none exists.
func (s *Store) LastRun(ctx context.Context) (run Run, ok bool, err error) {
	ctx = ensureContext(ctx)
	var started, finished string
	row := s.db.QueryRowContext(ctx, `SELECT id, started_at, finished_at, matches, slide_matches, unmatched_talks, unmatched_videos
FROM runs ORDER BY finished_at DESC LIMIT 1`)
	err = row.Scan(&run.ID, &started, &finished, &run.Matches, &run.SlideMatches, &run.UnmatchedTalks, &run.UnmatchedVideos)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, false, nil
	}
	if err != nil {
		return Run{}, false, wrap("last run", err)
	}
	run.StartedAt, _ = time.Parse(time.RFC3339Nano, started)
	run.FinishedAt, _ = time.Parse(time.RFC3339Nano, finished)
	return run, true, nil
}
