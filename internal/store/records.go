package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"talkmatch/internal/records"
)

const talkColumns = "id, stage, title, description, date, start_time, end_time, duration_sec, topics, presenters"

// LoadTalks returns every talk in insertion order with slugs derived.
func (s *Store) LoadTalks(ctx context.Context) ([]records.Talk, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx, "SELECT "+talkColumns+" FROM talks ORDER BY rowid")
	if err != nil {
		return nil, wrap("load talks", err)
	}
	defer rows.Close()

	var talks []records.Talk
	for rows.Next() {
		var (
			talk   records.Talk
			topics string
		)
		if err := rows.Scan(&talk.ID, &talk.Stage, &talk.Title, &talk.Description, &talk.Date,
			&talk.StartTime, &talk.EndTime, &talk.DurationSec, &topics, &talk.PresentersRaw); err != nil {
			return nil, wrap("scan talk", err)
		}
		talk.Topics = decodeTopics(topics)
		talks = append(talks, talk.Normalized())
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("load talks", err)
	}
	return talks, nil
}

// LoadVideos returns videos released on or after minRelease (YYYY-MM-DD).
// A blank minRelease disables the filter.
func (s *Store) LoadVideos(ctx context.Context, minRelease string) ([]records.Video, error) {
	ctx = ensureContext(ctx)
	query := "SELECT uri, name, description, link, duration_sec, release_time FROM videos"
	var args []any
	if strings.TrimSpace(minRelease) != "" {
		query += " WHERE release_time >= ?"
		args = append(args, minRelease)
	}
	query += " ORDER BY rowid"

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, wrap("load videos", err)
	}
	defer rows.Close()

	var videos []records.Video
	for rows.Next() {
		var video records.Video
		if err := rows.Scan(&video.URI, &video.Name, &video.Description, &video.Link,
			&video.DurationSec, &video.ReleaseTime); err != nil {
			return nil, wrap("scan video", err)
		}
		videos = append(videos, video.Normalized())
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("load videos", err)
	}
	return videos, nil
}

// LoadSlides returns every slide deck in insertion order.
func (s *Store) LoadSlides(ctx context.Context) ([]records.Slide, error) {
	ctx = ensureContext(ctx)
	rows, err := s.db.QueryContext(ctx, "SELECT slug, title, link, image_url FROM slides ORDER BY rowid")
	if err != nil {
		return nil, wrap("load slides", err)
	}
	defer rows.Close()

	var slides []records.Slide
	for rows.Next() {
		var slide records.Slide
		if err := rows.Scan(&slide.Slug, &slide.Title, &slide.Link, &slide.ImageURL); err != nil {
			return nil, wrap("scan slide", err)
		}
		slides = append(slides, slide)
	}
	if err := rows.Err(); err != nil {
		return nil, wrap("load slides", err)
	}
	return slides, nil
}

// ReplaceTalks swaps the talk table contents in one transaction.
func (s *Store) ReplaceTalks(ctx context.Context, talks []records.Talk) error {
	return s.inTx(ctx, "replace talks", func(tx *sql.Tx) error {
		return replaceTalks(ctx, tx, talks)
	})
}

// ReplaceVideos swaps the video table contents in one transaction.
func (s *Store) ReplaceVideos(ctx context.Context, videos []records.Video) error {
	return s.inTx(ctx, "replace videos", func(tx *sql.Tx) error {
		return replaceVideos(ctx, tx, videos)
	})
}

// ReplaceSlides swaps the slide table contents in one transaction.
func (s *Store) ReplaceSlides(ctx context.Context, slides []records.Slide) error {
	return s.inTx(ctx, "replace slides", func(tx *sql.Tx) error {
		return replaceSlides(ctx, tx, slides)
	})
}

// Inputs bundles the three record sets a run reads.
type Inputs struct {
	Talks  []records.Talk
	Videos []records.Video
	Slides []records.Slide
}

// ReplaceInputs swaps all three record sets and clears both match relations
// in a single transaction. On failure the previous contents stay intact.
func (s *Store) ReplaceInputs(ctx context.Context, in Inputs) error {
	return s.inTx(ctx, "replace inputs", func(tx *sql.Tx) error {
		if err := replaceTalks(ctx, tx, in.Talks); err != nil {
			return err
		}
		if err := replaceVideos(ctx, tx, in.Videos); err != nil {
			return err
		}
		if err := replaceSlides(ctx, tx, in.Slides); err != nil {
			return err
		}
		return recreateMatchTables(ctx, tx)
	})
}

func replaceTalks(ctx context.Context, tx *sql.Tx, talks []records.Talk) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM talks"); err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, "INSERT INTO talks ("+talkColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, talk := range talks {
		presenters := talk.PresentersRaw
		if strings.TrimSpace(presenters) == "" {
			presenters = "[]"
		}
		if _, err := stmt.ExecContext(ctx, talk.ID, talk.Stage, talk.Title, talk.Description, talk.Date,
			talk.StartTime, talk.EndTime, talk.DurationSec, encodeTopics(talk.Topics), presenters); err != nil {
			return err
		}
	}
	return nil
}

func replaceVideos(ctx context.Context, tx *sql.Tx, videos []records.Video) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM videos"); err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, "INSERT INTO videos (uri, name, description, link, duration_sec, release_time) VALUES (?, ?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, video := range videos {
		if _, err := stmt.ExecContext(ctx, video.URI, video.Name, video.Description, video.Link,
			video.DurationSec, video.ReleaseTime); err != nil {
			return err
		}
	}
	return nil
}

func replaceSlides(ctx context.Context, tx *sql.Tx, slides []records.Slide) error {
	if _, err := tx.ExecContext(ctx, "DELETE FROM slides"); err != nil {
		return err
	}
	stmt, err := tx.PrepareContext(ctx, "INSERT INTO slides (slug, title, link, image_url) VALUES (?, ?, ?, ?)")
	if err != nil {
		return err
	}
	defer stmt.Close()
	for _, slide := range slides {
		if _, err := stmt.ExecContext(ctx, slide.Slug, slide.Title, slide.Link, slide.ImageURL); err != nil {
			return err
		}
	}
	return nil
}

// inTx runs fn in a transaction, retrying the whole transaction while the
// database is busy.
func (s *Store) inTx(ctx context.Context, operation string, fn func(*sql.Tx) error) error {
	ctx = ensureContext(ctx)
	err := retryOnBusy(ctx, func() error {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback() }()
		if err := fn(tx); err != nil {
			return err
		}
		return tx.Commit()
	})
	return wrap(operation, err)
}

func encodeTopics(topics []string) string {
	if len(topics) == 0 {
		return "[]"
	}
	data, err := json.Marshal(topics)
	if err != nil {
		return "[]"
	}
	return string(data)
}

func decodeTopics(raw string) []string {
	var topics []string
	if err := json.Unmarshal([]byte(raw), &topics); err != nil {
		return nil
	}
	return topics
}
