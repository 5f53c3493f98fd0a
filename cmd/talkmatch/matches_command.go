package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"talkmatch/internal/config"
	"talkmatch/internal/store"
)

type unmatchedVideo struct {
	URI         string `json:"uri"`
	Name        string `json:"name"`
	ReleaseTime string `json:"release_time"`
}

func newMatchesCommand(ctx *commandContext) *cobra.Command {
	var slides bool
	var unmatched bool
	var source string

	cmd := &cobra.Command{
		Use:   "matches",
		Short: "List persisted talk-video (or talk-slide) matches",
		Long: "List persisted talk-video (or talk-slide) matches.\n\n" +
			"With --unmatched, list the videos released on or after the configured cutoff that no talk claimed.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			source = strings.TrimSpace(source)
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				switch {
				case unmatched:
					videos, err := st.UnmatchedVideos(cmd.Context(), cfg.Matching.MinReleaseDate)
					if err != nil {
						return err
					}
					view := make([]unmatchedVideo, 0, len(videos))
					rows := make([][]string, 0, len(videos))
					for _, video := range videos {
						view = append(view, unmatchedVideo{URI: video.URI, Name: video.Name, ReleaseTime: video.ReleaseTime})
						rows = append(rows, []string{video.Name, video.URI, video.ReleaseTime})
					}
					return printResult(cmd, ctx.jsonOutput(), view, func(out io.Writer) {
						printRows(out, []string{"Video", "URI", "Released"}, rows, "unmatched videos")
					})

				case slides:
					pairs, err := st.SlidePairs(cmd.Context())
					if err != nil {
						return err
					}
					pairs = filterBySource(pairs, source, func(p store.SlidePair) string { return p.Source })
					rows := make([][]string, 0, len(pairs))
					for _, pair := range pairs {
						rows = append(rows, []string{pair.TalkTitle, pair.Stage, pair.SlideTitle, pair.SlideSlug, pair.Source})
					}
					return printResult(cmd, ctx.jsonOutput(), pairs, func(out io.Writer) {
						printRows(out, []string{"Talk", "Stage", "Slide", "Slug", "Source"}, rows, "matches")
					})

				default:
					pairs, err := st.MatchedPairs(cmd.Context())
					if err != nil {
						return err
					}
					pairs = filterBySource(pairs, source, func(p store.MatchedPair) string { return p.Source })
					rows := make([][]string, 0, len(pairs))
					for _, pair := range pairs {
						rows = append(rows, []string{pair.TalkTitle, pair.Stage, pair.VideoName, pair.VideoURI, pair.Source})
					}
					return printResult(cmd, ctx.jsonOutput(), pairs, func(out io.Writer) {
						printRows(out, []string{"Talk", "Stage", "Video", "URI", "Source"}, rows, "matches")
					})
				}
			})
		},
	}

	cmd.Flags().BoolVar(&slides, "slides", false, "List slide matches instead of video matches")
	cmd.Flags().BoolVar(&unmatched, "unmatched", false, "List videos no talk was matched to")
	cmd.Flags().StringVar(&source, "source", "", "Only list matches produced by this pass (e.g. override, exact_title)")
	cmd.MarkFlagsMutuallyExclusive("unmatched", "slides")
	cmd.MarkFlagsMutuallyExclusive("unmatched", "source")
	return cmd
}

func filterBySource[T any](pairs []T, source string, sourceOf func(T) string) []T {
	if source == "" {
		return pairs
	}
	filtered := make([]T, 0, len(pairs))
	for _, pair := range pairs {
		if strings.EqualFold(sourceOf(pair), source) {
			filtered = append(filtered, pair)
		}
	}
	return filtered
}

// printRows renders rows as a table followed by a "<n> <noun>" footer.
func printRows(out io.Writer, headers []string, rows [][]string, noun string) {
	if len(rows) == 0 {
		fmt.Fprintf(out, "No %s found\n", noun)
		return
	}
	fmt.Fprintln(out, renderTable(headers, rows, nil))
	fmt.Fprintf(out, "%d %s\n", len(rows), noun)
}
