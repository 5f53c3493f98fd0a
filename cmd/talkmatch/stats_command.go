package main

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"talkmatch/internal/config"
	"talkmatch/internal/store"
)

type statsView struct {
	Stats   store.Stats `json:"stats"`
	LastRun *store.Run  `json:"last_run,omitempty"`
}

func newStatsCommand(ctx *commandContext) *cobra.Command {
	var allStages bool
	var allTitles bool

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show match coverage for talks, videos and slides",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				filter := store.StatsFilter{
					MinRelease:     cfg.Matching.MinReleaseDate,
					ExcludedStages: cfg.Report.ExcludedStages,
					ExcludedTitles: cfg.Report.ExcludedTitles,
				}
				if allStages {
					filter.ExcludedStages = nil
				}
				if allTitles {
					filter.ExcludedTitles = nil
				}
				stats, err := st.Stats(cmd.Context(), filter)
				if err != nil {
					return err
				}
				view := statsView{Stats: stats}
				if run, ok, err := st.LastRun(cmd.Context()); err != nil {
					return err
				} else if ok {
					view.LastRun = &run
				}

				return printResult(cmd, ctx.jsonOutput(), view, func(out io.Writer) {
					printStats(out, view)
				})
			})
		},
	}

	cmd.Flags().BoolVar(&allStages, "all-stages", false, "Include stages excluded in the report configuration")
	cmd.Flags().BoolVar(&allTitles, "all-titles", false, "Include schedule entries excluded by title in the report configuration")
	return cmd
}

func printStats(out io.Writer, view statsView) {
	stats := view.Stats
	rows := [][]string{
		{"Talks", strconv.Itoa(stats.Talks), strconv.Itoa(stats.MatchedTalks), percent(stats.MatchedTalks, stats.Talks)},
		{"Videos", strconv.Itoa(stats.Videos), strconv.Itoa(stats.MatchedVideos), percent(stats.MatchedVideos, stats.Videos)},
		{"Slides", strconv.Itoa(stats.Slides), strconv.Itoa(stats.MatchedSlides), percent(stats.MatchedSlides, stats.Slides)},
	}
	fmt.Fprintln(out, renderTable(
		[]string{"Records", "Total", "Matched", "Coverage"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignRight, alignRight},
	))
	if view.LastRun == nil {
		fmt.Fprintln(out, "No reconciliation run recorded yet")
		return
	}
	run := view.LastRun
	fmt.Fprintf(out, "Last run %s finished %s (%s, took %s): %d video matches, %d slide matches\n",
		run.ID,
		humanize.Time(run.FinishedAt),
		run.FinishedAt.Local().Format(time.DateTime),
		run.FinishedAt.Sub(run.StartedAt).Round(time.Millisecond),
		run.Matches,
		run.SlideMatches,
	)
}
