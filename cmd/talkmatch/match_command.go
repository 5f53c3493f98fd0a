package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"talkmatch/internal/config"
	"talkmatch/internal/reconcile"
	"talkmatch/internal/store"
)

func newMatchCommand(ctx *commandContext) *cobra.Command {
	var minRelease string
	var overridesPath string
	var noOverrides bool

	cmd := &cobra.Command{
		Use:   "match",
		Short: "Run a reconciliation and replace the stored matches",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				opts := reconcile.OptionsFromConfig(cfg)
				if value := strings.TrimSpace(minRelease); value != "" {
					opts.MinRelease = value
				}
				if value := strings.TrimSpace(overridesPath); value != "" {
					expanded, err := config.ExpandPath(value)
					if err != nil {
						return fmt.Errorf("resolve overrides path: %w", err)
					}
					opts.OverridesPath = expanded
				}
				if noOverrides {
					opts.OverridesPath = ""
				}

				summary, err := reconcile.New(st, opts, ctx.loggerValue()).Run(cmd.Context())
				if err != nil {
					return err
				}
				return printResult(cmd, ctx.jsonOutput(), summary, func(out io.Writer) {
					printMatchSummary(out, summary)
				})
			})
		},
	}

	cmd.Flags().StringVar(&minRelease, "min-release", "", "Only match videos released on or after this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&overridesPath, "overrides", "", "Override file to use instead of the configured one")
	cmd.Flags().BoolVar(&noOverrides, "no-overrides", false, "Skip curated overrides for this run")
	return cmd
}

func printMatchSummary(out io.Writer, summary reconcile.Summary) {
	colorize := useColor(out)

	rows := make([][]string, 0, len(summary.Passes))
	for i, pass := range summary.Passes {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			pass.Name,
			strconv.Itoa(pass.MatchedTalks),
			strconv.Itoa(pass.NewMatches),
			strconv.Itoa(pass.UnmatchedTalks),
			strconv.Itoa(pass.UnmatchedVideos),
		})
	}
	fmt.Fprintln(out, renderTable(
		[]string{"#", "Pass", "Talks", "Matches", "Unmatched Talks", "Unmatched Videos"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignRight, alignRight, alignRight, alignRight},
	))

	printLines(out, reportHeading("Run "+summary.RunID, colorize)...)
	printLines(out,
		reportLine("Inputs", verdictNote,
			fmt.Sprintf("%d talks, %d videos, %d slides", summary.Talks, summary.Videos, summary.Slides), colorize),
		reportLine("Video matches", verdictMatched, strconv.Itoa(len(summary.Matches)), colorize),
		reportLine("Slide matches", leftoverVerdict(summary.UnmatchedSlides),
			fmt.Sprintf("%d (%d slides unmatched)", len(summary.SlideMatches), summary.UnmatchedSlides), colorize),
	)
	if len(summary.OverrideProblems) > 0 {
		fmt.Fprintln(out, reportLine("Overrides", verdictInvalid,
			fmt.Sprintf("%d of %d entries need attention (run `talkmatch overrides check`)",
				len(summary.OverrideProblems), summary.Overrides), colorize))
	}
	message := strconv.Itoa(summary.UnmatchedVideos)
	if summary.UnmatchedVideos > 0 {
		message += " (list them with `talkmatch matches --unmatched`)"
	}
	fmt.Fprintln(out, reportLine("Unmatched videos", leftoverVerdict(summary.UnmatchedVideos), message, colorize))
}
