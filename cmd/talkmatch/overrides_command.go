package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"talkmatch/internal/config"
	"talkmatch/internal/overrides"
	"talkmatch/internal/services"
	"talkmatch/internal/store"
)

type overridesCheckResult struct {
	Path     string   `json:"path"`
	Version  int      `json:"version"`
	Entries  int      `json:"entries"`
	Problems []string `json:"problems"`
}

func newOverridesCommand(ctx *commandContext) *cobra.Command {
	overridesCmd := &cobra.Command{
		Use:   "overrides",
		Short: "Inspect the curated override file",
	}
	overridesCmd.AddCommand(newOverridesCheckCommand(ctx))
	return overridesCmd
}

func newOverridesCheckCommand(ctx *commandContext) *cobra.Command {
	var filePath string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate override entries against the stored talks and videos",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(cfg *config.Config, st *store.Store) error {
				path := cfg.Paths.Overrides
				if value := strings.TrimSpace(filePath); value != "" {
					expanded, err := config.ExpandPath(value)
					if err != nil {
						return fmt.Errorf("resolve overrides path: %w", err)
					}
					path = expanded
				}
				if path == "" {
					return services.Wrap(services.ErrConfiguration, "cli", "overrides check", "no override file configured", nil)
				}
				table, err := overrides.Load(path)
				if err != nil {
					return services.Wrap(services.ErrValidation, "cli", "overrides check", path, err)
				}

				talks, err := st.LoadTalks(cmd.Context())
				if err != nil {
					return err
				}
				videos, err := st.LoadVideos(cmd.Context(), cfg.Matching.MinReleaseDate)
				if err != nil {
					return err
				}
				talkIDs := make([]string, 0, len(talks))
				for _, talk := range talks {
					talkIDs = append(talkIDs, talk.ID)
				}
				videoURIs := make([]string, 0, len(videos))
				for _, video := range videos {
					videoURIs = append(videoURIs, video.URI)
				}

				result := overridesCheckResult{
					Path:     path,
					Version:  table.Version,
					Entries:  table.Len(),
					Problems: table.Validate(talkIDs, videoURIs).Problems(),
				}
				err = printResult(cmd, ctx.jsonOutput(), result, func(out io.Writer) {
					printOverridesCheck(out, result)
				})
				if err != nil {
					return err
				}
				if len(result.Problems) > 0 {
					return services.Wrap(services.ErrValidation, "cli", "overrides check",
						fmt.Sprintf("%d problem(s) in %s", len(result.Problems), path), nil)
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&filePath, "file", "f", "", "Override file to check instead of the configured one")
	return cmd
}

func printOverridesCheck(out io.Writer, result overridesCheckResult) {
	colorize := useColor(out)
	printLines(out, reportHeading("Overrides", colorize)...)
	printLines(out,
		reportLine("File", verdictNote, result.Path, colorize),
		reportLine("Entries", verdictNote, fmt.Sprintf("%d (version %d)", result.Entries, result.Version), colorize),
	)
	if len(result.Problems) == 0 {
		fmt.Fprintln(out, reportLine("Validation", verdictMatched, "every entry applies cleanly", colorize))
		return
	}
	for _, problem := range result.Problems {
		fmt.Fprintln(out, reportLine("Problem", verdictInvalid, problem, colorize))
	}
}
