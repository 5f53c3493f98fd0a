package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"talkmatch/internal/config"
	"talkmatch/internal/records"
	"talkmatch/internal/services"
	"talkmatch/internal/store"
)

type importResult struct {
	Fixture string `json:"fixture"`
	Talks   int    `json:"talks"`
	Videos  int    `json:"videos"`
	Slides  int    `json:"slides"`
}

func newImportCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "import <fixture>",
		Short: "Replace stored talks, videos and slides from a JSON or YAML export",
		Long: "Replace stored talks, videos and slides from a JSON or YAML export.\n\n" +
			"Existing matches refer to the previous records and are cleared; run `talkmatch match` afterwards.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := config.ExpandPath(args[0])
			if err != nil {
				return fmt.Errorf("resolve fixture path: %w", err)
			}
			fixture, err := records.LoadFixture(path)
			if err != nil {
				return services.Wrap(services.ErrValidation, "cli", "import", path, err)
			}

			return ctx.withStore(func(_ *config.Config, st *store.Store) error {
				err := st.ReplaceInputs(cmd.Context(), store.Inputs{
					Talks:  fixture.TalkRecords(),
					Videos: fixture.Videos,
					Slides: fixture.Slides,
				})
				if err != nil {
					return err
				}

				result := importResult{
					Fixture: path,
					Talks:   len(fixture.Talks),
					Videos:  len(fixture.Videos),
					Slides:  len(fixture.Slides),
				}
				return printResult(cmd, ctx.jsonOutput(), result, func(out io.Writer) {
					fmt.Fprintf(out, "Imported %d talks, %d videos and %d slides from %s\n",
						result.Talks, result.Videos, result.Slides, path)
				})
			})
		},
	}
}
