package main

import (
	"encoding/json"
	"io"

	"github.com/spf13/cobra"
)

// printResult writes v as indented JSON when asJSON is set and otherwise
// hands stdout to the human renderer. Titles and URIs keep their '&' and
// '<' characters unescaped.
func printResult(cmd *cobra.Command, asJSON bool, v any, human func(out io.Writer)) error {
	out := cmd.OutOrStdout()
	if !asJSON {
		human(out)
		return nil
	}
	enc := json.NewEncoder(out)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
