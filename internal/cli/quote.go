package cli

import (
	"github.com/spf13/cobra"

	"shatilah/internal/catalog"
)

func newQuoteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "quote",
		Short: "Print a random scripture quote",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{"quote": catalog.PickQuote(catalog.Quotes(), app.rand)},
			})
		},
	}
}
