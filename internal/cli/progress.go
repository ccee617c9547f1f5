package cli

import (
	"github.com/spf13/cobra"

	"shatilah/internal/catalog"
	"shatilah/internal/model"
)

func newProgressCmd(app *App) *cobra.Command {
	var week bool

	cmd := &cobra.Command{
		Use:   "progress [day]",
		Short: "Show how many of a day's prayers are done (default: today)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var days []catalog.Day
			if week {
				days = catalog.Days()
			} else {
				day, err := resolveDay(app, args)
				if err != nil {
					return writeErr(cmd, err)
				}
				days = []catalog.Day{day}
			}
			mgr, err := app.open(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			if !week {
				return writeOut(cmd, app, map[string]any{"data": mgr.DayProgress(days[0])})
			}
			out := make([]model.DayProgress, 0, len(days))
			total := model.DayProgress{Day: "week"}
			for _, d := range days {
				dp := mgr.DayProgress(d)
				out = append(out, dp)
				total.Completed += dp.Completed
				total.Total += dp.Total
			}
			return writeOut(cmd, app, map[string]any{"data": out, "meta": total})
		},
	}
	cmd.Flags().BoolVar(&week, "week", false, "Show every day of the week")

	cmd.AddCommand(&cobra.Command{
		Use:   "reset",
		Short: "Clear every completion flag to start a new week",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := app.open(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			mgr.ResetWeek()
			return writeOut(cmd, app, map[string]any{"data": mgr.Snapshot().Progress})
		},
	})
	return cmd
}
