package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"shatilah/internal/state"
)

var errDoctorIssuesFound = errors.New("doctor: stored state has issues")

func newDoctorCmd(app *App) *cobra.Command {
	var fail bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Report where state lives and whether it loads cleanly",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Load through a fresh manager so the report reflects the store, not this process.
			if _, err := app.open(cmd.Context()); err != nil {
				return writeErr(cmd, err)
			}
			rep := state.New(app.store.KV, state.WithLogger(app.log)).Load()

			keys, keysErr := app.store.Keys()
			data := map[string]any{
				"backend": app.store.Backend,
				"dir":     app.store.Dir,
				"keys":    keys,
				"load":    rep,
			}
			if keysErr != nil {
				data["keysError"] = keysErr.Error()
			}

			healthy := rep.Progress != state.LoadCorrupt && rep.Progress != state.LoadUnreadable &&
				rep.Requests != state.LoadCorrupt && rep.Requests != state.LoadUnreadable &&
				rep.DroppedRequests == 0
			if err := writeOut(cmd, app, map[string]any{
				"data": data,
				"meta": map[string]any{"healthy": healthy},
			}); err != nil {
				return err
			}
			if fail && !healthy {
				return errDoctorIssuesFound
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&fail, "fail", false, "Exit with non-zero status if issues are found")
	return cmd
}
