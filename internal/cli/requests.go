package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"shatilah/internal/model"
)

func newRequestsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "requests",
		Aliases: []string{"request", "req"},
		Short:   "Shared prayer requests",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List requests, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := app.open(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			reqs := mgr.Snapshot().Requests
			open := 0
			for _, r := range reqs {
				if !r.Completed {
					open++
				}
			}
			return writeOut(cmd, app, map[string]any{
				"data": reqs,
				"meta": map[string]any{"count": len(reqs), "open": open},
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "add <text...>",
		Short: "Add a request (whitespace-only text is ignored)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := app.open(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			req, ok := mgr.AddRequest(strings.Join(args, " "))
			if !ok {
				return writeOut(cmd, app, map[string]any{
					"data": nil,
					"meta": map[string]any{"added": false},
				})
			}
			return writeOut(cmd, app, map[string]any{
				"data":   req,
				"meta":   map[string]any{"added": true},
				"_hints": []string{"shatilah requests done " + req.ID},
			})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:     "done <id>",
		Aliases: []string{"toggle"},
		Short:   "Toggle a request's answered/completed flag",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := app.open(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			id := strings.TrimSpace(args[0])
			mgr.ToggleRequestCompletion(id)
			reqs := mgr.Snapshot().Requests
			i := model.FindRequest(reqs, id)
			if i < 0 {
				return writeOut(cmd, app, map[string]any{"data": nil, "meta": map[string]any{"found": false}})
			}
			return writeOut(cmd, app, map[string]any{"data": reqs[i], "meta": map[string]any{"found": true}})
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a request",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mgr, err := app.open(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			id := strings.TrimSpace(args[0])
			found := model.FindRequest(mgr.Snapshot().Requests, id) >= 0
			mgr.DeleteRequest(id)
			return writeOut(cmd, app, map[string]any{
				"data": mgr.Snapshot().Requests,
				"meta": map[string]any{"found": found},
			})
		},
	})

	return cmd
}
