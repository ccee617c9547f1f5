package cli

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"shatilah/internal/catalog"
	"shatilah/internal/model"
	"shatilah/internal/state"
)

type prayerLine struct {
	Index int    `json:"index"`
	Key   string `json:"key"`
	Text  string `json:"text"`
	Done  bool   `json:"done"`
}

type dayView struct {
	Day         string            `json:"day"`
	Theme       string            `json:"theme"`
	Icon        string            `json:"icon"`
	Color       string            `json:"color"`
	SpecialNote string            `json:"specialNote,omitempty"`
	Prayers     []prayerLine      `json:"prayers"`
	Progress    model.DayProgress `json:"progress"`
}

func newDayCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "day [name]",
		Short: "Show a day's theme and prayers with completion (default: today)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := resolveDay(app, args)
			if err != nil {
				return writeErr(cmd, err)
			}
			mgr, err := app.open(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{
				"data": buildDayView(mgr, day),
				"_hints": []string{
					"shatilah toggle " + strings.ToLower(day.Name) + " <index>",
					"shatilah progress " + strings.ToLower(day.Name),
				},
			})
		},
	}
}

func newToggleCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "toggle <day> <index>",
		Short: "Toggle one prayer line as prayed / not prayed",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			day, ok := catalog.Lookup(args[0])
			if !ok {
				return writeErr(cmd, unknownDayError{name: args[0]})
			}
			idx, err := parseIndex(args[1])
			if err != nil {
				return writeErr(cmd, err)
			}
			mgr, err := app.open(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			done := mgr.ToggleCompletion(day.Name, idx)
			meta := map[string]any{"progress": mgr.DayProgress(day)}
			if idx >= len(day.Prayers) {
				meta["outOfRange"] = true
			}
			return writeOut(cmd, app, map[string]any{
				"data": map[string]any{
					"key":  model.CompletionKey(day.Name, idx),
					"done": done,
				},
				"meta": meta,
			})
		},
	}
}

func resolveDay(app *App, args []string) (catalog.Day, error) {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" || strings.EqualFold(strings.TrimSpace(args[0]), "today") {
		return catalog.Today(app.now()), nil
	}
	day, ok := catalog.Lookup(args[0])
	if !ok {
		return catalog.Day{}, unknownDayError{name: args[0]}
	}
	return day, nil
}

func parseIndex(raw string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 0 {
		return 0, invalidIndexError{raw: raw}
	}
	return n, nil
}

func buildDayView(mgr *state.Manager, day catalog.Day) dayView {
	v := dayView{
		Day:         day.Name,
		Theme:       day.Theme,
		Icon:        day.Icon,
		Color:       day.Color,
		SpecialNote: day.SpecialNote,
		Prayers:     make([]prayerLine, 0, len(day.Prayers)),
		Progress:    mgr.DayProgress(day),
	}
	for i, p := range day.Prayers {
		v.Prayers = append(v.Prayers, prayerLine{
			Index: i,
			Key:   model.CompletionKey(day.Name, i),
			Text:  p,
			Done:  mgr.Done(day.Name, i),
		})
	}
	return v
}
