package tui

import (
	"shatilah/internal/catalog"
	"shatilah/internal/model"

	"github.com/charmbracelet/bubbles/list"
)

type prayerItem struct {
	index int
	text  string
	done  bool
}

func (i prayerItem) FilterValue() string { return i.text }
func (i prayerItem) Title() string       { return checkGlyph(i.done) + " " + i.text }
func (i prayerItem) Done() bool          { return i.done }

type requestItem struct {
	req model.SharedRequest
}

func (i requestItem) FilterValue() string { return i.req.Text }
func (i requestItem) Title() string       { return checkGlyph(i.req.Completed) + " " + i.req.Text }
func (i requestItem) Done() bool          { return i.req.Completed }
func (i requestItem) Suffix() string      { return i.req.Date }

func checkGlyph(done bool) string {
	if done {
		return glyphChecked()
	}
	return glyphUnchecked()
}

func prayerItems(day catalog.Day, snap model.Snapshot) []list.Item {
	items := make([]list.Item, 0, len(day.Prayers))
	for i, p := range day.Prayers {
		items = append(items, prayerItem{index: i, text: p, done: snap.Progress.Done(day.Name, i)})
	}
	return items
}

func requestItems(snap model.Snapshot) []list.Item {
	items := make([]list.Item, 0, len(snap.Requests))
	for _, r := range snap.Requests {
		items = append(items, requestItem{req: r})
	}
	return items
}

func newList(title string, items []list.Item) list.Model {
	l := list.New(items, newCompactItemDelegate(), 0, 0)
	l.Title = title
	// The app renders its own header and footer, so list chrome stays off.
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetShowPagination(false)
	l.SetFilteringEnabled(false)
	l.KeyMap.Quit.SetEnabled(false)
	l.KeyMap.ForceQuit.SetEnabled(false)

	cursorUpKeys := append([]string{}, l.KeyMap.CursorUp.Keys()...)
	l.KeyMap.CursorUp.SetKeys(append(cursorUpKeys, "ctrl+p")...)
	cursorDownKeys := append([]string{}, l.KeyMap.CursorDown.Keys()...)
	l.KeyMap.CursorDown.SetKeys(append(cursorDownKeys, "ctrl+n")...)
	return l
}
