package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// compactItemDelegate renders one line per item: the title, then an optional
// right-aligned suffix. Finished items are dimmed.
type compactItemDelegate struct {
	normal   lipgloss.Style
	done     lipgloss.Style
	selected lipgloss.Style
	suffix   lipgloss.Style
}

func newCompactItemDelegate() compactItemDelegate {
	return compactItemDelegate{
		normal: lipgloss.NewStyle().Foreground(colorSurfaceFg),
		done:   lipgloss.NewStyle().Foreground(colorDone),
		selected: lipgloss.NewStyle().
			Foreground(colorSelectedFg).
			Background(colorSelectedBg).
			Bold(true),
		suffix: styleMuted(),
	}
}

func (d compactItemDelegate) Height() int  { return 1 }
func (d compactItemDelegate) Spacing() int { return 0 }
func (d compactItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d compactItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	contentW := m.Width()
	if contentW < 4 {
		return
	}

	style := d.normal
	if it, ok := item.(interface{ Done() bool }); ok && it.Done() {
		style = d.done
	}
	if index == m.Index() {
		style = d.selected
	}

	txt := ""
	if t, ok := item.(interface{ Title() string }); ok {
		txt = t.Title()
	} else {
		txt = fmt.Sprint(item)
	}
	suffix := ""
	if s, ok := item.(interface{ Suffix() string }); ok {
		suffix = strings.TrimSpace(s.Suffix())
	}

	fmt.Fprint(w, composeRow(txt, suffix, contentW, style, d.suffix))
}

// composeRow pads or cuts title to fill width, keeping room for suffix when
// both fit.
func composeRow(title, suffix string, width int, st, suffixSt lipgloss.Style) string {
	sufW := xansi.StringWidth(suffix)
	if suffix == "" || sufW+2 >= width {
		suffix, sufW = "", 0
	}
	avail := width
	if sufW > 0 {
		avail = width - sufW - 1
	}

	line := title
	lineW := xansi.StringWidth(line)
	if lineW > avail {
		line = xansi.Truncate(line, avail, "…")
		lineW = xansi.StringWidth(line)
	}
	if lineW < avail {
		line += strings.Repeat(" ", avail-lineW)
	}
	if sufW == 0 {
		return st.Render(line)
	}
	return st.Render(line+" ") + suffixSt.Render(suffix)
}
