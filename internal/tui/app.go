package tui

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"time"

	"shatilah/internal/catalog"
	"shatilah/internal/state"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
	"github.com/rs/zerolog"
)

type pane int

const (
	panePrayers pane = iota
	paneRequests
)

const (
	defaultWidth   = 80
	defaultHeight  = 24
	maxRequestRows = 8
)

type appModel struct {
	mgr  *state.Manager
	now  func() time.Time
	rand *rand.Rand
	log  zerolog.Logger
	keys keyMap
	help help.Model

	width  int
	height int

	weekday time.Weekday
	focus   pane

	prayers  list.Model
	requests list.Model

	adding bool
	input  textinput.Model

	quote     string
	showQuote bool
	status    string
}

func newAppModel(mgr *state.Manager, opts Options) appModel {
	now := opts.Now
	if now == nil {
		now = time.Now
	}

	in := textinput.New()
	in.Prompt = "> "
	in.Placeholder = "Add a prayer request..."
	in.CharLimit = 500
	in.Width = defaultWidth - 8

	m := appModel{
		mgr:       mgr,
		now:       now,
		rand:      opts.Rand,
		log:       opts.Logger,
		keys:      defaultKeyMap(),
		help:      help.New(),
		width:     defaultWidth,
		height:    defaultHeight,
		weekday:   now().Weekday(),
		input:     in,
		prayers:   newList("Prayers", nil),
		requests:  newList("Requests", nil),
		quote:     catalog.PickQuote(catalog.Quotes(), opts.Rand),
		showQuote: opts.ShowQuote,
	}
	m.refresh()
	return m
}

func (m appModel) Init() tea.Cmd { return nil }

func (m appModel) day() catalog.Day { return catalog.ByWeekday(m.weekday) }

// refresh rebuilds both lists from a fresh snapshot, keeping cursor positions.
func (m *appModel) refresh() {
	snap := m.mgr.Snapshot()

	pi, ri := m.prayers.Index(), m.requests.Index()
	m.prayers.SetItems(prayerItems(m.day(), snap))
	m.requests.SetItems(requestItems(snap))
	// Pagination depends on height, so size before restoring the cursor.
	m.resizeLists()
	m.prayers.Select(clampIndex(pi, len(m.prayers.Items())))
	m.requests.Select(clampIndex(ri, len(m.requests.Items())))
}

func clampIndex(i, n int) int {
	if i >= n {
		i = n - 1
	}
	if i < 0 {
		i = 0
	}
	return i
}

func (m *appModel) resizeLists() {
	w := m.width - 4
	if w < 10 {
		w = 10
	}
	m.prayers.SetSize(w, max(1, len(m.prayers.Items())))
	m.requests.SetSize(w, max(1, min(maxRequestRows, len(m.requests.Items()))))
	m.input.Width = max(10, w-4)
}

func (m *appModel) setDay(wd time.Weekday) {
	m.weekday = (wd + 7) % 7
	m.prayers.Select(0)
	m.status = ""
	m.refresh()
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.resizeLists()
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		if m.showQuote {
			// Any key dismisses the scripture modal.
			m.showQuote = false
			return m, nil
		}
		if m.adding {
			return m.updateInput(msg)
		}
		return m.updateKeys(msg)
	}
	return m, nil
}

func (m appModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.adding = false
		m.input.Reset()
		m.input.Blur()
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		text := m.input.Value()
		m.adding = false
		m.input.Reset()
		m.input.Blur()
		if _, ok := m.mgr.AddRequest(text); ok {
			m.requests.Select(0)
			m.status = "Request added"
		}
		m.refresh()
		return m, nil
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m appModel) updateKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Focus):
		if m.focus == panePrayers {
			m.focus = paneRequests
		} else {
			m.focus = panePrayers
		}
		return m, nil
	case key.Matches(msg, m.keys.Add):
		m.focus = paneRequests
		m.adding = true
		m.status = ""
		return m, m.input.Focus()
	case key.Matches(msg, m.keys.PrevDay):
		m.setDay(m.weekday - 1)
		return m, nil
	case key.Matches(msg, m.keys.NextDay):
		m.setDay(m.weekday + 1)
		return m, nil
	case key.Matches(msg, m.keys.PickDay):
		m.setDay(time.Weekday(msg.Runes[0] - '1'))
		return m, nil
	case key.Matches(msg, m.keys.Today):
		m.setDay(m.now().Weekday())
		return m, nil
	case key.Matches(msg, m.keys.Quote):
		m.quote = catalog.PickQuote(catalog.Quotes(), m.rand)
		m.showQuote = true
		return m, nil
	case key.Matches(msg, m.keys.Progress):
		p := m.mgr.DayProgress(m.day())
		m.status = fmt.Sprintf("%s: %d/%d prayers completed", p.Day, p.Completed, p.Total)
		return m, nil
	case key.Matches(msg, m.keys.CursorMove):
		var cmd tea.Cmd
		if m.focus == panePrayers {
			m.prayers, cmd = m.prayers.Update(msg)
		} else {
			m.requests, cmd = m.requests.Update(msg)
		}
		return m, cmd
	}

	if m.focus == panePrayers {
		if key.Matches(msg, m.keys.Toggle) {
			if it, ok := m.prayers.SelectedItem().(prayerItem); ok {
				done := m.mgr.ToggleCompletion(m.day().Name, it.index)
				m.log.Debug().Str("day", m.day().Name).Int("index", it.index).Bool("done", done).Msg("prayer toggled")
				m.refresh()
			}
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.ToggleReq):
		if it, ok := m.requests.SelectedItem().(requestItem); ok {
			m.mgr.ToggleRequestCompletion(it.req.ID)
			m.refresh()
		}
	case key.Matches(msg, m.keys.Delete):
		if it, ok := m.requests.SelectedItem().(requestItem); ok {
			m.mgr.DeleteRequest(it.req.ID)
			m.status = "Request deleted"
			m.refresh()
		}
	}
	return m, nil
}

func (m appModel) View() string {
	if m.showQuote {
		return m.viewQuoteModal()
	}

	day := m.day()
	accent := dayColor(day.Color)
	innerW := max(10, m.width-4)

	var b []string
	b = append(b, styleTitle().Render("Shatilah")+"  "+styleMuted().Render("Weekly prayer journal"))
	b = append(b, styleMuted().Italic(true).Render(truncateLine(m.quote, innerW)))
	b = append(b, m.viewDayTabs())

	heading := lipgloss.NewStyle().Bold(true).Foreground(accent).
		Render(glyphDayIcon(day.Icon) + " " + day.Name + " " + glyphBullet() + " " + day.Theme)
	b = append(b, "", heading)
	if day.SpecialNote != "" {
		b = append(b, lipgloss.NewStyle().Foreground(colorWarnFg).Render(day.SpecialNote))
	}
	b = append(b, m.paneBox(panePrayers, m.prayers.View()))
	b = append(b, styleMuted().Render(truncateLine("Tip: "+catalog.PrayerTip, innerW)))

	b = append(b, "", styleTitle().Render("Shared Prayer Requests"))
	var reqBody string
	if m.adding {
		reqBody = m.input.View() + "\n"
	}
	if len(m.requests.Items()) == 0 {
		reqBody += styleMuted().Render("No requests yet. Press a to add one.")
	} else {
		reqBody += m.requests.View()
	}
	b = append(b, m.paneBox(paneRequests, reqBody))

	b = append(b, styleMuted().Render(strings.Repeat(glyphHRule(), innerW)))
	if m.status != "" {
		b = append(b, m.status)
	}
	b = append(b, m.help.View(m.helpKeys()))

	return lipgloss.NewStyle().Padding(0, 1).Render(lipgloss.JoinVertical(lipgloss.Left, b...))
}

func (m appModel) helpKeys() help.KeyMap {
	switch {
	case m.adding:
		return inputHelp{m.keys}
	case m.focus == paneRequests:
		return requestHelp{m.keys}
	default:
		return prayerHelp{m.keys}
	}
}

func (m appModel) viewDayTabs() string {
	tabs := make([]string, 0, 7)
	for _, d := range catalog.Days() {
		label := " " + d.Name[:3] + " "
		st := lipgloss.NewStyle().Foreground(colorChromeMutedFg)
		if wd, _ := catalog.Weekday(d.Name); wd == m.weekday {
			st = lipgloss.NewStyle().Bold(true).Foreground(colorAccentFg).Background(dayColor(d.Color))
		}
		tabs = append(tabs, st.Render(label))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m appModel) paneBox(p pane, body string) string {
	border := colorBorder
	if m.focus == p {
		border = colorAccent
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Width(max(10, m.width-4)).
		Render(body)
}

func (m appModel) viewQuoteModal() string {
	w := min(60, max(20, m.width-8))
	body := renderMarkdown(quoteMarkdown(m.quote), w-4)
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorAccent).
		Background(colorControlBg).
		Padding(1, 2).
		Width(w).
		Render(lipgloss.JoinVertical(lipgloss.Left,
			styleTitle().Render("Daily Scripture"),
			"",
			body,
			"",
			styleMuted().Render("press any key to continue"),
		))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func truncateLine(s string, w int) string {
	if lipgloss.Width(s) <= w {
		return s
	}
	return xansi.Truncate(s, w, "…")
}
