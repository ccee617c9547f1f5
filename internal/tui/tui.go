package tui

import (
	"math/rand/v2"
	"time"

	"shatilah/internal/state"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
)

type Options struct {
	Now  func() time.Time
	Rand *rand.Rand
	// Glyphs is "unicode" or "ascii".
	Glyphs string
	// ShowQuote opens the scripture modal on start.
	ShowQuote bool
	Logger    zerolog.Logger
}

// Run starts the interactive program over an already-loaded manager.
func Run(mgr *state.Manager, opts Options) error {
	applyColorProfilePreference()
	applyThemePreference()
	applyGlyphPreference(opts.Glyphs)

	m := newAppModel(mgr, opts)
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	if err != nil {
		opts.Logger.Error().Err(err).Msg("tui exited")
	}
	return err
}
