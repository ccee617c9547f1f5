package tui

import (
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme/palette helpers.
//
// The TUI must remain readable on both light and dark terminal backgrounds.
// Faint styling is only applied on dark backgrounds.

func ac(light, dark string) lipgloss.AdaptiveColor {
	return lipgloss.AdaptiveColor{Light: light, Dark: dark}
}

func faintIfDark(st lipgloss.Style) lipgloss.Style {
	if lipgloss.HasDarkBackground() {
		return st.Faint(true)
	}
	return st
}

var (
	colorMuted         = ac("240", "243")
	colorChromeMutedFg = ac("240", "245")
	colorSelectedBg    = ac("#e9e9e9", "#262626")
	colorSelectedFg    = ac("235", "255")
	colorSurfaceFg     = ac("235", "252")
	colorControlBg     = ac("252", "235")
	colorAccent        = ac("27", "62")
	colorAccentFg      = ac("255", "235")
	colorBorder        = ac("250", "243")
	colorDone          = ac("28", "78")
	colorWarnFg        = ac("130", "214")
)

// dayColor returns the schedule color for a day's accents. Hex colors read
// on both backgrounds so they are used for both variants.
func dayColor(hex string) lipgloss.TerminalColor {
	if strings.TrimSpace(hex) == "" {
		return colorAccent
	}
	return lipgloss.Color(hex)
}

func styleMuted() lipgloss.Style {
	return faintIfDark(lipgloss.NewStyle().Foreground(colorMuted))
}

func styleTitle() lipgloss.Style {
	return lipgloss.NewStyle().Bold(true).Foreground(colorSurfaceFg)
}

// applyColorProfilePreference sets Lip Gloss's color profile for the interactive TUI.
//
// termenv.EnvColorProfile respects CLICOLOR/CLICOLOR_FORCE, which can disable
// colors in a TUI. Only NO_COLOR is honored here.
func applyColorProfilePreference() {
	if strings.TrimSpace(os.Getenv("NO_COLOR")) != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		return
	}

	profile := termenv.ColorProfile()

	term := strings.ToLower(strings.TrimSpace(os.Getenv("TERM")))
	colorterm := strings.ToLower(strings.TrimSpace(os.Getenv("COLORTERM")))
	if strings.Contains(colorterm, "truecolor") || strings.Contains(colorterm, "24bit") {
		if profile != termenv.Ascii {
			profile = termenv.TrueColor
		}
	} else if strings.Contains(term, "256color") && (profile == termenv.Ascii || profile == termenv.ANSI) {
		profile = termenv.ANSI256
	}

	lipgloss.SetColorProfile(profile)
}

// applyThemePreference configures Lip Gloss's background detection.
//
// Priority:
// 1) SHATILAH_TUI_THEME=light|dark|auto
// 2) COLORFGBG heuristic ("fg;bg", e.g. "15;0" = dark bg)
func applyThemePreference() {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("SHATILAH_TUI_THEME"))) {
	case "light":
		lipgloss.SetHasDarkBackground(false)
		return
	case "dark":
		lipgloss.SetHasDarkBackground(true)
		return
	}

	if v := strings.TrimSpace(os.Getenv("COLORFGBG")); v != "" {
		parts := strings.Split(v, ";")
		if bg, err := strconv.Atoi(strings.TrimSpace(parts[len(parts)-1])); err == nil {
			lipgloss.SetHasDarkBackground(bg < 7)
		}
	}
}
