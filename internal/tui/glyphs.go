package tui

import (
	"strings"
	"sync"
)

// Terminals can't change the user's font, so affordances come in a Unicode
// and an ASCII variant.

type glyphSet int

const (
	glyphSetUnicode glyphSet = iota
	glyphSetASCII
)

var (
	glyphsMu      sync.RWMutex
	currentGlyphs = glyphSetUnicode
)

// applyGlyphPreference selects the glyph set by name. Unknown names are ignored.
func applyGlyphPreference(name string) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "unicode", "utf8":
		setGlyphs(glyphSetUnicode)
	case "ascii":
		setGlyphs(glyphSetASCII)
	}
}

func setGlyphs(gs glyphSet) {
	glyphsMu.Lock()
	currentGlyphs = gs
	glyphsMu.Unlock()
}

func glyphs() glyphSet {
	glyphsMu.RLock()
	gs := currentGlyphs
	glyphsMu.RUnlock()
	return gs
}

func glyphChecked() string {
	if glyphs() == glyphSetASCII {
		return "[x]"
	}
	return "✔"
}

func glyphUnchecked() string {
	if glyphs() == glyphSetASCII {
		return "[ ]"
	}
	return "○"
}

func glyphBullet() string {
	if glyphs() == glyphSetASCII {
		return "*"
	}
	return "•"
}

func glyphHRule() string {
	if glyphs() == glyphSetASCII {
		return "-"
	}
	return "─"
}

var dayIcons = map[string][2]string{
	"church":  {"✝", "+"},
	"sunrise": {"☀", "o"},
	"heart":   {"♥", "<3"},
	"users":   {"☺", "&"},
	"shield":  {"⛨", "#"},
	"star":    {"★", "*"},
	"moon":    {"☾", "("},
}

// glyphDayIcon maps a schedule icon name to a terminal glyph.
func glyphDayIcon(name string) string {
	pair, ok := dayIcons[name]
	if !ok {
		return glyphBullet()
	}
	if glyphs() == glyphSetASCII {
		return pair[1]
	}
	return pair[0]
}
