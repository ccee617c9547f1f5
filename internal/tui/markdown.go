package tui

import (
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
	"github.com/charmbracelet/glamour/styles"
	"github.com/charmbracelet/lipgloss"
)

var (
	mdRendererMu sync.Mutex
	// Renderers are cached by style and wrap width. WithAutoStyle can block
	// on terminal background queries, so a fixed style is used instead.
	mdRenderers = map[string]*glamour.TermRenderer{}
)

func renderMarkdown(md string, width int) string {
	md = strings.TrimSpace(md)
	if md == "" {
		return ""
	}
	if width < 10 {
		width = 10
	}

	mdRendererMu.Lock()
	defer mdRendererMu.Unlock()

	styleName := markdownStyle()
	key := styleName + ":" + strconv.Itoa(width)
	r := mdRenderers[key]
	if r == nil {
		cfg := markdownStyleConfig(styleName)
		zero := uint(0)
		cfg.Document.Margin = &zero
		rr, err := glamour.NewTermRenderer(
			glamour.WithStyles(cfg),
			glamour.WithWordWrap(width),
		)
		if err != nil {
			return md
		}
		mdRenderers[key] = rr
		r = rr
	}

	out, err := r.Render(md)
	if err != nil {
		return md
	}
	return strings.TrimRight(out, "\n")
}

// quoteMarkdown formats a scripture quote as a block quote with its reference
// on a separate line. Quotes look like "text - Book 1:2".
func quoteMarkdown(quote string) string {
	quote = strings.TrimSpace(quote)
	if quote == "" {
		return ""
	}
	body, ref := quote, ""
	if i := strings.LastIndex(quote, " - "); i > 0 {
		body, ref = strings.TrimSpace(quote[:i]), strings.TrimSpace(quote[i+3:])
	}
	var b strings.Builder
	b.WriteString("> *")
	b.WriteString(strings.Trim(body, `"`))
	b.WriteString("*\n")
	if ref != "" {
		b.WriteString(">\n> **")
		b.WriteString(ref)
		b.WriteString("**\n")
	}
	return b.String()
}

func markdownStyleConfig(styleName string) ansi.StyleConfig {
	var cfg ansi.StyleConfig
	if styleName == "light" {
		cfg = styles.LightStyleConfig
	} else {
		cfg = styles.DarkStyleConfig
	}
	text := mdColor(colorSurfaceFg, styleName)
	cfg.Text.Color = text
	cfg.Strong.Color = nil
	cfg.Emph.Color = nil
	cfg.BlockQuote.Color = text
	cfg.BlockQuote.Faint = mdBoolPtr(false)
	return cfg
}

func markdownStyle() string {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("SHATILAH_TUI_MD_STYLE"))) {
	case "light":
		return "light"
	case "dark":
		return "dark"
	}
	switch strings.ToLower(strings.TrimSpace(os.Getenv("SHATILAH_TUI_THEME"))) {
	case "light":
		return "light"
	case "dark":
		return "dark"
	}
	if lipgloss.HasDarkBackground() {
		return "dark"
	}
	return "light"
}

func mdColor(c lipgloss.AdaptiveColor, styleName string) *string {
	if styleName == "light" {
		return mdStrPtr(c.Light)
	}
	return mdStrPtr(c.Dark)
}

func mdStrPtr(s string) *string { return &s }
func mdBoolPtr(b bool) *bool    { return &b }
