package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/glamour/styles"
	xansi "github.com/charmbracelet/x/ansi"
)

func TestMarkdownStyle_RespectsTUITheme(t *testing.T) {
	t.Setenv("SHATILAH_TUI_MD_STYLE", "")

	t.Setenv("SHATILAH_TUI_THEME", "light")
	if got := markdownStyle(); got != "light" {
		t.Fatalf("expected light; got %q", got)
	}

	t.Setenv("SHATILAH_TUI_THEME", "dark")
	if got := markdownStyle(); got != "dark" {
		t.Fatalf("expected dark; got %q", got)
	}

	t.Setenv("SHATILAH_TUI_MD_STYLE", "light")
	if got := markdownStyle(); got != "light" {
		t.Fatalf("expected md style override; got %q", got)
	}
}

func TestMarkdownStyleConfig_KeepsLinkStyles(t *testing.T) {
	got := markdownStyleConfig("dark")
	want := styles.DarkStyleConfig
	if strPtr(got.Link.Color) != strPtr(want.Link.Color) {
		t.Fatalf("link color changed: %q vs %q", strPtr(got.Link.Color), strPtr(want.Link.Color))
	}
	if strPtr(got.Text.Color) != colorSurfaceFg.Dark {
		t.Fatalf("expected surface text color; got %q", strPtr(got.Text.Color))
	}
}

func TestQuoteMarkdown(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"Love is patient - 1 Corinthians 13:4", "> *Love is patient*\n>\n> **1 Corinthians 13:4**\n"},
		{"No reference here", "> *No reference here*\n"},
	}
	for _, tc := range cases {
		if got := quoteMarkdown(tc.in); got != tc.want {
			t.Fatalf("quoteMarkdown(%q): got %q want %q", tc.in, got, tc.want)
		}
	}
}

func TestRenderMarkdown_Quote(t *testing.T) {
	t.Setenv("SHATILAH_TUI_MD_STYLE", "dark")

	out := renderMarkdown(quoteMarkdown("Two are better than one, because they have a good return for their labor. - Ecclesiastes 4:9"), 60)
	plain := xansi.Strip(out)
	for _, want := range []string{"Two are better", "Ecclesiastes"} {
		if !strings.Contains(plain, want) {
			t.Fatalf("expected %q in output; got:\n%s", want, plain)
		}
	}
	if strings.Contains(plain, "**") {
		t.Fatalf("expected markdown to be rendered; got:\n%s", plain)
	}
}

func TestRenderMarkdown_Empty(t *testing.T) {
	if got := renderMarkdown("   ", 40); got != "" {
		t.Fatalf("expected empty output; got %q", got)
	}
}

func strPtr(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
