package format

import (
	"strings"
	"time"

	"golang.org/x/text/language"
)

const DefaultLocale = "en-US"

// Index-aligned with dateLayouts; the first entry is the fallback.
var dateLocales = []language.Tag{
	language.AmericanEnglish,
	language.BritishEnglish,
	language.French,
	language.Spanish,
	language.Indonesian,
	language.Malay,
	language.German,
	language.Japanese,
	language.Chinese,
}

var dateLayouts = []string{
	"1/2/2006",
	"02/01/2006",
	"02/01/2006",
	"2/1/2006",
	"2/1/2006",
	"2/1/2006",
	"2.1.2006",
	"2006/1/2",
	"2006/1/2",
}

var dateMatcher = language.NewMatcher(dateLocales)

// DateLayout returns the short numeric date layout for a BCP 47 locale.
func DateLayout(locale string) string {
	locale = strings.TrimSpace(locale)
	if locale == "" {
		return dateLayouts[0]
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return dateLayouts[0]
	}
	_, idx, conf := dateMatcher.Match(tag)
	if conf == language.No || idx < 0 || idx >= len(dateLayouts) {
		return dateLayouts[0]
	}
	return dateLayouts[idx]
}

// ShortDate formats t the way a calendar in locale writes a date, e.g.
// 10/16/2026 for en-US and 16.10.2026 for de.
func ShortDate(t time.Time, locale string) string {
	return t.Format(DateLayout(locale))
}

// ValidLocale reports whether locale parses as a BCP 47 tag.
func ValidLocale(locale string) bool {
	if strings.TrimSpace(locale) == "" {
		return true
	}
	_, err := language.Parse(strings.TrimSpace(locale))
	return err == nil
}
