package catalog

import (
	"math/rand/v2"
	"strings"
	"time"
)

// Day is one entry of the weekly schedule.
type Day struct {
	Name        string   `json:"day"`
	Theme       string   `json:"theme"`
	Icon        string   `json:"icon"`
	Color       string   `json:"color"`
	SpecialNote string   `json:"specialNote,omitempty"`
	Prayers     []string `json:"prayers"`
}

// Days are ordered Sunday first so that days[time.Weekday] addresses them.
var days = []Day{
	{
		Name:  "Sunday",
		Theme: "Church & Worship",
		Icon:  "church",
		Color: "#3B82F6",
		Prayers: []string{
			"Morning praise and worship together",
			"Prayer for our church community and pastors",
			"Thanksgiving for God's faithfulness in our relationship",
			"Intercession for church growth and unity",
			"Prayer for wisdom in serving together",
			"Evening reflection on God's Word",
		},
	},
	{
		Name:  "Monday",
		Theme: "New Beginnings & Unity",
		Icon:  "sunrise",
		Color: "#22C55E",
		Prayers: []string{
			"Morning prayer for unity in our relationship",
			"Seeking God's guidance for the week ahead",
			"Prayer for trust and communication",
			"Intercession for our future marriage plans",
			"Prayer for strength to love sacrificially",
			"Evening gratitude for each other",
		},
	},
	{
		Name:  "Tuesday",
		Theme: "Trust & Communication",
		Icon:  "heart",
		Color: "#EC4899",
		Prayers: []string{
			"Prayer for deeper trust between us",
			"Seeking wisdom in our conversations",
			"Prayer for patience and understanding",
			"Intercession for emotional healing",
			"Prayer for authentic vulnerability",
			"Evening prayer for peaceful rest",
		},
	},
	{
		Name:  "Wednesday",
		Theme: "Future & Family",
		Icon:  "users",
		Color: "#A855F7",
		Prayers: []string{
			"Prayer for our future family and children",
			"Seeking God's will for our career paths",
			"Prayer for financial wisdom and provision",
			"Intercession for our parents and families",
			"Prayer for preparing our hearts for marriage",
			"Evening prayer for shared dreams and visions",
		},
	},
	{
		Name:        "Thursday",
		Theme:       "Fasting & Spiritual Warfare",
		Icon:        "shield",
		Color:       "#EF4444",
		SpecialNote: "Fasting Day (Lunch Only)",
		Prayers: []string{
			"Morning fast and prayer for spiritual breakthrough",
			"Warfare prayer against relationship attacks",
			"Binding strongholds over our families",
			"Prayer for protection from temptation",
			"Intercession for spiritual growth and maturity",
			"Evening breaking of fast with thanksgiving",
		},
	},
	{
		Name:  "Friday",
		Theme: "Purpose & Ministry",
		Icon:  "star",
		Color: "#F59E0B",
		Prayers: []string{
			"Prayer for discovering our joint ministry calling",
			"Seeking God's purpose for our relationship",
			"Prayer for opportunities to serve together",
			"Intercession for the lost and broken",
			"Prayer for boldness in sharing our faith",
			"Evening prayer for fruitfulness in God's kingdom",
		},
	},
	{
		Name:  "Saturday",
		Theme: "Rest & Reflection",
		Icon:  "moon",
		Color: "#6366F1",
		Prayers: []string{
			"Morning quiet time and meditation",
			"Reflection on the week's spiritual growth",
			"Thanksgiving for answered prayers",
			"Prayer for rest and sabbath peace",
			"Intercession for personal character development",
			"Evening prayer of gratitude and contentment",
		},
	},
}

var quotes = []string{
	"Two are better than one, because they have a good return for their labor. - Ecclesiastes 4:9",
	"Above all else, guard your heart, for everything you do flows from it. - Proverbs 4:23",
	"Love is patient, love is kind... - 1 Corinthians 13:4",
	"Commit to the Lord whatever you do, and he will establish your plans. - Proverbs 16:3",
	"Be completely humble and gentle; be patient, bearing with one another in love. - Ephesians 4:2",
}

// PrayerTip is shown under every day's prayer list.
const PrayerTip = "Pray together, holding hands when possible. Let each prayer be a conversation with God about your relationship and His plans for you both."

// Days returns the schedule in display order (Sunday through Saturday).
// The returned slice is a copy.
func Days() []Day {
	out := make([]Day, len(days))
	for i, d := range days {
		out[i] = d.clone()
	}
	return out
}

// ByWeekday returns the record for a platform weekday (Sunday = 0).
func ByWeekday(w time.Weekday) Day {
	i := int(w) % len(days)
	if i < 0 {
		i += len(days)
	}
	return days[i].clone()
}

// Today returns the record for now's weekday in now's location.
func Today(now time.Time) Day {
	return ByWeekday(now.Weekday())
}

// Lookup resolves a day by full name or three-letter abbreviation, case-insensitively.
func Lookup(name string) (Day, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return Day{}, false
	}
	for _, d := range days {
		full := strings.ToLower(d.Name)
		if name == full || (len(name) == 3 && strings.HasPrefix(full, name)) {
			return d.clone(), true
		}
	}
	return Day{}, false
}

// Weekday returns the platform weekday index of a day name.
func Weekday(name string) (time.Weekday, bool) {
	d, ok := Lookup(name)
	if !ok {
		return 0, false
	}
	for i := range days {
		if days[i].Name == d.Name {
			return time.Weekday(i), true
		}
	}
	return 0, false
}

// Names returns the canonical day names, Sunday first.
func Names() []string {
	out := make([]string, 0, len(days))
	for _, d := range days {
		out = append(out, d.Name)
	}
	return out
}

// Quotes returns a copy of the quotation pool.
func Quotes() []string {
	return append([]string(nil), quotes...)
}

// PickQuote selects one element of pool uniformly at random. It returns ""
// for an empty pool.
func PickQuote(pool []string, r *rand.Rand) string {
	if len(pool) == 0 {
		return ""
	}
	if r == nil {
		return pool[rand.IntN(len(pool))]
	}
	return pool[r.IntN(len(pool))]
}

func (d Day) clone() Day {
	d.Prayers = append([]string(nil), d.Prayers...)
	return d
}
