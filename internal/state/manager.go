package state

import (
	"crypto/rand"
	"strconv"
	"strings"
	"time"

	json "github.com/goccy/go-json"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"shatilah/internal/catalog"
	"shatilah/internal/format"
	"shatilah/internal/model"
	"shatilah/internal/store"
)

// Store keys. Their layout is shared with every other client of the same store.
const (
	ProgressKey = "shatilah-progress"
	RequestsKey = "shatilah-requests"
)

// Manager owns prayer progress and shared requests for one session.
// Every mutation updates memory first and then writes the whole affected
// collection back to the store. Write failures are logged and swallowed.
//
// A Manager is not safe for concurrent use; the UI drives it from one goroutine.
type Manager struct {
	kv store.KV

	progress model.PrayerProgress
	requests []model.SharedRequest

	now        func() time.Time
	newID      func(time.Time) string
	formatDate func(time.Time) string
	log        zerolog.Logger
}

type Option func(*Manager)

func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

func WithIDGenerator(gen func(time.Time) string) Option {
	return func(m *Manager) { m.newID = gen }
}

func WithDateFormatter(f func(time.Time) string) Option {
	return func(m *Manager) { m.formatDate = f }
}

// WithLocale formats request dates for a BCP 47 locale.
func WithLocale(locale string) Option {
	return func(m *Manager) {
		m.formatDate = func(t time.Time) string { return format.ShortDate(t, locale) }
	}
}

func WithLogger(l zerolog.Logger) Option {
	return func(m *Manager) { m.log = l }
}

func New(kv store.KV, opts ...Option) *Manager {
	m := &Manager{
		kv:         kv,
		progress:   model.PrayerProgress{},
		requests:   []model.SharedRequest{},
		now:        time.Now,
		newID:      monotonicULID(),
		formatDate: func(t time.Time) string { return format.ShortDate(t, format.DefaultLocale) },
		log:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func monotonicULID() func(time.Time) string {
	entropy := ulid.Monotonic(rand.Reader, 0)
	return func(t time.Time) string {
		id, err := ulid.New(ulid.Timestamp(t), entropy)
		if err != nil {
			return ulid.Make().String()
		}
		return id.String()
	}
}

// ToggleCompletion flips the done flag of one prayer line and persists progress.
func (m *Manager) ToggleCompletion(day string, index int) bool {
	key := model.CompletionKey(day, index)
	m.progress[key] = !m.progress[key]
	m.persistProgress()
	return m.progress[key]
}

// ResetWeek clears all completion flags. Requests are untouched.
func (m *Manager) ResetWeek() {
	m.progress = model.PrayerProgress{}
	m.persistProgress()
}

// AddRequest prepends a new request. Whitespace-only text is ignored without
// touching the store.
func (m *Manager) AddRequest(text string) (model.SharedRequest, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.SharedRequest{}, false
	}
	now := m.now()
	req := model.SharedRequest{
		ID:        m.uniqueID(now),
		Text:      text,
		Date:      m.formatDate(now),
		Completed: false,
	}
	m.requests = append([]model.SharedRequest{req}, m.requests...)
	m.persistRequests()
	return req, true
}

func (m *Manager) uniqueID(now time.Time) string {
	id := m.newID(now)
	for i := 0; i < 8 && (id == "" || model.FindRequest(m.requests, id) >= 0); i++ {
		id = m.newID(now)
	}
	if id == "" {
		id = strconv.FormatInt(now.UnixMilli(), 10)
	}
	base := id
	for n := 2; model.FindRequest(m.requests, id) >= 0; n++ {
		id = base + "-" + strconv.Itoa(n)
	}
	return id
}

// ToggleRequestCompletion flips the completed flag of the request with id.
// Unknown ids are ignored; the list is persisted either way.
func (m *Manager) ToggleRequestCompletion(id string) {
	if i := model.FindRequest(m.requests, id); i >= 0 {
		m.requests[i].Completed = !m.requests[i].Completed
	}
	m.persistRequests()
}

// DeleteRequest removes the request with id, keeping the order of the rest.
// Unknown ids are ignored; the list is persisted either way.
func (m *Manager) DeleteRequest(id string) {
	if i := model.FindRequest(m.requests, id); i >= 0 {
		m.requests = append(m.requests[:i:i], m.requests[i+1:]...)
	}
	m.persistRequests()
}

// Snapshot returns copies of both collections.
func (m *Manager) Snapshot() model.Snapshot {
	return model.Snapshot{
		Progress: m.progress.Clone(),
		Requests: model.CloneRequests(m.requests),
	}
}

func (m *Manager) Done(day string, index int) bool {
	return m.progress.Done(day, index)
}

// DayProgress counts completed lines of day. Only indices inside the day's
// current prayer list are read, so keys left over from older content never count.
func (m *Manager) DayProgress(day catalog.Day) model.DayProgress {
	dp := model.DayProgress{Day: day.Name, Total: len(day.Prayers)}
	for i := range day.Prayers {
		if m.progress.Done(day.Name, i) {
			dp.Completed++
		}
	}
	return dp
}

func (m *Manager) persistProgress() {
	m.persist(ProgressKey, m.progress)
}

func (m *Manager) persistRequests() {
	if m.requests == nil {
		m.requests = []model.SharedRequest{}
	}
	m.persist(RequestsKey, m.requests)
}

func (m *Manager) persist(key string, v any) {
	b, err := json.Marshal(v)
	if err != nil {
		m.log.Error().Err(err).Str("key", key).Msg("encode state")
		return
	}
	if err := m.kv.Set(key, string(b)); err != nil {
		m.log.Warn().Err(err).Str("key", key).Msg("persist state; keeping in-memory copy")
	}
}
