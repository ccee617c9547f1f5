package state

import (
	"bytes"
	"context"
	"reflect"
	"strconv"
	"strings"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"shatilah/internal/catalog"
	"shatilah/internal/model"
	"shatilah/internal/store"
)

var fixedNow = time.Date(2026, 10, 6, 20, 30, 0, 0, time.UTC)

// newTestManager returns a loaded manager with a deterministic clock and ids.
func newTestManager(t *testing.T, kv store.KV) *Manager {
	t.Helper()
	n := 0
	m := New(kv,
		WithClock(func() time.Time { return fixedNow }),
		WithIDGenerator(func(time.Time) string {
			n++
			return "req-" + strconv.Itoa(n)
		}),
	)
	m.Load()
	return m
}

func storedProgress(t *testing.T, kv store.KV) model.PrayerProgress {
	t.Helper()
	raw, ok, err := kv.Get(ProgressKey)
	if err != nil || !ok {
		t.Fatalf("Get(%s): ok=%v err=%v", ProgressKey, ok, err)
	}
	var p model.PrayerProgress
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		t.Fatalf("stored progress is not JSON: %v (%q)", err, raw)
	}
	return p
}

func storedRequests(t *testing.T, kv store.KV) []model.SharedRequest {
	t.Helper()
	raw, ok, err := kv.Get(RequestsKey)
	if err != nil || !ok {
		t.Fatalf("Get(%s): ok=%v err=%v", RequestsKey, ok, err)
	}
	var rs []model.SharedRequest
	if err := json.Unmarshal([]byte(raw), &rs); err != nil {
		t.Fatalf("stored requests are not JSON: %v (%q)", err, raw)
	}
	return rs
}

func TestLoad_EmptyStore(t *testing.T) {
	t.Parallel()

	kv := store.NewMemKV()
	m := New(kv)
	rep := m.Load()

	snap := m.Snapshot()
	if len(snap.Progress) != 0 || len(snap.Requests) != 0 {
		t.Fatalf("expected empty snapshot, got %#v", snap)
	}
	if rep.Progress != LoadMissing || rep.Requests != LoadMissing {
		t.Fatalf("unexpected report: %#v", rep)
	}
	if kv.Sets != 0 {
		t.Fatalf("Load must not write; Sets=%d", kv.Sets)
	}
}

func TestToggleCompletion_RoundTrip(t *testing.T) {
	t.Parallel()

	kv := store.NewMemKV()
	m := newTestManager(t, kv)

	if got := m.ToggleCompletion("Tuesday", 2); !got {
		t.Fatalf("first toggle should mark done")
	}
	if !m.Snapshot().Progress["Tuesday-2"] {
		t.Fatalf("expected Tuesday-2 true in memory")
	}
	if want := (model.PrayerProgress{"Tuesday-2": true}); !reflect.DeepEqual(storedProgress(t, kv), want) {
		t.Fatalf("persisted progress mismatch: %#v", storedProgress(t, kv))
	}

	if got := m.ToggleCompletion("Tuesday", 2); got {
		t.Fatalf("second toggle should clear")
	}
	if m.Snapshot().Progress["Tuesday-2"] {
		t.Fatalf("expected Tuesday-2 false in memory")
	}
	if want := (model.PrayerProgress{"Tuesday-2": false}); !reflect.DeepEqual(storedProgress(t, kv), want) {
		t.Fatalf("persisted progress mismatch: %#v", storedProgress(t, kv))
	}
	if !reflect.DeepEqual(storedProgress(t, kv), m.Snapshot().Progress) {
		t.Fatalf("store and memory diverged")
	}
}

func TestToggleCompletion_ToleratesAnyIndex(t *testing.T) {
	t.Parallel()

	kv := store.NewMemKV()
	m := newTestManager(t, kv)
	m.ToggleCompletion("Sunday", 0)
	m.ToggleCompletion("Sunday", 999)

	p := storedProgress(t, kv)
	if !p["Sunday-0"] || !p["Sunday-999"] {
		t.Fatalf("unexpected stored progress: %#v", p)
	}
}

func TestAddRequest_PrependsAndPersists(t *testing.T) {
	t.Parallel()

	kv := store.NewMemKV()
	m := newTestManager(t, kv)

	req, ok := m.AddRequest("  Pray for patience \n")
	if !ok {
		t.Fatalf("AddRequest returned !ok")
	}
	if req.ID == "" || req.Date == "" || req.Completed || req.Text != "Pray for patience" {
		t.Fatalf("unexpected request: %#v", req)
	}
	if req.Date != "10/6/2026" {
		t.Fatalf("expected en-US date by default, got %q", req.Date)
	}

	snap := m.Snapshot()
	if len(snap.Requests) != 1 || snap.Requests[0] != req {
		t.Fatalf("expected request at position 0; got %#v", snap.Requests)
	}
	if got := storedRequests(t, kv); !reflect.DeepEqual(got, []model.SharedRequest{req}) {
		t.Fatalf("persisted requests mismatch: %#v", got)
	}

	second, _ := m.AddRequest("Healing for Mum")
	snap = m.Snapshot()
	if len(snap.Requests) != 2 || snap.Requests[0].ID != second.ID || snap.Requests[1].ID != req.ID {
		t.Fatalf("expected newest first; got %#v", snap.Requests)
	}
}

func TestAddRequest_EmptyInputIsNoOp(t *testing.T) {
	t.Parallel()

	kv := store.NewMemKV()
	m := newTestManager(t, kv)

	for _, in := range []string{"", "   ", "\t\n"} {
		if _, ok := m.AddRequest(in); ok {
			t.Fatalf("AddRequest(%q) should be ignored", in)
		}
	}
	if len(m.Snapshot().Requests) != 0 {
		t.Fatalf("list should be unchanged")
	}
	if kv.Sets != 0 {
		t.Fatalf("expected no store write; Sets=%d", kv.Sets)
	}
}

func TestAddRequest_IDsStayUnique(t *testing.T) {
	t.Parallel()

	kv := store.NewMemKV()
	m := New(kv, WithIDGenerator(func(time.Time) string { return "same" }))
	m.Load()

	a, _ := m.AddRequest("one")
	b, _ := m.AddRequest("two")
	c, _ := m.AddRequest("three")
	if a.ID == b.ID || b.ID == c.ID || a.ID == c.ID {
		t.Fatalf("ids must be unique: %q %q %q", a.ID, b.ID, c.ID)
	}
}

func TestAddRequest_DefaultIDsAreMonotonic(t *testing.T) {
	t.Parallel()

	m := New(store.NewMemKV(), WithClock(func() time.Time { return fixedNow }))
	m.Load()

	var prev string
	for i := 0; i < 20; i++ {
		req, _ := m.AddRequest("r" + strconv.Itoa(i))
		if req.ID <= prev {
			t.Fatalf("expected increasing ids; %q after %q", req.ID, prev)
		}
		prev = req.ID
	}
}

func TestDeleteRequest_RemovesExactlyOne(t *testing.T) {
	t.Parallel()

	kv := store.NewMemKV()
	m := newTestManager(t, kv)
	third, _ := m.AddRequest("third")
	second, _ := m.AddRequest("second")
	first, _ := m.AddRequest("first")

	m.DeleteRequest(second.ID)

	want := []model.SharedRequest{first, third}
	if got := m.Snapshot().Requests; !reflect.DeepEqual(got, want) {
		t.Fatalf("after delete:\n got: %#v\nwant: %#v", got, want)
	}
	if got := storedRequests(t, kv); !reflect.DeepEqual(got, want) {
		t.Fatalf("persisted after delete: %#v", got)
	}
}

func TestToggleRequestCompletion(t *testing.T) {
	t.Parallel()

	kv := store.NewMemKV()
	m := newTestManager(t, kv)
	req, _ := m.AddRequest("Pray for patience")

	m.ToggleRequestCompletion(req.ID)
	if !m.Snapshot().Requests[0].Completed || !storedRequests(t, kv)[0].Completed {
		t.Fatalf("expected completed after first toggle")
	}
	m.ToggleRequestCompletion(req.ID)
	if m.Snapshot().Requests[0].Completed || storedRequests(t, kv)[0].Completed {
		t.Fatalf("expected not completed after second toggle")
	}
}

func TestUnknownID_IsNoOp(t *testing.T) {
	t.Parallel()

	kv := store.NewMemKV()
	m := newTestManager(t, kv)
	m.AddRequest("a")
	m.AddRequest("b")
	before := m.Snapshot().Requests
	setsBefore := kv.Sets

	m.ToggleRequestCompletion("nonexistent")
	m.DeleteRequest("nonexistent")

	if got := m.Snapshot().Requests; !reflect.DeepEqual(got, before) {
		t.Fatalf("list changed:\n got: %#v\nwant: %#v", got, before)
	}
	if kv.Sets != setsBefore+2 {
		t.Fatalf("expected a persist per call; Sets %d -> %d", setsBefore, kv.Sets)
	}
}

func TestLoad_CorruptProgressIsIsolated(t *testing.T) {
	t.Parallel()

	kv := store.NewMemKV()
	reqs := []model.SharedRequest{
		{ID: "2", Text: "newer", Date: "10/6/2026", Completed: true},
		{ID: "1", Text: "older", Date: "10/5/2026"},
	}
	b, _ := json.Marshal(reqs)
	_ = kv.Set(ProgressKey, "{not json")
	_ = kv.Set(RequestsKey, string(b))

	var logs bytes.Buffer
	m := New(kv, WithLogger(zerolog.New(&logs)))
	rep := m.Load()

	snap := m.Snapshot()
	if len(snap.Progress) != 0 {
		t.Fatalf("expected empty progress, got %#v", snap.Progress)
	}
	if !reflect.DeepEqual(snap.Requests, reqs) {
		t.Fatalf("requests should load intact: %#v", snap.Requests)
	}
	if rep.Progress != LoadCorrupt || rep.Requests != LoadOK {
		t.Fatalf("unexpected report: %#v", rep)
	}
	if !strings.Contains(logs.String(), ProgressKey) {
		t.Fatalf("expected corrupt key to be logged: %q", logs.String())
	}
}

func TestLoad_WrongShapesFallBackIndependently(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name         string
		progress     string
		requests     string
		wantProgress LoadStatus
		wantRequests LoadStatus
	}{
		{"array for progress", `[true]`, `[]`, LoadCorrupt, LoadOK},
		{"string values", `{"Sunday-0":"yes"}`, `[]`, LoadCorrupt, LoadOK},
		{"object for requests", `{}`, `{"id":"1"}`, LoadOK, LoadCorrupt},
		{"null documents", `null`, `null`, LoadOK, LoadOK},
		{"both corrupt", `}`, `]`, LoadCorrupt, LoadCorrupt},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			kv := store.NewMemKV()
			_ = kv.Set(ProgressKey, tt.progress)
			_ = kv.Set(RequestsKey, tt.requests)

			m := New(kv)
			rep := m.Load()
			if rep.Progress != tt.wantProgress || rep.Requests != tt.wantRequests {
				t.Fatalf("report=%#v", rep)
			}
			snap := m.Snapshot()
			if snap.Progress == nil || snap.Requests == nil {
				t.Fatalf("collections must be non-nil after load: %#v", snap)
			}
			// Mutations keep working after a fallback.
			m.ToggleCompletion("Monday", 0)
			m.AddRequest("still works")
		})
	}
}

func TestLoad_DropsDuplicateAndEmptyIDs(t *testing.T) {
	t.Parallel()

	kv := store.NewMemKV()
	_ = kv.Set(RequestsKey, `[{"id":"a","text":"1"},{"id":"","text":"2"},{"id":"a","text":"3"},{"id":"b","text":"4"}]`)

	m := New(kv)
	rep := m.Load()
	got := m.Snapshot().Requests
	if len(got) != 2 || got[0].Text != "1" || got[1].Text != "4" {
		t.Fatalf("unexpected requests: %#v", got)
	}
	if rep.DroppedRequests != 2 {
		t.Fatalf("DroppedRequests=%d", rep.DroppedRequests)
	}
}

func TestWriteFailure_KeepsMemoryAuthoritative(t *testing.T) {
	t.Parallel()

	kv := store.NewMemKV()
	kv.FailSets = true
	var logs bytes.Buffer
	m := New(kv, WithLogger(zerolog.New(&logs)))
	m.Load()

	m.ToggleCompletion("Friday", 1)
	req, ok := m.AddRequest("Provision")
	if !ok {
		t.Fatalf("AddRequest should succeed in memory")
	}

	snap := m.Snapshot()
	if !snap.Progress["Friday-1"] || len(snap.Requests) != 1 || snap.Requests[0].ID != req.ID {
		t.Fatalf("in-memory state lost after write failure: %#v", snap)
	}
	if _, ok, _ := kv.Get(ProgressKey); ok {
		t.Fatalf("nothing should have been stored")
	}
	if !strings.Contains(logs.String(), "storage unavailable") {
		t.Fatalf("expected write failure to be logged: %q", logs.String())
	}
}

func TestSnapshot_IsACopy(t *testing.T) {
	t.Parallel()

	m := newTestManager(t, store.NewMemKV())
	m.AddRequest("x")
	m.ToggleCompletion("Sunday", 1)

	snap := m.Snapshot()
	snap.Progress["Sunday-1"] = false
	snap.Requests[0].Text = "changed"

	again := m.Snapshot()
	if !again.Progress["Sunday-1"] || again.Requests[0].Text != "x" {
		t.Fatalf("snapshot mutation leaked into manager: %#v", again)
	}
}

func TestReload_ReproducesSnapshot(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	ctx := context.Background()

	kv, err := store.OpenSQLiteKV(ctx, dir)
	if err != nil {
		t.Fatalf("OpenSQLiteKV: %v", err)
	}
	m := newTestManager(t, kv)
	m.ToggleCompletion("Wednesday", 4)
	a, _ := m.AddRequest("Career paths")
	m.AddRequest("Parents")
	m.ToggleRequestCompletion(a.ID)
	want := m.Snapshot()
	_ = kv.Close()

	kv2, err := store.OpenSQLiteKV(ctx, dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer kv2.Close()
	m2 := New(kv2)
	m2.Load()
	if got := m2.Snapshot(); !reflect.DeepEqual(got, want) {
		t.Fatalf("reloaded snapshot mismatch:\n got: %#v\nwant: %#v", got, want)
	}
}

func TestDayProgress_IgnoresOrphanedKeys(t *testing.T) {
	t.Parallel()

	kv := store.NewMemKV()
	_ = kv.Set(ProgressKey, `{"Thursday-0":true,"Thursday-5":true,"Thursday-6":true,"Thursday-40":true,"Friday-0":true,"Thursday-1":false}`)
	m := New(kv)
	m.Load()

	day, _ := catalog.Lookup("Thursday")
	got := m.DayProgress(day)
	want := model.DayProgress{Day: "Thursday", Completed: 2, Total: len(day.Prayers)}
	if got != want {
		t.Fatalf("DayProgress=%#v, want %#v", got, want)
	}
}

func TestDayProgress_AnyListLength(t *testing.T) {
	t.Parallel()

	m := newTestManager(t, store.NewMemKV())
	day := catalog.Day{Name: "Monday", Prayers: []string{"only one"}}
	m.ToggleCompletion("Monday", 0)
	if got := m.DayProgress(day); got.Completed != 1 || got.Total != 1 {
		t.Fatalf("DayProgress=%#v", got)
	}
}

func TestResetWeek(t *testing.T) {
	t.Parallel()

	kv := store.NewMemKV()
	m := newTestManager(t, kv)
	m.ToggleCompletion("Saturday", 2)
	m.AddRequest("keep me")

	m.ResetWeek()

	if len(m.Snapshot().Progress) != 0 || len(storedProgress(t, kv)) != 0 {
		t.Fatalf("expected progress cleared")
	}
	if len(m.Snapshot().Requests) != 1 {
		t.Fatalf("requests must survive a reset")
	}
}

func TestWithLocale_FormatsDate(t *testing.T) {
	t.Parallel()

	m := New(store.NewMemKV(), WithClock(func() time.Time { return fixedNow }), WithLocale("de-DE"))
	m.Load()
	req, _ := m.AddRequest("Danke")
	if req.Date != "6.10.2026" {
		t.Fatalf("Date=%q", req.Date)
	}
}
