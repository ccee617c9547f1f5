package state

import (
	json "github.com/goccy/go-json"

	"shatilah/internal/model"
)

// LoadStatus describes what Load found under one key.
type LoadStatus string

const (
	LoadMissing    LoadStatus = "missing"
	LoadOK         LoadStatus = "ok"
	LoadCorrupt    LoadStatus = "corrupt"
	LoadUnreadable LoadStatus = "unreadable"
)

type LoadReport struct {
	Progress LoadStatus `json:"progress"`
	Requests LoadStatus `json:"requests"`
	// DroppedRequests counts entries discarded for an empty or repeated id.
	DroppedRequests int `json:"droppedRequests,omitempty"`
}

// Load replaces in-memory state with what the store holds. Each collection
// falls back to empty on its own when its value is missing, unreadable or
// not the expected JSON shape; Load never fails.
func (m *Manager) Load() LoadReport {
	var rep LoadReport
	m.progress, rep.Progress = m.loadProgress()
	m.requests, rep.Requests, rep.DroppedRequests = m.loadRequests()
	return rep
}

func (m *Manager) loadProgress() (model.PrayerProgress, LoadStatus) {
	raw, status := m.read(ProgressKey)
	if status != LoadOK {
		return model.PrayerProgress{}, status
	}
	var p model.PrayerProgress
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		m.log.Warn().Err(err).Str("key", ProgressKey).Msg("discarding corrupt state")
		return model.PrayerProgress{}, LoadCorrupt
	}
	if p == nil {
		p = model.PrayerProgress{}
	}
	return p, LoadOK
}

func (m *Manager) loadRequests() ([]model.SharedRequest, LoadStatus, int) {
	raw, status := m.read(RequestsKey)
	if status != LoadOK {
		return []model.SharedRequest{}, status, 0
	}
	var rs []model.SharedRequest
	if err := json.Unmarshal([]byte(raw), &rs); err != nil {
		m.log.Warn().Err(err).Str("key", RequestsKey).Msg("discarding corrupt state")
		return []model.SharedRequest{}, LoadCorrupt, 0
	}

	out := make([]model.SharedRequest, 0, len(rs))
	seen := make(map[string]bool, len(rs))
	dropped := 0
	for _, r := range rs {
		if r.ID == "" || seen[r.ID] {
			dropped++
			continue
		}
		seen[r.ID] = true
		out = append(out, r)
	}
	if dropped > 0 {
		m.log.Warn().Int("dropped", dropped).Str("key", RequestsKey).Msg("dropped requests with empty or duplicate ids")
	}
	return out, LoadOK, dropped
}

func (m *Manager) read(key string) (string, LoadStatus) {
	raw, ok, err := m.kv.Get(key)
	if err != nil {
		m.log.Warn().Err(err).Str("key", key).Msg("read state")
		return "", LoadUnreadable
	}
	if !ok {
		return "", LoadMissing
	}
	return raw, LoadOK
}
