package model

import (
	"strconv"
	"strings"
)

// PrayerProgress maps completion keys ("<Day>-<index>") to done flags.
// A missing key means not completed.
type PrayerProgress map[string]bool

// SharedRequest is a free-text prayer request shared by both users.
type SharedRequest struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Date      string `json:"date"`
	Completed bool   `json:"completed"`
}

// Snapshot is a read-only copy of the session state handed to the view.
type Snapshot struct {
	Progress PrayerProgress  `json:"progress"`
	Requests []SharedRequest `json:"requests"`
}

type DayProgress struct {
	Day       string `json:"day"`
	Completed int    `json:"completed"`
	Total     int    `json:"total"`
}

// CompletionKey builds the persisted key for one prayer line of one day.
// The format is part of the on-disk contract: "<DayName>-<index>".
func CompletionKey(day string, index int) string {
	return day + "-" + strconv.Itoa(index)
}

// ParseCompletionKey splits a key built by CompletionKey.
func ParseCompletionKey(key string) (day string, index int, ok bool) {
	i := strings.LastIndexByte(key, '-')
	if i <= 0 || i == len(key)-1 {
		return "", 0, false
	}
	n, err := strconv.Atoi(key[i+1:])
	if err != nil || n < 0 {
		return "", 0, false
	}
	return key[:i], n, true
}

func (p PrayerProgress) Done(day string, index int) bool {
	return p[CompletionKey(day, index)]
}

func (p PrayerProgress) Clone() PrayerProgress {
	out := make(PrayerProgress, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

func CloneRequests(rs []SharedRequest) []SharedRequest {
	out := make([]SharedRequest, len(rs))
	copy(out, rs)
	return out
}

// FindRequest returns the index of the request with id, or -1.
func FindRequest(rs []SharedRequest, id string) int {
	for i := range rs {
		if rs[i].ID == id {
			return i
		}
	}
	return -1
}
