package model

import (
	"strconv"
	"time"
)

// Segment is a timestamped slice of a transcript. Times are offsets in
// seconds from the start of the audio. Segments are produced only by the
// transcription client and never modified afterwards.
type Segment struct {
	StartTime float64 `json:"startTime"`
	EndTime   float64 `json:"endTime"`
	Text      string  `json:"text"`
}

// Contains reports whether t falls inside the segment. Both ends are
// inclusive, so a zero-length segment is active at exactly its instant.
func (s Segment) Contains(t float64) bool {
	return s.StartTime <= t && t <= s.EndTime
}

// Entry is one completed transcription session. Entries are immutable once
// created; history removal happens only through an explicit clear.
type Entry struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Segments  []Segment `json:"segments,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	Duration  float64   `json:"duration"`

	// AudioPath is the local playback handle for this session's audio. It
	// points at a temp file that does not survive a restart, so it must
	// never be persisted.
	AudioPath string `json:"audioPath,omitempty"`
}

// NewEntryID derives an entry ID from the creation instant.
func NewEntryID(at time.Time) string {
	return strconv.FormatInt(at.UnixMilli(), 10)
}

// Sanitized returns a copy of the entry safe for persistence, with the
// ephemeral playback handle stripped.
func (e Entry) Sanitized() Entry {
	e.AudioPath = ""
	return e
}
