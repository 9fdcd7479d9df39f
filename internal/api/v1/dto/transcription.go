package dto

import (
	"time"

	"github.com/samber/lo"

	"voicescribe/internal/app/model"
)

// SegmentResponse is one timestamped transcript slice on the wire.
type SegmentResponse struct {
	StartTime float64 `json:"startTime"`
	EndTime   float64 `json:"endTime"`
	Text      string  `json:"text"`
}

// TranscriptionResponse is the API representation of a history entry. The
// ephemeral playback handle never leaves the process.
type TranscriptionResponse struct {
	ID        string            `json:"id"`
	Text      string            `json:"text"`
	Segments  []SegmentResponse `json:"segments,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
	Duration  float64           `json:"duration"`
}

// ListTranscriptionsQuery bounds history listings.
type ListTranscriptionsQuery struct {
	Limit int `form:"limit" binding:"omitempty,min=1,max=500"`
}

// StatusResponse reports the session state machine.
type StatusResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"errorMessage,omitempty"`
}

// FromEntry maps a history entry to its API representation.
func FromEntry(e model.Entry) TranscriptionResponse {
	return TranscriptionResponse{
		ID:   e.ID,
		Text: e.Text,
		Segments: lo.Map(e.Segments, func(s model.Segment, _ int) SegmentResponse {
			return SegmentResponse(s)
		}),
		Timestamp: e.Timestamp,
		Duration:  e.Duration,
	}
}

// FromEntries maps a history listing.
func FromEntries(entries []model.Entry) []TranscriptionResponse {
	return lo.Map(entries, func(e model.Entry, _ int) TranscriptionResponse {
		return FromEntry(e)
	})
}
