package export

import (
	"fmt"
	"math"
	"strings"

	"voicescribe/internal/app/model"
)

// FormatTimestamp renders a seconds offset as an SRT timecode,
// HH:MM:SS,mmm with zero padding. Seconds are converted to milliseconds by
// rounding so the output is deterministic across float representations.
func FormatTimestamp(seconds float64) string {
	ms := int64(math.Round(seconds * 1000))
	if ms < 0 {
		ms = 0
	}

	h := ms / 3_600_000
	ms -= h * 3_600_000
	m := ms / 60_000
	ms -= m * 60_000
	s := ms / 1000
	ms -= s * 1000

	return fmt.Sprintf("%02d:%02d:%02d,%03d", h, m, s, ms)
}

// ToSRT renders segments as a SubRip subtitle file: a 1-based index, a
// `start --> end` timecode line and the segment text, blocks separated by a
// blank line.
func ToSRT(segments []model.Segment) string {
	var b strings.Builder
	for i, s := range segments {
		fmt.Fprintf(&b, "%d\n", i+1)
		fmt.Fprintf(&b, "%s --> %s\n", FormatTimestamp(s.StartTime), FormatTimestamp(s.EndTime))
		fmt.Fprintf(&b, "%s\n", s.Text)
		if i < len(segments)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// SRTFileName derives the deterministic subtitle file name for an entry.
func SRTFileName(entry model.Entry) string {
	return "transcription-" + entry.ID + ".srt"
}
