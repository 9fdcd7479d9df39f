package export

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"voicescribe/internal/app/model"
)

func TestFormatTimestamp(t *testing.T) {
	tests := []struct {
		name     string
		seconds  float64
		expected string
	}{
		{"zero", 0, "00:00:00,000"},
		{"sub-second", 0.5, "00:00:00,500"},
		{"whole seconds", 3, "00:00:03,000"},
		{"minutes", 75.25, "00:01:15,250"},
		{"hours", 3661.001, "01:01:01,001"},
		{"float representation noise", 2.3, "00:00:02,300"},
		{"negative clamps to zero", -1, "00:00:00,000"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, FormatTimestamp(tc.seconds))
		})
	}
}

func TestToSRT(t *testing.T) {
	segments := []model.Segment{
		{StartTime: 0, EndTime: 1.5, Text: "Hola"},
		{StartTime: 1.5, EndTime: 3, Text: "mundo"},
	}

	expected := "1\n" +
		"00:00:00,000 --> 00:00:01,500\n" +
		"Hola\n" +
		"\n" +
		"2\n" +
		"00:00:01,500 --> 00:00:03,000\n" +
		"mundo\n"

	assert.Equal(t, expected, ToSRT(segments))
}

func TestToSRT_Empty(t *testing.T) {
	assert.Equal(t, "", ToSRT(nil))
}

func TestSRTFileName(t *testing.T) {
	entry := model.Entry{ID: "1724300000000", Timestamp: time.Now()}
	assert.Equal(t, "transcription-1724300000000.srt", SRTFileName(entry))
}
