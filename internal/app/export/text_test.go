package export

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"voicescribe/internal/app/model"
)

func TestToText(t *testing.T) {
	at := time.Date(2026, 8, 23, 10, 30, 0, 0, time.UTC)
	entries := []model.Entry{
		{ID: "2", Text: "second transcript", Timestamp: at.Add(time.Hour)},
		{ID: "1", Text: "first transcript", Timestamp: at},
	}

	out := ToText(entries)

	assert.Contains(t, out, "2026-08-23 11:30:00\nsecond transcript")
	assert.Contains(t, out, "2026-08-23 10:30:00\nfirst transcript")
	assert.Equal(t, 1, strings.Count(out, ruleLine), "entries separated by one rule line")

	// Entries keep their most-recent-first order.
	assert.Less(t, strings.Index(out, "second"), strings.Index(out, "first"))
}

func TestToText_SingleEntryHasNoRule(t *testing.T) {
	entries := []model.Entry{{ID: "1", Text: "only one", Timestamp: time.Now()}}
	assert.NotContains(t, ToText(entries), ruleLine)
}
