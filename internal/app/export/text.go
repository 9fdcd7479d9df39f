package export

import (
	"strings"

	"voicescribe/internal/app/model"
)

// ruleLine separates entries in the plain-text history export.
var ruleLine = strings.Repeat("-", 40)

// ToText renders the whole history as one plain-text document: per entry a
// human-readable timestamp and the full transcript, separated by a rule
// line.
func ToText(entries []model.Entry) string {
	blocks := make([]string, 0, len(entries))
	for _, e := range entries {
		blocks = append(blocks, e.Timestamp.Format("2006-01-02 15:04:05")+"\n"+e.Text)
	}
	return strings.Join(blocks, "\n"+ruleLine+"\n")
}
