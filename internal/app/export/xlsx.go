package export

import (
	"fmt"
	"time"

	"github.com/tealeg/xlsx"

	"voicescribe/internal/app/model"
)

// ToExcel writes the history to a spreadsheet, one row per entry.
func ToExcel(entries []model.Entry, outputFilePath string) error {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Transcriptions")
	if err != nil {
		return fmt.Errorf("failed to add sheet: %w", err)
	}

	headerRow := sheet.AddRow()
	headerRow.AddCell().Value = "ID"
	headerRow.AddCell().Value = "Created"
	headerRow.AddCell().Value = "Duration (s)"
	headerRow.AddCell().Value = "Segments"
	headerRow.AddCell().Value = "Transcription"

	for _, e := range entries {
		row := sheet.AddRow()
		row.AddCell().Value = e.ID
		row.AddCell().Value = e.Timestamp.Format(time.RFC3339)
		row.AddCell().Value = fmt.Sprintf("%.2f", e.Duration)
		row.AddCell().Value = fmt.Sprint(len(e.Segments))
		row.AddCell().Value = e.Text
	}

	if err := file.Save(outputFilePath); err != nil {
		return fmt.Errorf("failed to save xlsx: %w", err)
	}
	return nil
}
