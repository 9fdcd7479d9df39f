package export

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"voicescribe/internal/app"
	appexport "voicescribe/internal/app/export"
)

var (
	format  string
	entryID string
	output  string
)

func init() {
	Cmd.Flags().StringVarP(&format, "format", "f", "srt", "export format: srt, text or xlsx")
	Cmd.Flags().StringVarP(&entryID, "id", "i", "", "entry id for srt export (default: most recent)")
	Cmd.Flags().StringVarP(&output, "output", "o", "", "output file path")

	Cmd.MarkFlagRequired("output")
}

// Cmd represents the export command
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export transcripts as SRT subtitles, plain text or a spreadsheet",
	Long: `Export transcripts as SRT subtitles, plain text or a spreadsheet

- srt exports one entry's segments as a subtitle file
- text exports the whole history as a single document
- xlsx exports the whole history as a spreadsheet`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		controller, _, err := app.Bootstrap(ctx)
		if err != nil {
			log.Fatalf("initialization failed: %v\n", err)
		}
		defer controller.History().Close()

		entries := controller.History().Entries()
		if len(entries) == 0 {
			log.Fatalln("history is empty, nothing to export")
		}

		switch format {
		case "srt":
			entry := entries[0]
			if entryID != "" {
				e, ok := controller.History().Get(entryID)
				if !ok {
					log.Fatalf("entry %q not found\n", entryID)
				}
				entry = e
			}
			if len(entry.Segments) == 0 {
				log.Fatalf("entry %s has no segments\n", entry.ID)
			}
			if err := os.WriteFile(output, []byte(appexport.ToSRT(entry.Segments)), 0o644); err != nil {
				log.Fatalf("failed to write SRT file: %v\n", err)
			}
		case "text":
			if err := os.WriteFile(output, []byte(appexport.ToText(entries)), 0o644); err != nil {
				log.Fatalf("failed to write text file: %v\n", err)
			}
		case "xlsx":
			if err := appexport.ToExcel(entries, output); err != nil {
				log.Fatalln(err)
			}
		default:
			log.Fatalf("unknown format %q (want srt, text or xlsx)\n", format)
		}

		abs, _ := filepath.Abs(output)
		fmt.Printf("export finished, exported file path: %v\n", abs)
	},
}
