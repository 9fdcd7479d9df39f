package record

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"voicescribe/internal/app"
	"voicescribe/internal/app/export"
)

var srtOut string

func init() {
	Cmd.Flags().StringVarP(&srtOut, "srt", "s", "",
		"also write the transcript as an SRT file into the given directory")
}

// Cmd represents the record command
var Cmd = &cobra.Command{
	Use:   "record",
	Short: "Record from the microphone and transcribe the result",
	Long: `Record from the microphone and transcribe the result

- Recording starts immediately and runs until you press Enter
- The finished recording is sent for transcription in one request
- The transcript is appended to the local history`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		controller, _, err := app.Bootstrap(ctx)
		if err != nil {
			log.Fatalf("initialization failed: %v\n", err)
		}
		defer controller.History().Close()

		if err := controller.StartRecording(); err != nil {
			log.Fatalf("%s (%v)\n", controller.ErrorMessage(), err)
		}

		fmt.Println("Recording... press Enter to stop.")
		bufio.NewReader(os.Stdin).ReadString('\n')

		fmt.Printf("Recorded %d seconds, transcribing...\n", controller.RecordingElapsed())

		entry, err := controller.StopAndTranscribe(ctx)
		if err != nil {
			log.Fatalf("%s (%v)\n", controller.ErrorMessage(), err)
		}

		fmt.Printf("\n%s\n", entry.Text)
		fmt.Printf("\nSaved to history as %s (%d segments)\n", entry.ID, len(entry.Segments))

		if srtOut != "" && len(entry.Segments) > 0 {
			path := filepath.Join(srtOut, export.SRTFileName(*entry))
			if err := os.WriteFile(path, []byte(export.ToSRT(entry.Segments)), 0o644); err != nil {
				log.Fatalf("failed to write SRT file: %v\n", err)
			}
			fmt.Printf("SRT written to %s\n", path)
		}
	},
}
