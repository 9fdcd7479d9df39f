package transcribe

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"
	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"

	"voicescribe/internal/app"
)

var showProgress bool

func init() {
	Cmd.Flags().BoolVarP(&showProgress, "progress", "p", true, "show a progress bar for multiple files")
}

// Cmd represents the transcribe command
var Cmd = &cobra.Command{
	Use:   "transcribe <audio files...>",
	Short: "Transcribe existing audio files and add them to the history",
	Long: `Transcribe existing audio files and add them to the history

- Files are validated as audio before anything is sent
- Each file is one transcription request; failures skip to the next file
- Transcripts are stored with the source file name as prefix`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		controller, _, err := app.Bootstrap(ctx)
		if err != nil {
			log.Fatalf("initialization failed: %v\n", err)
		}
		defer controller.History().Close()

		var bar *mpb.Bar
		var progress *mpb.Progress
		if showProgress && len(args) > 1 {
			progress = mpb.New(mpb.WithOutput(os.Stderr))
			bar = progress.AddBar(int64(len(args)),
				mpb.PrependDecorators(
					decor.Name("transcribing "),
					decor.CountersNoUnit("(%d/%d)", decor.WCSyncWidth),
				),
				mpb.AppendDecorators(decor.Percentage(decor.WCSyncSpace)),
			)
		}

		failed := 0
		for _, path := range args {
			entry, err := controller.TranscribeFile(ctx, path)
			if err != nil {
				failed++
				fmt.Fprintf(os.Stderr, "%s: %s (%v)\n", path, controller.ErrorMessage(), err)
			} else {
				fmt.Printf("%s -> entry %s (%d segments)\n", path, entry.ID, len(entry.Segments))
			}
			if bar != nil {
				bar.Increment()
			}
		}
		if progress != nil {
			progress.Wait()
		}

		if failed > 0 {
			fmt.Fprintf(os.Stderr, "%d of %d files failed\n", failed, len(args))
			os.Exit(1)
		}
	},
}
