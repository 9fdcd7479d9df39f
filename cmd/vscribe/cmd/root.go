package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"voicescribe/cmd/vscribe/cmd/clear"
	"voicescribe/cmd/vscribe/cmd/export"
	"voicescribe/cmd/vscribe/cmd/history"
	"voicescribe/cmd/vscribe/cmd/record"
	"voicescribe/cmd/vscribe/cmd/serve"
	"voicescribe/cmd/vscribe/cmd/transcribe"
	"voicescribe/cmd/vscribe/cmd/version"
)

var Verbose bool

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "vscribe",
	Short: "Record or upload audio and turn it into timestamped transcripts",
	Long: `Record or upload audio and turn it into timestamped transcripts.
- Record from the microphone or pass existing audio files
- Transcription runs against a hosted AI service with segment timestamps
- Completed transcripts are kept in a local history and can be exported
  as SRT subtitles, plain text or a spreadsheet.`,
	TraverseChildren: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(record.Cmd)
	rootCmd.AddCommand(transcribe.Cmd)
	rootCmd.AddCommand(history.Cmd)
	rootCmd.AddCommand(export.Cmd)
	rootCmd.AddCommand(clear.Cmd)
	rootCmd.AddCommand(serve.Cmd)
	rootCmd.AddCommand(version.Cmd)

	rootCmd.PersistentFlags().BoolVarP(&Verbose, "verbose", "V", false, "verbose output")
}
