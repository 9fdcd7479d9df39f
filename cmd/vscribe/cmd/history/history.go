package history

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/spf13/cobra"

	"voicescribe/internal/app"
)

var limit int

func init() {
	Cmd.Flags().IntVarP(&limit, "limit", "l", 0, "show at most this many entries (0 = all)")
}

// Cmd represents the history command
var Cmd = &cobra.Command{
	Use:   "history",
	Short: "List past transcriptions, most recent first",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		controller, _, err := app.Bootstrap(ctx)
		if err != nil {
			log.Fatalf("initialization failed: %v\n", err)
		}
		defer controller.History().Close()

		entries := controller.History().Entries()
		if limit > 0 && limit < len(entries) {
			entries = entries[:limit]
		}

		if len(entries) == 0 {
			fmt.Println("history is empty")
			return
		}

		for _, e := range entries {
			snippet := e.Text
			if len(snippet) > 72 {
				snippet = snippet[:72] + "..."
			}
			snippet = strings.ReplaceAll(snippet, "\n", " ")
			fmt.Printf("%s  %s  %6.1fs  %s\n",
				e.ID, e.Timestamp.Format("2006-01-02 15:04:05"), e.Duration, snippet)
		}
	},
}
