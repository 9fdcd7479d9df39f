package clear

import (
	"context"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"voicescribe/internal/app"
)

// Cmd represents the clear command
var Cmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all stored transcriptions",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		controller, _, err := app.Bootstrap(ctx)
		if err != nil {
			log.Fatalf("initialization failed: %v\n", err)
		}
		defer controller.History().Close()

		n := controller.History().Len()
		if err := controller.Clear(); err != nil {
			log.Fatalf("failed to clear history: %v\n", err)
		}
		fmt.Printf("cleared %d entries\n", n)
	},
}
