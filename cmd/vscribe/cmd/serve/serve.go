package serve

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"voicescribe/internal/api/server"
	"voicescribe/internal/app"
)

var (
	host string
	port string
	env  string
)

func init() {
	Cmd.Flags().StringVar(&host, "host", "127.0.0.1", "listen address")
	Cmd.Flags().StringVar(&port, "port", "8477", "listen port")
	Cmd.Flags().StringVar(&env, "env", "development", "environment: development or production")
}

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the local HTTP API for uploads, history and exports",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()

		controller, _, err := app.Bootstrap(ctx)
		if err != nil {
			log.Fatalf("initialization failed: %v\n", err)
		}
		defer controller.History().Close()

		logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

		cfg := server.DefaultConfig()
		cfg.Host = host
		cfg.Port = port
		cfg.Environment = env

		srv := server.NewServer(cfg, controller, logger)
		if err := srv.Start(); err != nil {
			log.Fatalf("failed to start server: %v\n", err)
		}

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit

		shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Fatalf("shutdown failed: %v\n", err)
		}
	},
}
