package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"voicescribe/internal/app/archive"
	"voicescribe/internal/app/capture"
	"voicescribe/internal/app/history"
	"voicescribe/internal/app/session"
	"voicescribe/internal/app/transcriber"
	"voicescribe/internal/app/transcriber/factory"
	"voicescribe/internal/config"
)

func provideLogger() (*zap.Logger, error) {
	return zap.NewProduction()
}

func provideKV(settings *config.Settings) (history.KV, error) {
	switch settings.HistoryBackend {
	case "postgres":
		return history.NewPostgresKV(settings.PostgresDSN)
	case "sqlite":
		return history.NewSQLiteKV(settings.SQLitePath)
	default:
		return nil, fmt.Errorf("unsupported history backend: %q", settings.HistoryBackend)
	}
}

func provideStore(kv history.KV, settings *config.Settings, logger *zap.Logger) *history.Store {
	return history.NewStore(kv, settings.HistoryMaxEntries, logger)
}

func provideRecorder(settings *config.Settings, logger *zap.Logger) *capture.Recorder {
	return capture.NewRecorder(settings.CaptureDevice, logger)
}

func provideTranscriber(ctx context.Context, settings *config.Settings, providers *config.ProvidersConfig, logger *zap.Logger) (transcriber.Transcriber, error) {
	return factory.New(ctx, settings, providers, logger)
}

// provideArchiver returns a nil Archiver when MinIO is not configured;
// archiving is optional and the controller tolerates the absence.
func provideArchiver(ctx context.Context, settings *config.Settings) (session.Archiver, error) {
	a, err := archive.NewMinioArchiver(ctx, settings)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, nil
	}
	return a, nil
}
