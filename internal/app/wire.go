//go:build wireinject
// +build wireinject

package app

import (
	"context"

	"github.com/google/wire"

	"voicescribe/internal/app/session"
	"voicescribe/internal/config"
)

// InitializeController assembles the fully wired session controller.
func InitializeController(ctx context.Context, settings *config.Settings, providers *config.ProvidersConfig) (*session.Controller, error) {
	wire.Build(
		provideLogger,
		provideKV,
		provideStore,
		provideRecorder,
		provideTranscriber,
		provideArchiver,
		session.NewController,
	)
	return nil, nil
}
