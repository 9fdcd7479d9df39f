package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"voicescribe/internal/app/session"
	"voicescribe/internal/config"
)

// Bootstrap loads configuration from the environment and assembles the
// session controller. It is the entry point shared by all CLI commands.
func Bootstrap(ctx context.Context) (*session.Controller, *config.Settings, error) {
	settings, err := config.InitializeConfig()
	if err != nil {
		return nil, nil, err
	}

	providersPath := os.Getenv("VSCRIBE_PROVIDERS_CONFIG")
	if providersPath == "" {
		if root, err := config.GetProjectRoot(); err == nil {
			providersPath = filepath.Join(root, "configs", "providers.yaml")
		} else {
			providersPath = filepath.Join("configs", "providers.yaml")
		}
	}

	providers, err := config.LoadProvidersConfig(providersPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load providers config: %w", err)
	}

	controller, err := InitializeController(ctx, settings, providers)
	if err != nil {
		return nil, nil, err
	}
	return controller, settings, nil
}
