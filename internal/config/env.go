package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// APIKeys holds the credentials for the remote transcription providers.
type APIKeys struct {
	Gemini string
	OpenAI string
}

// Settings is the resolved application configuration. Everything comes from
// the environment (optionally seeded from a .env file); the only other
// configuration channel is the providers YAML file.
type Settings struct {
	Keys APIKeys

	// History persistence
	HistoryBackend    string // "sqlite" or "postgres"
	HistoryMaxEntries int    // FIFO bound on stored entries
	SQLitePath        string
	PostgresDSN       string

	// Optional transcription cache
	RedisAddr string

	// Optional audio archive
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool

	// Capture
	CaptureDevice string // ffmpeg input device override, empty = per-OS default
}

const defaultHistoryMaxEntries = 200

// LoadEnv loads environment variables from a .env file if one exists. Missing
// files are not an error; system-wide environment variables are enough.
func LoadEnv() error {
	envPaths := []string{
		".env",
		".env.local",
		"../.env",
		"../../.env",
	}

	for _, envPath := range envPaths {
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				return fmt.Errorf("error loading %s file: %w", envPath, err)
			}
			break
		}
	}

	return nil
}

// GetAPIKeys retrieves and validates API keys from environment variables.
// Keys may be absent; format validation only applies to keys that are set.
func GetAPIKeys() (*APIKeys, error) {
	keys := &APIKeys{
		Gemini: strings.TrimSpace(os.Getenv("GEMINI_API_KEY")),
		OpenAI: strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
	}

	if keys.Gemini != "" {
		if !strings.HasPrefix(keys.Gemini, "AIza") {
			return nil, fmt.Errorf("invalid GEMINI_API_KEY format: must start with 'AIza'")
		}
		if len(keys.Gemini) < 30 {
			return nil, fmt.Errorf("invalid GEMINI_API_KEY format: too short")
		}
	}

	if keys.OpenAI != "" {
		if !strings.HasPrefix(keys.OpenAI, "sk-") {
			return nil, fmt.Errorf("invalid OPENAI_API_KEY format: must start with 'sk-'")
		}
		if len(keys.OpenAI) < 20 {
			return nil, fmt.Errorf("invalid OPENAI_API_KEY format: too short")
		}
	}

	return keys, nil
}

// RequireAPIKeys validates that at least one provider credential is available.
// Transcription operations fail fast without one.
func RequireAPIKeys(keys *APIKeys) error {
	if keys.Gemini == "" && keys.OpenAI == "" {
		return fmt.Errorf("transcription requires an API key - set GEMINI_API_KEY or OPENAI_API_KEY in environment or .env file")
	}
	return nil
}

// GetSettings resolves the full application configuration from the
// environment, applying defaults for anything unset.
func GetSettings() (*Settings, error) {
	keys, err := GetAPIKeys()
	if err != nil {
		return nil, err
	}

	s := &Settings{
		Keys:              *keys,
		HistoryBackend:    envOr("VSCRIBE_HISTORY_BACKEND", "sqlite"),
		HistoryMaxEntries: defaultHistoryMaxEntries,
		PostgresDSN:       os.Getenv("VSCRIBE_POSTGRES_DSN"),
		RedisAddr:         os.Getenv("VSCRIBE_REDIS_ADDR"),
		MinioEndpoint:     os.Getenv("MINIO_ENDPOINT"),
		MinioAccessKey:    envOr("MINIO_ACCESS_KEY", "minioadmin"),
		MinioSecretKey:    envOr("MINIO_SECRET_KEY", "minioadmin"),
		MinioBucket:       envOr("MINIO_BUCKET", "vscribe-audio"),
		MinioUseSSL:       os.Getenv("MINIO_USE_SSL") == "true",
		CaptureDevice:     os.Getenv("VSCRIBE_CAPTURE_DEVICE"),
	}

	if s.HistoryBackend != "sqlite" && s.HistoryBackend != "postgres" {
		return nil, fmt.Errorf("unsupported VSCRIBE_HISTORY_BACKEND: %q", s.HistoryBackend)
	}
	if s.HistoryBackend == "postgres" && s.PostgresDSN == "" {
		return nil, fmt.Errorf("VSCRIBE_POSTGRES_DSN must be set when VSCRIBE_HISTORY_BACKEND=postgres")
	}

	if raw := os.Getenv("VSCRIBE_HISTORY_MAX_ENTRIES"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid VSCRIBE_HISTORY_MAX_ENTRIES: %q", raw)
		}
		s.HistoryMaxEntries = n
	}

	if s.SQLitePath = os.Getenv("VSCRIBE_SQLITE_PATH"); s.SQLitePath == "" {
		root, err := GetProjectRoot()
		if err != nil {
			// Outside a checkout fall back to the working directory.
			root = "."
		}
		s.SQLitePath = filepath.Join(root, "data", "voicescribe.db")
	}

	return s, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// GetProjectRoot finds the project root directory by looking for go.mod.
func GetProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("could not find project root (go.mod not found)")
}

// InitializeConfig loads the environment and resolves settings. This is the
// main entry point for configuration loading.
func InitializeConfig() (*Settings, error) {
	if err := LoadEnv(); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	settings, err := GetSettings()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve settings: %w", err)
	}

	return settings, nil
}
