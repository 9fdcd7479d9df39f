package factory

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"voicescribe/internal/app/transcriber"
	"voicescribe/internal/app/transcriber/gemini"
	"voicescribe/internal/app/transcriber/whisper"
	"voicescribe/internal/config"
)

// New builds the configured transcription client. The provider comes from
// the providers config; when VSCRIBE_REDIS_ADDR is set the client is wrapped
// with the content-hash cache.
func New(ctx context.Context, settings *config.Settings, providers *config.ProvidersConfig, logger *zap.Logger) (transcriber.Transcriber, error) {
	name := providers.DefaultProvider
	pc, ok := providers.Providers[name]
	if !ok || !pc.Enabled {
		return nil, fmt.Errorf("provider %q is not configured or disabled", name)
	}

	var (
		t   transcriber.Transcriber
		err error
	)

	switch name {
	case "gemini":
		if settings.Keys.Gemini == "" {
			return nil, fmt.Errorf("provider gemini requires GEMINI_API_KEY")
		}
		t, err = gemini.NewClient(ctx, settings.Keys.Gemini, pc.Model)
		if err != nil {
			return nil, err
		}
	case "whisper":
		if settings.Keys.OpenAI == "" {
			return nil, fmt.Errorf("provider whisper requires OPENAI_API_KEY")
		}
		t = whisper.NewRemoteTranscriber(openai.NewClient(settings.Keys.OpenAI), pc.Model)
	default:
		return nil, fmt.Errorf("unknown transcription provider: %q", name)
	}

	if settings.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: settings.RedisAddr})
		t = transcriber.NewCachingTranscriber(t, client, logger)
		logger.Info("transcription cache enabled", zap.String("addr", settings.RedisAddr))
	}

	return t, nil
}
