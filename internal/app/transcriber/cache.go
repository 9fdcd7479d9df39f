package transcriber

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"voicescribe/internal/app/utils"
)

const cacheTTL = 30 * 24 * time.Hour

// CachingTranscriber wraps another transcriber with a Redis cache keyed by
// the audio content hash. Cache problems are never fatal: a miss or a Redis
// error just falls through to the wrapped provider.
type CachingTranscriber struct {
	inner  Transcriber
	client *redis.Client
	logger *zap.Logger
}

// NewCachingTranscriber creates the cache decorator.
func NewCachingTranscriber(inner Transcriber, client *redis.Client, logger *zap.Logger) *CachingTranscriber {
	return &CachingTranscriber{inner: inner, client: client, logger: logger}
}

func cacheKey(audio []byte) string {
	return "vscribe:transcription:" + utils.HashBytes(audio)
}

// Transcribe returns a cached result when the exact audio payload has been
// transcribed before, otherwise delegates and stores the outcome.
func (c *CachingTranscriber) Transcribe(ctx context.Context, audio []byte, mimeType string) (*Result, error) {
	key := cacheKey(audio)

	if raw, err := c.client.Get(ctx, key).Bytes(); err == nil {
		var cached Result
		if err := json.Unmarshal(raw, &cached); err == nil {
			c.logger.Debug("transcription cache hit", zap.String("key", key))
			return &cached, nil
		}
		// Unreadable cache entries are dropped, not trusted.
		c.client.Del(ctx, key)
	}

	result, err := c.inner.Transcribe(ctx, audio, mimeType)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(result); err == nil {
		if err := c.client.Set(ctx, key, raw, cacheTTL).Err(); err != nil {
			c.logger.Warn("failed to cache transcription", zap.String("key", key), zap.Error(err))
		}
	}

	return result, nil
}
