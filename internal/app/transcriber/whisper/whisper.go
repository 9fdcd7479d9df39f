package whisper

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"

	"voicescribe/internal/app/model"
	"voicescribe/internal/app/transcriber"
)

// RemoteTranscriber implements transcription using the OpenAI Whisper API
// with verbose JSON output so segment timestamps are available.
type RemoteTranscriber struct {
	client *openai.Client
	model  string
}

// NewRemoteTranscriber creates a new RemoteTranscriber instance.
func NewRemoteTranscriber(client *openai.Client, modelName string) *RemoteTranscriber {
	if modelName == "" {
		modelName = openai.Whisper1
	}
	return &RemoteTranscriber{client: client, model: modelName}
}

// Transcribe uploads the audio payload and maps the verbose response onto
// the shared result schema.
func (rt *RemoteTranscriber) Transcribe(ctx context.Context, audio []byte, mimeType string) (*transcriber.Result, error) {
	if len(audio) == 0 {
		return nil, fmt.Errorf("empty audio payload")
	}

	req := openai.AudioRequest{
		Model:    rt.model,
		Reader:   bytes.NewReader(audio),
		FilePath: "audio" + extensionFor(mimeType),
		Format:   openai.AudioResponseFormatVerboseJSON,
	}

	resp, err := rt.client.CreateTranscription(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("createTranscription failed: %w", err)
	}

	result := &transcriber.Result{
		Text:     resp.Text,
		Segments: make([]model.Segment, 0, len(resp.Segments)),
	}
	for _, s := range resp.Segments {
		result.Segments = append(result.Segments, model.Segment{
			StartTime: s.Start,
			EndTime:   s.End,
			Text:      strings.TrimSpace(s.Text),
		})
	}

	if err := transcriber.ValidateResult(result); err != nil {
		return nil, err
	}
	return result, nil
}

// extensionFor picks a file extension the API recognizes for the payload's
// MIME type. The API identifies the container by extension, not content.
func extensionFor(mimeType string) string {
	// Strip codec parameters such as "audio/webm;codecs=opus".
	if i := strings.Index(mimeType, ";"); i >= 0 {
		mimeType = mimeType[:i]
	}

	switch strings.TrimSpace(strings.ToLower(mimeType)) {
	case "audio/mpeg", "audio/mp3":
		return ".mp3"
	case "audio/wav", "audio/x-wav", "audio/wave":
		return ".wav"
	case "audio/mp4", "audio/m4a", "audio/x-m4a":
		return ".m4a"
	case "audio/ogg":
		return ".ogg"
	case "audio/flac", "audio/x-flac":
		return ".flac"
	case "audio/webm", "video/webm":
		return ".webm"
	default:
		return ".mp3"
	}
}
