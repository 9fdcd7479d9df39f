package whisper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTranscriber(t *testing.T, status int, body string) (*RemoteTranscriber, *httptest.Server) {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/audio/transcriptions", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))

	cfg := openai.DefaultConfig("sk-test")
	cfg.BaseURL = srv.URL + "/v1"
	client := openai.NewClientWithConfig(cfg)

	return NewRemoteTranscriber(client, ""), srv
}

func TestRemoteTranscriber_Transcribe(t *testing.T) {
	body := `{
		"task": "transcribe",
		"language": "spanish",
		"duration": 3.0,
		"text": "hola mundo",
		"segments": [
			{"id": 0, "start": 0.0, "end": 1.5, "text": " Hola"},
			{"id": 1, "start": 1.5, "end": 3.0, "text": " mundo"}
		]
	}`

	rt, srv := newTestTranscriber(t, http.StatusOK, body)
	defer srv.Close()

	result, err := rt.Transcribe(context.Background(), []byte("fake audio"), "audio/mpeg")
	require.NoError(t, err)

	assert.Equal(t, "hola mundo", result.Text)
	require.Len(t, result.Segments, 2)
	assert.Equal(t, 0.0, result.Segments[0].StartTime)
	assert.Equal(t, 1.5, result.Segments[0].EndTime)
	assert.Equal(t, "Hola", result.Segments[0].Text)
	assert.Equal(t, "mundo", result.Segments[1].Text)
}

func TestRemoteTranscriber_APIError(t *testing.T) {
	rt, srv := newTestTranscriber(t, http.StatusUnauthorized,
		`{"error": {"message": "Invalid API key", "type": "invalid_request_error"}}`)
	defer srv.Close()

	_, err := rt.Transcribe(context.Background(), []byte("fake audio"), "audio/mpeg")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "createTranscription failed")
}

func TestRemoteTranscriber_EmptyPayload(t *testing.T) {
	rt := NewRemoteTranscriber(openai.NewClient("sk-test"), "")

	_, err := rt.Transcribe(context.Background(), nil, "audio/mpeg")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "empty audio payload")
}

func TestExtensionFor(t *testing.T) {
	tests := []struct {
		mime     string
		expected string
	}{
		{"audio/mpeg", ".mp3"},
		{"audio/wav", ".wav"},
		{"audio/mp4", ".m4a"},
		{"audio/ogg", ".ogg"},
		{"audio/flac", ".flac"},
		{"audio/webm", ".webm"},
		{"audio/webm;codecs=opus", ".webm"},
		{"application/octet-stream", ".mp3"},
	}

	for _, tc := range tests {
		t.Run(tc.mime, func(t *testing.T) {
			assert.Equal(t, tc.expected, extensionFor(tc.mime))
		})
	}
}
