package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"voicescribe/internal/api/middleware"
	"voicescribe/internal/api/v1/dto"
	"voicescribe/internal/api/v1/routes"
	"voicescribe/internal/app/capture"
	"voicescribe/internal/app/history"
	"voicescribe/internal/app/model"
	"voicescribe/internal/app/session"
	"voicescribe/internal/app/transcriber"
)

type memKV struct {
	data map[string][]byte
}

func newMemKV() *memKV { return &memKV{data: make(map[string][]byte)} }

func (m *memKV) Get(key string) ([]byte, bool, error) {
	v, ok := m.data[key]
	return v, ok, nil
}
func (m *memKV) Set(key string, value []byte) error { m.data[key] = value; return nil }
func (m *memKV) Delete(key string) error            { delete(m.data, key); return nil }
func (m *memKV) Close() error                       { return nil }

type fakeTranscriber struct {
	result *transcriber.Result
	err    error
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, audio []byte, mimeType string) (*transcriber.Result, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

// testMetrics builds unregistered instruments so parallel tests do not fight
// over the default Prometheus registry.
func testMetrics() *middleware.Metrics {
	return &middleware.Metrics{
		RequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{Name: "t_requests"},
			[]string{"method", "path", "status"}),
		RequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{Name: "t_duration"},
			[]string{"method", "path"}),
		TranscriptionsTotal:  prometheus.NewCounter(prometheus.CounterOpts{Name: "t_total"}),
		TranscriptionsFailed: prometheus.NewCounter(prometheus.CounterOpts{Name: "t_failed"}),
	}
}

func newTestRouter(t *testing.T, ft *fakeTranscriber) (*gin.Engine, *session.Controller) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := history.NewStore(newMemKV(), 10, zap.NewNop())
	recorder := capture.NewRecorder("", zap.NewNop())
	controller, err := session.NewController(recorder, ft, store, nil, zap.NewNop())
	require.NoError(t, err)

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.ErrorHandler(slog.New(slog.NewTextHandler(io.Discard, nil))))

	h := NewTranscriptionHandler(controller, testMetrics())
	routes.RegisterRoutes(router.Group("/api/v1"), h)
	return router, controller
}

func multipartAudio(t *testing.T, field, filename, contentType string, payload []byte) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(payload)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	return body, writer.FormDataContentType()
}

func serviceResult() *transcriber.Result {
	return &transcriber.Result{
		Text: "hola mundo",
		Segments: []model.Segment{
			{StartTime: 0, EndTime: 1.5, Text: "Hola"},
			{StartTime: 1.5, EndTime: 3, Text: "mundo"},
		},
	}
}

func TestCreate_Success(t *testing.T) {
	router, _ := newTestRouter(t, &fakeTranscriber{result: serviceResult()})

	body, contentType := multipartAudio(t, "audio", "clip.mp3", "audio/mpeg", []byte("audio"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transcriptions", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusCreated, w.Code)

	var resp dto.TranscriptionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "[clip.mp3] hola mundo", resp.Text)
	require.Len(t, resp.Segments, 2)
	assert.Equal(t, "Hola", resp.Segments[0].Text)
}

func TestCreate_MissingField(t *testing.T) {
	router, _ := newTestRouter(t, &fakeTranscriber{result: serviceResult()})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/transcriptions", bytes.NewBufferString("nope"))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=x")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "missing multipart field")
}

func TestCreate_RejectsNonAudio(t *testing.T) {
	router, controller := newTestRouter(t, &fakeTranscriber{result: serviceResult()})

	body, contentType := multipartAudio(t, "audio", "notes.pdf", "application/pdf", []byte("%PDF"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transcriptions", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), session.MsgNotAudio)
	assert.Equal(t, 0, controller.History().Len())
}

func TestCreate_FileNameFallbackForGenericType(t *testing.T) {
	router, _ := newTestRouter(t, &fakeTranscriber{result: serviceResult()})

	body, contentType := multipartAudio(t, "audio", "voice.m4a", "application/octet-stream", []byte("audio"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transcriptions", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestCreate_TranscriptionFailure(t *testing.T) {
	router, controller := newTestRouter(t, &fakeTranscriber{err: errors.New("upstream down")})

	body, contentType := multipartAudio(t, "audio", "clip.mp3", "audio/mpeg", []byte("audio"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transcriptions", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), session.MsgTranscriptionFailed)
	assert.Equal(t, session.StatusError, controller.Status())
}

func createEntry(t *testing.T, router *gin.Engine) dto.TranscriptionResponse {
	t.Helper()

	body, contentType := multipartAudio(t, "audio", "clip.mp3", "audio/mpeg", []byte("audio"))
	req := httptest.NewRequest(http.MethodPost, "/api/v1/transcriptions", body)
	req.Header.Set("Content-Type", contentType)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var resp dto.TranscriptionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestList(t *testing.T) {
	router, _ := newTestRouter(t, &fakeTranscriber{result: serviceResult()})
	createEntry(t, router)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/transcriptions", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var entries []dto.TranscriptionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &entries))
	assert.Len(t, entries, 1)
}

func TestList_LimitValidation(t *testing.T) {
	router, _ := newTestRouter(t, &fakeTranscriber{result: serviceResult()})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/transcriptions?limit=1000", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestGet_NotFound(t *testing.T) {
	router, _ := newTestRouter(t, &fakeTranscriber{result: serviceResult()})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/transcriptions/12345", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetSRT(t *testing.T) {
	router, _ := newTestRouter(t, &fakeTranscriber{result: serviceResult()})
	entry := createEntry(t, router)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/transcriptions/"+entry.ID+"/srt", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/x-subrip", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "transcription-"+entry.ID+".srt")
	assert.Contains(t, w.Body.String(), "00:00:00,000 --> 00:00:01,500")
}

func TestExportText(t *testing.T) {
	router, _ := newTestRouter(t, &fakeTranscriber{result: serviceResult()})
	createEntry(t, router)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/export/text", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "hola mundo")
}

func TestExportText_EmptyHistory(t *testing.T) {
	router, _ := newTestRouter(t, &fakeTranscriber{result: serviceResult()})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/export/text", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestClear(t *testing.T) {
	router, controller := newTestRouter(t, &fakeTranscriber{result: serviceResult()})
	createEntry(t, router)
	require.Equal(t, 1, controller.History().Len())

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/transcriptions", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, 0, controller.History().Len())
}

func TestStatus(t *testing.T) {
	router, _ := newTestRouter(t, &fakeTranscriber{result: serviceResult()})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/session/status", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var status dto.StatusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.Equal(t, string(session.StatusIdle), status.Status)
	assert.Empty(t, status.ErrorMessage)
}
