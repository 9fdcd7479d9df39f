package handlers

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"voicescribe/internal/api/errors"
	"voicescribe/internal/api/middleware"
	"voicescribe/internal/api/v1/dto"
	"voicescribe/internal/app/capture"
	"voicescribe/internal/app/export"
	"voicescribe/internal/app/session"
)

// TranscriptionHandler serves the transcription and history endpoints on top
// of the session controller.
type TranscriptionHandler struct {
	controller *session.Controller
	metrics    *middleware.Metrics
}

// NewTranscriptionHandler creates the handler.
func NewTranscriptionHandler(controller *session.Controller, metrics *middleware.Metrics) *TranscriptionHandler {
	return &TranscriptionHandler{controller: controller, metrics: metrics}
}

// Create accepts a multipart audio upload, transcribes it and appends the
// result to history. Non-audio uploads are rejected before any processing.
func (h *TranscriptionHandler) Create(c *gin.Context) {
	file, header, err := c.Request.FormFile("audio")
	if err != nil {
		c.Error(errors.NewBadRequestError("missing multipart field: audio"))
		return
	}
	defer file.Close()

	mimeType := header.Header.Get("Content-Type")
	if !capture.IsAudioMime(mimeType) {
		// Fall back to the file name when the client sent a generic type.
		if m, err := capture.MimeForFile(header.Filename); err == nil {
			mimeType = m
		} else {
			c.Error(errors.NewBadRequestError(session.MsgNotAudio))
			return
		}
	}

	data, err := io.ReadAll(file)
	if err != nil {
		c.Error(errors.NewBadRequestError("failed to read upload"))
		return
	}

	entry, err := h.controller.TranscribeUpload(c.Request.Context(), header.Filename, data, mimeType, 0)
	if err != nil {
		h.metrics.TranscriptionsFailed.Inc()
		c.Error(errors.NewServiceUnavailableError(session.MsgTranscriptionFailed))
		return
	}

	h.metrics.TranscriptionsTotal.Inc()
	c.JSON(http.StatusCreated, dto.FromEntry(*entry))
}

// List returns the history, most recent first.
func (h *TranscriptionHandler) List(c *gin.Context) {
	var query dto.ListTranscriptionsQuery
	if err := middleware.ValidateQuery(c, &query); err != nil {
		c.Error(err)
		return
	}

	entries := h.controller.History().Entries()
	if query.Limit > 0 && query.Limit < len(entries) {
		entries = entries[:query.Limit]
	}

	c.JSON(http.StatusOK, dto.FromEntries(entries))
}

// Get returns one history entry by id.
func (h *TranscriptionHandler) Get(c *gin.Context) {
	entry, ok := h.controller.History().Get(c.Param("id"))
	if !ok {
		c.Error(errors.NewNotFoundError("transcription"))
		return
	}
	c.JSON(http.StatusOK, dto.FromEntry(entry))
}

// GetSRT returns one entry rendered as a SubRip subtitle file.
func (h *TranscriptionHandler) GetSRT(c *gin.Context) {
	entry, ok := h.controller.History().Get(c.Param("id"))
	if !ok {
		c.Error(errors.NewNotFoundError("transcription"))
		return
	}
	if len(entry.Segments) == 0 {
		c.Error(errors.NewBadRequestError("transcription has no segments"))
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.SRTFileName(entry)))
	c.Data(http.StatusOK, "application/x-subrip", []byte(export.ToSRT(entry.Segments)))
}

// ExportText returns the combined plain-text history export.
func (h *TranscriptionHandler) ExportText(c *gin.Context) {
	entries := h.controller.History().Entries()
	if len(entries) == 0 {
		c.Error(errors.NewNotFoundError("history"))
		return
	}

	c.Header("Content-Disposition", `attachment; filename="transcription-history.txt"`)
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(export.ToText(entries)))
}

// Clear empties the history and the persisted copy.
func (h *TranscriptionHandler) Clear(c *gin.Context) {
	if err := h.controller.Clear(); err != nil {
		c.Error(errors.NewInternalError("failed to clear history"))
		return
	}
	c.Status(http.StatusNoContent)
}

// Status reports the session state machine.
func (h *TranscriptionHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, dto.StatusResponse{
		Status:       string(h.controller.Status()),
		ErrorMessage: h.controller.ErrorMessage(),
	})
}
