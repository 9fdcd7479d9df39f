package session

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"go.uber.org/zap"

	"voicescribe/internal/app/capture"
	"voicescribe/internal/app/history"
	"voicescribe/internal/app/model"
	"voicescribe/internal/app/transcriber"
)

// Status is the mutually exclusive session state. Only one recording or
// transcription cycle is in flight at a time; entering recording or
// processing blocks starting another cycle until the session returns to idle
// or error.
type Status string

const (
	StatusIdle       Status = "idle"
	StatusRecording  Status = "recording"
	StatusProcessing Status = "processing"
	StatusError      Status = "error"
)

// Fixed user-facing failure messages. Failures are never retried
// automatically; the user starts a new cycle.
const (
	MsgCaptureFailed       = "Could not start recording. Please check microphone access."
	MsgTranscriptionFailed = "Transcription failed. Please try again."
	MsgNotAudio            = "The selected file is not an audio file."
)

// Archiver uploads finished recordings to long-term storage. Archiving is
// best-effort; failures never fail the cycle.
type Archiver interface {
	Archive(ctx context.Context, entryID string, data []byte, mimeType string) error
}

// Controller orchestrates capture, transcription, history insertion and the
// transient playback state of the currently displayed transcript.
type Controller struct {
	recorder    *capture.Recorder
	transcriber transcriber.Transcriber
	store       *history.Store
	archiver    Archiver // may be nil
	logger      *zap.Logger
	now         func() time.Time

	mu       sync.Mutex
	status   Status
	errMsg   string
	current  *model.Entry
	playback float64
}

// NewController wires a controller and rehydrates history from storage.
func NewController(recorder *capture.Recorder, t transcriber.Transcriber, store *history.Store, archiver Archiver, logger *zap.Logger) (*Controller, error) {
	c := &Controller{
		recorder:    recorder,
		transcriber: t,
		store:       store,
		archiver:    archiver,
		logger:      logger,
		now:         time.Now,
		status:      StatusIdle,
	}
	if err := store.Load(); err != nil {
		return nil, err
	}
	return c, nil
}

// Status returns the current session status.
func (c *Controller) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.status
}

// ErrorMessage returns the user-facing message of the last failure, if any.
func (c *Controller) ErrorMessage() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errMsg
}

// Current returns a copy of the currently displayed entry, or nil.
func (c *Controller) Current() *model.Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return nil
	}
	entry := *c.current
	return &entry
}

// PlaybackTime returns the transient playback position in seconds.
func (c *Controller) PlaybackTime() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.playback
}

// History exposes the backing store for read paths and exports.
func (c *Controller) History() *history.Store {
	return c.store
}

// beginCycle moves idle or error into the given busy status. Error clears on
// any new user-initiated action; a busy session rejects a second cycle.
func (c *Controller) beginCycle(to Status) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.status == StatusRecording || c.status == StatusProcessing {
		return fmt.Errorf("a %s cycle is already in progress", c.status)
	}
	c.status = to
	c.errMsg = ""
	return nil
}

func (c *Controller) fail(msg string, err error) {
	c.logger.Error(msg, zap.Error(err))
	c.mu.Lock()
	c.status = StatusError
	c.errMsg = msg
	c.mu.Unlock()
}

// StartRecording requests the capture device and enters the recording state.
// A capture failure moves the session to error; the user must start again.
func (c *Controller) StartRecording() error {
	if err := c.beginCycle(StatusRecording); err != nil {
		return err
	}

	if err := c.recorder.Start(); err != nil {
		c.fail(MsgCaptureFailed, err)
		return err
	}
	return nil
}

// RecordingElapsed returns whole seconds recorded so far.
func (c *Controller) RecordingElapsed() int64 {
	return c.recorder.Elapsed()
}

// StopAndTranscribe finalizes the recording, sends it for transcription and
// appends the validated result to history. The new entry becomes current.
func (c *Controller) StopAndTranscribe(ctx context.Context) (*model.Entry, error) {
	c.mu.Lock()
	if c.status != StatusRecording {
		c.mu.Unlock()
		return nil, fmt.Errorf("no recording in progress")
	}
	c.status = StatusProcessing
	c.mu.Unlock()

	audio, mimeType, duration, err := c.recorder.Stop()
	if err != nil {
		c.fail(MsgCaptureFailed, err)
		return nil, err
	}

	return c.finishCycle(ctx, audio, mimeType, duration, "")
}

// TranscribeFile runs the upload path for a local file. Non-audio files are
// rejected before any processing, leaving the session status unchanged with
// an error message set.
func (c *Controller) TranscribeFile(ctx context.Context, path string) (*model.Entry, error) {
	mimeType, err := capture.MimeForFile(path)
	if err != nil {
		c.setRejectionMessage(MsgNotAudio)
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		c.setRejectionMessage(MsgNotAudio)
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	duration, err := capture.GetAudioDuration(path)
	if err != nil {
		c.logger.Warn("could not probe audio duration", zap.String("path", path), zap.Error(err))
		duration = 0
	}

	return c.TranscribeUpload(ctx, filepath.Base(path), data, mimeType, duration)
}

// TranscribeUpload transcribes an already-loaded audio payload, prefixing
// the stored text with the originating file name.
func (c *Controller) TranscribeUpload(ctx context.Context, name string, data []byte, mimeType string, duration float64) (*model.Entry, error) {
	if !capture.IsAudioMime(mimeType) {
		c.setRejectionMessage(MsgNotAudio)
		return nil, fmt.Errorf("rejected non-audio payload: %q", mimeType)
	}

	if err := c.beginCycle(StatusProcessing); err != nil {
		return nil, err
	}

	return c.finishCycle(ctx, data, mimeType, duration, name)
}

// setRejectionMessage records an upload rejection without touching the
// status: rejected uploads never start a cycle.
func (c *Controller) setRejectionMessage(msg string) {
	c.mu.Lock()
	c.errMsg = msg
	c.mu.Unlock()
}

// finishCycle runs the single transcription attempt and, only after the full
// response is validated, builds and appends the entry. No partial entry is
// ever stored.
func (c *Controller) finishCycle(ctx context.Context, audio []byte, mimeType string, duration float64, sourceName string) (*model.Entry, error) {
	result, err := c.transcriber.Transcribe(ctx, audio, mimeType)
	if err != nil {
		c.fail(MsgTranscriptionFailed, err)
		return nil, err
	}

	createdAt := c.now()
	text := result.Text
	if sourceName != "" {
		text = fmt.Sprintf("[%s] %s", sourceName, text)
	}

	entry := model.Entry{
		ID:        model.NewEntryID(createdAt),
		Text:      text,
		Segments:  result.Segments,
		Timestamp: createdAt,
		Duration:  duration,
		AudioPath: c.savePlaybackCopy(audio, mimeType),
	}

	if err := c.store.Append(entry); err != nil {
		// The in-memory list already has the entry; keep going but tell
		// the caller persistence is degraded.
		c.logger.Error("history persistence failed", zap.Error(err))
	}

	if c.archiver != nil {
		if err := c.archiver.Archive(ctx, entry.ID, audio, mimeType); err != nil {
			c.logger.Warn("audio archive failed", zap.String("id", entry.ID), zap.Error(err))
		}
	}

	c.mu.Lock()
	c.current = &entry
	c.playback = 0
	c.status = StatusIdle
	c.errMsg = ""
	c.mu.Unlock()

	c.logger.Info("transcription completed",
		zap.String("id", entry.ID),
		zap.Int("segments", len(entry.Segments)),
		zap.Float64("duration_sec", duration),
	)
	return &entry, nil
}

// savePlaybackCopy writes the audio to a temp file used as the ephemeral
// playback handle. The handle never survives a restart and is never
// persisted; losing it is not an error.
func (c *Controller) savePlaybackCopy(audio []byte, mimeType string) string {
	ext := ".mp3"
	if mimeType == "audio/wav" {
		ext = ".wav"
	}
	f, err := os.CreateTemp("", "vscribe-*"+ext)
	if err != nil {
		c.logger.Warn("could not create playback copy", zap.Error(err))
		return ""
	}
	defer f.Close()
	if _, err := f.Write(audio); err != nil {
		c.logger.Warn("could not write playback copy", zap.Error(err))
		os.Remove(f.Name())
		return ""
	}
	return f.Name()
}

// Select makes a history entry the displayed one. Re-selecting the current
// entry is a no-op that preserves the playback position.
func (c *Controller) Select(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.current != nil && c.current.ID == id {
		return nil
	}

	entry, ok := c.store.Get(id)
	if !ok {
		return fmt.Errorf("entry %q not found", id)
	}

	c.current = &entry
	c.playback = 0
	return nil
}

// SetPlaybackTime records the transient playback position. It never touches
// stored data.
func (c *Controller) SetPlaybackTime(t float64) {
	c.mu.Lock()
	c.playback = t
	c.mu.Unlock()
}

// ActiveSegment returns the active segment for the current playback
// position, or -1 when none is active.
func (c *Controller) ActiveSegment() (model.Segment, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return activeSegmentAt(c.currentSegmentsLocked(), c.playback)
}

// ActiveSegmentAt returns the active segment for an arbitrary time.
func (c *Controller) ActiveSegmentAt(t float64) (model.Segment, int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return activeSegmentAt(c.currentSegmentsLocked(), t)
}

func (c *Controller) currentSegmentsLocked() []model.Segment {
	if c.current == nil {
		return nil
	}
	return c.current.Segments
}

// activeSegmentAt applies the closed-interval active test. Segments are
// assumed non-overlapping and contiguous upstream; if a misbehaving provider
// returns overlapping ones, the first match in list order wins.
func activeSegmentAt(segments []model.Segment, t float64) (model.Segment, int) {
	for i, s := range segments {
		if s.Contains(t) {
			return s, i
		}
	}
	return model.Segment{}, -1
}

// SeekToSegment moves playback to the start of the indexed segment of the
// current entry and returns the new position.
func (c *Controller) SeekToSegment(index int) (float64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	segments := c.currentSegmentsLocked()
	if index < 0 || index >= len(segments) {
		return 0, fmt.Errorf("segment index %d out of range", index)
	}

	c.playback = segments[index].StartTime
	return c.playback, nil
}

// Clear wipes the history, the persisted copy and the current selection.
func (c *Controller) Clear() error {
	if err := c.store.Clear(); err != nil {
		return err
	}

	c.mu.Lock()
	c.current = nil
	c.playback = 0
	c.mu.Unlock()
	return nil
}
