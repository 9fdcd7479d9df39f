package capture

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

// Recorder captures microphone audio by running ffmpeg against the platform
// capture device and buffering the encoded stream. One recording at a time;
// Start while recording is an error.
type Recorder struct {
	logger *zap.Logger
	device string // input device override, empty = per-OS default

	mu       sync.Mutex
	cmd      *exec.Cmd
	buf      bytes.Buffer
	stderr   bytes.Buffer
	elapsed  atomic.Int64
	stopTick chan struct{}
}

// NewRecorder creates a recorder. device may be empty to use the default
// input for the current OS.
func NewRecorder(device string, logger *zap.Logger) *Recorder {
	return &Recorder{logger: logger, device: device}
}

// inputArgs selects the ffmpeg capture input for the current platform.
func (r *Recorder) inputArgs() []string {
	device := r.device
	switch runtime.GOOS {
	case "darwin":
		if device == "" {
			device = ":0"
		}
		return []string{"-f", "avfoundation", "-i", device}
	case "windows":
		if device == "" {
			device = "audio=default"
		}
		return []string{"-f", "dshow", "-i", device}
	default:
		if device == "" {
			device = "default"
		}
		return []string{"-f", "alsa", "-i", device}
	}
}

// Start requests the capture device and begins buffering encoded audio. On
// success an elapsed-seconds counter ticks once per second until Stop. If the
// device cannot be opened the recorder stays unstarted and the error is
// returned; no completion values are ever produced for a failed start.
func (r *Recorder) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cmd != nil {
		return fmt.Errorf("recording already in progress")
	}

	args := append(r.inputArgs(), "-vn", "-acodec", "libmp3lame", "-f", "mp3", "-")
	cmd := exec.Command("ffmpeg", args...)

	r.buf.Reset()
	r.stderr.Reset()
	cmd.Stdout = &r.buf
	cmd.Stderr = &r.stderr

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start capture: %w", err)
	}

	r.cmd = cmd
	r.elapsed.Store(0)
	r.stopTick = make(chan struct{})

	go func(stop <-chan struct{}) {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				r.elapsed.Add(1)
			case <-stop:
				return
			}
		}
	}(r.stopTick)

	r.logger.Info("recording started", zap.Strings("input", args[:4]))
	return nil
}

// Elapsed returns the whole seconds recorded so far.
func (r *Recorder) Elapsed() int64 {
	return r.elapsed.Load()
}

// Stop finalizes the buffered stream into a single encoded payload, stops
// the counter and releases the capture device. It returns the audio bytes,
// their MIME type and the recorded duration in seconds.
func (r *Recorder) Stop() ([]byte, string, float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cmd == nil {
		return nil, "", 0, fmt.Errorf("no recording in progress")
	}

	close(r.stopTick)

	// An interrupt makes ffmpeg flush the stream trailer and exit.
	if err := r.cmd.Process.Signal(os.Interrupt); err != nil {
		r.cmd.Process.Kill()
	}
	waitErr := r.cmd.Wait()
	r.cmd = nil

	data := make([]byte, r.buf.Len())
	copy(data, r.buf.Bytes())
	duration := float64(r.elapsed.Load())

	// ffmpeg exits non-zero when interrupted; that only matters if it
	// produced nothing.
	if len(data) == 0 {
		if waitErr != nil {
			return nil, "", 0, fmt.Errorf("capture failed: %v, stderr: %s", waitErr, r.stderr.String())
		}
		return nil, "", 0, fmt.Errorf("capture produced no audio")
	}

	r.logger.Info("recording stopped",
		zap.Float64("duration_sec", duration),
		zap.Int("bytes", len(data)),
	)
	return data, "audio/mpeg", duration, nil
}
