package capture

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
)

// mimeByExtension maps the audio containers we accept for uploads. Anything
// outside this table is rejected before any processing happens.
var mimeByExtension = map[string]string{
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".m4a":  "audio/mp4",
	".mp4":  "audio/mp4",
	".ogg":  "audio/ogg",
	".oga":  "audio/ogg",
	".flac": "audio/flac",
	".webm": "audio/webm",
	".aac":  "audio/aac",
}

// MimeForFile returns the audio MIME type for a file path, or an error when
// the file is not a supported audio container.
func MimeForFile(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	mime, ok := mimeByExtension[ext]
	if !ok {
		return "", fmt.Errorf("unsupported file type %q: not an audio file", ext)
	}
	return mime, nil
}

// IsAudioMime reports whether a MIME type names an audio payload.
func IsAudioMime(mime string) bool {
	if i := strings.Index(mime, ";"); i >= 0 {
		mime = mime[:i]
	}
	mime = strings.TrimSpace(strings.ToLower(mime))
	return strings.HasPrefix(mime, "audio/") || mime == "video/webm" || mime == "video/mp4"
}

// GetAudioDuration returns a file's duration in seconds using ffprobe.
func GetAudioDuration(filePath string) (float64, error) {
	cmd := exec.Command("ffprobe", "-v", "error", "-show_entries", "format=duration", "-of", "default=noprint_wrappers=1:nokey=1", filePath)
	output, err := cmd.Output()
	if err != nil {
		return 0, fmt.Errorf("ffprobe failed: %w", err)
	}
	duration, err := strconv.ParseFloat(strings.TrimSpace(string(output)), 64)
	if err != nil {
		return 0, fmt.Errorf("unexpected ffprobe output: %w", err)
	}
	return duration, nil
}
