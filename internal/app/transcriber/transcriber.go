package transcriber

import (
	"context"
	"fmt"

	"voicescribe/internal/app/model"
)

// Result is the validated outcome of one transcription request.
type Result struct {
	Text     string          `json:"text"`
	Segments []model.Segment `json:"segments"`
}

// Transcriber converts an encoded audio payload into a timestamped
// transcript. Implementations make at most one attempt per invocation and
// never return partial results; retrying is the caller's decision.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, mimeType string) (*Result, error)
}

// ValidateResult enforces the response schema shared by all providers: the
// full text plus ordered segments whose fields are all present and whose
// times are sane. A violation fails the whole request.
func ValidateResult(r *Result) error {
	if r == nil {
		return fmt.Errorf("empty transcription result")
	}
	for i, s := range r.Segments {
		if s.StartTime < 0 {
			return fmt.Errorf("segment %d: negative start time %v", i, s.StartTime)
		}
		if s.EndTime < s.StartTime {
			return fmt.Errorf("segment %d: end time %v before start time %v", i, s.EndTime, s.StartTime)
		}
	}
	return nil
}
