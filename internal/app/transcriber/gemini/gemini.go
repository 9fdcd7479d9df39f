package gemini

import (
	"context"
	"encoding/json"
	"fmt"

	"google.golang.org/genai"

	"voicescribe/internal/app/model"
	"voicescribe/internal/app/transcriber"
)

// instruction is the fixed prompt sent with every request. The response
// language must follow the audio, not the prompt.
const instruction = "Transcribe this audio. Provide the full transcription text " +
	"and break it into logical segments with start and end timestamps in seconds. " +
	"The transcription must be in the source language of the audio."

// Client transcribes audio through the Gemini API, constraining the response
// to a strict JSON schema so the reply is machine-parseable.
type Client struct {
	client *genai.Client
	model  string
}

// NewClient creates a Gemini-backed transcriber.
func NewClient(ctx context.Context, apiKey, modelName string) (*Client, error) {
	if modelName == "" {
		modelName = "gemini-2.5-flash"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &Client{client: client, model: modelName}, nil
}

// responseSchema constrains the model output to
// {text, segments: [{startTime, endTime, text}]} with every field required.
func responseSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"text": {
				Type:        genai.TypeString,
				Description: "The full transcription text",
			},
			"segments": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"startTime": {Type: genai.TypeNumber, Description: "Segment start in seconds"},
						"endTime":   {Type: genai.TypeNumber, Description: "Segment end in seconds"},
						"text":      {Type: genai.TypeString},
					},
					Required: []string{"startTime", "endTime", "text"},
				},
			},
		},
		Required: []string{"text", "segments"},
	}
}

// Transcribe sends the audio inline with the fixed instruction and parses
// the structured reply. Failures propagate unchanged; there is no retry and
// no partial result.
func (c *Client) Transcribe(ctx context.Context, audio []byte, mimeType string) (*transcriber.Result, error) {
	if len(audio) == 0 {
		return nil, fmt.Errorf("empty audio payload")
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromBytes(audio, mimeType),
			genai.NewPartFromText(instruction),
		}, genai.RoleUser),
	}

	cfg := &genai.GenerateContentConfig{
		ResponseMIMEType: "application/json",
		ResponseSchema:   responseSchema(),
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, cfg)
	if err != nil {
		return nil, fmt.Errorf("gemini generateContent failed: %w", err)
	}

	return ParsePayload([]byte(resp.Text()))
}

// payload mirrors the wire schema with pointer fields so that absent values
// are distinguishable from zero values.
type payload struct {
	Text     *string `json:"text"`
	Segments []struct {
		StartTime *float64 `json:"startTime"`
		EndTime   *float64 `json:"endTime"`
		Text      *string  `json:"text"`
	} `json:"segments"`
}

// ParsePayload decodes and validates a structured transcription reply. Any
// schema violation is a hard failure for the request.
func ParsePayload(data []byte) (*transcriber.Result, error) {
	var p payload
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse transcription response: %w", err)
	}
	if p.Text == nil {
		return nil, fmt.Errorf("transcription response missing required field: text")
	}

	result := &transcriber.Result{
		Text:     *p.Text,
		Segments: make([]model.Segment, 0, len(p.Segments)),
	}
	for i, s := range p.Segments {
		if s.StartTime == nil || s.EndTime == nil || s.Text == nil {
			return nil, fmt.Errorf("segment %d missing required fields", i)
		}
		result.Segments = append(result.Segments, model.Segment{
			StartTime: *s.StartTime,
			EndTime:   *s.EndTime,
			Text:      *s.Text,
		})
	}

	if err := transcriber.ValidateResult(result); err != nil {
		return nil, err
	}
	return result, nil
}
