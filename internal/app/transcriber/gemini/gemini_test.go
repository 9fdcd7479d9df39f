package gemini

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voicescribe/internal/app/model"
)

func TestParsePayload(t *testing.T) {
	tests := []struct {
		name          string
		payload       string
		expectError   bool
		errorContains string
		expectedText  string
		segments      []model.Segment
	}{
		{
			name: "valid response",
			payload: `{"text":"hola mundo","segments":[
				{"startTime":0,"endTime":1.5,"text":"Hola"},
				{"startTime":1.5,"endTime":3,"text":"mundo"}]}`,
			expectedText: "hola mundo",
			segments: []model.Segment{
				{StartTime: 0, EndTime: 1.5, Text: "Hola"},
				{StartTime: 1.5, EndTime: 3, Text: "mundo"},
			},
		},
		{
			name:         "empty segments allowed",
			payload:      `{"text":"short clip","segments":[]}`,
			expectedText: "short clip",
			segments:     []model.Segment{},
		},
		{
			name:          "malformed JSON",
			payload:       `{"text": "truncated`,
			expectError:   true,
			errorContains: "failed to parse",
		},
		{
			name:          "missing text field",
			payload:       `{"segments":[]}`,
			expectError:   true,
			errorContains: "missing required field: text",
		},
		{
			name:          "segment missing startTime",
			payload:       `{"text":"x","segments":[{"endTime":1,"text":"a"}]}`,
			expectError:   true,
			errorContains: "segment 0 missing required fields",
		},
		{
			name:          "segment missing text",
			payload:       `{"text":"x","segments":[{"startTime":0,"endTime":1}]}`,
			expectError:   true,
			errorContains: "segment 0 missing required fields",
		},
		{
			name:          "negative start time",
			payload:       `{"text":"x","segments":[{"startTime":-1,"endTime":1,"text":"a"}]}`,
			expectError:   true,
			errorContains: "negative start time",
		},
		{
			name:          "end before start",
			payload:       `{"text":"x","segments":[{"startTime":2,"endTime":1,"text":"a"}]}`,
			expectError:   true,
			errorContains: "before start time",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result, err := ParsePayload([]byte(tc.payload))

			if tc.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.errorContains)
				assert.Nil(t, result, "no partial result on failure")
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expectedText, result.Text)
			assert.Equal(t, tc.segments, result.Segments)
		})
	}
}

func TestParsePayload_PreservesSegmentOrder(t *testing.T) {
	payload := `{"text":"abc","segments":[
		{"startTime":4,"endTime":5,"text":"c"},
		{"startTime":0,"endTime":1,"text":"a"},
		{"startTime":2,"endTime":3,"text":"b"}]}`

	result, err := ParsePayload([]byte(payload))
	require.NoError(t, err)

	// Segments pass through unmodified in order and values.
	require.Len(t, result.Segments, 3)
	assert.Equal(t, "c", result.Segments[0].Text)
	assert.Equal(t, "a", result.Segments[1].Text)
	assert.Equal(t, "b", result.Segments[2].Text)
}

func TestResponseSchema_RequiresAllSegmentFields(t *testing.T) {
	schema := responseSchema()

	require.Contains(t, schema.Properties, "segments")
	items := schema.Properties["segments"].Items
	require.NotNil(t, items)
	assert.ElementsMatch(t, []string{"startTime", "endTime", "text"}, items.Required)
	assert.ElementsMatch(t, []string{"text", "segments"}, schema.Required)
}
