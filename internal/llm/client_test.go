package llm

import (
	"errors"
	"testing"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func candidate(reason genai.FinishReason, parts ...genai.Part) *genai.GenerateContentResponse {
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{{
			FinishReason: reason,
			Content:      &genai.Content{Parts: parts},
		}},
	}
}

func TestResponseText(t *testing.T) {
	text, err := responseText(candidate(genai.FinishReasonStop, genai.Text(`{"optimized`), genai.Text(`_text":"x"}`)))

	require.NoError(t, err)
	assert.Equal(t, `{"optimized_text":"x"}`, text)
}

func TestResponseText_Failures(t *testing.T) {
	tests := []struct {
		name    string
		resp    *genai.GenerateContentResponse
		blocked bool
	}{
		{"nil response", nil, false},
		{"no candidates", &genai.GenerateContentResponse{}, false},
		{"safety stop", candidate(genai.FinishReasonSafety), true},
		{"recitation stop", candidate(genai.FinishReasonRecitation, genai.Text("x")), true},
		{"no content", &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{FinishReason: genai.FinishReasonStop}}}, false},
		{"blank text", candidate(genai.FinishReasonStop, genai.Text("  ")), false},
		{"truncated", candidate(genai.FinishReasonMaxTokens, genai.Text(`{"optimized_text":"cut`)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := responseText(tt.resp)
			require.Error(t, err)
			assert.Equal(t, tt.blocked, errors.Is(err, ErrBlocked))
		})
	}
}

func TestNewGeminiClient_RequiresKey(t *testing.T) {
	_, err := NewGeminiClient(t.Context(), nil, "")
	assert.Error(t, err)
}
