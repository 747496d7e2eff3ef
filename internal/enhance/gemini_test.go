package enhance

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-sections/internal/llm"
)

type fakeLLM struct {
	prompt string
	tier   llm.ModelTier
	resp   string
	err    error
}

func (f *fakeLLM) GenerateJSON(_ context.Context, prompt string, tier llm.ModelTier) (string, error) {
	f.prompt = prompt
	f.tier = tier
	return f.resp, f.err
}

func (f *fakeLLM) GetModel(tier llm.ModelTier) string { return llm.DefaultConfig().GetModel(tier) }

func (f *fakeLLM) Close() error { return nil }

func TestGeminiEnhancer_SectionPrompt(t *testing.T) {
	client := &fakeLLM{resp: `{"optimized_text": "Seasoned accountant."}`}
	g := NewGeminiEnhancer(client, 500, nil)

	res, err := g.Enhance(context.Background(), Request{Text: "I do books.", Language: "fr", Section: "Profil"})
	require.NoError(t, err)

	assert.Equal(t, "Seasoned accountant.", res.OptimizedText)
	assert.Equal(t, llm.TierLite, client.tier)
	assert.Contains(t, client.prompt, "I do books.")
	assert.Contains(t, client.prompt, `"fr"`)
	assert.Contains(t, client.prompt, "Section: Profil")
	assert.Contains(t, client.prompt, "500 characters")
}

func TestGeminiEnhancer_DetailsPrompt(t *testing.T) {
	client := &fakeLLM{resp: "Here you go:\n{\"optimized_text\": \"- Closed books.\"}"}
	g := NewGeminiEnhancer(client, 0, nil)

	res, err := g.Enhance(context.Background(), Request{Text: "Did the books.", Language: "en", Section: "Experience", Details: true})
	require.NoError(t, err)

	assert.Equal(t, "- Closed books.", res.OptimizedText)
	assert.Contains(t, client.prompt, "single Experience entry")
}

func TestGeminiEnhancer_Errors(t *testing.T) {
	g := NewGeminiEnhancer(&fakeLLM{err: errors.New("unavailable")}, 0, nil)
	_, err := g.Enhance(context.Background(), Request{Text: "x"})
	assert.ErrorContains(t, err, "unavailable")

	g = NewGeminiEnhancer(&fakeLLM{resp: "not json"}, 0, nil)
	_, err = g.Enhance(context.Background(), Request{Text: "x"})
	assert.ErrorContains(t, err, "failed to parse model response")
}

func TestGeminiEnhancer_ThroughService(t *testing.T) {
	client := &fakeLLM{resp: `{"optimized_text": "Better."}`}
	svc := NewService(NewGeminiEnhancer(client, 0, nil), 0, nil)
	doc := newDoc(t)

	_, err := svc.EnhanceSection(context.Background(), doc, "aboutMe")
	require.NoError(t, err)
	assert.Equal(t, "Better.", doc.Value("aboutMe"))
}
