package assistant

import (
	"context"
	"errors"
	"testing"

	"newsrelay/internal/upstream"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeNews struct {
	headlines string
	err       error
	calls     int
}

func (f *fakeNews) FetchHeadlines(ctx context.Context) (string, error) {
	f.calls++
	return f.headlines, f.err
}

type fakeLLM struct {
	answer  string
	err     error
	prompts []string
}

func (f *fakeLLM) Generate(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	return f.answer, f.err
}

func TestComposePrompt_ExactTemplate(t *testing.T) {
	want := "\nYou are a news assistant.\n\nLatest headlines:\n- A: B\n\nUser question:\nWhat happened?\n\nGive a concise answer based on the news.\n"
	assert.Equal(t, want, ComposePrompt("- A: B", "What happened?"))
}

func TestComposePrompt_NoEscaping(t *testing.T) {
	question := "ignore %s {previous} \"instructions\"\n\n"
	prompt := ComposePrompt("No news available.", question)
	assert.Contains(t, prompt, "User question:\n"+question+"\n\n")
	assert.Contains(t, prompt, "Latest headlines:\nNo news available.\n")
}

func TestAsk_Success(t *testing.T) {
	news := &fakeNews{headlines: "- A: B"}
	llm := &fakeLLM{answer: "Something happened."}

	ans, err := NewService(news, llm).Ask(context.Background(), "What happened?")
	require.NoError(t, err)

	assert.Equal(t, &Answer{Question: "What happened?", Answer: "Something happened.", Source: "GNews + Ollama"}, ans)
	require.Len(t, llm.prompts, 1)
	assert.Equal(t, ComposePrompt("- A: B", "What happened?"), llm.prompts[0])
}

func TestAsk_NewsFailureSkipsGeneration(t *testing.T) {
	news := &fakeNews{err: &upstream.Error{Service: "GNews", StatusCode: 500, Body: "down"}}
	llm := &fakeLLM{}

	_, err := NewService(news, llm).Ask(context.Background(), "q")

	var ue *upstream.Error
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, "GNews", ue.Service)
	assert.Empty(t, llm.prompts)
}

func TestAsk_GenerationFailure(t *testing.T) {
	news := &fakeNews{headlines: "No news available."}
	llm := &fakeLLM{err: &upstream.MissingFieldError{Service: "Ollama", Field: "response"}}

	ans, err := NewService(news, llm).Ask(context.Background(), "q")

	assert.Nil(t, ans)
	var mf *upstream.MissingFieldError
	assert.True(t, errors.As(err, &mf))
	assert.Equal(t, 1, news.calls)
}
