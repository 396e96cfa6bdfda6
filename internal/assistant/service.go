package assistant

import (
	"context"
	"fmt"

	"newsrelay/internal/logging"
)

// Source labels every answer.
const Source = "GNews + Ollama"

type HeadlineSource interface {
	FetchHeadlines(ctx context.Context) (string, error)
}

type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Answer is the /ask response body
type Answer struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Source   string `json:"source"`
}

// Service answers a question from the current headlines
type Service struct {
	news HeadlineSource
	llm  Generator
}

func NewService(news HeadlineSource, llm Generator) *Service {
	return &Service{news: news, llm: llm}
}

// Ask fetches headlines, then forwards the composed prompt. The two calls
// never overlap and a failure in either ends the request.
func (s *Service) Ask(ctx context.Context, question string) (*Answer, error) {
	log := logging.FromContext(ctx)

	headlines, err := s.news.FetchHeadlines(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch headlines: %w", err)
	}

	prompt := ComposePrompt(headlines, question)
	log.WithField("prompt_chars", len(prompt)).Debug("prompt composed")

	text, err := s.llm.Generate(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("generate answer: %w", err)
	}

	return &Answer{
		Question: question,
		Answer:   text,
		Source:   Source,
	}, nil
}
