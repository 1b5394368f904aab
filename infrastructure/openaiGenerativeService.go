package infrastructure

import (
	"context"
	"errors"
	"strings"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"
)

// OpenAIGenerativeService implements usecase.GenerativeService against the
// OpenAI chat completion API. The prompt is already fully composed by the
// caller, it is forwarded as a single user message.
type OpenAIGenerativeService struct {
	client *openai.Client
	model  string
	logger *logrus.Logger
}

func NewOpenAIGenerativeService(apiKey string, model string, logger *logrus.Logger) (*OpenAIGenerativeService, error) {
	if apiKey == "" {
		return nil, errors.New("openai api key is empty")
	}
	if model == "" {
		model = "gpt-4o-mini"
	}
	return &OpenAIGenerativeService{
		client: openai.NewClient(apiKey),
		model:  model,
		logger: logger,
	}, nil
}

func (s *OpenAIGenerativeService) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.2,
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no completion returned")
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
