// Package writer contains services for generating and revising articles.
package writer

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	cache "github.com/go-pkgz/expirable-cache/v2"
	"github.com/sashabaranov/go-openai"
	"golang.org/x/exp/slog"
)

// OpenAIClient is interface for OpenAI client with the possibility to mock it
//
//go:generate moq -out mock_openai_client.go . OpenAIClient
type OpenAIClient interface {
	CreateChatCompletion(context.Context, openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// ErrEmptyCompletion is returned when the completion response contains
// no usable text payload.
var ErrEmptyCompletion = errors.New("no text in completion response")

// ChatGPT is a client to make requests to OpenAI chatgpt service.
type ChatGPT struct {
	log       *slog.Logger
	cl        OpenAIClient
	model     string
	maxTokens int
	cache     cache.Cache[string, string]
}

// NewChatGPT creates new ChatGPT client. An empty model falls back
// to gpt-3.5-turbo.
func NewChatGPT(lg *slog.Logger, cl *http.Client, token, model string, maxTokens int) *ChatGPT {
	config := openai.DefaultConfig(token)
	config.HTTPClient = cl

	client := openai.NewClientWithConfig(config)

	if model == "" {
		model = openai.GPT3Dot5Turbo
	}

	return &ChatGPT{
		log:       lg,
		cl:        &loggingClient{log: lg, cl: client},
		model:     model,
		maxTokens: maxTokens,
		cache: cache.NewCache[string, string]().
			WithLRU().
			WithMaxKeys(100),
	}
}

// Complete sends system and user instructions to the completion API
// and returns the response text.
func (s *ChatGPT) Complete(ctx context.Context, system, user string) (string, error) {
	key := system + "\x00" + user
	if resp, ok := s.cache.Get(key); ok {
		return resp, nil
	}

	req := openai.ChatCompletionRequest{
		Model:     s.model,
		MaxTokens: s.maxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
	}

	resp, err := s.cl.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("create chat completion: %w", err)
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		return "", ErrEmptyCompletion
	}

	result := resp.Choices[0].Message.Content
	s.cache.Set(key, result, 0)
	return result, nil
}

type loggingClient struct {
	log *slog.Logger
	cl  OpenAIClient
}

func (l *loggingClient) CreateChatCompletion(
	ctx context.Context,
	req openai.ChatCompletionRequest,
) (openai.ChatCompletionResponse, error) {
	l.log.DebugCtx(ctx, "sending request to chatGPT", slog.String("model", req.Model))
	resp, err := l.cl.CreateChatCompletion(ctx, req)
	l.log.DebugCtx(ctx, "response received from chatGPT")
	return resp, err
}
