package writer

import (
	"context"
	"testing"

	cache "github.com/go-pkgz/expirable-cache/v2"
	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

func TestChatGPT_Complete(t *testing.T) {
	cl := &ChatGPT{
		log: slog.Default(),
		cl: &OpenAIClientMock{
			CreateChatCompletionFunc: func(
				ctx context.Context,
				req openai.ChatCompletionRequest,
			) (openai.ChatCompletionResponse, error) {
				assert.Equal(t, openai.ChatCompletionRequest{
					Model: openai.GPT3Dot5Turbo,
					Messages: []openai.ChatCompletionMessage{
						{Role: openai.ChatMessageRoleSystem, Content: "system prompt"},
						{Role: openai.ChatMessageRoleUser, Content: "user prompt"},
					},
					MaxTokens: 1000,
				}, req)
				return openai.ChatCompletionResponse{
					Choices: []openai.ChatCompletionChoice{{
						Message: openai.ChatCompletionMessage{
							Content: "# generated\n\ncontent",
						}},
					},
				}, nil
			},
		},
		model:     openai.GPT3Dot5Turbo,
		maxTokens: 1000,
		cache:     cache.NewCache[string, string](),
	}

	resp, err := cl.Complete(context.Background(), "system prompt", "user prompt")
	require.NoError(t, err)
	assert.Equal(t, "# generated\n\ncontent", resp)
}

func TestChatGPT_Complete_Cached(t *testing.T) {
	mock := &OpenAIClientMock{
		CreateChatCompletionFunc: func(
			context.Context, openai.ChatCompletionRequest,
		) (openai.ChatCompletionResponse, error) {
			return openai.ChatCompletionResponse{
				Choices: []openai.ChatCompletionChoice{{
					Message: openai.ChatCompletionMessage{Content: "cached text"},
				}},
			}, nil
		},
	}

	cl := &ChatGPT{
		log:       slog.Default(),
		cl:        mock,
		model:     openai.GPT3Dot5Turbo,
		maxTokens: 1000,
		cache:     cache.NewCache[string, string](),
	}

	for i := 0; i < 3; i++ {
		resp, err := cl.Complete(context.Background(), "sys", "usr")
		require.NoError(t, err)
		assert.Equal(t, "cached text", resp)
	}

	assert.Len(t, mock.CreateChatCompletionCalls(), 1)
}

func TestChatGPT_Complete_EmptyResponse(t *testing.T) {
	cl := &ChatGPT{
		log: slog.Default(),
		cl: &OpenAIClientMock{
			CreateChatCompletionFunc: func(
				context.Context, openai.ChatCompletionRequest,
			) (openai.ChatCompletionResponse, error) {
				return openai.ChatCompletionResponse{}, nil
			},
		},
		model:     openai.GPT3Dot5Turbo,
		maxTokens: 1000,
		cache:     cache.NewCache[string, string](),
	}

	_, err := cl.Complete(context.Background(), "sys", "usr")
	assert.ErrorIs(t, err, ErrEmptyCompletion)
}
