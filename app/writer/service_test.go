package writer

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	cache "github.com/go-pkgz/expirable-cache/v2"
	"github.com/moritamori/bloggen/app/store"
	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

var testNow = time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC)

func testService(mock *OpenAIClientMock) *Service {
	return &Service{
		log: slog.Default(),
		chatGPT: &ChatGPT{
			log:       slog.Default(),
			cl:        mock,
			model:     openai.GPT3Dot5Turbo,
			maxTokens: 1000,
			cache:     cache.NewCache[string, string](),
		},
		researcher: NewResearcher(slog.Default(), &http.Client{}, 100),
		now:        func() time.Time { return testNow },
	}
}

// completionMock answers the metadata call with the given meta text
// and every other call with the article text.
func completionMock(article, meta string) *OpenAIClientMock {
	return &OpenAIClientMock{
		CreateChatCompletionFunc: func(
			_ context.Context, req openai.ChatCompletionRequest,
		) (openai.ChatCompletionResponse, error) {
			content := article
			if req.Messages[0].Content == systemMeta {
				content = meta
			}
			return openai.ChatCompletionResponse{
				Choices: []openai.ChatCompletionChoice{{
					Message: openai.ChatCompletionMessage{Content: content},
				}},
			}, nil
		},
	}
}

func TestService_Generate(t *testing.T) {
	mock := completionMock(
		"# Goの並行処理\n\nGoroutineの本文です。",
		"要約: 並行処理の入門記事\nタグ: go, concurrency",
	)
	svc := testService(mock)

	req := store.ArticleRequest{
		Theme:          "Goの並行処理",
		TargetAudience: "Go初心者",
		Tone:           store.ToneTechnical,
		TargetLength:   1500,
	}

	a, err := svc.Generate(context.Background(), req, 12)
	require.NoError(t, err)

	assert.Equal(t, "Goの並行処理", a.Title)
	assert.Equal(t, "Goroutineの本文です。", a.Content)
	assert.Equal(t, store.CountChars(a.Content), a.WordCount)
	assert.Equal(t, "並行処理の入門記事", a.Summary)
	assert.Equal(t, testNow, a.GeneratedAt)
	assert.Equal(t, 12, a.Metadata.IssueNumber)
	assert.Equal(t, "technical", a.Metadata.Tone)
	assert.Equal(t, "Go初心者", a.Metadata.TargetAudience)
	assert.Equal(t, []string{"go", "concurrency"}, a.Metadata.SuggestedTags)

	// two sequential calls: body, then metadata
	calls := mock.CreateChatCompletionCalls()
	require.Len(t, calls, 2)
	assert.Equal(t, systemWriter, calls[0].ChatCompletionRequest.Messages[0].Content)
	assert.Contains(t, calls[0].ChatCompletionRequest.Messages[1].Content, "Goの並行処理")
	assert.Contains(t, calls[0].ChatCompletionRequest.Messages[1].Content, "約1500文字")
	assert.Equal(t, systemMeta, calls[1].ChatCompletionRequest.Messages[0].Content)
}

func TestService_Revise(t *testing.T) {
	mock := completionMock(
		"# 改訂版タイトル\n\n短くなった本文。",
		"要約: 改訂版の要約\nタグ: go",
	)
	svc := testService(mock)

	original := store.Article{
		Title:   "元のタイトル",
		Content: "元の本文",
		Metadata: store.Metadata{
			IssueNumber:    7,
			Tone:           "casual",
			TargetAudience: "誰でも",
		},
	}

	a, err := svc.Revise(context.Background(), FeedbackRequest{
		Feedback: "長すぎます /shorter",
		Command:  CommandShorter,
		Original: original,
	})
	require.NoError(t, err)

	assert.Equal(t, "改訂版タイトル", a.Title)
	assert.Equal(t, "短くなった本文。", a.Content)
	assert.Equal(t, store.CountChars(a.Content), a.WordCount)

	// issue number and request attributes carried forward
	assert.Equal(t, 7, a.Metadata.IssueNumber)
	assert.Equal(t, "casual", a.Metadata.Tone)
	assert.Equal(t, "誰でも", a.Metadata.TargetAudience)

	calls := mock.CreateChatCompletionCalls()
	require.Len(t, calls, 2)

	prompt := calls[0].ChatCompletionRequest.Messages[1].Content
	assert.Contains(t, prompt, "元の本文")
	assert.Contains(t, prompt, "長すぎます /shorter")
	assert.Contains(t, prompt, Directive(CommandShorter))
}

func TestService_Generate_SummaryFallback(t *testing.T) {
	mock := completionMock(
		"# タイトル\n\n"+strings.Repeat("あ", 150),
		"形式に従わない応答",
	)
	svc := testService(mock)

	a, err := svc.Generate(context.Background(), store.ArticleRequest{Theme: "テーマ"}, 1)
	require.NoError(t, err)

	// summary falls back to the leading part of the content
	assert.Equal(t, strings.Repeat("あ", 100), a.Summary)
	assert.Empty(t, a.Metadata.SuggestedTags)
}

func TestParseMeta(t *testing.T) {
	tbl := []struct {
		name    string
		raw     string
		summary string
		tags    []string
	}{
		{
			name:    "labeled lines",
			raw:     "要約: 短い要約です\nタグ: go, testing, ci",
			summary: "短い要約です",
			tags:    []string{"go", "testing", "ci"},
		},
		{
			name:    "english labels",
			raw:     "summary: a short one\ntags: go,testing",
			summary: "a short one",
			tags:    []string{"go", "testing"},
		},
		{
			name:    "japanese comma",
			raw:     "要約: 要約\nタグ: go、テスト",
			summary: "要約",
			tags:    []string{"go", "テスト"},
		},
		{name: "no labels", raw: "just prose", summary: "", tags: nil},
		{name: "empty", raw: "", summary: "", tags: nil},
	}

	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			summary, tags := parseMeta(tt.raw)
			assert.Equal(t, tt.summary, summary)
			assert.Equal(t, tt.tags, tags)
		})
	}
}
