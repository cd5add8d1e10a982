// Package cmd contains commands for the application.
package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/go-pkgz/requester"
	"github.com/google/uuid"
	"github.com/moritamori/bloggen/app/issue"
	"github.com/moritamori/bloggen/app/logging"
	"github.com/moritamori/bloggen/app/notify"
	"github.com/moritamori/bloggen/app/store"
	"github.com/moritamori/bloggen/app/writer"
	"github.com/moritamori/bloggen/pkg/logx"
	"golang.org/x/exp/slog"
)

// GithubGroup defines connection parameters for the issues API.
type GithubGroup struct {
	Token   string        `long:"token" env:"TOKEN" description:"token for the issues API"`
	Repo    string        `long:"repo" env:"REPO" description:"repository in the owner/name form"`
	APIURL  string        `long:"api-url" env:"API_URL" default:"https://api.github.com" description:"issues API base URL"`
	Timeout time.Duration `long:"timeout" env:"TIMEOUT" default:"30s" description:"timeout for issues API calls"`
}

// OpenAIGroup defines parameters for the completion service.
type OpenAIGroup struct {
	Token     string        `long:"token" env:"TOKEN" description:"OpenAI token"`
	Model     string        `long:"model" env:"MODEL" description:"model for completions"`
	MaxTokens int           `long:"max-tokens" env:"MAX_TOKENS" default:"4000" description:"max tokens for OpenAI"`
	Timeout   time.Duration `long:"timeout" env:"TIMEOUT" default:"5m" description:"timeout for OpenAI calls"`
}

// TelegramGroup defines optional notification parameters, empty token
// disables notifications.
type TelegramGroup struct {
	Token  string `long:"token" env:"TOKEN" description:"telegram token"`
	ChatID int64  `long:"chat-id" env:"CHAT_ID" description:"chat to notify about results"`
}

// PathsGroup defines file locations of the pipeline.
type PathsGroup struct {
	ArticlesDir string `long:"articles-dir" env:"ARTICLES_DIR" default:"articles" description:"directory for article documents"`
	StorePath   string `long:"store-path" env:"STORE_PATH" default:"var" description:"parent dir for bolt files"`
}

// maxReferenceExcerpt limits the reference excerpt length in prompts.
const maxReferenceExcerpt = 500

// runCtx returns a context tagged with a fresh run id and the default
// logger.
func runCtx() (context.Context, *slog.Logger) {
	ctx := logging.ContextWithRunID(context.Background(), uuid.NewString())
	return ctx, slog.Default()
}

func githubClient(lg *slog.Logger, g GithubGroup) *issue.Client {
	rq := requester.New(
		http.Client{Timeout: g.Timeout},
		logx.LoggingRoundTripper(
			lg.With(slog.String("prefix", "http")),
			logx.RoundTripperOpts{
				Level:         slog.LevelDebug,
				SecretHeaders: []string{"Authorization"},
			},
		),
	)

	return issue.NewClient(
		lg.With(slog.String("prefix", "github")),
		rq.Client(),
		g.APIURL, g.Repo, g.Token,
	)
}

func newService(lg *slog.Logger, o OpenAIGroup) *writer.Service {
	return writer.NewService(
		lg.With(slog.String("prefix", "writer")),
		writer.NewChatGPT(
			lg.With(slog.String("prefix", "chatgpt")),
			&http.Client{Timeout: o.Timeout},
			o.Token,
			o.Model,
			o.MaxTokens,
		),
		writer.NewResearcher(
			lg.With(slog.String("prefix", "researcher")),
			&http.Client{Timeout: 30 * time.Second},
			maxReferenceExcerpt,
		),
	)
}

func openIndex(storePath string) (*store.Bolt, error) {
	if err := os.MkdirAll(storePath, 0o750); err != nil {
		return nil, fmt.Errorf("make store dir: %w", err)
	}

	idx, err := store.NewBolt(storePath)
	if err != nil {
		return nil, fmt.Errorf("make store: %w", err)
	}

	return idx, nil
}

func closeIndex(lg *slog.Logger, idx *store.Bolt) {
	if err := idx.Close(); err != nil {
		lg.Error("close bolt store", slog.Any("err", err))
	}
}

// sendNote notifies the configured telegram chat, notification
// failures never fail the run.
func sendNote(ctx context.Context, lg *slog.Logger, t TelegramGroup, msg string) {
	if t.Token == "" || t.ChatID == 0 {
		return
	}

	n, err := notify.NewTelegram(lg.With(slog.String("prefix", "telegram")), t.Token, t.ChatID)
	if err != nil {
		lg.WarnCtx(ctx, "failed to make telegram notifier", slog.Any("err", err))
		return
	}

	if err := n.Send(ctx, msg); err != nil {
		lg.WarnCtx(ctx, "failed to send notification", slog.Any("err", err))
	}
}
