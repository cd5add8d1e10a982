package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/moritamori/bloggen/app/document"
	"github.com/moritamori/bloggen/app/issue"
	"github.com/moritamori/bloggen/app/store"
	"golang.org/x/exp/slog"
)

// Generate is a command to generate an article from an issue.
type Generate struct {
	IssueNumber int `long:"issue" env:"ISSUE_NUMBER" description:"issue number to generate an article for"`

	Github   GithubGroup   `group:"github" namespace:"github" env-namespace:"GITHUB"`
	OpenAI   OpenAIGroup   `group:"openai" namespace:"openai" env-namespace:"OPENAI"`
	Telegram TelegramGroup `group:"telegram" namespace:"telegram" env-namespace:"TELEGRAM"`
	Paths    PathsGroup    `group:"paths" namespace:"paths" env-namespace:"PATHS"`
}

// Execute runs the command.
func (c Generate) Execute(_ []string) error {
	if c.IssueNumber <= 0 {
		return errors.New("issue number is required")
	}

	ctx, lg := runCtx()

	idx, err := openIndex(c.Paths.StorePath)
	if err != nil {
		return err
	}
	defer closeIndex(lg, idx)

	iss, err := githubClient(lg, c.Github).Get(ctx, c.IssueNumber)
	if err != nil {
		return fmt.Errorf("get issue: %w", err)
	}

	req := issue.ParseRequest(iss)
	lg.InfoCtx(ctx, "request extracted",
		slog.String("theme", req.Theme),
		slog.String("tone", string(req.Tone)),
		slog.Int("target_length", req.TargetLength),
		slog.Int("references", len(req.References)),
	)

	article, err := newService(lg, c.OpenAI).Generate(ctx, req, iss.Number)
	if err != nil {
		return fmt.Errorf("generate article: %w", err)
	}

	if err := os.MkdirAll(c.Paths.ArticlesDir, 0o750); err != nil {
		return fmt.Errorf("make articles dir: %w", err)
	}

	path := filepath.Join(c.Paths.ArticlesDir, article.Slug()+".md")
	if err := os.WriteFile(path, []byte(document.Encode(article)), 0o644); err != nil {
		return fmt.Errorf("write article document: %w", err)
	}

	err = idx.Put(ctx, store.Ref{
		IssueNumber: iss.Number,
		Title:       article.Title,
		Path:        path,
		UpdatedAt:   time.Now(),
	})
	if err != nil {
		return fmt.Errorf("index article: %w", err)
	}

	lg.InfoCtx(ctx, "article generated",
		slog.String("title", article.Title),
		slog.Int("word_count", article.WordCount),
		slog.String("path", path),
	)

	sendNote(ctx, lg, c.Telegram,
		fmt.Sprintf("article generated for issue #%d: %s", iss.Number, article.Title))

	return nil
}
