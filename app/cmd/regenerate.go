package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/moritamori/bloggen/app/document"
	"github.com/moritamori/bloggen/app/store"
	"github.com/moritamori/bloggen/app/writer"
	"golang.org/x/exp/slog"
)

// Regenerate is a command to revise a persisted article with feedback.
type Regenerate struct {
	IssueNumber int    `long:"issue" env:"ISSUE_NUMBER" description:"issue number of the article to revise"`
	Feedback    string `long:"feedback" env:"FEEDBACK_BODY" description:"feedback comment text"`

	OpenAI   OpenAIGroup   `group:"openai" namespace:"openai" env-namespace:"OPENAI"`
	Telegram TelegramGroup `group:"telegram" namespace:"telegram" env-namespace:"TELEGRAM"`
	Paths    PathsGroup    `group:"paths" namespace:"paths" env-namespace:"PATHS"`
}

// Execute runs the command.
func (c Regenerate) Execute(_ []string) error {
	if c.IssueNumber <= 0 {
		return errors.New("issue number is required")
	}
	if strings.TrimSpace(c.Feedback) == "" {
		return errors.New("feedback text is required")
	}

	ctx, lg := runCtx()

	idx, err := openIndex(c.Paths.StorePath)
	if err != nil {
		return err
	}
	defer closeIndex(lg, idx)

	ref, err := idx.Get(ctx, c.IssueNumber)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("no article found for issue %d", c.IssueNumber)
		}
		return fmt.Errorf("get article ref: %w", err)
	}

	bts, err := os.ReadFile(ref.Path)
	if err != nil {
		return fmt.Errorf("read article document %s: %w", ref.Path, err)
	}

	original := document.DecodeForRevision(string(bts))
	original.Metadata.IssueNumber = c.IssueNumber

	command := writer.DetectCommand(c.Feedback)
	lg.InfoCtx(ctx, "feedback received",
		slog.String("command", string(command)),
		slog.Int("issue", c.IssueNumber),
	)

	if command == writer.CommandPublish {
		out, err := exportArticle(document.Decode(string(bts)), ref.Path, false)
		if err != nil {
			return err
		}

		lg.InfoCtx(ctx, "article exported", slog.String("path", out))
		sendNote(ctx, lg, c.Telegram,
			fmt.Sprintf("article for issue #%d exported to %s", c.IssueNumber, out))
		return nil
	}

	article, err := newService(lg, c.OpenAI).Revise(ctx, writer.FeedbackRequest{
		Feedback: c.Feedback,
		Command:  command,
		Original: original,
	})
	if err != nil {
		return fmt.Errorf("revise article: %w", err)
	}

	if err := os.WriteFile(ref.Path, []byte(document.Encode(article)), 0o644); err != nil {
		return fmt.Errorf("write article document: %w", err)
	}

	err = idx.Put(ctx, store.Ref{
		IssueNumber: c.IssueNumber,
		Title:       article.Title,
		Path:        ref.Path,
		UpdatedAt:   time.Now(),
	})
	if err != nil {
		return fmt.Errorf("index article: %w", err)
	}

	lg.InfoCtx(ctx, "article revised",
		slog.String("title", article.Title),
		slog.Int("word_count", article.WordCount),
		slog.String("path", ref.Path),
	)

	sendNote(ctx, lg, c.Telegram,
		fmt.Sprintf("article revised for issue #%d: %s", c.IssueNumber, article.Title))

	return nil
}
