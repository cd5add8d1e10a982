package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/moritamori/bloggen/app/document"
	"github.com/moritamori/bloggen/app/store"
	"golang.org/x/exp/slog"
)

// Export is a command to render a persisted article for publishing.
type Export struct {
	IssueNumber int  `long:"issue" env:"ISSUE_NUMBER" description:"issue number of the article to export"`
	HTML        bool `long:"html" env:"HTML" description:"additionally render the article to HTML"`

	Paths PathsGroup `group:"paths" namespace:"paths" env-namespace:"PATHS"`
}

// Execute runs the command.
func (c Export) Execute(_ []string) error {
	if c.IssueNumber <= 0 {
		return errors.New("issue number is required")
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

	out, err := exportArticle(document.Decode(string(bts)), ref.Path, c.HTML)
	if err != nil {
		return err
	}

	lg.InfoCtx(ctx, "article exported", slog.String("path", out))

	return nil
}

// exportArticle writes the plain-text rendering next to the document,
// optionally with an HTML rendering alongside. Returns the text
// output path.
func exportArticle(a store.Article, docPath string, html bool) (string, error) {
	stem := strings.TrimSuffix(docPath, ".md")

	out := stem + ".txt"
	if err := os.WriteFile(out, []byte(document.FormatForNote(a)), 0o644); err != nil {
		return "", fmt.Errorf("write export document: %w", err)
	}

	if html {
		rendered, err := document.RenderHTML(a)
		if err != nil {
			return "", fmt.Errorf("render html: %w", err)
		}
		if err := os.WriteFile(stem+".html", []byte(rendered), 0o644); err != nil {
			return "", fmt.Errorf("write html document: %w", err)
		}
	}

	return out, nil
}
