package writer

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/moritamori/bloggen/app/store"
	"golang.org/x/exp/slog"
)

// Service is a main application service.
type Service struct {
	log        *slog.Logger
	chatGPT    *ChatGPT
	researcher *Researcher
	now        func() time.Time
}

// NewService creates new service.
func NewService(lg *slog.Logger, chatGPT *ChatGPT, researcher *Researcher) *Service {
	return &Service{
		log:        lg,
		chatGPT:    chatGPT,
		researcher: researcher,
		now:        time.Now,
	}
}

// Generate produces an article for the request. It makes two
// sequential completion calls: one for the body, one for the summary
// and tags.
func (s *Service) Generate(ctx context.Context, req store.ArticleRequest, issueNumber int) (store.Article, error) {
	s.log.DebugCtx(ctx, "generating article",
		slog.String("theme", req.Theme), slog.Int("issue", issueNumber))

	refs := s.researcher.Fetch(ctx, req.References)

	prompt, err := BuildArticlePrompt(req, refs)
	if err != nil {
		return store.Article{}, err
	}

	raw, err := s.chatGPT.Complete(ctx, systemWriter, prompt)
	if err != nil {
		return store.Article{}, fmt.Errorf("generate article: %w", err)
	}

	title, body := SplitTitleBody(raw)

	summary, tags, err := s.meta(ctx, title, body)
	if err != nil {
		return store.Article{}, fmt.Errorf("generate metadata: %w", err)
	}

	a := store.Article{
		Title:       title,
		Summary:     summary,
		GeneratedAt: s.now(),
		Metadata: store.Metadata{
			IssueNumber:    issueNumber,
			Tone:           string(req.Tone),
			TargetAudience: req.TargetAudience,
			SuggestedTags:  tags,
		},
	}
	a.SetContent(body)

	return a, nil
}

// Revise regenerates the article applying feedback text and the canned
// directive for the detected command. The issue number is carried
// forward from the original.
func (s *Service) Revise(ctx context.Context, fb FeedbackRequest) (store.Article, error) {
	s.log.DebugCtx(ctx, "revising article",
		slog.String("command", string(fb.Command)),
		slog.Int("issue", fb.Original.Metadata.IssueNumber))

	prompt, err := BuildRevisionPrompt(fb.Original, fb.Feedback, Directive(fb.Command))
	if err != nil {
		return store.Article{}, err
	}

	raw, err := s.chatGPT.Complete(ctx, systemEditor, prompt)
	if err != nil {
		return store.Article{}, fmt.Errorf("revise article: %w", err)
	}

	title, body := SplitTitleBody(raw)

	summary, tags, err := s.meta(ctx, title, body)
	if err != nil {
		return store.Article{}, fmt.Errorf("generate metadata: %w", err)
	}

	a := store.Article{
		Title:       title,
		Summary:     summary,
		GeneratedAt: s.now(),
		Metadata: store.Metadata{
			IssueNumber:    fb.Original.Metadata.IssueNumber,
			Tone:           fb.Original.Metadata.Tone,
			TargetAudience: fb.Original.Metadata.TargetAudience,
			SuggestedTags:  tags,
		},
	}
	a.SetContent(body)

	return a, nil
}

func (s *Service) meta(ctx context.Context, title, content string) (summary string, tags []string, err error) {
	prompt, err := BuildMetaPrompt(title, content)
	if err != nil {
		return "", nil, err
	}

	raw, err := s.chatGPT.Complete(ctx, systemMeta, prompt)
	if err != nil {
		return "", nil, fmt.Errorf("complete: %w", err)
	}

	summary, tags = parseMeta(raw)
	if summary == "" {
		summary = fallbackSummary(content)
	}

	return summary, tags, nil
}

const fallbackSummaryLen = 100

// parseMeta extracts labeled summary and tags lines out of the
// auxiliary completion response, tolerating absence of either.
func parseMeta(raw string) (summary string, tags []string) {
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)

		for _, label := range []string{"要約:", "要約：", "summary:"} {
			if rest, ok := strings.CutPrefix(line, label); ok && summary == "" {
				summary = strings.TrimSpace(rest)
			}
		}
		for _, label := range []string{"タグ:", "タグ：", "tags:"} {
			if rest, ok := strings.CutPrefix(line, label); ok && tags == nil {
				tags = splitTags(rest)
			}
		}
	}

	return summary, tags
}

func splitTags(s string) []string {
	var tags []string
	for _, tag := range strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == '、'
	}) {
		if tag = strings.TrimSpace(tag); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

func fallbackSummary(content string) string {
	runes := []rune(sanitize(content))
	if len(runes) <= fallbackSummaryLen {
		return string(runes)
	}
	return string(runes[:fallbackSummaryLen])
}
