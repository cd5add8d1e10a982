package writer

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strings"

	readability "github.com/go-shiori/go-readability"
	"golang.org/x/exp/slog"
	"golang.org/x/sync/errgroup"
)

// Reference is a readable excerpt of a page linked in the issue body.
type Reference struct {
	URL     string
	Title   string
	Excerpt string
}

// Researcher fetches reference pages and reduces them to excerpts
// suitable for a prompt.
type Researcher struct {
	log        *slog.Logger
	cl         *http.Client
	maxExcerpt int
}

// NewResearcher creates new Researcher.
func NewResearcher(lg *slog.Logger, cl *http.Client, maxExcerpt int) *Researcher {
	return &Researcher{log: lg, cl: cl, maxExcerpt: maxExcerpt}
}

// Fetch retrieves all reference URLs concurrently, preserving their
// order. Fetch failures are logged and skipped, they never abort
// the generation.
func (r *Researcher) Fetch(ctx context.Context, urls []string) []Reference {
	refs := make([]Reference, len(urls))

	ewg, ctx := errgroup.WithContext(ctx)
	for i, u := range urls {
		i, u := i, u
		ewg.Go(func() error {
			ref, err := r.fetch(ctx, u)
			if err != nil {
				r.log.WarnCtx(ctx, "failed to fetch reference",
					slog.String("url", u), slog.Any("err", err))
				return nil
			}
			refs[i] = ref
			return nil
		})
	}
	_ = ewg.Wait()

	result := refs[:0]
	for _, ref := range refs {
		if ref.URL != "" {
			result = append(result, ref)
		}
	}

	return result
}

func (r *Researcher) fetch(ctx context.Context, u string) (Reference, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return Reference{}, fmt.Errorf("build request: %w", err)
	}

	resp, err := r.cl.Do(req)
	if err != nil {
		return Reference{}, fmt.Errorf("do request: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			r.log.WarnCtx(ctx, "failed to close response body", slog.Any("err", err))
		}
	}()

	ok := resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices
	if !ok {
		return Reference{}, fmt.Errorf("bad status code: %d", resp.StatusCode)
	}

	doc, err := readability.FromReader(resp.Body, nil)
	if err != nil {
		return Reference{}, fmt.Errorf("parse html: %w", err)
	}

	return Reference{
		URL:     u,
		Title:   doc.Title,
		Excerpt: cut(sanitize(doc.TextContent), r.maxExcerpt),
	}, nil
}

var spaceRe = regexp.MustCompile(`\s+`)

func sanitize(s string) string {
	s = strings.ReplaceAll(s, "\t", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	// nbsp
	s = strings.ReplaceAll(s, " ", " ")

	return strings.TrimSpace(spaceRe.ReplaceAllString(s, " "))
}

func cut(s string, limit int) string {
	runes := []rune(s)
	if limit <= 0 || len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}
