// Package issue contains the issue tracker client and the request extractor.
package issue

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"golang.org/x/exp/slog"
)

// Issue is a tracker issue, only the fields the pipeline reads.
type Issue struct {
	Number int      `json:"number"`
	Title  string   `json:"title"`
	Body   string   `json:"body"`
	Labels []string `json:"-"`
}

// Client is a client to the GitHub-style issues API.
type Client struct {
	log     *slog.Logger
	cl      *http.Client
	baseURL string
	repo    string
	token   string
}

// NewClient creates new issues API client. baseURL must not have
// a trailing slash, repo is in the "owner/name" form.
func NewClient(lg *slog.Logger, cl *http.Client, baseURL, repo, token string) *Client {
	return &Client{log: lg, cl: cl, baseURL: baseURL, repo: repo, token: token}
}

// Get returns the issue with the given number.
func (c *Client) Get(ctx context.Context, number int) (Issue, error) {
	u := fmt.Sprintf("%s/repos/%s/issues/%d", c.baseURL, c.repo, number)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return Issue{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.cl.Do(req)
	if err != nil {
		return Issue{}, fmt.Errorf("do request: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.log.WarnCtx(ctx, "failed to close response body", slog.Any("err", err))
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Issue{}, fmt.Errorf("read response body: %w", err)
	}

	ok := resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices
	if !ok {
		return Issue{}, fmt.Errorf("bad status code %d: %s", resp.StatusCode, string(body))
	}

	var payload struct {
		Number int    `json:"number"`
		Title  string `json:"title"`
		Body   string `json:"body"`
		Labels []struct {
			Name string `json:"name"`
		} `json:"labels"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return Issue{}, fmt.Errorf("unmarshal issue: %w", err)
	}

	iss := Issue{Number: payload.Number, Title: payload.Title, Body: payload.Body}
	for _, l := range payload.Labels {
		iss.Labels = append(iss.Labels, l.Name)
	}

	return iss, nil
}
