package store

import (
	"strconv"
	"strings"
	"time"
	"unicode"
)

// Tone describes the writing style of an article.
type Tone string

// recognized tones, anything else degrades to ToneCasual
const (
	ToneCasual    Tone = "casual"
	ToneBusiness  Tone = "business"
	ToneTechnical Tone = "technical"
)

// ArticleRequest is a structured request for generating an article,
// extracted from a free-text issue body. Immutable after construction.
type ArticleRequest struct {
	Theme                  string   `json:"theme"`
	TargetAudience         string   `json:"target_audience"`
	Tone                   Tone     `json:"tone"`
	TargetLength           int      `json:"target_length"`
	AdditionalInstructions string   `json:"additional_instructions"`
	References             []string `json:"references"`
}

// Article is a generated article with its metadata.
type Article struct {
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Summary     string    `json:"summary"`
	WordCount   int       `json:"word_count"`
	GeneratedAt time.Time `json:"generated_at"`
	Metadata    Metadata  `json:"metadata"`
}

// Metadata contains auxiliary article attributes.
type Metadata struct {
	IssueNumber    int      `json:"issue_number"`
	Tone           string   `json:"tone"`
	TargetAudience string   `json:"target_audience"`
	SuggestedTags  []string `json:"suggested_tags"`
}

// SetContent replaces the article body and recomputes the word count.
func (a *Article) SetContent(content string) {
	a.Content = content
	a.WordCount = CountChars(content)
}

// CountChars returns the number of non-whitespace characters in s.
func CountChars(s string) int {
	n := 0
	for _, r := range s {
		if !unicode.IsSpace(r) {
			n++
		}
	}
	return n
}

// Slug returns a date-prefixed file name stem for the article,
// e.g. "2023-06-01-issue-12".
func (a Article) Slug() string {
	day := a.GeneratedAt
	if day.IsZero() {
		day = time.Now()
	}
	return strings.Join([]string{
		day.Format("2006-01-02"),
		"issue",
		strconv.Itoa(a.Metadata.IssueNumber),
	}, "-")
}
