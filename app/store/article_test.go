package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCountChars(t *testing.T) {
	tbl := []struct {
		s string
		n int
	}{
		{"", 0},
		{"   \n\t", 0},
		{"abc", 3},
		{"a b\nc", 3},
		{"日本語 テスト", 6},
	}

	for _, tt := range tbl {
		assert.Equal(t, tt.n, CountChars(tt.s), "input %q", tt.s)
	}
}

func TestArticle_SetContent(t *testing.T) {
	a := Article{}
	a.SetContent("one two")
	assert.Equal(t, 6, a.WordCount)

	a.SetContent("short")
	assert.Equal(t, 5, a.WordCount)
}

func TestArticle_Slug(t *testing.T) {
	a := Article{
		GeneratedAt: time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC),
		Metadata:    Metadata{IssueNumber: 12},
	}
	assert.Equal(t, "2023-06-01-issue-12", a.Slug())
}
