package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBolt(t *testing.T) {
	b, err := NewBolt(t.TempDir())
	require.NoError(t, err)
	defer func() { require.NoError(t, b.Close()) }()

	ctx := context.Background()

	_, err = b.Get(ctx, 12)
	assert.ErrorIs(t, err, ErrNotFound)

	ref := Ref{
		IssueNumber: 12,
		Title:       "Goの並行処理",
		Path:        "articles/2023-06-01-issue-12.md",
		UpdatedAt:   time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, b.Put(ctx, ref))

	got, err := b.Get(ctx, 12)
	require.NoError(t, err)
	assert.Equal(t, ref, got)

	// put for the same issue replaces the record
	ref.Title = "改訂版"
	require.NoError(t, b.Put(ctx, ref))

	refs, err := b.List(ctx)
	require.NoError(t, err)
	require.Len(t, refs, 1)
	assert.Equal(t, "改訂版", refs[0].Title)
}
