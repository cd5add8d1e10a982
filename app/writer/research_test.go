package writer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

const refPage = `<html><head><title>Pipelines</title></head><body><article>
<h1>Pipelines</h1>
<p>A pipeline is a series of stages connected by channels. Each stage is a group
of goroutines running the same function, receiving values from upstream and
sending values downstream until the channels are closed.</p>
<p>This pattern composes well and keeps each stage simple to reason about,
which is why it shows up in so many concurrent Go programs in practice.</p>
</article></body></html>`

func TestResearcher_Fetch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, err := w.Write([]byte(refPage))
		require.NoError(t, err)
	}))
	defer ts.Close()

	r := NewResearcher(slog.Default(), ts.Client(), 80)

	refs := r.Fetch(context.Background(), []string{
		ts.URL + "/first",
		ts.URL + "/missing",
		ts.URL + "/second",
	})

	// failed fetches are skipped, the rest keeps its order
	require.Len(t, refs, 2)
	assert.Equal(t, ts.URL+"/first", refs[0].URL)
	assert.Equal(t, ts.URL+"/second", refs[1].URL)

	for _, ref := range refs {
		assert.Contains(t, ref.Excerpt, "pipeline")
		assert.LessOrEqual(t, len([]rune(ref.Excerpt)), 80+len("..."))
	}
}

func TestResearcher_Fetch_Empty(t *testing.T) {
	r := NewResearcher(slog.Default(), &http.Client{}, 80)
	assert.Empty(t, r.Fetch(context.Background(), nil))
}
