package search

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchFormatsResults(t *testing.T) {
	var got searchRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"answer": "The Eagles won Super Bowl LIX.",
			"results": []map[string]string{
				{"title": "Recap", "content": strings.Repeat("a", 400), "url": "https://a"},
				{"title": "Empty", "content": "", "url": "https://b"},
			},
		})
	}))
	defer srv.Close()

	log, _ := test.NewNullLogger()
	c := NewClient("tvly-key", srv.URL, time.Second, log)

	out := c.Search(context.Background(), "who won the super bowl")

	assert.Equal(t, "sports who won the super bowl", got.Query)
	assert.Equal(t, "basic", got.SearchDepth)
	assert.Equal(t, 5, got.MaxResults)
	assert.True(t, got.IncludeAnswer)

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Summary: The Eagles won Super Bowl LIX.", lines[0])
	assert.Equal(t, "- Recap: "+strings.Repeat("a", 300), lines[1])
}

func TestSearchDisabledAndFailing(t *testing.T) {
	log, _ := test.NewNullLogger()

	disabled := NewClient("", "", time.Second, log)
	assert.False(t, disabled.Enabled())
	assert.Equal(t, "", disabled.Search(context.Background(), "anything"))

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	failing := NewClient("bad-key", srv.URL, time.Second, log)
	assert.Equal(t, "", failing.Search(context.Background(), "anything"))
}
