package news

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"newsrelay/internal/config"
	"newsrelay/internal/upstream"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(url string) *Client {
	return NewClient(config.GNewsConfig{
		URL:         url,
		APIKey:      "test-key",
		Language:    "en",
		MaxArticles: 5,
		Timeout:     2 * time.Second,
	})
}

func serveJSON(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestFormatHeadlines(t *testing.T) {
	cases := []struct {
		name     string
		articles []Article
		want     string
	}{
		{"no articles", nil, "No news available."},
		{"single", []Article{{Title: "A", Description: "B"}}, "- A: B"},
		{"missing description", []Article{{Title: "A"}}, "- A: "},
		{
			"keeps order and duplicates",
			[]Article{{Title: "Z", Description: "1"}, {Title: "A", Description: "2"}, {Title: "Z", Description: "1"}},
			"- Z: 1\n- A: 2\n- Z: 1",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, FormatHeadlines(tc.articles))
		})
	}
}

func TestFetch_SendsQueryParameters(t *testing.T) {
	var got *http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r
		w.Write([]byte(`{"articles": []}`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL + "/api/v4/top-headlines").Fetch(context.Background())
	require.NoError(t, err)

	require.NotNil(t, got)
	assert.Equal(t, http.MethodGet, got.Method)
	assert.Equal(t, "/api/v4/top-headlines", got.URL.Path)
	assert.Equal(t, "en", got.URL.Query().Get("lang"))
	assert.Equal(t, "5", got.URL.Query().Get("max"))
	assert.Equal(t, "test-key", got.URL.Query().Get("apikey"))
}

func TestFetchHeadlines_ZeroArticles(t *testing.T) {
	srv := serveJSON(t, http.StatusOK, `{"totalArticles": 0, "articles": []}`)

	block, err := newTestClient(srv.URL).FetchHeadlines(context.Background())
	require.NoError(t, err)
	assert.Equal(t, NoNews, block)
}

func TestFetchHeadlines_NoArticlesKey(t *testing.T) {
	srv := serveJSON(t, http.StatusOK, `{}`)

	block, err := newTestClient(srv.URL).FetchHeadlines(context.Background())
	require.NoError(t, err)
	assert.Equal(t, NoNews, block)
}

func TestFetchHeadlines_NullAndMissingDescription(t *testing.T) {
	srv := serveJSON(t, http.StatusOK, `{"articles": [
		{"title": "A", "description": "B", "url": "https://example.com/a"},
		{"title": "C"},
		{"title": "D", "description": null}
	]}`)

	block, err := newTestClient(srv.URL).FetchHeadlines(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "- A: B\n- C: \n- D: ", block)
}

func TestFetch_UpstreamStatusError(t *testing.T) {
	srv := serveJSON(t, http.StatusInternalServerError, `quota exceeded`)

	_, err := newTestClient(srv.URL).FetchHeadlines(context.Background())
	require.Error(t, err)

	var ue *upstream.Error
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, "GNews", ue.Service)
	assert.Equal(t, 500, ue.StatusCode)
	assert.Equal(t, "quota exceeded", ue.Body)
	assert.Equal(t, "GNews error 500: quota exceeded", err.Error())
}

func TestFetch_MalformedBody(t *testing.T) {
	srv := serveJSON(t, http.StatusOK, `not json`)

	_, err := newTestClient(srv.URL).Fetch(context.Background())

	var ue *upstream.Error
	require.True(t, errors.As(err, &ue))
	assert.Zero(t, ue.StatusCode)
	assert.Contains(t, err.Error(), "failed to parse response")
}

func TestFetch_Timeout(t *testing.T) {
	block := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-block
	}))
	defer srv.Close()
	defer close(block)

	c := newTestClient(srv.URL)
	c.HTTPClient.Timeout = 50 * time.Millisecond

	_, err := c.Fetch(context.Background())

	var ue *upstream.Error
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, "GNews", ue.Service)
	assert.Zero(t, ue.StatusCode)
}
