package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/lk2023060901/search-aggregator/internal/websearch/types"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const youtubeBody = `{
  "kind": "youtube#searchListResponse",
  "items": [
    {"id": {"kind": "youtube#video", "videoId": "ad79nYk2keg"},
     "snippet": {"publishedAt": "2023-01-12T15:00:00Z", "title": "AI in 5 minutes", "description": "A short intro",
       "thumbnails": {"default": {"url": "https://i.ytimg.com/vi/ad79nYk2keg/default.jpg"}}}},
    {"id": {"kind": "youtube#video", "videoId": "xyz"},
     "snippet": {"title": "No date, no thumbnail"}}
  ]
}`

func newVideoProvider(t *testing.T, host string) Provider {
	t.Helper()
	p, err := NewFactory().Create(&types.ProviderConfig{
		ID:      types.ProviderVideo,
		Name:    "Video",
		APIHost: host,
		APIKey:  "yt-key",
	})
	require.NoError(t, err)
	return p
}

func TestVideoSearchProvider_Search(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/youtube/v3/search", r.URL.Path)
		q := r.URL.Query()
		assert.Equal(t, "snippet", q.Get("part"))
		assert.Equal(t, "video", q.Get("type"))
		assert.Equal(t, "yt-key", q.Get("key"))
		assert.Equal(t, "artificial intelligence", q.Get("q"))
		assert.Empty(t, q.Get("maxResults"))
		_, _ = w.Write([]byte(youtubeBody))
	}))
	defer srv.Close()

	outcome := newVideoProvider(t, srv.URL).Search(context.Background(), "artificial intelligence")
	require.True(t, outcome.IsOk(), "unexpected failure: %v", outcome.Err)
	require.Len(t, outcome.Results, 2)

	first := outcome.Results[0]
	assert.Equal(t, "AI in 5 minutes", first.Title)
	assert.Equal(t, "A short intro", first.Description)
	assert.Equal(t, "https://www.youtube.com/watch?v=ad79nYk2keg", first.Link)
	assert.Equal(t, "https://i.ytimg.com/vi/ad79nYk2keg/default.jpg", first.Thumbnail)
	assert.Equal(t, "2023-01-12T15:00:00Z", first.Date)
	assert.Equal(t, types.SourceVideo, first.Source)

	second := outcome.Results[1]
	assert.Equal(t, types.UnknownDate, second.Date)
	assert.Equal(t, "", second.Thumbnail)
	assert.Equal(t, "", second.Description)
}

func TestParseVideoResults(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantCount int
		wantErr   bool
	}{
		{name: "missing items is empty", body: `{"kind":"youtube#searchListResponse"}`, wantCount: 0},
		{name: "empty items", body: `{"items":[]}`, wantCount: 0},
		{name: "missing videoId", body: `{"items":[{"id":{"kind":"youtube#channel"},"snippet":{"title":"x"}}]}`, wantErr: true},
		{name: "missing snippet", body: `{"items":[{"id":{"videoId":"abc"}}]}`, wantErr: true},
		{name: "items not an array", body: `{"items":{}}`, wantErr: true},
		{name: "invalid JSON", body: `nope`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := parseVideoResults(types.ProviderVideo, []byte(tt.body))
			if tt.wantErr {
				assert.ErrorIs(t, err, types.ErrParse)
				return
			}
			require.NoError(t, err)
			assert.Len(t, results, tt.wantCount)
		})
	}
}

func TestVideoSearchProvider_Search_Forbidden(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error":{"code":403,"message":"quotaExceeded"}}`))
	}))
	defer srv.Close()

	outcome := newVideoProvider(t, srv.URL).Search(context.Background(), "golang")
	assert.False(t, outcome.IsOk())
	assert.ErrorIs(t, outcome.Err, types.ErrTransport)
}

func TestVideoSearchProvider_Search_CancelledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(youtubeBody))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outcome := newVideoProvider(t, srv.URL).Search(ctx, "golang")
	assert.False(t, outcome.IsOk())
	assert.ErrorIs(t, outcome.Err, context.Canceled)
}
