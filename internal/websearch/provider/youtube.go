package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/lk2023060901/search-aggregator/internal/websearch/types"
)

// WatchURLPrefix is prepended to a video ID to build its canonical link
const WatchURLPrefix = "https://www.youtube.com/watch?v="

// VideoSearchProvider implements video search against the YouTube Data API v3
type VideoSearchProvider struct {
	*BaseProvider
}

// NewVideoSearchProvider creates a new video search provider
func NewVideoSearchProvider(config *types.ProviderConfig) (Provider, error) {
	base := NewBaseProvider(config)
	return &VideoSearchProvider{BaseProvider: base}, nil
}

// Search executes a search query using the video search API
func (p *VideoSearchProvider) Search(ctx context.Context, query string) types.Outcome {
	return p.Outcome(p.search(ctx, query))
}

func (p *VideoSearchProvider) search(ctx context.Context, query string) ([]types.SearchResult, error) {
	if query == "" {
		return nil, types.ErrEmptyQuery
	}

	params := url.Values{}
	params.Set("part", "snippet")
	params.Set("q", query)
	params.Set("type", "video")
	params.Set("key", p.GetAPIKey())
	if p.config.MaxResults > 0 {
		params.Set("maxResults", strconv.Itoa(p.config.MaxResults))
	}

	apiURL := fmt.Sprintf("%s/youtube/v3/search?%s", p.BaseURL(), params.Encode())
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	for k, v := range p.BuildDefaultHeaders() {
		httpReq.Header.Set(k, v)
	}

	body, err := p.DoRequest(ctx, httpReq)
	if err != nil {
		return nil, err
	}

	return parseVideoResults(p.GetID(), body)
}

// parseVideoResults maps items[] into normalized records. Every item must
// carry a snippet object and id.videoId; the rest degrades to defaults.
func parseVideoResults(id types.ProviderID, body []byte) ([]types.SearchResult, error) {
	root, err := parseObject(id, body)
	if err != nil {
		return nil, err
	}

	list := root.Get("items")
	if !list.Exists() {
		return []types.SearchResult{}, nil
	}
	if !list.IsArray() {
		return nil, types.NewParseError(id, "items is not an array", nil)
	}

	items := list.Array()
	results := make([]types.SearchResult, 0, len(items))
	for i, item := range items {
		snippet := item.Get("snippet")
		if !snippet.IsObject() {
			return nil, types.NewParseError(id, fmt.Sprintf("items[%d] missing snippet", i), nil)
		}

		videoID := item.Get("id.videoId").String()
		if videoID == "" {
			return nil, types.NewParseError(id, fmt.Sprintf("items[%d] missing id.videoId", i), nil)
		}

		results = append(results, types.SearchResult{
			Title:       snippet.Get("title").String(),
			Description: snippet.Get("description").String(),
			Link:        WatchURLPrefix + videoID,
			Source:      types.SourceVideo,
			Thumbnail:   snippet.Get("thumbnails.default.url").String(),
			Date:        stringOr(snippet.Get("publishedAt"), types.UnknownDate),
		})
	}

	return results, nil
}
