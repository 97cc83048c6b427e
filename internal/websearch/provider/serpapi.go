package provider

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/tidwall/gjson"

	"github.com/lk2023060901/search-aggregator/internal/websearch/types"
)

const defaultWebEngine = "google"

// WebSearchProvider implements general web search against a SerpAPI-compatible API
type WebSearchProvider struct {
	*BaseProvider
}

// NewWebSearchProvider creates a new web search provider
func NewWebSearchProvider(config *types.ProviderConfig) (Provider, error) {
	base := NewBaseProvider(config)
	return &WebSearchProvider{BaseProvider: base}, nil
}

// Search executes a search query using the web search API
func (p *WebSearchProvider) Search(ctx context.Context, query string) types.Outcome {
	return p.Outcome(p.search(ctx, query))
}

func (p *WebSearchProvider) search(ctx context.Context, query string) ([]types.SearchResult, error) {
	if query == "" {
		return nil, types.ErrEmptyQuery
	}

	engine := p.config.Engine
	if engine == "" {
		engine = defaultWebEngine
	}

	// Build query parameters
	params := url.Values{}
	params.Set("q", query)
	params.Set("engine", engine)
	params.Set("api_key", p.GetAPIKey())
	if p.config.MaxResults > 0 {
		params.Set("num", strconv.Itoa(p.config.MaxResults))
	}

	apiURL := fmt.Sprintf("%s/search.json?%s", p.BaseURL(), params.Encode())
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

	return parseWebResults(p.GetID(), body)
}

// parseWebResults maps organic_results[] into normalized records.
// A body without organic_results is a successful empty search.
func parseWebResults(id types.ProviderID, body []byte) ([]types.SearchResult, error) {
	root, err := parseObject(id, body)
	if err != nil {
		return nil, err
	}

	organic := root.Get("organic_results")
	if !organic.Exists() {
		return []types.SearchResult{}, nil
	}
	if !organic.IsArray() {
		return nil, types.NewParseError(id, "organic_results is not an array", nil)
	}

	items := organic.Array()
	results := make([]types.SearchResult, 0, len(items))
	for i, item := range items {
		if !item.IsObject() {
			return nil, types.NewParseError(id, fmt.Sprintf("organic_results[%d] is not an object", i), nil)
		}

		results = append(results, types.SearchResult{
			Title:       item.Get("title").String(),
			Description: item.Get("snippet").String(),
			Link:        item.Get("link").String(),
			Source:      types.SourceWeb,
			Thumbnail:   item.Get("favicon").String(),
			Date:        stringOr(item.Get("date"), types.UnknownDate),
		})
	}

	return results, nil
}

func parseObject(id types.ProviderID, body []byte) (gjson.Result, error) {
	if !gjson.ValidBytes(body) {
		return gjson.Result{}, types.NewParseError(id, "invalid JSON body", nil)
	}

	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return gjson.Result{}, types.NewParseError(id, "response body is not a JSON object", nil)
	}
	return root, nil
}

func stringOr(r gjson.Result, fallback string) string {
	if r.Type == gjson.Null || r.String() == "" {
		return fallback
	}
	return r.String()
}
