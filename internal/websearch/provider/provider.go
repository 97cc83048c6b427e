package provider

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	wshttp "github.com/lk2023060901/search-aggregator/internal/websearch/http"
	"github.com/lk2023060901/search-aggregator/internal/websearch/types"
)

// maxBodySize caps how much of a provider response is read into memory
const maxBodySize = 10 << 20

// Provider defines the interface for search providers
type Provider interface {
	// Search executes a search query. Failures are reported through the
	// returned outcome, never as a separate error.
	Search(ctx context.Context, query string) types.Outcome

	// GetID returns the provider ID
	GetID() types.ProviderID

	// GetName returns the provider name
	GetName() string

	// Validate validates the provider configuration
	Validate() error
}

// BaseProvider provides common functionality for all providers
type BaseProvider struct {
	config     *types.ProviderConfig
	httpClient *http.Client

	mu       sync.Mutex
	apiKeys  []string // Support multiple API keys for rotation
	keyIndex int      // Current key index
}

// NewBaseProvider creates a new base provider
func NewBaseProvider(config *types.ProviderConfig) *BaseProvider {
	httpClient := wshttp.NewHTTPClient(time.Duration(config.Timeout) * time.Second)

	// Parse multiple API keys (comma-separated)
	var apiKeys []string
	for _, key := range strings.Split(config.APIKey, ",") {
		if key = strings.TrimSpace(key); key != "" {
			apiKeys = append(apiKeys, key)
		}
	}

	return &BaseProvider{
		config:     config,
		httpClient: httpClient,
		apiKeys:    apiKeys,
	}
}

// GetID returns the provider ID
func (b *BaseProvider) GetID() types.ProviderID {
	return b.config.ID
}

// GetName returns the provider name
func (b *BaseProvider) GetName() string {
	return b.config.Name
}

// GetConfig returns the provider configuration
func (b *BaseProvider) GetConfig() *types.ProviderConfig {
	return b.config
}

// GetHTTPClient returns the HTTP client
func (b *BaseProvider) GetHTTPClient() *http.Client {
	return b.httpClient
}

// GetAPIKey returns the current API key (with rotation support)
func (b *BaseProvider) GetAPIKey() string {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.apiKeys) == 0 {
		return ""
	}

	key := b.apiKeys[b.keyIndex]
	b.keyIndex = (b.keyIndex + 1) % len(b.apiKeys)
	return key
}

// BuildDefaultHeaders builds default HTTP headers
func (b *BaseProvider) BuildDefaultHeaders() map[string]string {
	return map[string]string{
		"Accept":     "application/json",
		"User-Agent": "Search-Aggregator/1.0",
	}
}

// BaseURL returns the configured API host without a trailing slash
func (b *BaseProvider) BaseURL() string {
	return strings.TrimRight(b.config.APIHost, "/")
}

// DoRequest executes a single HTTP round trip and returns the response body.
// There is no retry: a failed call is reported to the caller as is.
func (b *BaseProvider) DoRequest(ctx context.Context, req *http.Request) ([]byte, error) {
	resp, err := b.httpClient.Do(req.WithContext(ctx))
	if err != nil {
		return nil, types.NewTransportError(b.GetID(), types.CodeRequestFailed, "Failed to execute request", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, types.NewTransportError(b.GetID(), types.CodeRequestFailed, "Failed to read response body", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, types.NewTransportError(b.GetID(), fmt.Sprintf("HTTP_%d", resp.StatusCode), truncate(string(body), 512), nil)
	}

	return body, nil
}

// Outcome folds a (results, error) pair into a provider outcome
func (b *BaseProvider) Outcome(results []types.SearchResult, err error) types.Outcome {
	if err != nil {
		return types.Failed(b.GetID(), err)
	}
	return types.Ok(b.GetID(), results)
}

// Validate validates the provider configuration
func (b *BaseProvider) Validate() error {
	return b.config.Validate()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
