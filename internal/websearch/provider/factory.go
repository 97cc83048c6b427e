package provider

import (
	"fmt"
	"sort"
	"sync"

	"github.com/lk2023060901/search-aggregator/internal/websearch/types"
)

// Constructor builds a provider from its configuration
type Constructor func(*types.ProviderConfig) (Provider, error)

// Factory creates provider instances
type Factory struct {
	mu           sync.RWMutex
	constructors map[types.ProviderID]Constructor
}

// NewFactory creates a new provider factory
func NewFactory() *Factory {
	f := &Factory{
		constructors: make(map[types.ProviderID]Constructor),
	}

	// Register built-in providers
	f.Register(types.ProviderWeb, NewWebSearchProvider)
	f.Register(types.ProviderVideo, NewVideoSearchProvider)

	return f
}

// Register registers a provider constructor
func (f *Factory) Register(id types.ProviderID, constructor Constructor) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.constructors[id] = constructor
}

// Create creates a provider instance from configuration
func (f *Factory) Create(config *types.ProviderConfig) (Provider, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	f.mu.RLock()
	constructor, exists := f.constructors[config.ID]
	f.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("%w: %s", types.ErrProviderNotFound, config.ID)
	}

	return constructor(config)
}

// CreateConfigured builds providers for every config that carries credentials,
// preserving the order of configs. Configs without an API key are returned in
// skipped instead of failing.
func (f *Factory) CreateConfigured(configs []*types.ProviderConfig) (providers []Provider, skipped []types.ProviderID, err error) {
	for _, cfg := range configs {
		if cfg == nil {
			continue
		}
		if !cfg.IsConfigured() {
			skipped = append(skipped, cfg.ID)
			continue
		}

		p, err := f.Create(cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("create provider %s: %w", cfg.ID, err)
		}
		providers = append(providers, p)
	}

	return providers, skipped, nil
}

// ListProviders returns a sorted list of all registered provider IDs
func (f *Factory) ListProviders() []types.ProviderID {
	f.mu.RLock()
	defer f.mu.RUnlock()

	ids := make([]types.ProviderID, 0, len(f.constructors))
	for id := range f.constructors {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
