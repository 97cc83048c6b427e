package biz

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/lk2023060901/search-aggregator/internal/pkg/logger"
	"github.com/lk2023060901/search-aggregator/internal/websearch/provider"
	"github.com/lk2023060901/search-aggregator/internal/websearch/types"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// DefaultProviderTimeout bounds a single provider call when none is configured
const DefaultProviderTimeout = 5 * time.Second

// AggregationResult is the merged output of one fan-out
type AggregationResult struct {
	// Results concatenates every successful provider's items in provider order
	Results []types.SearchResult
	// Failures holds the failed outcomes, also in provider order
	Failures []types.Outcome
	// Succeeded counts providers whose call returned Ok, even with zero items
	Succeeded int
}

// Aggregator fans a query out to an ordered set of providers
type Aggregator struct {
	providers []provider.Provider
	timeout   time.Duration
	logger    *logger.Logger
}

// NewAggregator creates an aggregator. Provider order is preserved in the merged results.
func NewAggregator(providers []provider.Provider, timeout time.Duration, log *logger.Logger) *Aggregator {
	if timeout <= 0 {
		timeout = DefaultProviderTimeout
	}
	if log == nil {
		log = logger.NewNop()
	}

	ps := make([]provider.Provider, len(providers))
	copy(ps, providers)

	return &Aggregator{
		providers: ps,
		timeout:   timeout,
		logger:    log.Named("aggregator"),
	}
}

// ProviderIDs returns the configured providers in invocation order
func (a *Aggregator) ProviderIDs() []types.ProviderID {
	ids := make([]types.ProviderID, 0, len(a.providers))
	for _, p := range a.providers {
		ids = append(ids, p.GetID())
	}
	return ids
}

// Run invokes every provider concurrently and merges their outcomes.
//
// A provider failure never affects another provider's outcome. Run itself only
// fails for an empty query or when ctx is done before all providers settle.
func (a *Aggregator) Run(ctx context.Context, query string) (*AggregationResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrQueryRequired
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	outcomes := make([]types.Outcome, len(a.providers))

	var g errgroup.Group
	for i, p := range a.providers {
		g.Go(func() error {
			outcomes[i] = a.call(ctx, p, query)
			return nil
		})
	}

	done := make(chan struct{})
	go func() {
		_ = g.Wait()
		close(done)
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-done:
	}

	return a.merge(ctx, query, outcomes), nil
}

// call runs a single provider under its own deadline and turns a panic into a failed outcome
func (a *Aggregator) call(ctx context.Context, p provider.Provider, query string) (out types.Outcome) {
	id := p.GetID()

	defer func() {
		if r := recover(); r != nil {
			out = types.Failed(id, &types.ProviderError{
				Provider: id,
				Code:     types.CodePanic,
				Message:  fmt.Sprintf("provider panicked: %v", r),
			})
		}
	}()

	callCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	start := time.Now()
	out = p.Search(callCtx, query)
	out.Provider = id
	if out.IsOk() && out.Results == nil {
		out.Results = []types.SearchResult{}
	}

	a.logger.WithContext(ctx).Debug("provider call finished",
		zap.String("provider", string(id)),
		zap.Bool("ok", out.IsOk()),
		zap.Int("results", len(out.Results)),
		zap.Duration("elapsed", time.Since(start)),
	)

	return out
}

func (a *Aggregator) merge(ctx context.Context, query string, outcomes []types.Outcome) *AggregationResult {
	res := &AggregationResult{Results: []types.SearchResult{}}

	for _, out := range outcomes {
		if !out.IsOk() {
			res.Failures = append(res.Failures, out)
			a.logger.WithContext(ctx).Warn("search provider failed",
				zap.String("provider", string(out.Provider)),
				zap.String("query", query),
				zap.Error(out.Err),
			)
			continue
		}
		res.Succeeded++
		res.Results = append(res.Results, out.Results...)
	}

	return res
}
