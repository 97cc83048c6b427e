package biz

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lk2023060901/search-aggregator/internal/pkg/logger"
	"github.com/lk2023060901/search-aggregator/internal/websearch/types"
	"go.uber.org/zap"
)

// SearchUseCase 搜索业务逻辑
type SearchUseCase struct {
	aggregator   *Aggregator
	history      HistoryRepo
	historyLimit int
	logger       *logger.Logger
	now          func() time.Time
}

// NewSearchUseCase 创建搜索用例
func NewSearchUseCase(aggregator *Aggregator, history HistoryRepo, historyLimit int, log *logger.Logger) *SearchUseCase {
	if historyLimit <= 0 {
		historyLimit = DefaultHistoryLimit
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &SearchUseCase{
		aggregator:   aggregator,
		history:      history,
		historyLimit: historyLimit,
		logger:       log,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// Search 校验查询、记录历史、聚合各提供方结果并分类
func (uc *SearchUseCase) Search(ctx context.Context, query string) ([]types.SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrQueryRequired
	}

	entry := &HistoryEntry{
		ID:        uuid.New().String(),
		Query:     query,
		Timestamp: uc.now(),
	}
	if err := uc.history.Append(ctx, entry); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrHistoryUnavailable, err)
	}

	res, err := uc.aggregator.Run(ctx, query)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrAggregationFailed, err)
	}

	status := Classify(res)
	uc.logger.WithContext(ctx).Info("search aggregated",
		zap.String("query", query),
		zap.String("status", string(status)),
		zap.Int("results", len(res.Results)),
		zap.Int("failed_providers", len(res.Failures)),
	)

	if !status.HasResults() {
		return nil, ErrNoResults
	}
	return res.Results, nil
}

// History 返回最近的搜索历史与总数
func (uc *SearchUseCase) History(ctx context.Context) (*HistorySummary, error) {
	entries, err := uc.history.ListRecent(ctx, uc.historyLimit)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrHistoryUnavailable, err)
	}

	total, err := uc.history.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrHistoryUnavailable, err)
	}

	summary := &HistorySummary{
		Total:   total,
		Entries: entries,
	}
	if summary.Entries == nil {
		summary.Entries = []*HistoryEntry{}
	}
	if len(entries) > 0 {
		ts := entries[0].Timestamp
		summary.MostRecent = &ts
	}

	return summary, nil
}

// ClearHistory 清空搜索历史
func (uc *SearchUseCase) ClearHistory(ctx context.Context) (int64, error) {
	deleted, err := uc.history.Clear(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrHistoryUnavailable, err)
	}

	uc.logger.WithContext(ctx).Info("search history cleared", zap.Int64("deleted", deleted))
	return deleted, nil
}
