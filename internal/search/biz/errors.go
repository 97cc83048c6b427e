package biz

import "errors"

var (
	// ErrQueryRequired 查询词为空
	ErrQueryRequired = errors.New("query parameter is required")

	// ErrNoResults 所有提供方均无结果（包括全部失败或未配置）
	ErrNoResults = errors.New("no results found")

	// ErrHistoryUnavailable 搜索历史存储不可用
	ErrHistoryUnavailable = errors.New("search history store unavailable")

	// ErrAggregationFailed 聚合过程出现非提供方错误
	ErrAggregationFailed = errors.New("search aggregation failed")
)
