package service

import "time"

// SearchRequest 搜索请求
type SearchRequest struct {
	Query string `json:"query" form:"query"`
}

// HistoryItem 单条历史
type HistoryItem struct {
	Query     string    `json:"query"`
	Timestamp time.Time `json:"timestamp"`
	TimeAgo   string    `json:"time_ago"`
}

// HistoryResponse 搜索历史响应
type HistoryResponse struct {
	TotalSearches int64         `json:"total_searches"`
	MostRecent    *time.Time    `json:"most_recent"`
	History       []HistoryItem `json:"history"`
}

// EndpointDoc 单个接口说明
type EndpointDoc struct {
	URL         string            `json:"url"`
	Method      string            `json:"method"`
	Description string            `json:"description"`
	Parameters  map[string]string `json:"parameters,omitempty"`
}
