package service

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	apperrors "github.com/lk2023060901/search-aggregator/internal/pkg/errors"
	"github.com/lk2023060901/search-aggregator/internal/pkg/logger"
	"github.com/lk2023060901/search-aggregator/internal/pkg/response"
	"github.com/lk2023060901/search-aggregator/internal/search/biz"
	"go.uber.org/zap"
)

// SearchService 搜索 HTTP 服务
type SearchService struct {
	uc     *biz.SearchUseCase
	logger *logger.Logger
}

// NewSearchService 创建搜索服务
func NewSearchService(uc *biz.SearchUseCase, logger *logger.Logger) *SearchService {
	return &SearchService{
		uc:     uc,
		logger: logger,
	}
}

// RegisterRoutes 注册 /api/search 路由
func (s *SearchService) RegisterRoutes(r gin.IRouter) {
	g := r.Group("/api/search")
	{
		g.POST("/", s.Search)
		g.GET("/", s.Docs)
		g.GET("/history/", s.GetHistory)
		g.DELETE("/history/", s.ClearHistory)
	}
}

// Search 执行聚合搜索
func (s *SearchService) Search(c *gin.Context) {
	var req SearchRequest
	// 请求体缺失或格式错误时按空查询处理
	_ = c.ShouldBind(&req)

	results, err := s.uc.Search(c.Request.Context(), req.Query)
	if err != nil {
		s.handleError(c, err)
		return
	}

	response.Success(c, results)
}

// Docs 返回搜索接口说明
func (s *SearchService) Docs(c *gin.Context) {
	response.Success(c, SearchDocs())
}

// GetHistory 获取最近的搜索历史
func (s *SearchService) GetHistory(c *gin.Context) {
	summary, err := s.uc.History(c.Request.Context())
	if err != nil {
		s.handleError(c, err)
		return
	}

	response.Success(c, toHistoryResponse(summary))
}

// ClearHistory 清空搜索历史
func (s *SearchService) ClearHistory(c *gin.Context) {
	deleted, err := s.uc.ClearHistory(c.Request.Context())
	if err != nil {
		s.handleError(c, err)
		return
	}

	response.SuccessWithMessage(c, "Search history cleared successfully", gin.H{"deleted": deleted})
}

// SearchDocs 搜索接口文档
func SearchDocs() gin.H {
	return gin.H{
		"endpoint":    "/api/search/",
		"description": "Aggregated web and video search",
		"methods": map[string]EndpointDoc{
			"search": {
				URL:         "/api/search/",
				Method:      http.MethodPost,
				Description: "Search the web and video providers and return merged results",
				Parameters:  map[string]string{"query": "string (required)"},
			},
			"history": {
				URL:         "/api/search/history/",
				Method:      http.MethodGet,
				Description: "Get the 10 most recent searches",
			},
			"clear_history": {
				URL:         "/api/search/history/",
				Method:      http.MethodDelete,
				Description: "Delete all search history",
			},
		},
		"result_fields": []string{"title", "description", "link", "source", "thumbnail", "date"},
	}
}

func toHistoryResponse(summary *biz.HistorySummary) *HistoryResponse {
	resp := &HistoryResponse{
		TotalSearches: summary.Total,
		MostRecent:    summary.MostRecent,
		History:       make([]HistoryItem, 0, len(summary.Entries)),
	}

	for _, e := range summary.Entries {
		resp.History = append(resp.History, HistoryItem{
			Query:     e.Query,
			Timestamp: e.Timestamp,
			TimeAgo:   biz.TimeAgo(e.Timestamp, *summary.MostRecent),
		})
	}

	return resp
}

// handleError 统一错误处理
func (s *SearchService) handleError(c *gin.Context, err error) {
	log := s.logger.WithContext(c.Request.Context())

	switch {
	case errors.Is(err, biz.ErrQueryRequired):
		response.ErrorWithCode(c, apperrors.ErrSearchQueryRequired)
	case errors.Is(err, biz.ErrNoResults):
		response.ErrorWithCode(c, apperrors.ErrSearchNoResults)
	case errors.Is(err, biz.ErrHistoryUnavailable):
		log.Error("search history failure", zap.Error(err))
		response.HandleError(c, apperrors.Wrap(err, apperrors.ErrSearchHistoryFailed))
	case errors.Is(err, biz.ErrAggregationFailed):
		log.Error("search aggregation failure", zap.Error(err))
		response.HandleError(c, apperrors.Wrap(err, apperrors.ErrSearchAggregateFault))
	default:
		log.Error("unexpected search error", zap.Error(err))
		response.HandleError(c, apperrors.Wrap(err, apperrors.ErrInternalServer))
	}
}
