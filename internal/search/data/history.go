package data

import (
	"context"
	"time"

	"github.com/lk2023060901/search-aggregator/internal/pkg/database"
	"github.com/lk2023060901/search-aggregator/internal/search/biz"
	"gorm.io/gorm"
)

// SearchHistoryPO 搜索历史数据库模型
type SearchHistoryPO struct {
	ID        string    `gorm:"type:uuid;primarykey"`
	Query     string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"not null;index:idx_search_history_created_at,sort:desc"`
}

func (SearchHistoryPO) TableName() string {
	return "search_history"
}

// HistoryRepo PostgreSQL 搜索历史仓储实现
type HistoryRepo struct {
	db *database.DB
}

// NewHistoryRepo 创建搜索历史仓储
func NewHistoryRepo(db *database.DB) biz.HistoryRepo {
	return &HistoryRepo{db: db}
}

// Append 追加一条历史
func (r *HistoryRepo) Append(ctx context.Context, entry *biz.HistoryEntry) error {
	po := &SearchHistoryPO{
		ID:        entry.ID,
		Query:     entry.Query,
		CreatedAt: entry.Timestamp,
	}
	return r.db.WithContext(ctx).Create(po).Error
}

// ListRecent 按时间倒序取最近 n 条
func (r *HistoryRepo) ListRecent(ctx context.Context, n int) ([]*biz.HistoryEntry, error) {
	var pos []SearchHistoryPO
	err := r.db.WithContext(ctx).
		Scopes(database.OrderBy("created_at", true), database.Limit(n)).
		Find(&pos).Error
	if err != nil {
		return nil, err
	}

	entries := make([]*biz.HistoryEntry, 0, len(pos))
	for i := range pos {
		entries = append(entries, toHistoryEntry(&pos[i]))
	}
	return entries, nil
}

// Count 统计历史总数
func (r *HistoryRepo) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&SearchHistoryPO{}).Count(&total).Error
	return total, err
}

// Clear 清空全部历史
func (r *HistoryRepo) Clear(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&SearchHistoryPO{})
	return result.RowsAffected, result.Error
}

func toHistoryEntry(po *SearchHistoryPO) *biz.HistoryEntry {
	return &biz.HistoryEntry{
		ID:        po.ID,
		Query:     po.Query,
		Timestamp: po.CreatedAt,
	}
}
