package biz

import (
	"context"
	"fmt"
	"time"
)

// DefaultHistoryLimit 历史列表返回的最大条数
const DefaultHistoryLimit = 10

// HistoryEntry 一次已受理的搜索记录
type HistoryEntry struct {
	ID        string
	Query     string
	Timestamp time.Time
}

// HistoryRepo 搜索历史仓储接口
type HistoryRepo interface {
	// Append 追加一条记录，单次原子写入
	Append(ctx context.Context, entry *HistoryEntry) error
	// ListRecent 按时间倒序返回最近 n 条
	ListRecent(ctx context.Context, n int) ([]*HistoryEntry, error)
	// Count 返回历史总数，与列表窗口无关
	Count(ctx context.Context) (int64, error)
	// Clear 删除全部记录并返回删除数量
	Clear(ctx context.Context) (int64, error)
}

// HistorySummary 历史查询结果
type HistorySummary struct {
	Total      int64
	MostRecent *time.Time
	Entries    []*HistoryEntry
}

// TimeAgo formats how long before ref the entry was issued, in hours with
// one decimal. The most recent entry itself is reported as "now".
func TimeAgo(ts, ref time.Time) string {
	if !ts.Before(ref) {
		return "now"
	}
	return fmt.Sprintf("%.1f hours ago", ref.Sub(ts).Hours())
}
