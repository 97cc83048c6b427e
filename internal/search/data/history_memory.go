package data

import (
	"context"
	"sort"
	"sync"

	"github.com/lk2023060901/search-aggregator/internal/search/biz"
)

// memoryRetention caps the entries kept in process
const memoryRetention = 1000

// MemoryHistoryRepo 进程内搜索历史，用于本地开发和测试
type MemoryHistoryRepo struct {
	mu      sync.RWMutex
	entries []*biz.HistoryEntry
	total   int64
}

// NewMemoryHistoryRepo 创建内存搜索历史仓储
func NewMemoryHistoryRepo() biz.HistoryRepo {
	return &MemoryHistoryRepo{}
}

func (r *MemoryHistoryRepo) Append(_ context.Context, entry *biz.HistoryEntry) error {
	cp := *entry

	r.mu.Lock()
	defer r.mu.Unlock()

	r.entries = append(r.entries, &cp)
	if len(r.entries) > memoryRetention {
		r.entries = r.entries[len(r.entries)-memoryRetention:]
	}
	r.total++
	return nil
}

func (r *MemoryHistoryRepo) ListRecent(_ context.Context, n int) ([]*biz.HistoryEntry, error) {
	r.mu.RLock()
	out := make([]*biz.HistoryEntry, 0, len(r.entries))
	for i := len(r.entries) - 1; i >= 0; i-- {
		cp := *r.entries[i]
		out = append(out, &cp)
	}
	r.mu.RUnlock()

	// latest append first on equal timestamps
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})

	if n < 0 {
		n = 0
	}
	if len(out) > n {
		out = out[:n]
	}
	return out, nil
}

func (r *MemoryHistoryRepo) Count(context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.total, nil
}

func (r *MemoryHistoryRepo) Clear(context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n := r.total
	r.entries = nil
	r.total = 0
	return n, nil
}
