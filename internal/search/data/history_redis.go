package data

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	pkgredis "github.com/lk2023060901/search-aggregator/internal/pkg/redis"
	"github.com/lk2023060901/search-aggregator/internal/search/biz"
	"github.com/redis/go-redis/v9"
)

const (
	defaultRedisKeyPrefix = "search:history"
	// redisRetention caps the stored list; the total counter keeps counting past it
	redisRetention = 1000
)

// RedisHistoryRepo 基于 Redis 列表的搜索历史仓储
type RedisHistoryRepo struct {
	rdb      redis.UniversalClient
	listKey  string
	countKey string
}

// NewRedisHistoryRepo 创建 Redis 搜索历史仓储，prefix 为空时使用默认前缀
func NewRedisHistoryRepo(client *pkgredis.Client, prefix string) biz.HistoryRepo {
	return newRedisHistoryRepo(client.Universal(), prefix)
}

func newRedisHistoryRepo(rdb redis.UniversalClient, prefix string) *RedisHistoryRepo {
	if prefix == "" {
		prefix = defaultRedisKeyPrefix
	}
	return &RedisHistoryRepo{
		rdb:      rdb,
		listKey:  prefix + ":entries",
		countKey: prefix + ":count",
	}
}

type redisHistoryItem struct {
	ID        string `json:"id"`
	Query     string `json:"query"`
	Timestamp int64  `json:"ts"` // unix nanoseconds
}

// Append 在事务内写入记录、裁剪列表并递增计数
func (r *RedisHistoryRepo) Append(ctx context.Context, entry *biz.HistoryEntry) error {
	payload, err := json.Marshal(redisHistoryItem{
		ID:        entry.ID,
		Query:     entry.Query,
		Timestamp: entry.Timestamp.UnixNano(),
	})
	if err != nil {
		return fmt.Errorf("encode history entry: %w", err)
	}

	_, err = r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, r.listKey, payload)
		pipe.LTrim(ctx, r.listKey, 0, redisRetention-1)
		pipe.Incr(ctx, r.countKey)
		return nil
	})
	return err
}

// ListRecent 返回最近 n 条（列表头部即最新）
func (r *RedisHistoryRepo) ListRecent(ctx context.Context, n int) ([]*biz.HistoryEntry, error) {
	if n <= 0 {
		return []*biz.HistoryEntry{}, nil
	}

	raw, err := r.rdb.LRange(ctx, r.listKey, 0, int64(n-1)).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]*biz.HistoryEntry, 0, len(raw))
	for _, s := range raw {
		var item redisHistoryItem
		if err := json.Unmarshal([]byte(s), &item); err != nil {
			return nil, fmt.Errorf("decode history entry: %w", err)
		}
		entries = append(entries, &biz.HistoryEntry{
			ID:        item.ID,
			Query:     item.Query,
			Timestamp: unixNanoUTC(item.Timestamp),
		})
	}
	return entries, nil
}

// Count 返回历史总数
func (r *RedisHistoryRepo) Count(ctx context.Context) (int64, error) {
	n, err := r.rdb.Get(ctx, r.countKey).Int64()
	if pkgredis.IsNil(err) {
		return 0, nil
	}
	return n, err
}

// Clear 删除列表与计数，返回清空前的总数
func (r *RedisHistoryRepo) Clear(ctx context.Context) (int64, error) {
	var count *redis.StringCmd
	_, err := r.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		count = pipe.Get(ctx, r.countKey)
		pipe.Del(ctx, r.listKey, r.countKey)
		return nil
	})
	if err != nil && !pkgredis.IsNil(err) {
		return 0, err
	}

	n, err := count.Int64()
	if pkgredis.IsNil(err) {
		return 0, nil
	}
	return n, err
}

func unixNanoUTC(ns int64) time.Time {
	return time.Unix(0, ns).UTC()
}
