package data

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/lk2023060901/search-aggregator/internal/search/biz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func appendN(t *testing.T, repo biz.HistoryRepo, n int, base time.Time) {
	t.Helper()
	for i := 0; i < n; i++ {
		err := repo.Append(context.Background(), &biz.HistoryEntry{
			ID:        fmt.Sprintf("id-%02d", i),
			Query:     fmt.Sprintf("query %02d", i),
			Timestamp: base.Add(time.Duration(i) * time.Second),
		})
		require.NoError(t, err)
	}
}

func TestMemoryHistoryRepo_Bounding(t *testing.T) {
	repo := NewMemoryHistoryRepo()
	appendN(t, repo, 15, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	entries, err := repo.ListRecent(context.Background(), biz.DefaultHistoryLimit)
	require.NoError(t, err)
	require.Len(t, entries, 10)

	for i, e := range entries {
		assert.Equal(t, fmt.Sprintf("query %02d", 14-i), e.Query)
	}

	total, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(15), total)
}

func TestMemoryHistoryRepo_RoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryHistoryRepo()

	entry := &biz.HistoryEntry{ID: "1", Query: "golang generics", Timestamp: time.Now().UTC()}
	require.NoError(t, repo.Append(ctx, entry))

	entries, err := repo.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "golang generics", entries[0].Query)

	// returned entries are copies
	entries[0].Query = "mutated"
	again, _ := repo.ListRecent(ctx, 10)
	assert.Equal(t, "golang generics", again[0].Query)

	deleted, err := repo.Clear(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	entries, err = repo.ListRecent(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, entries)

	total, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestMemoryHistoryRepo_EqualTimestamps(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryHistoryRepo()
	ts := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Append(ctx, &biz.HistoryEntry{ID: "1", Query: "first", Timestamp: ts}))
	require.NoError(t, repo.Append(ctx, &biz.HistoryEntry{ID: "2", Query: "second", Timestamp: ts}))

	entries, err := repo.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "second", entries[0].Query)
}

func TestMemoryHistoryRepo_ConcurrentAppend(t *testing.T) {
	repo := NewMemoryHistoryRepo()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = repo.Append(context.Background(), &biz.HistoryEntry{
				ID:        fmt.Sprint(i),
				Query:     fmt.Sprint("q", i),
				Timestamp: time.Now(),
			})
		}(i)
	}
	wg.Wait()

	total, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(50), total)
}

func TestMemoryHistoryRepo_Retention(t *testing.T) {
	repo := NewMemoryHistoryRepo()
	appendN(t, repo, memoryRetention+5, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))

	total, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(memoryRetention+5), total)

	all, err := repo.ListRecent(context.Background(), memoryRetention*2)
	require.NoError(t, err)
	assert.Len(t, all, memoryRetention)
}
