package memory

import (
	"context"
	"testing"
	"time"

	"trivia-quiz-service/internal/domain"
)

type countingStore struct {
	*LeaderboardStore
	reads int
}

func (s *countingStore) ReadTop(ctx context.Context, partition string, limit int) ([]domain.LeaderboardEntry, error) {
	s.reads++
	return s.LeaderboardStore.ReadTop(ctx, partition, limit)
}

func TestLeaderboardCacheCaches(t *testing.T) {
	ctx := context.Background()
	store := &countingStore{LeaderboardStore: NewLeaderboardStore()}
	_ = store.Write(ctx, "quiz", domain.LeaderboardEntry{Player: "alice", Score: 5})
	cache := NewLeaderboardCache(store, time.Minute)

	if _, err := cache.ReadTop(ctx, "quiz", 20); err != nil {
		t.Fatalf("read: %v", err)
	}
	if _, err := cache.ReadTop(ctx, "quiz", 20); err != nil {
		t.Fatalf("read 2: %v", err)
	}
	if store.reads != 1 {
		t.Fatalf("expected cache hit, store reads %d", store.reads)
	}
}

func TestLeaderboardCacheInvalidatesOnWrite(t *testing.T) {
	ctx := context.Background()
	store := &countingStore{LeaderboardStore: NewLeaderboardStore()}
	cache := NewLeaderboardCache(store, time.Minute)

	_ = cache.Write(ctx, "quiz", domain.LeaderboardEntry{Player: "alice", Score: 5})
	if top, _ := cache.ReadTop(ctx, "quiz", 20); len(top) != 1 {
		t.Fatalf("expected 1 entry, got %+v", top)
	}
	_ = cache.Write(ctx, "quiz", domain.LeaderboardEntry{Player: "bob", Score: 9})

	top, err := cache.ReadTop(ctx, "quiz", 20)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(top) != 2 || top[0].Player != "bob" {
		t.Fatalf("expected fresh read after write, got %+v", top)
	}
	if store.reads != 2 {
		t.Fatalf("expected 2 backend reads, got %d", store.reads)
	}
}

func TestLeaderboardCacheExpires(t *testing.T) {
	ctx := context.Background()
	store := &countingStore{LeaderboardStore: NewLeaderboardStore()}
	cache := NewLeaderboardCache(store, time.Second)
	now := time.Unix(1000, 0)
	cache.clock = func() time.Time { return now }

	_, _ = cache.ReadTop(ctx, "quiz", 20)
	now = now.Add(2 * time.Second)
	_, _ = cache.ReadTop(ctx, "quiz", 20)
	if store.reads != 2 {
		t.Fatalf("expected expired entry to reload, store reads %d", store.reads)
	}
}
