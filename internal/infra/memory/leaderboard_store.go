package memory

import (
	"context"
	"sort"
	"sync"

	"trivia-quiz-service/internal/domain"
)

// LeaderboardStore is an in-process ranked store. Entries live until restart.
type LeaderboardStore struct {
	mu         sync.RWMutex
	partitions map[string][]domain.LeaderboardEntry
}

func NewLeaderboardStore() *LeaderboardStore {
	return &LeaderboardStore{partitions: make(map[string][]domain.LeaderboardEntry)}
}

func (s *LeaderboardStore) Write(_ context.Context, partition string, entry domain.LeaderboardEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.partitions[partition] = append(s.partitions[partition], entry)
	return nil
}

// ReadTop orders by score descending; ties keep submission order.
func (s *LeaderboardStore) ReadTop(_ context.Context, partition string, limit int) ([]domain.LeaderboardEntry, error) {
	s.mu.RLock()
	entries := append([]domain.LeaderboardEntry(nil), s.partitions[partition]...)
	s.mu.RUnlock()

	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Score > entries[j].Score })
	if limit >= 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}
