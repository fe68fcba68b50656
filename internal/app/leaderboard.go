package app

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"trivia-quiz-service/internal/domain"
)

// RankedStore is the external ranked key-value boundary: append writes and
// descending-score range reads under a partition key.
type RankedStore interface {
	Write(ctx context.Context, partition string, entry domain.LeaderboardEntry) error
	ReadTop(ctx context.Context, partition string, limit int) ([]domain.LeaderboardEntry, error)
}

// LeaderboardService validates submissions and serves the top entries of one partition.
type LeaderboardService struct {
	store     RankedStore
	partition string
	limit     int
	now       func() time.Time

	mu          sync.Mutex
	subscribers map[chan struct{}]struct{}
}

// NewLeaderboardService binds a store to a partition. limit is clamped to
// 1..domain.MaxLeaderboardEntries.
func NewLeaderboardService(store RankedStore, partition string, limit int) *LeaderboardService {
	if partition == "" {
		partition = domain.DefaultPartition
	}
	if limit <= 0 || limit > domain.MaxLeaderboardEntries {
		limit = domain.MaxLeaderboardEntries
	}
	return &LeaderboardService{
		store:       store,
		partition:   partition,
		limit:       limit,
		now:         time.Now,
		subscribers: make(map[chan struct{}]struct{}),
	}
}

// Record appends a new entry. Repeated submissions by one player are kept as
// separate entries.
func (l *LeaderboardService) Record(ctx context.Context, entry domain.LeaderboardEntry) (domain.LeaderboardEntry, error) {
	entry.Player = strings.TrimSpace(entry.Player)
	if entry.Player == "" {
		return domain.LeaderboardEntry{}, fmt.Errorf("%w: player name is required", domain.ErrInvalidSubmission)
	}
	if err := l.store.Write(ctx, l.partition, entry); err != nil {
		return domain.LeaderboardEntry{}, fmt.Errorf("%w: record entry: %w", domain.ErrPersistenceFailure, err)
	}
	l.notify()
	return entry, nil
}

// TopEntries returns at most limit entries by descending score. A limit
// outside 1..the configured cap falls back to the cap.
func (l *LeaderboardService) TopEntries(ctx context.Context, limit int) (domain.Leaderboard, error) {
	if limit <= 0 || limit > l.limit {
		limit = l.limit
	}
	entries, err := l.store.ReadTop(ctx, l.partition, limit)
	if err != nil {
		return domain.Leaderboard{}, fmt.Errorf("%w: read top entries: %w", domain.ErrPersistenceFailure, err)
	}

	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Score > entries[j].Score })
	if len(entries) > limit {
		entries = entries[:limit]
	}
	if entries == nil {
		entries = []domain.LeaderboardEntry{}
	}
	return domain.Leaderboard{
		Partition: l.partition,
		Entries:   entries,
		UpdatedAt: l.now(),
	}, nil
}

// Subscribe returns a channel signaled after every successful write, so views
// can refresh. The caller must invoke cancel.
func (l *LeaderboardService) Subscribe() (<-chan struct{}, func()) {
	ch := make(chan struct{}, 1)
	l.mu.Lock()
	l.subscribers[ch] = struct{}{}
	l.mu.Unlock()

	cancel := func() {
		l.mu.Lock()
		if _, ok := l.subscribers[ch]; ok {
			delete(l.subscribers, ch)
			close(ch)
		}
		l.mu.Unlock()
	}
	return ch, cancel
}

func (l *LeaderboardService) notify() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for ch := range l.subscribers {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
}
