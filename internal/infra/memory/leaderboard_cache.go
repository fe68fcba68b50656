package memory

import (
	"context"
	"math/rand"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
	"trivia-quiz-service/internal/app"
	"trivia-quiz-service/internal/domain"
)

// LeaderboardCache caches top-N reads with TTL to avoid repeated backend hits.
// A successful write through the cache drops every cached read of its
// partition, so the next read reflects the new entry.
type LeaderboardCache struct {
	store app.RankedStore
	ttl   time.Duration
	clock func() time.Time
	sf    singleflight.Group
	rndMu sync.Mutex
	rnd   *rand.Rand

	mu    sync.RWMutex
	cache map[string]cachedTop
	// generation is bumped per partition on write so in-flight loads started
	// before the write are not stored.
	generation map[string]uint64
}

type cachedTop struct {
	entries   []domain.LeaderboardEntry
	expiresAt time.Time
}

func NewLeaderboardCache(store app.RankedStore, ttl time.Duration) *LeaderboardCache {
	return &LeaderboardCache{
		store:      store,
		ttl:        ttl,
		clock:      time.Now,
		rnd:        rand.New(rand.NewSource(time.Now().UnixNano())),
		cache:      make(map[string]cachedTop),
		generation: make(map[string]uint64),
	}
}

func (c *LeaderboardCache) Write(ctx context.Context, partition string, entry domain.LeaderboardEntry) error {
	if err := c.store.Write(ctx, partition, entry); err != nil {
		return err
	}
	c.Invalidate(partition)
	return nil
}

// Invalidate drops cached reads of partition.
func (c *LeaderboardCache) Invalidate(partition string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation[partition]++
	prefix := partition + "|"
	for key := range c.cache {
		if len(key) > len(prefix) && key[:len(prefix)] == prefix {
			delete(c.cache, key)
		}
	}
}

func (c *LeaderboardCache) ReadTop(ctx context.Context, partition string, limit int) ([]domain.LeaderboardEntry, error) {
	key := partition + "|" + strconv.Itoa(limit)
	now := c.clock()

	if entries, ok := c.lookup(key, now); ok {
		return entries, nil
	}

	result, err, _ := c.sf.Do(key, func() (interface{}, error) {
		now := c.clock()
		if entries, ok := c.lookup(key, now); ok {
			return entries, nil
		}

		c.mu.RLock()
		gen := c.generation[partition]
		c.mu.RUnlock()

		entries, err := c.store.ReadTop(ctx, partition, limit)
		if err != nil {
			return nil, err
		}

		expiresAt := now.Add(c.ttlWithJitter())
		c.mu.Lock()
		if c.ttl > 0 && c.generation[partition] == gen {
			c.cache[key] = cachedTop{entries: entries, expiresAt: expiresAt}
		}
		c.mu.Unlock()
		return entries, nil
	})
	if err != nil {
		return nil, err
	}
	return copyEntries(result.([]domain.LeaderboardEntry)), nil
}

func (c *LeaderboardCache) lookup(key string, now time.Time) ([]domain.LeaderboardEntry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if entry, ok := c.cache[key]; ok && entry.expiresAt.After(now) {
		return copyEntries(entry.entries), true
	}
	return nil, false
}

func copyEntries(entries []domain.LeaderboardEntry) []domain.LeaderboardEntry {
	return append([]domain.LeaderboardEntry(nil), entries...)
}

func (c *LeaderboardCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	// add up to 10% jitter to spread expirations
	jitterMax := int64(c.ttl) / 10
	c.rndMu.Lock()
	defer c.rndMu.Unlock()
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
