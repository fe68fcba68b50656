package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"trivia-quiz-service/internal/domain"
)

// LeaderboardStore keeps each partition in a sorted set scored by the entry score:
//
//	ZADD leaderboard:{partition} {score} {"id":...,"player":...}
//
// Every member carries a fresh ID, so repeated submissions by one player are
// stored as separate entries instead of overwriting each other.
type LeaderboardStore struct {
	client *redis.Client
	newID  func() string
}

type member struct {
	ID     string `json:"id"`
	Player string `json:"player"`
}

func NewLeaderboardStore(client *redis.Client) *LeaderboardStore {
	return &LeaderboardStore{client: client, newID: uuid.NewString}
}

func (s *LeaderboardStore) Write(ctx context.Context, partition string, entry domain.LeaderboardEntry) error {
	raw, err := json.Marshal(member{ID: s.newID(), Player: entry.Player})
	if err != nil {
		return fmt.Errorf("encode member: %w", err)
	}
	return s.client.ZAdd(ctx, s.key(partition), redis.Z{
		Score:  float64(entry.Score),
		Member: string(raw),
	}).Err()
}

func (s *LeaderboardStore) ReadTop(ctx context.Context, partition string, limit int) ([]domain.LeaderboardEntry, error) {
	if limit <= 0 {
		return nil, nil
	}
	zs, err := s.client.ZRevRangeWithScores(ctx, s.key(partition), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}
	entries := make([]domain.LeaderboardEntry, 0, len(zs))
	for _, z := range zs {
		raw, ok := z.Member.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected member type %T", z.Member)
		}
		var m member
		if err := json.Unmarshal([]byte(raw), &m); err != nil {
			return nil, fmt.Errorf("decode member: %w", err)
		}
		entries = append(entries, domain.LeaderboardEntry{Player: m.Player, Score: int(z.Score)})
	}
	return entries, nil
}

func (s *LeaderboardStore) key(partition string) string {
	return "leaderboard:" + partition
}
