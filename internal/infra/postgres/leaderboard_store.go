package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4/pgxpool"
	"trivia-quiz-service/internal/domain"
)

// LeaderboardStore keeps entries in the leaderboard_entries table; ranked
// reads walk the (partition, score DESC) index.
type LeaderboardStore struct {
	pool  *pgxpool.Pool
	newID func() string
}

func NewLeaderboardStore(pool *pgxpool.Pool) *LeaderboardStore {
	return &LeaderboardStore{pool: pool, newID: uuid.NewString}
}

func (s *LeaderboardStore) Write(ctx context.Context, partition string, entry domain.LeaderboardEntry) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO leaderboard_entries (id, partition, player, score) VALUES ($1, $2, $3, $4)`,
		s.newID(), partition, entry.Player, entry.Score)
	if err != nil {
		return fmt.Errorf("insert entry: %w", err)
	}
	return nil
}

// ReadTop breaks score ties by submission time, earliest first.
func (s *LeaderboardStore) ReadTop(ctx context.Context, partition string, limit int) ([]domain.LeaderboardEntry, error) {
	if limit <= 0 {
		return nil, nil
	}
	rows, err := s.pool.Query(ctx,
		`SELECT player, score FROM leaderboard_entries
		 WHERE partition = $1
		 ORDER BY score DESC, created_at ASC
		 LIMIT $2`,
		partition, limit)
	if err != nil {
		return nil, fmt.Errorf("query top entries: %w", err)
	}
	defer rows.Close()

	entries := make([]domain.LeaderboardEntry, 0, limit)
	for rows.Next() {
		var e domain.LeaderboardEntry
		if err := rows.Scan(&e.Player, &e.Score); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}
	return entries, nil
}
