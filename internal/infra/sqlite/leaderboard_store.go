// Package sqlite stores the leaderboard in a single local database file.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
	"trivia-quiz-service/internal/domain"
)

// LeaderboardStore is a RankedStore over SQLite, for local play without a server.
type LeaderboardStore struct {
	db    *sql.DB
	newID func() string
	now   func() time.Time
}

// Open connects to the database at path and creates the table if needed.
func Open(ctx context.Context, path string) (*LeaderboardStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// One writer at a time; also keeps ":memory:" on a single connection.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	if err := createTables(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return &LeaderboardStore{db: db, newID: uuid.NewString, now: time.Now}, nil
}

func createTables(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS leaderboard_entries (
			id         TEXT    PRIMARY KEY,
			partition  TEXT    NOT NULL,
			player     TEXT    NOT NULL,
			score      INTEGER NOT NULL,
			created_at INTEGER NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("create leaderboard table: %w", err)
	}
	_, err = db.ExecContext(ctx, `
		CREATE INDEX IF NOT EXISTS leaderboard_entries_rank_idx
			ON leaderboard_entries (partition, score DESC, created_at)
	`)
	return err
}

// Close closes the database.
func (s *LeaderboardStore) Close() error {
	return s.db.Close()
}

func (s *LeaderboardStore) Write(ctx context.Context, partition string, entry domain.LeaderboardEntry) error {
	_, err := s.db.ExecContext(ctx,
		"INSERT INTO leaderboard_entries (id, partition, player, score, created_at) VALUES (?, ?, ?, ?, ?)",
		s.newID(), partition, entry.Player, entry.Score, s.now().UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("insert entry: %w", err)
	}
	return nil
}

func (s *LeaderboardStore) ReadTop(ctx context.Context, partition string, limit int) ([]domain.LeaderboardEntry, error) {
	if limit <= 0 {
		return nil, nil
	}
	rows, err := s.db.QueryContext(ctx,
		"SELECT player, score FROM leaderboard_entries WHERE partition = ? ORDER BY score DESC, created_at ASC LIMIT ?",
		partition, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query top entries: %w", err)
	}
	defer rows.Close()

	var entries []domain.LeaderboardEntry
	for rows.Next() {
		var e domain.LeaderboardEntry
		if err := rows.Scan(&e.Player, &e.Score); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
