package cli

import (
	"context"
	"path/filepath"
	"testing"

	"trivia-quiz-service/internal/config"
	"trivia-quiz-service/internal/domain"
	"trivia-quiz-service/internal/infra/memory"
	"trivia-quiz-service/internal/infra/sqlite"
)

func TestLoadConfigFallsBackToDefaults(t *testing.T) {
	cfg, err := loadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Leaderboard.Partition != domain.DefaultPartition {
		t.Fatalf("expected default partition, got %q", cfg.Leaderboard.Partition)
	}
}

func TestOpenRankedStoreSelection(t *testing.T) {
	ctx := context.Background()

	cfg := config.Default()
	store, closeStore, err := openRankedStore(ctx, cfg, nil)
	if err != nil {
		t.Fatalf("open memory store: %v", err)
	}
	closeStore()
	if _, ok := store.(*memory.LeaderboardStore); !ok {
		t.Fatalf("expected memory store, got %T", store)
	}

	cfg.SQLite.Path = filepath.Join(t.TempDir(), "nested", "leaderboard.db")
	store, closeStore, err = openRankedStore(ctx, cfg, nil)
	if err != nil {
		t.Fatalf("open sqlite store: %v", err)
	}
	defer closeStore()
	if _, ok := store.(*sqlite.LeaderboardStore); !ok {
		t.Fatalf("expected sqlite store, got %T", store)
	}
	if err := store.Write(ctx, "quiz", domain.LeaderboardEntry{Player: "alice", Score: 3}); err != nil {
		t.Fatalf("write: %v", err)
	}
}

func TestLoadCountriesFromFile(t *testing.T) {
	if _, err := loadCountries(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatalf("expected error for missing dataset file")
	}
	countries, err := loadCountries("")
	if err != nil || len(countries) == 0 {
		t.Fatalf("expected embedded dataset, got %d countries err=%v", len(countries), err)
	}
}
