package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadAppliesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := `
server:
  port: "9090"
redis:
  addr: localhost:6379
leaderboard:
  limit: 50
quiz:
  feedbackWindow: 3s
`
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Port != "9090" || cfg.Redis.Addr != "localhost:6379" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.Leaderboard.Partition != "quiz" || cfg.Leaderboard.Limit != 20 {
		t.Fatalf("expected leaderboard defaults, got %+v", cfg.Leaderboard)
	}
	if cfg.Quiz.OptionCount != 4 {
		t.Fatalf("expected 4 options, got %d", cfg.Quiz.OptionCount)
	}
	if d := TTLDuration(cfg.Quiz.FeedbackWindow, time.Second); d != 3*time.Second {
		t.Fatalf("expected 3s window, got %v", d)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestTTLDuration(t *testing.T) {
	tests := []struct {
		raw  string
		want time.Duration
	}{
		{"", 2 * time.Second},
		{"bogus", 2 * time.Second},
		{"500ms", 500 * time.Millisecond},
	}
	for _, tt := range tests {
		if got := TTLDuration(tt.raw, 2*time.Second); got != tt.want {
			t.Fatalf("TTLDuration(%q) = %v, want %v", tt.raw, got, tt.want)
		}
	}
}
