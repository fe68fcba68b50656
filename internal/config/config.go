package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
	"trivia-quiz-service/internal/domain"
)

type Config struct {
	Server struct {
		Port           string   `yaml:"port"`
		AllowedOrigins []string `yaml:"allowedOrigins"`
	} `yaml:"server"`
	Redis struct {
		Addr     string `yaml:"addr"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
		TTL      string `yaml:"ttl"`
	} `yaml:"redis"`
	Postgres struct {
		URL string `yaml:"url"`
	} `yaml:"postgres"`
	SQLite struct {
		Path string `yaml:"path"`
	} `yaml:"sqlite"`
	Leaderboard struct {
		Partition string `yaml:"partition"`
		Limit     int    `yaml:"limit"`
		CacheTTL  string `yaml:"cacheTTL"`
	} `yaml:"leaderboard"`
	Quiz struct {
		FeedbackWindow string `yaml:"feedbackWindow"`
		OptionCount    int    `yaml:"optionCount"`
		Seed           int64  `yaml:"seed"`
		DatasetPath    string `yaml:"datasetPath"`
	} `yaml:"quiz"`
}

// Load reads YAML config from path and fills in defaults.
func Load(path string) (Config, error) {
	cfg := Config{}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	cfg.applyDefaults()
	return cfg, nil
}

// Default returns the configuration used when no file is present.
func Default() Config {
	cfg := Config{}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.Leaderboard.Partition == "" {
		c.Leaderboard.Partition = domain.DefaultPartition
	}
	if c.Leaderboard.Limit <= 0 || c.Leaderboard.Limit > domain.MaxLeaderboardEntries {
		c.Leaderboard.Limit = domain.MaxLeaderboardEntries
	}
	if c.Quiz.OptionCount <= 0 {
		c.Quiz.OptionCount = 4
	}
}

// TTLDuration parses a duration string or returns the fallback if empty.
func TTLDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	return fallback
}
