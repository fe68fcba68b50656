package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"trivia-quiz-service/internal/app"
	"trivia-quiz-service/internal/config"
	"trivia-quiz-service/internal/dataset"
	"trivia-quiz-service/internal/infra/memory"
	"trivia-quiz-service/internal/infra/postgres"
	infraredis "trivia-quiz-service/internal/infra/redis"
	"trivia-quiz-service/internal/infra/sqlite"
	"trivia-quiz-service/internal/question"
	transport "trivia-quiz-service/internal/transport/http"
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the quiz server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	countries, err := loadCountries(cfg.Quiz.DatasetPath)
	if err != nil {
		return err
	}
	registry := question.Defaults(countries, cfg.Quiz.OptionCount)

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()
	}

	store, closeStore, err := openRankedStore(ctx, cfg, redisClient)
	if err != nil {
		return err
	}
	defer closeStore()

	cached := memory.NewLeaderboardCache(store, config.TTLDuration(cfg.Leaderboard.CacheTTL, 5*time.Second))
	leaderboard := app.NewLeaderboardService(cached, cfg.Leaderboard.Partition, cfg.Leaderboard.Limit)

	var sessions app.SessionRepository
	if redisClient != nil {
		sessions = infraredis.NewSessionStore(redisClient, config.TTLDuration(cfg.Redis.TTL, 30*time.Minute))
	} else {
		sessions = memory.NewSessionStore()
	}
	quiz := app.NewQuizService(sessions, registry, leaderboard, app.SessionConfig{
		FeedbackWindow: config.TTLDuration(cfg.Quiz.FeedbackWindow, app.DefaultFeedbackWindow),
		Seed:           cfg.Quiz.Seed,
	})

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	server := &http.Server{
		Addr:        ":" + finalPort,
		Handler:     transport.NewRouter(quiz, leaderboard, cfg.Server.AllowedOrigins),
		ReadTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting trivia quiz service on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// loadConfig falls back to defaults when the file does not exist.
func loadConfig(path string) (config.Config, error) {
	cfg, err := config.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.Printf("config %s not found, using defaults", path)
		return config.Default(), nil
	}
	return cfg, err
}

func loadCountries(path string) (dataset.Countries, error) {
	if path == "" {
		return dataset.Load()
	}
	countries, err := dataset.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("load dataset %s: %w", path, err)
	}
	log.Printf("loaded %d countries from %s", len(countries), path)
	return countries, nil
}

// openRankedStore picks the leaderboard backend: redis, then postgres, then
// sqlite, then process memory.
func openRankedStore(ctx context.Context, cfg config.Config, redisClient *redis.Client) (app.RankedStore, func(), error) {
	noop := func() {}
	switch {
	case redisClient != nil:
		log.Printf("leaderboard backend: redis %s", cfg.Redis.Addr)
		return infraredis.NewLeaderboardStore(redisClient), noop, nil
	case cfg.Postgres.URL != "":
		if err := runMigrations(ctx, cfg.Postgres.URL); err != nil {
			return nil, nil, err
		}
		pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, nil, err
		}
		log.Printf("leaderboard backend: postgres")
		return postgres.NewLeaderboardStore(pool), pool.Close, nil
	case cfg.SQLite.Path != "":
		if dir := filepath.Dir(cfg.SQLite.Path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, nil, err
			}
		}
		store, err := sqlite.Open(ctx, cfg.SQLite.Path)
		if err != nil {
			return nil, nil, err
		}
		log.Printf("leaderboard backend: sqlite %s", cfg.SQLite.Path)
		return store, func() { _ = store.Close() }, nil
	default:
		log.Printf("leaderboard backend: memory")
		return memory.NewLeaderboardStore(), noop, nil
	}
}
