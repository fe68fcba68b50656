package app

import (
	"context"
	"time"

	"github.com/google/uuid"

	"trivia-quiz-service/internal/domain"
	"trivia-quiz-service/internal/question"
)

// SessionRepository abstracts where live play sessions are kept (in-memory, Redis, etc).
type SessionRepository interface {
	Save(session *Session)
	Get(sessionID string) (*Session, bool)
	Delete(sessionID string)
}

// SessionConfig tunes sessions created by QuizService.
type SessionConfig struct {
	FeedbackWindow time.Duration
	// Seed makes question order reproducible; 0 seeds every session from the clock.
	Seed  int64
	Clock Clock
}

// QuizService contains the play use cases.
type QuizService struct {
	sessions    SessionRepository
	registry    question.Registry
	leaderboard *LeaderboardService
	cfg         SessionConfig
	newID       func() string
}

func NewQuizService(sessions SessionRepository, registry question.Registry, leaderboard *LeaderboardService, cfg SessionConfig) *QuizService {
	if cfg.Clock == nil {
		cfg.Clock = systemClock{}
	}
	return &QuizService{
		sessions:    sessions,
		registry:    registry,
		leaderboard: leaderboard,
		cfg:         cfg,
		newID:       uuid.NewString,
	}
}

// Start creates a session with the default categories and its first question.
func (s *QuizService) Start(_ context.Context) (domain.SessionView, error) {
	session, err := NewSessionWithClock(s.newID(), s.registry, question.NewRand(s.cfg.Seed), s.cfg.FeedbackWindow, s.cfg.Clock)
	if err != nil {
		return domain.SessionView{}, err
	}
	s.sessions.Save(session)
	return session.View(), nil
}

// Input updates the pending guess text.
func (s *QuizService) Input(_ context.Context, sessionID, guess string) error {
	session, err := s.session(sessionID)
	if err != nil {
		return err
	}
	session.SetGuess(guess)
	return nil
}

// Guess scores guess against the current question and advances.
func (s *QuizService) Guess(_ context.Context, sessionID, guess string) (domain.GuessResult, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return domain.GuessResult{}, err
	}
	return session.Guess(guess), nil
}

// Submit scores the pending guess set through Input.
func (s *QuizService) Submit(_ context.Context, sessionID string) (domain.GuessResult, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return domain.GuessResult{}, err
	}
	return session.Submit(), nil
}

// ToggleCategory enables or disables a category for the next questions.
func (s *QuizService) ToggleCategory(_ context.Context, sessionID, title string, enabled bool) (domain.SessionView, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return domain.SessionView{}, err
	}
	return session.SetCategoryEnabled(title, enabled)
}

// Dismiss hides the feedback overlay early.
func (s *QuizService) Dismiss(_ context.Context, sessionID string) (domain.SessionView, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return domain.SessionView{}, err
	}
	return session.Dismiss(), nil
}

// View returns the session snapshot.
func (s *QuizService) View(_ context.Context, sessionID string) (domain.SessionView, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return domain.SessionView{}, err
	}
	return session.View(), nil
}

// Subscribe returns a channel that receives session snapshots, including
// feedback expiry. The caller must invoke the returned cancel function.
func (s *QuizService) Subscribe(_ context.Context, sessionID string) (<-chan domain.SessionView, func(), error) {
	session, err := s.session(sessionID)
	if err != nil {
		return nil, nil, err
	}
	ch, cancel := session.Subscribe()
	return ch, cancel, nil
}

// SubmitScore records the session's current score under player.
func (s *QuizService) SubmitScore(ctx context.Context, sessionID, player string) (domain.LeaderboardEntry, error) {
	session, err := s.session(sessionID)
	if err != nil {
		return domain.LeaderboardEntry{}, err
	}
	return s.leaderboard.Record(ctx, domain.LeaderboardEntry{Player: player, Score: session.Score()})
}

// End closes the session and forgets it.
func (s *QuizService) End(_ context.Context, sessionID string) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return
	}
	session.Close()
	s.sessions.Delete(sessionID)
}

func (s *QuizService) session(sessionID string) (*Session, error) {
	session, ok := s.sessions.Get(sessionID)
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return session, nil
}
