package app

import (
	"errors"
	"log"
	"sync"
	"time"

	"trivia-quiz-service/internal/answer"
	"trivia-quiz-service/internal/domain"
	"trivia-quiz-service/internal/question"
)

// DefaultFeedbackWindow is how long the result overlay stays up.
const DefaultFeedbackWindow = 2 * time.Second

// Session is one player's quiz: the current question, the running score and
// the feedback overlay of the previous guess. The next question is generated
// as soon as a guess is scored, so feedback overlaps the new question.
type Session struct {
	id     string
	clock  Clock
	window time.Duration
	rnd    question.Rand

	mu            sync.RWMutex
	registry      question.Registry
	current       domain.Question
	score         int
	guess         string
	feedback      *domain.Feedback
	feedbackTimer Timer
	feedbackSeq   uint64
	closed        bool
	subscribers   map[chan domain.SessionView]struct{}
}

// NewSession generates the first question. It fails with
// domain.ErrEmptyCategorySet when no category is enabled.
func NewSession(id string, registry question.Registry, rnd question.Rand, window time.Duration) (*Session, error) {
	return NewSessionWithClock(id, registry, rnd, window, systemClock{})
}

// NewSessionWithClock is NewSession with an explicit clock, for tests.
func NewSessionWithClock(id string, registry question.Registry, rnd question.Rand, window time.Duration, clock Clock) (*Session, error) {
	first, err := registry.Generate(rnd)
	if err != nil {
		return nil, err
	}
	if window <= 0 {
		window = DefaultFeedbackWindow
	}
	return &Session{
		id:          id,
		clock:       clock,
		window:      window,
		rnd:         rnd,
		registry:    registry,
		current:     first,
		subscribers: make(map[chan domain.SessionView]struct{}),
	}, nil
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Score returns the running score.
func (s *Session) Score() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.score
}

// Current returns the question being presented.
func (s *Session) Current() domain.Question {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// SetGuess replaces the pending guess text.
func (s *Session) SetGuess(guess string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.guess = guess
}

// Guess sets the pending guess and submits it.
func (s *Session) Guess(guess string) domain.GuessResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.guess = guess
	return s.submitLocked()
}

// Submit scores the pending guess, shows feedback and moves to the next question.
func (s *Session) Submit() domain.GuessResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.submitLocked()
}

func (s *Session) submitLocked() domain.GuessResult {
	if s.closed {
		return domain.GuessResult{CorrectAnswer: s.current.Answer, Score: s.score}
	}
	guess := s.guess
	s.guess = ""
	canonical := s.current.Answer

	fb := domain.Feedback{ExpiresAt: s.clock.Now().Add(s.window)}
	correct := answer.Match(guess, canonical)
	if correct {
		s.score++
		fb.Outcome = domain.OutcomeSuccess
	} else {
		s.score--
		fb.Outcome = domain.OutcomeFailure
		fb.CorrectAnswer = canonical
	}
	s.feedback = &fb
	s.armFeedbackTimerLocked()

	fallback := s.advanceLocked()
	s.broadcastLocked()

	return domain.GuessResult{
		Correct:       correct,
		CorrectAnswer: canonical,
		Score:         s.score,
		Fallback:      fallback,
	}
}

// advanceLocked replaces the current question. With every category disabled
// it falls back to the registry's first category and reports true.
func (s *Session) advanceLocked() bool {
	next, err := s.registry.Generate(s.rnd)
	if err == nil {
		s.current = next
		return false
	}
	if !errors.Is(err, domain.ErrEmptyCategorySet) {
		log.Printf("session %s: generate question: %v", s.id, err)
		return false
	}
	cat, ok := s.registry.Fallback()
	if !ok {
		log.Printf("session %s: %v and no fallback category", s.id, err)
		return false
	}
	log.Printf("session %s: %v, falling back to %q", s.id, err, cat.Title)
	s.current = cat.Generate(s.rnd)
	return true
}

// armFeedbackTimerLocked keeps at most one live expiry timer.
func (s *Session) armFeedbackTimerLocked() {
	if s.feedbackTimer != nil {
		s.feedbackTimer.Stop()
	}
	s.feedbackSeq++
	seq := s.feedbackSeq
	s.feedbackTimer = s.clock.AfterFunc(s.window, func() { s.expireFeedback(seq) })
}

func (s *Session) expireFeedback(seq uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	// A newer guess re-armed the timer after this one was already firing.
	if seq != s.feedbackSeq || s.feedback == nil || s.closed {
		return
	}
	s.feedback = nil
	s.feedbackTimer = nil
	s.broadcastLocked()
}

// Dismiss hides the feedback overlay before the window elapses.
func (s *Session) Dismiss() domain.SessionView {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.feedback != nil {
		s.stopFeedbackLocked()
		s.broadcastLocked()
	}
	return s.snapshotLocked()
}

func (s *Session) stopFeedbackLocked() {
	if s.feedbackTimer != nil {
		s.feedbackTimer.Stop()
		s.feedbackTimer = nil
	}
	s.feedbackSeq++
	s.feedback = nil
}

// SetCategoryEnabled swaps in a registry with the category toggled. The
// question on screen is kept; the change applies from the next generation.
func (s *Session) SetCategoryEnabled(title string, enabled bool) (domain.SessionView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	next, err := s.registry.SetEnabled(title, enabled)
	if err != nil {
		return domain.SessionView{}, err
	}
	s.registry = next
	return s.broadcastLocked(), nil
}

// View returns a snapshot without the canonical answer.
func (s *Session) View() domain.SessionView {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Subscribe returns a channel of session snapshots, primed with the current one.
// The caller must invoke the returned cancel function to avoid leaks.
func (s *Session) Subscribe() (<-chan domain.SessionView, func()) {
	ch := make(chan domain.SessionView, 8)

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	s.subscribers[ch] = struct{}{}
	// The buffer is empty, so priming cannot block while the lock is held.
	ch <- s.snapshotLocked()
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		if _, ok := s.subscribers[ch]; ok {
			delete(s.subscribers, ch)
			close(ch)
		}
		s.mu.Unlock()
	}
	return ch, cancel
}

// Close stops the feedback timer and closes every subscription.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	if s.feedbackTimer != nil {
		s.feedbackTimer.Stop()
		s.feedbackTimer = nil
	}
	for ch := range s.subscribers {
		delete(s.subscribers, ch)
		close(ch)
	}
}

func (s *Session) broadcastLocked() domain.SessionView {
	view := s.snapshotLocked()
	for ch := range s.subscribers {
		select {
		case ch <- view:
		default:
			// Slow reader: drop its oldest snapshot, the newest one wins.
			select {
			case <-ch:
			default:
			}
			ch <- view
		}
	}
	return view
}

func (s *Session) snapshotLocked() domain.SessionView {
	view := domain.SessionView{
		SessionID:  s.id,
		Question:   s.current.View(),
		Score:      s.score,
		Guess:      s.guess,
		Categories: s.registry.States(),
	}
	if s.feedback != nil {
		fb := *s.feedback
		view.Feedback = &fb
	}
	return view
}
