package domain

import "time"

// MaxLeaderboardEntries caps every leaderboard read.
const MaxLeaderboardEntries = 20

// DefaultPartition is the single logical leaderboard.
const DefaultPartition = "quiz"

// Question is produced by a category generator and never mutated afterwards.
type Question struct {
	Prompt    string
	Answer    string
	VisualCue string
	Options   []string // nil for free-text questions
}

// View strips the canonical answer so the question can be sent to a player.
func (q Question) View() QuestionView {
	return QuestionView{
		Prompt:    q.Prompt,
		VisualCue: q.VisualCue,
		Options:   append([]string(nil), q.Options...),
	}
}

// QuestionView is the player-facing part of a question.
type QuestionView struct {
	Prompt    string   `json:"prompt"`
	VisualCue string   `json:"visualCue,omitempty"`
	Options   []string `json:"options,omitempty"`
}

// Outcome is the result symbol of the last guess.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeFailure Outcome = "failure"
)

// Feedback is the transient overlay shown after a guess.
type Feedback struct {
	Outcome       Outcome   `json:"outcome"`
	CorrectAnswer string    `json:"correctAnswer,omitempty"`
	ExpiresAt     time.Time `json:"expiresAt"`
}

// Symbol returns the glyph rendered for the outcome.
func (f Feedback) Symbol() string {
	if f.Outcome == OutcomeSuccess {
		return "✅"
	}
	return "❌"
}

func (f Feedback) String() string {
	if f.Outcome == OutcomeSuccess || f.CorrectAnswer == "" {
		return f.Symbol()
	}
	return f.Symbol() + " " + f.CorrectAnswer
}

// CategoryState describes one registry entry to clients.
type CategoryState struct {
	Title   string `json:"title"`
	Enabled bool   `json:"enabled"`
}

// SessionView is a snapshot of a play session safe to publish.
type SessionView struct {
	SessionID  string          `json:"sessionId"`
	Question   QuestionView    `json:"question"`
	Score      int             `json:"score"`
	Guess      string          `json:"guess"`
	Feedback   *Feedback       `json:"feedback,omitempty"`
	Categories []CategoryState `json:"categories"`
}

// GuessResult summarizes the scoring of one submitted guess.
type GuessResult struct {
	Correct       bool   `json:"correct"`
	CorrectAnswer string `json:"correctAnswer"`
	Score         int    `json:"score"`
	Fallback      bool   `json:"fallback,omitempty"`
}

// LeaderboardEntry is one submitted (player, score) pair. Entries are append-only.
type LeaderboardEntry struct {
	Player string `json:"player"`
	Score  int    `json:"score"`
}

// Leaderboard captures the ranked entries of a partition.
type Leaderboard struct {
	Partition string             `json:"partition"`
	Entries   []LeaderboardEntry `json:"entries"`
	UpdatedAt time.Time          `json:"updatedAt"`
}
