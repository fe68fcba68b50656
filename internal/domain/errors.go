package domain

import "errors"

var (
	// ErrEmptyCategorySet is returned when a question is requested while every category is disabled.
	ErrEmptyCategorySet = errors.New("no question category enabled")
	// ErrCategoryNotFound indicates a toggle referenced an unknown category title.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrPersistenceFailure wraps any leaderboard write or read that could not complete.
	ErrPersistenceFailure = errors.New("leaderboard persistence failure")
	// ErrInvalidSubmission is returned for score submissions without a player name.
	ErrInvalidSubmission = errors.New("invalid score submission")
	// ErrSessionNotFound is returned when a play session has not been started or already ended.
	ErrSessionNotFound = errors.New("quiz session not found")
	// ErrInvalidDataset indicates the reference dataset could not be loaded.
	ErrInvalidDataset = errors.New("invalid reference dataset")
)
