package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"trivia-quiz-service/internal/app"
	"trivia-quiz-service/internal/domain"
)

// maxSubmitBodyBytes caps a {player, score} submission.
const maxSubmitBodyBytes = 4 << 10

type LeaderboardHandler struct {
	service *app.LeaderboardService
}

func NewLeaderboardHandler(service *app.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{service: service}
}

type submitScoreRequest struct {
	Player string `json:"player"`
	Score  int    `json:"score"`
}

// List serves GET /api/leaderboard?limit=N.
func (h *LeaderboardHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorPayload{Message: "limit must be an integer"})
			return
		}
		limit = n
	}
	lb, err := h.service.TopEntries(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lb)
}

// Submit serves POST /api/leaderboard with a {player, score} body.
func (h *LeaderboardHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req submitScoreRequest
	body := http.MaxBytesReader(w, r.Body, maxSubmitBodyBytes)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorPayload{Message: "request body too large"})
			return
		}
		writeError(w, fmt.Errorf("%w: %v", domain.ErrInvalidSubmission, err))
		return
	}
	entry, err := h.service.Record(r.Context(), domain.LeaderboardEntry{Player: req.Player, Score: req.Score})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}
