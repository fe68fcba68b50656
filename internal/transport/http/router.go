package http

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"trivia-quiz-service/internal/app"
	"trivia-quiz-service/internal/domain"
)

// NewRouter wires health, leaderboard and play endpoints.
func NewRouter(quiz *app.QuizService, leaderboard *app.LeaderboardService, allowedOrigins []string) http.Handler {
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:*"}
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	lb := NewLeaderboardHandler(leaderboard)
	r.Get("/api/leaderboard", lb.List)
	r.Post("/api/leaderboard", lb.Submit)

	ws := NewWSHandler(quiz, leaderboard)
	r.Get("/ws", ws.ServeWS)
	return r
}

type errorPayload struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrInvalidSubmission):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrSessionNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrPersistenceFailure):
		status = http.StatusServiceUnavailable
		log.Printf("leaderboard backend: %v", err)
	}
	writeJSON(w, status, errorPayload{Message: err.Error()})
}
