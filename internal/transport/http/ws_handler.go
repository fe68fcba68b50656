package http

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"
	"trivia-quiz-service/internal/app"
)

// WSHandler runs one play session per websocket connection.
type WSHandler struct {
	quiz        *app.QuizService
	leaderboard *app.LeaderboardService
	upgrader    websocket.Upgrader
}

func NewWSHandler(quiz *app.QuizService, leaderboard *app.LeaderboardService) *WSHandler {
	return &WSHandler{
		quiz:        quiz,
		leaderboard: leaderboard,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type guessPayload struct {
	Guess string `json:"guess"`
}

type togglePayload struct {
	Title   string `json:"title"`
	Enabled bool   `json:"enabled"`
}

type submitScorePayload struct {
	Player string `json:"player"`
}

type limitPayload struct {
	Limit int `json:"limit"`
}

type outboundMessage[T any] struct {
	Type    string `json:"type"`
	Payload T      `json:"payload"`
}

// ServeWS upgrades the request, starts a session and serves it until the client leaves.
//
// Inbound types: input, guess, submit, toggleCategory, dismiss, submitScore, leaderboard.
// Outbound types: session, result, scoreSubmitted, leaderboard, error.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	ctx := r.Context()
	started, err := h.quiz.Start(ctx)
	if err != nil {
		_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}})
		return
	}
	sessionID := started.SessionID
	defer h.quiz.End(ctx, sessionID)

	updates, cancel, err := h.quiz.Subscribe(ctx, sessionID)
	if err != nil {
		_ = conn.WriteJSON(outboundMessage[errorPayload]{Type: "error", Payload: errorPayload{Message: err.Error()}})
		return
	}
	defer cancel()
	refresh, cancelRefresh := h.leaderboard.Subscribe()
	defer cancelRefresh()

	send := make(chan outboundMessage[any], 16)
	closeSignals := make(chan struct{})
	writerDone := make(chan struct{})
	updatesDone := make(chan struct{})

	// Single writer: gorilla connections do not support concurrent writes.
	go func() {
		defer close(writerDone)
		for msg := range send {
			if err := conn.WriteJSON(msg); err != nil {
				log.Printf("ws write error: %v", err)
				return
			}
		}
	}()

	go func() {
		defer close(updatesDone)
		for {
			var msg outboundMessage[any]
			select {
			case view, ok := <-updates:
				if !ok {
					return
				}
				msg = outboundMessage[any]{Type: "session", Payload: view}
			case _, ok := <-refresh:
				if !ok {
					return
				}
				msg = h.leaderboardMessage(r, 0)
			case <-closeSignals:
				return
			}
			select {
			case send <- msg:
			case <-closeSignals:
				return
			}
		}
	}()

	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			break
		}
		if reply, ok := h.handle(r, sessionID, inbound); ok {
			send <- reply
		}
	}

	close(closeSignals)
	<-updatesDone
	close(send)
	<-writerDone
}

func (h *WSHandler) handle(r *http.Request, sessionID string, inbound inboundMessage) (outboundMessage[any], bool) {
	ctx := r.Context()
	switch inbound.Type {
	case "input":
		var payload guessPayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			return errorMessage("invalid input payload"), true
		}
		if err := h.quiz.Input(ctx, sessionID, payload.Guess); err != nil {
			return errorMessage(err.Error()), true
		}
		return outboundMessage[any]{}, false
	case "guess":
		var payload guessPayload
		if len(inbound.Payload) > 0 {
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				return errorMessage("invalid guess payload"), true
			}
		}
		res, err := h.quiz.Guess(ctx, sessionID, payload.Guess)
		if err != nil {
			return errorMessage(err.Error()), true
		}
		return outboundMessage[any]{Type: "result", Payload: res}, true
	case "submit":
		res, err := h.quiz.Submit(ctx, sessionID)
		if err != nil {
			return errorMessage(err.Error()), true
		}
		return outboundMessage[any]{Type: "result", Payload: res}, true
	case "toggleCategory":
		var payload togglePayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			return errorMessage("invalid toggle payload"), true
		}
		// The updated snapshot reaches the client through the subscription.
		if _, err := h.quiz.ToggleCategory(ctx, sessionID, payload.Title, payload.Enabled); err != nil {
			return errorMessage(err.Error()), true
		}
		return outboundMessage[any]{}, false
	case "dismiss":
		if _, err := h.quiz.Dismiss(ctx, sessionID); err != nil {
			return errorMessage(err.Error()), true
		}
		return outboundMessage[any]{}, false
	case "submitScore":
		var payload submitScorePayload
		if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
			return errorMessage("invalid score payload"), true
		}
		entry, err := h.quiz.SubmitScore(ctx, sessionID, payload.Player)
		if err != nil {
			log.Printf("submit score: %v", err)
			return errorMessage(err.Error()), true
		}
		return outboundMessage[any]{Type: "scoreSubmitted", Payload: entry}, true
	case "leaderboard":
		var payload limitPayload
		if len(inbound.Payload) > 0 {
			if err := json.Unmarshal(inbound.Payload, &payload); err != nil {
				return errorMessage("invalid leaderboard payload"), true
			}
		}
		return h.leaderboardMessage(r, payload.Limit), true
	default:
		return errorMessage("unsupported message type"), true
	}
}

func (h *WSHandler) leaderboardMessage(r *http.Request, limit int) outboundMessage[any] {
	lb, err := h.leaderboard.TopEntries(r.Context(), limit)
	if err != nil {
		log.Printf("read leaderboard: %v", err)
		return errorMessage(err.Error())
	}
	return outboundMessage[any]{Type: "leaderboard", Payload: lb}
}

func errorMessage(msg string) outboundMessage[any] {
	return outboundMessage[any]{Type: "error", Payload: errorPayload{Message: msg}}
}
