// Package handlers implements the HTTP handlers for the voice broker:
// signed-URL issuance, goal logging, closing messages, session routing,
// and the agent tool endpoints.
package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/darnellt0/7-days-to-calm/internal/agent"
	"github.com/darnellt0/7-days-to-calm/internal/api/middleware"
	"github.com/darnellt0/7-days-to-calm/internal/auth"
	"github.com/darnellt0/7-days-to-calm/internal/catalog"
	"github.com/darnellt0/7-days-to-calm/internal/config"
	"github.com/darnellt0/7-days-to-calm/internal/goals"
	"github.com/darnellt0/7-days-to-calm/internal/issuer"
	"github.com/darnellt0/7-days-to-calm/internal/session"
	"github.com/darnellt0/7-days-to-calm/internal/store"
	"github.com/darnellt0/7-days-to-calm/internal/tools"
	"github.com/darnellt0/7-days-to-calm/pkg/models"
)

// Handlers holds all handler dependencies.
type Handlers struct {
	Config   *config.Config
	Resolver *agent.Resolver
	Issuer   issuer.Issuer
	Guard    *auth.Guard
	Sink     goals.Sink
	Store    store.Store
	Tools    *tools.Service
}

// New creates a Handlers instance with all dependencies.
func New(cfg *config.Config, resolver *agent.Resolver, iss issuer.Issuer, guard *auth.Guard, sink goals.Sink, st store.Store) *Handlers {
	return &Handlers{
		Config:   cfg,
		Resolver: resolver,
		Issuer:   iss,
		Guard:    guard,
		Sink:     sink,
		Store:    st,
		Tools:    tools.NewService(st),
	}
}

// ── Health ──────────────────────────────────────────────────

// Health reports whether mandatory configuration is present without
// revealing secret values. It never fails; an unhealthy-but-responsive
// broker is the intended signal.
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":             "healthy",
		"timestamp":          time.Now().UTC().Format(time.RFC3339),
		"agent_configured":   h.Resolver.AgentConfigured(),
		"api_key_configured": h.Config.APIKey != "",
		"agent_in_use":       h.Resolver.AgentInUse(),
		"missing_env":        h.Config.MissingEnv(),
	})
}

// ── Signed URL ──────────────────────────────────────────────

// GetSignedURL returns a signed URL for the conversation widget,
// carrying the challenge-day context for the agent.
func (h *Handlers) GetSignedURL(w http.ResponseWriter, r *http.Request) {
	day := queryInt(r, "challenge_day", 1)

	signed, err := h.Issuer.Issue(r.Context(), day)
	if err != nil {
		log.Error().Err(err).Int("challenge_day", day).Msg("Failed to generate signed URL")
		respondError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to generate signed URL: %v", err))
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"signed_url":    signed.URL,
		"challenge_day": signed.ChallengeDay,
	})
}

// ── Goal logging ────────────────────────────────────────────

// LogGoal records a day-completion event after the guard authorizes the
// bearer credential. The event also lands in the user's event log.
func (h *Handlers) LogGoal(w http.ResponseWriter, r *http.Request) {
	if err := h.Guard.Authorize(r.Header.Get("Authorization")); err != nil {
		respondError(w, http.StatusUnauthorized, "Invalid token")
		return
	}

	day := queryInt(r, "day", 0)
	completed := queryBool(r, "completed", true)

	event := goals.NewEvent(day, completed)
	if err := h.Sink.Append(r.Context(), event); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	userID := middleware.GetUserID(r.Context())
	if err := h.Store.AddEvent(r.Context(), userID, models.EventRecord{
		Name:    "goal_logged",
		Payload: map[string]interface{}{"day": day, "completed": completed},
		At:      time.Now().UTC(),
	}); err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("Failed to track goal event against user")
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": fmt.Sprintf("Day %d logged", day),
		"data":    event,
	})
}

// ── Closing message ─────────────────────────────────────────

// ClosingMessage returns the day's closing line. Audio synthesis is not
// implemented; the field is reserved for the TTS collaborator.
func (h *Handlers) ClosingMessage(w http.ResponseWriter, r *http.Request) {
	day := queryInt(r, "day", 0)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success":   true,
		"day":       day,
		"message":   catalog.MessageFor(day),
		"audio_url": nil,
	})
}

// ── Session routing ─────────────────────────────────────────

// GetRoute decides which session script to run.
func (h *Handlers) GetRoute(w http.ResponseWriter, r *http.Request) {
	utterance := r.URL.Query().Get("utterance")
	day := queryInt(r, "challenge_day", 0)
	respondJSON(w, http.StatusOK, session.DecideRoute(utterance, day))
}

// ── Agent tools ─────────────────────────────────────────────

func (h *Handlers) SetChallengeDay(w http.ResponseWriter, r *http.Request) {
	var in tools.SetChallengeDayInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondToolError(w, errors.New("invalid request body"))
		return
	}

	user, err := h.Tools.SetChallengeDay(r.Context(), middleware.GetUserID(r.Context()), in)
	if err != nil {
		respondToolError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"ok": true, "user": user})
}

func (h *Handlers) TrackEvent(w http.ResponseWriter, r *http.Request) {
	var in tools.TrackEventInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondToolError(w, errors.New("invalid request body"))
		return
	}

	if err := h.Tools.TrackEvent(r.Context(), middleware.GetUserID(r.Context()), in); err != nil {
		respondToolError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"ok": true})
}

func (h *Handlers) SetReminder(w http.ResponseWriter, r *http.Request) {
	var in tools.SetReminderInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondToolError(w, errors.New("invalid request body"))
		return
	}

	if err := h.Tools.SetReminder(r.Context(), middleware.GetUserID(r.Context()), in); err != nil {
		respondToolError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"ok": true})
}

// GetUser returns the user's challenge state snapshot.
func (h *Handlers) GetUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.Store.GetUser(r.Context(), middleware.GetUserID(r.Context()))
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// ── Helpers ─────────────────────────────────────────────────

func queryInt(r *http.Request, key string, fallback int) int {
	if v := r.URL.Query().Get(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func queryBool(r *http.Request, key string, fallback bool) bool {
	if v := r.URL.Query().Get(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondToolError maps tool failures to the stub contract: 400 with
// {ok: false, error}.
func respondToolError(w http.ResponseWriter, err error) {
	respondJSON(w, http.StatusBadRequest, map[string]interface{}{
		"ok":    false,
		"error": err.Error(),
	})
}
