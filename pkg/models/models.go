// Package models defines the shared domain types for the 7 Days to Calm
// voice broker: the agent identity used to talk to the upstream
// conversational-voice provider, the signed connection URLs handed to the
// browser, and the per-user challenge state maintained by the tool
// endpoints.
package models

import "time"

// ── Agent identity ──────────────────────────────────────────

// AgentIdentity is the provider-side identity used to mint signed URLs.
// Resolved fresh for every issuance call; never persisted.
type AgentIdentity struct {
	AgentID string `json:"agent_id"`
	APIKey  string `json:"-"`
}

// ── Signed URLs ─────────────────────────────────────────────

// IssuancePath records which upstream capability produced a signed URL.
type IssuancePath string

const (
	// PathPrimary is the agent-scoped capability that accepts
	// structured context in the request body.
	PathPrimary IssuancePath = "primary"
	// PathFallback is the identity-scoped capability used when the
	// primary call fails; day context is appended to the URL instead.
	PathFallback IssuancePath = "fallback"
)

// SignedURL is the result of a successful issuance. URL is never empty.
type SignedURL struct {
	URL          string       `json:"signed_url"`
	ChallengeDay int          `json:"challenge_day"`
	Path         IssuancePath `json:"-"`
}

// ── Goal logging ────────────────────────────────────────────

// GoalEvent records that a day's exercise was completed. Timestamps are
// RFC 3339 UTC strings so the payload round-trips unchanged through the
// frontend and the agent tool callback.
type GoalEvent struct {
	ID        string `json:"id,omitempty"`
	Day       int    `json:"day"`
	Completed bool   `json:"completed"`
	Timestamp string `json:"timestamp"`
}

// ── Users ───────────────────────────────────────────────────

// ChallengeState tracks a user's progress through the seven-day program.
type ChallengeState struct {
	CurrentDay       int `json:"current_day"`
	LastCompletedDay int `json:"last_completed_day"`
}

// Reminder is a daily reminder the agent can set for a user.
type Reminder struct {
	Time  string `json:"time"` // HH:MM, 24h
	Label string `json:"label"`
}

// EventRecord is an arbitrary named event tracked against a user.
type EventRecord struct {
	Name    string                 `json:"name"`
	Payload map[string]interface{} `json:"payload,omitempty"`
	At      time.Time              `json:"at"`
}

// User is the per-user state maintained by the tool endpoints.
type User struct {
	UserID    string            `json:"userId"`
	Challenge ChallengeState    `json:"challenge"`
	Prefs     map[string]string `json:"prefs"`
	Reminders []Reminder        `json:"reminders"`
}

// ── Session routing ─────────────────────────────────────────

// Route is a session routing decision: which script the voice agent
// should run for a given utterance or challenge day.
type Route struct {
	ID            string `json:"id"`
	IsChallenge   bool   `json:"isChallenge"`
	ReminderLabel string `json:"reminderLabel"`
}
