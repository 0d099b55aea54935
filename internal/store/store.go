// Package store provides the user-state storage interface and the
// in-memory implementation.
package store

import (
	"context"

	"github.com/darnellt0/7-days-to-calm/pkg/models"
)

// Store maintains per-user challenge state for the agent tools. Handler
// code depends on this interface so a durable implementation can be
// swapped in without touching the HTTP boundary.
type Store interface {
	// GetUser returns the user, provisioning a fresh record on first
	// sight of a user ID.
	GetUser(ctx context.Context, userID string) (*models.User, error)

	// SetChallengeDay moves the user's current challenge day and
	// returns the updated user.
	SetChallengeDay(ctx context.Context, userID string, day int) (*models.User, error)

	// AddEvent records a named event against the user.
	AddEvent(ctx context.Context, userID string, event models.EventRecord) error

	// SetReminder adds a reminder; an identical time+label pair is
	// ignored.
	SetReminder(ctx context.Context, userID string, reminder models.Reminder) error
}
