// Package tools implements the agent tool handlers: validated operations
// the conversational agent (or the frontend) invokes against a user's
// challenge state.
package tools

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/darnellt0/7-days-to-calm/internal/store"
	"github.com/darnellt0/7-days-to-calm/pkg/models"
)

// ValidationError rejects a malformed tool input. The HTTP boundary maps
// it to a 400.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// SetChallengeDayInput moves a user to a challenge day.
type SetChallengeDayInput struct {
	Day int `json:"day"`
}

// TrackEventInput records a named event.
type TrackEventInput struct {
	Name    string                 `json:"name"`
	Payload map[string]interface{} `json:"payload,omitempty"`
}

// SetReminderInput registers a daily reminder.
type SetReminderInput struct {
	Time  string `json:"time"`
	Label string `json:"label"`
}

var reminderTimeRe = regexp.MustCompile(`^\d{2}:\d{2}$`)

// Service executes tool calls against the user store.
type Service struct {
	store store.Store
}

// NewService creates the tool service.
func NewService(s store.Store) *Service {
	return &Service{store: s}
}

// SetChallengeDay validates the day and updates the user.
func (s *Service) SetChallengeDay(ctx context.Context, userID string, in SetChallengeDayInput) (*models.User, error) {
	if in.Day < 1 || in.Day > 7 {
		return nil, &ValidationError{Field: "day", Reason: "must be an integer between 1 and 7"}
	}
	return s.store.SetChallengeDay(ctx, userID, in.Day)
}

// TrackEvent validates and appends a named event.
func (s *Service) TrackEvent(ctx context.Context, userID string, in TrackEventInput) error {
	if in.Name == "" {
		return &ValidationError{Field: "name", Reason: "required"}
	}
	return s.store.AddEvent(ctx, userID, models.EventRecord{
		Name:    in.Name,
		Payload: in.Payload,
		At:      time.Now().UTC(),
	})
}

// SetReminder validates the HH:MM time and registers the reminder.
func (s *Service) SetReminder(ctx context.Context, userID string, in SetReminderInput) error {
	if !reminderTimeRe.MatchString(in.Time) {
		return &ValidationError{Field: "time", Reason: "use HH:MM 24h time"}
	}
	if in.Label == "" {
		return &ValidationError{Field: "label", Reason: "required"}
	}
	return s.store.SetReminder(ctx, userID, models.Reminder{Time: in.Time, Label: in.Label})
}
