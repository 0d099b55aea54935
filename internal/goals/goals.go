// Package goals records goal-completion events. The current sink is
// fire-and-forget structured logging; Sink is the seam where a durable
// store attaches later without touching the guard or HTTP boundary.
package goals

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/darnellt0/7-days-to-calm/pkg/models"
)

// Sink is an append-only writer for goal events.
type Sink interface {
	Append(ctx context.Context, event models.GoalEvent) error
}

// NewEvent builds a goal event stamped with the current UTC time.
func NewEvent(day int, completed bool) models.GoalEvent {
	return models.GoalEvent{
		ID:        uuid.New().String(),
		Day:       day,
		Completed: completed,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
}

// LogSink writes goal events to the structured log and drops them.
type LogSink struct{}

// Append logs the event. It never fails.
func (LogSink) Append(ctx context.Context, event models.GoalEvent) error {
	log.Info().
		Str("event_id", event.ID).
		Int("day", event.Day).
		Bool("completed", event.Completed).
		Str("timestamp", event.Timestamp).
		Msg("Goal logged")
	return nil
}

// MemorySink buffers goal events in memory. Used by tests and as the
// shape a durable sink will take.
type MemorySink struct {
	mu     sync.Mutex
	events []models.GoalEvent
}

// Append stores the event.
func (s *MemorySink) Append(ctx context.Context, event models.GoalEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

// Events returns a copy of everything appended so far.
func (s *MemorySink) Events() []models.GoalEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.GoalEvent, len(s.events))
	copy(out, s.events)
	return out
}
