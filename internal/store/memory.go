package store

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/darnellt0/7-days-to-calm/pkg/models"
)

// MemoryStore implements Store with in-memory maps. Events are kept as
// an append-only log per user.
type MemoryStore struct {
	mu     sync.RWMutex
	users  map[string]*models.User
	events map[string][]models.EventRecord
}

// NewMemoryStore creates a new in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:  make(map[string]*models.User),
		events: make(map[string][]models.EventRecord),
	}
}

func defaultUser(userID string) *models.User {
	return &models.User{
		UserID:    userID,
		Prefs:     map[string]string{},
		Reminders: []models.Reminder{},
	}
}

// GetUser returns a copy of the user, provisioning on first access.
func (s *MemoryStore) GetUser(ctx context.Context, userID string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.getLocked(userID), nil
}

// getLocked returns a copy of the stored user; callers hold s.mu.
func (s *MemoryStore) getLocked(userID string) *models.User {
	user, ok := s.users[userID]
	if !ok {
		user = defaultUser(userID)
		s.users[userID] = user
	}
	copied := *user
	copied.Reminders = append([]models.Reminder{}, user.Reminders...)
	copied.Prefs = make(map[string]string, len(user.Prefs))
	for k, v := range user.Prefs {
		copied.Prefs[k] = v
	}
	return &copied
}

// SetChallengeDay moves the user to the given day.
func (s *MemoryStore) SetChallengeDay(ctx context.Context, userID string, day int) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		user = defaultUser(userID)
		s.users[userID] = user
	}
	user.Challenge.CurrentDay = day
	return s.getLocked(userID), nil
}

// AddEvent appends a named event to the user's log.
func (s *MemoryStore) AddEvent(ctx context.Context, userID string, event models.EventRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.events[userID] = append(s.events[userID], event)
	log.Info().
		Str("user_id", userID).
		Str("event", event.Name).
		Msg("Event tracked")
	return nil
}

// Events returns a copy of the user's event log.
func (s *MemoryStore) Events(userID string) []models.EventRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.EventRecord, len(s.events[userID]))
	copy(out, s.events[userID])
	return out
}

// SetReminder adds a reminder unless the same time+label already exists.
func (s *MemoryStore) SetReminder(ctx context.Context, userID string, reminder models.Reminder) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		user = defaultUser(userID)
		s.users[userID] = user
	}
	for _, r := range user.Reminders {
		if r.Time == reminder.Time && r.Label == reminder.Label {
			return nil
		}
	}
	user.Reminders = append(user.Reminders, reminder)
	return nil
}
