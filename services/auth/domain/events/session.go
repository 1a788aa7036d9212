package events

import (
	"time"

	"github.com/google/uuid"
)

// Watermill topics for console session lifecycle events.
const (
	TopicSessionLoggedIn  = "session.logged_in"
	TopicSessionLoggedOut = "session.logged_out"
	TopicSessionExpired   = "session.expired"
)

// SessionEvent is published whenever a console session changes state.
// Consumers subscribe via EventBus.Subscribe(ctx, events.TopicSessionExpired).
type SessionEvent struct {
	EventID    uuid.UUID `json:"event_id"` // Unique publish-time identifier for deduplication
	Version    int       `json:"version"`  // Schema version; increment on breaking changes
	SessionID  string    `json:"session_id"`
	UserID     string    `json:"user_id,omitempty"`
	Email      string    `json:"email,omitempty"`
	Reason     string    `json:"reason,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewSessionEvent stamps a SessionEvent with an id and the current time.
func NewSessionEvent(sessionID, userID, email, reason string) SessionEvent {
	return SessionEvent{
		EventID:    uuid.New(),
		Version:    1,
		SessionID:  sessionID,
		UserID:     userID,
		Email:      email,
		Reason:     reason,
		OccurredAt: time.Now().UTC(),
	}
}
