// Package subscribers consumes console session lifecycle events.
package subscribers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/venue-master/admin-console/pkg/events"
	"github.com/venue-master/admin-console/pkg/logger"
	authevents "github.com/venue-master/admin-console/services/auth/domain/events"
)

// Forgetter drops the in-memory state of a console session.
type Forgetter interface {
	Forget(id string)
}

// Register subscribes the session event handlers on bus. Subscriber errors are
// drained to log until the subscriptions end.
func Register(ctx context.Context, bus *events.EventBus, sessions Forgetter, log logger.Logger) error {
	handlers := map[string]events.Handler{
		authevents.TopicSessionLoggedIn:  handleLoggedIn(log),
		authevents.TopicSessionLoggedOut: handleSessionEnded(sessions, log),
		authevents.TopicSessionExpired:   handleSessionEnded(sessions, log),
	}
	topics := make([]string, 0, len(handlers))
	for topic, h := range handlers {
		errCh, err := bus.Subscribe(ctx, topic, h)
		if err != nil {
			return fmt.Errorf("subscribe %s: %w", topic, err)
		}
		go func(topic string) {
			for err := range errCh {
				log.ErrorContext(ctx, "subscriber error", "topic", topic, "error", err)
			}
		}(topic)
		topics = append(topics, topic)
	}
	log.Info("event subscribers registered", "topics", topics)
	return nil
}

func decode(msg *message.Message) (authevents.SessionEvent, error) {
	var evt authevents.SessionEvent
	if err := json.Unmarshal(msg.Payload, &evt); err != nil {
		return evt, fmt.Errorf("decode session event %s: %w", msg.UUID, err)
	}
	return evt, nil
}

func handleLoggedIn(log logger.Logger) events.Handler {
	return func(ctx context.Context, msg *message.Message) error {
		evt, err := decode(msg)
		if err != nil {
			return err
		}
		log.InfoContext(ctx, "operator signed in",
			"session_id", evt.SessionID, "user_id", evt.UserID, "reason", evt.Reason)
		return nil
	}
}

// handleSessionEnded evicts the in-memory session so the next request starts
// from the (now empty) token store. Eviction is idempotent.
func handleSessionEnded(sessions Forgetter, log logger.Logger) events.Handler {
	return func(ctx context.Context, msg *message.Message) error {
		evt, err := decode(msg)
		if err != nil {
			return err
		}
		if evt.SessionID != "" {
			sessions.Forget(evt.SessionID)
		}
		log.InfoContext(ctx, "operator session ended",
			"session_id", evt.SessionID, "user_id", evt.UserID, "reason", evt.Reason)
		return nil
	}
}
