package remote

import (
	"context"
	"strconv"
	"sync"

	"github.com/MrSnakeDoc/stash/internal/logger"
	"github.com/MrSnakeDoc/stash/internal/utils"

	"github.com/MrSnakeDoc/stash/internal/domain"
)

// ChangeHandler receives remote config changes. The three signals are
// distinguishable: (cfg, nil) is an update, (nil, nil) means the document
// was deleted, and (nil, err) means the subscription transport failed and
// the remote state is unknown; callers must not treat that as a deletion.
type ChangeHandler func(cfg *domain.Config, err error)

// Subscribe delivers every remote config change for the user until the
// returned unsubscribe function is called. Updates whose timestamp is not
// yet resolved are skipped, not forwarded.
func (s *Store) Subscribe(userID string, handler ChangeHandler) func() {
	pubsub := s.client.Subscribe(context.Background(), EventsChannel(userID))

	var once sync.Once
	done := make(chan struct{})
	unsubscribe := func() {
		once.Do(func() {
			close(done)
			utils.Close(pubsub)
		})
	}

	go func() {
		ch := pubsub.Channel()
		for {
			select {
			case <-done:
				return
			case msg, ok := <-ch:
				if !ok {
					select {
					case <-done:
						// Channel closed by our own unsubscribe.
					default:
						s.logger.Warn("config subscription closed unexpectedly",
							logger.String("user_id", userID))
						handler(nil, classify(errSubscriptionClosed, "subscription lost"))
					}
					return
				}
				s.dispatch(userID, msg.Payload, handler)
			}
		}
	}()

	s.logger.Debug("subscribed to config changes", logger.String("user_id", userID))
	return unsubscribe
}

func (s *Store) dispatch(userID, payload string, handler ChangeHandler) {
	if payload == tombstone {
		s.logger.Info("remote config deleted", logger.String("user_id", userID))
		handler(nil, nil)
		return
	}

	if ts, err := strconv.ParseInt(payload, 10, 64); err != nil || ts == 0 {
		// Unresolved or malformed timestamp: wait for the next event.
		s.logger.Debug("skipping config event with unresolved timestamp",
			logger.String("user_id", userID))
		return
	}

	cfg, err := s.LoadUserConfig(context.Background(), userID)
	if err != nil {
		handler(nil, err)
		return
	}
	if cfg == nil {
		// Document vanished between the event and the read.
		handler(nil, nil)
		return
	}
	handler(cfg, nil)
}
