package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"github.com/MrSnakeDoc/stash/internal/domain"
	"github.com/MrSnakeDoc/stash/internal/httpserver/deps"
	"github.com/MrSnakeDoc/stash/internal/logger"
)

const (
	watchWriteWait  = 10 * time.Second
	watchPingPeriod = 30 * time.Second
	// A slow client drops events past this backlog instead of blocking
	// the notifier.
	watchBuffer = 16
)

type watchEvent struct {
	Type   string         `json:"type"` // "config" or "deleted"
	Config *domain.Config `json:"config,omitempty"`
}

// Watch streams config change events over a websocket: the current config
// on connect, then one event per observed change. A remote document
// deletion arrives as {"type":"deleted"}.
func Watch(d deps.Deps) http.HandlerFunc {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 4096,
		CheckOrigin: func(r *http.Request) bool {
			return originAllowed(r.Header.Get("Origin"), d.AllowedOrigins)
		},
	}

	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			d.Logger.Warn("websocket upgrade failed", logger.Error(err))
			return
		}
		defer func() { _ = conn.Close() }()

		events := make(chan watchEvent, watchBuffer)
		unsubscribe := d.Controller.OnChange(func(cfg *domain.Config) {
			ev := watchEvent{Type: "config", Config: cfg}
			if cfg == nil {
				ev = watchEvent{Type: "deleted"}
			}
			select {
			case events <- ev:
			default:
				d.Logger.Warn("watch client too slow, dropping event")
			}
		})
		defer unsubscribe()

		// Initial snapshot so the client starts consistent.
		cfg, err := d.Controller.Load(r.Context())
		if err == nil {
			events <- watchEvent{Type: "config", Config: cfg}
		} else {
			d.Logger.Warn("watch initial load failed", logger.Error(err))
		}

		// Read pump: drains control frames and detects the client going
		// away.
		done := make(chan struct{})
		go func() {
			defer close(done)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		ticker := time.NewTicker(watchPingPeriod)
		defer ticker.Stop()

		for {
			select {
			case <-done:
				return
			case <-r.Context().Done():
				return
			case ev := <-events:
				_ = conn.SetWriteDeadline(time.Now().Add(watchWriteWait))
				if err := conn.WriteJSON(ev); err != nil {
					d.Logger.Debug("watch write failed", logger.Error(err))
					return
				}
			case <-ticker.C:
				_ = conn.SetWriteDeadline(time.Now().Add(watchWriteWait))
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			}
		}
	}
}

func originAllowed(origin string, allowed []string) bool {
	if origin == "" || len(allowed) == 0 {
		return true
	}
	for _, a := range allowed {
		if strings.EqualFold(a, origin) || a == "*" {
			return true
		}
	}
	return false
}
