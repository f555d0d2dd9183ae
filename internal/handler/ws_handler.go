package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"cluster-dashboard-backend/internal/middleware"
	"cluster-dashboard-backend/internal/pkg/events"
	"cluster-dashboard-backend/internal/pkg/identity"
	"cluster-dashboard-backend/internal/pkg/logger"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

// EventHandler streams node events to authenticated websocket clients.
type EventHandler struct {
	hub      *events.Hub
	resolver middleware.IdentityResolver
	upgrader websocket.Upgrader
	logger   *logger.Logger
}

func NewEventHandler(hub *events.Hub, resolver middleware.IdentityResolver, allowedOrigins []string, logger *logger.Logger) *EventHandler {
	return &EventHandler{
		hub:      hub,
		resolver: resolver,
		upgrader: websocket.Upgrader{CheckOrigin: originChecker(allowedOrigins)},
		logger:   logger,
	}
}

// originChecker admits non-browser clients that send no Origin header.
func originChecker(allowed []string) func(r *http.Request) bool {
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		set[o] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		if _, ok := set["*"]; ok {
			return true
		}
		_, ok := set[origin]
		return ok
	}
}

// Stream accepts the token from the Authorization header or, for browsers
// that cannot set headers on a websocket, the "token" query parameter.
func (h *EventHandler) Stream(c *gin.Context) {
	ctx := c.Request.Context()
	id := identity.FromContext(ctx)
	if id == nil {
		if token := c.Query("token"); token != "" {
			id = h.resolver.ResolveIdentity(ctx, token)
		}
	}
	if id == nil {
		respondUnauthenticated(c)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.String("actor", id.Username), zap.Error(err))
		return
	}
	defer conn.Close()

	sub := h.hub.Subscribe()
	defer sub.Close()

	h.logger.Info("event stream opened", zap.String("actor", id.Username))
	defer h.logger.Info("event stream closed", zap.String("actor", id.Username))

	// The read loop only services control frames and notices disconnects.
	done := make(chan struct{})
	conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-sub.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// Dropped by the hub for falling behind.
				conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseTryAgainLater, "subscriber too slow"))
				return
			}
			if err := conn.WriteJSON(ev); err != nil {
				return
			}
		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
