package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/repoviz/repoviz/internal/watch"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(_ *http.Request) bool {
		return true
	},
}

// handleRealtime serves GET /api/realtime: upgrades to a WebSocket and
// forwards repository change events until either side disconnects. Each
// connection runs its own watcher.
func (s *Server) handleRealtime(c *gin.Context) {
	repoPath := s.resolveRepoPath(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.ErrorContext(c.Request.Context(), "websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	watcher, err := watch.New(repoPath, s.logger)
	if err != nil {
		s.logger.ErrorContext(c.Request.Context(), "failed to watch repository",
			"repo", repoPath, "error", err)
		_ = conn.WriteJSON(gin.H{
			"type":    "error",
			"message": "failed to watch repository: " + err.Error(),
		})

		return
	}
	defer watcher.Close()

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	go watcher.Run(ctx)

	err = conn.WriteJSON(gin.H{
		"type":    "connected",
		"message": "real-time updates enabled",
	})
	if err != nil {
		return
	}

	s.logger.InfoContext(ctx, "realtime connection opened", "repo", repoPath)

	// Drain client frames so we notice the peer closing.
	go func() {
		defer cancel()

		for {
			if _, _, readErr := conn.ReadMessage(); readErr != nil {
				return
			}
		}
	}()

	// Run closes the event channel when ctx is cancelled.
	for event := range watcher.Events() {
		if writeErr := conn.WriteJSON(event); writeErr != nil {
			s.logger.DebugContext(ctx, "realtime write failed", "error", writeErr)
			return
		}
	}
}
