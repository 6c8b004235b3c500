package handlers

import (
	"log"
	"net/http"

	"bayou-chat/internal/websocket"

	"github.com/google/uuid"
	ws "github.com/gorilla/websocket"
)

var upgrader = ws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Origin filtering happens at the CORS layer in front of the router.
		return true
	},
}

// HandleWebSocket upgrades the connection and registers it in the presence
// directory. The client identifies itself with a userId handshake parameter.
func (s *Server) HandleWebSocket() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userIDStr := r.URL.Query().Get("userId")
		if userIDStr == "" {
			s.respondError(w, http.StatusBadRequest, "userId query parameter required")
			return
		}

		userID, err := uuid.Parse(userIDStr)
		if err != nil {
			s.respondError(w, http.StatusBadRequest, "Invalid userId")
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			// Upgrade has already written its own error response.
			log.Printf("WebSocket upgrade failed for user %s: %v", userID, err)
			return
		}

		client := &websocket.Client{
			Hub:    s.Hub,
			UserID: userID,
			Conn:   conn,
			Send:   make(chan []byte, 256),
		}
		s.Hub.Register(client)

		go client.WritePump()
		go client.ReadPump()
	}
}
