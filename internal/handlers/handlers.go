package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"bayou-chat/internal/engine"
	"bayou-chat/internal/utils"
	"bayou-chat/internal/websocket"

	"github.com/asynkron/protoactor-go/actor"
)

// Server holds all server dependencies: the actor system, the domain engine,
// the websocket hub and the metrics collector.
type Server struct {
	System         *actor.ActorSystem
	Context        *actor.RootContext
	Engine         *engine.Engine
	Hub            *websocket.Hub
	Metrics        *utils.MetricsCollector
	RequestTimeout time.Duration
}

// NewServer creates a new Server instance with the given components
func NewServer(
	system *actor.ActorSystem,
	eng *engine.Engine,
	hub *websocket.Hub,
	metrics *utils.MetricsCollector,
) *Server {
	return &Server{
		System:         system,
		Context:        system.Root,
		Engine:         eng,
		Hub:            hub,
		Metrics:        metrics,
		RequestTimeout: 5 * time.Second, // Default timeout for actor requests
	}
}

// ask sends a message to an actor and waits for the response.
func (s *Server) ask(pid *actor.PID, msg interface{}) (interface{}, error) {
	future := s.Context.RequestFuture(pid, msg, s.RequestTimeout)
	return future.Result()
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// respondError writes the standard {success:false, message} envelope.
func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.Metrics.IncrementErrors()
	s.respondJSON(w, status, map[string]interface{}{
		"success": false,
		"message": message,
	})
}

// respondAppError maps an application error code to its HTTP status.
func (s *Server) respondAppError(w http.ResponseWriter, appErr *utils.AppError) {
	s.respondError(w, utils.AppErrorToHTTPStatus(appErr.Code), appErr.Message)
}

// HandleStatus reports liveness plus request counters.
func (s *Server) HandleStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snap := s.Metrics.Snapshot()
		s.respondJSON(w, http.StatusOK, map[string]interface{}{
			"success":  true,
			"status":   "live",
			"uptime":   snap.Uptime.String(),
			"requests": snap.Requests,
			"errors":   snap.Errors,
		})
	}
}
