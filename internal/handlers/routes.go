package handlers

import (
	"net/http"

	"bayou-chat/internal/middleware"

	"github.com/gorilla/mux"
)

// NewRouter wires the HTTP surface. Everything except signup, login, status
// and the websocket handshake sits behind bearer-token authentication.
func NewRouter(s *Server) *mux.Router {
	r := mux.NewRouter()
	r.Use(s.metricsMiddleware)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/status", s.HandleStatus()).Methods(http.MethodGet)

	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/signup", s.HandleSignup()).Methods(http.MethodPost)
	auth.HandleFunc("/login", s.HandleLogin()).Methods(http.MethodPost)
	auth.HandleFunc("/check", middleware.RequireAuth(s.HandleCheckAuth())).Methods(http.MethodGet)
	auth.HandleFunc("/profile", middleware.RequireAuth(s.HandleUpdateProfile())).Methods(http.MethodPut)

	messages := api.PathPrefix("/messages").Subrouter()
	messages.HandleFunc("/users", middleware.RequireAuth(s.HandleGetContacts())).Methods(http.MethodGet)
	messages.HandleFunc("/send/{id}", middleware.RequireAuth(s.HandleSendMessage())).Methods(http.MethodPost)
	messages.HandleFunc("/seen/{id}", middleware.RequireAuth(s.HandleMarkSeen())).Methods(http.MethodPut)
	messages.HandleFunc("/{id}", middleware.RequireAuth(s.HandleGetThread())).Methods(http.MethodGet)
	messages.HandleFunc("/{id}", middleware.RequireAuth(s.HandleDeleteMessage())).Methods(http.MethodDelete)

	r.HandleFunc("/ws", s.HandleWebSocket())

	return r
}

func (s *Server) metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.Metrics.IncrementRequests()
		next.ServeHTTP(w, r)
	})
}
