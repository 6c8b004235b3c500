package handlers

import (
	"encoding/json"
	"net/http"

	"bayou-chat/internal/engine/actors"
	"bayou-chat/internal/middleware"
	"bayou-chat/internal/models"
	"bayou-chat/internal/utils"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// SendMessageRequest represents the body of a send call. Both fields are
// optional; an empty message is accepted as-is.
type SendMessageRequest struct {
	Text  string `json:"text"`
	Image string `json:"image"`
}

// peerIDFromPath parses the {id} path variable.
func peerIDFromPath(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(mux.Vars(r)["id"])
}

// HandleGetContacts lists every other user plus per-peer unseen counts.
func (s *Server) HandleGetContacts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.GetUserIDFromContext(r.Context())
		if !ok {
			s.respondError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		result, err := s.ask(s.Engine.GetChatActor(), &actors.ListContactsMsg{UserID: userID})
		if err != nil {
			s.respondError(w, http.StatusInternalServerError, "Failed to list contacts")
			return
		}

		if appErr, ok := result.(*utils.AppError); ok {
			s.respondAppError(w, appErr)
			return
		}

		contacts := result.(*actors.ContactList)
		s.respondJSON(w, http.StatusOK, map[string]interface{}{
			"success":        true,
			"users":          contacts.Users,
			"unseenMessages": contacts.UnseenMessages,
		})
	}
}

// HandleGetThread returns the full conversation with a peer. Fetching the
// thread marks all of the peer's messages to the caller as seen.
func (s *Server) HandleGetThread() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.GetUserIDFromContext(r.Context())
		if !ok {
			s.respondError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		peerID, err := peerIDFromPath(r)
		if err != nil {
			s.respondError(w, http.StatusBadRequest, "Invalid user ID")
			return
		}

		result, err := s.ask(s.Engine.GetChatActor(), &actors.GetConversationMsg{
			UserID: userID,
			PeerID: peerID,
		})
		if err != nil {
			s.respondError(w, http.StatusInternalServerError, "Failed to get messages")
			return
		}

		if appErr, ok := result.(*utils.AppError); ok {
			s.respondAppError(w, appErr)
			return
		}

		s.respondJSON(w, http.StatusOK, map[string]interface{}{
			"success":  true,
			"messages": result.([]*models.Message),
		})
	}
}

// HandleSendMessage persists a message to the peer in the path and pushes it
// to the peer's live connection when one exists.
func (s *Server) HandleSendMessage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.GetUserIDFromContext(r.Context())
		if !ok {
			s.respondError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		receiverID, err := peerIDFromPath(r)
		if err != nil {
			s.respondError(w, http.StatusBadRequest, "Invalid user ID")
			return
		}

		var req SendMessageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.respondError(w, http.StatusBadRequest, "Invalid request")
			return
		}

		result, err := s.ask(s.Engine.GetChatActor(), &actors.SendMessageMsg{
			SenderID:   userID,
			ReceiverID: receiverID,
			Text:       req.Text,
			Image:      req.Image,
		})
		if err != nil {
			s.respondError(w, http.StatusInternalServerError, "Failed to send message")
			return
		}

		if appErr, ok := result.(*utils.AppError); ok {
			s.respondAppError(w, appErr)
			return
		}

		s.respondJSON(w, http.StatusOK, map[string]interface{}{
			"success":    true,
			"newMessage": result.(*models.Message),
		})
	}
}

// HandleMarkSeen idempotently marks all of the peer's messages to the caller
// as seen.
func (s *Server) HandleMarkSeen() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.GetUserIDFromContext(r.Context())
		if !ok {
			s.respondError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		peerID, err := peerIDFromPath(r)
		if err != nil {
			s.respondError(w, http.StatusBadRequest, "Invalid user ID")
			return
		}

		result, err := s.ask(s.Engine.GetChatActor(), &actors.MarkSeenMsg{
			UserID: userID,
			PeerID: peerID,
		})
		if err != nil {
			s.respondError(w, http.StatusInternalServerError, "Failed to mark messages seen")
			return
		}

		if appErr, ok := result.(*utils.AppError); ok {
			s.respondAppError(w, appErr)
			return
		}

		s.respondJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
		})
	}
}

// HandleDeleteMessage hard-deletes a message. Only the original sender may
// delete; anyone else gets 403 and the message stays intact.
func (s *Server) HandleDeleteMessage() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.GetUserIDFromContext(r.Context())
		if !ok {
			s.respondError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		messageID, err := peerIDFromPath(r)
		if err != nil {
			s.respondError(w, http.StatusBadRequest, "Invalid message ID")
			return
		}

		result, err := s.ask(s.Engine.GetChatActor(), &actors.DeleteMessageMsg{
			MessageID: messageID,
			UserID:    userID,
		})
		if err != nil {
			s.respondError(w, http.StatusInternalServerError, "Failed to delete message")
			return
		}

		if appErr, ok := result.(*utils.AppError); ok {
			s.respondAppError(w, appErr)
			return
		}

		s.respondJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"message": "Message deleted successfully",
		})
	}
}
