package handlers

import (
	"encoding/json"
	"net/http"

	"bayou-chat/internal/engine/actors"
	"bayou-chat/internal/middleware"
	"bayou-chat/internal/models"
	"bayou-chat/internal/utils"
)

// SignupRequest represents a request to create a new account
type SignupRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Bio      string `json:"bio"`
}

// LoginRequest represents a request to log in
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateProfileRequest represents a request to change profile details
type UpdateProfileRequest struct {
	FullName   string `json:"fullName"`
	Bio        string `json:"bio"`
	ProfilePic string `json:"profilePic"`
}

// HandleSignup creates a new account and returns a session token.
func (s *Server) HandleSignup() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req SignupRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.respondError(w, http.StatusBadRequest, "Invalid request")
			return
		}

		// Validation failures keep the original wire behavior: 200 with
		// success:false rather than a 4xx status.
		if req.FullName == "" || req.Email == "" || req.Password == "" || req.Bio == "" {
			s.respondJSON(w, http.StatusOK, map[string]interface{}{
				"success": false,
				"message": "Missing details",
			})
			return
		}

		result, err := s.ask(s.Engine.GetUserActor(), &actors.RegisterUserMsg{
			FullName: req.FullName,
			Email:    req.Email,
			Password: req.Password,
			Bio:      req.Bio,
		})
		if err != nil {
			s.respondError(w, http.StatusInternalServerError, "Failed to register user")
			return
		}

		if appErr, ok := result.(*utils.AppError); ok {
			s.respondJSON(w, http.StatusOK, map[string]interface{}{
				"success": false,
				"message": appErr.Message,
			})
			return
		}

		user := result.(*models.User)
		token, err := middleware.GenerateToken(user.ID)
		if err != nil {
			s.respondError(w, http.StatusInternalServerError, "Failed to generate auth token")
			return
		}

		s.respondJSON(w, http.StatusOK, map[string]interface{}{
			"success":  true,
			"userData": user,
			"token":    token,
			"message":  "Account created successfully",
		})
	}
}

// HandleLogin authenticates an account and returns a session token.
func (s *Server) HandleLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req LoginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.respondError(w, http.StatusBadRequest, "Invalid request")
			return
		}

		result, err := s.ask(s.Engine.GetUserActor(), &actors.LoginMsg{
			Email:    req.Email,
			Password: req.Password,
		})
		if err != nil {
			s.respondError(w, http.StatusInternalServerError, "Failed to process login")
			return
		}

		if appErr, ok := result.(*utils.AppError); ok {
			s.respondJSON(w, http.StatusOK, map[string]interface{}{
				"success": false,
				"message": appErr.Message,
			})
			return
		}

		user := result.(*models.User)
		token, err := middleware.GenerateToken(user.ID)
		if err != nil {
			s.respondError(w, http.StatusInternalServerError, "Failed to generate auth token")
			return
		}

		s.respondJSON(w, http.StatusOK, map[string]interface{}{
			"success":  true,
			"userData": user,
			"token":    token,
			"message":  "Login successful",
		})
	}
}

// HandleCheckAuth returns the authenticated user for a valid token.
func (s *Server) HandleCheckAuth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.GetUserIDFromContext(r.Context())
		if !ok {
			s.respondError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		result, err := s.ask(s.Engine.GetUserActor(), &actors.GetUserProfileMsg{UserID: userID})
		if err != nil {
			s.respondError(w, http.StatusInternalServerError, "Failed to load user")
			return
		}

		if appErr, ok := result.(*utils.AppError); ok {
			s.respondAppError(w, appErr)
			return
		}

		s.respondJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"user":    result.(*models.User),
		})
	}
}

// HandleUpdateProfile updates the authenticated user's name, bio and
// profile image.
func (s *Server) HandleUpdateProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := middleware.GetUserIDFromContext(r.Context())
		if !ok {
			s.respondError(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		var req UpdateProfileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			s.respondError(w, http.StatusBadRequest, "Invalid request")
			return
		}

		if req.FullName == "" || req.Bio == "" {
			s.respondError(w, http.StatusBadRequest, "Full name and bio are required")
			return
		}

		result, err := s.ask(s.Engine.GetUserActor(), &actors.UpdateProfileMsg{
			UserID:     userID,
			FullName:   req.FullName,
			Bio:        req.Bio,
			ProfilePic: req.ProfilePic,
		})
		if err != nil {
			s.respondError(w, http.StatusInternalServerError, "Failed to update profile")
			return
		}

		if appErr, ok := result.(*utils.AppError); ok {
			s.respondAppError(w, appErr)
			return
		}

		s.respondJSON(w, http.StatusOK, map[string]interface{}{
			"success": true,
			"user":    result.(*models.User),
		})
	}
}
