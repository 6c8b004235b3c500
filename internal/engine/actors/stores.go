package actors

import (
	"context"

	"bayou-chat/internal/models"

	"github.com/google/uuid"
)

// UserStore is the persistence surface the user actor needs. *database.MongoDB
// satisfies it; tests use in-memory fakes.
type UserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateUserProfile(ctx context.Context, userID uuid.UUID, fullName, bio, profilePic string) (*models.User, error)
	ListUsersExcept(ctx context.Context, userID uuid.UUID) ([]*models.User, error)
}

// MessageStore is the persistence surface the chat actor needs.
type MessageStore interface {
	InsertMessage(ctx context.Context, message *models.Message) error
	GetConversation(ctx context.Context, userID, peerID uuid.UUID) ([]*models.Message, error)
	MarkConversationSeen(ctx context.Context, senderID, receiverID uuid.UUID) (int64, error)
	CountUnseenBySender(ctx context.Context, receiverID uuid.UUID) (map[string]int, error)
	GetMessage(ctx context.Context, messageID uuid.UUID) (*models.Message, error)
	DeleteMessage(ctx context.Context, messageID uuid.UUID) error
}

// Notifier is the live-delivery surface: push a payload to a user's active
// connection if one exists. The websocket hub satisfies it.
type Notifier interface {
	SendToUser(userID uuid.UUID, payload []byte) bool
}
