package models

import (
	"time"

	"github.com/google/uuid"
)

// Message is a single direct message between two users. Text and Image are
// both optional; the seen flag only ever transitions false -> true.
type Message struct {
	ID         uuid.UUID `json:"_id"`
	SenderID   uuid.UUID `json:"senderId"`
	ReceiverID uuid.UUID `json:"receiverId"`
	Text       string    `json:"text,omitempty"`
	Image      string    `json:"image,omitempty"`
	Seen       bool      `json:"seen"`
	CreatedAt  time.Time `json:"createdAt"`
}
