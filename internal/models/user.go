package models

import (
	"time"

	"github.com/google/uuid"
)

// User is an account that can exchange direct messages. The hashed password
// is never serialized.
type User struct {
	ID             uuid.UUID `json:"_id"`
	FullName       string    `json:"fullName"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"`
	Bio            string    `json:"bio"`
	ProfilePic     string    `json:"profilePic,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}
