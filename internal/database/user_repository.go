// internal/database/user_repository.go
package database

import (
	"context"
	"fmt"
	"time"

	"bayou-chat/internal/models"
	"bayou-chat/internal/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserDocument represents the MongoDB schema for a user
type UserDocument struct {
	ID             string    `bson:"_id"`            // MongoDB primary key
	FullName       string    `bson:"fullName"`       // Display name
	Email          string    `bson:"email"`          // Email address, unique
	HashedPassword string    `bson:"hashedPassword"` // Hashed password
	Bio            string    `bson:"bio"`            // Profile biography
	ProfilePic     string    `bson:"profilePic"`     // Profile image reference
	CreatedAt      time.Time `bson:"createdAt"`      // Account creation timestamp
}

func userDocumentToModel(doc *UserDocument) (*models.User, error) {
	userID, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid user ID in database: %v", err)
	}

	return &models.User{
		ID:             userID,
		FullName:       doc.FullName,
		Email:          doc.Email,
		HashedPassword: doc.HashedPassword,
		Bio:            doc.Bio,
		ProfilePic:     doc.ProfilePic,
		CreatedAt:      doc.CreatedAt,
	}, nil
}

// CreateUser inserts a new user. A duplicate email is reported as a
// USER_ALREADY_EXISTS application error.
func (m *MongoDB) CreateUser(ctx context.Context, user *models.User) error {
	doc := UserDocument{
		ID:             user.ID.String(),
		FullName:       user.FullName,
		Email:          user.Email,
		HashedPassword: user.HashedPassword,
		Bio:            user.Bio,
		ProfilePic:     user.ProfilePic,
		CreatedAt:      user.CreatedAt,
	}

	_, err := m.Users.InsertOne(ctx, doc)
	if mongo.IsDuplicateKeyError(err) {
		return utils.NewAppError(utils.ErrUserAlreadyExists, "Account already exists", err)
	}
	return err
}

// GetUserByID retrieves a user from MongoDB by their ID
func (m *MongoDB) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var doc UserDocument

	err := m.Users.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NewAppError(utils.ErrUserNotFound, "User not found", err)
	}
	if err != nil {
		return nil, err
	}

	return userDocumentToModel(&doc)
}

// GetUserByEmail retrieves a user from MongoDB by their email address
func (m *MongoDB) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var doc UserDocument

	err := m.Users.FindOne(ctx, bson.M{"email": email}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NewAppError(utils.ErrUserNotFound, "User not found", err)
	}
	if err != nil {
		return nil, err
	}

	return userDocumentToModel(&doc)
}

// UpdateUserProfile updates name, bio and (when non-empty) the profile image
// reference, returning the updated user.
func (m *MongoDB) UpdateUserProfile(ctx context.Context, userID uuid.UUID, fullName, bio, profilePic string) (*models.User, error) {
	set := bson.M{
		"fullName": fullName,
		"bio":      bio,
	}
	if profilePic != "" {
		set["profilePic"] = profilePic
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc UserDocument
	err := m.Users.FindOneAndUpdate(ctx, bson.M{"_id": userID.String()}, bson.M{"$set": set}, opts).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NewAppError(utils.ErrUserNotFound, "User not found", err)
	}
	if err != nil {
		return nil, err
	}

	return userDocumentToModel(&doc)
}

// ListUsersExcept returns every user except the given one, for the
// conversation sidebar.
func (m *MongoDB) ListUsersExcept(ctx context.Context, userID uuid.UUID) ([]*models.User, error) {
	cursor, err := m.Users.Find(ctx, bson.M{"_id": bson.M{"$ne": userID.String()}})
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %v", err)
	}
	defer cursor.Close(ctx)

	users := []*models.User{}
	for cursor.Next(ctx) {
		var doc UserDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode user: %v", err)
		}

		user, err := userDocumentToModel(&doc)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	return users, cursor.Err()
}
