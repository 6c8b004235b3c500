package actors

import (
	"log"
	"time"

	stdctx "context"

	"bayou-chat/internal/models"
	"bayou-chat/internal/storage"
	"bayou-chat/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Message types for UserActor
type (
	RegisterUserMsg struct {
		FullName string
		Email    string
		Password string
		Bio      string
	}

	LoginMsg struct {
		Email    string
		Password string
	}

	GetUserProfileMsg struct {
		UserID uuid.UUID
	}

	UpdateProfileMsg struct {
		UserID     uuid.UUID
		FullName   string
		Bio        string
		ProfilePic string
	}
)

// UserActor owns account operations: registration, credential checks and
// profile updates. All state lives in the user store; the actor serializes
// access to it per mailbox semantics.
type UserActor struct {
	users    UserStore
	uploader storage.Uploader
}

func NewUserActor(users UserStore, uploader storage.Uploader) *UserActor {
	return &UserActor{
		users:    users,
		uploader: uploader,
	}
}

func hashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	return string(bytes), err
}

func (a *UserActor) Receive(context actor.Context) {
	switch msg := context.Message().(type) {
	case *RegisterUserMsg:
		a.handleRegister(context, msg)
	case *LoginMsg:
		a.handleLogin(context, msg)
	case *GetUserProfileMsg:
		a.handleGetProfile(context, msg)
	case *UpdateProfileMsg:
		a.handleUpdateProfile(context, msg)
	}
}

func (a *UserActor) handleRegister(context actor.Context, msg *RegisterUserMsg) {
	ctx := stdctx.Background()

	// Check if the email is already taken before inserting; the unique index
	// backstops races.
	existingUser, _ := a.users.GetUserByEmail(ctx, msg.Email)
	if existingUser != nil {
		log.Printf("Registration rejected, email already exists: %s", msg.Email)
		context.Respond(utils.NewAppError(utils.ErrUserAlreadyExists, "Account already exists", nil))
		return
	}

	hashed, err := hashPassword(msg.Password)
	if err != nil {
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to hash password", err))
		return
	}

	user := &models.User{
		ID:             uuid.New(),
		FullName:       msg.FullName,
		Email:          msg.Email,
		HashedPassword: hashed,
		Bio:            msg.Bio,
		CreatedAt:      time.Now(),
	}

	if err := a.users.CreateUser(ctx, user); err != nil {
		if appErr, ok := err.(*utils.AppError); ok {
			context.Respond(appErr)
			return
		}
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to create user", err))
		return
	}

	log.Printf("Registered user %s (%s)", user.ID, user.Email)
	context.Respond(user)
}

func (a *UserActor) handleLogin(context actor.Context, msg *LoginMsg) {
	ctx := stdctx.Background()

	user, err := a.users.GetUserByEmail(ctx, msg.Email)
	if err != nil || user == nil {
		context.Respond(utils.NewAppError(utils.ErrInvalidCredentials, "Invalid credentials", nil))
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(msg.Password)); err != nil {
		context.Respond(utils.NewAppError(utils.ErrInvalidCredentials, "Invalid credentials", nil))
		return
	}

	log.Printf("User %s logged in", user.ID)
	context.Respond(user)
}

func (a *UserActor) handleGetProfile(context actor.Context, msg *GetUserProfileMsg) {
	ctx := stdctx.Background()

	user, err := a.users.GetUserByID(ctx, msg.UserID)
	if err != nil {
		if appErr, ok := err.(*utils.AppError); ok {
			context.Respond(appErr)
			return
		}
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to load user", err))
		return
	}

	context.Respond(user)
}

func (a *UserActor) handleUpdateProfile(context actor.Context, msg *UpdateProfileMsg) {
	ctx := stdctx.Background()

	profilePic := msg.ProfilePic
	if a.uploader != nil && profilePic != "" {
		if data, contentType, ok := storage.DecodeDataURL(profilePic); ok {
			url, err := a.uploader.Upload(ctx, data, contentType)
			if err != nil {
				context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to upload profile image", err))
				return
			}
			profilePic = url
		}
	}

	user, err := a.users.UpdateUserProfile(ctx, msg.UserID, msg.FullName, msg.Bio, profilePic)
	if err != nil {
		if appErr, ok := err.(*utils.AppError); ok {
			context.Respond(appErr)
			return
		}
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to update profile", err))
		return
	}

	context.Respond(user)
}
