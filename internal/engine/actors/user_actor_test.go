package actors

import (
	"context"
	"testing"
	"time"

	"bayou-chat/internal/models"
	"bayou-chat/internal/utils"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func spawnUserActor(t *testing.T, store UserStore) (*actor.ActorSystem, *actor.PID) {
	t.Helper()

	system := actor.NewActorSystem()
	props := actor.PropsFromProducer(func() actor.Actor {
		return NewUserActor(store, nil)
	})
	return system, system.Root.Spawn(props)
}

func TestUserRegistrationAndLogin(t *testing.T) {
	system, pid := spawnUserActor(t, newMemUserStore())

	// Step 1: Register a new user
	regFuture := system.Root.RequestFuture(pid, &RegisterUserMsg{
		FullName: "Gator Gal",
		Email:    "gator@example.com",
		Password: "password123",
		Bio:      "likes swamps",
	}, 5*time.Second)

	regResult, err := regFuture.Result()
	require.NoError(t, err)

	user, ok := regResult.(*models.User)
	require.True(t, ok, "expected a user, got %T", regResult)
	assert.Equal(t, "Gator Gal", user.FullName)
	assert.Equal(t, "gator@example.com", user.Email)
	assert.NotEqual(t, "password123", user.HashedPassword)
	assert.False(t, user.CreatedAt.IsZero())

	// Step 2: Log in with the right password
	loginFuture := system.Root.RequestFuture(pid, &LoginMsg{
		Email:    "gator@example.com",
		Password: "password123",
	}, 5*time.Second)

	loginResult, err := loginFuture.Result()
	require.NoError(t, err)

	loggedIn, ok := loginResult.(*models.User)
	require.True(t, ok, "expected a user, got %T", loginResult)
	assert.Equal(t, user.ID, loggedIn.ID)

	// Step 3: Log in with the wrong password
	badFuture := system.Root.RequestFuture(pid, &LoginMsg{
		Email:    "gator@example.com",
		Password: "wrongpassword",
	}, 5*time.Second)

	badResult, err := badFuture.Result()
	require.NoError(t, err)

	appErr, ok := badResult.(*utils.AppError)
	require.True(t, ok, "expected an error, got %T", badResult)
	assert.Equal(t, utils.ErrInvalidCredentials, appErr.Code)
}

func TestDuplicateEmailRegistration(t *testing.T) {
	store := newMemUserStore()
	system, pid := spawnUserActor(t, store)

	first := system.Root.RequestFuture(pid, &RegisterUserMsg{
		FullName: "First",
		Email:    "dup@example.com",
		Password: "secret",
		Bio:      "here first",
	}, 5*time.Second)
	result, err := first.Result()
	require.NoError(t, err)
	_, ok := result.(*models.User)
	require.True(t, ok)

	second := system.Root.RequestFuture(pid, &RegisterUserMsg{
		FullName: "Second",
		Email:    "dup@example.com",
		Password: "secret",
		Bio:      "too late",
	}, 5*time.Second)
	result, err = second.Result()
	require.NoError(t, err)

	appErr, ok := result.(*utils.AppError)
	require.True(t, ok, "expected an error, got %T", result)
	assert.Equal(t, utils.ErrUserAlreadyExists, appErr.Code)
	assert.Contains(t, appErr.Message, "already exists")

	// No second record was created
	users, err := store.ListUsersExcept(context.Background(), uuid.Nil)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestLoginUnknownEmail(t *testing.T) {
	system, pid := spawnUserActor(t, newMemUserStore())

	future := system.Root.RequestFuture(pid, &LoginMsg{
		Email:    "nobody@example.com",
		Password: "whatever",
	}, 5*time.Second)

	result, err := future.Result()
	require.NoError(t, err)

	appErr, ok := result.(*utils.AppError)
	require.True(t, ok)
	assert.Equal(t, utils.ErrInvalidCredentials, appErr.Code)
}

func TestUpdateProfile(t *testing.T) {
	store := newMemUserStore()
	system, pid := spawnUserActor(t, store)

	regFuture := system.Root.RequestFuture(pid, &RegisterUserMsg{
		FullName: "Before",
		Email:    "profile@example.com",
		Password: "secret",
		Bio:      "old bio",
	}, 5*time.Second)
	regResult, err := regFuture.Result()
	require.NoError(t, err)
	user := regResult.(*models.User)

	updateFuture := system.Root.RequestFuture(pid, &UpdateProfileMsg{
		UserID:     user.ID,
		FullName:   "After",
		Bio:        "new bio",
		ProfilePic: "https://example.com/pic.png",
	}, 5*time.Second)
	updateResult, err := updateFuture.Result()
	require.NoError(t, err)

	updated, ok := updateResult.(*models.User)
	require.True(t, ok, "expected a user, got %T", updateResult)
	assert.Equal(t, "After", updated.FullName)
	assert.Equal(t, "new bio", updated.Bio)
	assert.Equal(t, "https://example.com/pic.png", updated.ProfilePic)

	// Fetching the profile reflects the update
	getFuture := system.Root.RequestFuture(pid, &GetUserProfileMsg{UserID: user.ID}, 5*time.Second)
	getResult, err := getFuture.Result()
	require.NoError(t, err)
	fetched := getResult.(*models.User)
	assert.Equal(t, "After", fetched.FullName)
}
