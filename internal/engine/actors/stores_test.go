package actors

import (
	"context"
	"sync"

	"bayou-chat/internal/models"
	"bayou-chat/internal/utils"

	"github.com/google/uuid"
)

// In-memory store fakes so actor tests run without MongoDB.

type memUserStore struct {
	mu    sync.Mutex
	users map[uuid.UUID]*models.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{users: make(map[uuid.UUID]*models.User)}
}

func (s *memUserStore) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.users {
		if existing.Email == user.Email {
			return utils.NewAppError(utils.ErrUserAlreadyExists, "Account already exists", nil)
		}
	}

	clone := *user
	s.users[user.ID] = &clone
	return nil
}

func (s *memUserStore) GetUserByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return nil, utils.NewAppError(utils.ErrUserNotFound, "User not found", nil)
	}
	clone := *user
	return &clone, nil
}

func (s *memUserStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, user := range s.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, utils.NewAppError(utils.ErrUserNotFound, "User not found", nil)
}

func (s *memUserStore) UpdateUserProfile(_ context.Context, userID uuid.UUID, fullName, bio, profilePic string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[userID]
	if !ok {
		return nil, utils.NewAppError(utils.ErrUserNotFound, "User not found", nil)
	}

	user.FullName = fullName
	user.Bio = bio
	if profilePic != "" {
		user.ProfilePic = profilePic
	}

	clone := *user
	return &clone, nil
}

func (s *memUserStore) ListUsersExcept(_ context.Context, userID uuid.UUID) ([]*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := []*models.User{}
	for _, user := range s.users {
		if user.ID == userID {
			continue
		}
		clone := *user
		users = append(users, &clone)
	}
	return users, nil
}

type memMessageStore struct {
	mu       sync.Mutex
	messages []*models.Message
}

func newMemMessageStore() *memMessageStore {
	return &memMessageStore{}
}

func (s *memMessageStore) InsertMessage(_ context.Context, message *models.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	clone := *message
	s.messages = append(s.messages, &clone)
	return nil
}

func (s *memMessageStore) GetConversation(_ context.Context, userID, peerID uuid.UUID) ([]*models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := []*models.Message{}
	for _, m := range s.messages {
		if (m.SenderID == userID && m.ReceiverID == peerID) ||
			(m.SenderID == peerID && m.ReceiverID == userID) {
			clone := *m
			result = append(result, &clone)
		}
	}
	return result, nil
}

func (s *memMessageStore) MarkConversationSeen(_ context.Context, senderID, receiverID uuid.UUID) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var updated int64
	for _, m := range s.messages {
		if m.SenderID == senderID && m.ReceiverID == receiverID && !m.Seen {
			m.Seen = true
			updated++
		}
	}
	return updated, nil
}

func (s *memMessageStore) CountUnseenBySender(_ context.Context, receiverID uuid.UUID) (map[string]int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	counts := map[string]int{}
	for _, m := range s.messages {
		if m.ReceiverID == receiverID && !m.Seen {
			counts[m.SenderID.String()]++
		}
	}
	return counts, nil
}

func (s *memMessageStore) GetMessage(_ context.Context, messageID uuid.UUID) (*models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, m := range s.messages {
		if m.ID == messageID {
			clone := *m
			return &clone, nil
		}
	}
	return nil, utils.NewAppError(utils.ErrMessageNotFound, "Message not found", nil)
}

func (s *memMessageStore) DeleteMessage(_ context.Context, messageID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, m := range s.messages {
		if m.ID == messageID {
			s.messages = append(s.messages[:i], s.messages[i+1:]...)
			return nil
		}
	}
	return utils.NewAppError(utils.ErrMessageNotFound, "Message not found", nil)
}

// recordingNotifier captures fan-out pushes. Only users marked online
// receive anything, mirroring the hub's behavior for absent receivers.
type recordingNotifier struct {
	mu     sync.Mutex
	online map[uuid.UUID]bool
	sent   map[uuid.UUID][][]byte
}

func newRecordingNotifier(online ...uuid.UUID) *recordingNotifier {
	n := &recordingNotifier{
		online: make(map[uuid.UUID]bool),
		sent:   make(map[uuid.UUID][][]byte),
	}
	for _, id := range online {
		n.online[id] = true
	}
	return n
}

func (n *recordingNotifier) SendToUser(userID uuid.UUID, payload []byte) bool {
	n.mu.Lock()
	defer n.mu.Unlock()

	if !n.online[userID] {
		return false
	}
	n.sent[userID] = append(n.sent[userID], payload)
	return true
}

func (n *recordingNotifier) sentTo(userID uuid.UUID) [][]byte {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.sent[userID]
}
