package actors

import (
	"log"
	"time"

	stdctx "context"

	"bayou-chat/internal/models"
	"bayou-chat/internal/storage"
	"bayou-chat/internal/utils"
	ws "bayou-chat/internal/websocket"

	"github.com/asynkron/protoactor-go/actor"
	"github.com/google/uuid"
)

// Message types for ChatActor
type (
	// ListContactsMsg asks for every other user plus per-peer unseen counts.
	ListContactsMsg struct {
		UserID uuid.UUID
	}

	// GetConversationMsg fetches the thread with a peer. Reading the thread
	// marks all peer->user messages seen as a side effect.
	GetConversationMsg struct {
		UserID uuid.UUID
		PeerID uuid.UUID
	}

	SendMessageMsg struct {
		SenderID   uuid.UUID
		ReceiverID uuid.UUID
		Text       string
		Image      string
	}

	MarkSeenMsg struct {
		UserID uuid.UUID
		PeerID uuid.UUID
	}

	DeleteMessageMsg struct {
		MessageID uuid.UUID
		UserID    uuid.UUID // the user requesting the delete
	}
)

// ContactList is the response to ListContactsMsg. Unseen counts are keyed by
// the sending peer's ID string.
type ContactList struct {
	Users          []*models.User `json:"users"`
	UnseenMessages map[string]int `json:"unseenMessages"`
}

// ChatActor owns messaging operations: contact listing, thread fetches, sends
// with live fan-out, seen updates and sender-only deletes.
type ChatActor struct {
	users    UserStore
	messages MessageStore
	notifier Notifier
	uploader storage.Uploader
}

func NewChatActor(users UserStore, messages MessageStore, notifier Notifier, uploader storage.Uploader) *ChatActor {
	return &ChatActor{
		users:    users,
		messages: messages,
		notifier: notifier,
		uploader: uploader,
	}
}

func (a *ChatActor) Receive(context actor.Context) {
	switch msg := context.Message().(type) {
	case *ListContactsMsg:
		a.handleListContacts(context, msg)
	case *GetConversationMsg:
		a.handleGetConversation(context, msg)
	case *SendMessageMsg:
		a.handleSendMessage(context, msg)
	case *MarkSeenMsg:
		a.handleMarkSeen(context, msg)
	case *DeleteMessageMsg:
		a.handleDeleteMessage(context, msg)
	}
}

func (a *ChatActor) handleListContacts(context actor.Context, msg *ListContactsMsg) {
	ctx := stdctx.Background()

	users, err := a.users.ListUsersExcept(ctx, msg.UserID)
	if err != nil {
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to list users", err))
		return
	}

	counts, err := a.messages.CountUnseenBySender(ctx, msg.UserID)
	if err != nil {
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to count unseen messages", err))
		return
	}

	context.Respond(&ContactList{
		Users:          users,
		UnseenMessages: counts,
	})
}

func (a *ChatActor) handleGetConversation(context actor.Context, msg *GetConversationMsg) {
	ctx := stdctx.Background()

	// Read implies seen: fetching the thread flips all peer->user messages,
	// so the returned thread already reflects the flip.
	if _, err := a.messages.MarkConversationSeen(ctx, msg.PeerID, msg.UserID); err != nil {
		log.Printf("Failed to mark conversation seen for user %s: %v", msg.UserID, err)
	}

	messages, err := a.messages.GetConversation(ctx, msg.UserID, msg.PeerID)
	if err != nil {
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to get conversation", err))
		return
	}

	context.Respond(messages)
}

func (a *ChatActor) handleSendMessage(context actor.Context, msg *SendMessageMsg) {
	ctx := stdctx.Background()

	image := msg.Image
	if a.uploader != nil && image != "" {
		if data, contentType, ok := storage.DecodeDataURL(image); ok {
			url, err := a.uploader.Upload(ctx, data, contentType)
			if err != nil {
				context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to upload image", err))
				return
			}
			image = url
		}
	}

	message := &models.Message{
		ID:         uuid.New(),
		SenderID:   msg.SenderID,
		ReceiverID: msg.ReceiverID,
		Text:       msg.Text,
		Image:      image,
		Seen:       false,
		CreatedAt:  time.Now(),
	}

	if err := a.messages.InsertMessage(ctx, message); err != nil {
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to save message", err))
		return
	}

	// Best-effort live push; an offline receiver just reads the store later.
	if payload, err := ws.MarshalEvent(ws.EventNewMessage, message); err == nil {
		a.notifier.SendToUser(msg.ReceiverID, payload)
	} else {
		log.Printf("Failed to marshal message event: %v", err)
	}

	context.Respond(message)
}

func (a *ChatActor) handleMarkSeen(context actor.Context, msg *MarkSeenMsg) {
	ctx := stdctx.Background()

	if _, err := a.messages.MarkConversationSeen(ctx, msg.PeerID, msg.UserID); err != nil {
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to mark messages seen", err))
		return
	}

	context.Respond(true)
}

func (a *ChatActor) handleDeleteMessage(context actor.Context, msg *DeleteMessageMsg) {
	ctx := stdctx.Background()

	message, err := a.messages.GetMessage(ctx, msg.MessageID)
	if err != nil {
		if appErr, ok := err.(*utils.AppError); ok {
			context.Respond(appErr)
			return
		}
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to load message", err))
		return
	}

	// Only the original sender may delete a message.
	if message.SenderID != msg.UserID {
		context.Respond(utils.NewAppError(utils.ErrForbidden, "You cannot delete this message", nil))
		return
	}

	if err := a.messages.DeleteMessage(ctx, msg.MessageID); err != nil {
		if appErr, ok := err.(*utils.AppError); ok {
			context.Respond(appErr)
			return
		}
		context.Respond(utils.NewAppError(utils.ErrDatabase, "Failed to delete message", err))
		return
	}

	log.Printf("Message %s deleted by sender %s", msg.MessageID, msg.UserID)
	context.Respond(true)
}
