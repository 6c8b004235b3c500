// internal/database/message_repository.go
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

// MessageDocument represents the MongoDB document structure for messages
type MessageDocument struct {
	ID         string    `bson:"_id"`
	SenderID   string    `bson:"senderId"`
	ReceiverID string    `bson:"receiverId"`
	Text       string    `bson:"text,omitempty"`
	Image      string    `bson:"image,omitempty"`
	Seen       bool      `bson:"seen"`
	CreatedAt  time.Time `bson:"createdAt"`
}

func messageDocumentToModel(doc *MessageDocument) (*models.Message, error) {
	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid message ID in database: %v", err)
	}
	senderID, err := uuid.Parse(doc.SenderID)
	if err != nil {
		return nil, fmt.Errorf("invalid sender ID in database: %v", err)
	}
	receiverID, err := uuid.Parse(doc.ReceiverID)
	if err != nil {
		return nil, fmt.Errorf("invalid receiver ID in database: %v", err)
	}

	return &models.Message{
		ID:         id,
		SenderID:   senderID,
		ReceiverID: receiverID,
		Text:       doc.Text,
		Image:      doc.Image,
		Seen:       doc.Seen,
		CreatedAt:  doc.CreatedAt,
	}, nil
}

// InsertMessage saves a new message to MongoDB
func (m *MongoDB) InsertMessage(ctx context.Context, message *models.Message) error {
	doc := MessageDocument{
		ID:         message.ID.String(),
		SenderID:   message.SenderID.String(),
		ReceiverID: message.ReceiverID.String(),
		Text:       message.Text,
		Image:      message.Image,
		Seen:       message.Seen,
		CreatedAt:  message.CreatedAt,
	}

	_, err := m.Messages.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("failed to save message: %v", err)
	}

	return nil
}

// GetConversation retrieves all messages between two users, in either
// direction, in insertion order.
func (m *MongoDB) GetConversation(ctx context.Context, userID, peerID uuid.UUID) ([]*models.Message, error) {
	userIDStr := userID.String()
	peerIDStr := peerID.String()

	filter := bson.M{
		"$or": []bson.M{
			{"senderId": userIDStr, "receiverId": peerIDStr},
			{"senderId": peerIDStr, "receiverId": userIDStr},
		},
	}

	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := m.Messages.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to get conversation: %v", err)
	}
	defer cursor.Close(ctx)

	messages := []*models.Message{}
	for cursor.Next(ctx) {
		var doc MessageDocument
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode message: %v", err)
		}

		message, err := messageDocumentToModel(&doc)
		if err != nil {
			return nil, err
		}
		messages = append(messages, message)
	}

	return messages, cursor.Err()
}

// MarkConversationSeen flips seen to true on every unseen message from
// senderID to receiverID. Idempotent: already-seen messages don't match the
// filter. Returns the number of messages updated.
func (m *MongoDB) MarkConversationSeen(ctx context.Context, senderID, receiverID uuid.UUID) (int64, error) {
	filter := bson.M{
		"senderId":   senderID.String(),
		"receiverId": receiverID.String(),
		"seen":       false,
	}
	update := bson.M{"$set": bson.M{"seen": true}}

	result, err := m.Messages.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, fmt.Errorf("failed to mark conversation seen: %v", err)
	}

	return result.ModifiedCount, nil
}

// CountUnseenBySender counts, per sender, the unseen messages addressed to
// receiverID. Computed as a single grouped aggregation rather than one count
// query per peer.
func (m *MongoDB) CountUnseenBySender(ctx context.Context, receiverID uuid.UUID) (map[string]int, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"receiverId": receiverID.String(),
			"seen":       false,
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$senderId",
			"count": bson.M{"$sum": 1},
		}}},
	}

	cursor, err := m.Messages.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to count unseen messages: %v", err)
	}
	defer cursor.Close(ctx)

	counts := map[string]int{}
	for cursor.Next(ctx) {
		var row struct {
			SenderID string `bson:"_id"`
			Count    int    `bson:"count"`
		}
		if err := cursor.Decode(&row); err != nil {
			return nil, fmt.Errorf("failed to decode unseen count: %v", err)
		}
		counts[row.SenderID] = row.Count
	}

	return counts, cursor.Err()
}

// GetMessage retrieves a single message by its ID
func (m *MongoDB) GetMessage(ctx context.Context, messageID uuid.UUID) (*models.Message, error) {
	var doc MessageDocument

	err := m.Messages.FindOne(ctx, bson.M{"_id": messageID.String()}).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, utils.NewAppError(utils.ErrMessageNotFound, "Message not found", err)
	}
	if err != nil {
		return nil, err
	}

	return messageDocumentToModel(&doc)
}

// DeleteMessage removes a message unconditionally. The sender-identity check
// happens at the caller, which must look the message up first.
func (m *MongoDB) DeleteMessage(ctx context.Context, messageID uuid.UUID) error {
	result, err := m.Messages.DeleteOne(ctx, bson.M{"_id": messageID.String()})
	if err != nil {
		return fmt.Errorf("failed to delete message: %v", err)
	}
	if result.DeletedCount == 0 {
		return utils.NewAppError(utils.ErrMessageNotFound, "Message not found", nil)
	}

	return nil
}
