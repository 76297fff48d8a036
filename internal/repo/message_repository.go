package repo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"chatline/internal/db"
	"chatline/internal/model"
)

// MessageRepository is the durable store of messages. Messages are
// immutable except for the read flag, which only ever moves false -> true
// in bulk for a (conversation, sender) pair.
type MessageRepository interface {
	Insert(ctx context.Context, msg *model.Message) (string, error)
	ListForConversation(ctx context.Context, conversationID string) ([]model.Message, error)
	MarkRead(ctx context.Context, conversationID, senderID string) (int64, error)
	ListUnread(ctx context.Context, conversationID, senderID string) ([]model.Message, error)
	CountUnread(ctx context.Context, conversationID, senderID string) (int64, error)
}

type messageRepository struct {
	mongoRepo *db.Repository[model.Message]
	logger    *zap.Logger
}

func NewMessageRepository(mongoRepo *db.Repository[model.Message], logger *zap.Logger) MessageRepository {
	return &messageRepository{
		mongoRepo: mongoRepo,
		logger:    logger,
	}
}

// Insert appends a message with read=false. The conversation reference is
// not verified; a failure here after an implicit conversation creation
// leaves the conversation behind with no messages.
func (m *messageRepository) Insert(ctx context.Context, msg *model.Message) (string, error) {
	if err := m.validateMessage(msg); err != nil {
		return "", err
	}

	if msg.Type == "" {
		msg.Type = model.TypeText
	}
	msg.Read = false

	ctx, cancel := ensureTimeout(ctx, defaultWriteTimeout)
	defer cancel()

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			if err := waitForRetry(ctx, attempt); err != nil {
				return "", err
			}
		}

		result, err := m.mongoRepo.Create(ctx, *msg)
		if err == nil {
			insertedID := insertedHex(result.InsertedID)
			m.logger.Info("message inserted",
				zap.String("inserted_id", insertedID),
				zap.String("conversation_id", msg.ConversationID),
				zap.Int("attempt", attempt+1),
			)
			return insertedID, nil
		}

		lastErr = err
		if !isRetryableError(err) {
			break
		}

		m.logger.Warn("insert attempt failed, retrying",
			zap.Error(err),
			zap.Int("attempt", attempt+1),
			zap.Int("max_attempts", maxRetries),
		)
	}

	m.logger.Error("failed to insert message after all retries",
		zap.Error(lastErr),
		zap.String("conversation_id", msg.ConversationID),
	)
	if isRetryableError(lastErr) {
		return "", fmt.Errorf("%w: %w", ErrMaxRetriesExceeded, lastErr)
	}
	return "", fmt.Errorf("insert message failed: %w", lastErr)
}

func (m *messageRepository) ListForConversation(ctx context.Context, conversationID string) ([]model.Message, error) {
	if conversationID == "" {
		return nil, ErrInvalidConversationID
	}

	ctx, cancel := ensureTimeout(ctx, defaultReadTimeout)
	defer cancel()

	filter := db.NewFilter().Eq("conversation_id", conversationID).Build()

	messages, err := m.mongoRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, m.handleReadError(err, conversationID)
	}

	m.logger.Debug("messages retrieved",
		zap.String("conversation_id", conversationID),
		zap.Int("count", len(messages)),
	)
	return messages, nil
}

// MarkRead flips read=true on every message in the conversation from the
// given sender. Idempotent: repeated calls match zero documents.
func (m *messageRepository) MarkRead(ctx context.Context, conversationID, senderID string) (int64, error) {
	if conversationID == "" {
		return 0, ErrInvalidConversationID
	}

	ctx, cancel := ensureTimeout(ctx, defaultWriteTimeout)
	defer cancel()

	filter := db.NewFilter().
		Eq("conversation_id", conversationID).
		Eq("sender_id", senderID).
		Build()

	result, err := m.mongoRepo.UpdateMany(ctx, filter, bson.M{"read": true})
	if err != nil {
		m.logger.Error("failed to mark messages read",
			zap.String("conversation_id", conversationID),
			zap.String("sender_id", senderID),
			zap.Error(err),
		)
		return 0, fmt.Errorf("mark read failed: %w", err)
	}

	m.logger.Debug("messages marked read",
		zap.String("conversation_id", conversationID),
		zap.String("sender_id", senderID),
		zap.Int64("modified", result.ModifiedCount),
	)
	return result.ModifiedCount, nil
}

func (m *messageRepository) ListUnread(ctx context.Context, conversationID, senderID string) ([]model.Message, error) {
	if conversationID == "" {
		return nil, ErrInvalidConversationID
	}

	ctx, cancel := ensureTimeout(ctx, defaultReadTimeout)
	defer cancel()

	filter := m.unreadFilter(conversationID, senderID)

	messages, err := m.mongoRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, m.handleReadError(err, conversationID)
	}
	return messages, nil
}

func (m *messageRepository) CountUnread(ctx context.Context, conversationID, senderID string) (int64, error) {
	if conversationID == "" {
		return 0, ErrInvalidConversationID
	}

	ctx, cancel := ensureTimeout(ctx, defaultReadTimeout)
	defer cancel()

	return m.mongoRepo.Count(ctx, m.unreadFilter(conversationID, senderID))
}

func (m *messageRepository) unreadFilter(conversationID, senderID string) bson.M {
	return db.NewFilter().
		Eq("conversation_id", conversationID).
		Eq("sender_id", senderID).
		Eq("read", false).
		Build()
}

func (m *messageRepository) validateMessage(msg *model.Message) error {
	if msg == nil {
		return ErrInvalidMessage
	}
	if msg.ConversationID == "" {
		return ErrInvalidConversationID
	}
	return nil
}

func (m *messageRepository) handleReadError(err error, conversationID string) error {
	if errors.Is(err, context.DeadlineExceeded) {
		m.logger.Error("read timeout", zap.String("conversation_id", conversationID))
		return ErrOperationTimeout
	}

	if errors.Is(err, context.Canceled) {
		m.logger.Debug("read cancelled", zap.String("conversation_id", conversationID))
		return err
	}

	m.logger.Error("read failed", zap.Error(err), zap.String("conversation_id", conversationID))
	return fmt.Errorf("list messages failed: %w", err)
}
