package repo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"chatline/internal/db"
	"chatline/internal/model"
)

// ConversationRepository is the durable store of conversations and their
// membership. Conversations are never mutated or deleted after creation.
//
// CreateDirect deliberately performs no deduplication: every call inserts
// a fresh conversation even when one already exists for the same pair.
type ConversationRepository interface {
	CreateDirect(ctx context.Context, memberA, memberB string) (string, error)
	CreateGroup(ctx context.Context, groupName, adminID string, memberIDs []string) (string, error)
	ListForUser(ctx context.Context, userID string) ([]model.Conversation, error)
	ListAll(ctx context.Context) ([]model.Conversation, error)
}

type conversationRepository struct {
	mongoRepo *db.Repository[model.Conversation]
	logger    *zap.Logger
}

func NewConversationRepository(mongoRepo *db.Repository[model.Conversation], logger *zap.Logger) ConversationRepository {
	return &conversationRepository{
		mongoRepo: mongoRepo,
		logger:    logger,
	}
}

func (r *conversationRepository) CreateDirect(ctx context.Context, memberA, memberB string) (string, error) {
	if memberA == "" || memberB == "" {
		return "", ErrInvalidMember
	}

	return r.insert(ctx, model.Conversation{
		Members: []string{memberA, memberB},
		IsGroup: false,
	})
}

func (r *conversationRepository) CreateGroup(ctx context.Context, groupName, adminID string, memberIDs []string) (string, error) {
	if adminID == "" {
		return "", ErrInvalidMember
	}
	if len(memberIDs) < 1 {
		return "", ErrConversationTooSmall
	}

	return r.insert(ctx, model.Conversation{
		Members:   append([]string{adminID}, memberIDs...),
		IsGroup:   true,
		GroupName: groupName,
	})
}

func (r *conversationRepository) insert(ctx context.Context, conversation model.Conversation) (string, error) {
	ctx, cancel := ensureTimeout(ctx, defaultWriteTimeout)
	defer cancel()

	result, err := r.mongoRepo.Create(ctx, conversation)
	if err != nil {
		r.logger.Error("failed to insert conversation",
			zap.Bool("is_group", conversation.IsGroup),
			zap.Int("members", len(conversation.Members)),
			zap.Error(err),
		)
		return "", fmt.Errorf("insert conversation failed: %w", err)
	}

	id := insertedHex(result.InsertedID)
	r.logger.Info("conversation created",
		zap.String("conversation_id", id),
		zap.Bool("is_group", conversation.IsGroup),
		zap.Int("members", len(conversation.Members)),
	)
	return id, nil
}

func (r *conversationRepository) ListForUser(ctx context.Context, userID string) ([]model.Conversation, error) {
	if userID == "" {
		return nil, ErrInvalidMember
	}

	ctx, cancel := ensureTimeout(ctx, defaultReadTimeout)
	defer cancel()

	filter := db.NewFilter().In("members", []string{userID}).Build()

	conversations, err := r.mongoRepo.FindAll(ctx, filter)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		r.logger.Error("failed to list conversations",
			zap.String("user_id", userID),
			zap.Error(err),
		)
		return nil, fmt.Errorf("list conversations failed: %w", err)
	}

	r.logger.Debug("conversations retrieved",
		zap.String("user_id", userID),
		zap.Int("count", len(conversations)),
	)
	return conversations, nil
}

func (r *conversationRepository) ListAll(ctx context.Context) ([]model.Conversation, error) {
	ctx, cancel := ensureTimeout(ctx, defaultReadTimeout)
	defer cancel()

	conversations, err := r.mongoRepo.FindAll(ctx, db.Empty())
	if err != nil {
		r.logger.Error("failed to list all conversations", zap.Error(err))
		return nil, fmt.Errorf("list all conversations failed: %w", err)
	}
	return conversations, nil
}
