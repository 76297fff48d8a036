package service

import (
	"context"

	"go.uber.org/zap"

	"chatline/internal/apperr"
	"chatline/internal/model"
	"chatline/internal/repo"
)

// PostMessageInput carries a message through the persistence boundary.
// ConversationID may be empty when ReceiverID is set; a direct
// conversation is then created first.
type PostMessageInput struct {
	ConversationID string
	SenderID       string
	Message        string
	Type           string
	TimeStamp      int64
	ReceiverID     string
}

// MessageService implements the persistence side of sending plus
// read-state tracking: mark-as-read and unread counting scoped to a
// (conversation, sender) pair.
type MessageService interface {
	Post(ctx context.Context, in PostMessageInput) (string, error)
	FetchForSender(ctx context.Context, conversationID, senderID string) ([]model.MessageView, error)
	MarkRead(ctx context.Context, conversationID, senderID string) error
	Unread(ctx context.Context, conversationID, senderID string) ([]model.Message, int64, error)
}

type messageService struct {
	messages      repo.MessageRepository
	conversations repo.ConversationRepository
	users         repo.UserRepository
	logger        *zap.Logger
}

func NewMessageService(messages repo.MessageRepository, conversations repo.ConversationRepository, users repo.UserRepository, logger *zap.Logger) MessageService {
	return &messageService{
		messages:      messages,
		conversations: conversations,
		users:         users,
		logger:        logger,
	}
}

// Post appends a message, creating a fresh direct conversation first when
// no conversation ID was supplied. The two steps share no transaction: a
// failed append can leave an orphan conversation behind, which is
// accepted and only logged. Creation never deduplicates against existing
// conversations for the same pair.
func (s *messageService) Post(ctx context.Context, in PostMessageInput) (string, error) {
	if in.SenderID == "" || in.Message == "" {
		return "", apperr.Validation("Field require to fill", "Please fill all required fields.")
	}

	conversationID := in.ConversationID
	if conversationID == "" && in.ReceiverID != "" {
		id, err := s.conversations.CreateDirect(ctx, in.SenderID, in.ReceiverID)
		if err != nil {
			return "", apperr.Persistence("Something went wrong while creating the conversation.", err)
		}
		conversationID = id
		s.logger.Info("implicit direct conversation created",
			zap.String("conversation_id", conversationID),
			zap.String("sender_id", in.SenderID),
			zap.String("receiver_id", in.ReceiverID),
		)
	}
	if conversationID == "" {
		return "", apperr.Validation("Field require to fill", "Please fill all required fields.")
	}

	msg := &model.Message{
		ConversationID: conversationID,
		SenderID:       in.SenderID,
		Body:           in.Message,
		Type:           in.Type,
		TimeStamp:      in.TimeStamp,
	}

	if _, err := s.messages.Insert(ctx, msg); err != nil {
		// No rollback of an implicitly created conversation.
		s.logger.Warn("message append failed after conversation creation",
			zap.String("conversation_id", conversationID),
			zap.Error(err),
		)
		return "", apperr.Persistence("Something went wrong while sending the message.", err)
	}

	return conversationID, nil
}

// FetchForSender lists a conversation's messages with each sender
// resolved to a profile, then marks the given sender's messages read in
// the same request. An empty conversation ID yields an empty list.
func (s *messageService) FetchForSender(ctx context.Context, conversationID, senderID string) ([]model.MessageView, error) {
	if conversationID == "" {
		return []model.MessageView{}, nil
	}

	messages, err := s.messages.ListForConversation(ctx, conversationID)
	if err != nil {
		return nil, apperr.Persistence("Something went wrong while fetching messages.", err)
	}

	views := make([]model.MessageView, 0, len(messages))
	for _, msg := range messages {
		user, err := s.users.FindByID(ctx, msg.SenderID)
		if err != nil {
			return nil, apperr.Persistence("Something went wrong while resolving senders.", err)
		}
		if user == nil {
			s.logger.Debug("skipping message with unresolvable sender",
				zap.String("conversation_id", conversationID),
				zap.String("sender_id", msg.SenderID),
			)
			continue
		}
		views = append(views, model.MessageView{
			User:      model.ProfileOf(user),
			Message:   msg.Body,
			Type:      msg.Type,
			TimeStamp: msg.TimeStamp,
		})
	}

	if _, err := s.messages.MarkRead(ctx, conversationID, senderID); err != nil {
		return nil, apperr.Persistence("Something went wrong while updating read state.", err)
	}

	return views, nil
}

// MarkRead is the standalone, idempotent mark-as-read operation.
func (s *messageService) MarkRead(ctx context.Context, conversationID, senderID string) error {
	if conversationID == "" {
		return apperr.Validation("Error", "Please provide a conversation id.")
	}

	if _, err := s.messages.MarkRead(ctx, conversationID, senderID); err != nil {
		return apperr.Persistence("Something went wrong while updating read state.", err)
	}
	return nil
}

// Unread returns the still-unread messages from a sender in a
// conversation, plus their count.
func (s *messageService) Unread(ctx context.Context, conversationID, senderID string) ([]model.Message, int64, error) {
	if conversationID == "" {
		return nil, 0, apperr.Validation("Error", "Please provide a conversation id.")
	}

	records, err := s.messages.ListUnread(ctx, conversationID, senderID)
	if err != nil {
		return nil, 0, apperr.Persistence("Something went wrong while counting unread messages.", err)
	}

	count, err := s.messages.CountUnread(ctx, conversationID, senderID)
	if err != nil {
		return nil, 0, apperr.Persistence("Something went wrong while counting unread messages.", err)
	}

	return records, count, nil
}
