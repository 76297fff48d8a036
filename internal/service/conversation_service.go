package service

import (
	"context"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"chatline/internal/apperr"
	"chatline/internal/model"
	"chatline/internal/repo"
)

// ConversationService creates conversations and produces the
// conversation-listing projection the client renders.
type ConversationService interface {
	CreateDirect(ctx context.Context, senderID, receiverID string) (string, error)
	CreateGroup(ctx context.Context, groupName, adminID string, userIDs []string) error
	ProjectForUser(ctx context.Context, userID string) ([]model.ConversationView, error)
	ListAll(ctx context.Context) ([]model.Conversation, error)
}

type conversationService struct {
	conversations repo.ConversationRepository
	users         repo.UserRepository
	logger        *zap.Logger
}

func NewConversationService(conversations repo.ConversationRepository, users repo.UserRepository, logger *zap.Logger) ConversationService {
	return &conversationService{
		conversations: conversations,
		users:         users,
		logger:        logger,
	}
}

func (s *conversationService) CreateDirect(ctx context.Context, senderID, receiverID string) (string, error) {
	if senderID == "" || receiverID == "" {
		return "", apperr.Validation("Field require to fill", "Please fill all required fields.")
	}

	id, err := s.conversations.CreateDirect(ctx, senderID, receiverID)
	if err != nil {
		return "", apperr.Persistence("Something went wrong while creating the conversation.", err)
	}
	return id, nil
}

func (s *conversationService) CreateGroup(ctx context.Context, groupName, adminID string, userIDs []string) error {
	if groupName == "" || adminID == "" || len(userIDs) == 0 {
		return apperr.Validation("Field require to fill", "Please fill all required fields.")
	}

	if _, err := s.conversations.CreateGroup(ctx, groupName, adminID, userIDs); err != nil {
		return apperr.Persistence("Something went wrong while creating the group.", err)
	}
	return nil
}

// ProjectForUser resolves, per conversation, the members other than the
// caller into lightweight profiles. A member ID that no longer resolves
// to a user is skipped rather than failing the whole projection.
func (s *conversationService) ProjectForUser(ctx context.Context, userID string) ([]model.ConversationView, error) {
	if userID == "" {
		return nil, apperr.Validation("Error", "Please provide a user id.")
	}

	conversations, err := s.conversations.ListForUser(ctx, userID)
	if err != nil {
		return nil, apperr.Persistence("Something went wrong while listing conversations.", err)
	}

	views := make([]model.ConversationView, 0, len(conversations))
	for _, conversation := range conversations {
		others := lo.Filter(conversation.Members, func(member string, _ int) bool {
			return member != userID
		})

		profiles := make([]model.Profile, 0, len(others))
		for _, memberID := range others {
			user, err := s.users.FindByID(ctx, memberID)
			if err != nil {
				return nil, apperr.Persistence("Something went wrong while resolving members.", err)
			}
			if user == nil {
				s.logger.Debug("skipping unresolvable member",
					zap.String("conversation_id", conversation.ID.Hex()),
					zap.String("member_id", memberID),
				)
				continue
			}
			profiles = append(profiles, model.ProfileOf(user))
		}

		views = append(views, model.ConversationView{
			Users:          profiles,
			ConversationID: conversation.ID.Hex(),
			IsGroup:        conversation.IsGroup,
			GroupName:      conversation.GroupName,
		})
	}

	return views, nil
}

func (s *conversationService) ListAll(ctx context.Context) ([]model.Conversation, error) {
	conversations, err := s.conversations.ListAll(ctx)
	if err != nil {
		return nil, apperr.Persistence("Something went wrong while listing conversations.", err)
	}
	return conversations, nil
}
