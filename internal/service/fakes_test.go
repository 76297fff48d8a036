package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"chatline/internal/model"
	"chatline/internal/repo"
)

// In-memory store fakes implementing the repository interfaces, in the
// spirit of the sink fakes used for registry tests.

type fakeUserRepo struct {
	users []*model.User
}

func (f *fakeUserRepo) add(user model.User) *model.User {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	stored := user
	f.users = append(f.users, &stored)
	return &stored
}

func (f *fakeUserRepo) Create(_ context.Context, user *model.User) (string, error) {
	stored := f.add(*user)
	return stored.ID.Hex(), nil
}

func (f *fakeUserRepo) FindByID(_ context.Context, id string) (*model.User, error) {
	for _, u := range f.users {
		if u.ID.Hex() == id {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) FindByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUserRepo) EmailTaken(ctx context.Context, email string) (bool, error) {
	user, err := f.FindByEmail(ctx, email)
	return user != nil, err
}

func (f *fakeUserRepo) ListAll(_ context.Context) ([]model.User, error) {
	out := make([]model.User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, *u)
	}
	return out, nil
}

func (f *fakeUserRepo) UpdateProfile(ctx context.Context, email string, update repo.ProfileUpdate) (*model.User, error) {
	user, _ := f.FindByEmail(ctx, email)
	if user != nil {
		user.FirstName = update.FirstName
		user.LastName = update.LastName
		user.NickName = update.NickName
		user.Status = update.Status
		user.ProfileImage = update.ProfileImage
	}
	return user, nil
}

func (f *fakeUserRepo) UpdateTheme(ctx context.Context, email string, theme int) (*model.User, error) {
	user, _ := f.FindByEmail(ctx, email)
	if user != nil {
		user.Theme = theme
	}
	return user, nil
}

func (f *fakeUserRepo) SetToken(ctx context.Context, id, token string) error {
	user, _ := f.FindByID(ctx, id)
	if user != nil {
		user.Token = token
	}
	return nil
}

type fakeConversationRepo struct {
	conversations []model.Conversation
	createErr     error
}

func (f *fakeConversationRepo) CreateDirect(_ context.Context, memberA, memberB string) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	conversation := model.Conversation{
		ID:      primitive.NewObjectID(),
		Members: []string{memberA, memberB},
	}
	f.conversations = append(f.conversations, conversation)
	return conversation.ID.Hex(), nil
}

func (f *fakeConversationRepo) CreateGroup(_ context.Context, groupName, adminID string, memberIDs []string) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	conversation := model.Conversation{
		ID:        primitive.NewObjectID(),
		Members:   append([]string{adminID}, memberIDs...),
		IsGroup:   true,
		GroupName: groupName,
	}
	f.conversations = append(f.conversations, conversation)
	return conversation.ID.Hex(), nil
}

func (f *fakeConversationRepo) ListForUser(_ context.Context, userID string) ([]model.Conversation, error) {
	var out []model.Conversation
	for _, conversation := range f.conversations {
		for _, member := range conversation.Members {
			if member == userID {
				out = append(out, conversation)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeConversationRepo) ListAll(_ context.Context) ([]model.Conversation, error) {
	return f.conversations, nil
}

type fakeMessageRepo struct {
	messages  []model.Message
	insertErr error
}

func (f *fakeMessageRepo) Insert(_ context.Context, msg *model.Message) (string, error) {
	if f.insertErr != nil {
		return "", f.insertErr
	}
	if msg.ConversationID == "" {
		return "", repo.ErrInvalidConversationID
	}
	stored := *msg
	stored.ID = primitive.NewObjectID()
	if stored.Type == "" {
		stored.Type = model.TypeText
	}
	stored.Read = false
	f.messages = append(f.messages, stored)
	return stored.ID.Hex(), nil
}

func (f *fakeMessageRepo) ListForConversation(_ context.Context, conversationID string) ([]model.Message, error) {
	var out []model.Message
	for _, msg := range f.messages {
		if msg.ConversationID == conversationID {
			out = append(out, msg)
		}
	}
	return out, nil
}

func (f *fakeMessageRepo) MarkRead(_ context.Context, conversationID, senderID string) (int64, error) {
	var modified int64
	for i := range f.messages {
		msg := &f.messages[i]
		if msg.ConversationID == conversationID && msg.SenderID == senderID && !msg.Read {
			msg.Read = true
			modified++
		}
	}
	return modified, nil
}

func (f *fakeMessageRepo) ListUnread(_ context.Context, conversationID, senderID string) ([]model.Message, error) {
	var out []model.Message
	for _, msg := range f.messages {
		if msg.ConversationID == conversationID && msg.SenderID == senderID && !msg.Read {
			out = append(out, msg)
		}
	}
	return out, nil
}

func (f *fakeMessageRepo) CountUnread(ctx context.Context, conversationID, senderID string) (int64, error) {
	unread, err := f.ListUnread(ctx, conversationID, senderID)
	return int64(len(unread)), err
}
