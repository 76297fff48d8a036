package service

import (
	"context"

	"go.uber.org/zap"

	"chatline/internal/apperr"
	"chatline/internal/model"
	"chatline/internal/repo"
)

// UserService is the profile-mutation collaborator.
type UserService interface {
	UpdateProfile(ctx context.Context, email string, update repo.ProfileUpdate) (*model.User, error)
	UpdateTheme(ctx context.Context, email string, theme int) (*model.User, error)
	GetUser(ctx context.Context, id string) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.Profile, error)
}

type userService struct {
	users  repo.UserRepository
	logger *zap.Logger
}

func NewUserService(users repo.UserRepository, logger *zap.Logger) UserService {
	return &userService{
		users:  users,
		logger: logger,
	}
}

func (s *userService) UpdateProfile(ctx context.Context, email string, update repo.ProfileUpdate) (*model.User, error) {
	if err := s.ensureExists(ctx, email); err != nil {
		return nil, err
	}

	user, err := s.users.UpdateProfile(ctx, email, update)
	if err != nil {
		return nil, apperr.Persistence("Something went wrong while updating the user.", err)
	}
	return user, nil
}

func (s *userService) UpdateTheme(ctx context.Context, email string, theme int) (*model.User, error) {
	if err := s.ensureExists(ctx, email); err != nil {
		return nil, err
	}

	user, err := s.users.UpdateTheme(ctx, email, theme)
	if err != nil {
		return nil, apperr.Persistence("Something went wrong while updating the theme.", err)
	}
	return user, nil
}

func (s *userService) GetUser(ctx context.Context, id string) (*model.User, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, apperr.Persistence("Something went wrong while fetching the user.", err)
	}
	if user == nil {
		return nil, apperr.NotFound("Error", "Could not find User. Please first register yourself.")
	}
	return user, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]model.Profile, error) {
	users, err := s.users.ListAll(ctx)
	if err != nil {
		return nil, apperr.Persistence("Something went wrong while listing users.", err)
	}

	profiles := make([]model.Profile, 0, len(users))
	for i := range users {
		profiles = append(profiles, model.ProfileOf(&users[i]))
	}
	return profiles, nil
}

func (s *userService) ensureExists(ctx context.Context, email string) error {
	if email == "" {
		return apperr.Validation("Error", "Please fill you email  field.")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return apperr.Persistence("Something went wrong while looking up the account.", err)
	}
	if user == nil {
		return apperr.NotFound("Error", "Could not find User. Please first register yourself.")
	}
	return nil
}
