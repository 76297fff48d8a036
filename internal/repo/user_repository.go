package repo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"chatline/internal/db"
	"chatline/internal/model"
)

// ProfileUpdate is the mutable slice of a user document.
type ProfileUpdate struct {
	FirstName    string
	LastName     string
	NickName     string
	Status       string
	ProfileImage string
}

// UserRepository stores user accounts and resolves identities for the
// conversation and message projections. Lookups return (nil, nil) when
// the user does not exist.
type UserRepository interface {
	Create(ctx context.Context, user *model.User) (string, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	EmailTaken(ctx context.Context, email string) (bool, error)
	ListAll(ctx context.Context) ([]model.User, error)
	UpdateProfile(ctx context.Context, email string, update ProfileUpdate) (*model.User, error)
	UpdateTheme(ctx context.Context, email string, theme int) (*model.User, error)
	SetToken(ctx context.Context, id, token string) error
}

type userRepository struct {
	mongoRepo *db.Repository[model.User]
	logger    *zap.Logger
}

func NewUserRepository(mongoRepo *db.Repository[model.User], logger *zap.Logger) UserRepository {
	return &userRepository{
		mongoRepo: mongoRepo,
		logger:    logger,
	}
}

func (r *userRepository) Create(ctx context.Context, user *model.User) (string, error) {
	ctx, cancel := ensureTimeout(ctx, defaultWriteTimeout)
	defer cancel()

	result, err := r.mongoRepo.Create(ctx, *user)
	if err != nil {
		r.logger.Error("failed to insert user", zap.String("email", user.Email), zap.Error(err))
		return "", fmt.Errorf("insert user failed: %w", err)
	}

	id := insertedHex(result.InsertedID)
	r.logger.Info("user created", zap.String("user_id", id))
	return id, nil
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	ctx, cancel := ensureTimeout(ctx, defaultReadTimeout)
	defer cancel()

	user, err := r.mongoRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		// An unparsable hex ID is treated the same as an absent user:
		// the projections skip it instead of failing.
		r.logger.Debug("user lookup failed", zap.String("user_id", id), zap.Error(err))
		return nil, nil
	}
	return user, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	ctx, cancel := ensureTimeout(ctx, defaultReadTimeout)
	defer cancel()

	user, err := r.mongoRepo.FindOne(ctx, db.NewFilter().Eq("email", email).Build())
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		r.logger.Error("failed to find user by email", zap.Error(err))
		return nil, fmt.Errorf("find user failed: %w", err)
	}
	return user, nil
}

// EmailTaken reports whether an account already exists for the email,
// without fetching the document.
func (r *userRepository) EmailTaken(ctx context.Context, email string) (bool, error) {
	ctx, cancel := ensureTimeout(ctx, defaultReadTimeout)
	defer cancel()

	taken, err := r.mongoRepo.Exists(ctx, db.NewFilter().Eq("email", email).Build())
	if err != nil {
		r.logger.Error("failed to check email", zap.Error(err))
		return false, fmt.Errorf("check email failed: %w", err)
	}
	return taken, nil
}

func (r *userRepository) ListAll(ctx context.Context) ([]model.User, error) {
	ctx, cancel := ensureTimeout(ctx, defaultReadTimeout)
	defer cancel()

	users, err := r.mongoRepo.FindAll(ctx, db.Empty())
	if err != nil {
		r.logger.Error("failed to list users", zap.Error(err))
		return nil, fmt.Errorf("list users failed: %w", err)
	}
	return users, nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, email string, update ProfileUpdate) (*model.User, error) {
	set := bson.M{
		"first_name":    update.FirstName,
		"last_name":     update.LastName,
		"nick_name":     update.NickName,
		"status":        update.Status,
		"profile_image": update.ProfileImage,
	}
	return r.updateByEmail(ctx, email, set)
}

func (r *userRepository) UpdateTheme(ctx context.Context, email string, theme int) (*model.User, error) {
	return r.updateByEmail(ctx, email, bson.M{"theme": theme})
}

func (r *userRepository) updateByEmail(ctx context.Context, email string, set bson.M) (*model.User, error) {
	ctx, cancel := ensureTimeout(ctx, defaultWriteTimeout)
	defer cancel()

	filter := db.NewFilter().Eq("email", email).Build()

	if _, err := r.mongoRepo.UpdateOne(ctx, filter, set); err != nil {
		r.logger.Error("failed to update user", zap.Error(err))
		return nil, fmt.Errorf("update user failed: %w", err)
	}

	return r.mongoRepo.FindOne(ctx, filter)
}

func (r *userRepository) SetToken(ctx context.Context, id, token string) error {
	ctx, cancel := ensureTimeout(ctx, defaultWriteTimeout)
	defer cancel()

	filter := db.NewFilter().ObjectID("_id", id).Build()

	if _, err := r.mongoRepo.UpdateOne(ctx, filter, bson.M{"token": token}); err != nil {
		r.logger.Error("failed to persist token", zap.String("user_id", id), zap.Error(err))
		return fmt.Errorf("persist token failed: %w", err)
	}
	return nil
}
