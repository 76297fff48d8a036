package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"chatline/internal/apperr"
	"chatline/internal/model"
	"chatline/internal/repo"
)

const bcryptCost = 10

// AuthService is the credential-issuance collaborator: registration with
// bcrypt hashing and login with JWT issuance. It sits outside the chat
// core and only shares the user store with it.
type AuthService interface {
	Register(ctx context.Context, fullName, email, password string) error
	Login(ctx context.Context, email, password string) (*model.User, string, error)
}

type authService struct {
	users       repo.UserRepository
	jwtSecret   []byte
	tokenExpiry time.Duration
	logger      *zap.Logger
}

func NewAuthService(users repo.UserRepository, jwtSecret string, tokenExpiry time.Duration, logger *zap.Logger) AuthService {
	return &authService{
		users:       users,
		jwtSecret:   []byte(jwtSecret),
		tokenExpiry: tokenExpiry,
		logger:      logger,
	}
}

func (s *authService) Register(ctx context.Context, fullName, email, password string) error {
	if fullName == "" || email == "" || password == "" {
		return apperr.Validation("Field require to fill", "Please fill all required fields.")
	}

	taken, err := s.users.EmailTaken(ctx, email)
	if err != nil {
		return apperr.Persistence("Something went wrong while checking the account.", err)
	}
	if taken {
		return apperr.Validation("User Error", "User is already exists.")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return apperr.Persistence("Something went wrong while securing the password.", err)
	}

	user := &model.User{
		Email:     email,
		Password:  string(hashed),
		FirstName: fullName,
	}

	if _, err := s.users.Create(ctx, user); err != nil {
		return apperr.Persistence("Something went wrong while registering the user.", err)
	}

	s.logger.Info("user registered", zap.String("email", email))
	return nil
}

// Login verifies the credentials, issues an HS256 token and persists it
// on the user record. Wrong email and wrong password produce the same
// response body.
func (s *authService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	if email == "" || password == "" {
		return nil, "", apperr.Validation("Field require to fill", "Please fill all required fields.")
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", apperr.Persistence("Something went wrong while looking up the account.", err)
	}
	if user == nil {
		return nil, "", wrongCredentials()
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", wrongCredentials()
	}

	claims := jwt.MapClaims{
		"userId": user.ID.Hex(),
		"email":  user.Email,
		"exp":    time.Now().Add(s.tokenExpiry).Unix(),
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return nil, "", apperr.Persistence("Something went wrong while issuing the token.", err)
	}

	if err := s.users.SetToken(ctx, user.ID.Hex(), token); err != nil {
		return nil, "", apperr.Persistence("Something went wrong while persisting the token.", err)
	}

	return user, token, nil
}

func wrongCredentials() error {
	return apperr.Validation("Wrong Credentials.", "User email or password is incorrect. Please provide correct one.")
}
