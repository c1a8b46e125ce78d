package service

import (
	"context"
	"errors"

	"github.com/inkwell/inkwell-go/internal/crypto"
	"github.com/inkwell/inkwell-go/internal/model"
	"github.com/inkwell/inkwell-go/internal/repository"
)

var (
	// ErrInvalidCredentials covers both unknown-username and wrong-
	// password so a caller cannot tell which one happened.
	ErrInvalidCredentials = errors.New("invalid username or password")

	ErrUsernameRequired = errors.New("username is required")
	ErrEmailRequired    = errors.New("email is required")
	ErrPasswordRequired = errors.New("password is required")
	ErrUsernameTaken    = errors.New("username already exists")
	ErrEmailTaken       = errors.New("email already exists")
)

// AuthService handles signup and login business logic.
type AuthService struct {
	users UserStore
}

// NewAuthService creates a new AuthService.
func NewAuthService(users UserStore) *AuthService {
	return &AuthService{users: users}
}

// Register creates a new user account. The raw password is hashed
// before it reaches the store and is never retained.
func (s *AuthService) Register(ctx context.Context, req model.SignupRequest) (*model.User, error) {
	if req.Username == "" {
		return nil, ErrUsernameRequired
	}
	if req.Email == "" {
		return nil, ErrEmailRequired
	}
	if req.Password == "" {
		return nil, ErrPasswordRequired
	}

	hash, err := crypto.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hash,
	}

	if err := s.users.Create(ctx, user); err != nil {
		switch {
		case errors.Is(err, repository.ErrDuplicateUsername):
			return nil, ErrUsernameTaken
		case errors.Is(err, repository.ErrDuplicateEmail):
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	return user, nil
}

// Login authenticates a username/password pair. Unknown usernames,
// wrong passwords and unverifiable stored hashes all fail the same way.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (*model.User, error) {
	user, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	match, err := crypto.VerifyPassword(req.Password, user.PasswordHash)
	if err != nil && !errors.Is(err, crypto.ErrMalformedHash) {
		return nil, err
	}
	if !match {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(ctx context.Context, userID int64) (*model.User, error) {
	return s.users.GetByID(ctx, userID)
}
