package service

import (
	"context"
	"errors"
	"time"

	"github.com/inkwell/inkwell-go/internal/crypto"
	"github.com/inkwell/inkwell-go/internal/model"
	"github.com/inkwell/inkwell-go/internal/repository"
)

var (
	// ErrInvalidToken covers both a token that never existed (or was
	// already redeemed) and one past its expiry; callers must not be
	// able to tell which.
	ErrInvalidToken = errors.New("invalid or expired password reset token")

	ErrUnknownEmail = errors.New("no account with that email address")
)

// TokenLifetime is how long a reset token stays redeemable.
const TokenLifetime = time.Hour

// ResetService handles the password-reset token lifecycle: issuing a
// token bound to a user, and redeeming it exactly once for a password
// change within the expiry window.
type ResetService struct {
	tokens ResetTokenStore
	users  UserStore

	// now is replaceable in tests to step the clock.
	now func() time.Time
}

// NewResetService creates a new ResetService.
func NewResetService(tokens ResetTokenStore, users UserStore) *ResetService {
	return &ResetService{
		tokens: tokens,
		users:  users,
		now:    time.Now,
	}
}

// Issue generates a fresh reset token for the account registered under
// email and persists it with a one-hour expiry. Previously issued
// unexpired tokens for the same user stay live. Returns the user and
// the plaintext token for delivery; the token is not stored anywhere
// else.
func (s *ResetService) Issue(ctx context.Context, email string) (*model.User, string, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, "", ErrUnknownEmail
		}
		return nil, "", err
	}

	token, err := crypto.NewResetToken()
	if err != nil {
		return nil, "", err
	}

	rt := &model.ResetToken{
		Token:     token,
		UserID:    user.ID,
		ExpiresAt: s.now().Add(TokenLifetime),
	}

	if err := s.tokens.Create(ctx, rt); err != nil {
		return nil, "", err
	}

	return user, token, nil
}

// Validate checks that token refers to a live reset token: the row
// still exists and the expiry instant has not been reached.
func (s *ResetService) Validate(ctx context.Context, token string) error {
	rt, err := s.tokens.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrTokenNotFound) {
			return ErrInvalidToken
		}
		return err
	}

	if !s.now().Before(rt.ExpiresAt) {
		return ErrInvalidToken
	}

	return nil
}

// Redeem consumes the token and sets the bound user's password to
// newPassword. The token row is deleted in the same transaction that
// applies the password, so a second redemption of the same token fails
// with ErrInvalidToken and never reapplies a password change.
func (s *ResetService) Redeem(ctx context.Context, token, newPassword string) error {
	if newPassword == "" {
		return ErrPasswordRequired
	}

	rt, err := s.tokens.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrTokenNotFound) {
			return ErrInvalidToken
		}
		return err
	}

	if !s.now().Before(rt.ExpiresAt) {
		return ErrInvalidToken
	}

	hash, err := crypto.HashPassword(newPassword)
	if err != nil {
		return err
	}

	if err := s.tokens.Redeem(ctx, token, rt.UserID, hash); err != nil {
		if errors.Is(err, repository.ErrTokenNotFound) {
			return ErrInvalidToken
		}
		return err
	}

	return nil
}
