package service

import (
	"context"

	"github.com/inkwell/inkwell-go/internal/model"
)

// UserStore is the persistence surface the services need for users.
// Implemented by repository.UserRepository.
type UserStore interface {
	Create(ctx context.Context, user *model.User) error
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	GetByID(ctx context.Context, id int64) (*model.User, error)
}

// PostStore is the persistence surface for posts. Implemented by
// repository.PostRepository.
type PostStore interface {
	Create(ctx context.Context, post *model.Post) error
	ListNewestFirst(ctx context.Context) ([]model.Post, error)
}

// ResetTokenStore is the persistence surface for password-reset
// tokens. Implemented by repository.ResetTokenRepository. Redeem must
// be atomic: delete the token row and apply the password hash in one
// transaction, failing with the store's not-found error when the row
// is already gone.
type ResetTokenStore interface {
	Create(ctx context.Context, token *model.ResetToken) error
	GetByToken(ctx context.Context, token string) (*model.ResetToken, error)
	Redeem(ctx context.Context, token string, userID int64, passwordHash string) error
}
