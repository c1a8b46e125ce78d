package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/inkwell/inkwell-go/internal/model"
)

var ErrTokenNotFound = errors.New("reset token not found")

// ResetTokenRepository handles password-reset token persistence.
type ResetTokenRepository struct {
	db *sql.DB
}

// NewResetTokenRepository creates a new ResetTokenRepository.
func NewResetTokenRepository(db *sql.DB) *ResetTokenRepository {
	return &ResetTokenRepository{db: db}
}

// Create inserts a new reset token row and sets the generated ID.
// Earlier tokens for the same user are left untouched.
func (r *ResetTokenRepository) Create(ctx context.Context, token *model.ResetToken) error {
	query := `INSERT INTO reset_tokens (token, user_id, expires_at) VALUES (?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query, token.Token, token.UserID, token.ExpiresAt)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	token.ID = id
	return nil
}

// GetByToken retrieves a reset token by its token string (exact match).
func (r *ResetTokenRepository) GetByToken(ctx context.Context, token string) (*model.ResetToken, error) {
	query := `SELECT id, token, user_id, created_at, expires_at FROM reset_tokens WHERE token = ?`

	rt := &model.ResetToken{}
	err := r.db.QueryRowContext(ctx, query, token).Scan(
		&rt.ID, &rt.Token, &rt.UserID, &rt.CreatedAt, &rt.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTokenNotFound
		}
		return nil, err
	}

	return rt, nil
}

// Redeem deletes the token row and applies the new password hash to its
// user within a single transaction. The delete gates the update on its
// affected-row count, so of two concurrent redemptions of the same
// token exactly one deletes the row and applies the password; the other
// gets ErrTokenNotFound and changes nothing.
func (r *ResetTokenRepository) Redeem(ctx context.Context, token string, userID int64, passwordHash string) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin redeem tx: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	result, err := tx.ExecContext(ctx, `DELETE FROM reset_tokens WHERE token = ?`, token)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rowsAffected == 0 {
		return ErrTokenNotFound
	}

	if _, err = tx.ExecContext(ctx, `UPDATE users SET password_hash = ? WHERE id = ?`, passwordHash, userID); err != nil {
		return err
	}

	return tx.Commit()
}
