package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/inkwell/inkwell-go/internal/model"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrDuplicateUsername = errors.New("username already exists")
	ErrDuplicateEmail    = errors.New("email already exists")
)

// UserRepository handles user persistence operations.
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user and sets the generated ID on the user
// struct. Uniqueness of username and email is enforced by the database;
// violations come back as ErrDuplicateUsername or ErrDuplicateEmail.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	query := `INSERT INTO users (username, email, password_hash) VALUES (?, ?, ?)`

	result, err := r.db.ExecContext(ctx, query, user.Username, user.Email, user.PasswordHash)
	if err != nil {
		if dup, derr := duplicateKeyError(err); dup {
			return derr
		}
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	user.ID = id
	return nil
}

// GetByUsername retrieves a user by their username (exact match).
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*model.User, error) {
	query := `SELECT id, username, email, password_hash, created_at FROM users WHERE username = ?`
	return r.getOne(ctx, query, username)
}

// GetByEmail retrieves a user by their email address (exact match).
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT id, username, email, password_hash, created_at FROM users WHERE email = ?`
	return r.getOne(ctx, query, email)
}

// GetByID retrieves a user by their ID.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	query := `SELECT id, username, email, password_hash, created_at FROM users WHERE id = ?`
	return r.getOne(ctx, query, id)
}

func (r *UserRepository) getOne(ctx context.Context, query string, arg any) (*model.User, error) {
	user := &model.User{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash, &user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	return user, nil
}

// duplicateKeyError maps a MySQL duplicate-entry error (code 1062) to
// the sentinel for whichever unique index was violated. Only the index
// name after "for key" is inspected; the duplicated value earlier in
// the message may itself contain "email".
func duplicateKeyError(err error) (bool, error) {
	msg := err.Error()
	if !strings.Contains(msg, "Duplicate entry") {
		return false, nil
	}
	idx := strings.LastIndex(msg, "for key ")
	if idx >= 0 && strings.Contains(msg[idx:], "email") {
		return true, ErrDuplicateEmail
	}
	return true, ErrDuplicateUsername
}
