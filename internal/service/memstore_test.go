package service

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/inkwell/inkwell-go/internal/model"
	"github.com/inkwell/inkwell-go/internal/repository"
)

// In-memory store implementations backing the service tests. They
// enforce the same uniqueness and not-found semantics as the MySQL
// repositories, including the atomic delete-then-update redemption.

type memUserStore struct {
	mu     sync.Mutex
	nextID int64
	users  map[int64]*model.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{nextID: 1, users: make(map[int64]*model.User)}
}

func (s *memUserStore) Create(_ context.Context, user *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == user.Username {
			return repository.ErrDuplicateUsername
		}
		if u.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}

	user.ID = s.nextID
	user.CreatedAt = time.Now()
	s.nextID++

	stored := *user
	s.users[user.ID] = &stored
	return nil
}

func (s *memUserStore) GetByUsername(_ context.Context, username string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (s *memUserStore) GetByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (s *memUserStore) GetByID(_ context.Context, id int64) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (s *memUserStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

func (s *memUserStore) passwordHash(id int64) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok {
		return u.PasswordHash
	}
	return ""
}

type memPostStore struct {
	mu     sync.Mutex
	nextID int64
	posts  []model.Post

	// clock stamps CreatedAt so ordering tests can control time.
	clock func() time.Time
}

func newMemPostStore() *memPostStore {
	return &memPostStore{nextID: 1, clock: time.Now}
}

func (s *memPostStore) Create(_ context.Context, post *model.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	post.ID = s.nextID
	post.CreatedAt = s.clock()
	s.nextID++

	s.posts = append(s.posts, *post)
	return nil
}

func (s *memPostStore) ListNewestFirst(_ context.Context) ([]model.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Post, len(s.posts))
	copy(out, s.posts)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		// Within a timestamp tie, insertion order: lower id first.
		return out[i].ID < out[j].ID
	})
	return out, nil
}

type memResetStore struct {
	mu     sync.Mutex
	nextID int64
	tokens map[string]*model.ResetToken
	users  *memUserStore
}

func newMemResetStore(users *memUserStore) *memResetStore {
	return &memResetStore{nextID: 1, tokens: make(map[string]*model.ResetToken), users: users}
}

func (s *memResetStore) Create(_ context.Context, token *model.ResetToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	token.ID = s.nextID
	token.CreatedAt = time.Now()
	s.nextID++

	stored := *token
	s.tokens[token.Token] = &stored
	return nil
}

func (s *memResetStore) GetByToken(_ context.Context, token string) (*model.ResetToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rt, ok := s.tokens[token]
	if !ok {
		return nil, repository.ErrTokenNotFound
	}
	copied := *rt
	return &copied, nil
}

func (s *memResetStore) Redeem(_ context.Context, token string, userID int64, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tokens[token]; !ok {
		return repository.ErrTokenNotFound
	}
	delete(s.tokens, token)

	s.users.mu.Lock()
	defer s.users.mu.Unlock()
	if u, ok := s.users.users[userID]; ok {
		u.PasswordHash = passwordHash
	}
	return nil
}

func (s *memResetStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tokens)
}
