package service

import (
	"context"
	"errors"

	"github.com/inkwell/inkwell-go/internal/model"
)

var (
	ErrTitleRequired   = errors.New("title is required")
	ErrContentRequired = errors.New("content is required")
)

// PostService handles blog post business logic. Authorship is taken
// from the authenticated caller, never from the form.
type PostService struct {
	posts PostStore
}

// NewPostService creates a new PostService.
func NewPostService(posts PostStore) *PostService {
	return &PostService{posts: posts}
}

// Create stores a new post authored by the given user.
func (s *PostService) Create(ctx context.Context, author *model.User, req model.CreatePostRequest) (*model.Post, error) {
	if req.Title == "" {
		return nil, ErrTitleRequired
	}
	if req.Content == "" {
		return nil, ErrContentRequired
	}

	post := &model.Post{
		UserID:        author.ID,
		Title:         req.Title,
		Content:       req.Content,
		ImageFilename: req.ImageFilename,
	}

	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

// List returns all posts, newest first.
func (s *PostService) List(ctx context.Context) ([]model.Post, error) {
	return s.posts.ListNewestFirst(ctx)
}
