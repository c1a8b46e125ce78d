package repository

import (
	"context"
	"database/sql"

	"github.com/inkwell/inkwell-go/internal/model"
)

// PostRepository handles blog post persistence operations.
type PostRepository struct {
	db *sql.DB
}

// NewPostRepository creates a new PostRepository.
func NewPostRepository(db *sql.DB) *PostRepository {
	return &PostRepository{db: db}
}

// Create inserts a new post and sets the generated ID on the post
// struct. An empty ImageFilename is stored as NULL.
func (r *PostRepository) Create(ctx context.Context, post *model.Post) error {
	query := `INSERT INTO posts (user_id, title, content, image_filename) VALUES (?, ?, ?, ?)`

	var image any
	if post.ImageFilename != "" {
		image = post.ImageFilename
	}

	result, err := r.db.ExecContext(ctx, query, post.UserID, post.Title, post.Content, image)
	if err != nil {
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}

	post.ID = id
	return nil
}

// ListNewestFirst retrieves all posts ordered newest first, with the
// author's username joined in. Posts sharing a creation timestamp stay
// in insertion order: the ascending id tiebreaker puts the earlier
// insert first within the tie.
func (r *PostRepository) ListNewestFirst(ctx context.Context) ([]model.Post, error) {
	query := `SELECT p.id, p.user_id, p.title, p.content, p.image_filename, p.created_at, u.username
		FROM posts p
		JOIN users u ON u.id = p.user_id
		ORDER BY p.created_at DESC, p.id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []model.Post
	for rows.Next() {
		var p model.Post
		var image sql.NullString
		if err := rows.Scan(
			&p.ID, &p.UserID, &p.Title, &p.Content, &image, &p.CreatedAt, &p.AuthorName,
		); err != nil {
			return nil, err
		}
		p.ImageFilename = image.String
		posts = append(posts, p)
	}

	return posts, rows.Err()
}
