package model

import "time"

// Post represents a blog post. The author link is set at creation and
// never changes.
type Post struct {
	ID            int64
	UserID        int64
	Title         string
	Content       string
	ImageFilename string // empty when the post has no attachment
	CreatedAt     time.Time

	// AuthorName is filled by list queries that join users.
	AuthorName string
}

// CreatePostRequest carries the create-post form fields. ImageFilename
// is the stored name assigned by the upload store, not the client name.
type CreatePostRequest struct {
	Title         string
	Content       string
	ImageFilename string
}
