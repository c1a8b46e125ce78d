package model

import "time"

// User represents a registered account.
type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// SignupRequest carries the signup form fields.
type SignupRequest struct {
	Username string
	Email    string
	Password string
}

// LoginRequest carries the login form fields.
type LoginRequest struct {
	Username string
	Password string
}
