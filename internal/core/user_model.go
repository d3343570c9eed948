package core

import (
	"context"
	"time"
)

// User is an operator allowed to sign in and move stock.
type User struct {
	ID           int64
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	JobTitle     *string
	CreatedAt    time.Time
}

// UserInput holds the fields required to register a user. Password is
// plaintext and is hashed before storage.
type UserInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	JobTitle  string
}

// UserService provides user management and credential checks.
type UserService interface {
	// Create registers a user; DuplicateRecordError if the email is taken.
	Create(ctx context.Context, input UserInput) (*User, error)

	// GetByID returns a user by primary key.
	GetByID(ctx context.Context, id int64) (*User, error)

	// GetByEmail finds a user by email, case-insensitively.
	GetByEmail(ctx context.Context, email string) (*User, error)

	List(ctx context.Context) ([]User, error)
	Delete(ctx context.Context, id int64) error

	// Authenticate returns the user when password matches, ErrUnauthorized otherwise.
	Authenticate(ctx context.Context, email, password string) (*User, error)
}
