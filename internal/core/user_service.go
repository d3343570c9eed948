package core

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"warehouse-inventory/internal/db"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

// minPasswordLength applies to new accounts only.
const minPasswordLength = 8

type userService struct {
	pool *pgxpool.Pool
}

// NewUserService constructs a UserService backed by PostgreSQL.
func NewUserService(pool *pgxpool.Pool) UserService {
	return &userService{pool: pool}
}

const selectUser = `
	SELECT id, first_name, last_name, email, password_hash, job_title, created_at
	FROM users`

func scanUser(row pgx.Row) (*User, error) {
	u := &User{}
	if err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email,
		&u.PasswordHash, &u.JobTitle, &u.CreatedAt); err != nil {
		return nil, err
	}
	return u, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *userService) Create(ctx context.Context, input UserInput) (*User, error) {
	email := normalizeEmail(input.Email)
	switch {
	case email == "" || !strings.Contains(email, "@"):
		return nil, invalidField("email", "a valid email is required")
	case strings.TrimSpace(input.FirstName) == "" || strings.TrimSpace(input.LastName) == "":
		return nil, invalidField("name", "first and last name are required")
	case len(input.Password) < minPasswordLength:
		return nil, invalidField("password", fmt.Sprintf("must be at least %d characters", minPasswordLength))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u, err := scanUser(s.pool.QueryRow(ctx, `
		INSERT INTO users (first_name, last_name, email, password_hash, job_title)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, first_name, last_name, email, password_hash, job_title, created_at`,
		strings.TrimSpace(input.FirstName), strings.TrimSpace(input.LastName),
		email, string(hash), toPtr(input.JobTitle),
	))
	if db.ErrorCode(err) == db.CodeUniqueViolation {
		return nil, &DuplicateRecordError{Entity: "user", Key: fmt.Sprintf("%q", email)}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create user %q: %w", email, err)
	}
	return u, nil
}

func (s *userService) GetByID(ctx context.Context, id int64) (*User, error) {
	u, err := scanUser(s.pool.QueryRow(ctx, selectUser+" WHERE id = $1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, notFoundID("user", id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user %d: %w", id, err)
	}
	return u, nil
}

func (s *userService) GetByEmail(ctx context.Context, email string) (*User, error) {
	email = normalizeEmail(email)
	u, err := scanUser(s.pool.QueryRow(ctx, selectUser+" WHERE email = $1", email))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, &NotFoundError{Entity: "user", Key: fmt.Sprintf("%q", email)}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user %q: %w", email, err)
	}
	return u, nil
}

func (s *userService) List(ctx context.Context) ([]User, error) {
	rows, err := s.pool.Query(ctx, selectUser+" ORDER BY last_name, first_name, id")
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := []User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func (s *userService) Delete(ctx context.Context, id int64) error {
	tag, err := s.pool.Exec(ctx, "DELETE FROM users WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete user %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return notFoundID("user", id)
	}
	return nil
}

func (s *userService) Authenticate(ctx context.Context, email, password string) (*User, error) {
	u, err := s.GetByEmail(ctx, email)
	if errors.Is(err, ErrNotFound) {
		return nil, ErrUnauthorized
	}
	if err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrUnauthorized
	}
	return u, nil
}
