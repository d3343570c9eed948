package core_test

import (
	"context"
	"errors"
	"testing"

	"warehouse-inventory/internal/core"
)

func TestUsers_CreateAndAuthenticate(t *testing.T) {
	pool := setupTestDB(t)
	svc := core.NewUserService(pool)
	ctx := context.Background()

	u, err := svc.Create(ctx, core.UserInput{
		FirstName: "Ada", LastName: "Lovelace", Email: " Ada@Example.test ", Password: "correct-horse",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if u.Email != "ada@example.test" {
		t.Errorf("expected normalized email, got %q", u.Email)
	}
	if u.PasswordHash == "correct-horse" {
		t.Error("password stored in plaintext")
	}

	if _, err := svc.Create(ctx, core.UserInput{
		FirstName: "A", LastName: "L", Email: "ada@example.test", Password: "another-pass",
	}); !errors.Is(err, core.ErrDuplicateRecord) {
		t.Errorf("expected ErrDuplicateRecord for reused email, got %v", err)
	}

	got, err := svc.Authenticate(ctx, "ADA@example.test", "correct-horse")
	if err != nil {
		t.Fatalf("Authenticate failed: %v", err)
	}
	if got.ID != u.ID {
		t.Errorf("authenticated wrong user: %d != %d", got.ID, u.ID)
	}
	if _, err := svc.Authenticate(ctx, "ada@example.test", "wrong"); !errors.Is(err, core.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized for wrong password, got %v", err)
	}
	if _, err := svc.Authenticate(ctx, "nobody@example.test", "x"); !errors.Is(err, core.ErrUnauthorized) {
		t.Errorf("expected ErrUnauthorized for unknown email, got %v", err)
	}

	if err := svc.Delete(ctx, u.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := svc.GetByID(ctx, u.ID); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("expected deleted user to be gone, got %v", err)
	}
}

func TestUsers_CreateValidation(t *testing.T) {
	pool := setupTestDB(t)
	svc := core.NewUserService(pool)

	_, err := svc.Create(context.Background(), core.UserInput{
		FirstName: "Short", LastName: "Pass", Email: "s@example.test", Password: "123",
	})
	if !errors.Is(err, core.ErrValidation) {
		t.Errorf("expected ErrValidation for short password, got %v", err)
	}
}
