// ABOUTME: Tests for user CRUD in the SQLite store
// ABOUTME: Covers email uniqueness, lookups, listing order, update, delete

package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestCreateAndGetUser(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()
	ctx := context.Background()

	user := newTestUser(t, store, "alex@example.com")

	got, err := store.GetUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetUser failed: %v", err)
	}
	if got.Email != "alex@example.com" {
		t.Errorf("Email = %q, want %q", got.Email, "alex@example.com")
	}
	if got.Name != user.Name {
		t.Errorf("Name = %q, want %q", got.Name, user.Name)
	}
	if got.PasswordHash != user.PasswordHash {
		t.Error("PasswordHash was not persisted")
	}
}

func TestCreateUser_DuplicateEmail(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()
	ctx := context.Background()

	newTestUser(t, store, "alex@example.com")

	now := time.Now().UTC()
	dup := &User{
		ID:           uuid.New().String(),
		Name:         "Other",
		Email:        "alex@example.com",
		PasswordHash: "hash",
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err := store.CreateUser(ctx, dup)
	if !errors.Is(err, ErrEmailTaken) {
		t.Errorf("CreateUser error = %v, want ErrEmailTaken", err)
	}
}

func TestGetUserByEmail(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()
	ctx := context.Background()

	user := newTestUser(t, store, "alex@example.com")

	got, err := store.GetUserByEmail(ctx, "alex@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail failed: %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("ID = %q, want %q", got.ID, user.ID)
	}

	_, err = store.GetUserByEmail(ctx, "nobody@example.com")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("GetUserByEmail error = %v, want ErrNotFound", err)
	}
}

func TestGetUser_NotFound(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()

	_, err := store.GetUser(context.Background(), "missing-id")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("GetUser error = %v, want ErrNotFound", err)
	}
}

func TestListUsers_NewestFirst(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()
	ctx := context.Background()

	base := time.Now().UTC().Add(-time.Hour)
	for i, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		now := base.Add(time.Duration(i) * time.Minute)
		user := &User{
			ID:           uuid.New().String(),
			Name:         "User",
			Email:        email,
			PasswordHash: "hash",
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := store.CreateUser(ctx, user); err != nil {
			t.Fatalf("CreateUser failed: %v", err)
		}
	}

	users, err := store.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers failed: %v", err)
	}
	if len(users) != 3 {
		t.Fatalf("got %d users, want 3", len(users))
	}
	if users[0].Email != "c@example.com" {
		t.Errorf("first user = %q, want newest (c@example.com)", users[0].Email)
	}
}

func TestUpdateUser(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()
	ctx := context.Background()

	user := newTestUser(t, store, "alex@example.com")

	user.Name = "Alex R."
	user.Email = "alex.r@example.com"
	user.UpdatedAt = time.Now().UTC()
	if err := store.UpdateUser(ctx, user); err != nil {
		t.Fatalf("UpdateUser failed: %v", err)
	}

	got, err := store.GetUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetUser failed: %v", err)
	}
	if got.Name != "Alex R." || got.Email != "alex.r@example.com" {
		t.Errorf("update not persisted: got %q %q", got.Name, got.Email)
	}
}

func TestUpdateUser_NotFound(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()

	user := &User{ID: "missing", Name: "x", Email: "x@example.com", UpdatedAt: time.Now()}
	if err := store.UpdateUser(context.Background(), user); !errors.Is(err, ErrNotFound) {
		t.Errorf("UpdateUser error = %v, want ErrNotFound", err)
	}
}

func TestUpdateUser_EmailTaken(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()
	ctx := context.Background()

	newTestUser(t, store, "taken@example.com")
	user := newTestUser(t, store, "alex@example.com")

	user.Email = "taken@example.com"
	user.UpdatedAt = time.Now().UTC()
	if err := store.UpdateUser(ctx, user); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("UpdateUser error = %v, want ErrEmailTaken", err)
	}
}

func TestDeleteUser_CascadesAndIdempotent(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()
	ctx := context.Background()

	user := newTestUser(t, store, "alex@example.com")

	now := time.Now().UTC()
	session := &Session{
		ID:        uuid.New().String(),
		Token:     "tok-1",
		UserID:    user.ID,
		ExpiresAt: now.Add(15 * time.Minute),
		CreatedAt: now,
	}
	if err := store.CreateSession(ctx, session); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}

	if err := store.DeleteUser(ctx, user.ID); err != nil {
		t.Fatalf("DeleteUser failed: %v", err)
	}

	if _, err := store.GetUser(ctx, user.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetUser after delete error = %v, want ErrNotFound", err)
	}

	// Sessions cascade with the user
	if _, err := store.GetSession(ctx, session.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetSession after user delete error = %v, want ErrNotFound", err)
	}

	// Deleting again is not an error
	if err := store.DeleteUser(ctx, user.ID); err != nil {
		t.Errorf("second DeleteUser failed: %v", err)
	}
}
