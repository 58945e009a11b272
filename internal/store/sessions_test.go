// ABOUTME: Tests for auth session CRUD in the SQLite store
// ABOUTME: Covers token lookup, listing order, and idempotent deletes

package store

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
)

func newTestSession(t *testing.T, s *SQLiteStore, userID, token string, createdAt time.Time) *Session {
	t.Helper()
	session := &Session{
		ID:        uuid.New().String(),
		Token:     token,
		UserID:    userID,
		ExpiresAt: createdAt.Add(15 * time.Minute),
		CreatedAt: createdAt,
	}
	if err := s.CreateSession(context.Background(), session); err != nil {
		t.Fatalf("CreateSession failed: %v", err)
	}
	return session
}

func TestCreateAndGetSession(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()
	ctx := context.Background()

	user := newTestUser(t, store, "alex@example.com")
	now := time.Now().UTC()
	session := newTestSession(t, store, user.ID, "tok-abc", now)

	got, err := store.GetSession(ctx, session.ID)
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if got.Token != "tok-abc" {
		t.Errorf("Token = %q, want %q", got.Token, "tok-abc")
	}
	if got.UserID != user.ID {
		t.Errorf("UserID = %q, want %q", got.UserID, user.ID)
	}
	if !got.ExpiresAt.Equal(session.ExpiresAt) {
		t.Errorf("ExpiresAt = %v, want %v", got.ExpiresAt, session.ExpiresAt)
	}
}

func TestGetSessionByToken(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()
	ctx := context.Background()

	user := newTestUser(t, store, "alex@example.com")
	session := newTestSession(t, store, user.ID, "tok-abc", time.Now().UTC())

	got, err := store.GetSessionByToken(ctx, "tok-abc")
	if err != nil {
		t.Fatalf("GetSessionByToken failed: %v", err)
	}
	if got.ID != session.ID {
		t.Errorf("ID = %q, want %q", got.ID, session.ID)
	}

	_, err = store.GetSessionByToken(ctx, "unknown-token")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("GetSessionByToken error = %v, want ErrNotFound", err)
	}
}

func TestListSessionsByUser_NewestFirst(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()
	ctx := context.Background()

	user := newTestUser(t, store, "alex@example.com")
	other := newTestUser(t, store, "blake@example.com")

	base := time.Now().UTC().Add(-time.Hour)
	for i := 0; i < 3; i++ {
		newTestSession(t, store, user.ID, fmt.Sprintf("tok-%d", i), base.Add(time.Duration(i)*time.Minute))
	}
	newTestSession(t, store, other.ID, "tok-other", base)

	sessions, err := store.ListSessionsByUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("ListSessionsByUser failed: %v", err)
	}
	if len(sessions) != 3 {
		t.Fatalf("got %d sessions, want 3", len(sessions))
	}
	if sessions[0].Token != "tok-2" {
		t.Errorf("first session = %q, want newest (tok-2)", sessions[0].Token)
	}
}

func TestListSessionsByUser_AllowsConcurrentSessions(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()

	user := newTestUser(t, store, "alex@example.com")
	now := time.Now().UTC()
	newTestSession(t, store, user.ID, "tok-1", now)
	newTestSession(t, store, user.ID, "tok-2", now.Add(time.Second))

	sessions, err := store.ListSessionsByUser(context.Background(), user.ID)
	if err != nil {
		t.Fatalf("ListSessionsByUser failed: %v", err)
	}
	if len(sessions) != 2 {
		t.Errorf("got %d sessions, want 2 concurrent sessions", len(sessions))
	}
}

func TestDeleteSession_Idempotent(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()
	ctx := context.Background()

	user := newTestUser(t, store, "alex@example.com")
	session := newTestSession(t, store, user.ID, "tok-abc", time.Now().UTC())

	if err := store.DeleteSession(ctx, session.ID); err != nil {
		t.Fatalf("DeleteSession failed: %v", err)
	}
	if _, err := store.GetSession(ctx, session.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetSession after delete error = %v, want ErrNotFound", err)
	}
	if err := store.DeleteSession(ctx, session.ID); err != nil {
		t.Errorf("second DeleteSession failed: %v", err)
	}
}

func TestDeleteSessionByToken_Idempotent(t *testing.T) {
	store := newTestStore(t)
	defer store.Close()
	ctx := context.Background()

	user := newTestUser(t, store, "alex@example.com")
	newTestSession(t, store, user.ID, "tok-abc", time.Now().UTC())

	if err := store.DeleteSessionByToken(ctx, "tok-abc"); err != nil {
		t.Fatalf("DeleteSessionByToken failed: %v", err)
	}
	if _, err := store.GetSessionByToken(ctx, "tok-abc"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetSessionByToken after delete error = %v, want ErrNotFound", err)
	}
	if err := store.DeleteSessionByToken(ctx, "tok-abc"); err != nil {
		t.Errorf("second DeleteSessionByToken failed: %v", err)
	}
}
