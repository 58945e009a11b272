// ABOUTME: Auth session CRUD for the SQLite store
// ABOUTME: Sessions tie issued tokens to users; deletes are idempotent

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// CreateSession inserts a new session row for an issued token.
func (s *SQLiteStore) CreateSession(ctx context.Context, session *Session) error {
	query := `
		INSERT INTO auth_sessions (id, token, user_id, expires_at, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		session.ID,
		session.Token,
		session.UserID,
		formatTime(session.ExpiresAt),
		formatTime(session.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting session: %w", err)
	}

	s.logger.Debug("created session", "id", session.ID, "user_id", session.UserID)
	return nil
}

// GetSession retrieves a session by ID. Returns ErrNotFound if absent.
func (s *SQLiteStore) GetSession(ctx context.Context, id string) (*Session, error) {
	return s.getSession(ctx, "id = ?", id)
}

// GetSessionByToken retrieves a session by its token string.
// Returns ErrNotFound if absent.
func (s *SQLiteStore) GetSessionByToken(ctx context.Context, token string) (*Session, error) {
	return s.getSession(ctx, "token = ?", token)
}

func (s *SQLiteStore) getSession(ctx context.Context, where string, arg any) (*Session, error) {
	query := `
		SELECT id, token, user_id, expires_at, created_at
		FROM auth_sessions
		WHERE ` + where

	var session Session
	var expiresAtStr, createdAtStr string

	err := s.db.QueryRowContext(ctx, query, arg).Scan(
		&session.ID,
		&session.Token,
		&session.UserID,
		&expiresAtStr,
		&createdAtStr,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying session: %w", err)
	}

	if session.ExpiresAt, err = parseTime(expiresAtStr); err != nil {
		return nil, err
	}
	if session.CreatedAt, err = parseTime(createdAtStr); err != nil {
		return nil, err
	}

	return &session, nil
}

// ListSessionsByUser returns all sessions for a user, newest first.
func (s *SQLiteStore) ListSessionsByUser(ctx context.Context, userID string) ([]*Session, error) {
	query := `
		SELECT id, token, user_id, expires_at, created_at
		FROM auth_sessions
		WHERE user_id = ?
		ORDER BY created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*Session
	for rows.Next() {
		var session Session
		var expiresAtStr, createdAtStr string

		if err := rows.Scan(
			&session.ID,
			&session.Token,
			&session.UserID,
			&expiresAtStr,
			&createdAtStr,
		); err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}

		if session.ExpiresAt, err = parseTime(expiresAtStr); err != nil {
			return nil, err
		}
		if session.CreatedAt, err = parseTime(createdAtStr); err != nil {
			return nil, err
		}

		sessions = append(sessions, &session)
	}

	return sessions, rows.Err()
}

// DeleteSession removes a session by ID. Deleting a non-existent session
// is not an error.
func (s *SQLiteStore) DeleteSession(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM auth_sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

// DeleteSessionByToken removes the session holding the given token.
// Deleting a non-existent session is not an error.
func (s *SQLiteStore) DeleteSessionByToken(ctx context.Context, token string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM auth_sessions WHERE token = ?`, token)
	if err != nil {
		return fmt.Errorf("deleting session by token: %w", err)
	}
	return nil
}
