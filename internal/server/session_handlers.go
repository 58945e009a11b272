// ABOUTME: Session introspection handlers for listing and revoking sessions
// ABOUTME: Foreign sessions are indistinguishable from absent ones (both 404)

package server

import (
	"net/http"

	"github.com/2389/taskdeck/internal/auth"
	"github.com/2389/taskdeck/internal/store"
)

// loadOwnSession fetches a session for the calling user. A session that
// does not exist and a session owned by someone else both report 404, so
// session ids cannot be probed across accounts.
func (s *Server) loadOwnSession(w http.ResponseWriter, r *http.Request, id string) *store.Session {
	session, err := s.store.GetSession(r.Context(), id)
	if err != nil {
		respondStoreError(w, err, "Session not found")
		return nil
	}

	claims := auth.MustFromContext(r.Context())
	if session.UserID != claims.UserID {
		respondError(w, http.StatusNotFound, "Session not found")
		return nil
	}

	return session
}

// handleListSessions handles GET /api/auth-sessions.
func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	claims := auth.MustFromContext(r.Context())

	sessions, err := s.store.ListSessionsByUser(r.Context(), claims.UserID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	views := make([]SessionResponse, 0, len(sessions))
	for _, session := range sessions {
		views = append(views, sessionView(session))
	}
	respondData(w, http.StatusOK, views)
}

// handleGetSession handles GET /api/auth-sessions/{id}.
func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	session := s.loadOwnSession(w, r, r.PathValue("id"))
	if session == nil {
		return
	}
	respondData(w, http.StatusOK, sessionView(session))
}

// handleDeleteSession handles DELETE /api/auth-sessions/{id}.
func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	session := s.loadOwnSession(w, r, r.PathValue("id"))
	if session == nil {
		return
	}

	if err := s.store.DeleteSession(r.Context(), session.ID); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondData(w, http.StatusOK, map[string]string{"id": session.ID})
}
