// ABOUTME: User directory and self-service account handlers
// ABOUTME: Single-user routes are self-only and reject foreign ids before loading

package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/2389/taskdeck/internal/auth"
	"github.com/2389/taskdeck/internal/store"
)

type updateUserRequest struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// handleListUsers handles GET /api/users. Any authenticated caller may
// list the directory; only public fields are returned.
func (s *Server) handleListUsers(w http.ResponseWriter, r *http.Request) {
	users, err := s.store.ListUsers(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	views := make([]UserResponse, 0, len(users))
	for _, user := range users {
		views = append(views, userView(user))
	}
	respondData(w, http.StatusOK, views)
}

// handleCreateUser handles POST /api/users. Validation matches register,
// but no session is issued for the new account.
func (s *Server) handleCreateUser(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if msg := validateCredentials(req.Name, req.Email, req.Password); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	now := time.Now().UTC()
	user := &store.User{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.store.CreateUser(r.Context(), user); err != nil {
		if errors.Is(err, store.ErrEmailTaken) {
			respondError(w, http.StatusBadRequest, "Email already registered")
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondData(w, http.StatusCreated, userView(user))
}

// requireSelf enforces the self-only rule for /api/users/{id} routes.
// The path id is compared against the token subject before any store
// access, so a foreign id gets 403 whether or not the account exists.
func (s *Server) requireSelf(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.PathValue("id")
	claims := auth.MustFromContext(r.Context())
	if id != claims.UserID {
		respondError(w, http.StatusForbidden, "Forbidden")
		return "", false
	}
	return id, true
}

// handleGetUser handles GET /api/users/{id}.
func (s *Server) handleGetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := s.requireSelf(w, r)
	if !ok {
		return
	}

	user, err := s.store.GetUser(r.Context(), id)
	if err != nil {
		respondStoreError(w, err, "User not found")
		return
	}

	respondData(w, http.StatusOK, userView(user))
}

// handleUpdateUser handles PUT /api/users/{id}. Absent fields are left
// unchanged; a new password is re-hashed before storage.
func (s *Server) handleUpdateUser(w http.ResponseWriter, r *http.Request) {
	id, ok := s.requireSelf(w, r)
	if !ok {
		return
	}

	var req updateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		respondError(w, http.StatusBadRequest, "Name is required")
		return
	}
	if req.Email != nil && !validEmail(*req.Email) {
		respondError(w, http.StatusBadRequest, "Invalid email")
		return
	}
	if req.Password != nil && len(*req.Password) < MinPasswordLength {
		respondError(w, http.StatusBadRequest, "Password must be at least 8 characters")
		return
	}

	user, err := s.store.GetUser(r.Context(), id)
	if err != nil {
		respondStoreError(w, err, "User not found")
		return
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.Password != nil {
		hash, err := auth.HashPassword(*req.Password)
		if err != nil {
			respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		user.PasswordHash = hash
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.store.UpdateUser(r.Context(), user); err != nil {
		if errors.Is(err, store.ErrEmailTaken) {
			respondError(w, http.StatusBadRequest, "Email already registered")
			return
		}
		respondStoreError(w, err, "User not found")
		return
	}

	respondData(w, http.StatusOK, userView(user))
}

// handleDeleteUser handles DELETE /api/users/{id}. Tasks and sessions go
// with the account via foreign key cascade.
func (s *Server) handleDeleteUser(w http.ResponseWriter, r *http.Request) {
	id, ok := s.requireSelf(w, r)
	if !ok {
		return
	}

	if _, err := s.store.GetUser(r.Context(), id); err != nil {
		respondStoreError(w, err, "User not found")
		return
	}

	if err := s.store.DeleteUser(r.Context(), id); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.logger.Info("user deleted", "user_id", id)
	respondData(w, http.StatusOK, map[string]string{"id": id})
}
