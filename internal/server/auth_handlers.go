// ABOUTME: Registration, login, logout, and current-user handlers
// ABOUTME: Issues JWT bearer tokens and records sessions on register/login

package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/2389/taskdeck/internal/auth"
	"github.com/2389/taskdeck/internal/store"
)

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 8

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

// validEmail reports whether the address parses as a bare RFC 5322 address.
func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}

// validateCredentials checks the shared register/create-user fields.
// Returns an error message, empty if valid.
func validateCredentials(name, email, password string) string {
	if strings.TrimSpace(name) == "" {
		return "Name is required"
	}
	if !validEmail(email) {
		return "Invalid email"
	}
	if len(password) < MinPasswordLength {
		return "Password must be at least 8 characters"
	}
	return ""
}

// issueSession signs a token for the user and records the session row.
func (s *Server) issueSession(r *http.Request, user *store.User) (string, error) {
	token, err := s.codec.Sign(auth.Claims{UserID: user.ID, Email: user.Email})
	if err != nil {
		return "", err
	}

	now := time.Now().UTC()
	session := &store.Session{
		ID:        uuid.New().String(),
		Token:     token,
		UserID:    user.ID,
		ExpiresAt: now.Add(s.codec.TTL()),
		CreatedAt: now,
	}
	if err := s.store.CreateSession(r.Context(), session); err != nil {
		return "", err
	}

	return token, nil
}

// handleRegister handles POST /api/auth/register.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
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

	token, err := s.issueSession(r, user)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.logger.Info("user registered", "user_id", user.ID)
	respondData(w, http.StatusCreated, authResponse{User: userView(user), Token: token})
}

// handleLogin handles POST /api/auth/login.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if !validEmail(req.Email) || req.Password == "" {
		respondError(w, http.StatusBadRequest, "Invalid data")
		return
	}

	user, err := s.store.GetUserByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			// Burn a hash comparison so response timing does not
			// reveal whether the account exists
			auth.CheckDummyPassword(req.Password)
			respondError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if !auth.CheckPassword(req.Password, user.PasswordHash) {
		respondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	token, err := s.issueSession(r, user)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.logger.Info("user logged in", "user_id", user.ID)
	respondData(w, http.StatusOK, authResponse{User: userView(user), Token: token})
}

// handleLogout handles POST /api/auth/logout. Deletes the session row for
// the presented token; the token itself stays cryptographically valid
// until its expiry.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	token, err := auth.ExtractBearerToken(r.Header.Get("Authorization"))
	if err != nil {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	if err := s.store.DeleteSessionByToken(r.Context(), token); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondData(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

// handleMe handles GET /api/auth/me.
func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	claims := auth.MustFromContext(r.Context())

	user, err := s.store.GetUser(r.Context(), claims.UserID)
	if err != nil {
		respondStoreError(w, err, "User not found")
		return
	}

	respondData(w, http.StatusOK, userView(user))
}
