// ABOUTME: Response envelope helpers and JSON views of store entities
// ABOUTME: Every response is {success,data} or {success,error} with a matching status

package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/2389/taskdeck/internal/store"
)

// UserResponse is the JSON view of a user. The password hash never
// leaves the store layer.
type UserResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// TaskResponse is the JSON view of a task.
type TaskResponse struct {
	ID          string   `json:"id"`
	UserID      string   `json:"userId"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Status      string   `json:"status"`
	Priority    string   `json:"priority"`
	Tags        []string `json:"tags"`
	DueDate     string   `json:"dueDate,omitempty"`
	CompletedAt string   `json:"completedAt,omitempty"`
	IsPrivate   bool     `json:"isPrivate"`
	CreatedAt   string   `json:"createdAt"`
	UpdatedAt   string   `json:"updatedAt"`
}

// SessionResponse is the JSON view of an auth session.
type SessionResponse struct {
	ID        string `json:"id"`
	Token     string `json:"token"`
	ExpiresAt string `json:"expiresAt"`
	UserID    string `json:"userId"`
	CreatedAt string `json:"createdAt"`
}

// TaskListResponse is the paginated JSON response for GET /api/tasks.
type TaskListResponse struct {
	Items      []TaskResponse `json:"items"`
	Total      int            `json:"total"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"totalPages"`
}

func userView(user *store.User) UserResponse {
	return UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: user.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func taskView(task *store.Task) TaskResponse {
	resp := TaskResponse{
		ID:          task.ID,
		UserID:      task.UserID,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		Priority:    task.Priority,
		Tags:        task.Tags,
		IsPrivate:   task.IsPrivate,
		CreatedAt:   task.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   task.UpdatedAt.UTC().Format(time.RFC3339),
	}
	if task.DueDate != nil {
		resp.DueDate = task.DueDate.UTC().Format(time.RFC3339)
	}
	if task.CompletedAt != nil {
		resp.CompletedAt = task.CompletedAt.UTC().Format(time.RFC3339)
	}
	return resp
}

func taskViews(tasks []*store.Task) []TaskResponse {
	views := make([]TaskResponse, 0, len(tasks))
	for _, task := range tasks {
		views = append(views, taskView(task))
	}
	return views
}

func sessionView(session *store.Session) SessionResponse {
	return SessionResponse{
		ID:        session.ID,
		Token:     session.Token,
		ExpiresAt: session.ExpiresAt.UTC().Format(time.RFC3339),
		UserID:    session.UserID,
		CreatedAt: session.CreatedAt.UTC().Format(time.RFC3339),
	}
}

type successEnvelope struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

type errorEnvelope struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// respondData writes a success envelope with the given status.
func respondData(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(successEnvelope{Success: true, Data: data})
}

// respondError writes an error envelope with the given status.
func respondError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorEnvelope{Success: false, Error: msg})
}

// respondStoreError maps a store failure to the API envelope. ErrNotFound
// becomes a 404 with the given message; anything else is a 500 carrying
// the error text.
func respondStoreError(w http.ResponseWriter, err error, notFoundMsg string) {
	if errors.Is(err, store.ErrNotFound) {
		respondError(w, http.StatusNotFound, notFoundMsg)
		return
	}
	respondError(w, http.StatusInternalServerError, err.Error())
}
