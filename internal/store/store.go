// ABOUTME: Store interface and data types for taskdeck persistence
// ABOUTME: Defines User, Task, Session structs and the Store interface

package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested entity does not exist
var ErrNotFound = errors.New("not found")

// ErrEmailTaken is returned when creating or updating a user with an
// email that another user already has
var ErrEmailTaken = errors.New("email already registered")

// Task status constants
const (
	TaskStatusTodo       = "todo"
	TaskStatusInProgress = "in_progress"
	TaskStatusDone       = "done"
)

// Task priority constants
const (
	TaskPriorityLow    = "low"
	TaskPriorityMedium = "medium"
	TaskPriorityHigh   = "high"
)

// ValidTaskStatus reports whether s is a known task status.
func ValidTaskStatus(s string) bool {
	return s == TaskStatusTodo || s == TaskStatusInProgress || s == TaskStatusDone
}

// ValidTaskPriority reports whether p is a known task priority.
func ValidTaskPriority(p string) bool {
	return p == TaskPriorityLow || p == TaskPriorityMedium || p == TaskPriorityHigh
}

// User represents a registered account
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Task represents a single task owned by a user
type Task struct {
	ID          string
	UserID      string
	Title       string
	Description string
	Status      string // todo, in_progress, done
	Priority    string // low, medium, high
	Tags        []string
	DueDate     *time.Time
	CompletedAt *time.Time
	IsPrivate   bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Session represents one issued bearer token
type Session struct {
	ID        string
	Token     string
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}

// TaskFilter narrows and paginates task listings. UserID is required;
// everything else is optional. Page is 1-based.
type TaskFilter struct {
	UserID    string
	Status    string
	Priority  string
	DueBefore *time.Time
	Query     string // case-insensitive match against title and description
	Page      int
	Limit     int
}

// StatusCounts holds per-status task totals for the dashboard
type StatusCounts struct {
	Todo       int
	InProgress int
	Done       int
}

// Store defines the interface for user, task, and session persistence
type Store interface {
	// Users
	CreateUser(ctx context.Context, user *User) error
	GetUser(ctx context.Context, id string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	ListUsers(ctx context.Context) ([]*User, error)
	UpdateUser(ctx context.Context, user *User) error
	DeleteUser(ctx context.Context, id string) error

	// Tasks
	CreateTask(ctx context.Context, task *Task) error
	GetTask(ctx context.Context, id string) (*Task, error)
	ListTasks(ctx context.Context, filter TaskFilter) ([]*Task, int, error)
	UpdateTask(ctx context.Context, task *Task) error
	DeleteTask(ctx context.Context, id string) error

	// Dashboard aggregates
	CountTasksByStatus(ctx context.Context, userID string) (StatusCounts, error)
	ListTasksDueBefore(ctx context.Context, userID string, cutoff time.Time, limit int) ([]*Task, error)
	ListTasksCreatedSince(ctx context.Context, userID string, since time.Time, limit int) ([]*Task, error)

	// Sessions
	CreateSession(ctx context.Context, session *Session) error
	GetSession(ctx context.Context, id string) (*Session, error)
	GetSessionByToken(ctx context.Context, token string) (*Session, error)
	ListSessionsByUser(ctx context.Context, userID string) ([]*Session, error)
	DeleteSession(ctx context.Context, id string) error
	DeleteSessionByToken(ctx context.Context, token string) error

	// Ping verifies the backing database is reachable
	Ping(ctx context.Context) error

	// Close releases any resources held by the store
	Close() error
}
