// ABOUTME: HTTP server assembly for the taskdeck API
// ABOUTME: Wires store and token codec into routes and manages graceful shutdown

package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/2389/taskdeck/internal/auth"
	"github.com/2389/taskdeck/internal/store"
)

// Server handles taskdeck API routes
type Server struct {
	store  store.Store
	codec  *auth.JWTCodec
	logger *slog.Logger

	httpServer *http.Server
}

// New creates a new Server backed by the given store and token codec.
func New(st store.Store, codec *auth.JWTCodec, addr string) *Server {
	s := &Server{
		store:  st,
		codec:  codec,
		logger: slog.Default().With("component", "server"),
	}

	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s
}

// Routes builds the API route table. Protected routes are wrapped in the
// auth middleware; register, login, and health are open.
func (s *Server) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	protected := auth.Middleware(s.codec)

	// Public routes
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("POST /api/auth/register", s.handleRegister)
	mux.HandleFunc("POST /api/auth/login", s.handleLogin)

	// Session lifecycle
	mux.Handle("POST /api/auth/logout", protected(http.HandlerFunc(s.handleLogout)))
	mux.Handle("GET /api/auth/me", protected(http.HandlerFunc(s.handleMe)))

	// Tasks
	mux.Handle("GET /api/tasks", protected(http.HandlerFunc(s.handleListTasks)))
	mux.Handle("POST /api/tasks", protected(http.HandlerFunc(s.handleCreateTask)))
	mux.Handle("GET /api/tasks/{id}", protected(http.HandlerFunc(s.handleGetTask)))
	mux.Handle("PUT /api/tasks/{id}", protected(http.HandlerFunc(s.handleUpdateTask)))
	mux.Handle("DELETE /api/tasks/{id}", protected(http.HandlerFunc(s.handleDeleteTask)))

	// Users
	mux.Handle("GET /api/users", protected(http.HandlerFunc(s.handleListUsers)))
	mux.Handle("POST /api/users", protected(http.HandlerFunc(s.handleCreateUser)))
	mux.Handle("GET /api/users/{id}", protected(http.HandlerFunc(s.handleGetUser)))
	mux.Handle("PUT /api/users/{id}", protected(http.HandlerFunc(s.handleUpdateUser)))
	mux.Handle("DELETE /api/users/{id}", protected(http.HandlerFunc(s.handleDeleteUser)))

	// Session introspection
	mux.Handle("GET /api/auth-sessions", protected(http.HandlerFunc(s.handleListSessions)))
	mux.Handle("GET /api/auth-sessions/{id}", protected(http.HandlerFunc(s.handleGetSession)))
	mux.Handle("DELETE /api/auth-sessions/{id}", protected(http.HandlerFunc(s.handleDeleteSession)))

	// Dashboard
	mux.Handle("GET /api/dashboard", protected(http.HandlerFunc(s.handleDashboard)))

	return mux
}

// Run starts the HTTP server and blocks until the context is canceled.
// Returns nil on graceful shutdown, or an error if the server fails.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("HTTP server listening", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	var serverErr error
	select {
	case <-ctx.Done():
		s.logger.Info("context canceled, initiating shutdown")
	case serverErr = <-errCh:
		s.logger.Error("server error", "error", serverErr)
	}

	shutdownErr := s.gracefulShutdown()
	if serverErr != nil {
		return serverErr
	}
	return shutdownErr
}

// gracefulShutdown performs shutdown with a fresh context and timeout.
// Uses context.Background() intentionally since the original context is already canceled.
func (s *Server) gracefulShutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
