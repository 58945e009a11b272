// ABOUTME: Dashboard aggregate handler and the unauthenticated health probe
// ABOUTME: Summarizes task counts plus due-soon and recently-created slices

package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/2389/taskdeck/internal/auth"
)

const (
	defaultDashboardDays = 7
	dashboardSliceLimit  = 5
)

// DashboardResponse is the JSON payload for GET /api/dashboard.
type DashboardResponse struct {
	TotalTasks  int            `json:"totalTasks"`
	ByStatus    map[string]int `json:"byStatus"`
	DueSoon     []TaskResponse `json:"dueSoon"`
	RecentTasks []TaskResponse `json:"recentTasks"`
}

// handleDashboard handles GET /api/dashboard. The period query parameter
// widens the recent-tasks window in days; due-soon always looks one week
// ahead.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	claims := auth.MustFromContext(r.Context())

	days := defaultDashboardDays
	if raw := r.URL.Query().Get("period"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			days = n
		}
	}

	counts, err := s.store.CountTasksByStatus(r.Context(), claims.UserID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	now := time.Now().UTC()

	dueSoon, err := s.store.ListTasksDueBefore(r.Context(), claims.UserID,
		now.Add(defaultDashboardDays*24*time.Hour), dashboardSliceLimit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	recent, err := s.store.ListTasksCreatedSince(r.Context(), claims.UserID,
		now.Add(-time.Duration(days)*24*time.Hour), dashboardSliceLimit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondData(w, http.StatusOK, DashboardResponse{
		TotalTasks: counts.Todo + counts.InProgress + counts.Done,
		ByStatus: map[string]int{
			"todo":        counts.Todo,
			"in_progress": counts.InProgress,
			"done":        counts.Done,
		},
		DueSoon:     taskViews(dueSoon),
		RecentTasks: taskViews(recent),
	})
}

// handleHealth handles GET /api/health. Pings the database so load
// balancers see storage failures, not just process liveness.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.store.Ping(r.Context()); err != nil {
		s.logger.Error("health check failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Database unreachable")
		return
	}

	respondData(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"db":        "ok",
	})
}
