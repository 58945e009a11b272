// ABOUTME: Task CRUD handlers with per-resource ownership checks
// ABOUTME: Missing tasks report 404 before ownership is compared

package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/2389/taskdeck/internal/auth"
	"github.com/2389/taskdeck/internal/store"
)

// Task listing page bounds
const (
	defaultTaskPageSize = 10
	maxTaskPageSize     = 50
)

type createTaskRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	DueDate     string   `json:"due_date"`
	Priority    string   `json:"priority"`
	Tags        []string `json:"tags"`
	IsPrivate   *bool    `json:"is_private"`
}

type updateTaskRequest struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Status      *string   `json:"status"`
	Priority    *string   `json:"priority"`
	DueDate     *string   `json:"due_date"`
	Tags        *[]string `json:"tags"`
	IsPrivate   *bool     `json:"is_private"`
}

// loadOwnedTask fetches a task and enforces the ownership contract:
// absent → 404, wrong owner → 403. Returns nil after writing the error
// response when the caller should stop.
func (s *Server) loadOwnedTask(w http.ResponseWriter, r *http.Request, id string) *store.Task {
	task, err := s.store.GetTask(r.Context(), id)
	if err != nil {
		respondStoreError(w, err, "Task not found")
		return nil
	}

	claims := auth.MustFromContext(r.Context())
	if task.UserID != claims.UserID {
		respondError(w, http.StatusForbidden, "Forbidden")
		return nil
	}

	return task
}

// handleListTasks handles GET /api/tasks.
func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	claims := auth.MustFromContext(r.Context())
	q := r.URL.Query()

	page := 1
	if raw := q.Get("page"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 1 {
			page = n
		}
	}

	limit := defaultTaskPageSize
	if raw := q.Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = min(maxTaskPageSize, max(1, n))
		}
	}

	filter := store.TaskFilter{
		UserID:   claims.UserID,
		Status:   q.Get("status"),
		Priority: q.Get("priority"),
		Query:    q.Get("q"),
		Page:     page,
		Limit:    limit,
	}

	if raw := q.Get("dueBefore"); raw != "" {
		cutoff, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid dueBefore timestamp")
			return
		}
		filter.DueBefore = &cutoff
	}

	tasks, total, err := s.store.ListTasks(r.Context(), filter)
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	totalPages := max(1, (total+limit-1)/limit)
	respondData(w, http.StatusOK, TaskListResponse{
		Items:      taskViews(tasks),
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	})
}

// handleCreateTask handles POST /api/tasks.
func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	claims := auth.MustFromContext(r.Context())

	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if req.Title == "" {
		respondError(w, http.StatusBadRequest, "Title is required")
		return
	}

	priority := req.Priority
	if priority == "" {
		priority = store.TaskPriorityMedium
	}
	if !store.ValidTaskPriority(priority) {
		respondError(w, http.StatusBadRequest, "Invalid priority")
		return
	}

	var dueDate *time.Time
	if req.DueDate != "" {
		parsed, err := time.Parse(time.RFC3339, req.DueDate)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid due_date timestamp")
			return
		}
		dueDate = &parsed
	}

	tags := req.Tags
	if tags == nil {
		tags = []string{}
	}

	isPrivate := false
	if req.IsPrivate != nil {
		isPrivate = *req.IsPrivate
	}

	now := time.Now().UTC()
	task := &store.Task{
		ID:          uuid.New().String(),
		UserID:      claims.UserID,
		Title:       req.Title,
		Description: req.Description,
		Status:      store.TaskStatusTodo,
		Priority:    priority,
		Tags:        tags,
		DueDate:     dueDate,
		IsPrivate:   isPrivate,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.store.CreateTask(r.Context(), task); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondData(w, http.StatusCreated, taskView(task))
}

// handleGetTask handles GET /api/tasks/{id}.
func (s *Server) handleGetTask(w http.ResponseWriter, r *http.Request) {
	task := s.loadOwnedTask(w, r, r.PathValue("id"))
	if task == nil {
		return
	}
	respondData(w, http.StatusOK, taskView(task))
}

// handleUpdateTask handles PUT /api/tasks/{id}. Fields absent from the
// body are left unchanged. A status change to done stamps CompletedAt;
// a change back to todo or in_progress clears it.
func (s *Server) handleUpdateTask(w http.ResponseWriter, r *http.Request) {
	var req updateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	if req.Title != nil && *req.Title == "" {
		respondError(w, http.StatusBadRequest, "Title is required")
		return
	}
	if req.Status != nil && !store.ValidTaskStatus(*req.Status) {
		respondError(w, http.StatusBadRequest, "Invalid status")
		return
	}
	if req.Priority != nil && !store.ValidTaskPriority(*req.Priority) {
		respondError(w, http.StatusBadRequest, "Invalid priority")
		return
	}

	var dueDate *time.Time
	if req.DueDate != nil {
		parsed, err := time.Parse(time.RFC3339, *req.DueDate)
		if err != nil {
			respondError(w, http.StatusBadRequest, "Invalid due_date timestamp")
			return
		}
		dueDate = &parsed
	}

	task := s.loadOwnedTask(w, r, r.PathValue("id"))
	if task == nil {
		return
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Status != nil {
		task.Status = *req.Status
		if task.Status == store.TaskStatusDone {
			now := time.Now().UTC()
			task.CompletedAt = &now
		} else {
			task.CompletedAt = nil
		}
	}
	if req.Priority != nil {
		task.Priority = *req.Priority
	}
	if dueDate != nil {
		task.DueDate = dueDate
	}
	if req.Tags != nil {
		task.Tags = *req.Tags
	}
	if req.IsPrivate != nil {
		task.IsPrivate = *req.IsPrivate
	}
	task.UpdatedAt = time.Now().UTC()

	if err := s.store.UpdateTask(r.Context(), task); err != nil {
		respondStoreError(w, err, "Task not found")
		return
	}

	respondData(w, http.StatusOK, taskView(task))
}

// handleDeleteTask handles DELETE /api/tasks/{id}.
func (s *Server) handleDeleteTask(w http.ResponseWriter, r *http.Request) {
	task := s.loadOwnedTask(w, r, r.PathValue("id"))
	if task == nil {
		return
	}

	if err := s.store.DeleteTask(r.Context(), task.ID); err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondData(w, http.StatusOK, map[string]string{"id": task.ID})
}
