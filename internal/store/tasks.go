// ABOUTME: Task CRUD, filtered listing, and dashboard aggregates for the SQLite store
// ABOUTME: Tags are stored as a JSON array string; listings are paginated

package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

const taskColumns = `id, user_id, title, description, status, priority, tags,
	due_date, completed_at, is_private, created_at, updated_at`

// CreateTask inserts a new task.
func (s *SQLiteStore) CreateTask(ctx context.Context, task *Task) error {
	query := `
		INSERT INTO tasks (` + taskColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		task.ID,
		task.UserID,
		task.Title,
		nullableString(task.Description),
		task.Status,
		task.Priority,
		encodeTags(task.Tags),
		formatNullableTime(task.DueDate),
		formatNullableTime(task.CompletedAt),
		task.IsPrivate,
		formatTime(task.CreatedAt),
		formatTime(task.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}

	s.logger.Debug("created task", "id", task.ID, "user_id", task.UserID)
	return nil
}

// GetTask retrieves a task by ID. Returns ErrNotFound if absent.
func (s *SQLiteStore) GetTask(ctx context.Context, id string) (*Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`

	task, err := scanTask(s.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying task: %w", err)
	}
	return task, nil
}

// ListTasks returns the filtered page of tasks for a user, newest first,
// along with the total match count before pagination.
func (s *SQLiteStore) ListTasks(ctx context.Context, filter TaskFilter) ([]*Task, int, error) {
	where := []string{"user_id = ?"}
	args := []any{filter.UserID}

	if filter.Status != "" {
		where = append(where, "status = ?")
		args = append(args, filter.Status)
	}
	if filter.Priority != "" {
		where = append(where, "priority = ?")
		args = append(args, filter.Priority)
	}
	if filter.DueBefore != nil {
		where = append(where, "due_date IS NOT NULL AND due_date < ?")
		args = append(args, formatTime(*filter.DueBefore))
	}
	if filter.Query != "" {
		where = append(where, "(title LIKE ? COLLATE NOCASE OR description LIKE ? COLLATE NOCASE)")
		pattern := "%" + filter.Query + "%"
		args = append(args, pattern, pattern)
	}

	whereClause := strings.Join(where, " AND ")

	var total int
	countQuery := `SELECT COUNT(*) FROM tasks WHERE ` + whereClause
	if err := s.db.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("counting tasks: %w", err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 10
	}

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE ` + whereClause + `
		ORDER BY created_at DESC
		LIMIT ? OFFSET ?`
	args = append(args, limit, (page-1)*limit)

	tasks, err := s.queryTasks(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return tasks, total, nil
}

// UpdateTask persists all mutable fields of an existing task.
// Returns ErrNotFound if the task does not exist.
func (s *SQLiteStore) UpdateTask(ctx context.Context, task *Task) error {
	query := `
		UPDATE tasks
		SET title = ?, description = ?, status = ?, priority = ?, tags = ?,
			due_date = ?, completed_at = ?, is_private = ?, updated_at = ?
		WHERE id = ?
	`

	res, err := s.db.ExecContext(ctx, query,
		task.Title,
		nullableString(task.Description),
		task.Status,
		task.Priority,
		encodeTags(task.Tags),
		formatNullableTime(task.DueDate),
		formatNullableTime(task.CompletedAt),
		task.IsPrivate,
		formatTime(task.UpdatedAt),
		task.ID,
	)
	if err != nil {
		return fmt.Errorf("updating task: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update result: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}

	return nil
}

// DeleteTask removes a task by ID. Deleting a non-existent task is not an error.
func (s *SQLiteStore) DeleteTask(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}

	s.logger.Debug("deleted task", "id", id)
	return nil
}

// CountTasksByStatus returns per-status task totals for a user.
func (s *SQLiteStore) CountTasksByStatus(ctx context.Context, userID string) (StatusCounts, error) {
	query := `SELECT status, COUNT(*) FROM tasks WHERE user_id = ? GROUP BY status`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return StatusCounts{}, fmt.Errorf("counting tasks by status: %w", err)
	}
	defer rows.Close()

	var counts StatusCounts
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return StatusCounts{}, fmt.Errorf("scanning status count: %w", err)
		}
		switch status {
		case TaskStatusTodo:
			counts.Todo = count
		case TaskStatusInProgress:
			counts.InProgress = count
		case TaskStatusDone:
			counts.Done = count
		}
	}

	return counts, rows.Err()
}

// ListTasksDueBefore returns up to limit tasks for a user with a due date
// at or before the cutoff, soonest first.
func (s *SQLiteStore) ListTasksDueBefore(ctx context.Context, userID string, cutoff time.Time, limit int) ([]*Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks
		WHERE user_id = ? AND due_date IS NOT NULL AND due_date <= ?
		ORDER BY due_date ASC
		LIMIT ?`

	return s.queryTasks(ctx, query, userID, formatTime(cutoff), limit)
}

// ListTasksCreatedSince returns up to limit tasks for a user created at or
// after the given time, newest first.
func (s *SQLiteStore) ListTasksCreatedSince(ctx context.Context, userID string, since time.Time, limit int) ([]*Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks
		WHERE user_id = ? AND created_at >= ?
		ORDER BY created_at DESC
		LIMIT ?`

	return s.queryTasks(ctx, query, userID, formatTime(since), limit)
}

func (s *SQLiteStore) queryTasks(ctx context.Context, query string, args ...any) ([]*Task, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying tasks: %w", err)
	}
	defer rows.Close()

	var tasks []*Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning task: %w", err)
		}
		tasks = append(tasks, task)
	}

	return tasks, rows.Err()
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

func scanTask(row rowScanner) (*Task, error) {
	var task Task
	var description, tagsJSON sql.NullString
	var dueDateStr, completedAtStr sql.NullString
	var createdAtStr, updatedAtStr string

	err := row.Scan(
		&task.ID,
		&task.UserID,
		&task.Title,
		&description,
		&task.Status,
		&task.Priority,
		&tagsJSON,
		&dueDateStr,
		&completedAtStr,
		&task.IsPrivate,
		&createdAtStr,
		&updatedAtStr,
	)
	if err != nil {
		return nil, err
	}

	task.Description = description.String
	task.Tags = decodeTags(tagsJSON.String)

	if task.DueDate, err = parseNullableTime(dueDateStr); err != nil {
		return nil, err
	}
	if task.CompletedAt, err = parseNullableTime(completedAtStr); err != nil {
		return nil, err
	}
	if task.CreatedAt, err = parseTime(createdAtStr); err != nil {
		return nil, err
	}
	if task.UpdatedAt, err = parseTime(updatedAtStr); err != nil {
		return nil, err
	}

	return &task, nil
}

func nullableString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

// encodeTags serializes tags as a JSON array string, never NULL.
func encodeTags(tags []string) string {
	if tags == nil {
		tags = []string{}
	}
	data, err := json.Marshal(tags)
	if err != nil {
		return "[]"
	}
	return string(data)
}

// decodeTags parses a stored JSON array, tolerating malformed rows.
func decodeTags(value string) []string {
	var tags []string
	if err := json.Unmarshal([]byte(value), &tags); err != nil || tags == nil {
		return []string{}
	}
	return tags
}
