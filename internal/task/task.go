// Package task provides task lifecycle operations.
package task

import (
	"errors"
	"time"

	"github.com/haiderali9-9/edifice/internal/models"
	"github.com/haiderali9-9/edifice/internal/store"
	"gorm.io/gorm"
)

// CreateOpts holds parameters for creating a new task.
type CreateOpts struct {
	ProjectID   string
	Name        string
	Description string
	Status      string // defaults to Not Started
	Priority    string // defaults to Medium
	StartDate   *time.Time
	EndDate     *time.Time
}

// ListFilters holds optional filters for listing tasks.
type ListFilters struct {
	ProjectID string
	Status    string
	Priority  string
}

// Create validates opts and persists a new task under its project. The
// project must exist; a task can never be created orphaned.
func Create(s *store.Store, opts CreateOpts) (*models.Task, error) {
	if opts.ProjectID == "" {
		return nil, store.Invalid("task: project is required")
	}
	if opts.Name == "" {
		return nil, store.Invalid("task: name is required")
	}
	if opts.Status == "" {
		opts.Status = models.TaskNotStarted
	}
	if !models.ValidStatus(models.TaskStatuses, opts.Status) {
		return nil, store.Invalid("task: invalid status %q", opts.Status)
	}
	if opts.Priority == "" {
		opts.Priority = models.PriorityMedium
	}
	if !models.ValidStatus(models.TaskPriorities, opts.Priority) {
		return nil, store.Invalid("task: invalid priority %q", opts.Priority)
	}

	db, err := s.DB()
	if err != nil {
		return nil, err
	}

	var count int64
	if err := db.Model(&models.Project{}).Where("id = ?", opts.ProjectID).Count(&count).Error; err != nil {
		return nil, store.Wrap("task: check project "+opts.ProjectID, err)
	}
	if count == 0 {
		return nil, store.NotFound("project", opts.ProjectID)
	}

	id, err := store.NewID("task")
	if err != nil {
		return nil, err
	}

	task := models.Task{
		ID:          id,
		ProjectID:   opts.ProjectID,
		Name:        opts.Name,
		Description: opts.Description,
		Status:      opts.Status,
		Priority:    opts.Priority,
		StartDate:   opts.StartDate,
		EndDate:     opts.EndDate,
		Version:     1,
	}
	if err := db.Create(&task).Error; err != nil {
		return nil, store.Wrap("task: create", err)
	}
	return &task, nil
}

// Get retrieves a task by ID.
func Get(s *store.Store, id string) (*models.Task, error) {
	db, err := s.DB()
	if err != nil {
		return nil, err
	}
	var task models.Task
	if err := db.Where("id = ?", id).First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.NotFound("task", id)
		}
		return nil, store.Wrap("task: get "+id, err)
	}
	return &task, nil
}

// List returns tasks matching the filters, newest first. A project
// filter returns only that project's tasks; no matches yields an empty
// slice.
func List(s *store.Store, filters ListFilters) ([]models.Task, error) {
	db, err := s.DB()
	if err != nil {
		return nil, err
	}
	q := db.Model(&models.Task{})
	if filters.ProjectID != "" {
		q = q.Where("project_id = ?", filters.ProjectID)
	}
	if filters.Status != "" {
		q = q.Where("status = ?", filters.Status)
	}
	if filters.Priority != "" {
		q = q.Where("priority = ?", filters.Priority)
	}

	tasks := []models.Task{}
	if err := q.Order("created_at DESC").Find(&tasks).Error; err != nil {
		return nil, store.Wrap("task: list", err)
	}
	return tasks, nil
}

// Update applies a partial update and returns the full updated row.
// ProjectID is immutable: a task belongs to one project for life.
func Update(s *store.Store, id string, updates map[string]interface{}) (*models.Task, error) {
	if err := validateUpdates(updates); err != nil {
		return nil, err
	}

	db, err := s.DB()
	if err != nil {
		return nil, err
	}

	var task models.Task
	if err := db.Where("id = ?", id).First(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.NotFound("task", id)
		}
		return nil, store.Wrap("task: get "+id+" for update", err)
	}

	merged := make(map[string]interface{}, len(updates)+1)
	for k, v := range updates {
		merged[k] = v
	}
	merged["version"] = task.Version + 1

	res := db.Model(&models.Task{}).
		Where("id = ? AND version = ?", id, task.Version).
		Updates(merged)
	if res.Error != nil {
		return nil, store.Wrap("task: update "+id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, store.Conflict("task", id, "stale version")
	}

	var updated models.Task
	if err := db.Where("id = ?", id).First(&updated).Error; err != nil {
		return nil, store.Wrap("task: reload "+id, err)
	}
	return &updated, nil
}

// Delete removes a task. A missing id fails with NotFoundError.
func Delete(s *store.Store, id string) error {
	db, err := s.DB()
	if err != nil {
		return err
	}
	res := db.Where("id = ?", id).Delete(&models.Task{})
	if res.Error != nil {
		return store.Wrap("task: delete "+id, res.Error)
	}
	if res.RowsAffected == 0 {
		return store.NotFound("task", id)
	}
	return nil
}

func validateUpdates(updates map[string]interface{}) error {
	if len(updates) == 0 {
		return store.Invalid("task: no fields to update")
	}
	for _, field := range []string{"id", "created_at", "version", "project_id"} {
		if _, ok := updates[field]; ok {
			return store.Invalid("task: field %q cannot be updated", field)
		}
	}
	if v, ok := updates["status"]; ok {
		status, _ := v.(string)
		if !models.ValidStatus(models.TaskStatuses, status) {
			return store.Invalid("task: invalid status %q", status)
		}
	}
	if v, ok := updates["priority"]; ok {
		priority, _ := v.(string)
		if !models.ValidStatus(models.TaskPriorities, priority) {
			return store.Invalid("task: invalid priority %q", priority)
		}
	}
	if v, ok := updates["name"]; ok {
		if name, _ := v.(string); name == "" {
			return store.Invalid("task: name cannot be empty")
		}
	}
	return nil
}
