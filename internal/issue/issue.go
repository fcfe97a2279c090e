// Package issue provides project issue-tracking operations.
package issue

import (
	"errors"

	"github.com/haiderali9-9/edifice/internal/models"
	"github.com/haiderali9-9/edifice/internal/store"
	"gorm.io/gorm"
)

// CreateOpts holds parameters for creating a new issue.
type CreateOpts struct {
	ProjectID   string
	Title       string
	Description string
	Priority    string // defaults to Medium
	ReportedBy  string
	AssignedTo  string
}

// ListFilters holds optional filters for listing issues.
type ListFilters struct {
	ProjectID string
	Status    string
	Priority  string
}

// Create validates opts and persists a new open issue.
func Create(s *store.Store, opts CreateOpts) (*models.Issue, error) {
	if opts.ProjectID == "" {
		return nil, store.Invalid("issue: project is required")
	}
	if opts.Title == "" {
		return nil, store.Invalid("issue: title is required")
	}
	if opts.Priority == "" {
		opts.Priority = models.PriorityMedium
	}
	if !models.ValidStatus(models.TaskPriorities, opts.Priority) {
		return nil, store.Invalid("issue: invalid priority %q", opts.Priority)
	}

	db, err := s.DB()
	if err != nil {
		return nil, err
	}
	var count int64
	if err := db.Model(&models.Project{}).Where("id = ?", opts.ProjectID).Count(&count).Error; err != nil {
		return nil, store.Wrap("issue: check project "+opts.ProjectID, err)
	}
	if count == 0 {
		return nil, store.NotFound("project", opts.ProjectID)
	}

	id, err := store.NewID("iss")
	if err != nil {
		return nil, err
	}
	iss := models.Issue{
		ID:          id,
		ProjectID:   opts.ProjectID,
		Title:       opts.Title,
		Description: opts.Description,
		Status:      models.IssueOpen,
		Priority:    opts.Priority,
		ReportedBy:  opts.ReportedBy,
		AssignedTo:  opts.AssignedTo,
	}
	if err := db.Create(&iss).Error; err != nil {
		return nil, store.Wrap("issue: create", err)
	}
	return &iss, nil
}

// Get retrieves an issue by ID.
func Get(s *store.Store, id string) (*models.Issue, error) {
	db, err := s.DB()
	if err != nil {
		return nil, err
	}
	var iss models.Issue
	if err := db.Where("id = ?", id).First(&iss).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.NotFound("issue", id)
		}
		return nil, store.Wrap("issue: get "+id, err)
	}
	return &iss, nil
}

// List returns issues matching the filters, newest first.
func List(s *store.Store, filters ListFilters) ([]models.Issue, error) {
	db, err := s.DB()
	if err != nil {
		return nil, err
	}
	q := db.Model(&models.Issue{})
	if filters.ProjectID != "" {
		q = q.Where("project_id = ?", filters.ProjectID)
	}
	if filters.Status != "" {
		q = q.Where("status = ?", filters.Status)
	}
	if filters.Priority != "" {
		q = q.Where("priority = ?", filters.Priority)
	}
	issues := []models.Issue{}
	if err := q.Order("created_at DESC").Find(&issues).Error; err != nil {
		return nil, store.Wrap("issue: list", err)
	}
	return issues, nil
}

// Update applies a partial update and returns the full updated row.
func Update(s *store.Store, id string, updates map[string]interface{}) (*models.Issue, error) {
	if len(updates) == 0 {
		return nil, store.Invalid("issue: no fields to update")
	}
	for _, field := range []string{"id", "created_at", "project_id"} {
		if _, ok := updates[field]; ok {
			return nil, store.Invalid("issue: field %q cannot be updated", field)
		}
	}
	if v, ok := updates["status"]; ok {
		status, _ := v.(string)
		if !models.ValidStatus(models.IssueStatuses, status) {
			return nil, store.Invalid("issue: invalid status %q", status)
		}
	}
	if v, ok := updates["priority"]; ok {
		priority, _ := v.(string)
		if !models.ValidStatus(models.TaskPriorities, priority) {
			return nil, store.Invalid("issue: invalid priority %q", priority)
		}
	}

	db, err := s.DB()
	if err != nil {
		return nil, err
	}
	res := db.Model(&models.Issue{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, store.Wrap("issue: update "+id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, store.NotFound("issue", id)
	}
	return Get(s, id)
}

// Delete removes an issue. A missing id fails with NotFoundError.
func Delete(s *store.Store, id string) error {
	db, err := s.DB()
	if err != nil {
		return err
	}
	res := db.Where("id = ?", id).Delete(&models.Issue{})
	if res.Error != nil {
		return store.Wrap("issue: delete "+id, res.Error)
	}
	if res.RowsAffected == 0 {
		return store.NotFound("issue", id)
	}
	return nil
}
