// Package project provides project lifecycle operations and the
// completion aggregator.
package project

import (
	"errors"
	"time"

	"github.com/haiderali9-9/edifice/internal/models"
	"github.com/haiderali9-9/edifice/internal/store"
	"gorm.io/gorm"
)

// CreateOpts holds parameters for creating a new project.
type CreateOpts struct {
	Name        string
	Description string
	Client      string
	Location    string
	StartDate   *time.Time
	EndDate     *time.Time
	Budget      float64
	Status      string // defaults to Planning
	ManagerID   string
}

// ListFilters holds optional filters for listing projects.
type ListFilters struct {
	Status    string
	Client    string
	ManagerID string
}

// Create validates opts and persists a new project. Validation failures
// are reported before any store call.
func Create(s *store.Store, opts CreateOpts) (*models.Project, error) {
	if opts.Name == "" {
		return nil, store.Invalid("project: name is required")
	}
	if opts.Client == "" {
		return nil, store.Invalid("project: client is required")
	}
	if opts.Status == "" {
		opts.Status = models.ProjectPlanning
	}
	if !models.ValidStatus(models.ProjectStatuses, opts.Status) {
		return nil, store.Invalid("project: invalid status %q", opts.Status)
	}
	if opts.Budget < 0 {
		return nil, store.Invalid("project: budget must not be negative")
	}

	db, err := s.DB()
	if err != nil {
		return nil, err
	}

	id, err := store.NewID("proj")
	if err != nil {
		return nil, err
	}

	p := models.Project{
		ID:          id,
		Name:        opts.Name,
		Description: opts.Description,
		Client:      opts.Client,
		Location:    opts.Location,
		StartDate:   opts.StartDate,
		EndDate:     opts.EndDate,
		Budget:      opts.Budget,
		Status:      opts.Status,
		Completion:  0,
		ManagerID:   opts.ManagerID,
		Version:     1,
	}
	if err := db.Create(&p).Error; err != nil {
		return nil, store.Wrap("project: create", err)
	}
	return &p, nil
}

// Get retrieves a project by ID.
func Get(s *store.Store, id string) (*models.Project, error) {
	db, err := s.DB()
	if err != nil {
		return nil, err
	}
	var p models.Project
	if err := db.Where("id = ?", id).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.NotFound("project", id)
		}
		return nil, store.Wrap("project: get "+id, err)
	}
	return &p, nil
}

// List returns projects matching the filters, newest first. No matches
// yields an empty slice, not an error.
func List(s *store.Store, filters ListFilters) ([]models.Project, error) {
	db, err := s.DB()
	if err != nil {
		return nil, err
	}
	q := db.Model(&models.Project{})
	if filters.Status != "" {
		q = q.Where("status = ?", filters.Status)
	}
	if filters.Client != "" {
		q = q.Where("client = ?", filters.Client)
	}
	if filters.ManagerID != "" {
		q = q.Where("manager_id = ?", filters.ManagerID)
	}

	projects := []models.Project{}
	if err := q.Order("created_at DESC").Find(&projects).Error; err != nil {
		return nil, store.Wrap("project: list", err)
	}
	return projects, nil
}

// Update applies a partial update and returns the full updated row. The
// write compares the version token read here; a concurrent writer makes
// it fail with ConflictError.
func Update(s *store.Store, id string, updates map[string]interface{}) (*models.Project, error) {
	if err := validateUpdates(updates); err != nil {
		return nil, err
	}

	db, err := s.DB()
	if err != nil {
		return nil, err
	}

	var p models.Project
	if err := db.Where("id = ?", id).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.NotFound("project", id)
		}
		return nil, store.Wrap("project: get "+id+" for update", err)
	}

	return applyUpdate(db, id, p.Version, updates)
}

// UpdateWithVersion is Update with a caller-held version token, for
// clients that read a row earlier and must not clobber a newer write.
// A stale token fails with ConflictError.
func UpdateWithVersion(s *store.Store, id string, version int, updates map[string]interface{}) (*models.Project, error) {
	if err := validateUpdates(updates); err != nil {
		return nil, err
	}
	db, err := s.DB()
	if err != nil {
		return nil, err
	}
	var count int64
	if err := db.Model(&models.Project{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return nil, store.Wrap("project: check "+id, err)
	}
	if count == 0 {
		return nil, store.NotFound("project", id)
	}
	return applyUpdate(db, id, version, updates)
}

// applyUpdate performs the compare-and-swap write and reloads the row.
func applyUpdate(db *gorm.DB, id string, version int, updates map[string]interface{}) (*models.Project, error) {
	merged := make(map[string]interface{}, len(updates)+1)
	for k, v := range updates {
		merged[k] = v
	}
	merged["version"] = version + 1

	res := db.Model(&models.Project{}).
		Where("id = ? AND version = ?", id, version).
		Updates(merged)
	if res.Error != nil {
		return nil, store.Wrap("project: update "+id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, store.Conflict("project", id, "stale version")
	}

	var updated models.Project
	if err := db.Where("id = ?", id).First(&updated).Error; err != nil {
		return nil, store.Wrap("project: reload "+id, err)
	}
	return &updated, nil
}

// Delete removes a project. Deleting a missing id fails with
// NotFoundError rather than succeeding silently.
func Delete(s *store.Store, id string) error {
	db, err := s.DB()
	if err != nil {
		return err
	}
	res := db.Where("id = ?", id).Delete(&models.Project{})
	if res.Error != nil {
		return store.Wrap("project: delete "+id, res.Error)
	}
	if res.RowsAffected == 0 {
		return store.NotFound("project", id)
	}
	return nil
}

// validateUpdates rejects malformed or immutable fields before any
// store call. Numeric fields are normalized in place, since
// JSON-decoded bodies deliver numbers as float64.
func validateUpdates(updates map[string]interface{}) error {
	if len(updates) == 0 {
		return store.Invalid("project: no fields to update")
	}
	for _, field := range []string{"id", "created_at", "version"} {
		if _, ok := updates[field]; ok {
			return store.Invalid("project: field %q cannot be updated", field)
		}
	}
	if v, ok := updates["status"]; ok {
		status, _ := v.(string)
		if !models.ValidStatus(models.ProjectStatuses, status) {
			return store.Invalid("project: invalid status %q", status)
		}
	}
	if v, ok := updates["completion"]; ok {
		c, ok := store.AsInt(v)
		if !ok || c < 0 || c > 100 {
			return store.Invalid("project: completion must be an integer in [0,100]")
		}
		updates["completion"] = c
	}
	if v, ok := updates["name"]; ok {
		if name, _ := v.(string); name == "" {
			return store.Invalid("project: name cannot be empty")
		}
	}
	return nil
}
