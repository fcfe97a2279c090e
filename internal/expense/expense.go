// Package expense provides project cost-tracking operations.
package expense

import (
	"errors"
	"time"

	"github.com/haiderali9-9/edifice/internal/models"
	"github.com/haiderali9-9/edifice/internal/store"
	"gorm.io/gorm"
)

// Categories is the fixed vocabulary for expense classification.
var Categories = []string{"Materials", "Labor", "Equipment", "Permits", "Transport", "Other"}

// CreateOpts holds parameters for recording an expense.
type CreateOpts struct {
	ProjectID   string
	Description string
	Category    string // defaults to Other
	Amount      float64
	IncurredOn  *time.Time
}

// Create validates opts and records an expense against a project.
func Create(s *store.Store, opts CreateOpts) (*models.Expense, error) {
	if opts.ProjectID == "" {
		return nil, store.Invalid("expense: project is required")
	}
	if opts.Description == "" {
		return nil, store.Invalid("expense: description is required")
	}
	if opts.Amount <= 0 {
		return nil, store.Invalid("expense: amount must be positive")
	}
	if opts.Category == "" {
		opts.Category = "Other"
	}
	if !models.ValidStatus(Categories, opts.Category) {
		return nil, store.Invalid("expense: invalid category %q", opts.Category)
	}

	db, err := s.DB()
	if err != nil {
		return nil, err
	}
	var count int64
	if err := db.Model(&models.Project{}).Where("id = ?", opts.ProjectID).Count(&count).Error; err != nil {
		return nil, store.Wrap("expense: check project "+opts.ProjectID, err)
	}
	if count == 0 {
		return nil, store.NotFound("project", opts.ProjectID)
	}

	id, err := store.NewID("exp")
	if err != nil {
		return nil, err
	}
	e := models.Expense{
		ID:          id,
		ProjectID:   opts.ProjectID,
		Description: opts.Description,
		Category:    opts.Category,
		Amount:      opts.Amount,
		IncurredOn:  opts.IncurredOn,
	}
	if err := db.Create(&e).Error; err != nil {
		return nil, store.Wrap("expense: create", err)
	}
	return &e, nil
}

// Get retrieves an expense by ID.
func Get(s *store.Store, id string) (*models.Expense, error) {
	db, err := s.DB()
	if err != nil {
		return nil, err
	}
	var e models.Expense
	if err := db.Where("id = ?", id).First(&e).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.NotFound("expense", id)
		}
		return nil, store.Wrap("expense: get "+id, err)
	}
	return &e, nil
}

// List returns a project's expenses, newest first, optionally by
// category.
func List(s *store.Store, projectID, category string) ([]models.Expense, error) {
	db, err := s.DB()
	if err != nil {
		return nil, err
	}
	q := db.Model(&models.Expense{})
	if projectID != "" {
		q = q.Where("project_id = ?", projectID)
	}
	if category != "" {
		q = q.Where("category = ?", category)
	}
	expenses := []models.Expense{}
	if err := q.Order("created_at DESC").Find(&expenses).Error; err != nil {
		return nil, store.Wrap("expense: list", err)
	}
	return expenses, nil
}

// ProjectTotal sums a project's recorded expenses.
func ProjectTotal(s *store.Store, projectID string) (float64, error) {
	db, err := s.DB()
	if err != nil {
		return 0, err
	}
	var total float64
	err = db.Model(&models.Expense{}).
		Where("project_id = ?", projectID).
		Select("COALESCE(SUM(amount), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, store.Wrap("expense: total for "+projectID, err)
	}
	return total, nil
}

// Delete removes an expense. A missing id fails with NotFoundError.
func Delete(s *store.Store, id string) error {
	db, err := s.DB()
	if err != nil {
		return err
	}
	res := db.Where("id = ?", id).Delete(&models.Expense{})
	if res.Error != nil {
		return store.Wrap("expense: delete "+id, res.Error)
	}
	if res.RowsAffected == 0 {
		return store.NotFound("expense", id)
	}
	return nil
}
