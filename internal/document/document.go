// Package document provides project document-registry operations.
package document

import (
	"errors"

	"github.com/haiderali9-9/edifice/internal/models"
	"github.com/haiderali9-9/edifice/internal/store"
	"gorm.io/gorm"
)

// Categories is the fixed vocabulary for document classification.
var Categories = []string{"Plans", "Permits", "Contracts", "Reports", "Photos", "Other"}

// CreateOpts holds parameters for registering a document.
type CreateOpts struct {
	ProjectID  string
	Name       string
	Category   string // defaults to Other
	URL        string
	UploadedBy string
}

// Create validates opts and registers a document against a project.
func Create(s *store.Store, opts CreateOpts) (*models.Document, error) {
	if opts.ProjectID == "" {
		return nil, store.Invalid("document: project is required")
	}
	if opts.Name == "" {
		return nil, store.Invalid("document: name is required")
	}
	if opts.URL == "" {
		return nil, store.Invalid("document: url is required")
	}
	if opts.Category == "" {
		opts.Category = "Other"
	}
	if !models.ValidStatus(Categories, opts.Category) {
		return nil, store.Invalid("document: invalid category %q", opts.Category)
	}

	db, err := s.DB()
	if err != nil {
		return nil, err
	}
	var count int64
	if err := db.Model(&models.Project{}).Where("id = ?", opts.ProjectID).Count(&count).Error; err != nil {
		return nil, store.Wrap("document: check project "+opts.ProjectID, err)
	}
	if count == 0 {
		return nil, store.NotFound("project", opts.ProjectID)
	}

	id, err := store.NewID("doc")
	if err != nil {
		return nil, err
	}
	doc := models.Document{
		ID:         id,
		ProjectID:  opts.ProjectID,
		Name:       opts.Name,
		Category:   opts.Category,
		URL:        opts.URL,
		UploadedBy: opts.UploadedBy,
	}
	if err := db.Create(&doc).Error; err != nil {
		return nil, store.Wrap("document: create", err)
	}
	return &doc, nil
}

// Get retrieves a document by ID.
func Get(s *store.Store, id string) (*models.Document, error) {
	db, err := s.DB()
	if err != nil {
		return nil, err
	}
	var doc models.Document
	if err := db.Where("id = ?", id).First(&doc).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.NotFound("document", id)
		}
		return nil, store.Wrap("document: get "+id, err)
	}
	return &doc, nil
}

// List returns a project's documents, newest first, optionally by
// category.
func List(s *store.Store, projectID, category string) ([]models.Document, error) {
	db, err := s.DB()
	if err != nil {
		return nil, err
	}
	q := db.Model(&models.Document{})
	if projectID != "" {
		q = q.Where("project_id = ?", projectID)
	}
	if category != "" {
		q = q.Where("category = ?", category)
	}
	docs := []models.Document{}
	if err := q.Order("created_at DESC").Find(&docs).Error; err != nil {
		return nil, store.Wrap("document: list", err)
	}
	return docs, nil
}

// Delete removes a document record. A missing id fails with NotFoundError.
func Delete(s *store.Store, id string) error {
	db, err := s.DB()
	if err != nil {
		return err
	}
	res := db.Where("id = ?", id).Delete(&models.Document{})
	if res.Error != nil {
		return store.Wrap("document: delete "+id, res.Error)
	}
	if res.RowsAffected == 0 {
		return store.NotFound("document", id)
	}
	return nil
}
