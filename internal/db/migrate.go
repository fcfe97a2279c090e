package db

import (
	"fmt"

	"github.com/haiderali9-9/edifice/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AllModels returns every GORM model in migration order.
func AllModels() []interface{} {
	return []interface{}{
		&models.Profile{},
		&models.Project{},
		&models.Task{},
		&models.Resource{},
		&models.ResourceAllocation{},
		&models.TeamMember{},
		&models.Issue{},
		&models.Document{},
		&models.Expense{},
		&models.Invoice{},
		&models.InvoiceItem{},
		&models.Invitation{},
	}
}

// AutoMigrate creates or updates all tables.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(AllModels()...); err != nil {
		return fmt.Errorf("db: auto-migrate: %w", err)
	}
	return nil
}

// SeedAdmin upserts an admin profile for the given email so the admin
// email-lookup function has a caller that passes its capability check.
func SeedAdmin(db *gorm.DB, id, email string) error {
	if email == "" {
		return nil
	}
	p := models.Profile{
		ID:      id,
		Email:   email,
		IsAdmin: true,
	}
	result := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"email", "is_admin"}),
	}).Create(&p)
	if result.Error != nil {
		return fmt.Errorf("db: seed admin %q: %w", email, result.Error)
	}
	return nil
}
