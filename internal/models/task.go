package models

import "time"

// Task is a unit of project work. A task belongs to exactly one project
// for its lifetime; ProjectID never changes after creation.
type Task struct {
	ID          string `gorm:"primaryKey;size:32"`
	ProjectID   string `gorm:"size:32;not null;index"`
	Name        string `gorm:"not null"`
	Description string `gorm:"type:text"`
	Status      string `gorm:"size:16;default:'Not Started';index"`
	Priority    string `gorm:"size:16;default:Medium"`
	StartDate   *time.Time
	EndDate     *time.Time
	Version     int `gorm:"default:1"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Project *Project `gorm:"foreignKey:ProjectID"`
}
