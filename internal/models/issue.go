package models

import "time"

// Issue is a project-scoped problem report.
type Issue struct {
	ID          string `gorm:"primaryKey;size:32"`
	ProjectID   string `gorm:"size:32;not null;index"`
	Title       string `gorm:"not null"`
	Description string `gorm:"type:text"`
	Status      string `gorm:"size:16;default:Open;index"`
	Priority    string `gorm:"size:16;default:Medium"`
	ReportedBy  string `gorm:"size:32"`
	AssignedTo  string `gorm:"size:32"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Project *Project `gorm:"foreignKey:ProjectID"`
}

// Document is a project-scoped file reference (plans, permits, photos).
type Document struct {
	ID         string `gorm:"primaryKey;size:32"`
	ProjectID  string `gorm:"size:32;not null;index"`
	Name       string `gorm:"not null"`
	Category   string `gorm:"size:32;index"`
	URL        string `gorm:"size:512"`
	UploadedBy string `gorm:"size:32"`
	CreatedAt  time.Time

	Project *Project `gorm:"foreignKey:ProjectID"`
}

// Expense is a project-scoped cost record.
type Expense struct {
	ID          string  `gorm:"primaryKey;size:32"`
	ProjectID   string  `gorm:"size:32;not null;index"`
	Description string  `gorm:"not null"`
	Category    string  `gorm:"size:32;index"`
	Amount      float64 `gorm:"not null"`
	IncurredOn  *time.Time
	CreatedAt   time.Time

	Project *Project `gorm:"foreignKey:ProjectID"`
}
