package models

import "time"

// Resource is a material, piece of equipment, or labor pool tracked
// across projects. Stock status is derived, never stored.
type Resource struct {
	ID        string  `gorm:"primaryKey;size:32"`
	Name      string  `gorm:"not null"`
	Type      string  `gorm:"size:16;index"`
	Quantity  float64 `gorm:"not null"`
	Unit      string  `gorm:"size:32"`
	Cost      float64
	CreatedAt time.Time
	UpdatedAt time.Time

	Allocations []ResourceAllocation `gorm:"foreignKey:ResourceID"`
}

// ResourceAllocation reserves part of a resource's quantity for a project.
type ResourceAllocation struct {
	ID         string  `gorm:"primaryKey;size:32"`
	ResourceID string  `gorm:"size:32;not null;index"`
	ProjectID  string  `gorm:"size:32;not null;index"`
	Quantity   float64 `gorm:"not null"`
	CreatedAt  time.Time

	Resource *Resource `gorm:"foreignKey:ResourceID"`
}
