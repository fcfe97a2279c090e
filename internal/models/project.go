// Package models defines the GORM entities for the Edifice backend.
package models

import "time"

// Project is the root entity; every other record hangs off a project.
type Project struct {
	ID          string `gorm:"primaryKey;size:32"`
	Name        string `gorm:"not null"`
	Description string `gorm:"type:text"`
	Client      string `gorm:"size:128"`
	Location    string `gorm:"size:128"`
	StartDate   *time.Time
	EndDate     *time.Time
	Budget      float64
	Status      string `gorm:"size:16;default:Planning;index"`
	Completion  int    `gorm:"default:0"`
	ManagerID   string `gorm:"size:32;index"`
	Version     int    `gorm:"default:1"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Tasks   []Task       `gorm:"foreignKey:ProjectID"`
	Members []TeamMember `gorm:"foreignKey:ProjectID"`
}
