package models

import "time"

// Profile is a user account record mirrored from the auth layer.
type Profile struct {
	ID        string `gorm:"primaryKey;size:32"`
	Email     string `gorm:"size:255;uniqueIndex;not null"`
	FirstName string `gorm:"size:64"`
	LastName  string `gorm:"size:64"`
	IsAdmin   bool   `gorm:"default:false"`
	CreatedAt time.Time
}

// TeamMember links a profile to a project with a role. The composite
// unique index keeps a user from joining the same project twice.
type TeamMember struct {
	ID        string `gorm:"primaryKey;size:32"`
	ProjectID string `gorm:"size:32;not null;uniqueIndex:idx_project_user"`
	UserID    string `gorm:"size:32;not null;uniqueIndex:idx_project_user"`
	Role      string `gorm:"size:32;not null"`
	CreatedAt time.Time

	Project *Project `gorm:"foreignKey:ProjectID"`
	User    *Profile `gorm:"foreignKey:UserID"`
}
