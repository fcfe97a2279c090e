package models

import "time"

// Invitation is a pending email invite issued by the invite function.
type Invitation struct {
	ID         string `gorm:"primaryKey;size:36"`
	Email      string `gorm:"size:255;not null;index"`
	InvitedBy  string `gorm:"size:32"`
	Token      string `gorm:"size:36;uniqueIndex;not null"`
	AcceptedAt *time.Time
	ExpiresAt  time.Time
	CreatedAt  time.Time
}
