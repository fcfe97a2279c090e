package models

import "time"

// Invoice bills a client for project work. Total is the sum of its
// items' amounts, computed at write time inside the same transaction.
type Invoice struct {
	ID        string  `gorm:"primaryKey;size:32"`
	ProjectID string  `gorm:"size:32;not null;index"`
	Client    string  `gorm:"size:128;not null"`
	Number    string  `gorm:"size:32;uniqueIndex"`
	Status    string  `gorm:"size:16;default:Draft;index"`
	Total     float64 `gorm:"default:0"`
	IssuedOn  *time.Time
	DueOn     *time.Time
	CreatedAt time.Time
	UpdatedAt time.Time

	Project *Project      `gorm:"foreignKey:ProjectID"`
	Items   []InvoiceItem `gorm:"foreignKey:InvoiceID"`
}

// InvoiceItem is a single billed line on an invoice.
type InvoiceItem struct {
	ID          uint    `gorm:"primaryKey;autoIncrement"`
	InvoiceID   string  `gorm:"size:32;not null;index"`
	Description string  `gorm:"not null"`
	Quantity    float64 `gorm:"default:1"`
	UnitPrice   float64 `gorm:"not null"`
	CreatedAt   time.Time
}
