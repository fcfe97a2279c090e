// Package invoice provides client billing operations.
package invoice

import (
	"errors"
	"fmt"
	"time"

	"github.com/haiderali9-9/edifice/internal/models"
	"github.com/haiderali9-9/edifice/internal/store"
	"gorm.io/gorm"
)

// ItemOpts is one billed line on a new invoice.
type ItemOpts struct {
	Description string
	Quantity    float64
	UnitPrice   float64
}

// CreateOpts holds parameters for creating a new invoice.
type CreateOpts struct {
	ProjectID string
	Client    string
	IssuedOn  *time.Time
	DueOn     *time.Time
	Items     []ItemOpts
}

// ListFilters holds optional filters for listing invoices.
type ListFilters struct {
	ProjectID string
	Status    string
	Client    string
}

// ValidTransitions maps each invoice status to its valid next statuses.
var ValidTransitions = map[string][]string{
	models.InvoiceDraft: {models.InvoiceSent, models.InvoiceVoid},
	models.InvoiceSent:  {models.InvoicePaid, models.InvoiceVoid},
	models.InvoicePaid:  {},
	models.InvoiceVoid:  {},
}

// Create validates opts and persists an invoice with its items in one
// transaction. The total is derived from the items, never supplied.
func Create(s *store.Store, opts CreateOpts) (*models.Invoice, error) {
	if opts.ProjectID == "" {
		return nil, store.Invalid("invoice: project is required")
	}
	if opts.Client == "" {
		return nil, store.Invalid("invoice: client is required")
	}
	if len(opts.Items) == 0 {
		return nil, store.Invalid("invoice: at least one item is required")
	}
	for i, item := range opts.Items {
		if item.Description == "" {
			return nil, store.Invalid("invoice: items[%d].description is required", i)
		}
		if item.Quantity <= 0 {
			return nil, store.Invalid("invoice: items[%d].quantity must be positive", i)
		}
		if item.UnitPrice < 0 {
			return nil, store.Invalid("invoice: items[%d].unit_price must not be negative", i)
		}
	}

	db, err := s.DB()
	if err != nil {
		return nil, err
	}

	var inv *models.Invoice
	err = db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.Project{}).Where("id = ?", opts.ProjectID).Count(&count).Error; err != nil {
			return store.Wrap("invoice: check project "+opts.ProjectID, err)
		}
		if count == 0 {
			return store.NotFound("project", opts.ProjectID)
		}

		id, err := store.NewID("inv")
		if err != nil {
			return err
		}
		number, err := store.NewID("INV")
		if err != nil {
			return err
		}

		in := models.Invoice{
			ID:        id,
			ProjectID: opts.ProjectID,
			Client:    opts.Client,
			Number:    number,
			Status:    models.InvoiceDraft,
			IssuedOn:  opts.IssuedOn,
			DueOn:     opts.DueOn,
		}
		for _, item := range opts.Items {
			in.Total += item.Quantity * item.UnitPrice
			in.Items = append(in.Items, models.InvoiceItem{
				InvoiceID:   id,
				Description: item.Description,
				Quantity:    item.Quantity,
				UnitPrice:   item.UnitPrice,
			})
		}
		if err := tx.Create(&in).Error; err != nil {
			return store.Wrap("invoice: create", err)
		}
		inv = &in
		return nil
	})
	if err != nil {
		return nil, err
	}
	return inv, nil
}

// Get retrieves an invoice with its items.
func Get(s *store.Store, id string) (*models.Invoice, error) {
	db, err := s.DB()
	if err != nil {
		return nil, err
	}
	var inv models.Invoice
	if err := db.Preload("Items").Where("id = ?", id).First(&inv).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.NotFound("invoice", id)
		}
		return nil, store.Wrap("invoice: get "+id, err)
	}
	return &inv, nil
}

// List returns invoices matching the filters, newest first.
func List(s *store.Store, filters ListFilters) ([]models.Invoice, error) {
	db, err := s.DB()
	if err != nil {
		return nil, err
	}
	q := db.Model(&models.Invoice{})
	if filters.ProjectID != "" {
		q = q.Where("project_id = ?", filters.ProjectID)
	}
	if filters.Status != "" {
		q = q.Where("status = ?", filters.Status)
	}
	if filters.Client != "" {
		q = q.Where("client = ?", filters.Client)
	}
	invoices := []models.Invoice{}
	if err := q.Order("created_at DESC").Find(&invoices).Error; err != nil {
		return nil, store.Wrap("invoice: list", err)
	}
	return invoices, nil
}

// UpdateStatus moves an invoice through its lifecycle. Transitions are
// validated against ValidTransitions; Paid and Void are terminal.
func UpdateStatus(s *store.Store, id, newStatus string) (*models.Invoice, error) {
	if !models.ValidStatus(models.InvoiceStatuses, newStatus) {
		return nil, store.Invalid("invoice: invalid status %q", newStatus)
	}

	db, err := s.DB()
	if err != nil {
		return nil, err
	}
	var inv models.Invoice
	if err := db.Where("id = ?", id).First(&inv).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.NotFound("invoice", id)
		}
		return nil, store.Wrap("invoice: get "+id, err)
	}

	if !isValidTransition(inv.Status, newStatus) {
		return nil, store.Conflict("invoice", id,
			fmt.Sprintf("cannot move from %q to %q", inv.Status, newStatus))
	}

	updates := map[string]interface{}{"status": newStatus}
	if newStatus == models.InvoiceSent && inv.IssuedOn == nil {
		now := time.Now()
		updates["issued_on"] = now
	}
	if err := db.Model(&models.Invoice{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, store.Wrap("invoice: update status of "+id, err)
	}
	return Get(s, id)
}

// Delete removes a draft invoice and its items. Sent, paid, and void
// invoices are the billing record and cannot be deleted.
func Delete(s *store.Store, id string) error {
	db, err := s.DB()
	if err != nil {
		return err
	}
	return db.Transaction(func(tx *gorm.DB) error {
		var inv models.Invoice
		if err := tx.Where("id = ?", id).First(&inv).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return store.NotFound("invoice", id)
			}
			return store.Wrap("invoice: get "+id, err)
		}
		if inv.Status != models.InvoiceDraft {
			return store.Invalid("invoice: only draft invoices can be deleted, %s is %s", id, inv.Status)
		}
		if err := tx.Where("invoice_id = ?", id).Delete(&models.InvoiceItem{}).Error; err != nil {
			return store.Wrap("invoice: delete items of "+id, err)
		}
		if err := tx.Where("id = ?", id).Delete(&models.Invoice{}).Error; err != nil {
			return store.Wrap("invoice: delete "+id, err)
		}
		return nil
	})
}

// isValidTransition checks whether a status transition is allowed.
func isValidTransition(from, to string) bool {
	for _, v := range ValidTransitions[from] {
		if v == to {
			return true
		}
	}
	return false
}
