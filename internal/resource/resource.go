// Package resource provides resource and allocation operations.
package resource

import (
	"errors"

	"github.com/haiderali9-9/edifice/internal/models"
	"github.com/haiderali9-9/edifice/internal/store"
	"gorm.io/gorm"
)

// lowStockFraction is the remaining-quantity fraction below which a
// resource reads as Low Stock.
const lowStockFraction = 0.2

// CreateOpts holds parameters for creating a new resource.
type CreateOpts struct {
	Name     string
	Type     string
	Quantity float64
	Unit     string
	Cost     float64
}

// View is a resource with its derived allocation figures.
type View struct {
	models.Resource
	Allocated float64 `json:"allocated"`
	Status    string  `json:"status"`
}

// StockStatus derives the display status from quantity and the total
// already allocated.
func StockStatus(quantity, allocated float64) string {
	remaining := quantity - allocated
	switch {
	case remaining <= 0:
		return models.StockOut
	case remaining < quantity*lowStockFraction:
		return models.StockLow
	default:
		return models.StockAvailable
	}
}

// Create validates opts and persists a new resource.
func Create(s *store.Store, opts CreateOpts) (*models.Resource, error) {
	if opts.Name == "" {
		return nil, store.Invalid("resource: name is required")
	}
	if !models.ValidStatus(models.ResourceTypes, opts.Type) {
		return nil, store.Invalid("resource: invalid type %q", opts.Type)
	}
	if opts.Quantity < 0 {
		return nil, store.Invalid("resource: quantity must not be negative")
	}
	if opts.Cost < 0 {
		return nil, store.Invalid("resource: cost must not be negative")
	}

	db, err := s.DB()
	if err != nil {
		return nil, err
	}
	id, err := store.NewID("res")
	if err != nil {
		return nil, err
	}
	r := models.Resource{
		ID:       id,
		Name:     opts.Name,
		Type:     opts.Type,
		Quantity: opts.Quantity,
		Unit:     opts.Unit,
		Cost:     opts.Cost,
	}
	if err := db.Create(&r).Error; err != nil {
		return nil, store.Wrap("resource: create", err)
	}
	return &r, nil
}

// Get retrieves a resource with derived allocation figures.
func Get(s *store.Store, id string) (*View, error) {
	db, err := s.DB()
	if err != nil {
		return nil, err
	}
	var r models.Resource
	if err := db.Where("id = ?", id).First(&r).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, store.NotFound("resource", id)
		}
		return nil, store.Wrap("resource: get "+id, err)
	}
	allocated, err := allocatedTotal(db, id)
	if err != nil {
		return nil, err
	}
	return &View{Resource: r, Allocated: allocated, Status: StockStatus(r.Quantity, allocated)}, nil
}

// List returns all resources with derived figures, newest first, or the
// ones of a single type.
func List(s *store.Store, resourceType string) ([]View, error) {
	db, err := s.DB()
	if err != nil {
		return nil, err
	}
	q := db.Model(&models.Resource{})
	if resourceType != "" {
		q = q.Where("type = ?", resourceType)
	}
	var resources []models.Resource
	if err := q.Order("created_at DESC").Find(&resources).Error; err != nil {
		return nil, store.Wrap("resource: list", err)
	}

	views := make([]View, 0, len(resources))
	for _, r := range resources {
		allocated, err := allocatedTotal(db, r.ID)
		if err != nil {
			return nil, err
		}
		views = append(views, View{Resource: r, Allocated: allocated, Status: StockStatus(r.Quantity, allocated)})
	}
	return views, nil
}

// Update applies a partial update and returns the refreshed view.
func Update(s *store.Store, id string, updates map[string]interface{}) (*View, error) {
	if len(updates) == 0 {
		return nil, store.Invalid("resource: no fields to update")
	}
	for _, field := range []string{"id", "created_at"} {
		if _, ok := updates[field]; ok {
			return nil, store.Invalid("resource: field %q cannot be updated", field)
		}
	}
	if v, ok := updates["quantity"]; ok {
		q, ok := store.AsFloat(v)
		if !ok || q < 0 {
			return nil, store.Invalid("resource: quantity must be a non-negative number")
		}
		updates["quantity"] = q
	}
	if v, ok := updates["type"]; ok {
		rt, _ := v.(string)
		if !models.ValidStatus(models.ResourceTypes, rt) {
			return nil, store.Invalid("resource: invalid type %q", rt)
		}
	}

	db, err := s.DB()
	if err != nil {
		return nil, err
	}
	res := db.Model(&models.Resource{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return nil, store.Wrap("resource: update "+id, res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, store.NotFound("resource", id)
	}
	return Get(s, id)
}

// Delete removes a resource and its allocations.
func Delete(s *store.Store, id string) error {
	db, err := s.DB()
	if err != nil {
		return err
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ?", id).Delete(&models.Resource{})
		if res.Error != nil {
			return store.Wrap("resource: delete "+id, res.Error)
		}
		if res.RowsAffected == 0 {
			return store.NotFound("resource", id)
		}
		if err := tx.Where("resource_id = ?", id).Delete(&models.ResourceAllocation{}).Error; err != nil {
			return store.Wrap("resource: delete allocations for "+id, err)
		}
		return nil
	})
	return err
}

// Allocate reserves quantity of a resource for a project. The total
// allocated may never exceed the resource's quantity.
func Allocate(s *store.Store, resourceID, projectID string, quantity float64) (*models.ResourceAllocation, error) {
	if quantity <= 0 {
		return nil, store.Invalid("resource: allocation quantity must be positive")
	}
	if projectID == "" {
		return nil, store.Invalid("resource: allocation project is required")
	}

	db, err := s.DB()
	if err != nil {
		return nil, err
	}

	var alloc *models.ResourceAllocation
	err = db.Transaction(func(tx *gorm.DB) error {
		var r models.Resource
		if err := tx.Where("id = ?", resourceID).First(&r).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return store.NotFound("resource", resourceID)
			}
			return store.Wrap("resource: get "+resourceID, err)
		}

		var count int64
		if err := tx.Model(&models.Project{}).Where("id = ?", projectID).Count(&count).Error; err != nil {
			return store.Wrap("resource: check project "+projectID, err)
		}
		if count == 0 {
			return store.NotFound("project", projectID)
		}

		allocated, err := allocatedTotal(tx, resourceID)
		if err != nil {
			return err
		}
		if allocated+quantity > r.Quantity {
			return store.Invalid("resource: allocating %.2f exceeds remaining %.2f of %q",
				quantity, r.Quantity-allocated, r.Name)
		}

		id, err := store.NewID("alloc")
		if err != nil {
			return err
		}
		a := models.ResourceAllocation{
			ID:         id,
			ResourceID: resourceID,
			ProjectID:  projectID,
			Quantity:   quantity,
		}
		if err := tx.Create(&a).Error; err != nil {
			return store.Wrap("resource: allocate", err)
		}
		alloc = &a
		return nil
	})
	if err != nil {
		return nil, err
	}
	return alloc, nil
}

// Release removes an allocation, returning its quantity to the pool.
func Release(s *store.Store, allocationID string) error {
	db, err := s.DB()
	if err != nil {
		return err
	}
	res := db.Where("id = ?", allocationID).Delete(&models.ResourceAllocation{})
	if res.Error != nil {
		return store.Wrap("resource: release "+allocationID, res.Error)
	}
	if res.RowsAffected == 0 {
		return store.NotFound("allocation", allocationID)
	}
	return nil
}

// Allocations lists a project's allocations, newest first.
func Allocations(s *store.Store, projectID string) ([]models.ResourceAllocation, error) {
	db, err := s.DB()
	if err != nil {
		return nil, err
	}
	allocs := []models.ResourceAllocation{}
	if err := db.Where("project_id = ?", projectID).
		Order("created_at DESC").Find(&allocs).Error; err != nil {
		return nil, store.Wrap("resource: list allocations", err)
	}
	return allocs, nil
}

func allocatedTotal(db *gorm.DB, resourceID string) (float64, error) {
	var total float64
	err := db.Model(&models.ResourceAllocation{}).
		Where("resource_id = ?", resourceID).
		Select("COALESCE(SUM(quantity), 0)").
		Scan(&total).Error
	if err != nil {
		return 0, store.Wrap("resource: sum allocations for "+resourceID, err)
	}
	return total, nil
}
