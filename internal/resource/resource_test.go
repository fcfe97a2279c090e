package resource

import (
	"testing"

	"github.com/haiderali9-9/edifice/internal/models"
	"github.com/haiderali9-9/edifice/internal/store"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testStore(t *testing.T) (*store.Store, string) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	if err := db.AutoMigrate(&models.Project{}, &models.Resource{}, &models.ResourceAllocation{}); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	p := models.Project{ID: "proj-00000001", Name: "Riverside Tower", Client: "Acme", Version: 1}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("seed project: %v", err)
	}
	return store.FromDB(db), p.ID
}

func TestStockStatus(t *testing.T) {
	tests := []struct {
		quantity  float64
		allocated float64
		want      string
	}{
		{100, 0, models.StockAvailable},
		{100, 50, models.StockAvailable},
		{100, 80, models.StockAvailable},  // exactly 20% remaining
		{100, 81, models.StockLow},        // below the 20% line
		{100, 99.5, models.StockLow},
		{100, 100, models.StockOut},
		{100, 120, models.StockOut},
		{0, 0, models.StockOut},
	}
	for _, tt := range tests {
		if got := StockStatus(tt.quantity, tt.allocated); got != tt.want {
			t.Errorf("StockStatus(%v, %v) = %q, want %q", tt.quantity, tt.allocated, got, tt.want)
		}
	}
}

func TestCreate_Validation(t *testing.T) {
	s, _ := testStore(t)
	tests := []struct {
		name string
		opts CreateOpts
	}{
		{"missing name", CreateOpts{Type: models.ResourceMaterial}},
		{"bad type", CreateOpts{Name: "Rebar", Type: "Widget"}},
		{"negative quantity", CreateOpts{Name: "Rebar", Type: models.ResourceMaterial, Quantity: -1}},
		{"negative cost", CreateOpts{Name: "Rebar", Type: models.ResourceMaterial, Cost: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Create(s, tt.opts); !store.IsValidation(err) {
				t.Errorf("err = %v, want ValidationError", err)
			}
		})
	}
}

func TestCreate_ThenGet(t *testing.T) {
	s, _ := testStore(t)
	created, err := Create(s, CreateOpts{
		Name: "Rebar 12mm", Type: models.ResourceMaterial,
		Quantity: 500, Unit: "ton", Cost: 640,
	})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	got, err := Get(s, created.ID)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got.Name != "Rebar 12mm" || got.Quantity != 500 || got.Unit != "ton" {
		t.Errorf("roundtrip mismatch: %+v", got)
	}
	if got.Allocated != 0 || got.Status != models.StockAvailable {
		t.Errorf("derived fields = %v/%q, want 0/Available", got.Allocated, got.Status)
	}
}

func TestUpdate_QuantityNumericForms(t *testing.T) {
	s, _ := testStore(t)
	r, err := Create(s, CreateOpts{Name: "Rebar", Type: models.ResourceMaterial, Quantity: 500, Unit: "ton"})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	// Both native ints and JSON-decoded float64s are valid quantities.
	for _, q := range []interface{}{450, float64(400)} {
		updated, err := Update(s, r.ID, map[string]interface{}{"quantity": q})
		if err != nil {
			t.Fatalf("quantity %v: %v", q, err)
		}
		want, _ := store.AsFloat(q)
		if updated.Quantity != want {
			t.Errorf("quantity %v: stored %v, want %v", q, updated.Quantity, want)
		}
	}

	for _, q := range []interface{}{-1, float64(-5), "400"} {
		if _, err := Update(s, r.ID, map[string]interface{}{"quantity": q}); !store.IsValidation(err) {
			t.Errorf("quantity %v: err = %v, want ValidationError", q, err)
		}
	}
}

func TestAllocate_TracksDerivedStatus(t *testing.T) {
	s, projID := testStore(t)
	r, err := Create(s, CreateOpts{Name: "Crane", Type: models.ResourceEquipment, Quantity: 2, Unit: "unit", Cost: 1800})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := Allocate(s, r.ID, projID, 2); err != nil {
		t.Fatalf("Allocate() error: %v", err)
	}

	got, err := Get(s, r.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Allocated != 2 || got.Status != models.StockOut {
		t.Errorf("after full allocation: allocated=%v status=%q", got.Allocated, got.Status)
	}
}

func TestAllocate_RejectsOvercommit(t *testing.T) {
	s, projID := testStore(t)
	r, err := Create(s, CreateOpts{Name: "Cement", Type: models.ResourceMaterial, Quantity: 100, Unit: "bag"})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := Allocate(s, r.ID, projID, 70); err != nil {
		t.Fatalf("first Allocate() error: %v", err)
	}
	_, err = Allocate(s, r.ID, projID, 40)
	if !store.IsValidation(err) {
		t.Fatalf("overcommit err = %v, want ValidationError", err)
	}

	// The rejected allocation left nothing behind.
	got, _ := Get(s, r.ID)
	if got.Allocated != 70 {
		t.Errorf("Allocated = %v, want 70", got.Allocated)
	}
}

func TestAllocate_Validation(t *testing.T) {
	s, projID := testStore(t)
	r, err := Create(s, CreateOpts{Name: "Cement", Type: models.ResourceMaterial, Quantity: 10})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Allocate(s, r.ID, projID, 0); !store.IsValidation(err) {
		t.Errorf("zero quantity err = %v, want ValidationError", err)
	}
	if _, err := Allocate(s, r.ID, "", 1); !store.IsValidation(err) {
		t.Errorf("missing project err = %v, want ValidationError", err)
	}
	if _, err := Allocate(s, "res-ffffffff", projID, 1); !store.IsNotFound(err) {
		t.Errorf("missing resource err = %v, want NotFoundError", err)
	}
	if _, err := Allocate(s, r.ID, "proj-ffffffff", 1); !store.IsNotFound(err) {
		t.Errorf("missing project row err = %v, want NotFoundError", err)
	}
}

func TestRelease_RestoresPool(t *testing.T) {
	s, projID := testStore(t)
	r, err := Create(s, CreateOpts{Name: "Scaffold", Type: models.ResourceEquipment, Quantity: 10})
	if err != nil {
		t.Fatal(err)
	}
	a, err := Allocate(s, r.ID, projID, 10)
	if err != nil {
		t.Fatal(err)
	}

	if err := Release(s, a.ID); err != nil {
		t.Fatalf("Release() error: %v", err)
	}
	got, _ := Get(s, r.ID)
	if got.Allocated != 0 || got.Status != models.StockAvailable {
		t.Errorf("after release: allocated=%v status=%q", got.Allocated, got.Status)
	}

	if err := Release(s, a.ID); !store.IsNotFound(err) {
		t.Errorf("double release err = %v, want NotFoundError", err)
	}
}

func TestAllocations_ByProject(t *testing.T) {
	s, projID := testStore(t)
	r, err := Create(s, CreateOpts{Name: "Cement", Type: models.ResourceMaterial, Quantity: 100})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Allocate(s, r.ID, projID, 30); err != nil {
		t.Fatal(err)
	}

	allocs, err := Allocations(s, projID)
	if err != nil {
		t.Fatalf("Allocations() error: %v", err)
	}
	if len(allocs) != 1 || allocs[0].Quantity != 30 {
		t.Errorf("allocations = %+v", allocs)
	}

	empty, err := Allocations(s, "proj-ffffffff")
	if err != nil {
		t.Fatalf("Allocations() error: %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Errorf("Allocations() = %v, want empty slice", empty)
	}
}

func TestList_ByType(t *testing.T) {
	s, _ := testStore(t)
	if _, err := Create(s, CreateOpts{Name: "Rebar", Type: models.ResourceMaterial, Quantity: 1}); err != nil {
		t.Fatal(err)
	}
	if _, err := Create(s, CreateOpts{Name: "Crane", Type: models.ResourceEquipment, Quantity: 1}); err != nil {
		t.Fatal(err)
	}

	got, err := List(s, models.ResourceEquipment)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Crane" {
		t.Errorf("List(Equipment) = %+v", got)
	}
}

func TestDelete_RemovesAllocations(t *testing.T) {
	s, projID := testStore(t)
	r, err := Create(s, CreateOpts{Name: "Cement", Type: models.ResourceMaterial, Quantity: 100})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Allocate(s, r.ID, projID, 10); err != nil {
		t.Fatal(err)
	}

	if err := Delete(s, r.ID); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	allocs, err := Allocations(s, projID)
	if err != nil {
		t.Fatal(err)
	}
	if len(allocs) != 0 {
		t.Errorf("allocations survived resource delete: %+v", allocs)
	}

	if err := Delete(s, r.ID); !store.IsNotFound(err) {
		t.Errorf("second delete err = %v, want NotFoundError", err)
	}
}
