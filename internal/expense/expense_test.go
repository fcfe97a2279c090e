package expense

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
	if err := db.AutoMigrate(&models.Project{}, &models.Expense{}); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	p := models.Project{ID: "proj-00000001", Name: "Riverside Tower", Client: "Acme", Version: 1}
	if err := db.Create(&p).Error; err != nil {
		t.Fatalf("seed project: %v", err)
	}
	return store.FromDB(db), p.ID
}

func TestCreate_Validation(t *testing.T) {
	s, projID := testStore(t)
	tests := []struct {
		name string
		opts CreateOpts
	}{
		{"missing project", CreateOpts{Description: "X", Amount: 10}},
		{"missing description", CreateOpts{ProjectID: projID, Amount: 10}},
		{"zero amount", CreateOpts{ProjectID: projID, Description: "X"}},
		{"negative amount", CreateOpts{ProjectID: projID, Description: "X", Amount: -5}},
		{"bad category", CreateOpts{ProjectID: projID, Description: "X", Amount: 10, Category: "Bribes"}},
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
	s, projID := testStore(t)
	e, err := Create(s, CreateOpts{
		ProjectID:   projID,
		Description: "Concrete pump rental",
		Category:    "Equipment",
		Amount:      2400.50,
	})
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	got, err := Get(s, e.ID)
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got.Description != e.Description || got.Amount != 2400.50 || got.Category != "Equipment" {
		t.Errorf("roundtrip mismatch: %+v", got)
	}
}

func TestProjectTotal(t *testing.T) {
	s, projID := testStore(t)
	for _, amount := range []float64{100, 250.25, 49.75} {
		if _, err := Create(s, CreateOpts{ProjectID: projID, Description: "X", Amount: amount}); err != nil {
			t.Fatal(err)
		}
	}

	total, err := ProjectTotal(s, projID)
	if err != nil {
		t.Fatalf("ProjectTotal() error: %v", err)
	}
	if total != 400 {
		t.Errorf("total = %v, want 400", total)
	}

	zero, err := ProjectTotal(s, "proj-ffffffff")
	if err != nil {
		t.Fatalf("ProjectTotal() error: %v", err)
	}
	if zero != 0 {
		t.Errorf("total = %v, want 0", zero)
	}
}

func TestList_And_Delete(t *testing.T) {
	s, projID := testStore(t)
	e, err := Create(s, CreateOpts{ProjectID: projID, Description: "X", Amount: 10, Category: "Transport"})
	if err != nil {
		t.Fatal(err)
	}

	got, err := List(s, projID, "Transport")
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("len = %d, want 1", len(got))
	}

	if err := Delete(s, e.ID); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if _, err := Get(s, e.ID); !store.IsNotFound(err) {
		t.Errorf("err = %v, want NotFoundError", err)
	}
}
