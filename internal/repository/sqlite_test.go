package repository

import (
	"context"
	"testing"

	"github.com/mr1hm/go-shelter-advisor/internal/models"
)

func setupTestDB(t *testing.T) *SQLiteDB {
	db, err := NewSQLiteDB(":memory:")
	if err != nil {
		t.Fatalf("failed to create test db: %v", err)
	}
	return db
}

func elev(v float64) *float64 { return &v }

func TestSQLiteDB_UpsertShelters(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	shelter := models.Shelter{
		ID:        "cupertino_library",
		Name:      "Cupertino Library",
		Type:      "Public Library",
		Address:   "10800 Torre Ave, Cupertino, CA",
		Latitude:  37.323,
		Longitude: -122.032,
		Capacity:  300,
		Elevation: elev(72),
		Features:  []string{"Internet Access", "Meeting Rooms"},
	}

	if _, err := db.UpsertShelters(ctx, []models.Shelter{shelter}); err != nil {
		t.Fatalf("UpsertShelters failed: %v", err)
	}

	got, err := db.ListShelters(ctx)
	if err != nil {
		t.Fatalf("ListShelters failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 shelter, got %d", len(got))
	}
	if got[0].Name != "Cupertino Library" {
		t.Errorf("expected name 'Cupertino Library', got '%s'", got[0].Name)
	}
	if got[0].Elevation == nil || *got[0].Elevation != 72 {
		t.Errorf("expected elevation 72, got %v", got[0].Elevation)
	}
	if len(got[0].Features) != 2 || got[0].Features[1] != "Meeting Rooms" {
		t.Errorf("unexpected features: %v", got[0].Features)
	}

	// update in place
	shelter.Capacity = 450
	shelter.Elevation = nil
	if _, err := db.UpsertShelters(ctx, []models.Shelter{shelter}); err != nil {
		t.Fatalf("second UpsertShelters failed: %v", err)
	}
	got, err = db.ListShelters(ctx)
	if err != nil {
		t.Fatalf("ListShelters failed: %v", err)
	}
	if got[0].Capacity != 450 {
		t.Errorf("expected capacity 450, got %d", got[0].Capacity)
	}
	if got[0].Elevation != nil {
		t.Errorf("expected unknown elevation, got %v", *got[0].Elevation)
	}

	n, err := db.CountShelters(ctx)
	if err != nil {
		t.Fatalf("CountShelters failed: %v", err)
	}
	if n != 1 {
		t.Errorf("expected 1 shelter, got %d", n)
	}
}

func TestSQLiteDB_ListShelters(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	ctx := context.Background()
	shelters := []models.Shelter{
		{ID: "c", Name: "Gym", Type: "School Gymnasium", Latitude: 37.31, Longitude: -122.01},
		{ID: "a", Name: "Station 71", Type: "Fire Station", Latitude: 37.33, Longitude: -122.03, StructureType: models.StructureReinforced},
		{ID: "b", Name: "Station 72", Type: "Fire Station", Latitude: 37.34, Longitude: -122.04},
	}
	n, err := db.UpsertShelters(ctx, shelters)
	if err != nil {
		t.Fatalf("UpsertShelters failed: %v", err)
	}
	if n != 3 {
		t.Errorf("expected 3 upserts, got %d", n)
	}

	all, err := db.ListShelters(ctx)
	if err != nil {
		t.Fatalf("ListShelters failed: %v", err)
	}
	if len(all) != 3 || all[0].ID != "a" || all[2].ID != "c" {
		t.Fatalf("unexpected order: %+v", all)
	}
	if all[0].StructureType != models.StructureReinforced {
		t.Errorf("expected reinforced structure, got %q", all[0].StructureType)
	}
	if all[2].Features == nil || len(all[2].Features) != 0 {
		t.Errorf("expected empty features slice, got %v", all[2].Features)
	}
}

func TestSQLiteDB_ListSheltersEmpty(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	all, err := db.ListShelters(context.Background())
	if err != nil {
		t.Fatalf("ListShelters failed: %v", err)
	}
	if len(all) != 0 {
		t.Errorf("expected no shelters, got %d", len(all))
	}
}
