package store

import (
	"context"
	"errors"
	"testing"

	"github.com/erazemk/dostava/internal/db"
	"github.com/erazemk/dostava/internal/model"
)

// begin opens a unit of work that is released when the test ends.
func begin(t *testing.T, database *db.DB) *UnitOfWork {
	t.Helper()
	u, err := Begin(context.Background(), database)
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	t.Cleanup(func() { u.Release() })
	return u
}

func strPtr(s string) *string { return &s }

func TestAddAndGetItem(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	u := begin(t, database)

	item := model.Item{Name: "Laptop", Description: strPtr("Dell XPS 15"), Price: 1299.5}
	if err := AddItem(ctx, u, &item); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if item.ID == 0 {
		t.Fatal("expected ID to be assigned")
	}

	got, err := GetItem(ctx, u, item.ID)
	if err != nil {
		t.Fatalf("GetItem: %v", err)
	}
	if got == nil || got.Name != "Laptop" || got.Price != 1299.5 {
		t.Fatalf("unexpected item: %+v", got)
	}
	if got.Description == nil || *got.Description != "Dell XPS 15" {
		t.Errorf("expected description to round-trip, got %v", got.Description)
	}
}

func TestGetMissingItemReturnsNil(t *testing.T) {
	database := db.NewTestDB(t)
	u := begin(t, database)

	got, err := GetItem(context.Background(), u, 42)
	if err != nil {
		t.Fatalf("GetItem: %v", err)
	}
	if got != nil {
		t.Errorf("expected nil, got %+v", got)
	}
}

func TestListItemsPages(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	u := begin(t, database)

	for _, name := range []string{"a", "b", "c", "d"} {
		if err := AddItem(ctx, u, &model.Item{Name: name, Price: 1}); err != nil {
			t.Fatalf("AddItem: %v", err)
		}
	}

	page, err := ListItems(ctx, u, 1, 2)
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if len(page) != 2 || page[0].Name != "b" || page[1].Name != "c" {
		t.Errorf("expected [b c], got %+v", page)
	}

	empty, err := ListItems(ctx, u, 10, 5)
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if empty == nil || len(empty) != 0 {
		t.Errorf("expected empty non-nil slice, got %#v", empty)
	}
}

func TestSaveItemClearsDescription(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	u := begin(t, database)

	item := model.Item{Name: "Mouse", Description: strPtr("wireless"), Price: 20}
	AddItem(ctx, u, &item)

	item.Description = nil
	item.Price = 25
	if err := SaveItem(ctx, u, item); err != nil {
		t.Fatalf("SaveItem: %v", err)
	}

	got, _ := GetItem(ctx, u, item.ID)
	if got.Description != nil || got.Price != 25 {
		t.Errorf("unexpected item after save: %+v", got)
	}
}

func TestDeleteItem(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()
	u := begin(t, database)

	item := model.Item{Name: "Delete Me", Price: 1}
	AddItem(ctx, u, &item)

	if err := DeleteItem(ctx, u, item.ID); err != nil {
		t.Fatalf("DeleteItem: %v", err)
	}
	if got, _ := GetItem(ctx, u, item.ID); got != nil {
		t.Errorf("expected item to be gone, got %+v", got)
	}

	err := DeleteItem(ctx, u, item.ID)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestSaveMissingItem(t *testing.T) {
	database := db.NewTestDB(t)
	u := begin(t, database)

	err := SaveItem(context.Background(), u, model.Item{ID: 9, Name: "ghost", Price: 1})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
