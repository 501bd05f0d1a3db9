package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/Lixing-Zhang/menu-builder/internal/catalog"
	"github.com/Lixing-Zhang/menu-builder/internal/models"
)

func TestInMemoryCatalogRepository_GetAll(t *testing.T) {
	seed := catalog.Seed()
	repo := NewInMemoryCatalogRepository(seed)

	dishes, err := repo.GetAll(context.Background())
	if err != nil {
		t.Fatalf("GetAll() unexpected error = %v", err)
	}
	if len(dishes) != len(seed) {
		t.Fatalf("GetAll() returned %d dishes, want %d", len(dishes), len(seed))
	}
	for i := range seed {
		if dishes[i] != seed[i] {
			t.Errorf("dishes[%d] = %v, want %v", i, dishes[i], seed[i])
		}
	}

	dishes[0].Name = "mutated"
	again, _ := repo.GetAll(context.Background())
	if again[0].Name != seed[0].Name {
		t.Error("catalog changed through returned slice")
	}
}

func TestInMemoryCatalogRepository_GetByID(t *testing.T) {
	repo := NewInMemoryCatalogRepository(catalog.Seed())

	tests := []struct {
		id       string
		wantName string
		wantErr  error
	}{
		{"1", "Blueberry Waffles", nil},
		{"5", "Grilled Salmon", nil},
		{"12", "Pineapple Delight", nil},
		{"13", "", ErrDishNotFound},
		{"", "", ErrDishNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			dish, err := repo.GetByID(context.Background(), tt.id)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("GetByID(%q) error = %v, want %v", tt.id, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("GetByID(%q) unexpected error = %v", tt.id, err)
			}
			if dish.Name != tt.wantName {
				t.Errorf("GetByID(%q) name = %s, want %s", tt.id, dish.Name, tt.wantName)
			}
		})
	}
}

func TestInMemoryCatalogRepository_GetByCourse(t *testing.T) {
	repo := NewInMemoryCatalogRepository(catalog.Seed())

	desserts, err := repo.GetByCourse(context.Background(), models.CourseDesserts)
	if err != nil {
		t.Fatalf("GetByCourse() unexpected error = %v", err)
	}

	want := []string{"Mango Sorbet", "Coconut Tart", "Ocean Breeze Cake", "Pineapple Delight"}
	if len(desserts) != len(want) {
		t.Fatalf("GetByCourse(Desserts) returned %d dishes, want %d", len(desserts), len(want))
	}
	for i, d := range desserts {
		if d.Name != want[i] {
			t.Errorf("desserts[%d] = %s, want %s", i, d.Name, want[i])
		}
	}

	empty := NewInMemoryCatalogRepository(nil)
	none, err := empty.GetByCourse(context.Background(), models.CourseMains)
	if err != nil || none == nil || len(none) != 0 {
		t.Errorf("GetByCourse() on empty catalog = %v, %v", none, err)
	}
}
