package repository

import (
	"context"
	"errors"

	"github.com/Lixing-Zhang/menu-builder/internal/models"
)

var (
	ErrDishNotFound = errors.New("dish not found")
)

// CatalogRepository defines read access to the predefined dishes
type CatalogRepository interface {
	GetAll(ctx context.Context) ([]models.Dish, error)
	GetByID(ctx context.Context, id string) (*models.Dish, error)
	GetByCourse(ctx context.Context, course models.Course) ([]models.Dish, error)
}

// InMemoryCatalogRepository implements CatalogRepository over a fixed list
type InMemoryCatalogRepository struct {
	dishes []models.Dish
	byID   map[string]int
}

// NewInMemoryCatalogRepository creates a catalog holding a copy of dishes in the given order
func NewInMemoryCatalogRepository(dishes []models.Dish) *InMemoryCatalogRepository {
	r := &InMemoryCatalogRepository{
		dishes: append([]models.Dish(nil), dishes...),
		byID:   make(map[string]int, len(dishes)),
	}
	for i, d := range r.dishes {
		r.byID[d.ID] = i
	}
	return r
}

// GetAll returns all dishes in catalog order
func (r *InMemoryCatalogRepository) GetAll(ctx context.Context) ([]models.Dish, error) {
	return append([]models.Dish(nil), r.dishes...), nil
}

// GetByID returns a dish by its catalog ID
func (r *InMemoryCatalogRepository) GetByID(ctx context.Context, id string) (*models.Dish, error) {
	i, exists := r.byID[id]
	if !exists {
		return nil, ErrDishNotFound
	}
	dish := r.dishes[i]
	return &dish, nil
}

// GetByCourse returns the dishes of one course in catalog order
func (r *InMemoryCatalogRepository) GetByCourse(ctx context.Context, course models.Course) ([]models.Dish, error) {
	dishes := make([]models.Dish, 0)
	for _, d := range r.dishes {
		if d.Course == course {
			dishes = append(dishes, d)
		}
	}
	return dishes, nil
}
