package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/Lixing-Zhang/menu-builder/internal/models"
	"github.com/Lixing-Zhang/menu-builder/internal/repository"
)

var (
	ErrAlreadyAdded = errors.New("dish is already on the menu")
)

// FilterAll selects every course on the browse screen
const FilterAll = "All"

// EmptyMenuMessage is shown by the categorized list when the menu has no items
const EmptyMenuMessage = "No Dishes Yet"

// BrowseDish is a catalog dish annotated with whether it is already on the menu
type BrowseDish struct {
	models.Dish
	Added bool `json:"added"`
}

// BrowseStats summarises the menu against the catalog
type BrowseStats struct {
	Dishes     int `json:"dishes"`
	Available  int `json:"available"`
	Categories int `json:"categories"`
}

// BrowseView is what the browse screen renders
type BrowseView struct {
	Filter string       `json:"filter"`
	Stats  BrowseStats  `json:"stats"`
	Dishes []BrowseDish `json:"dishes"`
}

// CourseSection is one non-empty course of the categorized list
type CourseSection struct {
	Course models.Course     `json:"course"`
	Count  int               `json:"count"`
	Items  []models.MenuItem `json:"items"`
}

// MenuSections is what the categorized list screen renders
type MenuSections struct {
	Total    int             `json:"total"`
	Label    string          `json:"label"`
	Empty    bool            `json:"empty"`
	Message  string          `json:"message,omitempty"`
	Sections []CourseSection `json:"sections"`
}

// MenuService implements the browse, create and list use cases over one shared store
type MenuService struct {
	store   repository.MenuStore
	catalog repository.CatalogRepository
}

// NewMenuService creates a new menu service
func NewMenuService(store repository.MenuStore, catalog repository.CatalogRepository) *MenuService {
	return &MenuService{
		store:   store,
		catalog: catalog,
	}
}

// Browse lists catalog dishes for filter ("" or "All" for every course)
func (s *MenuService) Browse(ctx context.Context, filter string) (*BrowseView, error) {
	all, err := s.catalog.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list catalog: %w", err)
	}

	dishes := all
	if filter == "" {
		filter = FilterAll
	}
	if filter != FilterAll {
		course, err := models.ParseCourse(filter)
		if err != nil {
			return nil, err
		}
		dishes, err = s.catalog.GetByCourse(ctx, course)
		if err != nil {
			return nil, fmt.Errorf("failed to list catalog: %w", err)
		}
	}

	view := &BrowseView{
		Filter: filter,
		Stats: BrowseStats{
			Dishes:     s.store.GetTotalItems(),
			Available:  len(all),
			Categories: len(models.Courses()),
		},
		Dishes: make([]BrowseDish, 0, len(dishes)),
	}
	for _, d := range dishes {
		view.Dishes = append(view.Dishes, BrowseDish{
			Dish:  d,
			Added: s.store.IsItemPresent(d.Name),
		})
	}

	return view, nil
}

// AddFromCatalog adds a catalog dish unless a dish of the same name is already on the menu
func (s *MenuService) AddFromCatalog(ctx context.Context, dishID string) (models.MenuItem, error) {
	dish, err := s.catalog.GetByID(ctx, dishID)
	if err != nil {
		return models.MenuItem{}, err
	}

	item, added := s.store.AddItemIfAbsent(dish.NewItem())
	if !added {
		return models.MenuItem{}, ErrAlreadyAdded
	}
	return item, nil
}

// CreateDish validates a user-authored dish and adds it to the menu.
// Nothing reaches the store when validation fails.
func (s *MenuService) CreateDish(form DishForm) (models.MenuItem, error) {
	payload, err := form.Validate()
	if err != nil {
		return models.MenuItem{}, err
	}
	return s.store.AddItem(payload), nil
}

// ListItems returns every item, or only those of course when it is non-empty
func (s *MenuService) ListItems(course string) ([]models.MenuItem, error) {
	if course == "" {
		return s.store.GetAllItems(), nil
	}

	c, err := models.ParseCourse(course)
	if err != nil {
		return nil, err
	}
	return s.store.GetItemsByCourse(c), nil
}

// Sections groups the menu by course in fixed order, skipping empty courses.
// All sections are derived from one snapshot so counts always agree.
func (s *MenuService) Sections() MenuSections {
	snapshot := s.store.GetAllItems()
	total := len(snapshot)

	out := MenuSections{
		Total:    total,
		Label:    dishLabel(total),
		Sections: make([]CourseSection, 0, len(models.Courses())),
	}
	if total == 0 {
		out.Empty = true
		out.Message = EmptyMenuMessage
		return out
	}

	byCourse := make(map[models.Course][]models.MenuItem, len(models.Courses()))
	for _, item := range snapshot {
		byCourse[item.Course] = append(byCourse[item.Course], item)
	}

	for _, c := range models.Courses() {
		items := byCourse[c]
		if len(items) == 0 {
			continue
		}
		out.Sections = append(out.Sections, CourseSection{
			Course: c,
			Count:  len(items),
			Items:  items,
		})
	}

	return out
}

// RemoveItem removes a menu item, reporting whether one was removed
func (s *MenuService) RemoveItem(id string) bool {
	return s.store.RemoveItem(id)
}

func dishLabel(n int) string {
	if n == 1 {
		return "1 dish"
	}
	return fmt.Sprintf("%d dishes", n)
}
