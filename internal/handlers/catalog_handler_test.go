package handlers

import (
	"net/http"
	"testing"

	"github.com/Lixing-Zhang/menu-builder/internal/models"
	"github.com/Lixing-Zhang/menu-builder/internal/service"
)

func TestListCatalog(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/catalog", nil, false)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var view service.BrowseView
	decode(t, w, &view)

	if len(view.Dishes) != 12 {
		t.Errorf("expected 12 dishes, got %d", len(view.Dishes))
	}
	if view.Filter != service.FilterAll {
		t.Errorf("expected filter All, got %s", view.Filter)
	}
	if view.Stats.Dishes != 0 || view.Stats.Available != 12 || view.Stats.Categories != 3 {
		t.Errorf("unexpected stats: %+v", view.Stats)
	}
	for _, d := range view.Dishes {
		if d.Added {
			t.Errorf("dish %s marked added on empty menu", d.Name)
		}
	}
}

func TestListCatalog_ByCourse(t *testing.T) {
	env := newTestEnv(t)

	testCases := []struct {
		course         string
		expectedStatus int
		expectedCount  int
	}{
		{"All", http.StatusOK, 12},
		{"Breakfast", http.StatusOK, 4},
		{"Mains", http.StatusOK, 4},
		{"Desserts", http.StatusOK, 4},
		{"Drinks", http.StatusBadRequest, 0},
		{"mains", http.StatusBadRequest, 0},
	}

	for _, tc := range testCases {
		t.Run(tc.course, func(t *testing.T) {
			w := env.do(t, http.MethodGet, "/api/catalog?course="+tc.course, nil, false)

			if w.Code != tc.expectedStatus {
				t.Fatalf("expected status %d, got %d", tc.expectedStatus, w.Code)
			}
			if tc.expectedStatus != http.StatusOK {
				var resp ErrorResponse
				decode(t, w, &resp)
				if resp.Error != "Invalid course" {
					t.Errorf("expected error 'Invalid course', got %s", resp.Error)
				}
				return
			}

			var view service.BrowseView
			decode(t, w, &view)
			if len(view.Dishes) != tc.expectedCount {
				t.Errorf("expected %d dishes, got %d", tc.expectedCount, len(view.Dishes))
			}
		})
	}
}

func TestAddFromCatalog(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/catalog/5", nil, true)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", w.Code)
	}

	var item models.MenuItem
	decode(t, w, &item)
	if item.ID == "" || item.Name != "Grilled Salmon" || item.Course != models.CourseMains || item.Price != "290" {
		t.Errorf("unexpected item: %+v", item)
	}

	// the browse screen now shows the dish as added
	var view service.BrowseView
	decode(t, env.do(t, http.MethodGet, "/api/catalog?course=Mains", nil, false), &view)
	for _, d := range view.Dishes {
		if d.Added != (d.Name == "Grilled Salmon") {
			t.Errorf("dish %s Added = %v", d.Name, d.Added)
		}
	}
	if view.Stats.Dishes != 1 {
		t.Errorf("expected 1 dish on menu, got %d", view.Stats.Dishes)
	}
}

func TestAddFromCatalog_Errors(t *testing.T) {
	env := newTestEnv(t)
	env.do(t, http.MethodPost, "/api/catalog/9", nil, true)

	testCases := []struct {
		name           string
		path           string
		withKey        bool
		expectedStatus int
		expectedError  string
	}{
		{"already added", "/api/catalog/9", true, http.StatusConflict, "Dish is already on the menu"},
		{"unknown dish", "/api/catalog/99", true, http.StatusNotFound, "Dish not found"},
		{"missing api key", "/api/catalog/1", false, http.StatusUnauthorized, "Unauthorized: API key required"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := env.do(t, http.MethodPost, tc.path, nil, tc.withKey)

			if w.Code != tc.expectedStatus {
				t.Fatalf("expected status %d, got %d", tc.expectedStatus, w.Code)
			}

			var resp ErrorResponse
			decode(t, w, &resp)
			if resp.Error != tc.expectedError {
				t.Errorf("expected error %q, got %q", tc.expectedError, resp.Error)
			}
		})
	}

	if got := env.store.GetTotalItems(); got != 1 {
		t.Errorf("expected 1 item on menu, got %d", got)
	}
}
