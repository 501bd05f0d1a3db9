package models

import (
	"errors"
	"fmt"
)

// ErrInvalidCourse is returned when a course name is not one of the fixed courses
var ErrInvalidCourse = errors.New("invalid course")

// Course is one of the fixed menu categories every item belongs to
type Course string

const (
	CourseBreakfast Course = "Breakfast"
	CourseMains     Course = "Mains"
	CourseDesserts  Course = "Desserts"
)

// Courses returns the fixed courses in display order
func Courses() []Course {
	return []Course{CourseBreakfast, CourseMains, CourseDesserts}
}

// ParseCourse maps an exact, case-sensitive course name to a Course
func ParseCourse(s string) (Course, error) {
	c := Course(s)
	if !c.IsValid() {
		return "", fmt.Errorf("%w: %q (must be Breakfast, Mains, or Desserts)", ErrInvalidCourse, s)
	}
	return c, nil
}

// IsValid reports whether c is one of the fixed courses
func (c Course) IsValid() bool {
	switch c {
	case CourseBreakfast, CourseMains, CourseDesserts:
		return true
	}
	return false
}

// MenuItem represents one dish in the user's menu
type MenuItem struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Course      Course `json:"course"`
	Price       string `json:"price"`
}

// NewItem is the payload for adding a dish to the menu.
// Price is display-ready text in whole currency units.
type NewItem struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Course      Course `json:"course"`
	Price       string `json:"price"`
}

// Dish is a catalog entry offered for one-tap adding
type Dish struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Course      Course `json:"course"`
	Price       string `json:"price"`
}

// NewItem returns the payload used to add the dish to a menu
func (d Dish) NewItem() NewItem {
	return NewItem{
		Name:        d.Name,
		Description: d.Description,
		Course:      d.Course,
		Price:       d.Price,
	}
}
