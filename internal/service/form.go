package service

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/Lixing-Zhang/menu-builder/internal/models"
)

var (
	ErrMissingInformation = errors.New("please fill in all fields")
	ErrInvalidPrice       = errors.New("please enter a valid price")
)

// DishForm is the user-authored input of the create dish screen
type DishForm struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Course      string `json:"course"`
	Price       string `json:"price"`
}

// Validate checks the form and returns the payload to add.
// An empty course falls back to Mains; the price is rounded to whole units.
func (f DishForm) Validate() (models.NewItem, error) {
	name := strings.TrimSpace(f.Name)
	description := strings.TrimSpace(f.Description)
	price := strings.TrimSpace(f.Price)

	if name == "" || description == "" || price == "" {
		return models.NewItem{}, ErrMissingInformation
	}

	value, err := strconv.ParseFloat(price, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) || value <= 0 {
		return models.NewItem{}, ErrInvalidPrice
	}

	course := models.CourseMains
	if c := strings.TrimSpace(f.Course); c != "" {
		course, err = models.ParseCourse(c)
		if err != nil {
			return models.NewItem{}, err
		}
	}

	return models.NewItem{
		Name:        name,
		Description: description,
		Course:      course,
		Price:       strconv.FormatFloat(math.Round(value), 'f', 0, 64),
	}, nil
}
