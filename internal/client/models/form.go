package models

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// CatForm holds the raw text of the create and update forms.
type CatForm struct {
	Name        string
	Breed       string
	Personality string
	Origin      string
	Age         string
	Color       string
	Weight      string
	Description string
}

// Cat converts the form into a Cat ready for CreateCat or UpdateCat.
// Blank Age or Weight become absent, never zero.
func (f CatForm) Cat() (Cat, error) {
	age, err := ParseOptionalInt(f.Age)
	if err != nil {
		return Cat{}, fmt.Errorf("age: %w", err)
	}
	weight, err := ParseOptionalFloat(f.Weight)
	if err != nil {
		return Cat{}, fmt.Errorf("weight: %w", err)
	}
	return Cat{
		Name:        f.Name,
		Breed:       f.Breed,
		Personality: f.Personality,
		Origin:      f.Origin,
		Age:         age,
		Color:       f.Color,
		Weight:      weight,
		Description: f.Description,
	}, nil
}

// FormFromCat pre-fills the update form from a fetched cat.
func FormFromCat(c Cat) CatForm {
	f := CatForm{
		Name:        c.Name,
		Breed:       c.Breed,
		Personality: c.Personality,
		Origin:      c.Origin,
		Color:       c.Color,
		Description: c.Description,
	}
	if c.Age != nil {
		f.Age = strconv.Itoa(*c.Age)
	}
	if c.Weight != nil {
		f.Weight = strconv.FormatFloat(*c.Weight, 'f', -1, 64)
	}
	return f
}

// ParseOptionalInt returns nil for blank input.
func ParseOptionalInt(s string) (*int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %q is not a whole number", ErrValidation, s)
	}
	if v < 0 {
		return nil, fmt.Errorf("%w: %d is negative", ErrValidation, v)
	}
	return &v, nil
}

// ParseOptionalFloat returns nil for blank input.
func ParseOptionalFloat(s string) (*float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("%w: %q is not a number", ErrValidation, s)
	}
	if v < 0 {
		return nil, fmt.Errorf("%w: %s is negative", ErrValidation, s)
	}
	return &v, nil
}
