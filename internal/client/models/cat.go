package models

import (
	"fmt"
	"strings"

	"github.com/dmitrijs2005/nekolist/internal/timex"
)

// Cat is a cat record as read from the server.
//
// ID is zero until the server assigns one. UserID, User, CreatedAt and
// UpdatedAt are server-owned and are dropped by Fields before any write.
type Cat struct {
	ID          int64            `json:"id,omitempty"`
	Name        string           `json:"name"`
	Breed       string           `json:"breed"`
	Personality string           `json:"personality"`
	Origin      string           `json:"origin,omitempty"`
	Age         *int             `json:"age,omitempty"`
	Color       string           `json:"color,omitempty"`
	Weight      *float64         `json:"weight,omitempty"`
	Description string           `json:"description,omitempty"`
	UserID      *int64           `json:"user_id,omitempty"`
	User        *UserInfo        `json:"user,omitempty"`
	CreatedAt   *timex.Timestamp `json:"created_at,omitempty"`
	UpdatedAt   *timex.Timestamp `json:"updated_at,omitempty"`
}

// OwnerID returns the owning user's id from user_id, falling back to the
// embedded owner projection.
func (c Cat) OwnerID() (int64, bool) {
	if c.UserID != nil {
		return *c.UserID, true
	}
	if c.User != nil {
		return c.User.ID, true
	}
	return 0, false
}

// OwnerName is empty when the server did not embed the owner.
func (c Cat) OwnerName() string {
	if c.User == nil {
		return ""
	}
	return c.User.Name
}

// CatFields is the body of POST /cats and PUT /cats/{id}.
//
// Optional text fields are always sent so that an update can clear them.
// Age and Weight are omitted when absent; zero is a real value.
type CatFields struct {
	Name        string   `json:"name"`
	Breed       string   `json:"breed"`
	Personality string   `json:"personality"`
	Origin      string   `json:"origin"`
	Age         *int     `json:"age,omitempty"`
	Color       string   `json:"color"`
	Weight      *float64 `json:"weight,omitempty"`
	Description string   `json:"description"`
}

// Fields returns the writable part of c with text trimmed.
func (c Cat) Fields() CatFields {
	f := CatFields{
		Name:        strings.TrimSpace(c.Name),
		Breed:       strings.TrimSpace(c.Breed),
		Personality: strings.TrimSpace(c.Personality),
		Origin:      strings.TrimSpace(c.Origin),
		Color:       strings.TrimSpace(c.Color),
		Description: strings.TrimSpace(c.Description),
	}
	if c.Age != nil {
		age := *c.Age
		f.Age = &age
	}
	if c.Weight != nil {
		weight := *c.Weight
		f.Weight = &weight
	}
	return f
}

// Validate checks the required fields and the numeric ranges.
func (f CatFields) Validate() error {
	var missing []string
	if strings.TrimSpace(f.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(f.Breed) == "" {
		missing = append(missing, "breed")
	}
	if strings.TrimSpace(f.Personality) == "" {
		missing = append(missing, "personality")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s required", ErrValidation, strings.Join(missing, ", "))
	}
	if f.Age != nil && *f.Age < 0 {
		return fmt.Errorf("%w: age must not be negative", ErrValidation)
	}
	if f.Weight != nil && *f.Weight < 0 {
		return fmt.Errorf("%w: weight must not be negative", ErrValidation)
	}
	return nil
}
