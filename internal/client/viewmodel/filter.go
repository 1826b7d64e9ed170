package viewmodel

import (
	"strings"

	"github.com/dmitrijs2005/nekolist/internal/client/models"
)

// Filter returns the cats whose name, breed, personality, origin, color or
// owner name contains query, case-insensitively. A blank query returns cats
// itself. Filter does not modify cats.
func Filter(cats []models.Cat, query string) []models.Cat {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return cats
	}

	out := make([]models.Cat, 0, len(cats))
	for _, c := range cats {
		if matches(c, q) {
			out = append(out, c)
		}
	}
	return out
}

func matches(c models.Cat, q string) bool {
	for _, field := range []string{c.Name, c.Breed, c.Personality, c.Origin, c.Color, c.OwnerName()} {
		if field != "" && strings.Contains(strings.ToLower(field), q) {
			return true
		}
	}
	return false
}
