// Package inventory holds the pure transformations applied to the cached
// product list: filtering, stock severity classification and statistics.
package inventory

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/Lixing-Zhang/inventory-web/internal/models"
)

// Criteria selects products. Zero values match everything.
type Criteria struct {
	Search string
	Type   string
}

// Filter returns the products matching c in their original order. Search is a
// case-insensitive substring match on name or location; Type is compared
// exactly. The input slice is never modified.
func Filter(products []models.Product, c Criteria) []models.Product {
	lower := cases.Lower(language.Und)
	term := lower.String(c.Search)

	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if term != "" &&
			!strings.Contains(lower.String(p.Name), term) &&
			!strings.Contains(lower.String(p.Location), term) {
			continue
		}
		if c.Type != "" && p.Type != c.Type {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Types returns the distinct product types in first-seen order.
func Types(products []models.Product) []string {
	seen := make(map[string]bool, len(products))
	var out []string
	for _, p := range products {
		if p.Type == "" || seen[p.Type] {
			continue
		}
		seen[p.Type] = true
		out = append(out, p.Type)
	}
	return out
}
