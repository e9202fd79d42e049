package catalog

import (
	"strings"

	"vailure/internal/domain"
)

// Visible derives the product subset matching the active category and
// search text. Pure: no side effects, catalog order preserved.
//
// Category "All" matches everything; otherwise the match is identity on
// Product.Category. Search text is trimmed and lowercased; empty after
// trim imposes no text filter, otherwise it is a substring match against
// name OR category. Both predicates are ANDed.
func Visible(products []domain.Product, activeCategory, searchText string) []domain.Product {
	q := strings.ToLower(strings.TrimSpace(searchText))

	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if activeCategory != domain.CategoryAll && p.Category != activeCategory {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.Category), q) {
			continue
		}
		out = append(out, p)
	}
	return out
}
