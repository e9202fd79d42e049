package catalog

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"vailure/internal/domain"
)

// Store holds the catalog as an immutable ordered slice. Loaded once at
// startup; safe for concurrent reads without locking.
type Store struct {
	products   []domain.Product
	byID       map[int]domain.Product
	categories []string
}

// Load reads every product in id order and freezes the result.
func Load(db *sqlx.DB) (*Store, error) {
	var products []domain.Product
	err := db.Select(&products, `
	  SELECT id, name, price_cents, image_url, category
	  FROM products
	  ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	s := &Store{
		products:   products,
		byID:       make(map[int]domain.Product, len(products)),
		categories: []string{domain.CategoryAll},
	}
	seen := map[string]bool{}
	for _, p := range products {
		s.byID[p.ID] = p
		if !seen[p.Category] {
			seen[p.Category] = true
			s.categories = append(s.categories, p.Category)
		}
	}
	return s, nil
}

// Products returns the full catalog in load order. Callers must not mutate.
func (s *Store) Products() []domain.Product { return s.products }

func (s *Store) ByID(id int) (domain.Product, bool) {
	p, ok := s.byID[id]
	return p, ok
}

// Categories returns "All" followed by the catalog categories in
// first-appearance order.
func (s *Store) Categories() []string { return s.categories }

// HasCategory reports whether cat is "All" or present in the catalog.
func (s *Store) HasCategory(cat string) bool {
	for _, c := range s.categories {
		if c == cat {
			return true
		}
	}
	return false
}
