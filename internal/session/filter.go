package session

import (
	"sync"

	"vailure/internal/domain"
)

// Filter holds the visitor's active category and search text — the two
// inputs of the visible-products derivation. Own mutex, never locked
// together with another store.
type Filter struct {
	mu       sync.Mutex
	category string
	search   string
}

func NewFilter() *Filter {
	return &Filter{category: domain.CategoryAll}
}

func (f *Filter) SetCategory(cat string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.category = cat
}

func (f *Filter) SetSearch(q string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.search = q
}

// Snapshot returns (activeCategory, searchText) as one consistent read.
func (f *Filter) Snapshot() (string, string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.category, f.search
}
