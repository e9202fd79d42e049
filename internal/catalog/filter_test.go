package catalog_test

import (
	"testing"

	_ "modernc.org/sqlite" // pure-Go SQLite driver

	"vailure/internal/catalog"
	"vailure/internal/domain"
)

func memStore(t *testing.T) *catalog.Store {
	t.Helper()
	db, err := catalog.OpenDB(":memory:")
	if err != nil {
		t.Fatal(err)
	}
	store, err := catalog.Load(db)
	if err != nil {
		t.Fatal(err)
	}
	return store
}

func TestLoadSeedsCollection(t *testing.T) {
	store := memStore(t)

	products := store.Products()
	if len(products) != 6 {
		t.Fatalf("want 6 products, got %d", len(products))
	}
	// Catalog order is id order.
	for i, p := range products {
		if p.ID != i+1 {
			t.Fatalf("product %d out of order: id=%d", i, p.ID)
		}
	}
	if p, ok := store.ByID(1); !ok || p.Name != "Crackle Denim Jacket" || p.PriceCents != 18000 {
		t.Fatalf("bad product 1: %+v", p)
	}

	want := []string{"All", "Jackets", "Accessories", "Bags", "Footwear"}
	got := store.Categories()
	if len(got) != len(want) {
		t.Fatalf("categories: want %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("categories: want %v, got %v", want, got)
		}
	}
}

func TestVisibleByCategory(t *testing.T) {
	store := memStore(t)

	got := catalog.Visible(store.Products(), "Bags", "")
	if len(got) != 3 {
		t.Fatalf("want 3 bags, got %d", len(got))
	}
	// Only the requested category, original relative order preserved.
	wantIDs := []int{3, 5, 6}
	for i, p := range got {
		if p.Category != "Bags" || p.ID != wantIDs[i] {
			t.Fatalf("bad result at %d: %+v", i, p)
		}
	}
}

func TestVisibleAllMatchesEverything(t *testing.T) {
	store := memStore(t)
	if got := catalog.Visible(store.Products(), domain.CategoryAll, ""); len(got) != 6 {
		t.Fatalf("want full catalog, got %d", len(got))
	}
}

func TestVisibleSearchText(t *testing.T) {
	store := memStore(t)

	// Matches against name, case-insensitively.
	got := catalog.Visible(store.Products(), domain.CategoryAll, "CRACKLE")
	if len(got) != 3 {
		t.Fatalf("want 3 crackle products, got %d", len(got))
	}

	// Matches against category too.
	got = catalog.Visible(store.Products(), domain.CategoryAll, "foot")
	if len(got) != 1 || got[0].ID != 4 {
		t.Fatalf("want the boots, got %+v", got)
	}

	// Whitespace-only imposes no text filter.
	if got := catalog.Visible(store.Products(), domain.CategoryAll, "   "); len(got) != 6 {
		t.Fatalf("blank query should match everything, got %d", len(got))
	}
}

func TestVisiblePredicatesAreANDed(t *testing.T) {
	store := memStore(t)

	// "tote" appears in Bags only; restricting to Footwear yields nothing.
	if got := catalog.Visible(store.Products(), "Footwear", "tote"); len(got) != 0 {
		t.Fatalf("want empty result, got %+v", got)
	}
	if got := catalog.Visible(store.Products(), "Bags", "tote"); len(got) != 2 {
		t.Fatalf("want 2 totes in Bags, got %d", len(got))
	}
}

func TestVisibleEmptyCategoryIsNotAnError(t *testing.T) {
	products := []domain.Product{
		{ID: 1, Name: "Solo", Category: "Jackets"},
	}
	got := catalog.Visible(products, "Hats", "")
	if len(got) != 0 {
		t.Fatalf("unknown category should yield empty, got %+v", got)
	}
}

func TestVisibleDoesNotMutateInput(t *testing.T) {
	store := memStore(t)
	before := store.Products()[0]
	_ = catalog.Visible(store.Products(), "Bags", "tote")
	if store.Products()[0] != before {
		t.Fatal("catalog mutated by Visible")
	}
}
