package handlers_test

import (
	"net/http"
	"testing"

	"vailure/internal/domain"
)

func TestCartAddMergesLines(t *testing.T) {
	app, reg := newApp(t, &stubAssistant{})

	for i := 0; i < 2; i++ {
		resp, err := app.Test(formReq("POST", "/cart", "productId=1"))
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != http.StatusFound {
			t.Fatalf("want redirect, got %d", resp.StatusCode)
		}
	}

	sess := reg.Ensure(testSID)
	lines := sess.Cart.Lines()
	if len(lines) != 1 || lines[0].Quantity != 2 {
		t.Fatalf("want one line qty 2, got %+v", lines)
	}
	if domain.FormatCents(sess.Cart.Subtotal()) != "360.00" {
		t.Fatalf("want 360.00, got %s", domain.FormatCents(sess.Cart.Subtotal()))
	}
}

func TestCartAddUnknownProduct(t *testing.T) {
	app, reg := newApp(t, &stubAssistant{})

	resp, err := app.Test(formReq("POST", "/cart", "productId=999"))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("want 404, got %d", resp.StatusCode)
	}
	if got := reg.Ensure(testSID).Cart.ItemCount(); got != 0 {
		t.Fatalf("cart should be untouched, got %d items", got)
	}
}

func TestCartQuantityEdits(t *testing.T) {
	app, reg := newApp(t, &stubAssistant{})
	sess := reg.Ensure(testSID)

	if _, err := app.Test(formReq("POST", "/cart", "productId=1")); err != nil {
		t.Fatal(err)
	}

	// Malformed quantity: edit ignored, not an error.
	resp, err := app.Test(formReq("POST", "/cart/quantity", "productId=1&qty=abc"))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("malformed qty should degrade to no-op, got %d", resp.StatusCode)
	}
	if sess.Cart.ItemCount() != 1 {
		t.Fatalf("qty changed by malformed input: %d", sess.Cart.ItemCount())
	}

	// Positive edit on an existing line.
	if _, err := app.Test(formReq("POST", "/cart/quantity", "productId=1&qty=4")); err != nil {
		t.Fatal(err)
	}
	if sess.Cart.ItemCount() != 4 {
		t.Fatalf("want qty 4, got %d", sess.Cart.ItemCount())
	}

	// Edit on an absent line never creates one.
	if _, err := app.Test(formReq("POST", "/cart/quantity", "productId=2&qty=5")); err != nil {
		t.Fatal(err)
	}
	if len(sess.Cart.Lines()) != 1 {
		t.Fatalf("edit created a line: %+v", sess.Cart.Lines())
	}

	// Zero removes.
	if _, err := app.Test(formReq("POST", "/cart/quantity", "productId=1&qty=0")); err != nil {
		t.Fatal(err)
	}
	if len(sess.Cart.Lines()) != 0 {
		t.Fatalf("qty 0 should remove the line: %+v", sess.Cart.Lines())
	}
}

func TestQuickViewConfirmAddsOnce(t *testing.T) {
	app, reg := newApp(t, &stubAssistant{})
	sess := reg.Ensure(testSID)

	if _, err := app.Test(formReq("POST", "/quickview/4", "")); err != nil {
		t.Fatal(err)
	}
	if _, open := sess.View.QuickView(); !open {
		t.Fatal("quick-view should be open")
	}

	// Two rapid confirm clicks: one ledger add.
	if _, err := app.Test(formReq("POST", "/quickview/add", "")); err != nil {
		t.Fatal(err)
	}
	if _, err := app.Test(formReq("POST", "/quickview/add", "")); err != nil {
		t.Fatal(err)
	}
	if got := sess.Cart.ItemCount(); got != 1 {
		t.Fatalf("double submission reached the ledger: %d", got)
	}
}

func TestSearchToggleClearsQuery(t *testing.T) {
	app, reg := newApp(t, &stubAssistant{})
	sess := reg.Ensure(testSID)

	if _, err := app.Test(formReq("POST", "/search/toggle", "")); err != nil { // open
		t.Fatal(err)
	}
	if _, err := app.Test(formReq("GET", "/search?q=boot", "")); err != nil {
		t.Fatal(err)
	}
	if _, q := sess.Filter.Snapshot(); q != "boot" {
		t.Fatalf("query not stored: %q", q)
	}

	if _, err := app.Test(formReq("POST", "/search/toggle", "")); err != nil { // close
		t.Fatal(err)
	}
	if _, q := sess.Filter.Snapshot(); q != "" {
		t.Fatalf("closing search must clear the query, got %q", q)
	}
}

func TestFilterRejectsUnknownCategory(t *testing.T) {
	app, reg := newApp(t, &stubAssistant{})

	resp, err := app.Test(formReq("POST", "/filter", "category=Hats"))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("want 400, got %d", resp.StatusCode)
	}
	if cat, _ := reg.Ensure(testSID).Filter.Snapshot(); cat != domain.CategoryAll {
		t.Fatalf("filter state changed: %s", cat)
	}

	resp, err = app.Test(formReq("POST", "/filter", "category=Bags"))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusFound {
		t.Fatalf("want redirect, got %d", resp.StatusCode)
	}
	if cat, _ := reg.Ensure(testSID).Filter.Snapshot(); cat != "Bags" {
		t.Fatalf("category not stored: %s", cat)
	}
}

func TestHomeAndCartPagesRender(t *testing.T) {
	app, _ := newApp(t, &stubAssistant{})

	for _, target := range []string{"/", "/cart", "/product/1"} {
		resp, err := app.Test(formReq("GET", target, ""))
		if err != nil {
			t.Fatal(err)
		}
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("GET %s: want 200, got %d", target, resp.StatusCode)
		}
	}

	resp, err := app.Test(formReq("GET", "/product/999", ""))
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("want 404 for unknown product, got %d", resp.StatusCode)
	}
}
