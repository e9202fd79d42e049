package handlers

import (
	"github.com/gofiber/fiber/v2"

	"vailure/internal/catalog"
	"vailure/internal/log"
	"vailure/internal/session"
	"vailure/internal/validate"
)

type CatalogHandler struct {
	Store    *catalog.Store
	Sessions *session.Registry
}

// Home renders the storefront: filter bar, visible grid for the session's
// current filter state, cart badge, open panels.
func (h *CatalogHandler) Home(c *fiber.Ctx) error {
	sess := visitorSession(c, h.Sessions)
	cat, q := sess.Filter.Snapshot()
	products := catalog.Visible(h.Store.Products(), cat, q)

	qv, qvOpen := sess.View.QuickView()
	return render(c, "home", fiber.Map{
		"Categories":     h.Store.Categories(),
		"ActiveCategory": cat,
		"Q":              q,
		"Products":       products,
		"CartCount":      sess.Cart.ItemCount(),
		"CartOpen":       sess.View.CartPanelOpen(),
		"SearchOpen":     sess.View.SearchBarOpen(),
		"QuickView":      qv,
		"QuickViewOpen":  qvOpen,
		"Confirming":     sess.View.Confirming(),
	})
}

// SetFilter sets the active category. Unknown categories are rejected, not
// stored.
func (h *CatalogHandler) SetFilter(c *fiber.Ctx) error {
	sess := visitorSession(c, h.Sessions)
	cat, ok := validate.Category(c.FormValue("category"))
	if !ok || !h.Store.HasCategory(cat) {
		log.Security(c, "validation.fail", map[string]any{"field": "category"})
		return c.Status(fiber.StatusBadRequest).SendString("invalid category")
	}
	sess.Filter.SetCategory(cat)
	return c.Redirect("/")
}
