package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"vailure/internal/catalog"
	"vailure/internal/log"
	"vailure/internal/session"
	"vailure/internal/validate"
)

type SearchHandler struct {
	Store    *catalog.Store
	Sessions *session.Registry
}

// Search stores the query on the session's filter and renders the grid it
// derives. An empty query just clears the text filter.
func (h *SearchHandler) Search(c *fiber.Ctx) error {
	sess := visitorSession(c, h.Sessions)

	rawQ := c.Query("q")
	if strings.TrimSpace(rawQ) == "" {
		sess.Filter.SetSearch("")
		cat, _ := sess.Filter.Snapshot()
		return render(c, "search", fiber.Map{
			"Q": "", "Products": catalog.Visible(h.Store.Products(), cat, ""),
		})
	}

	q, ok := validate.Q(rawQ)
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "q", "value": rawQ})
		return c.Status(fiber.StatusBadRequest).Render("search", fiber.Map{
			"Q": "", "Products": []any{}, "Err": "Enter a valid keyword (letters/numbers only)",
		})
	}
	sess.Filter.SetSearch(q)

	cat, _ := sess.Filter.Snapshot()
	products := catalog.Visible(h.Store.Products(), cat, q)
	return render(c, "search", fiber.Map{
		"Q": q, "ActiveCategory": cat, "Products": products, "Count": len(products),
	})
}

// Toggle opens/closes the search bar. Closing resets the query.
func (h *SearchHandler) Toggle(c *fiber.Ctx) error {
	sess := visitorSession(c, h.Sessions)
	open := sess.ToggleSearch()
	log.Info(c, "search.toggle", map[string]any{"open": open})
	return c.Redirect("/")
}
