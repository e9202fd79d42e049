package handlers

import (
	"github.com/gofiber/fiber/v2"

	"vailure/internal/catalog"
	"vailure/internal/domain"
	"vailure/internal/log"
	"vailure/internal/metrics"
	"vailure/internal/session"
	"vailure/internal/validate"
)

type CartHandler struct {
	Store    *catalog.Store
	Sessions *session.Registry
}

func (h *CartHandler) View(c *fiber.Ctx) error {
	sess := visitorSession(c, h.Sessions)
	return render(c, "cart", fiber.Map{
		"Lines":    sess.Cart.Lines(),
		"Subtotal": domain.FormatCents(sess.Cart.Subtotal()),
		"Count":    sess.Cart.ItemCount(),
	})
}

func (h *CartHandler) Add(c *fiber.Ctx) error {
	sess := visitorSession(c, h.Sessions)
	id, ok := validate.ProductID(c.FormValue("productId"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "productId"})
		return c.Status(fiber.StatusBadRequest).SendString("missing productId")
	}
	p, found := h.Store.ByID(id)
	if !found {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "This item is no longer available"})
	}
	sess.Cart.Add(p)
	metrics.CartOps.WithLabelValues("add").Inc()
	return c.Redirect("/cart")
}

// UpdateQuantity overwrites a line's quantity. Malformed input is ignored
// (not an error); zero or negative removes the line; an absent line stays
// absent whatever the value.
func (h *CartHandler) UpdateQuantity(c *fiber.Ctx) error {
	sess := visitorSession(c, h.Sessions)
	id, ok := validate.ProductID(c.FormValue("productId"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "productId"})
		return c.Status(fiber.StatusBadRequest).SendString("missing productId")
	}
	qty, ok := validate.Qty(c.FormValue("qty"))
	if !ok {
		// Bad quantity input degrades to "no edit", per the cart contract.
		log.Info(c, "cart.quantity.ignored", map[string]any{"product": id})
		return c.Redirect("/cart")
	}
	sess.Cart.SetQuantity(id, qty)
	metrics.CartOps.WithLabelValues("set_quantity").Inc()
	return c.Redirect("/cart")
}

func (h *CartHandler) Delete(c *fiber.Ctx) error {
	sess := visitorSession(c, h.Sessions)
	id, ok := validate.ProductID(c.FormValue("productId"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "productId"})
		return c.Status(fiber.StatusBadRequest).SendString("missing productId")
	}
	sess.Cart.Remove(id)
	metrics.CartOps.WithLabelValues("remove").Inc()
	return c.Redirect("/cart")
}

func (h *CartHandler) Toggle(c *fiber.Ctx) error {
	sess := visitorSession(c, h.Sessions)
	open := sess.View.ToggleCartPanel()
	log.Info(c, "cart.toggle", map[string]any{"open": open})
	return c.Redirect("/")
}
