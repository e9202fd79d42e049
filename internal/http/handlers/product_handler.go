package handlers

import (
	"github.com/gofiber/fiber/v2"

	"vailure/internal/catalog"
	"vailure/internal/log"
	"vailure/internal/metrics"
	"vailure/internal/session"
	"vailure/internal/validate"
)

type ProductHandler struct {
	Store    *catalog.Store
	Sessions *session.Registry
}

func (h *ProductHandler) Detail(c *fiber.Ctx) error {
	id, ok := validate.ProductID(c.Params("id"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "product"})
		return c.Status(404).Render("notfound", fiber.Map{"Message": "This item is no longer available"})
	}
	p, found := h.Store.ByID(id)
	if !found {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "This item is no longer available"})
	}
	return render(c, "product", fiber.Map{"P": p})
}

// QuickViewOpen puts the product under quick-view. It coexists with an
// open cart panel.
func (h *ProductHandler) QuickViewOpen(c *fiber.Ctx) error {
	sess := visitorSession(c, h.Sessions)
	id, ok := validate.ProductID(c.Params("id"))
	if !ok {
		log.Security(c, "validation.fail", map[string]any{"field": "product"})
		return c.Status(fiber.StatusBadRequest).SendString("invalid product id")
	}
	p, found := h.Store.ByID(id)
	if !found {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "This item is no longer available"})
	}
	sess.View.OpenQuickView(p)
	return c.Redirect("/")
}

func (h *ProductHandler) QuickViewClose(c *fiber.Ctx) error {
	sess := visitorSession(c, h.Sessions)
	sess.View.CloseQuickView()
	return c.Redirect("/")
}

// QuickViewAdd is the confirmed add-to-cart: one ledger add per 1s
// confirmation window, after which the modal auto-closes. A repeat click
// inside the window is ignored.
func (h *ProductHandler) QuickViewAdd(c *fiber.Ctx) error {
	sess := visitorSession(c, h.Sessions)
	p, ok := sess.ConfirmAdd()
	if !ok {
		return c.Redirect("/")
	}
	metrics.CartOps.WithLabelValues("add").Inc()
	log.Info(c, "cart.add.quickview", map[string]any{"product": p.ID})
	return c.Redirect("/")
}
