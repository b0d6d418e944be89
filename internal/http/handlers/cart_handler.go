package handlers

import (
	"errors"

	applog "modahaus/internal/log"
	"modahaus/internal/services"
	"modahaus/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type CartHandler struct {
	Cart    *services.CartService
	Catalog *services.CatalogService
}

func (h *CartHandler) View(c *fiber.Ctx) error {
	uid := currentUserID(c)
	if uid == "" {
		return render(c, "cart", fiber.Map{"SignInPrompt": true})
	}
	items := h.Cart.Items(uid)
	return render(c, "cart", fiber.Map{
		"Items":      items,
		"TotalItems": h.Cart.TotalItems(uid),
		"TotalPrice": h.Cart.TotalPrice(uid),
	})
}

func (h *CartHandler) Add(c *fiber.Ctx) error {
	uid := currentUserID(c)
	if uid == "" {
		applog.Info(c, "cart.add.anonymous", nil)
		return c.Redirect("/login")
	}
	productID, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Status(400).SendString("missing productId")
	}
	qty := validate.Qty(c.FormValue("qty"))

	p, err := h.Catalog.GetProduct(productID)
	if err != nil || p.ID == "" || !p.Active {
		return c.Status(404).Render("notfound", fiber.Map{"Message": "This item is no longer available"})
	}

	line, err := h.Cart.Add(uid, p, qty)
	if err != nil {
		if errors.Is(err, services.ErrCartUnsynced) {
			// Local cart stands; warn and carry on.
			applog.Warn(c, "cart.add.unsynced", err, map[string]any{"product": productID})
		} else {
			applog.Error(c, "cart.add.fail", err, map[string]any{"product": productID})
			return c.Status(500).SendString("Could not add item")
		}
	}
	applog.Audit(c, "cart.add", map[string]any{"product": productID, "qty": line.Quantity})
	return c.Redirect("/cart")
}

func (h *CartHandler) UpdateQuantity(c *fiber.Ctx) error {
	uid := currentUserID(c)
	if uid == "" {
		return c.Redirect("/login")
	}
	productID, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Status(400).SendString("missing productId")
	}
	qty := validate.Qty(c.FormValue("qty"))

	if err := h.Cart.UpdateQuantity(uid, productID, qty); err != nil {
		if errors.Is(err, services.ErrCartUnsynced) {
			applog.Warn(c, "cart.update.unsynced", err, map[string]any{"product": productID})
		} else {
			applog.Error(c, "cart.update.fail", err, map[string]any{"product": productID})
			return c.Status(500).SendString("Could not update item")
		}
	}
	applog.Audit(c, "cart.update", map[string]any{"product": productID, "qty": qty})
	return c.Redirect("/cart")
}

func (h *CartHandler) Remove(c *fiber.Ctx) error {
	uid := currentUserID(c)
	if uid == "" {
		return c.Redirect("/login")
	}
	productID, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Status(400).SendString("missing productId")
	}
	if err := h.Cart.Remove(uid, productID); err != nil {
		if errors.Is(err, services.ErrCartUnsynced) {
			applog.Warn(c, "cart.remove.unsynced", err, map[string]any{"product": productID})
		} else {
			applog.Error(c, "cart.remove.fail", err, map[string]any{"product": productID})
			return c.Status(500).SendString("Could not remove item")
		}
	}
	applog.Audit(c, "cart.remove", map[string]any{"product": productID})
	return c.Redirect("/cart")
}

func (h *CartHandler) Clear(c *fiber.Ctx) error {
	uid := currentUserID(c)
	if uid == "" {
		return c.Redirect("/login")
	}
	if err := h.Cart.Clear(uid); err != nil {
		if errors.Is(err, services.ErrCartUnsynced) {
			applog.Warn(c, "cart.clear.unsynced", err, nil)
		} else {
			applog.Error(c, "cart.clear.fail", err, nil)
			return c.Status(500).SendString("Could not clear cart")
		}
	}
	applog.Audit(c, "cart.clear", nil)
	return c.Redirect("/cart")
}
