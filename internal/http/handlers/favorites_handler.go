package handlers

import (
	"errors"

	applog "modahaus/internal/log"
	"modahaus/internal/services"
	"modahaus/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type FavoritesHandler struct {
	Favs *services.FavoritesService
}

func (h *FavoritesHandler) List(c *fiber.Ctx) error {
	uid := currentUserID(c)
	items, err := h.Favs.List(uid)
	if err != nil {
		if errors.Is(err, services.ErrSignInRequired) {
			return c.Redirect("/login")
		}
		applog.Error(c, "favorites.list.fail", err, nil)
		return c.Status(500).Render("notfound", fiber.Map{"Message": "Could not load favorites"})
	}
	return render(c, "favorites", fiber.Map{"Items": items})
}

func (h *FavoritesHandler) Save(c *fiber.Ctx) error {
	uid := currentUserID(c)
	pid, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Status(400).SendString("missing productId")
	}
	if err := h.Favs.Save(uid, pid); err != nil {
		if errors.Is(err, services.ErrSignInRequired) {
			return c.Redirect("/login")
		}
		applog.Error(c, "favorites.save.fail", err, map[string]any{"product": pid})
		return c.Status(500).SendString("Could not save item")
	}
	back := c.Get("Referer")
	if back == "" {
		back = "/favorites"
	}
	applog.Audit(c, "favorites.save", map[string]any{"product": pid})
	return c.Redirect(back)
}

func (h *FavoritesHandler) Unsave(c *fiber.Ctx) error {
	uid := currentUserID(c)
	pid, ok := validate.ID(c.FormValue("productId"))
	if !ok {
		return c.Status(400).SendString("missing productId")
	}
	if err := h.Favs.Unsave(uid, pid); err != nil {
		if errors.Is(err, services.ErrSignInRequired) {
			return c.Redirect("/login")
		}
		applog.Error(c, "favorites.unsave.fail", err, map[string]any{"product": pid})
		return c.Status(500).SendString("Could not remove item")
	}
	applog.Audit(c, "favorites.unsave", map[string]any{"product": pid})
	return c.Redirect("/favorites")
}
