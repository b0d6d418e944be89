package handlers

import (
	applog "modahaus/internal/log"
	"modahaus/internal/services"
	"modahaus/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type CategoryHandler struct {
	Catalog *services.CatalogService
}

// Home shows the category rail the storefront opens on.
func (h *CategoryHandler) Home(c *fiber.Ctx) error {
	cats, err := h.Catalog.ListCategories()
	if err != nil {
		applog.Error(c, "catalog.home.fail", err, nil)
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "The catalog is unavailable right now"})
	}
	return render(c, "home", fiber.Map{"Categories": cats})
}

// List shows one category's bundles.
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	catID, ok := validate.ID(c.Params("id"))
	if !ok {
		applog.Security(c, "validation.fail", map[string]any{"field": "category"})
		return c.Status(fiber.StatusNotFound).Render("notfound", fiber.Map{"Message": "No such category"})
	}

	products, err := h.Catalog.ListProductsByCategory(catID, 1, 12)
	if err != nil {
		applog.Error(c, "catalog.category.fail", err, map[string]any{"category": catID})
		return c.Status(fiber.StatusInternalServerError).Render("notfound", fiber.Map{"Message": "The catalog is unavailable right now"})
	}

	// Resolve the display name; the id is a usable fallback.
	name := catID
	if cats, err := h.Catalog.ListCategories(); err == nil {
		for _, ct := range cats {
			if ct.ID == catID {
				name = ct.Name
				break
			}
		}
	}
	return render(c, "category", fiber.Map{
		"CategoryID":   catID,
		"CategoryName": name,
		"Products":     products,
	})
}
