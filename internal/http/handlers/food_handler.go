package handlers

import (
	"github.com/gofiber/fiber/v2"

	"foodcourt/internal/domain"
	"foodcourt/internal/log"
	"foodcourt/internal/services"
	"foodcourt/internal/validate"
)

type FoodHandler struct {
	Catalog *services.CatalogService
}

// GET /foods/search?q=
func (h *FoodHandler) Search(c *fiber.Ctx) error {
	foods, err := h.Catalog.Search(c.UserContext(), c.Query("q"))
	if err != nil {
		return fail(c, "foods.search", err)
	}
	return c.JSON(foods)
}

// GET /fooddetails/:id
func (h *FoodHandler) Detail(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, "foods.detail", err)
	}
	f, err := h.Catalog.Get(c.UserContext(), id)
	if err != nil {
		return fail(c, "foods.detail", err)
	}
	return c.JSON(f)
}

// GET /allfoods
func (h *FoodHandler) All(c *fiber.Ctx) error {
	foods, err := h.Catalog.ListAll(c.UserContext())
	if err != nil {
		return fail(c, "foods.all", err)
	}
	return c.JSON(foods)
}

// GET /homecard?elements=
func (h *FoodHandler) HomeCard(c *fiber.Ctx) error {
	n, err := validate.Limit(c.Query("elements"))
	if err != nil {
		return fail(c, "foods.homecard", err)
	}
	foods, err := h.Catalog.Top(c.UserContext(), n)
	if err != nil {
		return fail(c, "foods.homecard", err)
	}
	return c.JSON(foods)
}

// GET /myfoods/:uid
func (h *FoodHandler) Mine(c *fiber.Ctx) error {
	uid, err := pathUID(c)
	if err != nil {
		return fail(c, "foods.mine", err)
	}
	if err := ownerOnly(c, uid); err != nil {
		return fail(c, "foods.mine", err)
	}
	foods, err := h.Catalog.ByOwner(c.UserContext(), uid)
	if err != nil {
		return fail(c, "foods.mine", err)
	}
	return c.JSON(foods)
}

// POST /addFood
func (h *FoodHandler) Add(c *fiber.Ctx) error {
	var in services.NewFood
	if err := c.BodyParser(&in); err != nil {
		return badInput(c, "foods.add", err)
	}
	id, err := h.Catalog.Add(c.UserContext(), in)
	if err != nil {
		return fail(c, "foods.add", err)
	}
	log.Audit(c, "foods.add", map[string]any{"food_id": id, "owner_id": in.OwnerID})
	return c.JSON(fiber.Map{"insertedId": id})
}

// POST /updatefoods/:id
func (h *FoodHandler) Update(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, "foods.update", err)
	}
	var p domain.FoodPatch
	if err := c.BodyParser(&p); err != nil {
		return badInput(c, "foods.update", err)
	}
	n, err := h.Catalog.Update(c.UserContext(), id, p)
	if err != nil {
		return fail(c, "foods.update", err)
	}
	log.Audit(c, "foods.update", map[string]any{"food_id": id, "modified": n})
	return c.JSON(fiber.Map{"modifiedCount": n})
}

// POST /deleteaddfood/:id
func (h *FoodHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return fail(c, "foods.delete", err)
	}
	n, err := h.Catalog.Delete(c.UserContext(), id)
	if err != nil {
		return fail(c, "foods.delete", err)
	}
	log.Audit(c, "foods.delete", map[string]any{"food_id": id, "deleted": n})
	return c.JSON(fiber.Map{"deletedCount": n})
}
