package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "foodcourt/internal/log"
	"foodcourt/internal/services"
)

type OrderHandler struct {
	Orders *services.OrderService
}

// GET /purchase?id=&quantity=&uid=&date=
func (h *OrderHandler) Purchase(c *fiber.Ctx) error {
	var p services.Purchase
	if err := c.QueryParser(&p); err != nil {
		return badInput(c, "order.purchase", err)
	}
	id, err := h.Orders.Place(c.UserContext(), p)
	if err != nil {
		return fail(c, "order.purchase", err)
	}
	applog.Audit(c, "order.purchase", map[string]any{
		"order_id": id,
		"food_id":  p.FoodID,
		"uid":      p.OwnerID,
		"quantity": p.Quantity,
	})
	return c.JSON(fiber.Map{"insertedId": id})
}

// GET /mypurchase/:uid
func (h *OrderHandler) Mine(c *fiber.Ctx) error {
	uid, err := pathUID(c)
	if err != nil {
		return fail(c, "order.mine", err)
	}
	if err := ownerOnly(c, uid); err != nil {
		return fail(c, "order.mine", err)
	}
	res, err := h.Orders.Enrich(c.UserContext(), uid)
	if err != nil {
		return fail(c, "order.mine", err)
	}
	for _, s := range res.Skipped {
		applog.Security(c, "order.enrich.skip", map[string]any{
			"order_id": s.OrderID,
			"food_id":  s.FoodID,
			"reason":   s.Reason,
		})
	}
	return c.JSON(res.Orders)
}

// DELETE /deleteorder/:orderId
func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, "orderId")
	if err != nil {
		return fail(c, "order.delete", err)
	}
	n, err := h.Orders.Delete(c.UserContext(), id)
	if err != nil {
		return fail(c, "order.delete", err)
	}
	applog.Audit(c, "order.delete", map[string]any{"order_id": id, "deleted": n})
	return c.JSON(fiber.Map{"deletedCount": n})
}
