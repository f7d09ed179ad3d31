package handlers

import (
	"github.com/gofiber/fiber/v2"

	"foodcourt/internal/domain"
	"foodcourt/internal/services"
)

type FeedbackHandler struct {
	Feedback *services.FeedbackService
}

// GET /feedbackdata
func (h *FeedbackHandler) List(c *fiber.Ctx) error {
	list, err := h.Feedback.List(c.UserContext())
	if err != nil {
		return fail(c, "feedback.list", err)
	}
	return c.JSON(list)
}

// POST /feedback
func (h *FeedbackHandler) Submit(c *fiber.Ctx) error {
	var fb domain.Feedback
	if err := c.BodyParser(&fb); err != nil {
		return badInput(c, "feedback.submit", err)
	}
	id, err := h.Feedback.Submit(c.UserContext(), fb)
	if err != nil {
		return fail(c, "feedback.submit", err)
	}
	return c.JSON(fiber.Map{"insertedId": id})
}
