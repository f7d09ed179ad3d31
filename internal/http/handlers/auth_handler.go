package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"

	"foodcourt/internal/config"
	"foodcourt/internal/domain"
	"foodcourt/internal/log"
	"foodcourt/internal/services"
)

var errEmptyIdentity = errors.New("identity payload is empty")

type AuthHandler struct {
	Tokens *services.TokenService
	Cookie config.CookiePolicy
}

func (h *AuthHandler) cookie(value string, maxAge int, expires time.Time) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     TokenCookie,
		Value:    value,
		Path:     "/",
		HTTPOnly: true,
		Secure:   h.Cookie.Secure,
		SameSite: h.Cookie.SameSite,
		MaxAge:   maxAge,
		Expires:  expires,
	}
}

// Issue signs the posted identity and sets it as the session cookie.
func (h *AuthHandler) Issue(c *fiber.Ctx) error {
	var id domain.Identity
	if err := c.BodyParser(&id); err != nil {
		return badInput(c, "auth.issue", err)
	}
	if len(id) == 0 {
		return badInput(c, "auth.issue", errEmptyIdentity)
	}
	tok, err := h.Tokens.Issue(id)
	if err != nil {
		return fail(c, "auth.issue", err)
	}
	ttl := h.Tokens.TTL()
	c.Cookie(h.cookie(tok, int(ttl.Seconds()), time.Now().Add(ttl)))
	log.Audit(c, "auth.issue", map[string]any{"subject": id.Subject()})
	return c.JSON(fiber.Map{"success": true})
}

// Logout expires the session cookie with the same attributes it was set with.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(h.cookie("", 0, time.Now().Add(-1*time.Hour)))
	log.Audit(c, "auth.logout", nil)
	return c.JSON(fiber.Map{"success": true})
}
