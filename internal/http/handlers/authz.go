package handlers

import (
	"github.com/gofiber/fiber/v2"

	"foodcourt/internal/domain"
	applog "foodcourt/internal/log"
	"foodcourt/internal/services"
)

// TokenCookie carries the signed session token.
const TokenCookie = "token"

// RequireToken verifies the session cookie and stores the identity in
// Locals for downstream handlers.
func RequireToken(tokens *services.TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := tokens.Verify(c.Cookies(TokenCookie))
		if err != nil {
			applog.Security(c, "auth.token.reject", map[string]any{"error": err.Error()})
			return fail(c, "auth.token", services.ErrUnauthorized)
		}
		c.Locals(applog.IdentityKey, id)
		return c.Next()
	}
}

func identity(c *fiber.Ctx) domain.Identity {
	id, _ := c.Locals(applog.IdentityKey).(domain.Identity)
	return id
}

// ownerOnly rejects a path uid that differs from the token's uid claim.
// Identities without a uid claim are not restricted.
func ownerOnly(c *fiber.Ctx, uid string) error {
	if tokUID, ok := identity(c).UID(); ok && tokUID != uid {
		return services.ErrForbidden
	}
	return nil
}
