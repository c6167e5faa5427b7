package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/swachhjanta/backend/internal/dto"
	"github.com/swachhjanta/backend/internal/identity"
	"github.com/swachhjanta/backend/internal/models"
	"github.com/swachhjanta/backend/internal/store"
)

// AuthorityRequired gates authority-only routes. The check lives here, at
// the boundary, so the services behind it stay free of role logic. The
// user record is loaded fresh so a demoted caller cannot ride a stale token.
func AuthorityRequired(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, err := identity.GetUserID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		user, err := st.GetUser(userID)
		if err != nil || user.UserType != models.UserTypeAuthority {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Forbidden: Authority access required",
			})
		}

		return c.Next()
	}
}
