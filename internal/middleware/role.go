package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/Prachiopenxcell/platform998_be/internal/models"
	"github.com/Prachiopenxcell/platform998_be/internal/utils"
)

func RequireRoles(allowed ...models.Role) fiber.Handler {
	allowedSet := map[models.Role]bool{}
	for _, r := range allowed {
		allowedSet[r] = true
	}

	return func(c *fiber.Ctx) error {
		raw := c.Locals("user")
		if raw == nil {
			return fiber.ErrUnauthorized
		}

		token, ok := raw.(*jwt.Token)
		if !ok || token == nil {
			return fiber.ErrUnauthorized
		}

		claims, ok := token.Claims.(*utils.Claims)
		if !ok {
			return fiber.ErrUnauthorized
		}

		role, known := models.ParseRole(claims.Role)
		if !known || !allowedSet[role] {
			return fiber.NewError(fiber.StatusForbidden, "forbidden: insufficient role")
		}

		return c.Next()
	}
}

// RequireSeeker and RequireProvider gate on the two halves of the role
// partition.
func RequireSeeker() fiber.Handler {
	return RequireRoles(models.RoleSeekerIndividual, models.RoleSeekerEntityAdmin, models.RoleSeekerTeamMember)
}

func RequireProvider() fiber.Handler {
	return RequireRoles(models.RoleProviderIndividual, models.RoleProviderEntityAdmin, models.RoleProviderTeamMember)
}

// RoleFromLocals recovers the parsed role set by AttachJWTLocals. The bool
// is false when the session carries a role outside the closed set; callers
// route that to a fallback branch, not an error.
func RoleFromLocals(c *fiber.Ctx) (models.Role, bool) {
	raw, _ := c.Locals("role").(string)
	return models.ParseRole(strings.TrimSpace(raw))
}
