package auth

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	helper "tapwork_backend/internals/helpers"
)

// RequireRoles guards a group behind a set of role names. Must run after
// AuthMiddleware.
func RequireRoles(db *gorm.DB, roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		userID, err := helper.GetUserIDFromLocals(c)
		if err != nil {
			return err
		}

		var roleName string
		err = db.Table("users").
			Select("roles.role_name").
			Joins("JOIN roles ON roles.role_id = users.user_role_id").
			Where("users.user_id = ?", userID).
			Take(&roleName).Error
		if err != nil {
			log.Println("[WARN] role lookup failed:", err)
			return fiber.NewError(fiber.StatusForbidden, "Insufficient permissions")
		}

		if _, ok := allowed[roleName]; !ok {
			return fiber.NewError(fiber.StatusForbidden, "Insufficient permissions")
		}
		return c.Next()
	}
}
