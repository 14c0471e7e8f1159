package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"tapwork_backend/internals/features/audit/controller"
)

// AuditAdminRoutes registers the audit listing under the admin group.
func AuditAdminRoutes(admin fiber.Router, db *gorm.DB) {
	ctrl := controller.NewAuditController(db)
	admin.Get("/audit", ctrl.List)
}
