package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	auditService "tapwork_backend/internals/features/audit/service"
	credentialService "tapwork_backend/internals/features/credential/service"
	"tapwork_backend/internals/features/users/user/controller"
)

// UserAdminRoutes: administrative user CRUD.
func UserAdminRoutes(admin fiber.Router, db *gorm.DB, creds *credentialService.CredentialService, audit *auditService.AuditService) {
	ctrl := controller.NewUserAdminController(db, creds, audit)
	admin.Get("/users", ctrl.List)
	admin.Post("/users", ctrl.Create)
	admin.Patch("/users/:id", ctrl.Update)
	admin.Delete("/users/:id", ctrl.Delete)
}
