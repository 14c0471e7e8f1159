package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	auditService "tapwork_backend/internals/features/audit/service"
	"tapwork_backend/internals/features/credential/controller"
	credentialService "tapwork_backend/internals/features/credential/service"
)

// CredentialUserRoutes: the caller's own barcode image.
func CredentialUserRoutes(user fiber.Router, db *gorm.DB, svc *credentialService.CredentialService, audit *auditService.AuditService) {
	ctrl := controller.NewCredentialController(db, svc, audit)
	user.Get("/credential/me.png", ctrl.MyBarcodePNG)
}

// CredentialAdminRoutes: reissue/revoke per user.
func CredentialAdminRoutes(admin fiber.Router, db *gorm.DB, svc *credentialService.CredentialService, audit *auditService.AuditService) {
	ctrl := controller.NewCredentialController(db, svc, audit)
	admin.Post("/users/:id/credential", ctrl.Reissue)
	admin.Delete("/users/:id/credential", ctrl.Revoke)
}
