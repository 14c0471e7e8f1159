package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	auditService "tapwork_backend/internals/features/audit/service"
	"tapwork_backend/internals/features/biometric/controller"
	biometricService "tapwork_backend/internals/features/biometric/service"
)

// BiometricUserRoutes: self-service face enrollment.
func BiometricUserRoutes(user fiber.Router, db *gorm.DB, svc *biometricService.BiometricService, audit *auditService.AuditService) {
	ctrl := controller.NewBiometricController(db, svc, audit)
	user.Post("/face/register", ctrl.RegisterFace)
	user.Get("/face/status", ctrl.FaceStatus)
	user.Delete("/face", ctrl.DeleteFace)
}

// BiometricAdminRoutes: enrollment on behalf of an employee.
func BiometricAdminRoutes(admin fiber.Router, db *gorm.DB, svc *biometricService.BiometricService, audit *auditService.AuditService) {
	ctrl := controller.NewBiometricController(db, svc, audit)
	admin.Post("/users/:id/face", ctrl.AdminEnrollFace)
	admin.Delete("/users/:id/face", ctrl.AdminDeleteFace)
}
