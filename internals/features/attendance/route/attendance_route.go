package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"tapwork_backend/internals/features/attendance/controller"
	attendanceService "tapwork_backend/internals/features/attendance/service"
	auditService "tapwork_backend/internals/features/audit/service"
	biometricService "tapwork_backend/internals/features/biometric/service"
	credentialService "tapwork_backend/internals/features/credential/service"
	notification "tapwork_backend/internals/features/notification/service"
	"tapwork_backend/internals/middlewares"
)

// AttendanceScanRoutes: the public scanner endpoints, rate limited per
// device IP.
func AttendanceScanRoutes(api fiber.Router, db *gorm.DB, svc *attendanceService.AttendanceService, creds *credentialService.CredentialService, bio *biometricService.BiometricService, audit *auditService.AuditService, notifier notification.Notifier) {
	ctrl := controller.NewAttendanceController(db, svc, creds, bio, audit, notifier)
	api.Post("/scan", middlewares.ScanRateLimiter(), ctrl.Scan)
	api.Post("/face-scan", middlewares.ScanRateLimiter(), ctrl.FaceScan)
}

// AttendanceUserRoutes: the caller's own history.
func AttendanceUserRoutes(user fiber.Router, db *gorm.DB, svc *attendanceService.AttendanceService, creds *credentialService.CredentialService, bio *biometricService.BiometricService, audit *auditService.AuditService, notifier notification.Notifier) {
	ctrl := controller.NewAttendanceController(db, svc, creds, bio, audit, notifier)
	user.Get("/attendance/me", ctrl.MyHistory)
}
