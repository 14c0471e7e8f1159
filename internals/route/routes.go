package routes

import (
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"tapwork_backend/internals/configs"
	databases "tapwork_backend/internals/databases"
	attendanceRoute "tapwork_backend/internals/features/attendance/route"
	attendanceService "tapwork_backend/internals/features/attendance/service"
	auditRoute "tapwork_backend/internals/features/audit/route"
	auditService "tapwork_backend/internals/features/audit/service"
	biometricRoute "tapwork_backend/internals/features/biometric/route"
	biometricService "tapwork_backend/internals/features/biometric/service"
	credentialRoute "tapwork_backend/internals/features/credential/route"
	credentialService "tapwork_backend/internals/features/credential/service"
	notification "tapwork_backend/internals/features/notification/service"
	organizationRoute "tapwork_backend/internals/features/organization/route"
	authRoute "tapwork_backend/internals/features/users/auth/route"
	userRoute "tapwork_backend/internals/features/users/user/route"
	authMiddleware "tapwork_backend/internals/middlewares/auth"
)

var startTime time.Time

// Services bundles the long-lived service singletons main constructs at
// boot. Routes only wire them to handlers.
type Services struct {
	Credentials *credentialService.CredentialService
	Biometrics  *biometricService.BiometricService
	Attendance  *attendanceService.AttendanceService
	Audit       *auditService.AuditService
	Notifier    notification.Notifier
}

func SetupRoutes(app *fiber.App, db *gorm.DB, cfg *configs.Settings, svc Services) {
	startTime = time.Now()

	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("tapwork attendance API 🚀")
	})
	app.Get("/health", healthHandler)

	api := app.Group("/api")

	// ===================== PUBLIC =====================
	log.Println("[INFO] Setting up public scan routes...")
	attendanceRoute.AttendanceScanRoutes(api, db, svc.Attendance, svc.Credentials, svc.Biometrics, svc.Audit, svc.Notifier)

	log.Println("[INFO] Setting up auth routes...")
	authRoute.AuthPublicRoutes(api, db, cfg, svc.Credentials, svc.Audit, svc.Notifier)

	// ===================== PRIVATE (USER) =====================
	log.Println("[INFO] Setting up user group...")
	user := api.Group("/u", authMiddleware.AuthMiddleware(db))
	authRoute.AuthUserRoutes(user, db, cfg, svc.Credentials, svc.Audit, svc.Notifier)
	credentialRoute.CredentialUserRoutes(user, db, svc.Credentials, svc.Audit)
	biometricRoute.BiometricUserRoutes(user, db, svc.Biometrics, svc.Audit)
	attendanceRoute.AttendanceUserRoutes(user, db, svc.Attendance, svc.Credentials, svc.Biometrics, svc.Audit, svc.Notifier)

	// ===================== PRIVATE (ADMIN) =====================
	log.Println("[INFO] Setting up admin group...")
	admin := api.Group("/a",
		authMiddleware.AuthMiddleware(db),
		authMiddleware.RequireRoles(db, "Admin", "HR Manager"),
	)
	userRoute.UserAdminRoutes(admin, db, svc.Credentials, svc.Audit)
	credentialRoute.CredentialAdminRoutes(admin, db, svc.Credentials, svc.Audit)
	biometricRoute.BiometricAdminRoutes(admin, db, svc.Biometrics, svc.Audit)
	organizationRoute.OrganizationAdminRoutes(admin, db, svc.Audit)
	auditRoute.AuditAdminRoutes(admin, db)
}

func healthHandler(c *fiber.Ctx) error {
	sqlDB, err := databases.DB.DB()
	dbStatus := "Connected"
	serverStatus := "OK"
	httpStatus := fiber.StatusOK

	if err != nil || sqlDB.Ping() != nil {
		dbStatus = "Database connection error"
		serverStatus = "DOWN"
		httpStatus = fiber.StatusServiceUnavailable
	}

	return c.Status(httpStatus).JSON(fiber.Map{
		"status":         serverStatus,
		"database":       dbStatus,
		"server_time":    time.Now().Format(time.RFC3339),
		"uptime_seconds": int(time.Since(startTime).Seconds()),
		"environment":    os.Getenv("APP_ENV"),
	})
}
