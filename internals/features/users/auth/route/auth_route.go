package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"tapwork_backend/internals/configs"
	auditService "tapwork_backend/internals/features/audit/service"
	credentialService "tapwork_backend/internals/features/credential/service"
	notification "tapwork_backend/internals/features/notification/service"
	"tapwork_backend/internals/features/users/auth/controller"
	"tapwork_backend/internals/middlewares"
)

// AuthPublicRoutes: registration/login/token flows, rate limited per
// endpoint sensitivity.
func AuthPublicRoutes(api fiber.Router, db *gorm.DB, cfg *configs.Settings, creds *credentialService.CredentialService, audit *auditService.AuditService, notifier notification.Notifier) {
	ctrl := controller.NewAuthController(db, cfg, creds, audit, notifier)

	auth := api.Group("/auth")
	auth.Post("/register", middlewares.RegisterRateLimiter(), ctrl.Register)
	auth.Post("/login", middlewares.LoginRateLimiter(), ctrl.Login)
	auth.Post("/verify-email", ctrl.VerifyEmail)
	auth.Post("/password-reset", middlewares.ForgotPasswordRateLimiter(), ctrl.RequestPasswordReset)
	auth.Post("/password-reset/confirm", ctrl.ConfirmPasswordReset)
}

// AuthUserRoutes: authenticated self-service endpoints.
func AuthUserRoutes(user fiber.Router, db *gorm.DB, cfg *configs.Settings, creds *credentialService.CredentialService, audit *auditService.AuditService, notifier notification.Notifier) {
	ctrl := controller.NewAuthController(db, cfg, creds, audit, notifier)

	user.Get("/me", ctrl.Me)
	user.Post("/change-password", ctrl.ChangePassword)
}
