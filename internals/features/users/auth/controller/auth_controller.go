package controller

import (
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"tapwork_backend/internals/configs"
	auditService "tapwork_backend/internals/features/audit/service"
	credentialService "tapwork_backend/internals/features/credential/service"
	notification "tapwork_backend/internals/features/notification/service"
	roleModel "tapwork_backend/internals/features/organization/role/model"
	authService "tapwork_backend/internals/features/users/auth/service"
	userDto "tapwork_backend/internals/features/users/user/dto"
	userModel "tapwork_backend/internals/features/users/user/model"
	helper "tapwork_backend/internals/helpers"
)

type AuthController struct {
	DB          *gorm.DB
	Cfg         *configs.Settings
	Credentials *credentialService.CredentialService
	Audit       *auditService.AuditService
	Notifier    notification.Notifier
}

func NewAuthController(db *gorm.DB, cfg *configs.Settings, creds *credentialService.CredentialService, audit *auditService.AuditService, notifier notification.Notifier) *AuthController {
	return &AuthController{DB: db, Cfg: cfg, Credentials: creds, Audit: audit, Notifier: notifier}
}

/* =========================================================
 * DTO (auth only, local to this controller)
 * ========================================================= */

type RegisterRequest struct {
	UserEmail      string `json:"user_email" validate:"required,email,max=255"`
	UserPassword   string `json:"user_password" validate:"required,min=8,max=72"`
	UserFirstName  string `json:"user_first_name" validate:"required,max=50"`
	UserLastName   string `json:"user_last_name" validate:"required,max=50"`
	UserEmployeeId string `json:"user_employee_id" validate:"required,max=50"`
}

type LoginRequest struct {
	UserEmail    string `json:"user_email" validate:"required,email"`
	UserPassword string `json:"user_password" validate:"required"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8,max=72"`
}

type EmailVerificationRequest struct {
	Token string `json:"token" validate:"required"`
}

type PasswordResetRequest struct {
	UserEmail string `json:"user_email" validate:"required,email"`
}

type PasswordResetConfirm struct {
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8,max=72"`
}

type AuthResponse struct {
	User        userDto.UserResponse `json:"user"`
	AccessToken string               `json:"access_token"`
	TokenType   string               `json:"token_type"`
}

/* ===================== REGISTER ===================== */
// POST /auth/register
func (ctrl *AuthController) Register(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	v := validator.New()
	if err := v.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	hash, err := authService.HashPassword(req.UserPassword)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to hash password")
	}

	user := userModel.UserModel{
		UserEmail:                   req.UserEmail,
		UserPasswordHash:            hash,
		UserFirstName:               req.UserFirstName,
		UserLastName:                req.UserLastName,
		UserEmployeeId:              req.UserEmployeeId,
		UserIsActive:                true,
		UserNotificationPreferences: userModel.DefaultNotificationPreferences(),
	}

	if err := ctrl.DB.Transaction(func(tx *gorm.DB) error {
		var existing userModel.UserModel
		err := tx.Where("user_email = ? OR user_employee_id = ?", req.UserEmail, req.UserEmployeeId).
			Take(&existing).Error
		if err == nil {
			return fiber.NewError(fiber.StatusBadRequest, "Email or employee number already exists")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		var employeeRole roleModel.RoleModel
		if err := tx.Where("role_name = ?", "Employee").Take(&employeeRole).Error; err == nil {
			user.UserRoleId = &employeeRole.RoleId
		}

		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		_, err = ctrl.Credentials.Issue(tx, user.UserId)
		return err
	}); err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return fe
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Registration failed")
	}

	verifyToken, err := authService.CreateTypedToken(user.UserId, authService.TokenTypeVerify, configs.JWTSecret, ctrl.Cfg.EmailVerifyTokenExpMinutes)
	if err == nil && user.NotificationEnabled("registration") {
		notification.Dispatch(ctrl.Notifier, user.UserEmail, notification.EventRegistration, map[string]string{
			"verify_token": verifyToken,
			"employee_id":  user.UserEmployeeId,
		})
	}

	ctrl.Audit.Record(&user.UserId, "CREATE", "user", fiber.Map{"user": user.UserId}, helper.ClientIP(c))

	accessToken, err := authService.CreateTypedToken(user.UserId, authService.TokenTypeAccess, configs.JWTSecret, ctrl.Cfg.AccessTokenExpMinutes)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Token issuance failed")
	}

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Registered", AuthResponse{
		User:        userDto.FromModel(&user),
		AccessToken: accessToken,
		TokenType:   "bearer",
	})
}

/* ===================== LOGIN ===================== */
// POST /auth/login
func (ctrl *AuthController) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	v := validator.New()
	if err := v.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var user userModel.UserModel
	err := ctrl.DB.Where("user_email = ?", req.UserEmail).Take(&user).Error
	if err != nil || !authService.VerifyPassword(req.UserPassword, user.UserPasswordHash) {
		return fiber.NewError(fiber.StatusUnauthorized, "Invalid credentials")
	}
	if !user.UserIsActive {
		return fiber.NewError(fiber.StatusForbidden, "User is inactive")
	}

	accessToken, err := authService.CreateTypedToken(user.UserId, authService.TokenTypeAccess, configs.JWTSecret, ctrl.Cfg.AccessTokenExpMinutes)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Token issuance failed")
	}

	return helper.Success(c, "Logged in", AuthResponse{
		User:        userDto.FromModel(&user),
		AccessToken: accessToken,
		TokenType:   "bearer",
	})
}

/* ===================== ME ===================== */
// GET /u/me
func (ctrl *AuthController) Me(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return err
	}
	var user userModel.UserModel
	if err := ctrl.DB.Where("user_id = ?", userID).Take(&user).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "User not found")
	}
	return helper.Success(c, "Profile fetched", userDto.FromModel(&user))
}

/* ===================== CHANGE PASSWORD ===================== */
// POST /u/change-password
func (ctrl *AuthController) ChangePassword(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return err
	}

	var req ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	v := validator.New()
	if err := v.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var user userModel.UserModel
	if err := ctrl.DB.Where("user_id = ?", userID).Take(&user).Error; err != nil {
		return fiber.NewError(fiber.StatusNotFound, "User not found")
	}
	if !authService.VerifyPassword(req.CurrentPassword, user.UserPasswordHash) {
		return fiber.NewError(fiber.StatusBadRequest, "Current password is incorrect")
	}

	hash, err := authService.HashPassword(req.NewPassword)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to hash password")
	}
	now := time.Now().UTC()
	if err := ctrl.DB.Model(&user).Updates(map[string]interface{}{
		"user_password_hash":           hash,
		"user_password_changed_at":     now,
		"user_password_reset_required": false,
	}).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update password")
	}

	ctrl.Audit.Record(&userID, "UPDATE", "password", nil, helper.ClientIP(c))
	return helper.Success(c, "Password updated", nil)
}

/* ===================== VERIFY EMAIL ===================== */
// POST /auth/verify-email
func (ctrl *AuthController) VerifyEmail(c *fiber.Ctx) error {
	var req EmailVerificationRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	v := validator.New()
	if err := v.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	userID, err := authService.ParseTypedToken(req.Token, authService.TokenTypeVerify, configs.JWTSecret)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid token")
	}

	res := ctrl.DB.Model(&userModel.UserModel{}).
		Where("user_id = ?", userID).
		Update("user_is_email_verified", true)
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Verification failed")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "User not found")
	}

	ctrl.Audit.Record(&userID, "VERIFY", "user", fiber.Map{"verified": true}, helper.ClientIP(c))
	return helper.Success(c, "Email verified", nil)
}

/* ===================== PASSWORD RESET ===================== */
// POST /auth/password-reset
// Always answers the same whether the email exists or not.
func (ctrl *AuthController) RequestPasswordReset(c *fiber.Ctx) error {
	var req PasswordResetRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	v := validator.New()
	if err := v.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	const reply = "If the email exists, a reset link will be sent"

	var user userModel.UserModel
	if err := ctrl.DB.Where("user_email = ?", req.UserEmail).Take(&user).Error; err != nil {
		return helper.Success(c, reply, nil)
	}

	resetToken, err := authService.CreateTypedToken(user.UserId, authService.TokenTypeReset, configs.JWTSecret, ctrl.Cfg.PasswordResetTokenExpMinutes)
	if err == nil && user.NotificationEnabled("reset") {
		notification.Dispatch(ctrl.Notifier, user.UserEmail, notification.EventReset, map[string]string{
			"reset_token": resetToken,
		})
	}

	ctrl.Audit.Record(&user.UserId, "REQUEST_RESET", "user", nil, helper.ClientIP(c))
	return helper.Success(c, reply, nil)
}

// POST /auth/password-reset/confirm
func (ctrl *AuthController) ConfirmPasswordReset(c *fiber.Ctx) error {
	var req PasswordResetConfirm
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	v := validator.New()
	if err := v.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	userID, err := authService.ParseTypedToken(req.Token, authService.TokenTypeReset, configs.JWTSecret)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid token")
	}

	hash, err := authService.HashPassword(req.NewPassword)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to hash password")
	}
	now := time.Now().UTC()
	res := ctrl.DB.Model(&userModel.UserModel{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"user_password_hash":       hash,
			"user_password_changed_at": now,
		})
	if res.Error != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Reset failed")
	}
	if res.RowsAffected == 0 {
		return fiber.NewError(fiber.StatusNotFound, "User not found")
	}

	ctrl.Audit.Record(&userID, "RESET", "user", nil, helper.ClientIP(c))
	return helper.Success(c, "Password updated", nil)
}
