package controller

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	auditService "tapwork_backend/internals/features/audit/service"
	credentialService "tapwork_backend/internals/features/credential/service"
	authService "tapwork_backend/internals/features/users/auth/service"
	"tapwork_backend/internals/features/users/user/dto"
	"tapwork_backend/internals/features/users/user/model"
	helper "tapwork_backend/internals/helpers"
)

type UserAdminController struct {
	DB          *gorm.DB
	Credentials *credentialService.CredentialService
	Audit       *auditService.AuditService
}

func NewUserAdminController(db *gorm.DB, creds *credentialService.CredentialService, audit *auditService.AuditService) *UserAdminController {
	return &UserAdminController{DB: db, Credentials: creds, Audit: audit}
}

/* ===================== LIST ===================== */
// GET /admin/users
func (ctrl *UserAdminController) List(c *fiber.Ctx) error {
	p := helper.ParsePaginationWith(c, helper.AdminOpts)

	var users []model.UserModel
	if err := ctrl.DB.Order("user_created_at DESC").
		Limit(p.PerPage).
		Offset(p.Offset()).
		Find(&users).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to list users")
	}
	return helper.Success(c, "Users fetched", dto.FromModels(users))
}

/* ===================== CREATE ===================== */
// POST /admin/users
// Creates the user and auto-issues their credential in one transaction.
func (ctrl *UserAdminController) Create(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
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

	user := model.UserModel{
		UserEmail:                   req.UserEmail,
		UserPasswordHash:            hash,
		UserFirstName:               req.UserFirstName,
		UserLastName:                req.UserLastName,
		UserRoleId:                  req.UserRoleId,
		UserDepartmentId:            req.UserDepartmentId,
		UserShiftId:                 req.UserShiftId,
		UserIsActive:                true,
		UserNotificationPreferences: req.UserNotificationPreferences,
	}
	if user.UserNotificationPreferences == nil {
		user.UserNotificationPreferences = model.DefaultNotificationPreferences()
	}

	if err := ctrl.DB.Transaction(func(tx *gorm.DB) error {
		employeeID := ""
		if req.UserEmployeeId != nil {
			employeeID = *req.UserEmployeeId
		} else {
			var count int64
			if err := tx.Model(&model.UserModel{}).Count(&count).Error; err != nil {
				return err
			}
			employeeID = fmt.Sprintf("EMP-%03d", count+1)
		}
		user.UserEmployeeId = employeeID

		var existing model.UserModel
		err := tx.Where("user_email = ? OR user_employee_id = ?", user.UserEmail, user.UserEmployeeId).
			Take(&existing).Error
		if err == nil {
			return fiber.NewError(fiber.StatusBadRequest, "Email or employee number already exists")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
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
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create user")
	}

	actorID, _ := helper.GetUserIDFromLocals(c)
	ctrl.Audit.Record(&actorID, "CREATE", "user", fiber.Map{"user": user.UserId}, helper.ClientIP(c))

	return helper.SuccessWithCode(c, fiber.StatusCreated, "User created", dto.FromModel(&user))
}

/* ===================== UPDATE (partial) ===================== */
// PATCH /admin/users/:id
func (ctrl *UserAdminController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid user id")
	}

	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	v := validator.New()
	if err := v.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var user model.UserModel
	if err := ctrl.DB.Where("user_id = ?", id).Take(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "User not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	req.ApplyToModel(&user)
	if err := ctrl.DB.Save(&user).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update user")
	}

	actorID, _ := helper.GetUserIDFromLocals(c)
	ctrl.Audit.Record(&actorID, "UPDATE", "user", fiber.Map{"user": user.UserId}, helper.ClientIP(c))

	return helper.Success(c, "User updated", dto.FromModel(&user))
}

/* ===================== DELETE ===================== */
// DELETE /admin/users/:id
func (ctrl *UserAdminController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid user id")
	}

	if err := ctrl.DB.Where("user_id = ?", id).Delete(&model.UserModel{}).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete user")
	}

	actorID, _ := helper.GetUserIDFromLocals(c)
	ctrl.Audit.Record(&actorID, "DELETE", "user", fiber.Map{"user": id}, helper.ClientIP(c))

	return helper.Success(c, "User deleted", nil)
}
