package controller

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	auditService "tapwork_backend/internals/features/audit/service"
	"tapwork_backend/internals/features/biometric/dto"
	"tapwork_backend/internals/features/biometric/pipeline"
	biometricService "tapwork_backend/internals/features/biometric/service"
	userModel "tapwork_backend/internals/features/users/user/model"
	helper "tapwork_backend/internals/helpers"
)

type BiometricController struct {
	DB      *gorm.DB
	Service *biometricService.BiometricService
	Audit   *auditService.AuditService
}

func NewBiometricController(db *gorm.DB, svc *biometricService.BiometricService, audit *auditService.AuditService) *BiometricController {
	return &BiometricController{DB: db, Service: svc, Audit: audit}
}

var validate = validator.New()

// requireAvailable gates every biometric endpoint on the detector being
// loaded. Degradation is a 503, never a silent fallback.
func (ctrl *BiometricController) requireAvailable() error {
	if !ctrl.Service.Available() {
		return fiber.NewError(fiber.StatusServiceUnavailable, "Face verification is not available")
	}
	return nil
}

// mapPipelineError turns gate failures into 400s with the gate message
// and hides everything else behind a generic 500.
func mapPipelineError(err error) error {
	var gf *pipeline.GateFailure
	if errors.As(err, &gf) {
		return fiber.NewError(fiber.StatusBadRequest, gf.Message)
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe
	}
	log.Printf("[ERROR] biometric: %v", err)
	return fiber.NewError(fiber.StatusInternalServerError, "Face verification failed")
}

/* ===================== SELF SERVICE ===================== */

// POST /u/face/register
func (ctrl *BiometricController) RegisterFace(c *fiber.Ctx) error {
	if err := ctrl.requireAvailable(); err != nil {
		return err
	}
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return err
	}

	var req dto.RegisterFaceRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var modelName string
	if err := ctrl.DB.Transaction(func(tx *gorm.DB) error {
		t, err := ctrl.Service.Enroll(tx, userID, req.ImageData)
		if err != nil {
			return err
		}
		modelName = t.BiometricTemplateModelName
		return nil
	}); err != nil {
		return mapPipelineError(err)
	}

	ctrl.Audit.Record(&userID, "FACE_ENROLL", "biometric_template", fiber.Map{"model": modelName}, helper.ClientIP(c))
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Face registered", fiber.Map{"model_name": modelName})
}

// GET /u/face/status
func (ctrl *BiometricController) FaceStatus(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return err
	}
	tpl, err := ctrl.Service.Status(userID)
	if errors.Is(err, biometricService.ErrNotEnrolled) {
		return helper.Success(c, "Face status", dto.StatusFromModel(nil))
	}
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}
	return helper.Success(c, "Face status", dto.StatusFromModel(tpl))
}

// DELETE /u/face
func (ctrl *BiometricController) DeleteFace(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return err
	}
	if err := ctrl.DB.Transaction(func(tx *gorm.DB) error {
		return ctrl.Service.Delete(tx, userID)
	}); err != nil {
		if errors.Is(err, biometricService.ErrNotEnrolled) {
			return fiber.NewError(fiber.StatusNotFound, "No face template enrolled")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	ctrl.Audit.Record(&userID, "FACE_DELETE", "biometric_template", nil, helper.ClientIP(c))
	return helper.Success(c, "Face template deleted", nil)
}

/* ===================== ADMIN ===================== */

// POST /admin/users/:id/face
// Enrolls a face on behalf of an employee (onboarding kiosks).
func (ctrl *BiometricController) AdminEnrollFace(c *fiber.Ctx) error {
	if err := ctrl.requireAvailable(); err != nil {
		return err
	}
	targetID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid user id")
	}
	adminID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return err
	}

	var user userModel.UserModel
	if err := ctrl.DB.Where("user_id = ?", targetID).Take(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "User not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	var req dto.RegisterFaceRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	if err := ctrl.DB.Transaction(func(tx *gorm.DB) error {
		_, err := ctrl.Service.Enroll(tx, targetID, req.ImageData)
		return err
	}); err != nil {
		return mapPipelineError(err)
	}

	ctrl.Audit.Record(&adminID, "FACE_ENROLL", "biometric_template", fiber.Map{"target_user_id": targetID}, helper.ClientIP(c))
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Face registered", nil)
}

// DELETE /admin/users/:id/face
func (ctrl *BiometricController) AdminDeleteFace(c *fiber.Ctx) error {
	targetID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid user id")
	}
	adminID, err := helper.GetUserIDFromLocals(c)
	if err != nil {
		return err
	}

	if err := ctrl.DB.Transaction(func(tx *gorm.DB) error {
		return ctrl.Service.Delete(tx, targetID)
	}); err != nil {
		if errors.Is(err, biometricService.ErrNotEnrolled) {
			return fiber.NewError(fiber.StatusNotFound, "No face template enrolled")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	ctrl.Audit.Record(&adminID, "FACE_DELETE", "biometric_template", fiber.Map{"target_user_id": targetID}, helper.ClientIP(c))
	return helper.Success(c, "Face template deleted", nil)
}
