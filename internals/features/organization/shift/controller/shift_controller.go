package controller

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	auditService "tapwork_backend/internals/features/audit/service"
	"tapwork_backend/internals/features/organization/shift/dto"
	"tapwork_backend/internals/features/organization/shift/model"
	helper "tapwork_backend/internals/helpers"
)

type ShiftController struct {
	DB    *gorm.DB
	Audit *auditService.AuditService
}

func NewShiftController(db *gorm.DB, audit *auditService.AuditService) *ShiftController {
	return &ShiftController{DB: db, Audit: audit}
}

/* ===================== LIST ===================== */
// GET /admin/shifts
func (ctrl *ShiftController) List(c *fiber.Ctx) error {
	var shifts []model.ShiftModel
	if err := ctrl.DB.Order("shift_created_at ASC").Find(&shifts).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to list shifts")
	}
	out := make([]dto.ShiftResponse, 0, len(shifts))
	for i := range shifts {
		out = append(out, dto.FromModel(&shifts[i]))
	}
	return helper.Success(c, "Shifts fetched", out)
}

/* ===================== CREATE ===================== */
// POST /admin/shifts
func (ctrl *ShiftController) Create(c *fiber.Ctx) error {
	var req dto.CreateShiftRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	v := validator.New()
	if err := v.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	mdl := req.ToModel()
	if err := ctrl.DB.Create(&mdl).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create shift")
	}

	actorID, _ := helper.GetUserIDFromLocals(c)
	ctrl.Audit.Record(&actorID, "CREATE", "shift", fiber.Map{"shift": mdl.ShiftId}, helper.ClientIP(c))

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Shift created", dto.FromModel(&mdl))
}

/* ===================== UPDATE ===================== */
// PATCH /admin/shifts/:id
func (ctrl *ShiftController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid shift id")
	}

	var req dto.UpdateShiftRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	v := validator.New()
	if err := v.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var mdl model.ShiftModel
	if err := ctrl.DB.Where("shift_id = ?", id).Take(&mdl).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Shift not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, err.Error())
	}

	req.ApplyToModel(&mdl)
	if err := ctrl.DB.Save(&mdl).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to update shift")
	}

	actorID, _ := helper.GetUserIDFromLocals(c)
	ctrl.Audit.Record(&actorID, "UPDATE", "shift", fiber.Map{"shift": mdl.ShiftId}, helper.ClientIP(c))

	return helper.Success(c, "Shift updated", dto.FromModel(&mdl))
}

/* ===================== DELETE ===================== */
// DELETE /admin/shifts/:id
func (ctrl *ShiftController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid shift id")
	}

	if err := ctrl.DB.Where("shift_id = ?", id).Delete(&model.ShiftModel{}).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to delete shift")
	}

	actorID, _ := helper.GetUserIDFromLocals(c)
	ctrl.Audit.Record(&actorID, "DELETE", "shift", fiber.Map{"shift": id}, helper.ClientIP(c))

	return helper.Success(c, "Shift deleted", nil)
}
