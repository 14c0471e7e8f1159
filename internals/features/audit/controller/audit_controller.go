package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"tapwork_backend/internals/features/audit/dto"
	"tapwork_backend/internals/features/audit/model"
	helper "tapwork_backend/internals/helpers"
)

type AuditController struct {
	DB *gorm.DB
}

func NewAuditController(db *gorm.DB) *AuditController {
	return &AuditController{DB: db}
}

/* ===================== LIST ===================== */
// GET /admin/audit
func (ctrl *AuditController) List(c *fiber.Ctx) error {
	var req dto.FilterAuditRequest
	if err := c.QueryParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid query parameters")
	}
	v := validator.New()
	if err := v.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	p := helper.ParsePaginationWith(c, helper.AdminOpts)

	q := ctrl.DB.Model(&model.AuditEntryModel{})
	if req.UserID != nil {
		q = q.Where("audit_entry_user_id = ?", *req.UserID)
	}
	if req.Action != nil {
		q = q.Where("audit_entry_action = ?", *req.Action)
	}
	if req.Resource != nil {
		q = q.Where("audit_entry_resource = ?", *req.Resource)
	}
	if req.Start != nil {
		q = q.Where("audit_entry_created_at >= ?", *req.Start)
	}
	if req.End != nil {
		q = q.Where("audit_entry_created_at <= ?", *req.End)
	}

	var entries []model.AuditEntryModel
	if err := q.Order("audit_entry_created_at DESC").
		Limit(p.PerPage).
		Offset(p.Offset()).
		Find(&entries).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to list audit entries")
	}

	return helper.Success(c, "Audit entries fetched", dto.FromModels(entries))
}
