package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	auditService "tapwork_backend/internals/features/audit/service"
	"tapwork_backend/internals/features/organization/department/dto"
	"tapwork_backend/internals/features/organization/department/model"
	helper "tapwork_backend/internals/helpers"
)

type DepartmentController struct {
	DB    *gorm.DB
	Audit *auditService.AuditService
}

func NewDepartmentController(db *gorm.DB, audit *auditService.AuditService) *DepartmentController {
	return &DepartmentController{DB: db, Audit: audit}
}

// GET /admin/departments
func (ctrl *DepartmentController) List(c *fiber.Ctx) error {
	var departments []model.DepartmentModel
	if err := ctrl.DB.Order("department_created_at ASC").Find(&departments).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to list departments")
	}
	out := make([]dto.DepartmentResponse, 0, len(departments))
	for i := range departments {
		out = append(out, dto.FromModel(&departments[i]))
	}
	return helper.Success(c, "Departments fetched", out)
}

// POST /admin/departments
func (ctrl *DepartmentController) Create(c *fiber.Ctx) error {
	var req dto.CreateDepartmentRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	v := validator.New()
	if err := v.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	mdl := req.ToModel()
	if err := ctrl.DB.Create(&mdl).Error; err != nil {
		return fiber.NewError(fiber.StatusConflict, "Department already exists")
	}

	actorID, _ := helper.GetUserIDFromLocals(c)
	ctrl.Audit.Record(&actorID, "CREATE", "department", fiber.Map{"department": mdl.DepartmentId}, helper.ClientIP(c))

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Department created", dto.FromModel(&mdl))
}
