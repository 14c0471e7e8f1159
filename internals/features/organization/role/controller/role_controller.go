package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	auditService "tapwork_backend/internals/features/audit/service"
	"tapwork_backend/internals/features/organization/role/dto"
	"tapwork_backend/internals/features/organization/role/model"
	helper "tapwork_backend/internals/helpers"
)

type RoleController struct {
	DB    *gorm.DB
	Audit *auditService.AuditService
}

func NewRoleController(db *gorm.DB, audit *auditService.AuditService) *RoleController {
	return &RoleController{DB: db, Audit: audit}
}

// GET /admin/roles
func (ctrl *RoleController) List(c *fiber.Ctx) error {
	var roles []model.RoleModel
	if err := ctrl.DB.Order("role_created_at ASC").Find(&roles).Error; err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to list roles")
	}
	out := make([]dto.RoleResponse, 0, len(roles))
	for i := range roles {
		out = append(out, dto.FromModel(&roles[i]))
	}
	return helper.Success(c, "Roles fetched", out)
}

// POST /admin/roles
func (ctrl *RoleController) Create(c *fiber.Ctx) error {
	var req dto.CreateRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid payload")
	}
	v := validator.New()
	if err := v.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	mdl := req.ToModel()
	if err := ctrl.DB.Create(&mdl).Error; err != nil {
		return fiber.NewError(fiber.StatusConflict, "Role already exists")
	}

	actorID, _ := helper.GetUserIDFromLocals(c)
	ctrl.Audit.Record(&actorID, "CREATE", "role", fiber.Map{"role": mdl.RoleId}, helper.ClientIP(c))

	return helper.SuccessWithCode(c, fiber.StatusCreated, "Role created", dto.FromModel(&mdl))
}
