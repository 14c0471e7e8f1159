package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	auditService "tapwork_backend/internals/features/audit/service"
	departmentController "tapwork_backend/internals/features/organization/department/controller"
	roleController "tapwork_backend/internals/features/organization/role/controller"
	shiftController "tapwork_backend/internals/features/organization/shift/controller"
)

// OrganizationAdminRoutes registers role/department/shift CRUD under the
// admin group.
func OrganizationAdminRoutes(admin fiber.Router, db *gorm.DB, audit *auditService.AuditService) {
	roles := roleController.NewRoleController(db, audit)
	admin.Get("/roles", roles.List)
	admin.Post("/roles", roles.Create)

	departments := departmentController.NewDepartmentController(db, audit)
	admin.Get("/departments", departments.List)
	admin.Post("/departments", departments.Create)

	shifts := shiftController.NewShiftController(db, audit)
	admin.Get("/shifts", shifts.List)
	admin.Post("/shifts", shifts.Create)
	admin.Patch("/shifts/:id", shifts.Update)
	admin.Delete("/shifts/:id", shifts.Delete)
}
