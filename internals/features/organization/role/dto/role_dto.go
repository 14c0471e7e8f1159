package dto

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	m "tapwork_backend/internals/features/organization/role/model"
)

type CreateRoleRequest struct {
	RoleName        string         `json:"role_name" validate:"required,max=50"`
	RoleDescription *string        `json:"role_description" validate:"omitempty"`
	RolePermissions datatypes.JSON `json:"role_permissions" validate:"omitempty"`
}

type RoleResponse struct {
	RoleId          uuid.UUID      `json:"role_id"`
	RoleName        string         `json:"role_name"`
	RoleDescription *string        `json:"role_description,omitempty"`
	RolePermissions datatypes.JSON `json:"role_permissions,omitempty"`
	RoleCreatedAt   time.Time      `json:"role_created_at"`
}

func (r CreateRoleRequest) ToModel() m.RoleModel {
	return m.RoleModel{
		RoleName:        r.RoleName,
		RoleDescription: r.RoleDescription,
		RolePermissions: r.RolePermissions,
	}
}

func FromModel(mdl *m.RoleModel) RoleResponse {
	return RoleResponse{
		RoleId:          mdl.RoleId,
		RoleName:        mdl.RoleName,
		RoleDescription: mdl.RoleDescription,
		RolePermissions: mdl.RolePermissions,
		RoleCreatedAt:   mdl.RoleCreatedAt,
	}
}
