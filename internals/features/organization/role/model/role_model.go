package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type RoleModel struct {
	RoleId uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:role_id" json:"role_id"`

	RoleName        string         `gorm:"type:varchar(50);uniqueIndex;not null;column:role_name" json:"role_name"`
	RoleDescription *string        `gorm:"type:text;column:role_description" json:"role_description,omitempty"`
	RolePermissions datatypes.JSON `gorm:"column:role_permissions" json:"role_permissions,omitempty"`

	RoleCreatedAt time.Time `gorm:"column:role_created_at;autoCreateTime" json:"role_created_at"`
}

func (RoleModel) TableName() string { return "roles" }
