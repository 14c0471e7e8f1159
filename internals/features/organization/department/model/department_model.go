package model

import (
	"time"

	"github.com/google/uuid"
)

type DepartmentModel struct {
	DepartmentId uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:department_id" json:"department_id"`

	DepartmentName        string     `gorm:"type:varchar(100);uniqueIndex;not null;column:department_name" json:"department_name"`
	DepartmentDescription *string    `gorm:"type:text;column:department_description" json:"department_description,omitempty"`
	DepartmentManagerId   *uuid.UUID `gorm:"type:uuid;column:department_manager_id" json:"department_manager_id,omitempty"`

	DepartmentCreatedAt time.Time `gorm:"column:department_created_at;autoCreateTime" json:"department_created_at"`
}

func (DepartmentModel) TableName() string { return "departments" }
