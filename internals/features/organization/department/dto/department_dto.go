package dto

import (
	"time"

	"github.com/google/uuid"

	m "tapwork_backend/internals/features/organization/department/model"
)

type CreateDepartmentRequest struct {
	DepartmentName        string     `json:"department_name" validate:"required,max=100"`
	DepartmentDescription *string    `json:"department_description" validate:"omitempty"`
	DepartmentManagerId   *uuid.UUID `json:"department_manager_id" validate:"omitempty,uuid4"`
}

type DepartmentResponse struct {
	DepartmentId          uuid.UUID  `json:"department_id"`
	DepartmentName        string     `json:"department_name"`
	DepartmentDescription *string    `json:"department_description,omitempty"`
	DepartmentManagerId   *uuid.UUID `json:"department_manager_id,omitempty"`
	DepartmentCreatedAt   time.Time  `json:"department_created_at"`
}

func (r CreateDepartmentRequest) ToModel() m.DepartmentModel {
	return m.DepartmentModel{
		DepartmentName:        r.DepartmentName,
		DepartmentDescription: r.DepartmentDescription,
		DepartmentManagerId:   r.DepartmentManagerId,
	}
}

func FromModel(mdl *m.DepartmentModel) DepartmentResponse {
	return DepartmentResponse{
		DepartmentId:          mdl.DepartmentId,
		DepartmentName:        mdl.DepartmentName,
		DepartmentDescription: mdl.DepartmentDescription,
		DepartmentManagerId:   mdl.DepartmentManagerId,
		DepartmentCreatedAt:   mdl.DepartmentCreatedAt,
	}
}
