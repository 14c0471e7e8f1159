package dto

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	m "tapwork_backend/internals/features/users/user/model"
)

/* =========================================================
 * REQUESTS
 * ========================================================= */

type CreateUserRequest struct {
	UserEmail     string `json:"user_email" validate:"required,email,max=255"`
	UserPassword  string `json:"user_password" validate:"required,min=8,max=72"`
	UserFirstName string `json:"user_first_name" validate:"required,max=50"`
	UserLastName  string `json:"user_last_name" validate:"required,max=50"`

	// Optional; generated as EMP-NNN when absent.
	UserEmployeeId *string `json:"user_employee_id" validate:"omitempty,max=50"`

	UserRoleId       *uuid.UUID `json:"user_role_id" validate:"omitempty,uuid4"`
	UserDepartmentId *uuid.UUID `json:"user_department_id" validate:"omitempty,uuid4"`
	UserShiftId      *uuid.UUID `json:"user_shift_id" validate:"omitempty,uuid4"`

	UserNotificationPreferences datatypes.JSON `json:"user_notification_preferences" validate:"omitempty"`
}

// Partial update: only fields explicitly present are applied, never a
// reflective key/value patch.
type UpdateUserRequest struct {
	UserEmail     *string `json:"user_email" validate:"omitempty,email,max=255"`
	UserFirstName *string `json:"user_first_name" validate:"omitempty,max=50"`
	UserLastName  *string `json:"user_last_name" validate:"omitempty,max=50"`

	UserRoleId       *uuid.UUID `json:"user_role_id" validate:"omitempty,uuid4"`
	UserDepartmentId *uuid.UUID `json:"user_department_id" validate:"omitempty,uuid4"`
	UserShiftId      *uuid.UUID `json:"user_shift_id" validate:"omitempty,uuid4"`

	UserIsActive *bool `json:"user_is_active" validate:"omitempty"`

	UserNotificationPreferences *datatypes.JSON `json:"user_notification_preferences" validate:"omitempty"`
}

func (r UpdateUserRequest) ApplyToModel(mdl *m.UserModel) {
	if r.UserEmail != nil {
		mdl.UserEmail = *r.UserEmail
	}
	if r.UserFirstName != nil {
		mdl.UserFirstName = *r.UserFirstName
	}
	if r.UserLastName != nil {
		mdl.UserLastName = *r.UserLastName
	}
	if r.UserRoleId != nil {
		mdl.UserRoleId = r.UserRoleId
	}
	if r.UserDepartmentId != nil {
		mdl.UserDepartmentId = r.UserDepartmentId
	}
	if r.UserShiftId != nil {
		mdl.UserShiftId = r.UserShiftId
	}
	if r.UserIsActive != nil {
		mdl.UserIsActive = *r.UserIsActive
	}
	if r.UserNotificationPreferences != nil {
		mdl.UserNotificationPreferences = *r.UserNotificationPreferences
	}
}

/* =========================================================
 * RESPONSE
 * ========================================================= */

type UserResponse struct {
	UserId uuid.UUID `json:"user_id"`

	UserEmail      string `json:"user_email"`
	UserFirstName  string `json:"user_first_name"`
	UserLastName   string `json:"user_last_name"`
	UserEmployeeId string `json:"user_employee_id"`

	UserRoleId       *uuid.UUID `json:"user_role_id,omitempty"`
	UserDepartmentId *uuid.UUID `json:"user_department_id,omitempty"`
	UserShiftId      *uuid.UUID `json:"user_shift_id,omitempty"`

	UserIsActive        bool `json:"user_is_active"`
	UserIsEmailVerified bool `json:"user_is_email_verified"`

	UserNotificationPreferences datatypes.JSON `json:"user_notification_preferences,omitempty"`

	UserCreatedAt time.Time  `json:"user_created_at"`
	UserUpdatedAt *time.Time `json:"user_updated_at,omitempty"`
}

func FromModel(mdl *m.UserModel) UserResponse {
	return UserResponse{
		UserId:                      mdl.UserId,
		UserEmail:                   mdl.UserEmail,
		UserFirstName:               mdl.UserFirstName,
		UserLastName:                mdl.UserLastName,
		UserEmployeeId:              mdl.UserEmployeeId,
		UserRoleId:                  mdl.UserRoleId,
		UserDepartmentId:            mdl.UserDepartmentId,
		UserShiftId:                 mdl.UserShiftId,
		UserIsActive:                mdl.UserIsActive,
		UserIsEmailVerified:         mdl.UserIsEmailVerified,
		UserNotificationPreferences: mdl.UserNotificationPreferences,
		UserCreatedAt:               mdl.UserCreatedAt,
		UserUpdatedAt:               mdl.UserUpdatedAt,
	}
}

func FromModels(users []m.UserModel) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for i := range users {
		out = append(out, FromModel(&users[i]))
	}
	return out
}
