package model

import (
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type UserModel struct {
	UserId uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:user_id" json:"user_id"`

	UserEmail        string `gorm:"type:varchar(255);uniqueIndex;not null;column:user_email" json:"user_email"`
	UserPasswordHash string `gorm:"type:varchar(255);not null;column:user_password_hash" json:"-"`

	UserFirstName  string `gorm:"type:varchar(50);not null;column:user_first_name" json:"user_first_name"`
	UserLastName   string `gorm:"type:varchar(50);not null;column:user_last_name" json:"user_last_name"`
	UserEmployeeId string `gorm:"type:varchar(50);uniqueIndex;not null;column:user_employee_id" json:"user_employee_id"`

	UserRoleId       *uuid.UUID `gorm:"type:uuid;column:user_role_id" json:"user_role_id,omitempty"`
	UserDepartmentId *uuid.UUID `gorm:"type:uuid;column:user_department_id;index:ix_users_department_active" json:"user_department_id,omitempty"`
	UserShiftId      *uuid.UUID `gorm:"type:uuid;column:user_shift_id" json:"user_shift_id,omitempty"`

	UserIsActive        bool `gorm:"not null;default:true;column:user_is_active;index:ix_users_department_active" json:"user_is_active"`
	UserIsEmailVerified bool `gorm:"not null;default:false;column:user_is_email_verified" json:"user_is_email_verified"`

	// {"registration": true, "reset": true, "attendance": true}
	UserNotificationPreferences datatypes.JSON `gorm:"column:user_notification_preferences" json:"user_notification_preferences,omitempty"`

	UserPasswordResetRequired bool       `gorm:"not null;default:true;column:user_password_reset_required" json:"user_password_reset_required"`
	UserPasswordChangedAt     *time.Time `gorm:"column:user_password_changed_at" json:"user_password_changed_at,omitempty"`

	UserCreatedAt time.Time  `gorm:"column:user_created_at;autoCreateTime" json:"user_created_at"`
	UserUpdatedAt *time.Time `gorm:"column:user_updated_at;autoUpdateTime" json:"user_updated_at,omitempty"`
}

func (UserModel) TableName() string { return "users" }

// NotificationEnabled reports whether the given notification kind is
// enabled in the user's preferences. Missing keys and unreadable
// preference payloads default to enabled.
func (u *UserModel) NotificationEnabled(kind string) bool {
	if len(u.UserNotificationPreferences) == 0 {
		return true
	}
	var prefs map[string]bool
	if err := sonic.Unmarshal(u.UserNotificationPreferences, &prefs); err != nil {
		return true
	}
	enabled, ok := prefs[kind]
	if !ok {
		return true
	}
	return enabled
}

// DefaultNotificationPreferences is the payload written at registration.
func DefaultNotificationPreferences() datatypes.JSON {
	raw, _ := sonic.Marshal(map[string]bool{
		"registration": true,
		"reset":        true,
		"attendance":   true,
	})
	return datatypes.JSON(raw)
}
