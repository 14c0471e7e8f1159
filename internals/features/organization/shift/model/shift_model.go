package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ShiftModel is a named work schedule. Times are stored as "HH:MM" wall
// clock strings; working days as a JSONB array of weekday numbers
// (0 = Sunday .. 6 = Saturday).
type ShiftModel struct {
	ShiftId uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:shift_id" json:"shift_id"`

	ShiftName      string `gorm:"type:varchar(50);not null;column:shift_name" json:"shift_name"`
	ShiftStartTime string `gorm:"type:varchar(8);not null;column:shift_start_time" json:"shift_start_time"`
	ShiftEndTime   string `gorm:"type:varchar(8);not null;column:shift_end_time" json:"shift_end_time"`

	ShiftGracePeriodMinutes int            `gorm:"not null;default:0;column:shift_grace_period_minutes" json:"shift_grace_period_minutes"`
	ShiftWorkingDays        datatypes.JSON `gorm:"column:shift_working_days" json:"shift_working_days,omitempty"`

	ShiftCreatedAt time.Time `gorm:"column:shift_created_at;autoCreateTime" json:"shift_created_at"`
}

func (ShiftModel) TableName() string { return "shifts" }
