package dto

import (
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	m "tapwork_backend/internals/features/organization/shift/model"
)

/* =====================
 * REQUESTS
 * ===================== */

type CreateShiftRequest struct {
	ShiftName               string `json:"shift_name" validate:"required,max=50"`
	ShiftStartTime          string `json:"shift_start_time" validate:"required,datetime=15:04"`
	ShiftEndTime            string `json:"shift_end_time" validate:"required,datetime=15:04"`
	ShiftGracePeriodMinutes int    `json:"shift_grace_period_minutes" validate:"min=0,max=240"`
	ShiftWorkingDays        []int  `json:"shift_working_days" validate:"omitempty,dive,min=0,max=6"`
}

// Partial update: only fields explicitly present are applied.
type UpdateShiftRequest struct {
	ShiftName               *string `json:"shift_name" validate:"omitempty,max=50"`
	ShiftStartTime          *string `json:"shift_start_time" validate:"omitempty,datetime=15:04"`
	ShiftEndTime            *string `json:"shift_end_time" validate:"omitempty,datetime=15:04"`
	ShiftGracePeriodMinutes *int    `json:"shift_grace_period_minutes" validate:"omitempty,min=0,max=240"`
	ShiftWorkingDays        *[]int  `json:"shift_working_days" validate:"omitempty,dive,min=0,max=6"`
}

func (r CreateShiftRequest) ToModel() m.ShiftModel {
	return m.ShiftModel{
		ShiftName:               r.ShiftName,
		ShiftStartTime:          r.ShiftStartTime,
		ShiftEndTime:            r.ShiftEndTime,
		ShiftGracePeriodMinutes: r.ShiftGracePeriodMinutes,
		ShiftWorkingDays:        daysToJSON(r.ShiftWorkingDays),
	}
}

func (r UpdateShiftRequest) ApplyToModel(mdl *m.ShiftModel) {
	if r.ShiftName != nil {
		mdl.ShiftName = *r.ShiftName
	}
	if r.ShiftStartTime != nil {
		mdl.ShiftStartTime = *r.ShiftStartTime
	}
	if r.ShiftEndTime != nil {
		mdl.ShiftEndTime = *r.ShiftEndTime
	}
	if r.ShiftGracePeriodMinutes != nil {
		mdl.ShiftGracePeriodMinutes = *r.ShiftGracePeriodMinutes
	}
	if r.ShiftWorkingDays != nil {
		mdl.ShiftWorkingDays = daysToJSON(*r.ShiftWorkingDays)
	}
}

func daysToJSON(days []int) datatypes.JSON {
	if days == nil {
		days = []int{}
	}
	raw, _ := sonic.Marshal(days)
	return datatypes.JSON(raw)
}

/* =====================
 * RESPONSE
 * ===================== */

type ShiftResponse struct {
	ShiftId                 uuid.UUID      `json:"shift_id"`
	ShiftName               string         `json:"shift_name"`
	ShiftStartTime          string         `json:"shift_start_time"`
	ShiftEndTime            string         `json:"shift_end_time"`
	ShiftGracePeriodMinutes int            `json:"shift_grace_period_minutes"`
	ShiftWorkingDays        datatypes.JSON `json:"shift_working_days,omitempty"`
	ShiftCreatedAt          time.Time      `json:"shift_created_at"`
}

func FromModel(mdl *m.ShiftModel) ShiftResponse {
	return ShiftResponse{
		ShiftId:                 mdl.ShiftId,
		ShiftName:               mdl.ShiftName,
		ShiftStartTime:          mdl.ShiftStartTime,
		ShiftEndTime:            mdl.ShiftEndTime,
		ShiftGracePeriodMinutes: mdl.ShiftGracePeriodMinutes,
		ShiftWorkingDays:        mdl.ShiftWorkingDays,
		ShiftCreatedAt:          mdl.ShiftCreatedAt,
	}
}
