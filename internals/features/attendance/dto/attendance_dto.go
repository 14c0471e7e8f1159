package dto

import (
	"time"

	"github.com/google/uuid"

	"tapwork_backend/internals/features/attendance/model"
)

/* ===================== REQUEST ===================== */

type ScanRequest struct {
	CodeData string `json:"code_data" validate:"required"`
	Location string `json:"location" validate:"omitempty,max=255"`
	Notes    string `json:"notes" validate:"omitempty,max=2000"`
}

type FaceScanRequest struct {
	EmployeeId string `json:"employee_id" validate:"required"`
	ImageData  string `json:"image_data" validate:"required"`
	Location   string `json:"location" validate:"omitempty,max=255"`
	Notes      string `json:"notes" validate:"omitempty,max=2000"`
}

/* ===================== RESPONSE ===================== */

type AttendanceResponse struct {
	AttendanceRecordId uuid.UUID  `json:"attendance_record_id"`
	UserId             uuid.UUID  `json:"user_id"`
	CheckIn            time.Time  `json:"check_in"`
	CheckOut           *time.Time `json:"check_out,omitempty"`
	Status             string     `json:"status"`
	Method             string     `json:"method"`
	Location           string     `json:"location,omitempty"`
	Notes              string     `json:"notes,omitempty"`
	ActionPerformed    string     `json:"action_performed,omitempty"`
}

func FromModel(m *model.AttendanceRecordModel) AttendanceResponse {
	return AttendanceResponse{
		AttendanceRecordId: m.AttendanceRecordId,
		UserId:             m.AttendanceRecordUserId,
		CheckIn:            m.AttendanceRecordCheckIn,
		CheckOut:           m.AttendanceRecordCheckOut,
		Status:             m.AttendanceRecordStatus,
		Method:             m.AttendanceRecordMethod,
		Location:           m.AttendanceRecordLocation,
		Notes:              m.AttendanceRecordNotes,
	}
}

func FromModels(ms []model.AttendanceRecordModel) []AttendanceResponse {
	out := make([]AttendanceResponse, 0, len(ms))
	for i := range ms {
		out = append(out, FromModel(&ms[i]))
	}
	return out
}
