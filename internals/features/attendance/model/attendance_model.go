package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusOnTime = "on-time"
	StatusLate   = "late"

	MethodBarcode = "barcode"
	MethodFace    = "face"
)

// AttendanceRecordModel is one presence interval. An open record
// (check_out NULL) means the employee is currently IN; closing it is
// the check-out. The shift reference is captured at creation so later
// shift reassignments never rewrite history.
type AttendanceRecordModel struct {
	AttendanceRecordId uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:attendance_record_id" json:"attendance_record_id"`

	AttendanceRecordUserId  uuid.UUID  `gorm:"type:uuid;not null;column:attendance_record_user_id;index:ix_attendance_records_user_checkin" json:"attendance_record_user_id"`
	AttendanceRecordShiftId *uuid.UUID `gorm:"type:uuid;column:attendance_record_shift_id" json:"attendance_record_shift_id,omitempty"`

	AttendanceRecordCheckIn  time.Time  `gorm:"not null;column:attendance_record_check_in;index:ix_attendance_records_user_checkin" json:"attendance_record_check_in"`
	AttendanceRecordCheckOut *time.Time `gorm:"column:attendance_record_check_out;check:chk_attendance_checkout,attendance_record_check_out IS NULL OR attendance_record_check_out >= attendance_record_check_in" json:"attendance_record_check_out,omitempty"`

	AttendanceRecordStatus string `gorm:"type:varchar(20);not null;column:attendance_record_status" json:"attendance_record_status"`
	AttendanceRecordMethod string `gorm:"type:varchar(20);not null;column:attendance_record_method" json:"attendance_record_method"`

	AttendanceRecordLocation string `gorm:"type:varchar(255);column:attendance_record_location" json:"attendance_record_location,omitempty"`
	AttendanceRecordNotes    string `gorm:"type:text;column:attendance_record_notes" json:"attendance_record_notes,omitempty"`

	AttendanceRecordCreatedAt time.Time `gorm:"column:attendance_record_created_at;autoCreateTime" json:"attendance_record_created_at"`
	AttendanceRecordUpdatedAt time.Time `gorm:"column:attendance_record_updated_at;autoUpdateTime" json:"attendance_record_updated_at"`
}

func (AttendanceRecordModel) TableName() string { return "attendance_records" }
